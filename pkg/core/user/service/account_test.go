package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperr "game-arcade/pkg/common/errors"
	actmodel "game-arcade/pkg/core/activity/model"
	"game-arcade/pkg/core/session"
	"game-arcade/pkg/core/user/model"
)

func newAccountFixture(t *testing.T) (*AccountService, *fakeUserRepo, *fakeActivityRepo, *session.MemoryStore) {
	t.Helper()
	users := newFakeUserRepo()
	activities := &fakeActivityRepo{}
	sessions := session.NewMemoryStore()

	svc := NewAccountService(users, activities, sessions, time.Hour, 30*24*time.Hour)
	return svc, users, activities, sessions
}

func seedUser(t *testing.T, users *fakeUserRepo, name, email, password string) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := users.Create(model.User{
		Name:         name,
		LowerName:    name,
		Email:        email,
		PasswordHash: string(hash),
	})
	require.NoError(t, err)
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, users, _, sessions := newAccountFixture(t)
	user := seedUser(t, users, "andrey", "andrey@example.com", "secret")

	sess, err := svc.Login(context.Background(), "andrey@example.com", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, "andrey", sess.Name)

	// 会话确实落到了存储里
	stored, err := sessions.Get(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, users, _, _ := newAccountFixture(t)
	seedUser(t, users, "andrey", "andrey@example.com", "secret")

	_, errWrongPwd := svc.Login(context.Background(), "andrey@example.com", "wrong", false)
	_, errNoUser := svc.Login(context.Background(), "ghost@example.com", "secret", false)

	msg1, ok1 := apperr.ValidationMessage(errWrongPwd)
	msg2, ok2 := apperr.ValidationMessage(errNoUser)
	require.True(t, ok1)
	require.True(t, ok2)
	// 调用方视角下两种失败必须完全一致
	assert.Equal(t, msg1, msg2)
}

func TestLogin_RememberExtendsSession(t *testing.T) {
	svc, users, _, _ := newAccountFixture(t)
	seedUser(t, users, "andrey", "andrey@example.com", "secret")

	short, err := svc.Login(context.Background(), "andrey@example.com", "secret", false)
	require.NoError(t, err)
	long, err := svc.Login(context.Background(), "andrey@example.com", "secret", true)
	require.NoError(t, err)

	assert.True(t, long.ExpiresAt.After(short.ExpiresAt.Add(24*time.Hour)),
		"remember session should live much longer")
}

func TestLogout_InvalidatesSession(t *testing.T) {
	svc, users, _, sessions := newAccountFixture(t)
	seedUser(t, users, "andrey", "andrey@example.com", "secret")

	sess, err := svc.Login(context.Background(), "andrey@example.com", "secret", false)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), sess.Token))

	_, err = sessions.Get(context.Background(), sess.Token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestDeleteHistory_OnlyOwnRecords(t *testing.T) {
	svc, _, activities, _ := newAccountFixture(t)
	now := time.Now()
	activities.sessions = []actmodel.ActivitySession{
		{ID: 1, UserID: 1, Game: "tetris", PlayedAt: now},
		{ID: 2, UserID: 1, Game: "snake", PlayedAt: now.Add(time.Minute)},
		{ID: 3, UserID: 2, Game: "pong", PlayedAt: now},
	}

	require.NoError(t, svc.DeleteHistory(context.Background(), 1))

	mine, err := activities.ListByUser(1)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := activities.ListByUser(2)
	require.NoError(t, err)
	assert.Len(t, theirs, 1, "other users' records stay untouched")
}

func TestViewProfile_NotFound(t *testing.T) {
	svc, _, _, _ := newAccountFixture(t)

	_, _, err := svc.ViewProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestViewProfile_SessionsNewestFirst(t *testing.T) {
	svc, users, activities, _ := newAccountFixture(t)
	user := seedUser(t, users, "andrey", "andrey@example.com", "secret")

	base := time.Now()
	activities.sessions = []actmodel.ActivitySession{
		{ID: 1, UserID: user.ID, Game: "tetris", PlayedAt: base.Add(-2 * time.Hour)},
		{ID: 2, UserID: user.ID, Game: "snake", PlayedAt: base},
		{ID: 3, UserID: user.ID, Game: "pong", PlayedAt: base.Add(-time.Hour)},
	}

	got, sessions, err := svc.ViewProfile(context.Background(), "andrey")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.Len(t, sessions, 3)
	assert.Equal(t, "snake", sessions[0].Game)
	assert.Equal(t, "pong", sessions[1].Game)
	assert.Equal(t, "tetris", sessions[2].Game)
}
