package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	apperr "game-arcade/pkg/common/errors"
	actmodel "game-arcade/pkg/core/activity/model"
	"game-arcade/pkg/core/user/model"
)

// 内存版用户仓储，契约与GORM实现保持一致
type fakeUserRepo struct {
	users  []model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) FindByEmail(email string) (model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, apperr.ErrNotFound
}

func (r *fakeUserRepo) FindByName(name string) (model.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			return u, nil
		}
	}
	return model.User{}, apperr.ErrNotFound
}

func (r *fakeUserRepo) EmailExists(email string) (bool, error) {
	_, err := r.FindByEmail(email)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) Create(user model.User) (model.User, error) {
	if exists, _ := r.EmailExists(user.Email); exists {
		return model.User{}, apperr.ErrDuplicateEntry
	}
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, user)
	return user, nil
}

func (r *fakeUserRepo) SearchByName(substr string) ([]model.User, error) {
	needle := strings.ToLower(substr)
	var matched []model.User
	for _, u := range r.users {
		if strings.Contains(u.LowerName, needle) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

// 内存版历史对局仓储
type fakeActivityRepo struct {
	sessions  []actmodel.ActivitySession
	deleteErr error
}

func (r *fakeActivityRepo) ListByUser(userID int64) ([]actmodel.ActivitySession, error) {
	var out []actmodel.ActivitySession
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayedAt.After(out[j].PlayedAt) })
	return out, nil
}

func (r *fakeActivityRepo) DeleteAllForUser(userID int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	kept := r.sessions[:0]
	for _, s := range r.sessions {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	r.sessions = kept
	return nil
}

// 可控的邮件发送桩
type sentMail struct {
	To   string
	Code string
}

type fakeMailer struct {
	fail bool
	sent []sentMail
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, to, code string) error {
	if m.fail {
		return errors.New("smtp connection refused")
	}
	m.sent = append(m.sent, sentMail{To: to, Code: code})
	return nil
}
