package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-arcade/pkg/core/user/model"
)

func TestSearch_EmptyQueryReturnsNothing(t *testing.T) {
	users := newFakeUserRepo()
	seedSearchUsers(t, users)
	svc := NewSearchService(users)

	// 空查询返回空列表而不是全量用户
	got, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	users := newFakeUserRepo()
	seedSearchUsers(t, users)
	svc := NewSearchService(users)

	got, err := svc.Search(context.Background(), "an")
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, u := range got {
		names = append(names, u.Name)
	}
	// 忽略大小写匹配，按name字典序返回
	assert.Equal(t, []string{"ANDREY", "Sanya", "anna"}, names)
}

func TestSearch_NoMatches(t *testing.T) {
	users := newFakeUserRepo()
	seedSearchUsers(t, users)
	svc := NewSearchService(users)

	got, err := svc.Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func seedSearchUsers(t *testing.T, users *fakeUserRepo) {
	t.Helper()
	for _, name := range []string{"ANDREY", "anna", "Sanya", "boris"} {
		_, err := users.Create(model.User{
			Name:      name,
			LowerName: strings.ToLower(name),
			Email:     name + "@example.com",
		})
		require.NoError(t, err)
	}
}
