package service

import (
	"context"

	"game-arcade/pkg/core/user/model"
	"game-arcade/pkg/core/user/repository/dao"
)

// SearchService 用户目录搜索
type SearchService struct {
	users dao.UserRepository
}

func NewSearchService(users dao.UserRepository) *SearchService {
	return &SearchService{users: users}
}

// Search 忽略大小写的用户名子串匹配，按name字典序返回。
// 空查询返回空列表而不是全量用户，这是刻意为之
func (s *SearchService) Search(_ context.Context, query string) ([]model.User, error) {
	if query == "" {
		return []model.User{}, nil
	}
	return s.users.SearchByName(query)
}
