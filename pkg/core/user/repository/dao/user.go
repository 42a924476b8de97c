package dao

import (
	"game-arcade/pkg/core/user/model"
)

// UserRepository 用户存储能力集，按操作显式注入，不依赖全局ORM会话
type UserRepository interface {
	FindByEmail(email string) (model.User, error)
	FindByName(name string) (model.User, error)
	EmailExists(email string) (bool, error)
	Create(user model.User) (model.User, error)
	SearchByName(substr string) ([]model.User, error) // 忽略大小写的子串匹配，按name排序
}
