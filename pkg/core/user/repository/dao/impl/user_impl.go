package dao

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperr "game-arcade/pkg/common/errors"
	"game-arcade/pkg/core/user/model"
	"game-arcade/pkg/core/user/repository/dao"
)

type GormUserRepository struct {
	db *gorm.DB
}

var _ dao.UserRepository = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByEmail 邮箱是登录键，带唯一索引
func (r *GormUserRepository) FindByEmail(email string) (model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.User{}, apperr.ErrNotFound
	case err != nil:
		return model.User{}, fmt.Errorf("%w: user query by email failed", apperr.WrapGormError(err))
	default:
		return user, nil
	}
}

// FindByName 用户名不保证唯一，取首条精确匹配
func (r *GormUserRepository) FindByName(name string) (model.User, error) {
	var user model.User
	err := r.db.Where("name = ?", name).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.User{}, apperr.ErrNotFound
	case err != nil:
		return model.User{}, fmt.Errorf("%w: user query by name failed", apperr.WrapGormError(err))
	default:
		return user, nil
	}
}

func (r *GormUserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: failed to check email", apperr.WrapGormError(err))
	}
	return count > 0, nil
}

// Create 事务内写入，失败不留半条记录
func (r *GormUserRepository) Create(user model.User) (model.User, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if apperr.IsDuplicateError(apperr.WrapGormError(err)) {
				return apperr.ErrDuplicateEntry
			}
			return fmt.Errorf("%w: user creation failed", apperr.WrapGormError(err))
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// SearchByName lower_name上做LIKE匹配，调用方负责空串短路
func (r *GormUserRepository) SearchByName(substr string) ([]model.User, error) {
	var users []model.User
	pattern := "%" + escapeLike(strings.ToLower(substr)) + "%"
	err := r.db.Where("lower_name LIKE ?", pattern).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("%w: user search failed", apperr.WrapGormError(err))
	}
	return users, nil
}

// escapeLike 转义LIKE通配符，避免查询串里的%和_改变匹配语义
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
