package dao

import (
	"fmt"

	"gorm.io/gorm"

	apperr "game-arcade/pkg/common/errors"
	"game-arcade/pkg/core/activity/model"
	"game-arcade/pkg/core/activity/repository/dao"
)

type GormActivityRepository struct {
	db *gorm.DB
}

var _ dao.ActivityRepository = (*GormActivityRepository)(nil)

func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// ListByUser 按时间倒序返回该用户的全部历史对局
func (r *GormActivityRepository) ListByUser(userID int64) ([]model.ActivitySession, error) {
	var sessions []model.ActivitySession
	err := r.db.Where("user_id = ?", userID).
		Order("played_at DESC, id DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("%w: activity query failed", apperr.WrapGormError(err))
	}
	return sessions, nil
}

// DeleteAllForUser 单事务内批量删除，半途失败则整体回滚
func (r *GormActivityRepository) DeleteAllForUser(userID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&model.ActivitySession{}).Error; err != nil {
			return fmt.Errorf("%w: activity bulk delete failed", apperr.WrapGormError(err))
		}
		return nil
	})
}
