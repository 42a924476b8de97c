package dao

import (
	"game-arcade/pkg/core/activity/model"
)

// ActivityRepository 历史对局存储能力集
type ActivityRepository interface {
	ListByUser(userID int64) ([]model.ActivitySession, error) // 最近的排在最前
	DeleteAllForUser(userID int64) error                      // 全部删除或全部保留
}
