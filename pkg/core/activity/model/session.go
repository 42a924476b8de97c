package model

import (
	"time"

	"gorm.io/gorm"
)

// ActivitySession 一次历史对局记录，归属且仅归属一个用户
type ActivitySession struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	UserID   int64     `gorm:"index;not null"`
	Game     string    `gorm:"type:varchar(100);not null"`
	Score    int       `gorm:"default:0;not null"`
	PlayedAt time.Time `gorm:"index;autoCreateTime"`
}

// TableName 定义映射表名
func (ActivitySession) TableName() string {
	return "arcade_activity_sessions"
}

func AutoMigrate(db *gorm.DB) error {
	return db.Set("gorm:table_options", "COMMENT='用户历史对局表'").
		AutoMigrate(&ActivitySession{})
}
