package model

import (
	"time"

	"gorm.io/gorm"
)

// User 只在邮箱验证完成后写入，不存在半注册状态的记录
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(100);index;not null"` // 用户名允许重复，唯一性只约束邮箱
	LowerName    string    `gorm:"type:varchar(100);index;not null"` // 创建时派生的小写副本，用于忽略大小写的搜索
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"index;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName 定义映射表名
func (User) TableName() string {
	return "arcade_users"
}

func AutoMigrate(db *gorm.DB) error {
	return db.Set("gorm:table_options", "COMMENT='用户基础表'").
		AutoMigrate(&User{})
}
