package session

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound 令牌无效、已注销或已过期
var ErrSessionNotFound = errors.New("session not found")

// Session 服务端登录会话，令牌是不透明随机值
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store 会话存储。注销即删除，不存在仅标记失效的中间态
type Store interface {
	Create(ctx context.Context, userID int64, name string, ttl time.Duration) (Session, error)
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}
