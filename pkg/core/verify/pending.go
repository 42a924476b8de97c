package verify

import (
	"context"
	"errors"
	"time"
)

// ErrPendingNotFound 句柄不存在或记录已过期
var ErrPendingNotFound = errors.New("pending registration not found")

// PendingRegistration 暂存未确认的注册信息，验证成功后即销毁
type PendingRegistration struct {
	Code     string `json:"code"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"` // 明文仅在TTL窗口内暂存，入库前才做哈希
}

// PendingStore 待验证注册存储。同句柄重复写入采用后写覆盖
type PendingStore interface {
	Put(ctx context.Context, handle string, reg PendingRegistration, ttl time.Duration) error
	Get(ctx context.Context, handle string) (PendingRegistration, error)
	Delete(ctx context.Context, handle string) error
}
