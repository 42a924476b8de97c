package mail

import (
	"context"
)

// Mailer 验证码投递端口。实现只需汇报成功或失败，不承诺送达
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}
