// pkg/common/errors/outcome.go

/*
  - 错误分层约定
    校验类失败携带面向用户的提示语，随表单重新渲染；
    其余错误由handler映射为标准状态码（404/500），
    不再依赖统一的catch-all错误页兜底。
*/
package errors

import (
	"errors"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
)

// 定义原始错误
var (
	rawErrNotFound         = errors.New("record not found")
	rawErrDuplicateEntry   = errors.New("email already registered")
	rawErrMailDelivery     = errors.New("mail delivery failed")
	rawErrStoreUnavailable = errors.New("store unavailable")
)

// 包装成 Hertz 错误类型
var (
	ErrNotFound         = hzte.New(rawErrNotFound, hzte.ErrorTypePublic, nil)
	ErrDuplicateEntry   = hzte.New(rawErrDuplicateEntry, hzte.ErrorTypePublic, nil)
	ErrMailDelivery     = hzte.New(rawErrMailDelivery, hzte.ErrorTypePublic, nil)
	ErrStoreUnavailable = hzte.New(rawErrStoreUnavailable, hzte.ErrorTypePrivate, nil)
)

// ValidationError 预期内的校验失败，Message直接回显到表单
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation 构造校验失败结果
func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

// ValidationMessage 提取校验失败的提示语
func ValidationMessage(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}
