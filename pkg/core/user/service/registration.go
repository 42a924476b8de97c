package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"golang.org/x/crypto/bcrypt"

	apperr "game-arcade/pkg/common/errors"
	"game-arcade/pkg/core/mail"
	"game-arcade/pkg/core/user/model"
	"game-arcade/pkg/core/user/repository/dao"
	"game-arcade/pkg/core/verify"
)

// 用户名长度边界，超出即拒绝
const (
	minNameLen = 3
	maxNameLen = 9
)

// RegistrationInput 注册表单提交内容
type RegistrationInput struct {
	Name          string
	Password      string
	PasswordAgain string
	Email         string
}

// RegistrationService 注册验证握手的编排层。
// 流程：提交注册 → 暂存待验证记录并发送验证码 → 验证码确认 → 落库建号。
// 用户记录当且仅当握手完整走完才会写入。
type RegistrationService struct {
	users      dao.UserRepository
	pending    verify.PendingStore
	mailer     mail.Mailer
	pendingTTL time.Duration

	// 可注入便于测试
	generateCode func() (string, error)
	newHandle    func() string
}

func NewRegistrationService(users dao.UserRepository, pending verify.PendingStore, mailer mail.Mailer, pendingTTL time.Duration) *RegistrationService {
	return &RegistrationService{
		users:        users,
		pending:      pending,
		mailer:       mailer,
		pendingTTL:   pendingTTL,
		generateCode: verify.GenerateCode,
		newHandle:    verify.NewHandle,
	}
}

// SubmitRegistration 校验表单、暂存待验证记录并发送验证码。
// 成功返回句柄，调用方将其放入Cookie后跳转验证页；
// 同一句柄重复提交会整体覆盖旧记录。
func (s *RegistrationService) SubmitRegistration(ctx context.Context, handle string, input RegistrationInput) (string, error) {
	nameLen := utf8.RuneCountInString(input.Name)
	if nameLen < minNameLen {
		return "", apperr.NewValidation(fmt.Sprintf("用户名太短（%d < %d）", nameLen, minNameLen))
	}
	if nameLen > maxNameLen {
		return "", apperr.NewValidation(fmt.Sprintf("用户名太长（%d > %d）", nameLen, maxNameLen))
	}

	if input.Password != input.PasswordAgain {
		return "", apperr.NewValidation("两次输入的密码不一致")
	}

	exists, err := s.users.EmailExists(input.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperr.NewValidation("该邮箱已注册")
	}

	code, err := s.generateCode()
	if err != nil {
		return "", err
	}

	// 没有旧句柄时签发新句柄；有旧句柄则原地覆盖未完成的记录
	if handle == "" {
		handle = s.newHandle()
	}

	reg := verify.PendingRegistration{
		Code:     code,
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
	}
	if err := s.pending.Put(ctx, handle, reg, s.pendingTTL); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	if err := s.mailer.SendVerificationCode(ctx, input.Email, code); err != nil {
		// 发送失败即终态，清掉暂存记录，避免陈旧数据泄漏进下次尝试
		if delErr := s.pending.Delete(ctx, handle); delErr != nil {
			hlog.Warnf("failed to clear pending registration after mail failure: %v", delErr)
		}
		hlog.Errorf("verification mail delivery failed: to=%s err=%v", input.Email, err)
		return "", apperr.ErrMailDelivery
	}

	return handle, nil
}

// ConfirmVerification 比对验证码并完成建号。
// 验证码不匹配时保留暂存记录，允许重试；句柄过期则要求重新注册。
func (s *RegistrationService) ConfirmVerification(ctx context.Context, handle, code string) (model.User, error) {
	reg, err := s.pending.Get(ctx, handle)
	if errors.Is(err, verify.ErrPendingNotFound) {
		return model.User{}, apperr.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	if code != reg.Code {
		return model.User{}, apperr.NewValidation("验证码不正确")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(model.User{
		Name:         reg.Name,
		LowerName:    strings.ToLower(reg.Name),
		Email:        reg.Email,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if apperr.IsDuplicateError(err) {
			// 验证窗口内有人抢注了同一邮箱
			return model.User{}, apperr.NewValidation("该邮箱已注册")
		}
		return model.User{}, err
	}

	// 握手完成，销毁暂存记录
	if err := s.pending.Delete(ctx, handle); err != nil {
		hlog.Warnf("failed to delete consumed pending registration: %v", err)
	}

	hlog.Infof("new user registered: name=%s email=%s", user.Name, user.Email)
	return user, nil
}
