package service

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"golang.org/x/crypto/bcrypt"

	apperr "game-arcade/pkg/common/errors"
	actmodel "game-arcade/pkg/core/activity/model"
	actdao "game-arcade/pkg/core/activity/repository/dao"
	"game-arcade/pkg/core/session"
	"game-arcade/pkg/core/user/model"
	"game-arcade/pkg/core/user/repository/dao"
)

// AccountService 登录态相关的单步操作：登录、注销、历史删除、主页查询
type AccountService struct {
	users      dao.UserRepository
	activities actdao.ActivityRepository
	sessions   session.Store

	maxAge         time.Duration // 普通会话时长
	rememberMaxAge time.Duration // "记住我"会话时长
}

func NewAccountService(users dao.UserRepository, activities actdao.ActivityRepository, sessions session.Store, maxAge, rememberMaxAge time.Duration) *AccountService {
	return &AccountService{
		users:          users,
		activities:     activities,
		sessions:       sessions,
		maxAge:         maxAge,
		rememberMaxAge: rememberMaxAge,
	}
}

// Login 邮箱+密码换取服务端会话。
// 用户不存在和密码错误返回同一条消息，不给枚举账号留口子。
func (s *AccountService) Login(ctx context.Context, email, password string, remember bool) (session.Session, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, apperr.ErrNotFound) {
		return session.Session{}, apperr.NewValidation("邮箱或密码错误")
	}
	if err != nil {
		return session.Session{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return session.Session{}, apperr.NewValidation("邮箱或密码错误")
	}

	ttl := s.maxAge
	if remember {
		ttl = s.rememberMaxAge
	}
	sess, err := s.sessions.Create(ctx, user.ID, user.Name, ttl)
	if err != nil {
		return session.Session{}, err
	}

	hlog.Infof("user logged in: id=%d name=%s", user.ID, user.Name)
	return sess, nil
}

// Logout 无条件销毁当前会话
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// DeleteHistory 单事务内删除该用户的全部历史对局，要么全删要么不动
func (s *AccountService) DeleteHistory(_ context.Context, userID int64) error {
	if err := s.activities.DeleteAllForUser(userID); err != nil {
		return err
	}
	hlog.Infof("activity history deleted: user_id=%d", userID)
	return nil
}

// ViewProfile 公开主页：按用户名精确匹配，附带按时间倒序的历史对局。
// 查不到用户是显式的NotFound结果，不依赖异常兜底。
func (s *AccountService) ViewProfile(_ context.Context, name string) (model.User, []actmodel.ActivitySession, error) {
	user, err := s.users.FindByName(name)
	if err != nil {
		return model.User{}, nil, err
	}

	sessions, err := s.activities.ListByUser(user.ID)
	if err != nil {
		return model.User{}, nil, err
	}
	return user, sessions, nil
}
