package handler

import (
	"context"
	"errors"
	"net/url"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"game-arcade/pkg/common/config"
	apperr "game-arcade/pkg/common/errors"
	"game-arcade/pkg/core/user/service"
	"game-arcade/pkg/web/middleware"
	"game-arcade/pkg/web/model"
)

// UserHandler 表单控制器层：只做绑定、调用服务、渲染/重定向
type UserHandler struct {
	registration *service.RegistrationService
	accounts     *service.AccountService
	search       *service.SearchService
	sessionCfg   config.SessionConfig
}

func NewUserHandler(registration *service.RegistrationService, accounts *service.AccountService, search *service.SearchService, sessionCfg config.SessionConfig) *UserHandler {
	return &UserHandler{
		registration: registration,
		accounts:     accounts,
		search:       search,
		sessionCfg:   sessionCfg,
	}
}

// Index 首页
func (h *UserHandler) Index(ctx context.Context, c *app.RequestContext) {
	c.HTML(consts.StatusOK, "index.tmpl", utils.H{
		"Title": "游戏大厅",
		"Name":  c.GetString(middleware.CtxKeyUserName),
	})
}

// ShowSignup 注册表单
func (h *UserHandler) ShowSignup(ctx context.Context, c *app.RequestContext) {
	c.HTML(consts.StatusOK, "register.tmpl", utils.H{"Title": "注册"})
}

// Signup 提交注册：校验通过则暂存待验证记录、发送验证码并跳转验证页。
// 校验失败以200重渲染表单并回显提示语
func (h *UserHandler) Signup(ctx context.Context, c *app.RequestContext) {
	var req model.RegisterReq
	if err := c.BindAndValidate(&req); err != nil {
		c.HTML(consts.StatusOK, "register.tmpl", utils.H{
			"Title":   "注册",
			"Message": "参数格式错误",
		})
		return
	}

	// 复用Cookie里的旧句柄，重复提交覆盖旧的待验证记录
	handle := string(c.Cookie(h.sessionCfg.PendingCookie))

	handle, err := h.registration.SubmitRegistration(ctx, handle, service.RegistrationInput{
		Name:          req.Name,
		Password:      req.Password,
		PasswordAgain: req.PasswordAgain,
		Email:         req.Email,
	})
	if err != nil {
		if msg, ok := apperr.ValidationMessage(err); ok {
			c.HTML(consts.StatusOK, "register.tmpl", utils.H{
				"Title":   "注册",
				"Message": msg,
			})
			return
		}
		if errors.Is(err, apperr.ErrMailDelivery) {
			c.HTML(consts.StatusOK, "register.tmpl", utils.H{
				"Title":   "注册",
				"Message": "很抱歉，邮件发送失败，请重试",
			})
			return
		}
		h.renderError(c, err)
		return
	}

	h.setCookie(c, h.sessionCfg.PendingCookie, handle, int(h.sessionCfg.PendingTTL.Seconds()))
	c.Redirect(consts.StatusSeeOther, []byte("/email_verification"))
}

// ShowVerification 验证码表单
func (h *UserHandler) ShowVerification(ctx context.Context, c *app.RequestContext) {
	c.HTML(consts.StatusOK, "email_verification.tmpl", utils.H{"Title": "邮箱验证"})
}

// Verify 提交验证码：匹配则建号并跳转登录页；不匹配可重试
func (h *UserHandler) Verify(ctx context.Context, c *app.RequestContext) {
	var req model.VerifyReq
	if err := c.BindAndValidate(&req); err != nil {
		c.HTML(consts.StatusOK, "email_verification.tmpl", utils.H{
			"Title":   "邮箱验证",
			"Message": "参数格式错误",
		})
		return
	}

	handle := string(c.Cookie(h.sessionCfg.PendingCookie))

	if _, err := h.registration.ConfirmVerification(ctx, handle, req.Code); err != nil {
		if msg, ok := apperr.ValidationMessage(err); ok {
			c.HTML(consts.StatusOK, "email_verification.tmpl", utils.H{
				"Title":   "邮箱验证",
				"Message": msg,
			})
			return
		}
		h.renderError(c, err)
		return
	}

	// 握手完成，句柄Cookie随之作废
	h.setCookie(c, h.sessionCfg.PendingCookie, "", -1)
	c.Redirect(consts.StatusSeeOther, []byte("/login"))
}

// ShowLogin 登录表单
func (h *UserHandler) ShowLogin(ctx context.Context, c *app.RequestContext) {
	c.HTML(consts.StatusOK, "login.tmpl", utils.H{"Title": "登录"})
}

// Login 登录：失败统一提示，成功则种会话Cookie后回首页
func (h *UserHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req model.LoginReq
	if err := c.BindAndValidate(&req); err != nil {
		c.HTML(consts.StatusOK, "login.tmpl", utils.H{
			"Title":   "登录",
			"Message": "参数格式错误",
		})
		return
	}

	sess, err := h.accounts.Login(ctx, req.Email, req.Password, req.Remember())
	if err != nil {
		if msg, ok := apperr.ValidationMessage(err); ok {
			c.HTML(consts.StatusOK, "login.tmpl", utils.H{
				"Title":   "登录",
				"Message": msg,
			})
			return
		}
		h.renderError(c, err)
		return
	}

	maxAge := h.sessionCfg.MaxAge
	if req.Remember() {
		maxAge = h.sessionCfg.RememberMaxAge
	}
	h.setCookie(c, h.sessionCfg.CookieName, sess.Token, int(maxAge.Seconds()))
	c.Redirect(consts.StatusSeeOther, []byte("/"))
}

// Profile 登录后的个人主页入口，跳转到规范的公开主页地址
func (h *UserHandler) Profile(ctx context.Context, c *app.RequestContext) {
	name := c.GetString(middleware.CtxKeyUserName)
	c.Redirect(consts.StatusSeeOther, []byte("/users/"+url.PathEscape(name)))
}

// DeleteHistory 清空当前用户的历史对局，完成后回个人主页
func (h *UserHandler) DeleteHistory(ctx context.Context, c *app.RequestContext) {
	userID := c.GetInt64(middleware.CtxKeyUserID)

	if err := h.accounts.DeleteHistory(ctx, userID); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(consts.StatusSeeOther, []byte("/profile"))
}

// Logout 注销会话并清除Cookie
func (h *UserHandler) Logout(ctx context.Context, c *app.RequestContext) {
	token := c.GetString(middleware.CtxKeySessToken)

	if err := h.accounts.Logout(ctx, token); err != nil {
		h.renderError(c, err)
		return
	}
	h.setCookie(c, h.sessionCfg.CookieName, "", -1)
	c.Redirect(consts.StatusSeeOther, []byte("/"))
}

// ViewUser 公开的用户主页：用户不存在渲染404，而不是等异常兜底
func (h *UserHandler) ViewUser(ctx context.Context, c *app.RequestContext) {
	name := c.Param("name")

	user, sessions, err := h.accounts.ViewProfile(ctx, name)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(consts.StatusOK, "profile.tmpl", utils.H{
		"Title":    user.Name,
		"User":     user,
		"Sessions": sessions,
	})
}

// SearchPost 搜索表单提交，跳转到可收藏的GET地址
func (h *UserHandler) SearchPost(ctx context.Context, c *app.RequestContext) {
	var req model.SearchReq
	if err := c.BindAndValidate(&req); err != nil {
		c.Redirect(consts.StatusSeeOther, []byte("/search"))
		return
	}

	if req.Searched == "" {
		c.Redirect(consts.StatusSeeOther, []byte("/search"))
		return
	}
	c.Redirect(consts.StatusSeeOther, []byte("/search/"+url.PathEscape(req.Searched)))
}

// SearchGet 展示搜索结果，空查询渲染空列表
func (h *UserHandler) SearchGet(ctx context.Context, c *app.RequestContext) {
	query := c.Param("query")

	users, err := h.search.Search(ctx, query)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(consts.StatusOK, "search.tmpl", utils.H{
		"Title":    "搜索",
		"Searched": query,
		"Users":    users,
	})
}

// renderError 非校验类错误的统一出口：404或通用错误页
func (h *UserHandler) renderError(c *app.RequestContext, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		c.HTML(consts.StatusNotFound, "error.tmpl", utils.H{
			"Title":   "未找到",
			"Message": "页面不存在或已过期",
		})
		return
	}

	hlog.Errorf("unexpected error: %v", err)
	c.HTML(consts.StatusInternalServerError, "error.tmpl", utils.H{
		"Title": "出错了",
	})
}

// setCookie Cookie参数集中在一处，避免各处写法漂移
func (h *UserHandler) setCookie(c *app.RequestContext, name, value string, maxAge int) {
	c.SetCookie(name, value, maxAge, "/", "",
		protocol.CookieSameSiteLaxMode, h.sessionCfg.Secure, true)
}
