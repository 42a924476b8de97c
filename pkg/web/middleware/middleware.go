package middleware

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"

	"game-arcade/pkg/common/config"
	"game-arcade/pkg/core/session"
)

// 会话中间件写入RequestContext的键
const (
	CtxKeyUserID    = "current_user_id"
	CtxKeyUserName  = "current_user_name"
	CtxKeySessToken = "session_token"
)

// Register 按执行顺序挂载全局中间件
func Register(h *server.Hertz, cfg *config.Config) {
	h.Use(
		RecoveryMiddleware(cfg),
		LoggerMiddleware(),
		SecurityCheckMiddleware(cfg.Middleware.Security),
		TimeoutMiddleware(cfg.Middleware.Timeout.RequestTimeout),
		CORSMiddleware(cfg.Middleware.CORS),
		RateLimitMiddleware(
			cfg.Middleware.RateLimit.Rate,
			cfg.Middleware.RateLimit.Interval,
		),
	)
}

// LoggerMiddleware 结构化的请求日志记录
func LoggerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c) // 放行到后续处理器
		latency := time.Since(start)

		// 结构化日志输出
		hlog.CtxTracef(c, "| %3d | %13v | %15s | %-7s | %s | UA=%s",
			ctx.Response.StatusCode(),
			latency,
			ctx.ClientIP(),
			ctx.Method(),
			ctx.Path(),
			ctx.GetHeader("User-Agent"),
		)
	}
}

// RecoveryMiddleware 异常捕获，统一渲染通用错误页
func RecoveryMiddleware(cfg *config.Config) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				// 获取调用堆栈
				stack := string(debug.Stack())

				hlog.CtxErrorf(c, "[PANIC RECOVERED] %v\n%s", err, stack)

				if cfg.IsProd() {
					ctx.HTML(consts.StatusInternalServerError, "error.tmpl", utils.H{
						"Title": "出错了",
					})
				} else { // 开发环境带上错误详情
					ctx.HTML(consts.StatusInternalServerError, "error.tmpl", utils.H{
						"Title":  "出错了",
						"Detail": fmt.Sprintf("%v", err),
					})
				}
				ctx.Abort()
			}
		}()
		ctx.Next(c)
	}
}

// CORSMiddleware 安全的跨域配置
func CORSMiddleware(corsConfig config.CORSConfig) app.HandlerFunc {
	return cors.New(
		cors.Config{
			AllowOrigins:     corsConfig.AllowOrigins,
			AllowMethods:     corsConfig.AllowMethods,
			AllowHeaders:     corsConfig.AllowHeaders,
			ExposeHeaders:    corsConfig.ExposeHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAge,
			// 动态校验来源
			AllowOriginFunc: func(origin string) bool {
				for _, domain := range corsConfig.TrustedDomains {
					if strings.Contains(origin, domain) {
						return true
					}
				}
				return false
			},
		},
	)
}

func TimeoutMiddleware(seconds int) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		timeoutCtx, cancel := context.WithTimeout(c, time.Duration(seconds)*time.Second)
		defer cancel()

		// 通过goroutine执行后续处理器
		done := make(chan struct{})
		var panicErr interface{}

		go func() {
			defer func() {
				if r := recover(); r != nil {
					panicErr = r
				}
				close(done)
			}()
			ctx.Next(timeoutCtx) // 关键：传入超时上下文
		}()

		// 监听超时或完成
		select {
		case <-timeoutCtx.Done():
			ctx.AbortWithStatusJSON(consts.StatusServiceUnavailable, utils.H{
				"code":    503000,
				"message": "service unavailable",
			})
			hlog.CtxWarnf(timeoutCtx, "request timeout path=%s", ctx.Path())
		case <-done:
			if panicErr != nil {
				panic(panicErr) // 交给全局recovery处理
			}
		}
	}
}

// RateLimitMiddleware 令牌桶算法限流
func RateLimitMiddleware(rate int, interval time.Duration) app.HandlerFunc {
	limiter := NewTokenBucket(rate, interval)

	return func(c context.Context, ctx *app.RequestContext) {
		if !limiter.Allow() {
			hlog.CtxInfof(c, "[RATE LIMIT] path=%s", ctx.Path())
			ctx.AbortWithStatusJSON(consts.StatusTooManyRequests, utils.H{
				"code":    429001,
				"message": "too many requests",
			})
			return
		}
		ctx.Next(c)
	}
}

// 令牌桶实现
type TokenBucket struct {
	capacity int
	tokens   chan struct{}
	rate     time.Duration
}

func NewTokenBucket(rate int, interval time.Duration) *TokenBucket {
	tb := &TokenBucket{
		capacity: rate,
		tokens:   make(chan struct{}, rate),
		rate:     interval,
	}

	// 预填满，避免冷启动期间误伤
	for i := 0; i < rate; i++ {
		tb.tokens <- struct{}{}
	}

	// 定时器生产令牌
	go func() {
		ticker := time.NewTicker(tb.rate)
		for range ticker.C {
			for i := 0; i < tb.capacity; i++ {
				select {
				case tb.tokens <- struct{}{}:
				default:
				}
			}
		}
	}()
	return tb
}

func (tb *TokenBucket) Allow() bool {
	select {
	case <-tb.tokens:
		return true
	default:
		return false
	}
}

// SecurityCheckMiddleware 全局安全校验中间件
func SecurityCheckMiddleware(secCfg config.SecurityConfig) app.HandlerFunc {
	allowed := make(map[string]bool, len(secCfg.AllowedMethods))
	for _, m := range secCfg.AllowedMethods {
		allowed[strings.ToUpper(m)] = true
	}

	return func(c context.Context, ctx *app.RequestContext) {
		// 防护机制1：请求体大小限制
		if int64(ctx.Request.Header.ContentLength()) > secCfg.MaxBodySize {
			securityResponse(ctx, 413001, "request body exceeds max size", consts.StatusRequestEntityTooLarge)
			return
		}

		// 防护机制2：检查HTTP方法
		if !allowed[string(ctx.Method())] && string(ctx.Method()) != "OPTIONS" {
			securityResponse(ctx, 405001, "method not allowed", consts.StatusMethodNotAllowed)
			return
		}

		ctx.Next(c)
	}
}

// SessionAuthMiddleware 校验会话Cookie，未登录一律重定向到登录页。
// 通过校验后把用户身份写入请求上下文供下游使用
func SessionAuthMiddleware(sessions session.Store, cookieName string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		token := string(ctx.Cookie(cookieName))
		if token == "" {
			ctx.Redirect(consts.StatusSeeOther, []byte("/login"))
			ctx.Abort()
			return
		}

		sess, err := sessions.Get(c, token)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				hlog.CtxErrorf(c, "session lookup failed: %v", err)
			}
			ctx.Redirect(consts.StatusSeeOther, []byte("/login"))
			ctx.Abort()
			return
		}

		ctx.Set(CtxKeyUserID, sess.UserID)
		ctx.Set(CtxKeyUserName, sess.Name)
		ctx.Set(CtxKeySessToken, sess.Token)
		ctx.Next(c)
	}
}

// SessionLoadMiddleware 尽力加载登录态但不强制：有有效会话则写入上下文，
// 没有也照常放行（首页等公开页面使用）
func SessionLoadMiddleware(sessions session.Store, cookieName string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if token := string(ctx.Cookie(cookieName)); token != "" {
			if sess, err := sessions.Get(c, token); err == nil {
				ctx.Set(CtxKeyUserID, sess.UserID)
				ctx.Set(CtxKeyUserName, sess.Name)
				ctx.Set(CtxKeySessToken, sess.Token)
			}
		}
		ctx.Next(c)
	}
}

// 安全响应统一处理
func securityResponse(ctx *app.RequestContext, code int, msg string, status int) {
	hlog.Warnf("SecurityAlert[code=%d]: %s", code, msg)
	ctx.AbortWithStatusJSON(status, utils.H{
		"code":    code,
		"message": msg,
	})
}
