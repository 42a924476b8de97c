package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"game-arcade/pkg/web/handler"
)

// RegisterAPIs 注册所有路由。
// 全局中间件在middleware.Register中挂载，这里只负责路由表
func RegisterAPIs(h *server.Hertz, userHandler *handler.UserHandler, healthHandler *handler.HealthCheckHandler, sessionAuth, sessionLoad app.HandlerFunc) {
	// 基础接口
	h.GET("/health", healthHandler.AdvancedHealthCheck)
	h.GET("/", sessionLoad, userHandler.Index)

	// 注册验证握手
	h.GET("/signup", userHandler.ShowSignup)
	h.POST("/signup", userHandler.Signup)
	h.GET("/email_verification", userHandler.ShowVerification)
	h.POST("/email_verification", userHandler.Verify)

	// 登录与账号操作
	h.GET("/login", userHandler.ShowLogin)
	h.POST("/login", userHandler.Login)
	h.GET("/profile", sessionAuth, userHandler.Profile)
	h.GET("/delete_history", sessionAuth, userHandler.DeleteHistory)
	h.GET("/logout", sessionAuth, userHandler.Logout)

	// 公开主页与搜索
	h.GET("/users/:name", userHandler.ViewUser)
	h.POST("/search", userHandler.SearchPost)
	h.GET("/search", userHandler.SearchGet)
	h.GET("/search/:query", userHandler.SearchGet)
}
