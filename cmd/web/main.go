package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"game-arcade/pkg/common/config"
	actmodel "game-arcade/pkg/core/activity/model"
	actdao "game-arcade/pkg/core/activity/repository/dao/impl"
	"game-arcade/pkg/core/mail"
	"game-arcade/pkg/core/session"
	usermodel "game-arcade/pkg/core/user/model"
	userdao "game-arcade/pkg/core/user/repository/dao/impl"
	"game-arcade/pkg/core/user/service"
	"game-arcade/pkg/core/verify"
	"game-arcade/pkg/web/handler"
	"game-arcade/pkg/web/middleware"
	"game-arcade/pkg/web/router"
)

func main() {
	// 初始化配置
	cfg := config.Load()

	// 初始化数据库连接
	db, err := cfg.InitDB()
	if err != nil {
		hlog.Fatalf("Failed to initialize database: %v", err)
	}

	if err := usermodel.AutoMigrate(db); err != nil {
		hlog.Fatalf("Failed to migrate user table: %v", err)
	}
	if err := actmodel.AutoMigrate(db); err != nil {
		hlog.Fatalf("Failed to migrate activity table: %v", err)
	}

	// 初始化Redis连接（会话与待验证注册存储）
	redisClient, err := cfg.InitRedis()
	if err != nil {
		hlog.Fatalf("Failed to initialize redis: %v", err)
	}

	// 组装各层依赖
	userRepo := userdao.NewGormUserRepository(db)
	activityRepo := actdao.NewGormActivityRepository(db)
	pendingStore := verify.NewRedisPendingStore(redisClient)
	sessionStore := session.NewRedisStore(redisClient)
	mailer := mail.NewSMTPMailer(cfg.SMTP)

	registrationSvc := service.NewRegistrationService(userRepo, pendingStore, mailer, cfg.Session.PendingTTL)
	accountSvc := service.NewAccountService(userRepo, activityRepo, sessionStore,
		cfg.Session.MaxAge, cfg.Session.RememberMaxAge)
	searchSvc := service.NewSearchService(userRepo)

	userHandler := handler.NewUserHandler(registrationSvc, accountSvc, searchSvc, cfg.Session)
	healthHandler := handler.NewHealthCheckHandler(db, redisClient)

	// 创建Hertz实例
	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)

	// 加载HTML模板
	h.LoadHTMLGlob(cfg.Server.TemplateGlob)

	// 注册全局中间件与路由
	middleware.Register(h, cfg)
	router.RegisterAPIs(h, userHandler, healthHandler,
		middleware.SessionAuthMiddleware(sessionStore, cfg.Session.CookieName),
		middleware.SessionLoadMiddleware(sessionStore, cfg.Session.CookieName))

	// 启动服务
	h.Spin()
}
