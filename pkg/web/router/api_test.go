// pkg/web/router/api_test.go
package router_test

import (
	"context"
	"html/template"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/app/server/render"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"

	"game-arcade/pkg/common/config"
	apperr "game-arcade/pkg/common/errors"
	actmodel "game-arcade/pkg/core/activity/model"
	"game-arcade/pkg/core/mail"
	"game-arcade/pkg/core/session"
	"game-arcade/pkg/core/user/model"
	"game-arcade/pkg/core/user/service"
	"game-arcade/pkg/core/verify"
	"game-arcade/pkg/web/handler"
	"game-arcade/pkg/web/middleware"
	"game-arcade/pkg/web/router"
)

// stubUserRepo 路由层测试只关心状态码，仓储给最小实现即可
type stubUserRepo struct{}

func (stubUserRepo) FindByEmail(string) (model.User, error) {
	return model.User{}, apperr.ErrNotFound
}

func (stubUserRepo) FindByName(string) (model.User, error) {
	return model.User{}, apperr.ErrNotFound
}

func (stubUserRepo) EmailExists(string) (bool, error)          { return false, nil }
func (stubUserRepo) Create(u model.User) (model.User, error)   { return u, nil }
func (stubUserRepo) SearchByName(string) ([]model.User, error) { return nil, nil }

type stubActivityRepo struct{}

func (stubActivityRepo) ListByUser(int64) ([]actmodel.ActivitySession, error) { return nil, nil }
func (stubActivityRepo) DeleteAllForUser(int64) error                         { return nil }

type noopMailer struct{}

func (noopMailer) SendVerificationCode(context.Context, string, string) error { return nil }

func newTestServer(t *testing.T) *server.Hertz {
	t.Helper()

	h := server.New()
	h.LoadHTMLGlob("../../../templates/*.tmpl")

	cfg := config.Load()
	sessions := session.NewMemoryStore()
	pending := verify.NewMemoryPendingStore()

	var mailer mail.Mailer = noopMailer{}
	registration := service.NewRegistrationService(stubUserRepo{}, pending, mailer, 15*time.Minute)
	accounts := service.NewAccountService(stubUserRepo{}, stubActivityRepo{}, sessions, time.Hour, 30*24*time.Hour)
	search := service.NewSearchService(stubUserRepo{})

	userHandler := handler.NewUserHandler(registration, accounts, search, cfg.Session)
	healthHandler := handler.NewHealthCheckHandler(nil, nil)

	sessionAuth := middleware.SessionAuthMiddleware(sessions, cfg.Session.CookieName)
	sessionLoad := middleware.SessionLoadMiddleware(sessions, cfg.Session.CookieName)
	router.RegisterAPIs(h, userHandler, healthHandler, sessionAuth, sessionLoad)
	return h
}

// performRequest mirrors ut.PerformRequest but sets ctx.HTMLRender, which the
// ut package only wires up during real HTTP serving; without it ctx.HTML panics.
func performRequest(engine *route.Engine, method, url string, body *ut.Body, headers ...ut.Header) *ut.ResponseRecorder {
	ctx := ut.CreateUtRequestContext(method, url, body, headers...)
	tmpl := template.Must(template.ParseGlob("../../../templates/*.tmpl"))
	ctx.HTMLRender = render.HTMLProduction{Template: tmpl}
	engine.ServeHTTP(context.Background(), ctx)

	w := ut.NewRecorder()
	h := w.Header()
	ctx.Response.Header.CopyTo(h)
	w.WriteHeader(ctx.Response.StatusCode())
	w.Write(ctx.Response.Body())
	w.Flush()
	return w
}

func TestSignupFormRoute(t *testing.T) {
	h := newTestServer(t)

	w := performRequest(h.Engine, "GET", "/signup", nil)
	resp := w.Result()

	assert.Equal(t, 200, resp.StatusCode())
}

func TestUnknownUserRendersNotFound(t *testing.T) {
	h := newTestServer(t)

	w := performRequest(h.Engine, "GET", "/users/ghost", nil)
	resp := w.Result()

	assert.Equal(t, 404, resp.StatusCode())
}

func TestProfileRequiresSession(t *testing.T) {
	h := newTestServer(t)

	// 没有会话Cookie应该被重定向到登录页
	w := performRequest(h.Engine, "GET", "/profile", nil)
	resp := w.Result()

	assert.Equal(t, 303, resp.StatusCode())
	assert.Equal(t, "/login", string(resp.Header.Peek("Location")))
}

func TestSearchEmptyQueryRoute(t *testing.T) {
	h := newTestServer(t)

	w := performRequest(h.Engine, "GET", "/search", nil)
	resp := w.Result()

	assert.Equal(t, 200, resp.StatusCode())
}
