package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "arcade_session", cfg.Session.CookieName)
	assert.Equal(t, 15*time.Minute, cfg.Session.PendingTTL)
	assert.False(t, cfg.IsProd())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_MAX_AGE", "48h")
	t.Setenv("DB_PORT", "3307")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 48*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.True(t, cfg.IsProd())
}

func TestLoad_InvalidDurationKeepsDefault(t *testing.T) {
	t.Setenv("SESSION_MAX_AGE", "tomorrow")

	cfg := Load()

	// 非法时长静默回退到默认值
	assert.Equal(t, defaultConfig.Session.MaxAge, cfg.Session.MaxAge)
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("true"))
	assert.True(t, parseBool("1"))
	assert.True(t, parseBool("YES"))
	assert.False(t, parseBool("off"))
	assert.False(t, parseBool(""))
}
