package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_ENABLED", "DEFAULT_DUES_AMOUNT", "REGISTER_FIRST_MONTH", "JWT_TTL", "ADMIN_USERNAME", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, int64(12000), cfg.Dues.DefaultAmount)
	assert.True(t, cfg.Dues.RegisterFirstMonth)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("DEFAULT_DUES_AMOUNT", "15000")
	t.Setenv("REGISTER_FIRST_MONTH", "false")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.False(t, cfg.DBEnabled)
	assert.Equal(t, int64(15000), cfg.Dues.DefaultAmount)
	assert.False(t, cfg.Dues.RegisterFirstMonth)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Database.MaxConns)
}
