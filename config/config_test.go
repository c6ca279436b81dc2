package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "operation failed"
	testErr := errors.New("internal database error")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时返回 err.Error()（视为开发环境）
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "USD", cfg.Ledger.Currency)
	assert.Equal(t, time.Minute, cfg.RateLimit.LoginWindow())
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadConfig_ExternalFileAndEnv(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  driver: postgres\n  port: \"5432\"\nledger:\n  currency: EUR\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DONATION_SERVER_MODE", "release")
	t.Setenv("JWT_SECRET", "from-legacy-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "EUR", cfg.Ledger.Currency)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "from-legacy-env", cfg.JWT.Secret)
	// 未覆盖的项保持内置默认
	assert.Equal(t, "donations", cfg.Database.DBName)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.RateLimit.LoginMaxAttempts)
	assert.Equal(t, 60, cfg.RateLimit.LoginWindowSeconds)
}
