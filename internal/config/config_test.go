package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-personnel/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("PERSONNEL_AUTH_JWT_SECRET", "0123456789abcdef-secret")
	t.Setenv("PERSONNEL_DB_HOST", "db.internal")
	t.Setenv("PERSONNEL_WORKER_STATUS_SWEEP_INTERVAL", "6h")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6*time.Hour, cfg.Worker.StatusSweepInterval)
	assert.Equal(t, 3*time.Second, cfg.Worker.OutboxPollInterval)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 8081\nauth:\n  jwt_secret: file-secret-0123456789\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("PERSONNEL_AUTH_JWT_SECRET", "0123456789abcdef-secret")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 3000},
		Auth:   config.AuthConfig{JWTSecret: "short"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "long-enough-secret-value"
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 8080
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Database.ConnectRetries)
}
