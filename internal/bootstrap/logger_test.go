package bootstrap_test

import (
	"context"
	"testing"

	"go-personnel/internal/bootstrap"
	"go-personnel/internal/config"
	"go-personnel/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	t.Run("respects level", func(t *testing.T) {
		logger, err := bootstrap.NewLogger(config.LogConfig{Level: "warn", Format: "json"})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := bootstrap.NewLogger(config.LogConfig{Level: "loud"})
		assert.Error(t, err)
	})
}

func TestStdoutAuditLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audit := bootstrap.NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "REQ-1")
	audit.Log(ctx, bootstrap.AuditLog{Action: "RETIREMENT_BATCH", Message: "2 employee(s) retired"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)
	fields := entries[0].ContextMap()
	assert.Equal(t, "RETIREMENT_BATCH", fields["action"])
	assert.Equal(t, "REQ-1", fields["request_id"])
}
