package contextutil_test

import (
	"context"
	"testing"

	"go-personnel/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestID(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "rid-1")

	assert.Equal(t, "rid-1", contextutil.GetRequestID(ctx))
	assert.Empty(t, contextutil.GetRequestID(context.Background()))
}

func TestCaller(t *testing.T) {
	ctx := contextutil.WithCaller(context.Background(), contextutil.Caller{UserID: "u-1", CompanyID: "c-1"})

	got := contextutil.CallerFrom(ctx)
	assert.Equal(t, "c-1", got.CompanyID)
	assert.Equal(t, "u-1", got.Actor())

	got.EmployeeID = "e-1"
	assert.Equal(t, "e-1", got.Actor())
	assert.Equal(t, contextutil.Caller{}, contextutil.CallerFrom(context.Background()))
}

func TestLogger(t *testing.T) {
	fallback := zap.NewNop().Named("fallback")
	scoped := zap.NewNop().Named("scoped")

	assert.Same(t, fallback, contextutil.Logger(context.Background(), fallback))
	assert.Same(t, scoped, contextutil.Logger(contextutil.WithLogger(context.Background(), scoped), fallback))
	assert.NotNil(t, contextutil.Logger(context.Background(), nil))
}
