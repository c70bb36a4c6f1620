// Package contextutil carries request metadata across layers that do not see gin.Context.
package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	callerKey
	loggerKey
)

// Caller identifies who is acting on behalf of a request.
type Caller struct {
	UserID     string
	CompanyID  string
	EmployeeID string
}

// Actor prefers the linked employee and falls back to the account id.
func (c Caller) Actor() string {
	if c.EmployeeID != "" {
		return c.EmployeeID
	}
	return c.UserID
}

func lookup[T any](ctx context.Context, key ctxKey) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(key).(T)
	return v, ok
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	rid, _ := lookup[string](ctx, requestIDKey)
	return rid
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

func CallerFrom(ctx context.Context) Caller {
	c, _ := lookup[Caller](ctx, callerKey)
	return c
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger returns the request-scoped logger, else fallback, else a no-op logger.
func Logger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := lookup[*zap.Logger](ctx, loggerKey); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}
