package middleware

import (
	"go-personnel/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger must run after AuthMiddleware so the caller is known.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = c.GetHeader("X-Request-ID")
		}
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		caller := contextutil.Caller{
			UserID:     c.GetString("user_id"),
			CompanyID:  c.GetString("company_id"),
			EmployeeID: c.GetString("employee_id"),
		}

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", caller.UserID),
			zap.String("company_id", caller.CompanyID),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithCaller(ctx, caller)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
