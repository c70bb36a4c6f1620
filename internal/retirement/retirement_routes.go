package retirement

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RegisterRoutes expects r to already carry the authentication middleware.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	retirements := r.Group("/retirements")
	{
		retirements.GET("", middleware.RBACAuthorize(rbacService, "retirement", "read"), handler.GetAll)
		retirements.GET("/upcoming", middleware.RBACAuthorize(rbacService, "retirement", "read"), handler.Upcoming)
		retirements.POST("/batch",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "retirement", "process"),
			middleware.Idempotency(rdb, logger),
			handler.RunBatch,
		)
		retirements.GET("/:id", middleware.RBACAuthorize(rbacService, "retirement", "read"), handler.GetById)
		retirements.GET("/:id/decree", middleware.RBACAuthorize(rbacService, "retirement", "read"), handler.DownloadDecree)
	}

	employees := r.Group("/employees/:id")
	{
		employees.GET("/retirements", middleware.RBACAuthorize(rbacService, "retirement", "read"), handler.GetByEmployee)
		employees.POST("/retire",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "retirement", "process"),
			handler.Process,
		)
	}
}
