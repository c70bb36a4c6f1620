package employee

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Per-user token buckets: reads are cheap, deletes are rare.
var (
	readLimit   = func() gin.HandlerFunc { return middleware.RateLimitByUser(3, 10) }
	writeLimit  = func() gin.HandlerFunc { return middleware.RateLimitByUser(0.5, 2) }
	deleteLimit = func() gin.HandlerFunc { return middleware.RateLimitByUser(0.1, 1) }
)

// RegisterRoutes mounts /employees on a group that already authenticates callers.
// Creation is idempotent per Idempotency-Key when rdb is set.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	can := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, "employee", action)
	}

	g := r.Group("/employees")

	g.GET("", readLimit(), can("read"), handler.GetAll)
	g.GET("/options", middleware.RateLimitByUser(5, 20), can("read"), handler.GetOptions)
	g.GET("/statistics", readLimit(), can("read"), handler.GetStatistics)
	g.GET("/:id", readLimit(), can("read"), handler.GetById)

	g.POST("", writeLimit(), can("create"), middleware.Idempotency(rdb, logger), handler.Create)
	g.PUT("/:id", writeLimit(), can("update"), handler.Update)
	g.DELETE("/:id", deleteLimit(), can("delete"), handler.Delete)
}
