package department

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /departments on a group that already authenticates callers.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	can := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, "department", action)
	}

	g := r.Group("/departments")
	g.GET("", can("read"), h.GetAll)
	g.GET("/:id", can("read"), h.GetById)
	g.POST("", can("create"), h.Create)
	g.PUT("/:id", can("update"), h.Update)
	g.DELETE("/:id", can("delete"), h.Delete)
}
