package mutation

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	mutations := r.Group("/employees/:id/mutations")
	{
		mutations.GET("", middleware.RBACAuthorize(rbacService, "mutation", "read"), handler.GetAll)
		mutations.GET("/:mutationId", middleware.RBACAuthorize(rbacService, "mutation", "read"), handler.GetById)
		mutations.POST("", middleware.RBACAuthorize(rbacService, "mutation", "create"), handler.Create)
		mutations.DELETE("/:mutationId", middleware.RBACAuthorize(rbacService, "mutation", "delete"), handler.Delete)
	}
}
