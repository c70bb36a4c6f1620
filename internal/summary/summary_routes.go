package summary

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	summaries := r.Group("/summaries",
		middleware.RateLimitByUser(0.2, 2),
		middleware.RBACAuthorize(rbacService, "summary", "create"),
	)
	{
		summaries.POST("/leaves/:id", handler.SummarizeLeave)
		summaries.POST("/employees/:id", handler.SummarizeEmployee)
	}
}
