package company

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts the unauthenticated onboarding endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/companies/register", middleware.RateLimitByIP(0.02, 1), h.Onboard)
}

// RegisterRoutes mounts /companies/me on a group that already authenticates callers.
// The company is always the caller's own.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	can := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, "company", action)
	}

	g := r.Group("/companies/me")
	g.GET("", middleware.RateLimitByUser(2, 10), h.GetMe)
	g.PUT("", middleware.RateLimitByUser(0.1, 1), can("update"), h.UpdateMe)

	g.GET("/registrations", middleware.RateLimitByUser(1, 5), can("read"), h.ListRegistrations)
	g.PUT("/registrations", middleware.RateLimitByUser(0.5, 1), can("update"), h.UpsertRegistration)
	g.DELETE("/registrations/:type", middleware.RateLimitByUser(0.1, 1), can("update"), h.DeleteRegistration)
}
