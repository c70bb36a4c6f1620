package auth

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /auth. Register is reserved for callers allowed to create user accounts
// in their own company.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string, rbacService middleware.RBACService) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.2, 5), handler.RefreshToken)
		auth.POST("/register",
			middleware.AuthMiddleware(jwtSecret),
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "create"),
			handler.Register,
		)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(jwtSecret), middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
