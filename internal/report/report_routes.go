package report

import (
	"go-personnel/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	reports := r.Group("/reports",
		middleware.RateLimitByUser(0.5, 3),
		middleware.RBACAuthorize(rbacService, "report", "read"),
	)
	{
		reports.GET("/employees.pdf", handler.EmployeesPDF)
		reports.GET("/employees.xlsx", handler.EmployeesXLSX)
		reports.GET("/leaves.pdf", handler.LeavesPDF)
		reports.GET("/leaves.ics", handler.LeavesICS)
		reports.GET("/retirements/upcoming.pdf", handler.UpcomingRetirementsPDF)
	}
}
