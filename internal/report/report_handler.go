package report

import (
	"context"
	"strings"

	"go-personnel/internal/employee"
	"go-personnel/internal/leave"
	"go-personnel/internal/shared/apperror"
	"go-personnel/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) send(c *gin.Context, build func(ctx context.Context, companyID string) (File, error)) {
	f, err := build(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("report request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.Error(err),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.File(c, f.ContentType, f.Name, f.Data)
}

func employeeFilter(c *gin.Context) employee.EmployeeFilter {
	return employee.EmployeeFilter{
		Status:       strings.TrimSpace(c.Query("status")),
		DepartmentID: strings.TrimSpace(c.Query("department_id")),
		Q:            strings.TrimSpace(c.Query("q")),
	}
}

func leaveFilter(c *gin.Context) leave.LeaveFilter {
	return leave.LeaveFilter{
		EmployeeID: strings.TrimSpace(c.Query("employee_id")),
		Status:     strings.TrimSpace(c.Query("status")),
		From:       strings.TrimSpace(c.Query("from")),
		To:         strings.TrimSpace(c.Query("to")),
	}
}

func (h *Handler) EmployeesPDF(c *gin.Context) {
	filter := employeeFilter(c)
	h.send(c, func(ctx context.Context, companyID string) (File, error) {
		return h.service.EmployeeRosterPDF(ctx, companyID, filter)
	})
}

func (h *Handler) EmployeesXLSX(c *gin.Context) {
	filter := employeeFilter(c)
	h.send(c, func(ctx context.Context, companyID string) (File, error) {
		return h.service.EmployeeRosterXLSX(ctx, companyID, filter)
	})
}

func (h *Handler) LeavesPDF(c *gin.Context) {
	filter := leaveFilter(c)
	h.send(c, func(ctx context.Context, companyID string) (File, error) {
		return h.service.LeaveReportPDF(ctx, companyID, filter)
	})
}

func (h *Handler) LeavesICS(c *gin.Context) {
	filter := leaveFilter(c)
	h.send(c, func(ctx context.Context, companyID string) (File, error) {
		return h.service.LeaveCalendarICS(ctx, companyID, filter)
	})
}

func (h *Handler) UpcomingRetirementsPDF(c *gin.Context) {
	h.send(c, h.service.UpcomingRetirementsPDF)
}
