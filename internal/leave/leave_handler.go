package leave

import (
	"context"
	"net/http"
	"strings"

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

// caller is the tenant and acting employee taken from the auth context.
type caller struct {
	companyID string
	actorID   string
}

func callerOf(c *gin.Context) caller {
	actor := c.GetString("employee_id")
	if actor == "" {
		actor = c.GetString("user_id")
	}
	return caller{companyID: c.GetString("company_id"), actorID: actor}
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Debug("leave payload rejected", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return false
	}
	return true
}

func (h *Handler) reply(c *gin.Context, status int, resp LeaveResponse, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) list(c *gin.Context, filter LeaveFilter) {
	rows, err := h.service.GetAll(c.Request.Context(), callerOf(c).companyID, filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(rows, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if !h.bind(c, &req) {
		return
	}
	who := callerOf(c)
	resp, err := h.service.Create(c.Request.Context(), who.companyID, who.actorID, req)
	h.reply(c, http.StatusCreated, resp, err)
}

func filterFromQuery(c *gin.Context) LeaveFilter {
	return LeaveFilter{
		EmployeeID: strings.TrimSpace(c.Query("employee_id")),
		Status:     strings.TrimSpace(c.Query("status")),
		From:       strings.TrimSpace(c.Query("from")),
		To:         strings.TrimSpace(c.Query("to")),
	}
}

func (h *Handler) GetAll(c *gin.Context) {
	h.list(c, filterFromQuery(c))
}

// Mine lists the caller's own leaves regardless of any employee_id query parameter.
func (h *Handler) Mine(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "No employee linked to this account", nil)
		return
	}
	filter := filterFromQuery(c)
	filter.EmployeeID = employeeID
	h.list(c, filter)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), callerOf(c).companyID, c.Param("id"))
	h.reply(c, http.StatusOK, resp, err)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateLeaveRequest
	if !h.bind(c, &req) {
		return
	}
	who := callerOf(c)
	resp, err := h.service.Update(c.Request.Context(), who.companyID, who.actorID, c.Param("id"), req)
	h.reply(c, http.StatusOK, resp, err)
}

type leaveAction func(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)

func (h *Handler) transition(c *gin.Context, fn leaveAction) {
	who := callerOf(c)
	resp, err := fn(c.Request.Context(), who.companyID, who.actorID, c.Param("id"))
	h.reply(c, http.StatusOK, resp, err)
}

func (h *Handler) Approve(c *gin.Context) { h.transition(c, h.service.Approve) }

func (h *Handler) Cancel(c *gin.Context) { h.transition(c, h.service.Cancel) }

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
	if !h.bind(c, &req) {
		return
	}
	h.transition(c, func(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
		return h.service.Reject(ctx, companyID, actorID, id, req.RejectionReason)
	})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), callerOf(c).companyID, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
