package employee

import (
	"net/http"
	"slices"
	"strings"

	"go-personnel/internal/shared/apperror"
	"go-personnel/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) abort(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("company_id", c.GetString("company_id")),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) decode(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Debug("employee payload rejected", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return false
	}
	return true
}

func respond[T any](h *Handler, c *gin.Context, status int, data T, err error) {
	if err != nil {
		h.abort(c, err)
		return
	}
	response.Success(c, status, data, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if !h.decode(c, &req) {
		return
	}
	resp, err := h.service.Create(c.Request.Context(), c.GetString("company_id"), req)
	respond(h, c, http.StatusCreated, resp, err)
}

type employeeOrder func(a, b EmployeeResponse) int

// byName orders names the way Indonesian readers expect, ignoring case.
// A Collator is not safe for concurrent use, so each sort gets its own.
func byName() employeeOrder {
	coll := collate.New(language.Indonesian, collate.IgnoreCase)
	return func(a, b EmployeeResponse) int {
		return coll.CompareString(a.FullName, b.FullName)
	}
}

var employeeOrders = map[string]employeeOrder{
	"email": func(a, b EmployeeResponse) int {
		return strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	},
	"employee_number": func(a, b EmployeeResponse) int {
		return strings.Compare(a.EmployeeNumber, b.EmployeeNumber)
	},
	// ISO dates sort lexically.
	"hire_date": func(a, b EmployeeResponse) int {
		return strings.Compare(a.HireDate, b.HireDate)
	},
	"retirement_date": func(a, b EmployeeResponse) int {
		return strings.Compare(a.RetirementDate, b.RetirementDate)
	},
}

// sortEmployees applies ?sort_by and ?sort_dir; unknown keys fall back to name ascending.
func sortEmployees(c *gin.Context, rows []EmployeeResponse) {
	order, ok := employeeOrders[strings.ToLower(strings.TrimSpace(c.Query("sort_by")))]
	if !ok {
		order = byName()
	}
	desc := strings.EqualFold(strings.TrimSpace(c.Query("sort_dir")), "desc")
	slices.SortStableFunc(rows, func(a, b EmployeeResponse) int {
		if desc {
			return order(b, a)
		}
		return order(a, b)
	})
}

func (h *Handler) GetAll(c *gin.Context) {
	filter := EmployeeFilter{
		Status:       strings.TrimSpace(c.Query("status")),
		DepartmentID: strings.TrimSpace(c.Query("department_id")),
		Q:            c.Query("q"),
	}
	rows, err := h.service.GetAll(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		h.abort(c, err)
		return
	}

	sortEmployees(c, rows)
	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(rows, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context(), c.GetString("company_id"))
	respond(h, c, http.StatusOK, resp, err)
}

func (h *Handler) GetStatistics(c *gin.Context) {
	resp, err := h.service.GetStatistics(c.Request.Context(), c.GetString("company_id"))
	respond(h, c, http.StatusOK, resp, err)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	respond(h, c, http.StatusOK, resp, err)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if !h.decode(c, &req) {
		return
	}
	resp, err := h.service.Update(c.Request.Context(), c.GetString("company_id"), c.Param("id"), req)
	respond(h, c, http.StatusOK, resp, err)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	respond(h, c, http.StatusOK, gin.H{"deleted": true}, err)
}
