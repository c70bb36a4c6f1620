package report_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-personnel/internal/employee"
	"go-personnel/internal/leave"
	leaveerrors "go-personnel/internal/leave/errors"
	"go-personnel/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*gin.Engine, deps) {
	gin.SetMode(gin.TestMode)
	d := setup(t)
	h := report.NewHandler(d.service)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Next()
	})
	r.GET("/reports/employees.xlsx", h.EmployeesXLSX)
	r.GET("/reports/leaves.ics", h.LeavesICS)
	r.GET("/reports/leaves.pdf", h.LeavesPDF)
	return r, d
}

func TestHandler_EmployeesXLSX(t *testing.T) {
	r, d := setupRouter(t)
	d.employees.EXPECT().GetAll(gomock.Any(), "company-1", employee.EmployeeFilter{Status: "ACTIVE", Q: "budi"}).Return(roster[:1], nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/employees.xlsx?status=ACTIVE&q=budi", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, report.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "employees-2026-10-19.xlsx")
}

func TestHandler_LeavesICS(t *testing.T) {
	r, d := setupRouter(t)
	d.leaves.EXPECT().GetAll(gomock.Any(), "company-1", leave.LeaveFilter{Status: leave.StatusApproved, EmployeeID: "emp-1"}).
		Return([]leave.LeaveResponse{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/leaves.ics?employee_id=emp-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
}

func TestHandler_LeavesPDF_InvalidFilter(t *testing.T) {
	r, d := setupRouter(t)
	d.leaves.EXPECT().GetAll(gomock.Any(), "company-1", leave.LeaveFilter{Status: "nope"}).
		Return(nil, leaveerrors.ErrInvalidStatusFilter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/leaves.pdf?status=nope", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}
