package rbac_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-personnel/internal/domain"
	"go-personnel/internal/rbac"
	rbacMock "go-personnel/internal/rbac/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := rbacMock.NewMockService(ctrl)

	svc.EXPECT().
		Enforce(gomock.Any(), domain.EnforceRequest{EmployeeID: "emp-1", CompanyID: "company-1", Resource: "employee", Action: "read"}).
		Return(true, nil)

	router := gin.New()
	router.POST("/rbac/enforce", func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Set("employee_id", "emp-1")
		c.Next()
	}, rbac.NewHandler(svc).Enforce)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":"employee","action":"read"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Ok   bool                   `json:"ok"`
		Data domain.EnforceResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Allowed)
}

func TestHandler_CreateRole_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := rbacMock.NewMockService(ctrl)

	router := gin.New()
	router.POST("/rbac/roles", rbac.NewHandler(svc).CreateRole)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rbac/roles", strings.NewReader(`{"description":"no name"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ListRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := rbacMock.NewMockService(ctrl)
	svc.EXPECT().ListRoles(gomock.Any(), "company-1").DoAndReturn(
		func(ctx context.Context, companyID string) ([]domain.RoleResponse, error) {
			return []domain.RoleResponse{{ID: "r-1", Name: "ADMIN", Permissions: []string{"employee:read"}}}, nil
		})

	router := gin.New()
	router.GET("/rbac/roles", func(c *gin.Context) { c.Set("company_id", "company-1") }, rbac.NewHandler(svc).ListRoles)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/roles", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ADMIN")
}
