package department_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-personnel/internal/department"
	departmenterrors "go-personnel/internal/department/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentService struct {
	CreateFn  func(ctx context.Context, companyID string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn  func(ctx context.Context, companyID string) ([]department.DepartmentResponse, error)
	GetByIDFn func(ctx context.Context, companyID, id string) (department.DepartmentResponse, error)
	UpdateFn  func(ctx context.Context, companyID, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteFn  func(ctx context.Context, companyID, id string) error
}

func (f *fakeDepartmentService) Create(ctx context.Context, companyID string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context, companyID string) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx, companyID)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, companyID, id string) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, companyID, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withCompany(companyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Next()
	}
}

func TestDepartmentHandler_Create(t *testing.T) {
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, cid string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				assert.Equal(t, companyID, cid)
				return department.DepartmentResponse{ID: uuid.New().String(), Code: req.Code, Name: req.Name, CompanyID: cid}, nil
			},
		}
		r := setupRouter()
		r.POST("/departments", withCompany(companyID), department.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"code":"HR","name":"Human Resources"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Human Resources")
	})

	t.Run("missing code", func(t *testing.T) {
		r := setupRouter()
		r.POST("/departments", withCompany(companyID), department.NewHandler(&fakeDepartmentService{}).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"Human Resources"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}

func TestDepartmentHandler_GetById_NotFound(t *testing.T) {
	svc := &fakeDepartmentService{
		GetByIDFn: func(ctx context.Context, companyID, id string) (department.DepartmentResponse, error) {
			return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		},
	}
	r := setupRouter()
	r.GET("/departments/:id", withCompany("c-1"), department.NewHandler(svc).GetById)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/departments/x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestDepartmentHandler_Delete_InUse(t *testing.T) {
	svc := &fakeDepartmentService{
		DeleteFn: func(ctx context.Context, companyID, id string) error {
			return departmenterrors.ErrDepartmentInUse
		},
	}
	r := setupRouter()
	r.DELETE("/departments/:id", withCompany("c-1"), department.NewHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/departments/d-1", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}
