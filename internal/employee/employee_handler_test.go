package employee_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-personnel/internal/employee"
	employeeerrors "go-personnel/internal/employee/errors"
	employeeMock "go-personnel/internal/employee/mock"
	"go-personnel/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newHandlerContext(method, target, body string, companyID string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Set("company_id", companyID)
	return c, w
}

type envelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Meta struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"meta"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestEmployeeHandler_Create(t *testing.T) {
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employeeMock.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), companyID, gomock.Any()).
			DoAndReturn(func(_ any, _ string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John Doe", req.FullName)
				assert.Equal(t, "1970-05-01", req.BirthDate)
				return employee.EmployeeResponse{ID: uuid.New().String(), FullName: req.FullName, Status: "ACTIVE"}, nil
			})

		c, w := newHandlerContext(http.MethodPost, "/employees",
			`{"full_name":"John Doe","email":"john@example.com","birth_date":"1970-05-01","hire_date":"1994-01-01"}`, companyID)
		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "John Doe")
	})

	t.Run("validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employeeMock.NewMockService(ctrl)

		c, w := newHandlerContext(http.MethodPost, "/employees", `{"full_name":"x","email":"bad","hire_date":"01/01/2020"}`, companyID)
		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("unexpected service error is hidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employeeMock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(employee.EmployeeResponse{}, errors.New("database connection failed"))

		c, w := newHandlerContext(http.MethodPost, "/employees",
			`{"full_name":"HR","email":"hr@company.com","hire_date":"2026-01-02"}`, companyID)
		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database connection failed")
	})

	t.Run("duplicate employee number returns conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employeeMock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNumberAlreadyExists)

		c, w := newHandlerContext(http.MethodPost, "/employees",
			`{"full_name":"John Doe","email":"john2@example.com","employee_number":"EMP-900","hire_date":"2026-01-01"}`, companyID)
		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	companyID := uuid.New().String()

	t.Run("filters, sorts and paginates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employeeMock.NewMockService(ctrl)
		svc.EXPECT().
			GetAll(gomock.Any(), companyID, employee.EmployeeFilter{Status: "ACTIVE", Q: "doe"}).
			Return([]employee.EmployeeResponse{
				{ID: "1", FullName: "John Doe", EmployeeNumber: "EMP-000002"},
				{ID: "2", FullName: "Jane Doe", EmployeeNumber: "EMP-000001"},
				{ID: "3", FullName: "Abe Doe", EmployeeNumber: "EMP-000003"},
			}, nil)

		c, w := newHandlerContext(http.MethodGet, "/employees?status=ACTIVE&q=doe&sort_by=employee_number&page=1&page_size=2", "", companyID)
		employee.NewHandler(svc).GetAll(c)

		require.Equal(t, http.StatusOK, w.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var items []employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(env.Data, &items))
		require.Len(t, items, 2)
		assert.Equal(t, "Jane Doe", items[0].FullName)
		assert.Equal(t, int64(3), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.TotalPages)
	})

	t.Run("invalid status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := employeeMock.NewMockService(ctrl)
		svc.EXPECT().GetAll(gomock.Any(), companyID, gomock.Any()).
			Return(nil, employeeerrors.ErrInvalidStatusFilter)

		c, w := newHandlerContext(http.MethodGet, "/employees?status=GONE", "", companyID)
		employee.NewHandler(svc).GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	companyID := uuid.New().String()
	targetID := uuid.New().String()

	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	svc.EXPECT().GetByID(gomock.Any(), companyID, targetID).
		Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

	c, w := newHandlerContext(http.MethodGet, "/employees/"+targetID, "", companyID)
	c.Params = gin.Params{{Key: "id", Value: targetID}}
	employee.NewHandler(svc).GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Employee not found")
}

func TestEmployeeHandler_Update(t *testing.T) {
	companyID := uuid.New().String()
	targetID := uuid.New().String()

	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	svc.EXPECT().Update(gomock.Any(), companyID, targetID, gomock.Any()).
		Return(employee.EmployeeResponse{ID: targetID, FullName: "Updated"}, nil)

	c, w := newHandlerContext(http.MethodPut, "/employees/"+targetID,
		`{"full_name":"Updated","email":"u@example.com","employee_number":"EMP-1","hire_date":"2020-01-01"}`, companyID)
	c.Params = gin.Params{{Key: "id", Value: targetID}}
	employee.NewHandler(svc).Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Updated")
}

func TestEmployeeHandler_Delete(t *testing.T) {
	companyID := uuid.New().String()
	targetID := uuid.New().String()

	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	svc.EXPECT().Delete(gomock.Any(), companyID, targetID).Return(nil)

	c, w := newHandlerContext(http.MethodDelete, "/employees/"+targetID, "", companyID)
	c.Params = gin.Params{{Key: "id", Value: targetID}}
	employee.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

func TestEmployeeHandler_GetStatistics(t *testing.T) {
	companyID := uuid.New().String()

	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	svc.EXPECT().GetStatistics(gomock.Any(), companyID).
		Return(employee.EmployeeStatisticsResponse{Total: 4, Active: 3, Retired: 1, UpcomingRetirements: 2}, nil)

	c, w := newHandlerContext(http.MethodGet, "/employees/statistics", "", companyID)
	employee.NewHandler(svc).GetStatistics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"upcoming_retirements":2`)
}

func TestEmployeeHandler_GetAllSortsByNameDescending(t *testing.T) {
	companyID := uuid.New().String()
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	svc.EXPECT().GetAll(gomock.Any(), companyID, employee.EmployeeFilter{}).
		Return([]employee.EmployeeResponse{
			{ID: "1", FullName: "budi"},
			{ID: "2", FullName: "Citra"},
			{ID: "3", FullName: "Agus"},
		}, nil)

	c, w := newHandlerContext(http.MethodGet, "/employees?sort_dir=DESC", "", companyID)
	employee.NewHandler(svc).GetAll(c)

	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var items []employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 3)
	assert.Equal(t, []string{"2", "1", "3"}, []string{items[0].ID, items[1].ID, items[2].ID})
}
