package mutation_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-personnel/internal/mutation"
	mutationerrors "go-personnel/internal/mutation/errors"
	mutationMock "go-personnel/internal/mutation/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *mutationMock.MockService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mutationMock.NewMockService(ctrl)
	h := mutation.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Set("employee_id", "actor-1")
		c.Next()
	})
	r.GET("/employees/:id/mutations", h.GetAll)
	r.GET("/employees/:id/mutations/:mutationId", h.GetById)
	r.POST("/employees/:id/mutations", h.Create)
	r.DELETE("/employees/:id/mutations/:mutationId", h.Delete)
	return r, svc
}

func do(r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().
			Create(gomock.Any(), "company-1", "actor-1", "emp-1", mutation.CreateMutationRequest{
				MutationType:  mutation.TypeGradeChange,
				EffectiveDate: "2026-10-19",
				DecreeNumber:  "SK-1",
				NewGrade:      "III/d",
			}).
			Return(mutation.MutationResponse{ID: "m-1", Applied: true}, nil)

		w, env := do(r, http.MethodPost, "/employees/emp-1/mutations",
			`{"mutation_type":"GRADE_CHANGE","effective_date":"2026-10-19","decree_number":"SK-1","new_grade":"III/d"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Ok)
	})

	t.Run("unknown type fails validation", func(t *testing.T) {
		r, _ := setupRouter(t)

		w, env := do(r, http.MethodPost, "/employees/emp-1/mutations",
			`{"mutation_type":"DEMOTION","effective_date":"2026-10-19","decree_number":"SK-1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("retired employee conflict", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Create(gomock.Any(), "company-1", "actor-1", "emp-1", gomock.Any()).
			Return(mutation.MutationResponse{}, mutationerrors.ErrEmployeeRetired)

		w, _ := do(r, http.MethodPost, "/employees/emp-1/mutations",
			`{"mutation_type":"PROMOTION","effective_date":"2026-10-19","decree_number":"SK-1","new_position_title":"Kepala"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_GetAll(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().ListByEmployee(gomock.Any(), "company-1", "emp-1").
		Return([]mutation.MutationResponse{{ID: "m-1"}, {ID: "m-2"}}, nil)

	w, env := do(r, http.MethodGet, "/employees/emp-1/mutations", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var items []mutation.MutationResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}

func TestHandler_GetById_NotFound(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().GetByID(gomock.Any(), "company-1", "emp-1", "m-9").
		Return(mutation.MutationResponse{}, mutationerrors.ErrMutationNotFound)

	w, _ := do(r, http.MethodGet, "/employees/emp-1/mutations/m-9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Delete(gomock.Any(), "company-1", "emp-1", "m-1").Return(nil)

		w, _ := do(r, http.MethodDelete, "/employees/emp-1/mutations/m-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not latest applied", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Delete(gomock.Any(), "company-1", "emp-1", "m-1").Return(mutationerrors.ErrNotLatestApplied)

		w, _ := do(r, http.MethodDelete, "/employees/emp-1/mutations/m-1", "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
