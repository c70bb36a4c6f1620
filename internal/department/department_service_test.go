package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-personnel/internal/department"
	departmenterrors "go-personnel/internal/department/errors"

	departmentMock "go-personnel/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	svc := department.NewService(db, repo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := "c56a4180-65aa-42ec-a945-5fd21dec0538"
	cacheKey := department.GetDepartmentsCacheKey(companyID)

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expected := []department.DepartmentResponse{{ID: "d-1", Code: "HR", Name: "Human Resources"}}
		raw, _ := json.Marshal(expected)
		deps.redismock.ExpectGet(cacheKey).SetVal(string(raw))

		resp, err := deps.service.GetAll(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAllByCompany(ctx, companyID).Return([]department.Department{
			{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), Code: "FIN", Name: "Finance"},
		}, nil)
		deps.redismock.Regexp().ExpectSet(cacheKey, `.*`, time.Hour).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "FIN", resp[0].Code)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success normalises code and invalidates cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, d *department.Department) error {
			assert.Equal(t, "OPS", d.Code)
			assert.Equal(t, companyID, d.CompanyID.String())
			return nil
		})
		deps.redismock.ExpectDel(department.GetDepartmentsCacheKey(companyID)).SetVal(1)

		resp, err := deps.service.Create(ctx, companyID, department.CreateDepartmentRequest{Code: " ops ", Name: "Operations"})

		assert.NoError(t, err)
		assert.Equal(t, "Operations", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate code", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_department_code"})

		_, err := deps.service.Create(ctx, companyID, department.CreateDepartmentRequest{Code: "OPS", Name: "Operations"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentCodeExists)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	deps.repo.EXPECT().FindByIDAndCompany(ctx, "c-1", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := deps.service.GetByID(ctx, "c-1", "missing")

	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
}

func TestDepartmentService_Update(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id.String()).
		Return(&department.Department{ID: id, CompanyID: uuid.MustParse(companyID), Code: "OLD", Name: "Old"}, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	deps.redismock.ExpectDel(department.GetDepartmentsCacheKey(companyID)).SetVal(1)

	resp, err := deps.service.Update(ctx, companyID, id.String(), department.UpdateDepartmentRequest{Code: "new", Name: "New"})

	assert.NoError(t, err)
	assert.Equal(t, "NEW", resp.Code)
	assert.Equal(t, "New", resp.Name)
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("rejected while employees are assigned", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountEmployees(ctx, companyID, "d-1").Return(int64(3), nil)

		err := deps.service.Delete(ctx, companyID, "d-1")

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountEmployees(ctx, companyID, "d-1").Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, companyID, "d-1").Return(nil)
		deps.redismock.ExpectDel(department.GetDepartmentsCacheKey(companyID)).SetVal(1)

		assert.NoError(t, deps.service.Delete(ctx, companyID, "d-1"))
	})

	t.Run("repository error passes through", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountEmployees(ctx, companyID, "d-1").Return(int64(0), errors.New("db down"))

		assert.EqualError(t, deps.service.Delete(ctx, companyID, "d-1"), "db down")
	})
}
