package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-personnel/internal/domain"
	"go-personnel/internal/leave"
	leaveerrors "go-personnel/internal/leave/errors"
	"go-personnel/internal/personnel"
	personnelMock "go-personnel/internal/personnel/mock"
	"go-personnel/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var now = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

type fakeLeaveRepository struct {
	createFn               func(ctx context.Context, l *leave.Leave) error
	findAllByCompanyFn     func(ctx context.Context, companyID string, filter leave.LeaveFilter) ([]leave.Leave, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*leave.Leave, error)
	findByIDForUpdateFn    func(ctx context.Context, companyID, id string) (*leave.Leave, error)
	findEmployeeFn         func(ctx context.Context, companyID, employeeID string) (*leave.LeaveEmployee, error)
	updateFn               func(ctx context.Context, l *leave.Leave) error
	deleteFn               func(ctx context.Context, companyID, id string) error
	hasOverlappingPeriodFn func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAllByCompany(ctx context.Context, companyID string, filter leave.LeaveFilter) ([]leave.Leave, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindEmployee(ctx context.Context, companyID, employeeID string) (*leave.LeaveEmployee, error) {
	if f.findEmployeeFn != nil {
		return f.findEmployeeFn(ctx, companyID, employeeID)
	}
	return &leave.LeaveEmployee{ID: uuid.MustParse(employeeID), Status: domain.StatusActive}, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, companyID, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

type leaveServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    leave.Service
	repo       *fakeLeaveRepository
	reconciler *personnelMock.MockReconciler
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeLeaveRepository{}
	reconciler := personnelMock.NewMockReconciler(gomock.NewController(t))
	svc := leave.NewService(db, repo, reconciler, clock.Fixed{T: now})

	return &leaveServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		reconciler: reconciler,
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

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  leave.TypeAnnual,
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-03",
			Reason:     "Family event",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			assert.Nil(t, excludeID)
			assert.Equal(t, "2026-03-01", startDate.Format("2006-01-02"))
			assert.Equal(t, "2026-03-03", endDate.Format("2006-01-02"))
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, uuid.MustParse(actorID), l.CreatedBy)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, req)

		require.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlapping period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID, LeaveType: leave.TypeSick, StartDate: "2026-03-01", EndDate: "2026-03-02", Reason: "flu",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("retired employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findEmployeeFn = func(ctx context.Context, cid, eid string) (*leave.LeaveEmployee, error) {
			return &leave.LeaveEmployee{Status: domain.StatusRetired}, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID, LeaveType: leave.TypeAnnual, StartDate: "2026-03-01", EndDate: "2026-03-02", Reason: "trip",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeRetired)
	})

	t.Run("employee of another company", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findEmployeeFn = func(ctx context.Context, cid, eid string) (*leave.LeaveEmployee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID, LeaveType: leave.TypeAnnual, StartDate: "2026-03-01", EndDate: "2026-03-02", Reason: "trip",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotInCompany)
	})

	t.Run("end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID, LeaveType: leave.TypeAnnual, StartDate: "2026-03-05", EndDate: "2026-03-02", Reason: "trip",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("passes normalised filter", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		deps.repo.findAllByCompanyFn = func(ctx context.Context, cid string, filter leave.LeaveFilter) ([]leave.Leave, error) {
			assert.Equal(t, leave.StatusApproved, filter.Status)
			return []leave.Leave{{
				ID: uuid.New(), StartDate: date("2026-01-01"), EndDate: date("2026-01-02"), Status: leave.StatusApproved,
				Employee: &leave.LeaveEmployee{FullName: "Rina", EmployeeNumber: "EMP-000004"},
			}}, nil
		}

		resp, err := deps.service.GetAll(ctx, companyID, leave.LeaveFilter{Status: "approved"})

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Rina", resp[0].EmployeeName)
	})

	t.Run("unknown status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.GetAll(ctx, companyID, leave.LeaveFilter{Status: "SUBMITTED"})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusFilter)
	})
}

func TestLeaveService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	leaveID := uuid.New()

	req := leave.UpdateLeaveRequest{LeaveType: leave.TypeAnnual, StartDate: "2026-04-01", EndDate: "2026-04-05", Reason: "holiday"}

	t.Run("pending leave is editable", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return &leave.Leave{ID: leaveID, EmployeeID: uuid.New(), Status: leave.StatusPending}, nil
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, s, e time.Time, excludeID *string) (bool, error) {
			require.NotNil(t, excludeID)
			assert.Equal(t, leaveID.String(), *excludeID)
			return false, nil
		}

		resp, err := deps.service.Update(ctx, companyID, actorID, leaveID.String(), req)

		require.NoError(t, err)
		assert.Equal(t, 5, resp.TotalDays)
	})

	t.Run("approved leave is not editable", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return &leave.Leave{ID: leaveID, Status: leave.StatusApproved}, nil
		}

		_, err := deps.service.Update(ctx, companyID, actorID, leaveID.String(), req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotEditable)
	})
}

func TestLeaveService_Transitions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	leaveID := uuid.New()
	employeeID := uuid.New()

	pending := func() *leave.Leave {
		return &leave.Leave{
			ID: leaveID, EmployeeID: employeeID, Status: leave.StatusPending,
			StartDate: date("2026-10-18"), EndDate: date("2026-10-20"),
		}
	}

	t.Run("approve reconciles in the same transaction", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return pending(), nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, leave.StatusApproved, l.Status)
			require.NotNil(t, l.ApprovedBy)
			assert.Equal(t, actorID, l.ApprovedBy.String())
			assert.Equal(t, now, *l.ApprovedAt)
			return nil
		}
		deps.reconciler.EXPECT().
			Reconcile(ctx, gomock.Any(), companyID, employeeID.String()).
			Return(personnel.Transition{EmployeeID: employeeID.String(), From: domain.StatusActive, To: domain.StatusOnLeave}, nil)

		resp, err := deps.service.Approve(ctx, companyID, actorID, leaveID.String())

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, "ON_LEAVE", resp.EmployeeStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Reject(ctx, companyID, actorID, leaveID.String(), "  ")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})

	t.Run("revoking an approved leave reverts status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			l := pending()
			l.Status = leave.StatusApproved
			return l, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Nil(t, l.ApprovedBy)
			require.NotNil(t, l.RejectionReason)
			assert.Equal(t, "budget freeze", *l.RejectionReason)
			return nil
		}
		deps.reconciler.EXPECT().
			Reconcile(ctx, gomock.Any(), companyID, employeeID.String()).
			Return(personnel.Transition{From: domain.StatusOnLeave, To: domain.StatusActive}, nil)

		resp, err := deps.service.Reject(ctx, companyID, actorID, leaveID.String(), "budget freeze")

		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", resp.EmployeeStatus)
	})

	t.Run("cancelled leave cannot be approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			l := pending()
			l.Status = leave.StatusCancelled
			return l, nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})

	t.Run("re-approving a rejected leave checks overlap", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			l := pending()
			l.Status = leave.StatusRejected
			return l, nil
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, s, e time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("approving for a retired employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return pending(), nil
		}
		deps.repo.findEmployeeFn = func(ctx context.Context, cid, eid string) (*leave.LeaveEmployee, error) {
			return &leave.LeaveEmployee{Status: domain.StatusRetired}, nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeRetired)
	})

	t.Run("invalid actor", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Cancel(ctx, companyID, "not-a-uuid", leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidActorID)
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	leaveID := uuid.New()
	employeeID := uuid.New()

	t.Run("deleting an approved leave reconciles", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return &leave.Leave{ID: leaveID, EmployeeID: employeeID, Status: leave.StatusApproved}, nil
		}
		deps.reconciler.EXPECT().
			Reconcile(ctx, gomock.Any(), companyID, employeeID.String()).
			Return(personnel.Transition{From: domain.StatusOnLeave, To: domain.StatusActive}, nil)

		assert.NoError(t, deps.service.Delete(ctx, companyID, leaveID.String()))
	})

	t.Run("deleting a pending leave skips reconcile", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return &leave.Leave{ID: leaveID, EmployeeID: employeeID, Status: leave.StatusPending}, nil
		}

		assert.NoError(t, deps.service.Delete(ctx, companyID, leaveID.String()))
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		err := deps.service.Delete(ctx, companyID, leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}
