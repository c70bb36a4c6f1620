package personnel_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-personnel/internal/domain"
	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka"
	kafkaMock "go-personnel/internal/messaging/kafka/mock"
	"go-personnel/internal/personnel"
	personnelMock "go-personnel/internal/personnel/mock"
	"go-personnel/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var today = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

type deps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	repo       *personnelMock.MockRepository
	outbox     *kafkaMock.MockOutboxRepository
	reconciler personnel.Reconciler
}

func setup(t *testing.T) *deps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := personnelMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	return &deps{
		db:         db,
		sqlMock:    sqlMock,
		repo:       repo,
		outbox:     outbox,
		reconciler: personnel.NewReconciler(db, repo, outbox, clock.Fixed{T: today}),
	}
}

func (d *deps) begin(t *testing.T) *sql.Tx {
	t.Helper()
	d.sqlMock.ExpectBegin()
	tx, err := d.db.Begin()
	require.NoError(t, err)
	return tx
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	companyID := "company-1"
	employeeID := "employee-1"

	t.Run("approved leave covering today moves active to on leave", func(t *testing.T) {
		d := setup(t)
		tx := d.begin(t)

		d.repo.EXPECT().WithTx(tx).Return(d.repo)
		d.repo.EXPECT().LockEmployee(ctx, companyID, employeeID).
			Return(personnel.EmployeeState{ID: employeeID, CompanyID: companyID, Status: domain.StatusActive}, nil)
		d.repo.EXPECT().HasRetirement(ctx, companyID, employeeID).Return(false, nil)
		d.repo.EXPECT().ApprovedLeaves(ctx, companyID, employeeID).
			Return([]domain.LeavePeriod{{Start: day("2026-10-15"), End: day("2026-10-19")}}, nil)
		d.repo.EXPECT().UpdateStatus(ctx, companyID, employeeID, domain.StatusOnLeave).Return(nil)
		d.outbox.EXPECT().WithTx(tx).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.EmployeeStatusChangedType, ev.EventType)
				assert.Contains(t, string(ev.Payload), `"to":"ON_LEAVE"`)
				assert.Contains(t, string(ev.Payload), `"reason":"leave_started"`)
				return nil
			})

		tr, err := d.reconciler.Reconcile(ctx, tx, companyID, employeeID)

		require.NoError(t, err)
		assert.True(t, tr.Changed())
		assert.Equal(t, domain.StatusOnLeave, tr.To)
	})

	t.Run("another approved leave keeps employee on leave", func(t *testing.T) {
		d := setup(t)
		tx := d.begin(t)

		d.repo.EXPECT().WithTx(tx).Return(d.repo)
		d.repo.EXPECT().LockEmployee(ctx, companyID, employeeID).
			Return(personnel.EmployeeState{ID: employeeID, Status: domain.StatusOnLeave}, nil)
		d.repo.EXPECT().HasRetirement(ctx, companyID, employeeID).Return(false, nil)
		d.repo.EXPECT().ApprovedLeaves(ctx, companyID, employeeID).
			Return([]domain.LeavePeriod{{Start: day("2026-10-01"), End: day("2026-10-31")}}, nil)

		tr, err := d.reconciler.Reconcile(ctx, tx, companyID, employeeID)

		require.NoError(t, err)
		assert.False(t, tr.Changed())
	})

	t.Run("no covering leave reverts on leave to active", func(t *testing.T) {
		d := setup(t)
		tx := d.begin(t)

		d.repo.EXPECT().WithTx(tx).Return(d.repo)
		d.repo.EXPECT().LockEmployee(ctx, companyID, employeeID).
			Return(personnel.EmployeeState{ID: employeeID, Status: domain.StatusOnLeave}, nil)
		d.repo.EXPECT().HasRetirement(ctx, companyID, employeeID).Return(false, nil)
		d.repo.EXPECT().ApprovedLeaves(ctx, companyID, employeeID).Return(nil, nil)
		d.repo.EXPECT().UpdateStatus(ctx, companyID, employeeID, domain.StatusActive).Return(nil)
		d.outbox.EXPECT().WithTx(tx).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		tr, err := d.reconciler.Reconcile(ctx, tx, companyID, employeeID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusActive, tr.To)
	})

	t.Run("retirement record wins over leave", func(t *testing.T) {
		d := setup(t)
		tx := d.begin(t)

		d.repo.EXPECT().WithTx(tx).Return(d.repo)
		d.repo.EXPECT().LockEmployee(ctx, companyID, employeeID).
			Return(personnel.EmployeeState{ID: employeeID, Status: domain.StatusOnLeave}, nil)
		d.repo.EXPECT().HasRetirement(ctx, companyID, employeeID).Return(true, nil)
		d.repo.EXPECT().UpdateStatus(ctx, companyID, employeeID, domain.StatusRetired).Return(nil)
		d.outbox.EXPECT().WithTx(tx).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		tr, err := d.reconciler.Reconcile(ctx, tx, companyID, employeeID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusRetired, tr.To)
	})

	t.Run("unknown employee", func(t *testing.T) {
		d := setup(t)
		tx := d.begin(t)

		d.repo.EXPECT().WithTx(tx).Return(d.repo)
		d.repo.EXPECT().LockEmployee(ctx, companyID, employeeID).
			Return(personnel.EmployeeState{}, gorm.ErrRecordNotFound)

		_, err := d.reconciler.Reconcile(ctx, tx, companyID, employeeID)

		assert.ErrorIs(t, err, personnel.ErrEmployeeNotFound)
	})
}

func TestSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("counts changed employees and keeps going on failure", func(t *testing.T) {
		d := setup(t)
		refs := []personnel.EmployeeRef{
			{CompanyID: "c1", EmployeeID: "back-from-leave"},
			{CompanyID: "c1", EmployeeID: "broken"},
			{CompanyID: "c2", EmployeeID: "still-away"},
		}
		d.repo.EXPECT().ListSweepCandidates(ctx, domain.DateOnly(today)).Return(refs, nil)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo).Times(3)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().LockEmployee(ctx, "c1", "back-from-leave").
			Return(personnel.EmployeeState{Status: domain.StatusOnLeave}, nil)
		d.repo.EXPECT().HasRetirement(ctx, "c1", "back-from-leave").Return(false, nil)
		d.repo.EXPECT().ApprovedLeaves(ctx, "c1", "back-from-leave").
			Return([]domain.LeavePeriod{{Start: day("2026-10-01"), End: day("2026-10-18")}}, nil)
		d.repo.EXPECT().UpdateStatus(ctx, "c1", "back-from-leave", domain.StatusActive).Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().LockEmployee(ctx, "c1", "broken").
			Return(personnel.EmployeeState{}, errors.New("lock timeout"))
		d.sqlMock.ExpectRollback()

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().LockEmployee(ctx, "c2", "still-away").
			Return(personnel.EmployeeState{Status: domain.StatusOnLeave}, nil)
		d.repo.EXPECT().HasRetirement(ctx, "c2", "still-away").Return(false, nil)
		d.repo.EXPECT().ApprovedLeaves(ctx, "c2", "still-away").
			Return([]domain.LeavePeriod{{Start: day("2026-10-19"), End: day("2026-10-25")}}, nil)
		d.sqlMock.ExpectCommit()

		changed, err := d.reconciler.Sweep(ctx)

		assert.Equal(t, 1, changed)
		assert.ErrorContains(t, err, "lock timeout")
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("candidate listing failure", func(t *testing.T) {
		d := setup(t)
		d.repo.EXPECT().ListSweepCandidates(ctx, gomock.Any()).Return(nil, errors.New("db down"))

		changed, err := d.reconciler.Sweep(ctx)

		assert.Zero(t, changed)
		assert.Error(t, err)
	})
}
