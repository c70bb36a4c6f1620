package personnel

import (
	"context"
	"database/sql"
	"time"

	"go-personnel/internal/domain"
	"go-personnel/internal/shared/dbtx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeState is the slice of an employee row the reconciler needs.
type EmployeeState struct {
	ID        string
	CompanyID string
	Status    domain.EmployeeStatus
}

// EmployeeRef identifies an employee across tenants for the sweep.
type EmployeeRef struct {
	CompanyID  string
	EmployeeID string
}

//go:generate mockgen -source=personnel_repo.go -destination=mock/personnel_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockEmployee(ctx context.Context, companyID, employeeID string) (EmployeeState, error)
	ApprovedLeaves(ctx context.Context, companyID, employeeID string) ([]domain.LeavePeriod, error)
	HasRetirement(ctx context.Context, companyID, employeeID string) (bool, error)
	UpdateStatus(ctx context.Context, companyID, employeeID string, status domain.EmployeeStatus) error
	ListSweepCandidates(ctx context.Context, today time.Time) ([]EmployeeRef, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) LockEmployee(ctx context.Context, companyID, employeeID string) (EmployeeState, error) {
	var state EmployeeState
	err := r.conn(ctx).
		Table("employees").
		Select("id, company_id, status").
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", employeeID, companyID).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&state).Error
	return state, err
}

func (r *repository) ApprovedLeaves(ctx context.Context, companyID, employeeID string) ([]domain.LeavePeriod, error) {
	var rows []struct {
		StartDate time.Time
		EndDate   time.Time
	}
	err := r.conn(ctx).
		Table("leaves").
		Select("start_date, end_date").
		Where("company_id = ? AND employee_id = ? AND status = ? AND deleted_at IS NULL", companyID, employeeID, "APPROVED").
		Order("start_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	periods := make([]domain.LeavePeriod, len(rows))
	for i, row := range rows {
		periods[i] = domain.LeavePeriod{Start: row.StartDate, End: row.EndDate}
	}
	return periods, nil
}

func (r *repository) HasRetirement(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("retirements").
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateStatus(ctx context.Context, companyID, employeeID string, status domain.EmployeeStatus) error {
	res := r.conn(ctx).
		Table("employees").
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", employeeID, companyID).
		Updates(map[string]any{"status": status, "updated_at": gorm.Expr("now()")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListSweepCandidates returns employees currently ON_LEAVE plus ACTIVE employees with an
// approved leave covering today.
func (r *repository) ListSweepCandidates(ctx context.Context, today time.Time) ([]EmployeeRef, error) {
	var refs []EmployeeRef
	day := domain.DateOnly(today)
	err := r.conn(ctx).
		Table("employees AS e").
		Select("DISTINCT e.company_id AS company_id, e.id AS employee_id").
		Where("e.deleted_at IS NULL AND e.status <> ?", domain.StatusRetired).
		Where(`e.status = ? OR EXISTS (
			SELECT 1 FROM leaves l
			WHERE l.employee_id = e.id AND l.status = 'APPROVED' AND l.deleted_at IS NULL
			  AND l.start_date <= ? AND l.end_date >= ?)`, domain.StatusOnLeave, day, day).
		Scan(&refs).Error
	return refs, err
}
