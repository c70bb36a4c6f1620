package mutation

import (
	"context"
	"database/sql"
	"time"

	"go-personnel/internal/shared/dbtx"
	"go-personnel/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=mutation_repo.go -destination=mock/mutation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *Mutation) error
	FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Mutation, error)
	FindByIDAndEmployee(ctx context.Context, companyID, employeeID, id string) (*Mutation, error)
	LatestApplied(ctx context.Context, companyID, employeeID string) (*Mutation, error)
	FindDueUnapplied(ctx context.Context, today time.Time) ([]Mutation, error)
	MarkApplied(ctx context.Context, m *Mutation) error
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, m *Mutation) error {
	return r.conn(ctx).Create(m).Error
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Mutation, error) {
	var rows []Mutation
	err := r.conn(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Order("effective_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndEmployee(ctx context.Context, companyID, employeeID, id string) (*Mutation, error) {
	var m Mutation
	err := r.conn(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) LatestApplied(ctx context.Context, companyID, employeeID string) (*Mutation, error) {
	var m Mutation
	err := r.conn(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Where("applied = ?", true).
		Order("effective_date DESC, created_at DESC").
		First(&m).Error
	return &m, err
}

func (r *repository) FindDueUnapplied(ctx context.Context, today time.Time) ([]Mutation, error) {
	var rows []Mutation
	err := r.conn(ctx).
		Where("applied = ? AND effective_date <= ?", false, today).
		Order("effective_date ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

// MarkApplied flags m as applied and stores the snapshot taken when it was applied.
func (r *repository) MarkApplied(ctx context.Context, m *Mutation) error {
	return r.conn(ctx).
		Model(&Mutation{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"applied":                true,
			"previous_department_id": m.PreviousDepartmentID,
			"new_department_id":      m.NewDepartmentID,
			"previous_rank":          m.PreviousRank,
			"new_rank":               m.NewRank,
			"previous_grade":         m.PreviousGrade,
			"new_grade":              m.NewGrade,
			"previous_position":      m.PreviousPosition,
			"new_position":           m.NewPosition,
		}).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Mutation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
