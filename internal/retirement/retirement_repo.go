package retirement

import (
	"context"
	"database/sql"
	"time"

	"go-personnel/internal/domain"
	"go-personnel/internal/shared/dbtx"
	"go-personnel/internal/tenant"

	"gorm.io/gorm"
)

// listColumns leaves out the stored decree bytes.
var listColumns = []string{
	"id", "company_id", "employee_id", "retirement_date", "decree_number", "kind", "notes",
	"decree_generated_at", "processed_by", "created_at", "updated_at",
}

//go:generate mockgen -source=retirement_repo.go -destination=mock/retirement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Retirement) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Retirement, error)
	FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Retirement, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Retirement, error)
	FindDecree(ctx context.Context, companyID, id string) (*Retirement, error)
	SaveDecree(ctx context.Context, id string, pdf []byte, generatedAt time.Time) error
	CompaniesWithDueRetirements(ctx context.Context, today time.Time) ([]string, error)
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

func (r *repository) Create(ctx context.Context, ret *Retirement) error {
	return r.conn(ctx).Omit("Employee").Create(ret).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Retirement, error) {
	var rows []Retirement
	err := r.conn(ctx).
		Select(listColumns).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		Order("retirement_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Retirement, error) {
	var rows []Retirement
	err := r.conn(ctx).
		Select(listColumns).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Preload("Employee").
		Order("retirement_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Retirement, error) {
	var ret Retirement
	err := r.conn(ctx).
		Select(listColumns).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		First(&ret, "id = ?", id).Error
	return &ret, err
}

func (r *repository) FindDecree(ctx context.Context, companyID, id string) (*Retirement, error) {
	var ret Retirement
	err := r.conn(ctx).
		Select("id", "decree_number", "decree_pdf", "decree_generated_at").
		Scopes(tenant.Scope(companyID)).
		First(&ret, "id = ?", id).Error
	return &ret, err
}

func (r *repository) SaveDecree(ctx context.Context, id string, pdf []byte, generatedAt time.Time) error {
	res := r.conn(ctx).
		Model(&Retirement{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"decree_pdf":          pdf,
			"decree_generated_at": generatedAt,
			"updated_at":          gorm.Expr("now()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CompaniesWithDueRetirements lists companies that have at least one ACTIVE employee at or past
// retirement age.
func (r *repository) CompaniesWithDueRetirements(ctx context.Context, today time.Time) ([]string, error) {
	var ids []string
	err := r.conn(ctx).
		Table("employees").
		Distinct("company_id").
		Where("status = ? AND birth_date IS NOT NULL AND deleted_at IS NULL", domain.StatusActive).
		Where("birth_date <= ?", today.AddDate(-domain.RetirementAge, 0, 0)).
		Pluck("company_id", &ids).Error
	return ids, err
}
