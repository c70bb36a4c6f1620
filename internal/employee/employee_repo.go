package employee

import (
	"context"
	"database/sql"
	"strings"

	"go-personnel/internal/domain"
	"go-personnel/internal/shared/dbtx"
	"go-personnel/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatusCount struct {
	Status domain.EmployeeStatus
	Total  int64
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID string, filter EmployeeFilter) ([]Employee, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	FindByIDForUpdate(ctx context.Context, companyID string, id string) (*Employee, error)
	FindRetirementCandidates(ctx context.Context, companyID string) ([]Employee, error)
	DepartmentExists(ctx context.Context, companyID, departmentID string) (bool, error)
	CountByStatus(ctx context.Context, companyID string) ([]StatusCount, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit("Department").Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter EmployeeFilter) ([]Employee, error) {
	var empls []Employee
	q := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Department")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if term := strings.TrimSpace(filter.Q); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("(LOWER(full_name) LIKE ? OR LOWER(employee_number) LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
	}

	err := q.Order("full_name ASC").Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Select("id", "employee_number", "full_name", "status").
		Where("status <> ?", domain.StatusRetired).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Department").
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindRetirementCandidates(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status <> ?", domain.StatusRetired).
		Where("birth_date IS NOT NULL").
		Order("birth_date ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) DepartmentExists(ctx context.Context, companyID, departmentID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("departments").
		Where("id = ?", departmentID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountByStatus(ctx context.Context, companyID string) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.conn(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit("Department").Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
