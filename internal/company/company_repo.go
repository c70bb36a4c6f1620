package company

import (
	"context"
	"database/sql"
	"strings"

	"go-personnel/internal/shared/dbtx"
	"go-personnel/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, comp *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetByEmail(ctx context.Context, email string) (*Company, error)
	Update(ctx context.Context, comp *Company) error

	UpsertRegistration(ctx context.Context, reg *CompanyRegistration) error
	GetRegistrationsByCompanyID(ctx context.Context, companyID uuid.UUID) ([]CompanyRegistration, error)
	DeleteRegistration(ctx context.Context, companyID uuid.UUID, regType RegistrationType) error
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

func (r *repository) Create(ctx context.Context, comp *Company) error {
	return r.conn(ctx).Omit("Registrations").Create(comp).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	if err := r.conn(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Company, error) {
	var company Company
	err := r.conn(ctx).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) Update(ctx context.Context, comp *Company) error {
	return r.conn(ctx).Model(comp).
		Select("name", "email", "updated_at").
		Updates(comp).Error
}

// UpsertRegistration replaces the number of an existing registration type.
func (r *repository) UpsertRegistration(ctx context.Context, reg *CompanyRegistration) error {
	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"number", "issued_at", "updated_at"}),
	}).Create(reg).Error
}

func (r *repository) GetRegistrationsByCompanyID(ctx context.Context, companyID uuid.UUID) ([]CompanyRegistration, error) {
	var regs []CompanyRegistration
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID.String())).
		Order("type").
		Find(&regs).Error
	return regs, err
}

func (r *repository) DeleteRegistration(ctx context.Context, companyID uuid.UUID, regType RegistrationType) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID.String())).
		Where("type = ?", regType).
		Delete(&CompanyRegistration{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
