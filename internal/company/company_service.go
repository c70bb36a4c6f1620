package company

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go-personnel/internal/auth"
	autherrors "go-personnel/internal/auth/errors"
	companyerrors "go-personnel/internal/company/errors"
	"go-personnel/internal/domain"
	"go-personnel/internal/employee"
	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka"
	"go-personnel/internal/rbac"
	"go-personnel/internal/shared/clock"
	"go-personnel/internal/shared/contextutil"
	"go-personnel/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Onboard(ctx context.Context, req OnboardRequest) (OnboardResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)

	UpsertRegistration(ctx context.Context, companyID string, req UpsertRegistrationRequest) (RegistrationResponse, error)
	ListRegistrations(ctx context.Context, companyID string) ([]RegistrationResponse, error)
	DeleteRegistration(ctx context.Context, companyID string, regType RegistrationType) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	counter   counter.Repository
	users     auth.Repository
	rbac      rbac.Service
	outbox    kafka.OutboxRepository
	clock     clock.Clock
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	users auth.Repository,
	rbacService rbac.Service,
	outboxRepo kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		counter:   counterRepo,
		users:     users,
		rbac:      rbacService,
		outbox:    outboxRepo,
		clock:     clock.Or(clk),
		logger:    l,
	}
}

// Onboard creates the company, its first employee, that employee's login and the ADMIN role in a
// single transaction. It is the only path that grants ADMIN.
func (s *service) Onboard(ctx context.Context, req OnboardRequest) (OnboardResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	companyEmail := normalizeEmail(req.Email)
	adminEmail := normalizeEmail(req.Admin.Email)

	birth, hire, err := employee.ParseServiceDates(req.Admin.BirthDate, req.Admin.HireDate)
	if err != nil {
		return OnboardResponse{}, err
	}

	if err := s.ensureAvailable(ctx, companyEmail, adminEmail); err != nil {
		s.logger.Warn("onboard rejected", zap.String("request_id", rid), zap.String("email", companyEmail), zap.Error(err))
		return OnboardResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return OnboardResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("onboard begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return OnboardResponse{}, err
	}
	defer tx.Rollback()

	comp := &Company{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    companyEmail,
		IsActive: true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, comp); err != nil {
		return OnboardResponse{}, mapRepositoryError(err)
	}
	companyID := comp.ID.String()

	next, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypeEmployeeNumber)
	if err != nil {
		s.logger.Error("onboard generate number failed", zap.String("company_id", companyID), zap.Error(err))
		return OnboardResponse{}, err
	}

	admin := &employee.Employee{
		ID:             uuid.New(),
		CompanyID:      comp.ID,
		EmployeeNumber: counter.Format(employee.NumberPrefix, next),
		FullName:       strings.TrimSpace(req.Admin.FullName),
		Email:          adminEmail,
		PositionTitle:  strings.TrimSpace(req.Admin.PositionTitle),
		Status:         domain.StatusActive,
		BirthDate:      birth,
		HireDate:       hire,
	}
	if err := s.employees.WithTx(tx).Create(ctx, admin); err != nil {
		return OnboardResponse{}, err
	}

	user := &auth.User{
		ID:         uuid.New(),
		CompanyID:  comp.ID,
		EmployeeID: &admin.ID,
		Name:       admin.FullName,
		Email:      adminEmail,
		Password:   string(hashed),
		Role:       rbac.AdminRoleName,
		IsActive:   true,
	}
	if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
		return OnboardResponse{}, mapRepositoryError(err)
	}

	if err := s.rbac.EnsureAdminRole(ctx, tx, companyID, admin.ID.String()); err != nil {
		s.logger.Error("onboard admin role failed", zap.String("company_id", companyID), zap.Error(err))
		return OnboardResponse{}, err
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", admin.ID.String(),
			events.EmployeeCreatedType, events.EmployeeLifecycleTopic,
			events.EmployeeCreatedEvent{
				EventType:      events.EmployeeCreatedType,
				RequestID:      rid,
				EmployeeID:     admin.ID.String(),
				EmployeeNumber: admin.EmployeeNumber,
				CompanyID:      companyID,
				OccurredAt:     s.clock.Now(),
			})
		if err != nil {
			return OnboardResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			return OnboardResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("onboard commit failed", zap.String("request_id", rid), zap.Error(err))
		return OnboardResponse{}, err
	}

	s.logger.Info("company onboarded",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", admin.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	return OnboardResponse{
		Company:        toResponse(comp),
		UserID:         user.ID.String(),
		EmployeeID:     admin.ID.String(),
		EmployeeNumber: admin.EmployeeNumber,
		Role:           rbac.AdminRoleName,
	}, nil
}

func (s *service) ensureAvailable(ctx context.Context, companyEmail, adminEmail string) error {
	if _, err := s.repo.GetByEmail(ctx, companyEmail); err == nil {
		return companyerrors.ErrCompanyAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.users.GetByEmail(ctx, adminEmail); err == nil {
		return autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	comp, err := s.find(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	return toResponse(comp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	comp, err := s.find(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		comp.Name = name
	}
	if email := normalizeEmail(req.Email); email != "" && email != comp.Email {
		if _, err := s.repo.GetByEmail(ctx, email); err == nil {
			return CompanyResponse{}, companyerrors.ErrCompanyAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, err
		}
		comp.Email = email
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("company updated", zap.String("company_id", id))
	return toResponse(comp), nil
}

func (s *service) UpsertRegistration(
	ctx context.Context,
	companyID string,
	req UpsertRegistrationRequest,
) (RegistrationResponse, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return RegistrationResponse{}, companyerrors.ErrInvalidCompanyID
	}
	regType := RegistrationType(strings.ToUpper(strings.TrimSpace(string(req.Type))))
	if !regType.Valid() {
		return RegistrationResponse{}, companyerrors.ErrInvalidRegistrationType
	}
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return RegistrationResponse{}, companyerrors.ErrMissingRequiredFields
	}

	now := s.clock.Now()
	reg := &CompanyRegistration{
		CompanyID: id,
		Type:      regType,
		Number:    number,
		IssuedAt:  req.IssuedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.UpsertRegistration(ctx, reg); err != nil {
		return RegistrationResponse{}, err
	}
	return toRegistrationResponse(*reg), nil
}

func (s *service) ListRegistrations(ctx context.Context, companyID string) ([]RegistrationResponse, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	regs, err := s.repo.GetRegistrationsByCompanyID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		result = append(result, toRegistrationResponse(r))
	}
	return result, nil
}

func (s *service) DeleteRegistration(ctx context.Context, companyID string, regType RegistrationType) error {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}
	regType = RegistrationType(strings.ToUpper(string(regType)))
	if !regType.Valid() {
		return companyerrors.ErrInvalidRegistrationType
	}

	if err := s.repo.DeleteRegistration(ctx, id, regType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return companyerrors.ErrRegistrationNotFound
		}
		return err
	}
	return nil
}

func (s *service) find(ctx context.Context, id string) (*Company, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return comp, nil
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func toResponse(c *Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

func toRegistrationResponse(r CompanyRegistration) RegistrationResponse {
	resp := RegistrationResponse{
		Type:      r.Type,
		Number:    r.Number,
		IssuedAt:  r.IssuedAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.ID != uuid.Nil {
		resp.ID = r.ID.String()
	}
	return resp
}
