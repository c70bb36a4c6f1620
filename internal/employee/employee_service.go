package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go-personnel/internal/domain"
	employeeerrors "go-personnel/internal/employee/errors"
	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka"
	"go-personnel/internal/shared/clock"
	"go-personnel/internal/shared/contextutil"
	"go-personnel/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKeyPrefix = "employees:options:"
	NumberPrefix             = "EMP"
	employeeOptionsTTL       = time.Hour
	dateLayout               = "2006-01-02"
)

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string, filter EmployeeFilter) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GetStatistics(ctx context.Context, companyID string) (EmployeeStatisticsResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	clock   clock.Clock
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		clock:   clock.Or(clk),
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

type employeeDates struct {
	birth *time.Time
	hire  time.Time
}

func parseDates(birth, hire string) (employeeDates, error) {
	hireDate, err := time.Parse(dateLayout, hire)
	if err != nil {
		return employeeDates{}, employeeerrors.ErrInvalidDate
	}
	out := employeeDates{hire: hireDate}
	if birth != "" {
		birthDate, err := time.Parse(dateLayout, birth)
		if err != nil {
			return employeeDates{}, employeeerrors.ErrInvalidDate
		}
		if !birthDate.Before(hireDate) {
			return employeeDates{}, employeeerrors.ErrBirthDateAfterHireDate
		}
		out.birth = &birthDate
	}
	return out, nil
}

func (s *service) checkDepartment(ctx context.Context, qtx Repository, companyID, departmentID string) error {
	if departmentID == "" {
		return nil
	}
	ok, err := qtx.DepartmentExists(ctx, companyID, departmentID)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Warn("department not found in company",
			zap.String("company_id", companyID),
			zap.String("department_id", departmentID),
		)
		return employeeerrors.ErrDepartmentNotFound
	}
	return nil
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("department_id", req.DepartmentID),
		zap.String("email", req.Email),
	)

	dates, err := parseDates(req.BirthDate, req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid dates",
			zap.String("birth_date", req.BirthDate),
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.checkDepartment(ctx, qtx, companyID, req.DepartmentID); err != nil {
		return EmployeeResponse{}, err
	}

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypeEmployeeNumber)
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = counter.Format(NumberPrefix, nextVal)
	}

	empl := &Employee{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		DepartmentID:   uuidPtr(req.DepartmentID),
		EmployeeNumber: strings.TrimSpace(req.EmployeeNumber),
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Rank:           req.Rank,
		Grade:          req.Grade,
		PositionTitle:  req.PositionTitle,
		Status:         domain.StatusActive,
		BirthDate:      dates.birth,
		HireDate:       dates.hire,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", empl.ID.String(),
			events.EmployeeCreatedType, events.EmployeeLifecycleTopic,
			events.EmployeeCreatedEvent{
				EventType:      events.EmployeeCreatedType,
				RequestID:      rid,
				EmployeeID:     empl.ID.String(),
				EmployeeNumber: empl.EmployeeNumber,
				CompanyID:      companyID,
				OccurredAt:     s.clock.Now(),
			})
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter EmployeeFilter,
) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested",
		zap.String("company_id", companyID),
		zap.String("status", filter.Status),
	)
	if filter.Status != "" {
		filter.Status = strings.ToUpper(filter.Status)
		if !domain.EmployeeStatus(filter.Status).Valid() {
			return nil, employeeerrors.ErrInvalidStatusFilter
		}
	}

	empls, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOptionResponse{
				ID:             e.ID.String(),
				EmployeeNumber: e.EmployeeNumber,
				FullName:       e.FullName,
				Status:         string(e.Status),
			}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, employeeOptionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)
	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	dates, err := parseDates(req.BirthDate, req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.checkDepartment(ctx, qtx, companyID, req.DepartmentID); err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FullName = strings.TrimSpace(req.FullName)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.EmployeeNumber = strings.TrimSpace(req.EmployeeNumber)
	empl.Phone = req.Phone
	empl.DepartmentID = uuidPtr(req.DepartmentID)
	empl.Rank = req.Rank
	empl.Grade = req.Grade
	empl.PositionTitle = req.PositionTitle
	empl.BirthDate = dates.birth
	empl.HireDate = dates.hire

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	s.logger.Debug("delete employee requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		s.logger.Warn("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) GetStatistics(ctx context.Context, companyID string) (EmployeeStatisticsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx, companyID)
	if err != nil {
		s.logger.Error("count employees by status failed", zap.Error(err))
		return EmployeeStatisticsResponse{}, err
	}

	var stats EmployeeStatisticsResponse
	for _, c := range counts {
		stats.Total += c.Total
		switch c.Status {
		case domain.StatusActive:
			stats.Active = c.Total
		case domain.StatusOnLeave:
			stats.OnLeave = c.Total
		case domain.StatusRetired:
			stats.Retired = c.Total
		}
	}

	candidates, err := s.repo.FindRetirementCandidates(ctx, companyID)
	if err != nil {
		s.logger.Error("load retirement candidates failed", zap.Error(err))
		return EmployeeStatisticsResponse{}, err
	}
	projected := make([]domain.RetirementCandidate, len(candidates))
	for i, c := range candidates {
		projected[i] = c.RetirementCandidate()
	}
	stats.UpcomingRetirements = len(domain.UpcomingRetirements(projected, s.clock.Today()))

	return stats, nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		CompanyID:      empl.CompanyID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		FullName:       empl.FullName,
		Email:          empl.Email,
		Phone:          empl.Phone,
		Rank:           empl.Rank,
		Grade:          empl.Grade,
		PositionTitle:  empl.PositionTitle,
		Status:         string(empl.Status),
		HireDate:       empl.HireDate.Format(dateLayout),
		DepartmentID:   uuidToString(empl.DepartmentID),
	}
	if empl.BirthDate != nil {
		resp.BirthDate = empl.BirthDate.Format(dateLayout)
		resp.RetirementDate = domain.RetirementDate(*empl.BirthDate).Format(dateLayout)
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:   empl.Department.ID.String(),
			Code: empl.Department.Code,
			Name: empl.Department.Name,
		}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// ParseServiceDates validates a hire date and an optional birth date, both YYYY-MM-DD.
func ParseServiceDates(birth, hire string) (*time.Time, time.Time, error) {
	d, err := parseDates(birth, hire)
	return d.birth, d.hire, err
}
