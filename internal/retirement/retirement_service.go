package retirement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-personnel/internal/domain"
	"go-personnel/internal/employee"
	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka"
	"go-personnel/internal/metrics"
	"go-personnel/internal/personnel"
	retirementerrors "go-personnel/internal/retirement/errors"
	"go-personnel/internal/shared/clock"
	"go-personnel/internal/shared/contextutil"
	"go-personnel/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout      = "2006-01-02"
	decreePrefix    = "RET"
	noChangeMessage = "no changes"
)

//go:generate mockgen -source=retirement_service.go -destination=mock/retirement_service_mock.go -package=mock
type Service interface {
	Upcoming(ctx context.Context, companyID string) ([]UpcomingRetirementResponse, error)
	Process(ctx context.Context, companyID, actorID, employeeID string, req ProcessRetirementRequest) (RetirementResponse, error)
	RunBatch(ctx context.Context, companyID, actorID string) (BatchRetirementResponse, error)
	RunScheduled(ctx context.Context) (int, error)
	ListAll(ctx context.Context, companyID string) ([]RetirementResponse, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]RetirementResponse, error)
	GetByID(ctx context.Context, companyID, id string) (RetirementResponse, error)
	DownloadDecree(ctx context.Context, companyID, id string) ([]byte, string, error)
	GenerateDecree(ctx context.Context, companyID, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  employee.Repository
	counter    counter.Repository
	outbox     kafka.OutboxRepository
	reconciler personnel.Reconciler
	renderer   DecreeRenderer
	clock      clock.Clock
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	reconciler personnel.Reconciler,
	renderer DecreeRenderer,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("retirement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("retirement.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		counter:    counterRepo,
		outbox:     outboxRepo,
		reconciler: reconciler,
		renderer:   renderer,
		clock:      clock.Or(clk),
		logger:     l,
	}
}

func (s *service) Upcoming(ctx context.Context, companyID string) ([]UpcomingRetirementResponse, error) {
	rows, err := s.employees.FindRetirementCandidates(ctx, companyID)
	if err != nil {
		s.logger.Error("load retirement candidates failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	candidates := make([]domain.RetirementCandidate, 0, len(rows))
	for _, e := range rows {
		candidates = append(candidates, e.RetirementCandidate())
	}

	upcoming := domain.UpcomingRetirements(candidates, s.clock.Today())
	out := make([]UpcomingRetirementResponse, 0, len(upcoming))
	for _, u := range upcoming {
		out = append(out, UpcomingRetirementResponse{
			EmployeeID:     u.EmployeeID,
			EmployeeNumber: u.EmployeeNumber,
			FullName:       u.FullName,
			BirthDate:      u.BirthDate.Format(dateLayout),
			RetirementDate: u.RetirementDate.Format(dateLayout),
			DaysLeft:       u.DaysLeft,
		})
	}
	return out, nil
}

func (s *service) Process(ctx context.Context, companyID, actorID, employeeID string, req ProcessRetirementRequest) (RetirementResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("process retirement requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RetirementResponse{}, retirementerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("process retirement begin tx failed", zap.Error(err))
		return RetirementResponse{}, err
	}
	defer tx.Rollback()

	emp, err := s.employees.WithTx(tx).FindByIDForUpdate(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RetirementResponse{}, retirementerrors.ErrEmployeeNotFound
		}
		return RetirementResponse{}, err
	}
	if emp.Status == domain.StatusRetired {
		s.logger.Warn("process retirement rejected, already retired",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
		)
		return RetirementResponse{}, retirementerrors.ErrAlreadyRetired
	}

	ret, tr, err := s.retireInTx(ctx, tx, emp, retireParams{
		kind:         KindManual,
		date:         s.clock.Today(),
		decreeNumber: strings.TrimSpace(req.DecreeNumber),
		notes:        strings.TrimSpace(req.Notes),
		processedBy:  &actorUUID,
		requestID:    rid,
	})
	if err != nil {
		s.logger.Error("process retirement failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return RetirementResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("process retirement commit failed", zap.Error(err))
		return RetirementResponse{}, err
	}

	metrics.RecordRetirement(KindManual, 1)
	s.logger.Info("process retirement success",
		zap.String("request_id", rid),
		zap.String("retirement_id", ret.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("decree_number", ret.DecreeNumber),
	)

	resp := mapToResponse(*ret)
	resp.EmployeeStatus = string(tr.To)
	return resp, nil
}

// RunBatch retires every ACTIVE employee of the company whose retirement date has been reached.
// Each employee is retired in its own transaction; failures are reported per employee.
func (s *service) RunBatch(ctx context.Context, companyID, actorID string) (BatchRetirementResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	var processedBy *uuid.UUID
	if actorID != "" {
		id, err := uuid.Parse(actorID)
		if err != nil {
			return BatchRetirementResponse{}, retirementerrors.ErrInvalidActorID
		}
		processedBy = &id
	}

	rows, err := s.employees.FindRetirementCandidates(ctx, companyID)
	if err != nil {
		s.logger.Error("batch retirement load candidates failed", zap.String("company_id", companyID), zap.Error(err))
		return BatchRetirementResponse{}, err
	}
	candidates := make([]domain.RetirementCandidate, 0, len(rows))
	for _, e := range rows {
		candidates = append(candidates, e.RetirementCandidate())
	}
	due := domain.DueForRetirement(candidates, s.clock.Today())

	result := BatchRetirementResponse{Employees: make([]BatchRetiredEmployee, 0, len(due))}
	for _, c := range due {
		ret, ok, err := s.retireDue(ctx, companyID, c, processedBy, rid)
		if err != nil {
			s.logger.Error("batch retirement employee failed",
				zap.String("company_id", companyID),
				zap.String("employee_id", c.EmployeeID),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, BatchFailure{EmployeeID: c.EmployeeID, Error: err.Error()})
			continue
		}
		if !ok {
			continue
		}
		result.Employees = append(result.Employees, BatchRetiredEmployee{
			EmployeeID:     c.EmployeeID,
			EmployeeNumber: c.EmployeeNumber,
			FullName:       c.FullName,
			RetirementDate: ret.RetirementDate.Format(dateLayout),
			RetirementID:   ret.ID.String(),
		})
	}

	result.Affected = len(result.Employees)
	if result.Affected == 0 {
		result.Message = noChangeMessage
	} else {
		result.Message = fmt.Sprintf("%d employee(s) retired", result.Affected)
	}
	metrics.RecordRetirement(KindAutomatic, result.Affected)

	s.logger.Info("batch retirement finished",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Int("due", len(due)),
		zap.Int("affected", result.Affected),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// RunScheduled runs the batch for every company with an employee due for retirement.
func (s *service) RunScheduled(ctx context.Context) (int, error) {
	companies, err := s.repo.CompaniesWithDueRetirements(ctx, s.clock.Today())
	if err != nil {
		return 0, err
	}

	total := 0
	var errs []error
	for _, companyID := range companies {
		res, err := s.RunBatch(ctx, companyID, "")
		if err != nil {
			errs = append(errs, fmt.Errorf("company %s: %w", companyID, err))
			continue
		}
		total += res.Affected
		for _, f := range res.Failed {
			errs = append(errs, fmt.Errorf("company %s employee %s: %s", companyID, f.EmployeeID, f.Error))
		}
	}
	return total, errors.Join(errs...)
}

func (s *service) retireDue(ctx context.Context, companyID string, c domain.RetirementCandidate, processedBy *uuid.UUID, rid string) (*Retirement, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	emp, err := s.employees.WithTx(tx).FindByIDForUpdate(ctx, companyID, c.EmployeeID)
	if err != nil {
		return nil, false, err
	}
	// Another request may have retired the employee since the candidates were read.
	if emp.Status != domain.StatusActive || emp.BirthDate == nil {
		return nil, false, nil
	}

	ret, _, err := s.retireInTx(ctx, tx, emp, retireParams{
		kind:        KindAutomatic,
		date:        domain.RetirementDate(*emp.BirthDate),
		processedBy: processedBy,
		requestID:   rid,
	})
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return ret, true, nil
}

type retireParams struct {
	kind         string
	date         time.Time
	decreeNumber string
	notes        string
	processedBy  *uuid.UUID
	requestID    string
}

func (s *service) retireInTx(ctx context.Context, tx *sql.Tx, emp *employee.Employee, p retireParams) (*Retirement, personnel.Transition, error) {
	companyID := emp.CompanyID.String()

	decreeNumber := p.decreeNumber
	if decreeNumber == "" {
		next, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypeRetirementNo)
		if err != nil {
			return nil, personnel.Transition{}, err
		}
		decreeNumber = counter.Format(decreePrefix, next)
	}

	ret := &Retirement{
		ID:             uuid.New(),
		CompanyID:      emp.CompanyID,
		EmployeeID:     emp.ID,
		RetirementDate: p.date,
		DecreeNumber:   decreeNumber,
		Kind:           p.kind,
		Notes:          p.notes,
		ProcessedBy:    p.processedBy,
		CreatedAt:      s.clock.Now(),
		Employee: &RetirementEmployee{
			ID:             emp.ID,
			CompanyID:      emp.CompanyID,
			EmployeeNumber: emp.EmployeeNumber,
			FullName:       emp.FullName,
		},
	}
	if err := s.repo.WithTx(tx).Create(ctx, ret); err != nil {
		return nil, personnel.Transition{}, mapRepositoryError(err)
	}

	tr, err := s.reconciler.Reconcile(ctx, tx, companyID, emp.ID.String())
	if err != nil {
		return nil, personnel.Transition{}, err
	}

	var requestedBy string
	if p.processedBy != nil {
		requestedBy = p.processedBy.String()
	}
	event, err := kafka.NewOutboxEvent(p.requestID, "retirement", ret.ID.String(),
		events.RetirementDecreeRequestedType, events.RetirementDecreeRequestedTopic,
		events.RetirementDecreeRequestedEvent{
			EventType:    events.RetirementDecreeRequestedType,
			RequestID:    p.requestID,
			RetirementID: ret.ID.String(),
			EmployeeID:   emp.ID.String(),
			CompanyID:    companyID,
			Kind:         p.kind,
			RequestedBy:  requestedBy,
			OccurredAt:   s.clock.Now(),
		})
	if err != nil {
		return nil, personnel.Transition{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		return nil, personnel.Transition{}, err
	}

	return ret, tr, nil
}

func (s *service) ListAll(ctx context.Context, companyID string) ([]RetirementResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("list retirements failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]RetirementResponse, error) {
	rows, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("list employee retirements failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (RetirementResponse, error) {
	ret, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RetirementResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*ret), nil
}

func (s *service) DownloadDecree(ctx context.Context, companyID, id string) ([]byte, string, error) {
	ret, err := s.repo.FindDecree(ctx, companyID, id)
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}
	if len(ret.DecreePDF) == 0 {
		return nil, "", retirementerrors.ErrDecreeNotGenerated
	}
	return ret.DecreePDF, decreeFilename(ret.DecreeNumber), nil
}

// GenerateDecree renders the decree document and stores it on the record.
func (s *service) GenerateDecree(ctx context.Context, companyID, id string) error {
	ret, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	d := Decree{
		DecreeNumber:   ret.DecreeNumber,
		Kind:           ret.Kind,
		RetirementDate: ret.RetirementDate,
		IssuedAt:       s.clock.Now(),
		Notes:          ret.Notes,
	}
	if e := ret.Employee; e != nil {
		d.EmployeeNumber = e.EmployeeNumber
		d.FullName = e.FullName
		d.Rank = e.Rank
		d.Grade = e.Grade
		d.PositionTitle = e.PositionTitle
		d.BirthDate = e.BirthDate
		d.HireDate = e.HireDate
	}

	pdf, err := s.renderer.RenderDecree(d)
	if err != nil {
		s.logger.Error("render decree failed", zap.String("retirement_id", id), zap.Error(err))
		return err
	}
	if err := s.repo.SaveDecree(ctx, id, pdf, s.clock.Now()); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("decree generated",
		zap.String("retirement_id", id),
		zap.String("decree_number", ret.DecreeNumber),
		zap.Int("bytes", len(pdf)),
	)
	return nil
}

func decreeFilename(decreeNumber string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, decreeNumber)
	return "decree-" + name + ".pdf"
}

func mapToResponse(r Retirement) RetirementResponse {
	resp := RetirementResponse{
		ID:              r.ID.String(),
		EmployeeID:      r.EmployeeID.String(),
		RetirementDate:  r.RetirementDate.Format(dateLayout),
		DecreeNumber:    r.DecreeNumber,
		Kind:            r.Kind,
		Notes:           r.Notes,
		DecreeAvailable: r.DecreeGeneratedAt != nil,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.Employee != nil {
		resp.EmployeeNumber = r.Employee.EmployeeNumber
		resp.EmployeeName = r.Employee.FullName
	}
	if r.DecreeGeneratedAt != nil {
		v := r.DecreeGeneratedAt.Format(time.RFC3339)
		resp.DecreeGeneratedAt = &v
	}
	if r.ProcessedBy != nil {
		v := r.ProcessedBy.String()
		resp.ProcessedBy = &v
	}
	return resp
}

func mapToListResponse(rows []Retirement) []RetirementResponse {
	out := make([]RetirementResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out
}
