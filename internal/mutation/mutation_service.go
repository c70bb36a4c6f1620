package mutation

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-personnel/internal/domain"
	"go-personnel/internal/employee"
	mutationerrors "go-personnel/internal/mutation/errors"
	"go-personnel/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=mutation_service.go -destination=mock/mutation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID, employeeID string, req CreateMutationRequest) (MutationResponse, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]MutationResponse, error)
	GetByID(ctx context.Context, companyID, employeeID, id string) (MutationResponse, error)
	Delete(ctx context.Context, companyID, employeeID, id string) error
	ApplyDue(ctx context.Context) (int, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	clock     clock.Clock
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("mutation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mutation.service")
	}
	return &service{db: db, repo: repo, employees: employees, clock: clock.Or(clk), logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID, employeeID string, req CreateMutationRequest) (MutationResponse, error) {
	s.logger.Debug("create mutation requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("mutation_type", req.MutationType),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return MutationResponse{}, mutationerrors.ErrInvalidActorID
	}
	effective, err := time.Parse(dateLayout, req.EffectiveDate)
	if err != nil {
		return MutationResponse{}, mutationerrors.ErrInvalidDate
	}
	if err := validateTypeFields(req); err != nil {
		return MutationResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create mutation begin tx failed", zap.Error(err))
		return MutationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	etx := s.employees.WithTx(tx)

	emp, err := etx.FindByIDForUpdate(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MutationResponse{}, mutationerrors.ErrEmployeeNotFound
		}
		return MutationResponse{}, err
	}
	if emp.Status == domain.StatusRetired {
		return MutationResponse{}, mutationerrors.ErrEmployeeRetired
	}

	m := &Mutation{
		ID:                   uuid.New(),
		CompanyID:            emp.CompanyID,
		EmployeeID:           emp.ID,
		MutationType:         req.MutationType,
		EffectiveDate:        effective,
		DecreeNumber:         strings.TrimSpace(req.DecreeNumber),
		PreviousDepartmentID: emp.DepartmentID,
		NewDepartmentID:      emp.DepartmentID,
		PreviousRank:         emp.Rank,
		NewRank:              emp.Rank,
		PreviousGrade:        emp.Grade,
		NewGrade:             emp.Grade,
		PreviousPosition:     emp.PositionTitle,
		NewPosition:          emp.PositionTitle,
		Notes:                strings.TrimSpace(req.Notes),
		CreatedBy:            actorUUID,
	}

	if req.NewDepartmentID != "" {
		ok, err := etx.DepartmentExists(ctx, companyID, req.NewDepartmentID)
		if err != nil {
			return MutationResponse{}, err
		}
		if !ok {
			return MutationResponse{}, mutationerrors.ErrDepartmentNotFound
		}
		deptID := uuid.MustParse(req.NewDepartmentID)
		m.NewDepartmentID = &deptID
	}
	if v := strings.TrimSpace(req.NewRank); v != "" {
		m.NewRank = v
	}
	if v := strings.TrimSpace(req.NewGrade); v != "" {
		m.NewGrade = v
	}
	if v := strings.TrimSpace(req.NewPositionTitle); v != "" {
		m.NewPosition = v
	}
	if !m.changes() {
		return MutationResponse{}, mutationerrors.ErrNoChange
	}

	m.Applied = !effective.After(s.clock.Today())
	if err := qtx.Create(ctx, m); err != nil {
		s.logger.Error("create mutation persist failed", zap.Error(err))
		return MutationResponse{}, mapRepositoryError(err)
	}
	if m.Applied {
		m.applyTo(emp)
		if err := etx.Update(ctx, emp); err != nil {
			s.logger.Error("create mutation apply failed", zap.Error(err))
			return MutationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create mutation commit failed", zap.Error(err))
		return MutationResponse{}, err
	}
	s.logger.Info("create mutation success",
		zap.String("mutation_id", m.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Bool("applied", m.Applied),
	)

	return mapToResponse(*m), nil
}

func (s *service) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]MutationResponse, error) {
	if _, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mutationerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	rows, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("list mutations failed", zap.Error(err))
		return nil, err
	}
	out := make([]MutationResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, mapToResponse(m))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyID, employeeID, id string) (MutationResponse, error) {
	m, err := s.repo.FindByIDAndEmployee(ctx, companyID, employeeID, id)
	if err != nil {
		return MutationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*m), nil
}

// Delete removes a mutation. An applied mutation can only be removed while it
// is the latest applied one, and the employee is reverted to its previous values.
func (s *service) Delete(ctx context.Context, companyID, employeeID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	m, err := qtx.FindByIDAndEmployee(ctx, companyID, employeeID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if m.Applied {
		latest, err := qtx.LatestApplied(ctx, companyID, employeeID)
		if err != nil {
			return mapRepositoryError(err)
		}
		if latest.ID != m.ID {
			return mutationerrors.ErrNotLatestApplied
		}

		etx := s.employees.WithTx(tx)
		emp, err := etx.FindByIDForUpdate(ctx, companyID, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return mutationerrors.ErrEmployeeNotFound
			}
			return err
		}
		m.revert(emp)
		if err := etx.Update(ctx, emp); err != nil {
			return err
		}
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete mutation success",
		zap.String("mutation_id", id),
		zap.Bool("reverted", m.Applied),
	)
	return nil
}

// ApplyDue applies every unapplied mutation whose effective date has been reached.
// Mutations of retired employees stay unapplied.
func (s *service) ApplyDue(ctx context.Context) (int, error) {
	due, err := s.repo.FindDueUnapplied(ctx, s.clock.Today())
	if err != nil {
		return 0, err
	}

	applied := 0
	var errs []error
	for _, m := range due {
		ok, err := s.applyOne(ctx, m)
		if err != nil {
			s.logger.Error("apply mutation failed",
				zap.String("mutation_id", m.ID.String()),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		if ok {
			applied++
		}
	}
	if applied > 0 {
		s.logger.Info("due mutations applied", zap.Int("applied", applied), zap.Int("due", len(due)))
	}
	return applied, errors.Join(errs...)
}

func (s *service) applyOne(ctx context.Context, m Mutation) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	etx := s.employees.WithTx(tx)
	emp, err := etx.FindByIDForUpdate(ctx, m.CompanyID.String(), m.EmployeeID.String())
	if err != nil {
		return false, err
	}
	if emp.Status == domain.StatusRetired {
		s.logger.Warn("skip mutation for retired employee",
			zap.String("mutation_id", m.ID.String()),
			zap.String("employee_id", m.EmployeeID.String()),
		)
		return false, nil
	}

	// Other mutations may have been applied since this one was recorded.
	m.rebase(emp)
	m.applyTo(emp)
	if err := etx.Update(ctx, emp); err != nil {
		return false, err
	}
	if err := s.repo.WithTx(tx).MarkApplied(ctx, &m); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func validateTypeFields(req CreateMutationRequest) error {
	switch req.MutationType {
	case TypeTransfer:
		if req.NewDepartmentID == "" {
			return mutationerrors.ErrDepartmentRequired
		}
	case TypePromotion:
		if strings.TrimSpace(req.NewPositionTitle) == "" {
			return mutationerrors.ErrPositionRequired
		}
	case TypeGradeChange:
		if strings.TrimSpace(req.NewRank) == "" && strings.TrimSpace(req.NewGrade) == "" {
			return mutationerrors.ErrRankOrGradeRequired
		}
	}
	return nil
}

func (m *Mutation) changes() bool {
	return m.changeSet() != changeSet{}
}

// changeSet marks the employee fields a mutation actually changes.
type changeSet struct {
	department bool
	rank       bool
	grade      bool
	position   bool
}

func (m Mutation) changeSet() changeSet {
	return changeSet{
		department: !sameDepartment(m.PreviousDepartmentID, m.NewDepartmentID),
		rank:       m.PreviousRank != m.NewRank,
		grade:      m.PreviousGrade != m.NewGrade,
		position:   m.PreviousPosition != m.NewPosition,
	}
}

// rebase re-takes the previous values from emp. Fields the mutation does not
// change follow the employee's current values.
func (m *Mutation) rebase(emp *employee.Employee) {
	cs := m.changeSet()

	m.PreviousDepartmentID = emp.DepartmentID
	m.PreviousRank = emp.Rank
	m.PreviousGrade = emp.Grade
	m.PreviousPosition = emp.PositionTitle

	if !cs.department {
		m.NewDepartmentID = emp.DepartmentID
	}
	if !cs.rank {
		m.NewRank = emp.Rank
	}
	if !cs.grade {
		m.NewGrade = emp.Grade
	}
	if !cs.position {
		m.NewPosition = emp.PositionTitle
	}
}

// applyTo writes only the changed fields, so unrelated career data is left alone.
func (m Mutation) applyTo(emp *employee.Employee) {
	cs := m.changeSet()
	if cs.department {
		emp.DepartmentID = m.NewDepartmentID
		emp.Department = nil
	}
	if cs.rank {
		emp.Rank = m.NewRank
	}
	if cs.grade {
		emp.Grade = m.NewGrade
	}
	if cs.position {
		emp.PositionTitle = m.NewPosition
	}
}

func (m Mutation) revert(emp *employee.Employee) {
	cs := m.changeSet()
	if cs.department {
		emp.DepartmentID = m.PreviousDepartmentID
		emp.Department = nil
	}
	if cs.rank {
		emp.Rank = m.PreviousRank
	}
	if cs.grade {
		emp.Grade = m.PreviousGrade
	}
	if cs.position {
		emp.PositionTitle = m.PreviousPosition
	}
}

func sameDepartment(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func mapToResponse(m Mutation) MutationResponse {
	return MutationResponse{
		ID:                    m.ID.String(),
		EmployeeID:            m.EmployeeID.String(),
		MutationType:          m.MutationType,
		EffectiveDate:         m.EffectiveDate.Format(dateLayout),
		DecreeNumber:          m.DecreeNumber,
		PreviousDepartmentID:  uuidString(m.PreviousDepartmentID),
		NewDepartmentID:       uuidString(m.NewDepartmentID),
		PreviousRank:          m.PreviousRank,
		NewRank:               m.NewRank,
		PreviousGrade:         m.PreviousGrade,
		NewGrade:              m.NewGrade,
		PreviousPositionTitle: m.PreviousPosition,
		NewPositionTitle:      m.NewPosition,
		Applied:               m.Applied,
		Notes:                 m.Notes,
		CreatedBy:             m.CreatedBy.String(),
		CreatedAt:             m.CreatedAt.Format(time.RFC3339),
	}
}
