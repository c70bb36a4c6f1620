// Package personnel keeps the stored employee status in line with DeriveStatus.
package personnel

import (
	"context"
	"database/sql"
	"errors"

	"go-personnel/internal/domain"
	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka"
	"go-personnel/internal/metrics"
	"go-personnel/internal/shared/clock"
	"go-personnel/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Transition describes the outcome of one reconciliation.
type Transition struct {
	EmployeeID string
	From       domain.EmployeeStatus
	To         domain.EmployeeStatus
}

func (t Transition) Changed() bool {
	return t.From != t.To
}

//go:generate mockgen -source=reconciler.go -destination=mock/reconciler_mock.go -package=mock
type Reconciler interface {
	// Reconcile recomputes the status inside tx. The caller commits.
	Reconcile(ctx context.Context, tx *sql.Tx, companyID, employeeID string) (Transition, error)
	// Sweep reconciles every employee whose status may have gone stale since yesterday.
	Sweep(ctx context.Context) (int, error)
}

type reconciler struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	clock  clock.Clock
	logger *zap.Logger
}

func NewReconciler(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, clk clock.Clock, logger ...*zap.Logger) Reconciler {
	l := zap.L().Named("personnel.reconciler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("personnel.reconciler")
	}
	return &reconciler{db: db, repo: repo, outbox: outbox, clock: clock.Or(clk), logger: l}
}

func (r *reconciler) Reconcile(ctx context.Context, tx *sql.Tx, companyID, employeeID string) (Transition, error) {
	qtx := r.repo.WithTx(tx)

	state, err := qtx.LockEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Transition{}, ErrEmployeeNotFound
		}
		return Transition{}, err
	}

	retired, err := qtx.HasRetirement(ctx, companyID, employeeID)
	if err != nil {
		return Transition{}, err
	}

	var leaves []domain.LeavePeriod
	if !retired && state.Status != domain.StatusRetired {
		leaves, err = qtx.ApprovedLeaves(ctx, companyID, employeeID)
		if err != nil {
			return Transition{}, err
		}
	}

	next := domain.DeriveStatus(state.Status, retired, leaves, r.clock.Today())
	tr := Transition{EmployeeID: employeeID, From: state.Status, To: next}
	if !tr.Changed() {
		return tr, nil
	}

	if err := qtx.UpdateStatus(ctx, companyID, employeeID, next); err != nil {
		return Transition{}, err
	}

	if r.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event, err := kafka.NewOutboxEvent(rid, "employee", employeeID,
			events.EmployeeStatusChangedType, events.EmployeeLifecycleTopic,
			events.EmployeeStatusChangedEvent{
				EventType:  events.EmployeeStatusChangedType,
				RequestID:  rid,
				EmployeeID: employeeID,
				CompanyID:  companyID,
				From:       string(tr.From),
				To:         string(tr.To),
				Reason:     transitionReason(tr),
				OccurredAt: r.clock.Now(),
			})
		if err != nil {
			return Transition{}, err
		}
		if err := r.outbox.WithTx(tx).Create(ctx, event); err != nil {
			return Transition{}, err
		}
	}

	metrics.RecordStatusTransition(string(tr.From), string(tr.To))
	contextutil.Logger(ctx, r.logger).Info("employee status reconciled",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("from", string(tr.From)),
		zap.String("to", string(tr.To)),
	)
	return tr, nil
}

func (r *reconciler) Sweep(ctx context.Context) (int, error) {
	refs, err := r.repo.ListSweepCandidates(ctx, r.clock.Today())
	if err != nil {
		return 0, err
	}

	changed := 0
	var errs []error
	for _, ref := range refs {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		ok, err := r.reconcileOne(ctx, ref)
		if err != nil {
			r.logger.Error("sweep reconcile failed",
				zap.String("company_id", ref.CompanyID),
				zap.String("employee_id", ref.EmployeeID),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		if ok {
			changed++
		}
	}

	r.logger.Info("status sweep finished",
		zap.Int("candidates", len(refs)),
		zap.Int("changed", changed),
		zap.Int("failed", len(errs)),
	)
	return changed, errors.Join(errs...)
}

func (r *reconciler) reconcileOne(ctx context.Context, ref EmployeeRef) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	tr, err := r.Reconcile(ctx, tx, ref.CompanyID, ref.EmployeeID)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return tr.Changed(), nil
}

func transitionReason(tr Transition) string {
	switch {
	case tr.To == domain.StatusRetired:
		return "retirement"
	case tr.To == domain.StatusOnLeave:
		return "leave_started"
	case tr.From == domain.StatusOnLeave:
		return "leave_ended"
	default:
		return "reconciled"
	}
}
