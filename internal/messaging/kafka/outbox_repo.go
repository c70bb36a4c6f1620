package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

const (
	retryStep       = 15 * time.Second
	maxRetrySteps   = 10
	maxErrorMessage = 500
)

// OutboxEvent is a domain event stored in the same transaction as the change that produced it.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

func NewOutboxEvent(requestID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("encode %s event: %w", eventType, err)
	}
	evt := OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}
	return evt, nil
}

// RetryDelay is the wait before the given delivery attempt, growing linearly up to a cap.
func RetryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > maxRetrySteps {
		attempt = maxRetrySteps
	}
	return time.Duration(attempt) * retryStep
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	PurgeSent(ctx context.Context, before time.Time) (int, error)
}

type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) exec() sqlExecutor {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const insertOutbox = `INSERT INTO outbox_events
	(id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *outboxRepository) Create(ctx context.Context, e OutboxEvent) error {
	if err := ValidateOutboxEvent(e); err != nil {
		return err
	}
	_, err := r.exec().ExecContext(ctx, insertOutbox,
		e.ID, e.RequestID, e.AggregateType, e.AggregateID, e.EventType, e.Topic, e.Payload, e.Status)
	return err
}

const selectDue = `SELECT id::text, COALESCE(request_id, ''), aggregate_type, aggregate_id::text,
	event_type, topic, payload, status, retry_count, COALESCE(next_retry_at, created_at)
FROM outbox_events
WHERE status <> $1 AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at
LIMIT $2`

// ListPending returns undelivered events whose retry time has come, oldest first.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.exec().QueryContext(ctx, selectDue, OutboxStatusSent, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutboxEvent
	for rows.Next() {
		e, err := scanOutbox(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanOutbox(rows *sql.Rows) (OutboxEvent, error) {
	var e OutboxEvent
	err := rows.Scan(&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
		&e.EventType, &e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt)
	return e, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.exec().ExecContext(ctx,
		`UPDATE outbox_events SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW() WHERE id = $1`,
		id, OutboxStatusSent)
	return err
}

// MarkFailed bumps the retry counter and pushes next_retry_at out by RetryDelay steps.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > maxErrorMessage {
		reason = reason[:maxErrorMessage]
	}
	_, err := r.exec().ExecContext(ctx,
		`UPDATE outbox_events
SET status = $2, retry_count = retry_count + 1, error_message = $3,
	next_retry_at = NOW() + LEAST(retry_count + 1, $4) * $5 * INTERVAL '1 second',
	updated_at = NOW()
WHERE id = $1`,
		id, OutboxStatusFailed, reason, maxRetrySteps, int(retryStep/time.Second))
	return err
}

// PurgeSent deletes delivered events processed before the cutoff.
func (r *outboxRepository) PurgeSent(ctx context.Context, before time.Time) (int, error) {
	res, err := r.exec().ExecContext(ctx,
		`DELETE FROM outbox_events WHERE status = $1 AND processed_at < $2`,
		OutboxStatusSent, before)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func ValidateOutboxEvent(e OutboxEvent) error {
	switch {
	case e.ID == "":
		return errors.New("outbox id is required")
	case e.Topic == "":
		return errors.New("outbox topic is required")
	case len(e.Payload) == 0:
		return errors.New("outbox payload is required")
	}
	if e.Status != OutboxStatusPending && e.Status != OutboxStatusSent && e.Status != OutboxStatusFailed {
		return fmt.Errorf("invalid outbox status: %s", e.Status)
	}
	return nil
}
