package producer

import (
	"context"
	"time"

	"go-personnel/internal/messaging/kafka"
	"go-personnel/internal/metrics"

	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
)

// ProcessOutboxEvents drains the outbox once at start and then on every tick until ctx ends.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	log := logger.Named("kafka.producer.worker")
	log.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if _, err := PublishPending(ctx, repo, writer, log); err != nil {
			log.Error("outbox batch failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return
		case <-ticker.C:
		}
	}
}

type relay struct {
	repo   kafka.OutboxRepository
	writer MessageWriter
	log    *zap.Logger
}

// deliver publishes one event and records the outcome on its row. It reports whether the
// event reached the broker.
func (r relay) deliver(ctx context.Context, e kafka.OutboxEvent) bool {
	log := r.log.With(
		zap.String("outbox_id", e.ID),
		zap.String("event_type", e.EventType),
		zap.String("topic", e.Topic),
	)

	if err := publishEvent(ctx, r.writer, e); err != nil {
		log.Error("outbox publish failed",
			zap.String("request_id", e.RequestID),
			zap.Int("retry_count", e.RetryCount),
			zap.Duration("retry_in", kafka.RetryDelay(e.RetryCount+1)),
			zap.Error(err),
		)
		if err := r.repo.MarkFailed(ctx, e.ID, err.Error()); err != nil {
			log.Error("outbox retry not scheduled", zap.Error(err))
		}
		return false
	}

	// The broker has the message; a failed MarkSent only means it may be sent twice.
	if err := r.repo.MarkSent(ctx, e.ID); err != nil {
		log.Error("outbox row not marked sent", zap.Error(err))
	}
	log.Debug("outbox event sent")
	return true
}

// PublishPending relays one batch of due outbox rows and returns how many reached the broker.
// A failed publish marks the row for retry and does not stop the batch.
func PublishPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil || len(events) == 0 {
		return 0, err
	}

	r := relay{repo: repo, writer: writer, log: logger}
	sent := 0
	for _, e := range events {
		if r.deliver(ctx, e) {
			sent++
		}
	}

	failed := len(events) - sent
	metrics.RecordOutbox(sent, failed)
	logger.Info("outbox batch relayed", zap.Int("sent", sent), zap.Int("failed", failed))
	return sent, nil
}
