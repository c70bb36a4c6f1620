package app

import (
	"context"
	"time"

	"go-personnel/internal/bootstrap"
	"go-personnel/internal/config"
	"go-personnel/internal/messaging/kafka"
	"go-personnel/internal/messaging/kafka/producer"
	"go-personnel/internal/shared/connection"

	"go.uber.org/zap"
)

const kafkaRetries = 5

// Job is one daily maintenance step; it reports how many records it changed.
type Job struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// DailyJobs returns the maintenance steps in execution order. Mutations are applied before
// retirement so the decree carries the final career data. Delivered outbox rows are pruned last.
func DailyJobs(svc *services) []Job {
	return []Job{
		{Name: "apply_due_mutations", Run: svc.mutation.ApplyDue},
		{Name: "scheduled_retirement", Run: svc.retirement.RunScheduled},
		{Name: "status_sweep", Run: svc.reconciler.Sweep},
		{Name: "outbox_purge", Run: svc.purgeOutbox},
	}
}

func (svc *services) purgeOutbox(ctx context.Context) (int, error) {
	if svc.outboxRetention <= 0 {
		return 0, nil
	}
	return svc.outboxRepo.PurgeSent(ctx, svc.clock.Now().Add(-svc.outboxRetention))
}

// RunJobs executes every job once. A failing job is logged and does not stop the rest.
func RunJobs(ctx context.Context, jobs []Job, logger *zap.Logger) {
	for _, job := range jobs {
		start := time.Now()
		n, err := job.Run(ctx)
		if err != nil {
			logger.Error("daily job failed", zap.String("job", job.Name), zap.Int("changed", n), zap.Error(err))
			continue
		}
		logger.Info("daily job finished",
			zap.String("job", job.Name),
			zap.Int("changed", n),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func runPeriodically(ctx context.Context, interval time.Duration, jobs []Job, logger *zap.Logger) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	RunJobs(ctx, jobs, logger)
	for {
		select {
		case <-ctx.Done():
			logger.Info("daily jobs stopped")
			return
		case <-ticker.C:
			RunJobs(ctx, jobs, logger)
		}
	}
}

// RunWorker relays the outbox to Kafka and runs the daily personnel jobs until a shutdown
// signal arrives. Without a broker only the daily jobs run.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	in, err := connect(cfg, logger, true)
	if err != nil {
		return err
	}
	defer in.Close()

	svc, err := buildServices(cfg, in, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Kafka.Broker != "" {
		kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, kafkaRetries, logger)
		if err != nil {
			return err
		}
		defer kafkaWriter.Close()

		go producer.ProcessOutboxEvents(
			ctx,
			kafka.NewOutboxRepository(in.db),
			kafkaWriter,
			logger,
			cfg.Worker.OutboxPollInterval,
		)
	} else {
		log.Warn("kafka broker not configured, outbox relay disabled")
	}

	go runPeriodically(ctx, cfg.Worker.StatusSweepInterval, DailyJobs(svc), log)

	sig := bootstrap.WaitForShutdown()
	log.Info("worker shutting down", zap.String("signal", sig.String()))
	cancel()

	return nil
}
