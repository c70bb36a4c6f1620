package app

import (
	"context"
	"fmt"

	"go-personnel/internal/bootstrap"
	"go-personnel/internal/config"
	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer renders retirement decrees requested through Kafka.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("kafka.broker is required")
	}

	in, err := connect(cfg, logger, true)
	if err != nil {
		return err
	}
	defer in.Close()

	svc, err := buildServices(cfg, in, logger)
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.RetirementDecreeRequestedTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeRetirementDecreeRequested(ctx, reader, svc.retirement, logger)
	}()

	sig := bootstrap.WaitForShutdown()
	log.Info("consumer shutting down", zap.String("signal", sig.String()))
	cancel()
	<-done

	return nil
}
