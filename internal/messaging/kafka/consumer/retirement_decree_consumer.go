package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-personnel/internal/events"
	retirementerrors "go-personnel/internal/retirement/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type DecreeGenerator interface {
	GenerateDecree(ctx context.Context, companyID, id string) error
}

func ConsumeRetirementDecreeRequested(
	ctx context.Context,
	reader MessageReader,
	generator DecreeGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.retirement_decree")
	Run(ctx, reader, RetirementDecreeHandler(generator, log), log)
}

// RetirementDecreeHandler renders the decree for each requested retirement. Undecodable events
// and retirements that no longer exist are skipped.
func RetirementDecreeHandler(generator DecreeGenerator, log *zap.Logger) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.RetirementDecreeRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode retirement decree event failed", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrSkip, err)
		}

		if err := generator.GenerateDecree(ctx, event.CompanyID, event.RetirementID); err != nil {
			if errors.Is(err, retirementerrors.ErrRetirementNotFound) {
				log.Warn("retirement vanished before decree generation",
					zap.String("retirement_id", event.RetirementID),
					zap.String("company_id", event.CompanyID),
				)
				return ErrSkip
			}
			return err
		}

		log.Info("retirement decree generated",
			zap.String("retirement_id", event.RetirementID),
			zap.String("company_id", event.CompanyID),
			zap.String("request_id", event.RequestID),
		)
		return nil
	}
}
