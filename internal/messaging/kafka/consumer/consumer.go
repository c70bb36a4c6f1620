package consumer

import (
	"context"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const retryBackoff = 2 * time.Second

// MessageReader is the subset of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ErrSkip marks a message that can never succeed. It is committed and dropped.
var ErrSkip = errors.New("skip message")

// HandlerFunc processes one message. Returning nil or ErrSkip commits it; any other error leaves
// it uncommitted so it is redelivered.
type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

// Run fetches and dispatches messages until ctx is cancelled.
func Run(ctx context.Context, reader MessageReader, handle HandlerFunc, log *zap.Logger) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := handle(ctx, msg); err != nil && !errors.Is(err, ErrSkip) {
			log.Error("handle message failed",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryBackoff):
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}
