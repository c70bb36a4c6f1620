package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-personnel/internal/messaging/kafka"
	kafkaMock "go-personnel/internal/messaging/kafka/mock"
	"go-personnel/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestPublishPending(t *testing.T) {
	ctx := context.Background()

	t.Run("sends events and marks failures for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failTopic: "broken"}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "1", RequestID: "REQ-1", AggregateID: "emp-1", EventType: "employee_created", Topic: "hr.employee.lifecycle.v1", Payload: []byte(`{}`)},
			{ID: "2", AggregateID: "emp-2", EventType: "x", Topic: "broken", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "1").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "2", "broker unavailable").Return(nil)

		sent, err := producer.PublishPending(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		if assert.Len(t, writer.written, 1) {
			msg := writer.written[0]
			assert.Equal(t, []byte("emp-1"), msg.Key)
			assert.Len(t, msg.Headers, 3)
			assert.Equal(t, "request_id", msg.Headers[2].Key)
		}
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, nil)

		sent, err := producer.PublishPending(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.PublishPending(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})
}
