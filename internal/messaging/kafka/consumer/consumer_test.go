package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka/consumer"
	retirementerrors "go-personnel/internal/retirement/errors"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	messages  []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeGenerator struct {
	calls []string
	errFn func(id string) error
}

func (g *fakeGenerator) GenerateDecree(_ context.Context, companyID, id string) error {
	g.calls = append(g.calls, companyID+"/"+id)
	if g.errFn != nil {
		return g.errFn(id)
	}
	return nil
}

func decreeMessage(t *testing.T, offset int64, retirementID string) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(events.RetirementDecreeRequestedEvent{
		EventType:    events.RetirementDecreeRequestedType,
		RetirementID: retirementID,
		CompanyID:    "company-1",
	})
	assert.NoError(t, err)
	return kafkago.Message{Topic: events.RetirementDecreeRequestedTopic, Offset: offset, Value: body}
}

func TestRetirementDecreeHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("generates decree", func(t *testing.T) {
		gen := &fakeGenerator{}
		handle := consumer.RetirementDecreeHandler(gen, zap.NewNop())

		err := handle(ctx, decreeMessage(t, 1, "ret-1"))

		assert.NoError(t, err)
		assert.Equal(t, []string{"company-1/ret-1"}, gen.calls)
	})

	t.Run("bad payload is skipped", func(t *testing.T) {
		handle := consumer.RetirementDecreeHandler(&fakeGenerator{}, zap.NewNop())

		err := handle(ctx, kafkago.Message{Value: []byte("{")})

		assert.ErrorIs(t, err, consumer.ErrSkip)
	})

	t.Run("missing retirement is skipped", func(t *testing.T) {
		gen := &fakeGenerator{errFn: func(string) error { return retirementerrors.ErrRetirementNotFound }}
		handle := consumer.RetirementDecreeHandler(gen, zap.NewNop())

		err := handle(ctx, decreeMessage(t, 1, "ret-1"))

		assert.ErrorIs(t, err, consumer.ErrSkip)
	})

	t.Run("transient failure is returned", func(t *testing.T) {
		gen := &fakeGenerator{errFn: func(string) error { return errors.New("db down") }}
		handle := consumer.RetirementDecreeHandler(gen, zap.NewNop())

		err := handle(ctx, decreeMessage(t, 1, "ret-1"))

		assert.EqualError(t, err, "db down")
	})
}

func TestRun_CommitsHandledAndSkippedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, messages: []kafkago.Message{
		decreeMessage(t, 1, "ret-1"),
		{Offset: 2, Value: []byte("not json")},
		decreeMessage(t, 3, "ret-3"),
	}}
	gen := &fakeGenerator{}

	consumer.ConsumeRetirementDecreeRequested(ctx, reader, gen, zap.NewNop())

	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
	assert.Len(t, gen.calls, 2)
}
