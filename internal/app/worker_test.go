package app

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkamock "go-personnel/internal/messaging/kafka/mock"
	"go-personnel/internal/shared/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunJobs_ContinuesAfterFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var ran []string
	jobs := []Job{
		{Name: "first", Run: func(context.Context) (int, error) { ran = append(ran, "first"); return 0, errors.New("boom") }},
		{Name: "second", Run: func(context.Context) (int, error) { ran = append(ran, "second"); return 3, nil }},
	}

	RunJobs(context.Background(), jobs, zap.New(core))

	assert.Equal(t, []string{"first", "second"}, ran)
	assert.Equal(t, 1, logs.FilterMessage("daily job failed").Len())
	finished := logs.FilterMessage("daily job finished").All()
	if assert.Len(t, finished, 1) {
		assert.Equal(t, int64(3), finished[0].ContextMap()["changed"])
	}
}

func TestRunPeriodically_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	jobs := []Job{{Name: "once", Run: func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, nil
	}}}

	runPeriodically(ctx, 0, jobs, zap.NewNop())

	assert.Equal(t, 1, calls)
}

func TestPurgeOutbox(t *testing.T) {
	now := time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)

	t.Run("deletes rows older than retention", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().PurgeSent(gomock.Any(), now.Add(-48*time.Hour)).Return(7, nil)

		svc := &services{outboxRepo: repo, clock: clock.Fixed{T: now}, outboxRetention: 48 * time.Hour}
		n, err := svc.purgeOutbox(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 7, n)
	})

	t.Run("disabled without retention", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := &services{outboxRepo: kafkamock.NewMockOutboxRepository(ctrl), clock: clock.Fixed{T: now}}

		n, err := svc.purgeOutbox(context.Background())

		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
