package summary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-personnel/internal/domain"
	"go-personnel/internal/employee"
	"go-personnel/internal/leave"
	"go-personnel/internal/mutation"
	"go-personnel/internal/summary"
	summaryerrors "go-personnel/internal/summary/errors"

	employeeMock "go-personnel/internal/employee/mock"
	leaveMock "go-personnel/internal/leave/mock"
	mutationMock "go-personnel/internal/mutation/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const keyPattern = "summary:[0-9a-f]{64}"

type fakeGenerator struct {
	calls      int
	lastPrompt string
	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.generateFn(ctx, prompt)
}

type deps struct {
	generator *fakeGenerator
	leaves    *leaveMock.MockRepository
	employees *employeeMock.MockRepository
	mutations *mutationMock.MockRepository
	rdb       *redis.Client
	redisMock redismock.ClientMock
}

func setup(t *testing.T) *deps {
	ctrl := gomock.NewController(t)
	rdb, rm := redismock.NewClientMock()
	return &deps{
		generator: &fakeGenerator{},
		leaves:    leaveMock.NewMockRepository(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		mutations: mutationMock.NewMockRepository(ctrl),
		rdb:       rdb,
		redisMock: rm,
	}
}

func (d *deps) service() summary.Service {
	return summary.NewService(d.generator, d.leaves, d.employees, d.mutations, d.rdb)
}

func sampleLeave() *leave.Leave {
	return &leave.Leave{
		ID:        uuid.New(),
		LeaveType: leave.TypeAnnual,
		StartDate: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
		TotalDays: 3,
		Reason:    "Family wedding in Medan",
		Status:    "APPROVED",
		Employee:  &leave.LeaveEmployee{FullName: "Budi Santoso", EmployeeNumber: "EMP-000001", Status: domain.StatusActive},
	}
}

func TestService_Unconfigured(t *testing.T) {
	d := setup(t)
	svc := summary.NewService(nil, d.leaves, d.employees, d.mutations, d.rdb)

	_, err := svc.SummarizeLeave(context.Background(), "company-1", "leave-1")
	assert.ErrorIs(t, err, summaryerrors.ErrSummaryUnavailable)

	_, err = svc.SummarizeEmployee(context.Background(), "company-1", "emp-1")
	assert.ErrorIs(t, err, summaryerrors.ErrSummaryUnavailable)
}

func TestService_SummarizeLeave(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss generates and stores", func(t *testing.T) {
		d := setup(t)
		l := sampleLeave()
		d.leaves.EXPECT().FindByIDAndCompany(ctx, "company-1", l.ID.String()).Return(l, nil)
		d.generator.generateFn = func(context.Context, string) (string, error) {
			return "Budi is on annual leave from 20 to 22 October.", nil
		}
		d.redisMock.Regexp().ExpectGet(keyPattern).RedisNil()
		d.redisMock.Regexp().ExpectSet(keyPattern, ".*", 24*time.Hour).SetVal("OK")

		resp, err := d.service().SummarizeLeave(ctx, "company-1", l.ID.String())

		require.NoError(t, err)
		assert.False(t, resp.Cached)
		assert.Equal(t, "leave", resp.Subject)
		assert.Equal(t, "Budi is on annual leave from 20 to 22 October.", resp.Summary)
		assert.Contains(t, d.generator.lastPrompt, "Family wedding in Medan")
		assert.Contains(t, d.generator.lastPrompt, "2026-10-20 to 2026-10-22 (3 days)")
		assert.NoError(t, d.redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips generator", func(t *testing.T) {
		d := setup(t)
		l := sampleLeave()
		d.leaves.EXPECT().FindByIDAndCompany(ctx, "company-1", l.ID.String()).Return(l, nil)
		d.redisMock.Regexp().ExpectGet(keyPattern).SetVal("cached summary")

		resp, err := d.service().SummarizeLeave(ctx, "company-1", l.ID.String())

		require.NoError(t, err)
		assert.True(t, resp.Cached)
		assert.Equal(t, "cached summary", resp.Summary)
		assert.Equal(t, 0, d.generator.calls)
	})

	t.Run("same prompt maps to same key", func(t *testing.T) {
		assert.Equal(t, summary.CacheKey("a"), summary.CacheKey("a"))
		assert.NotEqual(t, summary.CacheKey("a"), summary.CacheKey("b"))
		assert.Regexp(t, "^"+keyPattern+"$", summary.CacheKey("a"))
	})

	t.Run("generator failure is unavailable and not cached", func(t *testing.T) {
		d := setup(t)
		l := sampleLeave()
		d.leaves.EXPECT().FindByIDAndCompany(ctx, "company-1", l.ID.String()).Return(l, nil)
		d.generator.generateFn = func(context.Context, string) (string, error) {
			return "", errors.New("quota exceeded")
		}
		d.redisMock.Regexp().ExpectGet(keyPattern).RedisNil()

		_, err := d.service().SummarizeLeave(ctx, "company-1", l.ID.String())

		assert.ErrorIs(t, err, summaryerrors.ErrGenerationFailed)
		assert.NoError(t, d.redisMock.ExpectationsWereMet())
	})

	t.Run("unknown leave", func(t *testing.T) {
		d := setup(t)
		d.leaves.EXPECT().FindByIDAndCompany(ctx, "company-1", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service().SummarizeLeave(ctx, "company-1", "missing")

		assert.ErrorIs(t, err, summaryerrors.ErrLeaveNotFound)
	})

	t.Run("works without redis", func(t *testing.T) {
		d := setup(t)
		l := sampleLeave()
		d.leaves.EXPECT().FindByIDAndCompany(ctx, "company-1", l.ID.String()).Return(l, nil)
		d.generator.generateFn = func(context.Context, string) (string, error) { return "ok", nil }
		svc := summary.NewService(d.generator, d.leaves, d.employees, d.mutations, nil)

		resp, err := svc.SummarizeLeave(ctx, "company-1", l.ID.String())

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Summary)
	})
}

func TestService_SummarizeEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("prompt includes career and leave history", func(t *testing.T) {
		d := setup(t)
		birth := time.Date(1969, 4, 1, 0, 0, 0, 0, time.UTC)
		emp := &employee.Employee{
			ID:             uuid.New(),
			EmployeeNumber: "EMP-000001",
			FullName:       "Budi Santoso",
			PositionTitle:  "Kepala Seksi",
			Grade:          "IV/a",
			Status:         domain.StatusActive,
			BirthDate:      &birth,
			HireDate:       time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		id := emp.ID.String()
		d.employees.EXPECT().FindByIDAndCompany(ctx, "company-1", id).Return(emp, nil)
		d.leaves.EXPECT().FindAllByCompany(ctx, "company-1", leave.LeaveFilter{EmployeeID: id}).Return([]leave.Leave{*sampleLeave()}, nil)
		d.mutations.EXPECT().FindByEmployee(ctx, "company-1", id).Return([]mutation.Mutation{{
			MutationType:     mutation.TypePromotion,
			EffectiveDate:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			PreviousPosition: "Analis",
			NewPosition:      "Kepala Seksi",
			PreviousGrade:    "III/d",
			NewGrade:         "IV/a",
		}}, nil)
		d.generator.generateFn = func(context.Context, string) (string, error) { return "profile", nil }
		d.redisMock.Regexp().ExpectGet(keyPattern).RedisNil()
		d.redisMock.Regexp().ExpectSet(keyPattern, "profile", 24*time.Hour).SetVal("OK")

		resp, err := d.service().SummarizeEmployee(ctx, "company-1", id)

		require.NoError(t, err)
		assert.Equal(t, "employee", resp.Subject)
		assert.Contains(t, d.generator.lastPrompt, "Retirement date: 2027-04-01")
		assert.Contains(t, d.generator.lastPrompt, "2020-01-01 PROMOTION: Analis -> Kepala Seksi")
		assert.Contains(t, d.generator.lastPrompt, "ANNUAL 2026-10-20 to 2026-10-22 (APPROVED)")
	})

	t.Run("unknown employee", func(t *testing.T) {
		d := setup(t)
		d.employees.EXPECT().FindByIDAndCompany(ctx, "company-1", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service().SummarizeEmployee(ctx, "company-1", "missing")

		assert.ErrorIs(t, err, summaryerrors.ErrEmployeeNotFound)
	})
}
