package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-personnel/internal/domain"
	"go-personnel/internal/employee"
	"go-personnel/internal/leave"
	"go-personnel/internal/mutation"
	summaryerrors "go-personnel/internal/summary/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	summaryTTL       = 24 * time.Hour
	summaryKeyPrefix = "summary:"
	dateLayout       = "2006-01-02"
	recentLeaveLimit = 10
)

func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return summaryKeyPrefix + hex.EncodeToString(sum[:])
}

type Service interface {
	SummarizeLeave(ctx context.Context, companyID, leaveID string) (SummaryResponse, error)
	SummarizeEmployee(ctx context.Context, companyID, employeeID string) (SummaryResponse, error)
}

type service struct {
	generator Generator
	leaves    leave.Repository
	employees employee.Repository
	mutations mutation.Repository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

// NewService returns a summary service. A nil generator disables summaries.
func NewService(
	generator Generator,
	leaves leave.Repository,
	employees employee.Repository,
	mutations mutation.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("summary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summary.service")
	}
	return &service{
		generator: generator,
		leaves:    leaves,
		employees: employees,
		mutations: mutations,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) SummarizeLeave(ctx context.Context, companyID, leaveID string) (SummaryResponse, error) {
	if s.generator == nil {
		return SummaryResponse{}, summaryerrors.ErrSummaryUnavailable
	}

	l, err := s.leaves.FindByIDAndCompany(ctx, companyID, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, summaryerrors.ErrLeaveNotFound
		}
		return SummaryResponse{}, err
	}

	text, cached, err := s.summarize(ctx, buildLeavePrompt(*l))
	if err != nil {
		return SummaryResponse{}, err
	}
	return SummaryResponse{Subject: "leave", SubjectID: leaveID, Summary: text, Cached: cached}, nil
}

func (s *service) SummarizeEmployee(ctx context.Context, companyID, employeeID string) (SummaryResponse, error) {
	if s.generator == nil {
		return SummaryResponse{}, summaryerrors.ErrSummaryUnavailable
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, summaryerrors.ErrEmployeeNotFound
		}
		return SummaryResponse{}, err
	}
	leaves, err := s.leaves.FindAllByCompany(ctx, companyID, leave.LeaveFilter{EmployeeID: employeeID})
	if err != nil {
		return SummaryResponse{}, err
	}
	mutations, err := s.mutations.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return SummaryResponse{}, err
	}

	text, cached, err := s.summarize(ctx, buildEmployeePrompt(*emp, leaves, mutations))
	if err != nil {
		return SummaryResponse{}, err
	}
	return SummaryResponse{Subject: "employee", SubjectID: employeeID, Summary: text, Cached: cached}, nil
}

// summarize returns the cached text for prompt or generates it once for concurrent callers.
func (s *service) summarize(ctx context.Context, prompt string) (string, bool, error) {
	key := CacheKey(prompt)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached, true, nil
		} else if err != nil && !errors.Is(err, redis.Nil) {
			s.logger.Warn("read summary cache failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		text, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			s.logger.Error("generate summary failed", zap.Error(err))
			return "", summaryerrors.ErrGenerationFailed
		}
		if s.rdb != nil {
			if err := s.rdb.Set(ctx, key, text, summaryTTL).Err(); err != nil {
				s.logger.Warn("cache summary failed", zap.Error(err))
			}
		}
		return text, nil
	})
	if err != nil {
		return "", false, err
	}
	return v.(string), false, nil
}

func buildLeavePrompt(l leave.Leave) string {
	var b strings.Builder
	b.WriteString("Summarise the following leave request for an HR officer in two or three sentences. ")
	b.WriteString("State who is away, when, why, and the current decision. Do not invent facts.\n\n")
	if l.Employee != nil {
		fmt.Fprintf(&b, "Employee: %s (%s), status %s\n", l.Employee.FullName, l.Employee.EmployeeNumber, l.Employee.Status)
	}
	fmt.Fprintf(&b, "Leave type: %s\n", l.LeaveType)
	fmt.Fprintf(&b, "Period: %s to %s (%d days)\n", l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), l.TotalDays)
	fmt.Fprintf(&b, "Decision: %s\n", l.Status)
	if l.RejectionReason != nil && *l.RejectionReason != "" {
		fmt.Fprintf(&b, "Rejection reason: %s\n", *l.RejectionReason)
	}
	fmt.Fprintf(&b, "Justification: %s\n", strings.TrimSpace(l.Reason))
	return b.String()
}

func buildEmployeePrompt(e employee.Employee, leaves []leave.Leave, mutations []mutation.Mutation) string {
	var b strings.Builder
	b.WriteString("Write a short career profile of this employee for an HR officer (at most one paragraph). ")
	b.WriteString("Mention position, tenure, recent career changes, recent leave and retirement outlook. Do not invent facts.\n\n")
	fmt.Fprintf(&b, "Name: %s (%s)\n", e.FullName, e.EmployeeNumber)
	fmt.Fprintf(&b, "Status: %s\n", e.Status)
	fmt.Fprintf(&b, "Position: %s, rank %s, grade %s\n", e.PositionTitle, e.Rank, e.Grade)
	if e.Department != nil {
		fmt.Fprintf(&b, "Department: %s\n", e.Department.Name)
	}
	fmt.Fprintf(&b, "Hired: %s\n", e.HireDate.Format(dateLayout))
	if e.BirthDate != nil {
		fmt.Fprintf(&b, "Retirement date: %s\n", domain.RetirementDate(*e.BirthDate).Format(dateLayout))
	}

	if len(mutations) > 0 {
		b.WriteString("Career changes (newest first):\n")
		for _, m := range mutations {
			fmt.Fprintf(&b, "- %s %s: %s -> %s, grade %s -> %s\n", m.EffectiveDate.Format(dateLayout), m.MutationType,
				m.PreviousPosition, m.NewPosition, m.PreviousGrade, m.NewGrade)
		}
	}

	if len(leaves) > 0 {
		b.WriteString("Recent leave:\n")
		for i, l := range leaves {
			if i == recentLeaveLimit {
				break
			}
			fmt.Fprintf(&b, "- %s %s to %s (%s)\n", l.LeaveType, l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), l.Status)
		}
	}
	return b.String()
}
