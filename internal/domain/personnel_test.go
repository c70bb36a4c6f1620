package domain_test

import (
	"testing"
	"time"

	"go-personnel/internal/domain"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestRetirementDate(t *testing.T) {
	assert.Equal(t, date("2024-03-01"), domain.RetirementDate(date("1966-03-01")))
	// 2026 is not a leap year
	assert.Equal(t, date("2026-03-01"), domain.RetirementDate(date("1968-02-29")))
	assert.Equal(t, date("2024-03-01"),
		domain.RetirementDate(time.Date(1966, 3, 1, 23, 30, 0, 0, time.UTC)))
}

func TestIsRetirementDue(t *testing.T) {
	tests := []struct {
		name  string
		birth string
		today string
		want  bool
	}{
		{"exactly on retirement date", "1966-03-01", "2024-03-01", true},
		{"day before retirement date", "1966-03-01", "2024-02-29", false},
		{"long past", "1950-01-01", "2024-03-01", true},
		{"young", "1990-06-15", "2024-03-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsRetirementDue(date(tt.birth), date(tt.today)))
		})
	}
}

func TestIsUpcomingRetirement(t *testing.T) {
	tests := []struct {
		name  string
		birth string
		today string
		want  bool
	}{
		{"retires today is not upcoming", "1966-03-01", "2024-03-01", false},
		{"retires tomorrow", "1966-03-02", "2024-03-01", true},
		{"retires exactly one year out", "1967-03-01", "2024-03-01", true},
		{"retires one year and a day out", "1967-03-02", "2024-03-01", false},
		{"already retired", "1960-01-01", "2024-03-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsUpcomingRetirement(date(tt.birth), date(tt.today)))
		})
	}
}

func TestLeaveCovers(t *testing.T) {
	start, end := date("2024-01-10"), date("2024-01-20")

	assert.True(t, domain.LeaveCovers(start, end, date("2024-01-15")))
	assert.True(t, domain.LeaveCovers(start, end, date("2024-01-10")))
	assert.True(t, domain.LeaveCovers(start, end, date("2024-01-20")))
	assert.True(t, domain.LeaveCovers(start, end, time.Date(2024, 1, 20, 18, 0, 0, 0, time.UTC)))
	assert.False(t, domain.LeaveCovers(start, end, date("2024-01-09")))
	assert.False(t, domain.LeaveCovers(start, end, date("2024-01-25")))
}

func TestDeriveStatus(t *testing.T) {
	leave := []domain.LeavePeriod{{Start: date("2024-01-10"), End: date("2024-01-20")}}

	tests := []struct {
		name       string
		current    domain.EmployeeStatus
		retirement bool
		leaves     []domain.LeavePeriod
		today      string
		want       domain.EmployeeStatus
	}{
		{"approved leave covering today", domain.StatusActive, false, leave, "2024-01-15", domain.StatusOnLeave},
		{"approved leave already ended", domain.StatusOnLeave, false, leave, "2024-01-25", domain.StatusActive},
		{"future leave keeps active", domain.StatusActive, false, leave, "2024-01-05", domain.StatusActive},
		{"retired stays retired despite leave", domain.StatusRetired, false, leave, "2024-01-15", domain.StatusRetired},
		{"retirement record wins", domain.StatusOnLeave, true, leave, "2024-01-15", domain.StatusRetired},
		{"no leaves", domain.StatusOnLeave, false, nil, "2024-01-15", domain.StatusActive},
		{
			"one of several leaves covers today",
			domain.StatusActive, false,
			[]domain.LeavePeriod{
				{Start: date("2023-12-01"), End: date("2023-12-05")},
				{Start: date("2024-01-14"), End: date("2024-01-16")},
			},
			"2024-01-15", domain.StatusOnLeave,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveStatus(tt.current, tt.retirement, tt.leaves, date(tt.today))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpcomingRetirements(t *testing.T) {
	today := date("2024-03-01")
	candidates := []domain.RetirementCandidate{
		{EmployeeID: "late", FullName: "Zed", Status: domain.StatusActive, BirthDate: datePtr("1966-12-01")},
		{EmployeeID: "early-b", FullName: "bravo", Status: domain.StatusActive, BirthDate: datePtr("1966-06-01")},
		{EmployeeID: "early-a", FullName: "Alpha", Status: domain.StatusActive, BirthDate: datePtr("1966-06-01")},
		{EmployeeID: "on-leave", FullName: "Leave", Status: domain.StatusOnLeave, BirthDate: datePtr("1966-06-01")},
		{EmployeeID: "no-birth", FullName: "Unknown", Status: domain.StatusActive},
		{EmployeeID: "due", FullName: "Due", Status: domain.StatusActive, BirthDate: datePtr("1966-03-01")},
		{EmployeeID: "far", FullName: "Far", Status: domain.StatusActive, BirthDate: datePtr("1970-01-01")},
	}

	got := domain.UpcomingRetirements(candidates, today)

	ids := make([]string, len(got))
	for i, u := range got {
		ids[i] = u.EmployeeID
	}
	assert.Equal(t, []string{"early-a", "early-b", "late"}, ids)
	assert.Equal(t, date("2024-06-01"), got[0].RetirementDate)
	assert.Equal(t, 92, got[0].DaysLeft)
}

func TestUpcomingRetirements_Empty(t *testing.T) {
	got := domain.UpcomingRetirements(nil, date("2024-03-01"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDueForRetirement(t *testing.T) {
	today := date("2024-03-01")
	candidates := []domain.RetirementCandidate{
		{EmployeeID: "due", Status: domain.StatusActive, BirthDate: datePtr("1966-03-01")},
		{EmployeeID: "overdue", Status: domain.StatusActive, BirthDate: datePtr("1960-01-01")},
		{EmployeeID: "retired", Status: domain.StatusRetired, BirthDate: datePtr("1950-01-01")},
		{EmployeeID: "on-leave", Status: domain.StatusOnLeave, BirthDate: datePtr("1950-01-01")},
		{EmployeeID: "young", Status: domain.StatusActive, BirthDate: datePtr("1990-01-01")},
		{EmployeeID: "unknown", Status: domain.StatusActive},
	}

	got := domain.DueForRetirement(candidates, today)

	assert.Len(t, got, 2)
	assert.Equal(t, "due", got[0].EmployeeID)
	assert.Equal(t, "overdue", got[1].EmployeeID)
}
