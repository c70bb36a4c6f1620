package domain

import (
	"sort"
	"strings"
	"time"
)

// RetirementAge is the mandatory retirement age in years.
const RetirementAge = 58

type EmployeeStatus string

const (
	StatusActive  EmployeeStatus = "ACTIVE"
	StatusOnLeave EmployeeStatus = "ON_LEAVE"
	StatusRetired EmployeeStatus = "RETIRED"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case StatusActive, StatusOnLeave, StatusRetired:
		return true
	}
	return false
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RetirementDate is the birth date plus RetirementAge years.
// A 29 February birth date rolls over to 1 March in non-leap years.
func RetirementDate(birth time.Time) time.Time {
	return DateOnly(birth).AddDate(RetirementAge, 0, 0)
}

// IsRetirementDue reports whether the retirement date is on or before today.
func IsRetirementDue(birth, today time.Time) bool {
	return !RetirementDate(birth).After(DateOnly(today))
}

// IsUpcomingRetirement reports whether the retirement date falls in (today, today+1y].
func IsUpcomingRetirement(birth, today time.Time) bool {
	rd := RetirementDate(birth)
	t := DateOnly(today)
	return rd.After(t) && !rd.After(t.AddDate(1, 0, 0))
}

// LeaveCovers reports whether start <= today <= end, compared as dates.
func LeaveCovers(start, end, today time.Time) bool {
	t := DateOnly(today)
	return !DateOnly(start).After(t) && !DateOnly(end).Before(t)
}

// LeavePeriod is an approved leave window.
type LeavePeriod struct {
	Start time.Time
	End   time.Time
}

// DeriveStatus computes the status an employee should have today.
// Retirement is terminal; otherwise any approved leave covering today means ON_LEAVE.
func DeriveStatus(current EmployeeStatus, hasRetirementRecord bool, approvedLeaves []LeavePeriod, today time.Time) EmployeeStatus {
	if current == StatusRetired || hasRetirementRecord {
		return StatusRetired
	}
	for _, l := range approvedLeaves {
		if LeaveCovers(l.Start, l.End, today) {
			return StatusOnLeave
		}
	}
	return StatusActive
}

// RetirementCandidate is the minimal view of an employee needed for retirement planning.
type RetirementCandidate struct {
	EmployeeID     string
	EmployeeNumber string
	FullName       string
	Status         EmployeeStatus
	BirthDate      *time.Time
}

type UpcomingRetirement struct {
	RetirementCandidate
	RetirementDate time.Time
	DaysLeft       int
}

// UpcomingRetirements selects ACTIVE candidates with a known birth date retiring within the
// next year, ordered by retirement date and then by name.
func UpcomingRetirements(candidates []RetirementCandidate, today time.Time) []UpcomingRetirement {
	t := DateOnly(today)
	out := make([]UpcomingRetirement, 0)
	for _, c := range candidates {
		if c.Status != StatusActive || c.BirthDate == nil {
			continue
		}
		if !IsUpcomingRetirement(*c.BirthDate, t) {
			continue
		}
		rd := RetirementDate(*c.BirthDate)
		out = append(out, UpcomingRetirement{
			RetirementCandidate: c,
			RetirementDate:      rd,
			DaysLeft:            int(rd.Sub(t).Hours() / 24),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].RetirementDate.Equal(out[j].RetirementDate) {
			return out[i].RetirementDate.Before(out[j].RetirementDate)
		}
		return strings.ToLower(out[i].FullName) < strings.ToLower(out[j].FullName)
	})
	return out
}

// DueForRetirement returns the ACTIVE candidates with a known birth date whose retirement
// date is on or before today.
func DueForRetirement(candidates []RetirementCandidate, today time.Time) []RetirementCandidate {
	out := make([]RetirementCandidate, 0)
	for _, c := range candidates {
		if c.Status != StatusActive || c.BirthDate == nil {
			continue
		}
		if IsRetirementDue(*c.BirthDate, today) {
			out = append(out, c)
		}
	}
	return out
}
