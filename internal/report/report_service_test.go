package report_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-personnel/internal/employee"
	"go-personnel/internal/leave"
	leaveerrors "go-personnel/internal/leave/errors"
	"go-personnel/internal/report"
	"go-personnel/internal/retirement"
	"go-personnel/internal/shared/apperror"
	"go-personnel/internal/shared/clock"

	employeeMock "go-personnel/internal/employee/mock"
	leaveMock "go-personnel/internal/leave/mock"
	retirementMock "go-personnel/internal/retirement/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type deps struct {
	service     report.Service
	employees   *employeeMock.MockService
	leaves      *leaveMock.MockService
	retirements *retirementMock.MockService
}

func setup(t *testing.T) deps {
	ctrl := gomock.NewController(t)
	d := deps{
		employees:   employeeMock.NewMockService(ctrl),
		leaves:      leaveMock.NewMockService(ctrl),
		retirements: retirementMock.NewMockService(ctrl),
	}
	d.service = report.NewService(d.employees, d.leaves, d.retirements, clock.Fixed{T: now})
	return d
}

var roster = []employee.EmployeeResponse{
	{
		EmployeeNumber: "EMP-000001",
		FullName:       "Budi Santoso",
		Email:          "budi@example.com",
		Grade:          "IV/a",
		Status:         "ACTIVE",
		HireDate:       "1995-01-01",
		BirthDate:      "1969-04-01",
		RetirementDate: "2027-04-01",
		Department:     &employee.EmployeeDepartmentResponse{Name: "Finance"},
	},
	{
		EmployeeNumber: "EMP-000002",
		FullName:       "Siti Rahma",
		Email:          "siti@example.com",
		Status:         "ON_LEAVE",
		HireDate:       "2010-06-01",
	},
}

func TestService_EmployeeRosterPDF(t *testing.T) {
	d := setup(t)
	ctx := context.Background()
	filter := employee.EmployeeFilter{Status: "active"}
	d.employees.EXPECT().GetAll(ctx, "company-1", filter).Return(roster[:1], nil)

	f, err := d.service.EmployeeRosterPDF(ctx, "company-1", filter)

	require.NoError(t, err)
	assert.Equal(t, "employees-2026-10-19.pdf", f.Name)
	assert.Equal(t, report.ContentTypePDF, f.ContentType)
	assert.True(t, bytes.HasPrefix(f.Data, []byte("%PDF-1.4")))
	assert.Contains(t, string(f.Data), "Budi Santoso")
	assert.Contains(t, string(f.Data), "Finance")
	assert.Contains(t, string(f.Data), "status: ACTIVE")
}

func TestService_EmployeeRosterXLSX(t *testing.T) {
	d := setup(t)
	ctx := context.Background()
	d.employees.EXPECT().GetAll(ctx, "company-1", employee.EmployeeFilter{}).Return(roster, nil)

	f, err := d.service.EmployeeRosterXLSX(ctx, "company-1", employee.EmployeeFilter{})

	require.NoError(t, err)
	assert.Equal(t, report.ContentTypeXLSX, f.ContentType)

	book, err := excelize.OpenReader(bytes.NewReader(f.Data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Employee Number", rows[0][0])
	assert.Equal(t, "Budi Santoso", rows[1][1])
	assert.Equal(t, "Finance", rows[1][3])
	assert.Equal(t, "2027-04-01", rows[1][10])
	assert.Equal(t, "ON_LEAVE", rows[2][7])
}

func TestService_LeaveReportPDF(t *testing.T) {
	t.Run("renders leaves", func(t *testing.T) {
		d := setup(t)
		ctx := context.Background()
		d.leaves.EXPECT().GetAll(ctx, "company-1", leave.LeaveFilter{}).Return([]leave.LeaveResponse{
			{EmployeeName: "Budi Santoso", LeaveType: "ANNUAL", StartDate: "2026-10-20", EndDate: "2026-10-22", TotalDays: 3, Status: "APPROVED"},
		}, nil)

		f, err := d.service.LeaveReportPDF(ctx, "company-1", leave.LeaveFilter{})

		require.NoError(t, err)
		assert.Contains(t, string(f.Data), "2026-10-20")
		assert.Contains(t, string(f.Data), "Total leave records: 1")
	})

	t.Run("passes service errors through", func(t *testing.T) {
		d := setup(t)
		ctx := context.Background()
		d.leaves.EXPECT().GetAll(ctx, "company-1", leave.LeaveFilter{Status: "bogus"}).Return(nil, leaveerrors.ErrInvalidStatusFilter)

		_, err := d.service.LeaveReportPDF(ctx, "company-1", leave.LeaveFilter{Status: "bogus"})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusFilter)
	})
}

func TestService_LeaveCalendarICS(t *testing.T) {
	t.Run("one all-day event per approved leave", func(t *testing.T) {
		d := setup(t)
		ctx := context.Background()
		d.leaves.EXPECT().GetAll(ctx, "company-1", leave.LeaveFilter{Status: leave.StatusApproved, From: "2026-10-01"}).
			Return([]leave.LeaveResponse{
				{ID: "leave-1", EmployeeName: "Budi", LeaveType: "ANNUAL", StartDate: "2026-10-20", EndDate: "2026-10-22", Reason: "Family"},
				{ID: "leave-2", EmployeeName: "Siti", LeaveType: "SICK", StartDate: "2026-11-02", EndDate: "2026-11-02"},
			}, nil)

		f, err := d.service.LeaveCalendarICS(ctx, "company-1", leave.LeaveFilter{Status: "PENDING", From: "2026-10-01"})

		require.NoError(t, err)
		body := string(f.Data)
		assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
		assert.Contains(t, body, "UID:leave-1@go-personnel")
		assert.Contains(t, body, "DTSTART;VALUE=DATE:20261020")
		assert.Contains(t, body, "DTEND;VALUE=DATE:20261023")
		assert.Contains(t, body, "SUMMARY:Budi - annual leave")
		assert.Contains(t, body, "DTEND;VALUE=DATE:20261103")
	})

	t.Run("bad stored date", func(t *testing.T) {
		d := setup(t)
		ctx := context.Background()
		d.leaves.EXPECT().GetAll(ctx, "company-1", gomock.Any()).
			Return([]leave.LeaveResponse{{ID: "leave-1", StartDate: "20-10-2026", EndDate: "2026-10-22"}}, nil)

		_, err := d.service.LeaveCalendarICS(ctx, "company-1", leave.LeaveFilter{})

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeInternalError, appErr.Code)
	})
}

func TestService_UpcomingRetirementsPDF(t *testing.T) {
	t.Run("lists upcoming", func(t *testing.T) {
		d := setup(t)
		ctx := context.Background()
		d.retirements.EXPECT().Upcoming(ctx, "company-1").Return([]retirement.UpcomingRetirementResponse{
			{EmployeeNumber: "EMP-000001", FullName: "Budi Santoso", BirthDate: "1969-04-01", RetirementDate: "2027-04-01", DaysLeft: 164},
		}, nil)

		f, err := d.service.UpcomingRetirementsPDF(ctx, "company-1")

		require.NoError(t, err)
		assert.Equal(t, "upcoming-retirements-2026-10-19.pdf", f.Name)
		assert.Contains(t, string(f.Data), "2027-04-01")
	})

	t.Run("empty list still renders", func(t *testing.T) {
		d := setup(t)
		ctx := context.Background()
		d.retirements.EXPECT().Upcoming(ctx, "company-1").Return([]retirement.UpcomingRetirementResponse{}, nil)

		f, err := d.service.UpcomingRetirementsPDF(ctx, "company-1")

		require.NoError(t, err)
		assert.Contains(t, string(f.Data), "No employees reach retirement age")
	})
}

func TestDecreeRenderer(t *testing.T) {
	birth := time.Date(1968, 5, 1, 0, 0, 0, 0, time.UTC)
	r := report.NewDecreeRenderer("")

	out, err := r.RenderDecree(retirement.Decree{
		DecreeNumber:   "RET-000004",
		Kind:           retirement.KindAutomatic,
		RetirementDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		IssuedAt:       now,
		EmployeeNumber: "EMP-000001",
		FullName:       "Budi Santoso",
		BirthDate:      &birth,
		HireDate:       time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	body := string(out)
	assert.Contains(t, body, "Retirement Decree")
	assert.Contains(t, body, "Number: RET-000004")
	assert.Contains(t, body, "mandatory retirement age")
	assert.Contains(t, body, "Birth date      : 1968-05-01")
	assert.Contains(t, body, "Personnel Administration")
}
