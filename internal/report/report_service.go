package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-personnel/internal/employee"
	"go-personnel/internal/leave"
	"go-personnel/internal/retirement"
	"go-personnel/internal/shared/apperror"
	"go-personnel/internal/shared/clock"
	"go-personnel/internal/shared/pdf"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeICS  = "text/calendar; charset=utf-8"

	dateLayout = "2006-01-02"
)

// File is a generated document ready to be sent as a download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Service interface {
	EmployeeRosterPDF(ctx context.Context, companyID string, filter employee.EmployeeFilter) (File, error)
	EmployeeRosterXLSX(ctx context.Context, companyID string, filter employee.EmployeeFilter) (File, error)
	LeaveReportPDF(ctx context.Context, companyID string, filter leave.LeaveFilter) (File, error)
	LeaveCalendarICS(ctx context.Context, companyID string, filter leave.LeaveFilter) (File, error)
	UpcomingRetirementsPDF(ctx context.Context, companyID string) (File, error)
}

type service struct {
	employees   employee.Service
	leaves      leave.Service
	retirements retirement.Service
	clock       clock.Clock
	logger      *zap.Logger
}

func NewService(employees employee.Service, leaves leave.Service, retirements retirement.Service, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{employees: employees, leaves: leaves, retirements: retirements, clock: clock.Or(clk), logger: l}
}

var ErrExportFailed = apperror.New(apperror.CodeInternalError, "Failed to generate report", http.StatusInternalServerError)

func exportFailed(err error) error {
	return ErrExportFailed.WithCause(err)
}

func (s *service) stamp() string {
	return s.clock.Now().Format(dateLayout)
}

func (s *service) EmployeeRosterPDF(ctx context.Context, companyID string, filter employee.EmployeeFilter) (File, error) {
	rows, err := s.employees.GetAll(ctx, companyID, filter)
	if err != nil {
		return File{}, err
	}

	lines := []string{
		fmt.Sprintf("%-12s %-30s %-10s %-22s %-10s", "Number", "Name", "Grade", "Department", "Status"),
		strings.Repeat("-", 90),
	}
	for _, e := range rows {
		dept := "-"
		if e.Department != nil {
			dept = e.Department.Name
		}
		lines = append(lines, fmt.Sprintf("%-12s %-30s %-10s %-22s %-10s",
			e.EmployeeNumber, truncate(e.FullName, 30), e.Grade, truncate(dept, 22), e.Status))
	}
	lines = append(lines, "", fmt.Sprintf("Total employees: %d", len(rows)))

	data, err := pdf.Document{
		Title:    "Employee Roster",
		Subtitle: "Generated " + s.stamp() + filterSummary("status", filter.Status),
		Lines:    lines,
	}.Render()
	if err != nil {
		return File{}, exportFailed(err)
	}
	s.logger.Info("employee roster pdf generated", zap.String("company_id", companyID), zap.Int("rows", len(rows)))
	return File{Name: "employees-" + s.stamp() + ".pdf", ContentType: ContentTypePDF, Data: data}, nil
}

func (s *service) EmployeeRosterXLSX(ctx context.Context, companyID string, filter employee.EmployeeFilter) (File, error) {
	rows, err := s.employees.GetAll(ctx, companyID, filter)
	if err != nil {
		return File{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Employees"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return File{}, exportFailed(err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Employee Number", "Full Name", "Email", "Department", "Position", "Rank", "Grade",
		"Status", "Birth Date", "Hire Date", "Retirement Date"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for i, h := range headers {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, c, h)
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheet, "A1", last+"1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 16)
	f.SetColWidth(sheet, "B", "C", 28)
	f.SetColWidth(sheet, "D", "E", 24)
	f.SetColWidth(sheet, "F", last, 14)

	for r, e := range rows {
		dept := ""
		if e.Department != nil {
			dept = e.Department.Name
		}
		values := []any{e.EmployeeNumber, e.FullName, e.Email, dept, e.PositionTitle, e.Rank, e.Grade,
			e.Status, e.BirthDate, e.HireDate, e.RetirementDate}
		c, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, c, &values); err != nil {
			return File{}, exportFailed(err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write roster xlsx failed", zap.Error(err))
		return File{}, exportFailed(err)
	}
	return File{Name: "employees-" + s.stamp() + ".xlsx", ContentType: ContentTypeXLSX, Data: buf.Bytes()}, nil
}

func (s *service) LeaveReportPDF(ctx context.Context, companyID string, filter leave.LeaveFilter) (File, error) {
	rows, err := s.leaves.GetAll(ctx, companyID, filter)
	if err != nil {
		return File{}, err
	}

	lines := []string{
		fmt.Sprintf("%-26s %-16s %-10s %-10s %4s  %-9s", "Employee", "Type", "Start", "End", "Days", "Status"),
		strings.Repeat("-", 85),
	}
	for _, l := range rows {
		lines = append(lines, fmt.Sprintf("%-26s %-16s %-10s %-10s %4d  %-9s",
			truncate(l.EmployeeName, 26), l.LeaveType, l.StartDate, l.EndDate, l.TotalDays, l.Status))
	}
	lines = append(lines, "", fmt.Sprintf("Total leave records: %d", len(rows)))

	data, err := pdf.Document{
		Title:    "Leave Report",
		Subtitle: "Generated " + s.stamp() + filterSummary("status", filter.Status),
		Lines:    lines,
	}.Render()
	if err != nil {
		return File{}, exportFailed(err)
	}
	return File{Name: "leaves-" + s.stamp() + ".pdf", ContentType: ContentTypePDF, Data: data}, nil
}

// LeaveCalendarICS exports approved leaves as all-day events.
func (s *service) LeaveCalendarICS(ctx context.Context, companyID string, filter leave.LeaveFilter) (File, error) {
	filter.Status = leave.StatusApproved
	rows, err := s.leaves.GetAll(ctx, companyID, filter)
	if err != nil {
		return File{}, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//go-personnel//leave calendar//EN")
	cal.SetXWRCalName("Approved leave")

	now := s.clock.Now()
	for _, l := range rows {
		start, err := time.Parse(dateLayout, l.StartDate)
		if err != nil {
			return File{}, exportFailed(err)
		}
		end, err := time.Parse(dateLayout, l.EndDate)
		if err != nil {
			return File{}, exportFailed(err)
		}

		ev := cal.AddEvent(l.ID + "@go-personnel")
		ev.SetDtStampTime(now)
		ev.SetSummary(fmt.Sprintf("%s - %s leave", l.EmployeeName, strings.ToLower(l.LeaveType)))
		if l.Reason != "" {
			ev.SetDescription(l.Reason)
		}
		ev.SetAllDayStartAt(start)
		// DTEND of an all-day event is exclusive.
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		ev.SetStatus(ics.ObjectStatusConfirmed)
	}

	return File{Name: "leaves-" + s.stamp() + ".ics", ContentType: ContentTypeICS, Data: []byte(cal.Serialize())}, nil
}

func (s *service) UpcomingRetirementsPDF(ctx context.Context, companyID string) (File, error) {
	rows, err := s.retirements.Upcoming(ctx, companyID)
	if err != nil {
		return File{}, err
	}

	lines := []string{
		fmt.Sprintf("%-12s %-32s %-11s %-15s %9s", "Number", "Name", "Birth date", "Retirement date", "Days left"),
		strings.Repeat("-", 84),
	}
	for _, u := range rows {
		lines = append(lines, fmt.Sprintf("%-12s %-32s %-11s %-15s %9d",
			u.EmployeeNumber, truncate(u.FullName, 32), u.BirthDate, u.RetirementDate, u.DaysLeft))
	}
	if len(rows) == 0 {
		lines = append(lines, "No employees reach retirement age within the next year.")
	}

	data, err := pdf.Document{
		Title:    "Upcoming Retirements",
		Subtitle: "Employees retiring within one year of " + s.stamp(),
		Lines:    lines,
	}.Render()
	if err != nil {
		return File{}, exportFailed(err)
	}
	return File{Name: "upcoming-retirements-" + s.stamp() + ".pdf", ContentType: ContentTypePDF, Data: data}, nil
}

func truncate(v string, n int) string {
	r := []rune(v)
	if len(r) <= n {
		return v
	}
	return string(r[:n-1]) + "~"
}

func filterSummary(name, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(" (%s: %s)", name, strings.ToUpper(value))
}
