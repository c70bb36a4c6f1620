package report

import (
	"fmt"

	"go-personnel/internal/retirement"
	"go-personnel/internal/shared/pdf"
)

// DecreeRenderer prints retirement decrees.
type DecreeRenderer struct {
	Issuer string
}

func NewDecreeRenderer(issuer string) *DecreeRenderer {
	if issuer == "" {
		issuer = "Personnel Administration"
	}
	return &DecreeRenderer{Issuer: issuer}
}

func (r *DecreeRenderer) RenderDecree(d retirement.Decree) ([]byte, error) {
	kind := "upon reaching the mandatory retirement age"
	if d.Kind == retirement.KindManual {
		kind = "by decision of the personnel administration"
	}

	lines := []string{
		"Number: " + d.DecreeNumber,
		"",
		"The undersigned hereby decides that the employee below is honourably discharged",
		fmt.Sprintf("and granted retirement %s, effective %s.", kind, d.RetirementDate.Format(dateLayout)),
		"",
		"Employee number : " + d.EmployeeNumber,
		"Full name       : " + d.FullName,
		"Position        : " + orDash(d.PositionTitle),
		"Rank / grade    : " + orDash(d.Rank) + " / " + orDash(d.Grade),
		"Hire date       : " + d.HireDate.Format(dateLayout),
	}
	if d.BirthDate != nil {
		lines = append(lines, "Birth date      : "+d.BirthDate.Format(dateLayout))
	}
	if d.Notes != "" {
		lines = append(lines, "", "Notes: "+d.Notes)
	}
	lines = append(lines,
		"",
		"Issued on "+d.IssuedAt.Format(dateLayout),
		r.Issuer,
	)

	return pdf.Document{Title: "Retirement Decree", Lines: lines}.Render()
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
