package employee

import (
	"time"

	"go-personnel/internal/department"
	"go-personnel/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID             `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID             `gorm:"type:uuid;index"`
	DepartmentID   *uuid.UUID            `gorm:"type:uuid"`
	EmployeeNumber string                `gorm:"size:50;not null"`
	FullName       string                `gorm:"size:255;not null"`
	Email          string                `gorm:"size:255;not null"`
	Phone          string                `gorm:"size:50"`
	Rank           string                `gorm:"size:100"`
	Grade          string                `gorm:"size:20"`
	PositionTitle  string                `gorm:"size:150"`
	Status         domain.EmployeeStatus `gorm:"type:varchar(20);not null;default:ACTIVE"`
	BirthDate      *time.Time            `gorm:"type:date"`
	HireDate       time.Time             `gorm:"type:date;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	Department *department.Department `gorm:"foreignKey:DepartmentID"`
}

// RetirementCandidate projects the employee for the retirement rules.
func (e Employee) RetirementCandidate() domain.RetirementCandidate {
	return domain.RetirementCandidate{
		EmployeeID:     e.ID.String(),
		EmployeeNumber: e.EmployeeNumber,
		FullName:       e.FullName,
		Status:         e.Status,
		BirthDate:      e.BirthDate,
	}
}
