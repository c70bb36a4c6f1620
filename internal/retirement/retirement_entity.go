package retirement

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindManual    = "MANUAL"
	KindAutomatic = "AUTOMATIC"
)

type Retirement struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID  `gorm:"type:uuid;not null"`
	EmployeeID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_retirements_employee"`
	RetirementDate    time.Time  `gorm:"type:date;not null"`
	DecreeNumber      string     `gorm:"type:varchar(100);not null"`
	Kind              string     `gorm:"type:varchar(20);not null"`
	Notes             string     `gorm:"type:text"`
	DecreePDF         []byte     `gorm:"column:decree_pdf;type:bytea"`
	DecreeGeneratedAt *time.Time
	ProcessedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Employee *RetirementEmployee `gorm:"foreignKey:EmployeeID"`
}

// RetirementEmployee is the read-only employee projection shown on retirement records and decrees.
type RetirementEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID
	EmployeeNumber string
	FullName       string
	Rank           string
	Grade          string
	PositionTitle  string
	BirthDate      *time.Time
	HireDate       time.Time
}

func (RetirementEmployee) TableName() string {
	return "employees"
}

// Decree carries everything printed on a retirement decree.
type Decree struct {
	DecreeNumber   string
	Kind           string
	RetirementDate time.Time
	IssuedAt       time.Time
	EmployeeNumber string
	FullName       string
	Rank           string
	Grade          string
	PositionTitle  string
	BirthDate      *time.Time
	HireDate       time.Time
	Notes          string
}

// DecreeRenderer turns a decree into a printable document.
type DecreeRenderer interface {
	RenderDecree(d Decree) ([]byte, error)
}
