package mutation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeTransfer    = "TRANSFER"
	TypePromotion   = "PROMOTION"
	TypeGradeChange = "GRADE_CHANGE"
)

type Mutation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_mutations_employee"`
	MutationType  string    `gorm:"type:varchar(20);not null"`
	EffectiveDate time.Time `gorm:"type:date;not null;index:idx_mutations_employee"`
	DecreeNumber  string    `gorm:"type:varchar(100);not null"`

	PreviousDepartmentID *uuid.UUID `gorm:"type:uuid"`
	NewDepartmentID      *uuid.UUID `gorm:"type:uuid"`
	PreviousRank         string     `gorm:"type:varchar(100)"`
	NewRank              string     `gorm:"type:varchar(100)"`
	PreviousGrade        string     `gorm:"type:varchar(20)"`
	NewGrade             string     `gorm:"type:varchar(20)"`
	PreviousPosition     string     `gorm:"type:varchar(150)"`
	NewPosition          string     `gorm:"type:varchar(150)"`

	Applied   bool   `gorm:"not null;default:false"`
	Notes     string `gorm:"type:text"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
