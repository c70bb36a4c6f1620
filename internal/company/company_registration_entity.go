package company

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationType names a government business identifier.
type RegistrationType string

const (
	RegistrationTypeNPWP RegistrationType = "NPWP"
	RegistrationTypeNIB  RegistrationType = "NIB"
	RegistrationTypeSIUP RegistrationType = "SIUP"
)

func (t RegistrationType) Valid() bool {
	switch t {
	case RegistrationTypeNPWP, RegistrationTypeNIB, RegistrationTypeSIUP:
		return true
	}
	return false
}

// CompanyRegistration holds at most one number per type and company.
type CompanyRegistration struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Type      RegistrationType `gorm:"type:varchar(10);not null"`
	Number    string           `gorm:"size:100;not null"`
	IssuedAt  *time.Time       `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanyRegistration) TableName() string { return "company_registrations" }
