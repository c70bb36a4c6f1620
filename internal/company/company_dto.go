package company

import "time"

// OnboardRequest registers a company together with the employee who administers it.
type OnboardRequest struct {
	Name  string       `json:"name" binding:"required,max=255"`
	Email string       `json:"email" binding:"required,email"`
	Admin AdminRequest `json:"admin" binding:"required"`
}

type AdminRequest struct {
	FullName      string `json:"full_name" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	PositionTitle string `json:"position_title" binding:"max=150"`
	BirthDate     string `json:"birth_date"`
	HireDate      string `json:"hire_date" binding:"required"`
}

type OnboardResponse struct {
	Company        CompanyResponse `json:"company"`
	UserID         string          `json:"user_id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeNumber string          `json:"employee_number"`
	Role           string          `json:"role"`
}

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateCompanyRequest struct {
	Name  string `json:"name" binding:"omitempty,max=255"`
	Email string `json:"email" binding:"omitempty,email"`
}

type UpsertRegistrationRequest struct {
	Type     RegistrationType `json:"type" binding:"required"`
	Number   string           `json:"number" binding:"required,max=100"`
	IssuedAt *time.Time       `json:"issued_at,omitempty"`
}

type RegistrationResponse struct {
	ID        string           `json:"id"`
	Type      RegistrationType `json:"type"`
	Number    string           `json:"number"`
	IssuedAt  *time.Time       `json:"issued_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
