package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required,max=255"`
	Email          string `json:"email" binding:"required,email"`
	EmployeeNumber string `json:"employee_number" binding:"omitempty,max=50"`
	Phone          string `json:"phone" binding:"omitempty,max=50"`
	DepartmentID   string `json:"department_id" binding:"omitempty,uuid"`
	Rank           string `json:"rank" binding:"omitempty,max=100"`
	Grade          string `json:"grade" binding:"omitempty,max=20"`
	PositionTitle  string `json:"position_title" binding:"omitempty,max=150"`
	BirthDate      string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	HireDate       string `json:"hire_date" binding:"required,datetime=2006-01-02"`
}

// UpdateEmployeeRequest has no status field: status is derived by the personnel reconciler.
type UpdateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required,max=255"`
	Email          string `json:"email" binding:"required,email"`
	EmployeeNumber string `json:"employee_number" binding:"required,max=50"`
	Phone          string `json:"phone" binding:"omitempty,max=50"`
	DepartmentID   string `json:"department_id" binding:"omitempty,uuid"`
	Rank           string `json:"rank" binding:"omitempty,max=100"`
	Grade          string `json:"grade" binding:"omitempty,max=20"`
	PositionTitle  string `json:"position_title" binding:"omitempty,max=150"`
	BirthDate      string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	HireDate       string `json:"hire_date" binding:"required,datetime=2006-01-02"`
}

type EmployeeFilter struct {
	Status       string
	DepartmentID string
	Q            string
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID             string                      `json:"id"`
	CompanyID      string                      `json:"company_id"`
	EmployeeNumber string                      `json:"employee_number"`
	FullName       string                      `json:"full_name"`
	Email          string                      `json:"email"`
	Phone          string                      `json:"phone"`
	Rank           string                      `json:"rank"`
	Grade          string                      `json:"grade"`
	PositionTitle  string                      `json:"position_title"`
	Status         string                      `json:"status"`
	BirthDate      string                      `json:"birth_date,omitempty"`
	RetirementDate string                      `json:"retirement_date,omitempty"`
	HireDate       string                      `json:"hire_date"`
	DepartmentID   string                      `json:"department_id,omitempty"`
	Department     *EmployeeDepartmentResponse `json:"department,omitempty"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Status         string `json:"status"`
}

type EmployeeStatisticsResponse struct {
	Total               int64 `json:"total"`
	Active              int64 `json:"active"`
	OnLeave             int64 `json:"on_leave"`
	Retired             int64 `json:"retired"`
	UpcomingRetirements int   `json:"upcoming_retirements"`
}
