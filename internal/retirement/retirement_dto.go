package retirement

type ProcessRetirementRequest struct {
	DecreeNumber string `json:"decree_number" binding:"omitempty,max=100"`
	Notes        string `json:"notes" binding:"omitempty,max=1000"`
}

type RetirementResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeNumber    string  `json:"employee_number,omitempty"`
	EmployeeName      string  `json:"employee_name,omitempty"`
	RetirementDate    string  `json:"retirement_date"`
	DecreeNumber      string  `json:"decree_number"`
	Kind              string  `json:"kind"`
	Notes             string  `json:"notes,omitempty"`
	DecreeAvailable   bool    `json:"decree_available"`
	DecreeGeneratedAt *string `json:"decree_generated_at,omitempty"`
	ProcessedBy       *string `json:"processed_by,omitempty"`
	EmployeeStatus    string  `json:"employee_status,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

type UpcomingRetirementResponse struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	BirthDate      string `json:"birth_date"`
	RetirementDate string `json:"retirement_date"`
	DaysLeft       int    `json:"days_left"`
}

type BatchRetiredEmployee struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	RetirementDate string `json:"retirement_date"`
	RetirementID   string `json:"retirement_id"`
}

type BatchFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type BatchRetirementResponse struct {
	Affected  int                    `json:"affected"`
	Message   string                 `json:"message"`
	Employees []BatchRetiredEmployee `json:"employees"`
	Failed    []BatchFailure         `json:"failed,omitempty"`
}
