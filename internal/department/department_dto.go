package department

// CreateDepartmentRequest carries the editable department fields. Code is stored upper-cased.
type CreateDepartmentRequest struct {
	Code        string `json:"code" binding:"required,max=30"`
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateDepartmentRequest replaces every editable field.
type UpdateDepartmentRequest CreateDepartmentRequest

type DepartmentResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
