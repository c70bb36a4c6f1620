package mutation

type CreateMutationRequest struct {
	MutationType     string `json:"mutation_type" binding:"required,oneof=TRANSFER PROMOTION GRADE_CHANGE"`
	EffectiveDate    string `json:"effective_date" binding:"required,datetime=2006-01-02"`
	DecreeNumber     string `json:"decree_number" binding:"required,max=100"`
	NewDepartmentID  string `json:"new_department_id" binding:"omitempty,uuid"`
	NewRank          string `json:"new_rank" binding:"omitempty,max=100"`
	NewGrade         string `json:"new_grade" binding:"omitempty,max=20"`
	NewPositionTitle string `json:"new_position_title" binding:"omitempty,max=150"`
	Notes            string `json:"notes" binding:"omitempty,max=1000"`
}

type MutationResponse struct {
	ID                    string `json:"id"`
	EmployeeID            string `json:"employee_id"`
	MutationType          string `json:"mutation_type"`
	EffectiveDate         string `json:"effective_date"`
	DecreeNumber          string `json:"decree_number"`
	PreviousDepartmentID  string `json:"previous_department_id,omitempty"`
	NewDepartmentID       string `json:"new_department_id,omitempty"`
	PreviousRank          string `json:"previous_rank,omitempty"`
	NewRank               string `json:"new_rank,omitempty"`
	PreviousGrade         string `json:"previous_grade,omitempty"`
	NewGrade              string `json:"new_grade,omitempty"`
	PreviousPositionTitle string `json:"previous_position_title,omitempty"`
	NewPositionTitle      string `json:"new_position_title,omitempty"`
	Applied               bool   `json:"applied"`
	Notes                 string `json:"notes,omitempty"`
	CreatedBy             string `json:"created_by"`
	CreatedAt             string `json:"created_at"`
}
