package events

import "time"

const (
	EmployeeLifecycleTopic    = "hr.employee.lifecycle.v1"
	EmployeeCreatedType       = "employee_created"
	EmployeeStatusChangedType = "employee_status_changed"
)

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeNumber string    `json:"employee_number"`
	CompanyID      string    `json:"company_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EmployeeStatusChangedEvent is emitted whenever the reconciler persists a new status.
type EmployeeStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}
