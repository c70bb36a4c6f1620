package events

import "time"

const (
	RetirementDecreeRequestedTopic = "hr.retirement.decree.requested.v1"
	RetirementDecreeRequestedType  = "retirement_decree_requested"
)

type RetirementDecreeRequestedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	RetirementID string    `json:"retirement_id"`
	EmployeeID   string    `json:"employee_id"`
	CompanyID    string    `json:"company_id"`
	Kind         string    `json:"kind"`
	RequestedBy  string    `json:"requested_by,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
