package events

import (
	"time"

	"github.com/gearguard/maintenance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventRequestAssigned      EventType = "request_assigned"
	EventRequestCompleted     EventType = "request_completed"
	EventEquipmentScrapped    EventType = "equipment_scrapped"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID int64       `json:"request_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	EquipmentID int64                  `json:"equipment_id"`
	TeamID      *int64                 `json:"team_id,omitempty"`
	Type        domain.RequestType     `json:"type"`
	Priority    domain.RequestPriority `json:"priority"`
	Subject     string                 `json:"subject"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
	Source    string               `json:"source,omitempty"`
}

// RequestAssignedPayload payload.
type RequestAssignedPayload struct {
	TechnicianID *int64 `json:"technician_id,omitempty"`
	TeamID       *int64 `json:"team_id,omitempty"`
}

// RequestCompletedPayload payload.
type RequestCompletedPayload struct {
	DurationHours *float64  `json:"duration_hours,omitempty"`
	CompletedAt   time.Time `json:"completed_at"`
}

// EquipmentScrappedPayload payload.
type EquipmentScrappedPayload struct {
	EquipmentID int64 `json:"equipment_id"`
}
