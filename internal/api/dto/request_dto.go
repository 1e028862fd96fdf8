package dto

import (
	"time"

	"github.com/gearguard/maintenance-service/internal/domain"
)

// CreateRequestRequest payload. Preventive work must carry a schedule.
type CreateRequestRequest struct {
	Subject       string                 `json:"subject" validate:"required"`
	Description   string                 `json:"description"`
	Type          domain.RequestType     `json:"type" validate:"required,oneof=corrective preventive"`
	EquipmentID   int64                  `json:"equipment_id" validate:"required,gt=0"`
	Priority      domain.RequestPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	ScheduledDate *time.Time             `json:"scheduled_date" validate:"required_if=Type preventive"`
	TeamID        *int64                 `json:"team_id"`
	TechnicianID  *int64                 `json:"technician_id"`
}

// UpdateStatusRequest payload for detail-view transitions.
type UpdateStatusRequest struct {
	Status domain.RequestStatus `json:"status" validate:"required,oneof=new in_progress repaired scrap"`
}

// CompleteRequestRequest payload.
type CompleteRequestRequest struct {
	DurationHours float64 `json:"duration_hours" validate:"required,gt=0"`
}

// AssignTechnicianRequest payload. A null technician clears the assignment.
type AssignTechnicianRequest struct {
	TechnicianID *int64 `json:"technician_id"`
}

// MoveCardRequest payload for kanban drops. TargetColumn is the drop-zone
// identifier; TargetCardID is the card dropped onto, when any.
type MoveCardRequest struct {
	TargetColumn string `json:"target_column"`
	TargetCardID *int64 `json:"target_card_id"`
}

// RequestResponse is the wire shape of a maintenance request.
type RequestResponse struct {
	ID            int64                  `json:"id"`
	Subject       string                 `json:"subject"`
	Description   string                 `json:"description"`
	Type          domain.RequestType     `json:"type"`
	EquipmentID   int64                  `json:"equipment_id"`
	TeamID        *int64                 `json:"team_id"`
	TechnicianID  *int64                 `json:"technician_id"`
	RequesterID   int64                  `json:"requester_id"`
	Priority      domain.RequestPriority `json:"priority"`
	Status        domain.RequestStatus   `json:"status"`
	ScheduledDate *time.Time             `json:"scheduled_date"`
	CompletedDate *time.Time             `json:"completed_date"`
	DurationHours *float64               `json:"duration_hours"`
	Overdue       bool                   `json:"overdue"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ActivityResponse is one audit trail entry.
type ActivityResponse struct {
	ID         int64                      `json:"id"`
	ActorID    *int64                     `json:"actor_id"`
	ChangeType domain.RequestActivityType `json:"change_type"`
	OldValue   map[string]any             `json:"old_value"`
	NewValue   map[string]any             `json:"new_value"`
	CreatedAt  time.Time                  `json:"created_at"`
}
