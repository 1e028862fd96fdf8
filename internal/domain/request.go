package domain

import "time"

// RequestStatus enumerates lifecycle stages of a maintenance request. The
// four values double as the kanban column identifiers on the wire.
type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "new"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusRepaired   RequestStatus = "repaired"
	RequestStatusScrap      RequestStatus = "scrap"
)

// RequestType distinguishes breakdown work from scheduled work.
type RequestType string

const (
	RequestTypeCorrective RequestType = "corrective"
	RequestTypePreventive RequestType = "preventive"
)

// RequestPriority enumerates urgency.
type RequestPriority string

const (
	RequestPriorityLow    RequestPriority = "low"
	RequestPriorityMedium RequestPriority = "medium"
	RequestPriorityHigh   RequestPriority = "high"
)

// MaintenanceRequest is the aggregate for maintenance work orders. Requests
// are created in status new and mutated only through validated transitions;
// they are never physically deleted.
type MaintenanceRequest struct {
	ID            int64
	Subject       string
	Description   string
	Type          RequestType
	EquipmentID   int64
	TeamID        *int64
	TechnicianID  *int64
	RequesterID   int64
	Priority      RequestPriority
	Status        RequestStatus
	ScheduledDate *time.Time
	CompletedDate *time.Time
	DurationHours *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOverdue reports whether the scheduled date has passed while the request
// is still open.
func (r *MaintenanceRequest) IsOverdue(now time.Time) bool {
	if r.ScheduledDate == nil {
		return false
	}
	if r.Status == RequestStatusRepaired || r.Status == RequestStatusScrap {
		return false
	}
	return r.ScheduledDate.Before(now)
}

// IsClosed reports whether the request reached a terminal stage on the board.
func (r *MaintenanceRequest) IsClosed() bool {
	return r.Status == RequestStatusRepaired || r.Status == RequestStatusScrap
}

// RequestActivityType captures what changed in an activity entry.
type RequestActivityType string

const (
	ActivityStatusChange     RequestActivityType = "STATUS_CHANGE"
	ActivityTechnicianChange RequestActivityType = "TECHNICIAN_CHANGE"
	ActivityCompleted        RequestActivityType = "COMPLETED"
)

// RequestActivity is an immutable audit trail entry for a request.
type RequestActivity struct {
	ID         int64
	RequestID  int64
	ActorID    *int64
	ChangeType RequestActivityType
	OldValue   map[string]any
	NewValue   map[string]any
	CreatedAt  time.Time
}
