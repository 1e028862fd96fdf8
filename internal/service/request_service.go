package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/events"
	"github.com/gearguard/maintenance-service/internal/repository"
	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

// Status change sources recorded in activity entries and events.
const (
	sourceDetail = "detail"
	sourceBoard  = "board"
)

// RequestService coordinates the maintenance request lifecycle.
type RequestService struct {
	requests   repository.RequestRepository
	equipment  repository.EquipmentRepository
	users      repository.UserRepository
	teams      repository.TeamRepository
	activity   repository.ActivityRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo   repository.RequestRepository
	EquipmentRepo repository.EquipmentRepository
	UserRepo      repository.UserRepository
	TeamRepo      repository.TeamRepository
	ActivityRepo  repository.ActivityRepository
	Dispatcher    events.Dispatcher
}

// RequestCreateInput describes request creation payload. Team and technician
// default from the equipment record when omitted.
type RequestCreateInput struct {
	Subject       string
	Description   string
	Type          domain.RequestType
	EquipmentID   int64
	Priority      domain.RequestPriority
	ScheduledDate *time.Time
	TeamID        *int64
	TechnicianID  *int64
}

// RequestListFilter describes listing filters. OverdueOnly replaces the
// status, type and priority facets; search and team still apply.
type RequestListFilter struct {
	Statuses    []domain.RequestStatus
	Types       []domain.RequestType
	Priorities  []domain.RequestPriority
	SearchTerm  *string
	TeamID      *int64
	EquipmentID *int64
	OverdueOnly bool
	Limit       int
	Offset      int
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		equipment:  deps.EquipmentRepo,
		users:      deps.UserRepo,
		teams:      deps.TeamRepo,
		activity:   deps.ActivityRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and stores a new request in status new.
func (s *RequestService) Create(ctx context.Context, actor *domain.User, input RequestCreateInput) (*domain.MaintenanceRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, apperrors.NewValidationError("subject is required", map[string]any{"field": "subject"})
	}
	if input.Type != domain.RequestTypeCorrective && input.Type != domain.RequestTypePreventive {
		return nil, apperrors.NewValidationError("unknown request type", map[string]any{"field": "type"})
	}
	if input.Type == domain.RequestTypePreventive && input.ScheduledDate == nil {
		return nil, apperrors.NewValidationError("preventive requests require a scheduled date", map[string]any{"field": "scheduled_date"})
	}

	equipment, err := s.equipment.GetByID(ctx, input.EquipmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("equipment", map[string]any{"equipment_id": input.EquipmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if equipment.IsScrapped() {
		return nil, apperrors.NewConflict("equipment is scrapped", map[string]any{"equipment_id": equipment.ID})
	}

	request := &domain.MaintenanceRequest{
		Subject:       subject,
		Description:   strings.TrimSpace(input.Description),
		Type:          input.Type,
		EquipmentID:   equipment.ID,
		TeamID:        input.TeamID,
		TechnicianID:  input.TechnicianID,
		RequesterID:   actor.ID,
		Priority:      input.Priority,
		Status:        domain.RequestStatusNew,
		ScheduledDate: input.ScheduledDate,
	}
	if request.Priority == "" {
		request.Priority = domain.RequestPriorityMedium
	}
	if request.TeamID == nil {
		request.TeamID = equipment.TeamID
	}
	if request.TechnicianID == nil {
		request.TechnicianID = equipment.DefaultTechnicianID
	}
	if request.TechnicianID != nil {
		if err := s.requireTechnician(ctx, *request.TechnicianID); err != nil {
			return nil, err
		}
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, actor, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: request.ID,
		Payload: events.RequestCreatedPayload{
			EquipmentID: request.EquipmentID,
			TeamID:      request.TeamID,
			Type:        request.Type,
			Priority:    request.Priority,
			Subject:     request.Subject,
		},
	})
	return request, nil
}

// ListVisible returns requests the actor may see, newest first.
func (s *RequestService) ListVisible(ctx context.Context, actor *domain.User, filter RequestListFilter) ([]domain.MaintenanceRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	repoFilter := repository.RequestFilter{
		Statuses:    filter.Statuses,
		Types:       filter.Types,
		Priorities:  filter.Priorities,
		SearchTerm:  filter.SearchTerm,
		TeamID:      filter.TeamID,
		EquipmentID: filter.EquipmentID,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	if filter.OverdueOnly {
		// Overdue is an exclusive lens: it swaps out the status, type and
		// priority facets and filters on the deadline instead.
		repoFilter.Statuses = nil
		repoFilter.Types = nil
		repoFilter.Priorities = nil
		repoFilter.ScheduledOnly = true
	}
	s.applyRoleScope(&repoFilter, actor)

	requests, err := s.requests.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !filter.OverdueOnly {
		return requests, nil
	}
	now := time.Now()
	overdue := make([]domain.MaintenanceRequest, 0, len(requests))
	for _, request := range requests {
		if request.IsOverdue(now) {
			overdue = append(overdue, request)
		}
	}
	return overdue, nil
}

// GetVisible fetches a request the actor is allowed to see.
func (s *RequestService) GetVisible(ctx context.Context, actor *domain.User, id int64) (*domain.MaintenanceRequest, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, request) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return request, nil
}

// UpdateStatus applies a button-driven status change from the detail view.
// Moving to repaired goes through Complete, which collects the duration.
func (s *RequestService) UpdateStatus(ctx context.Context, actor *domain.User, id int64, newStatus domain.RequestStatus) (*domain.MaintenanceRequest, error) {
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"field": "status"})
	}
	if newStatus == domain.RequestStatusRepaired {
		return nil, apperrors.NewValidationError("completing a request requires duration_hours", map[string]any{"field": "duration_hours"})
	}
	request, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !domain.DetailTransitions.Allows(request.Status, newStatus) {
		return nil, apperrors.NewInvalidTransition(string(request.Status), string(newStatus))
	}
	return s.applyStatusChange(ctx, actor, request, newStatus, sourceDetail)
}

// Complete moves a request to repaired, recording how long the work took.
func (s *RequestService) Complete(ctx context.Context, actor *domain.User, id int64, durationHours float64) (*domain.MaintenanceRequest, error) {
	if durationHours <= 0 {
		return nil, apperrors.NewValidationError("duration_hours must be greater than zero", map[string]any{"field": "duration_hours"})
	}
	request, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !domain.DetailTransitions.Allows(request.Status, domain.RequestStatusRepaired) {
		return nil, apperrors.NewInvalidTransition(string(request.Status), string(domain.RequestStatusRepaired))
	}

	oldStatus := request.Status
	now := time.Now()
	request.Status = domain.RequestStatusRepaired
	request.CompletedDate = &now
	request.DurationHours = &durationHours
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.syncEquipmentStatus(ctx, actor, request)
	s.recordActivity(ctx, actor, request.ID, domain.ActivityCompleted,
		map[string]any{"status": oldStatus},
		map[string]any{"status": request.Status, "duration_hours": durationHours})
	s.publishEvent(ctx, actor, events.Event{
		Type:      events.EventRequestCompleted,
		RequestID: request.ID,
		Payload: events.RequestCompletedPayload{
			DurationHours: request.DurationHours,
			CompletedAt:   now,
		},
	})
	return request, nil
}

// MoveStage applies a drag-and-drop move on the kanban board. Dropping into
// repaired stamps the completion date but records no duration; that matches
// the detail-flow shortcut users expect from the board.
func (s *RequestService) MoveStage(ctx context.Context, actor *domain.User, id int64, target domain.RequestStatus) (*domain.MaintenanceRequest, error) {
	if !domain.ValidStatus(target) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"field": "status"})
	}
	request, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if request.Status == target {
		return request, nil
	}
	if !domain.BoardTransitions.Allows(request.Status, target) {
		return nil, apperrors.NewInvalidTransition(string(request.Status), string(target))
	}
	return s.applyStatusChange(ctx, actor, request, target, sourceBoard)
}

// AssignTechnician sets or clears the technician on an open request.
func (s *RequestService) AssignTechnician(ctx context.Context, actor *domain.User, id int64, technicianID *int64) (*domain.MaintenanceRequest, error) {
	request, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if request.IsClosed() {
		return nil, apperrors.NewConflict("request already closed", map[string]any{"request_id": request.ID})
	}
	if technicianID != nil {
		if err := s.requireTechnician(ctx, *technicianID); err != nil {
			return nil, err
		}
	}

	oldTechnician := request.TechnicianID
	request.TechnicianID = technicianID
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.recordActivity(ctx, actor, request.ID, domain.ActivityTechnicianChange,
		map[string]any{"technician_id": oldTechnician},
		map[string]any{"technician_id": request.TechnicianID})
	s.publishEvent(ctx, actor, events.Event{
		Type:      events.EventRequestAssigned,
		RequestID: request.ID,
		Payload: events.RequestAssignedPayload{
			TechnicianID: request.TechnicianID,
			TeamID:       request.TeamID,
		},
	})
	return request, nil
}

// PickTask lets a technician claim an unassigned request.
func (s *RequestService) PickTask(ctx context.Context, actor *domain.User, id int64) (*domain.MaintenanceRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	request, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if request.IsClosed() {
		return nil, apperrors.NewConflict("request already closed", map[string]any{"request_id": request.ID})
	}
	if request.TechnicianID != nil {
		return nil, apperrors.NewConflict("request already assigned", map[string]any{"technician_id": *request.TechnicianID})
	}

	actorID := actor.ID
	request.TechnicianID = &actorID
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.recordActivity(ctx, actor, request.ID, domain.ActivityTechnicianChange,
		map[string]any{"technician_id": nil},
		map[string]any{"technician_id": actorID})
	s.publishEvent(ctx, actor, events.Event{
		Type:      events.EventRequestAssigned,
		RequestID: request.ID,
		Payload: events.RequestAssignedPayload{
			TechnicianID: request.TechnicianID,
			TeamID:       request.TeamID,
		},
	})
	return request, nil
}

// Delete fails loudly: requests are an audit trail and are never removed.
// Closing work goes through the scrap stage instead.
func (s *RequestService) Delete(_ context.Context, _ *domain.User, _ int64) error {
	return apperrors.NewNotImplemented("request deletion")
}

// ListByTechnician returns requests assigned to one technician.
func (s *RequestService) ListByTechnician(ctx context.Context, actor *domain.User, technicianID int64) ([]domain.MaintenanceRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	repoFilter := repository.RequestFilter{TechnicianID: &technicianID}
	s.applyRoleScope(&repoFilter, actor)
	requests, err := s.requests.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// ListCalendar returns scheduled requests falling inside the window.
func (s *RequestService) ListCalendar(ctx context.Context, actor *domain.User, from, to time.Time) ([]domain.MaintenanceRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	repoFilter := repository.RequestFilter{ScheduledOnly: true}
	s.applyRoleScope(&repoFilter, actor)
	requests, err := s.requests.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	inWindow := make([]domain.MaintenanceRequest, 0, len(requests))
	for _, request := range requests {
		if request.ScheduledDate == nil {
			continue
		}
		when := *request.ScheduledDate
		if when.Before(from) || when.After(to) {
			continue
		}
		inWindow = append(inWindow, request)
	}
	return inWindow, nil
}

// ListActivity returns the audit trail for a request the actor may see.
func (s *RequestService) ListActivity(ctx context.Context, actor *domain.User, requestID int64, limit, offset int) ([]domain.RequestActivity, error) {
	if _, err := s.GetVisible(ctx, actor, requestID); err != nil {
		return nil, err
	}
	entries, err := s.activity.ListByRequest(ctx, requestID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *RequestService) getRequest(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// applyRoleScope narrows the filter to the rows the actor may see.
// Admins and managers are unscoped.
func (s *RequestService) applyRoleScope(filter *repository.RequestFilter, actor *domain.User) {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleManager:
	case domain.RoleTechnician:
		if actor.TeamID != nil {
			filter.TeamID = actor.TeamID
		} else {
			actorID := actor.ID
			filter.TechnicianID = &actorID
		}
	default:
		actorID := actor.ID
		filter.RequesterID = &actorID
	}
}

func (s *RequestService) canView(actor *domain.User, request *domain.MaintenanceRequest) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleManager:
		return true
	case domain.RoleTechnician:
		if actor.TeamID != nil && request.TeamID != nil && *actor.TeamID == *request.TeamID {
			return true
		}
		if request.TechnicianID != nil && *request.TechnicianID == actor.ID {
			return true
		}
		return request.RequesterID == actor.ID
	default:
		return request.RequesterID == actor.ID
	}
}

func (s *RequestService) applyStatusChange(ctx context.Context, actor *domain.User, request *domain.MaintenanceRequest, newStatus domain.RequestStatus, source string) (*domain.MaintenanceRequest, error) {
	oldStatus := request.Status
	request.Status = newStatus
	if newStatus == domain.RequestStatusRepaired && request.CompletedDate == nil {
		now := time.Now()
		request.CompletedDate = &now
	}
	if err := s.requests.Update(ctx, request); err != nil {
		request.Status = oldStatus
		return nil, apperrors.MapError(err)
	}
	s.syncEquipmentStatus(ctx, actor, request)
	s.recordActivity(ctx, actor, request.ID, domain.ActivityStatusChange,
		map[string]any{"status": oldStatus},
		map[string]any{"status": newStatus, "source": source})
	s.publishEvent(ctx, actor, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: request.ID,
		Payload: events.RequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Source:    source,
		},
	})
	return request, nil
}

// syncEquipmentStatus mirrors the request stage onto the asset: work in
// progress parks it under maintenance, repaired returns it to service, and
// scrap retires it for good. Scrapped assets are never resurrected.
func (s *RequestService) syncEquipmentStatus(ctx context.Context, actor *domain.User, request *domain.MaintenanceRequest) {
	equipment, err := s.equipment.GetByID(ctx, request.EquipmentID)
	if err != nil || equipment.IsScrapped() {
		return
	}

	var target domain.EquipmentStatus
	switch request.Status {
	case domain.RequestStatusInProgress:
		target = domain.EquipmentStatusUnderMaintenance
	case domain.RequestStatusRepaired:
		target = domain.EquipmentStatusActive
	case domain.RequestStatusScrap:
		target = domain.EquipmentStatusScrapped
	default:
		return
	}
	if equipment.Status == target {
		return
	}
	if err := s.equipment.SetStatus(ctx, equipment.ID, target); err != nil {
		return
	}
	if target == domain.EquipmentStatusScrapped {
		s.publishEvent(ctx, actor, events.Event{
			Type:      events.EventEquipmentScrapped,
			RequestID: request.ID,
			Payload:   events.EquipmentScrappedPayload{EquipmentID: equipment.ID},
		})
	}
}

func (s *RequestService) requireTechnician(ctx context.Context, userID int64) error {
	technician, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("technician", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}
	if technician.Role != domain.RoleTechnician {
		return apperrors.NewValidationError("assignee must be a technician", map[string]any{"field": "technician_id"})
	}
	return nil
}

func (s *RequestService) recordActivity(ctx context.Context, actor *domain.User, requestID int64, changeType domain.RequestActivityType, oldValue, newValue map[string]any) {
	if s.activity == nil {
		return
	}
	entry := &domain.RequestActivity{
		RequestID:  requestID,
		ChangeType: changeType,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
	if actor != nil {
		actorID := actor.ID
		entry.ActorID = &actorID
	}
	_ = s.activity.Create(ctx, entry)
}

func (s *RequestService) publishEvent(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.ID, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
