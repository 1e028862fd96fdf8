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

// EquipmentService manages the asset registry.
type EquipmentService struct {
	equipment  repository.EquipmentRepository
	teams      repository.TeamRepository
	users      repository.UserRepository
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
}

// EquipmentDependencies bundles repositories for the equipment service.
type EquipmentDependencies struct {
	EquipmentRepo repository.EquipmentRepository
	TeamRepo      repository.TeamRepository
	UserRepo      repository.UserRepository
	RequestRepo   repository.RequestRepository
	Dispatcher    events.Dispatcher
}

// EquipmentInput describes create/update payload.
type EquipmentInput struct {
	Name                string
	SerialNumber        string
	Description         string
	CategoryID          int64
	DepartmentID        int64
	LocationID          int64
	TeamID              *int64
	DefaultTechnicianID *int64
}

// EquipmentListFilter describes listing parameters.
type EquipmentListFilter struct {
	SearchTerm   *string
	Status       *domain.EquipmentStatus
	DepartmentID *int64
	CategoryID   *int64
	TeamID       *int64
	Limit        int
	Offset       int
}

// NewEquipmentService constructs the service.
func NewEquipmentService(deps EquipmentDependencies) *EquipmentService {
	return &EquipmentService{
		equipment:  deps.EquipmentRepo,
		teams:      deps.TeamRepo,
		users:      deps.UserRepo,
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create registers a new asset in active status.
func (s *EquipmentService) Create(ctx context.Context, input EquipmentInput) (*domain.Equipment, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}
	equipment := &domain.Equipment{
		Name:                strings.TrimSpace(input.Name),
		SerialNumber:        strings.TrimSpace(input.SerialNumber),
		Description:         strings.TrimSpace(input.Description),
		CategoryID:          input.CategoryID,
		DepartmentID:        input.DepartmentID,
		LocationID:          input.LocationID,
		TeamID:              input.TeamID,
		DefaultTechnicianID: input.DefaultTechnicianID,
		Status:              domain.EquipmentStatusActive,
	}
	if err := s.equipment.Create(ctx, equipment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return equipment, nil
}

// Update edits an existing asset. Scrapped assets are immutable.
func (s *EquipmentService) Update(ctx context.Context, id int64, input EquipmentInput) (*domain.Equipment, error) {
	equipment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipment.IsScrapped() {
		return nil, apperrors.NewConflict("equipment is scrapped", map[string]any{"equipment_id": equipment.ID})
	}
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	equipment.Name = strings.TrimSpace(input.Name)
	equipment.SerialNumber = strings.TrimSpace(input.SerialNumber)
	equipment.Description = strings.TrimSpace(input.Description)
	equipment.CategoryID = input.CategoryID
	equipment.DepartmentID = input.DepartmentID
	equipment.LocationID = input.LocationID
	equipment.TeamID = input.TeamID
	equipment.DefaultTechnicianID = input.DefaultTechnicianID
	if err := s.equipment.Update(ctx, equipment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return equipment, nil
}

// Get fetches a single asset.
func (s *EquipmentService) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	equipment, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("equipment", map[string]any{"equipment_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return equipment, nil
}

// List returns assets matching the filter.
func (s *EquipmentService) List(ctx context.Context, filter EquipmentListFilter) ([]domain.Equipment, error) {
	result, err := s.equipment.ListWithFilter(ctx, repository.EquipmentFilter{
		SearchTerm:   filter.SearchTerm,
		Status:       filter.Status,
		DepartmentID: filter.DepartmentID,
		CategoryID:   filter.CategoryID,
		TeamID:       filter.TeamID,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Scrap retires an asset directly from the registry.
func (s *EquipmentService) Scrap(ctx context.Context, actor *domain.User, id int64) (*domain.Equipment, error) {
	equipment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipment.IsScrapped() {
		return nil, apperrors.NewConflict("equipment already scrapped", map[string]any{"equipment_id": equipment.ID})
	}
	if err := s.equipment.SetStatus(ctx, equipment.ID, domain.EquipmentStatusScrapped); err != nil {
		return nil, apperrors.MapError(err)
	}
	equipment.Status = domain.EquipmentStatusScrapped
	if s.dispatcher != nil {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventEquipmentScrapped,
			Timestamp: time.Now(),
			Payload:   events.EquipmentScrappedPayload{EquipmentID: equipment.ID},
		}
		if actor != nil {
			event.Actor = events.Actor{UserID: actor.ID, Role: actor.Role}
		}
		_ = s.dispatcher.Publish(ctx, event)
	}
	return equipment, nil
}

// OpenRequestCount reports how many non-terminal requests reference an asset.
// The registry badge on the equipment card uses this.
func (s *EquipmentService) OpenRequestCount(ctx context.Context, id int64) (int, error) {
	equipmentID := id
	requests, err := s.requests.ListWithFilter(ctx, repository.RequestFilter{
		EquipmentID: &equipmentID,
		Statuses:    []domain.RequestStatus{domain.RequestStatusNew, domain.RequestStatusInProgress},
	})
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return len(requests), nil
}

func (s *EquipmentService) validateInput(ctx context.Context, input EquipmentInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name is required", map[string]any{"field": "name"})
	}
	if domain.CatalogName(domain.EquipmentCategories(), input.CategoryID) == "" {
		return apperrors.NewValidationError("unknown category", map[string]any{"field": "category_id"})
	}
	if domain.CatalogName(domain.Departments(), input.DepartmentID) == "" {
		return apperrors.NewValidationError("unknown department", map[string]any{"field": "department_id"})
	}
	if domain.CatalogName(domain.Locations(), input.LocationID) == "" {
		return apperrors.NewValidationError("unknown location", map[string]any{"field": "location_id"})
	}
	if input.TeamID != nil {
		if _, err := s.teams.GetByID(ctx, *input.TeamID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("team", map[string]any{"team_id": *input.TeamID})
			}
			return apperrors.MapError(err)
		}
	}
	if input.DefaultTechnicianID != nil {
		technician, err := s.users.GetByID(ctx, *input.DefaultTechnicianID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("technician", map[string]any{"user_id": *input.DefaultTechnicianID})
			}
			return apperrors.MapError(err)
		}
		if technician.Role != domain.RoleTechnician {
			return apperrors.NewValidationError("default technician must hold the technician role", map[string]any{"field": "default_technician_id"})
		}
	}
	return nil
}
