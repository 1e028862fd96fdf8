package service

import (
	"context"
	"time"

	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/repository"
	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

// DashboardService aggregates request counts for the overview page.
// Request figures honor the caller's visibility scope, so a technician sees
// their team's numbers and a manager sees everything. Equipment totals are
// registry-wide since equipment has no row scoping.
type DashboardService struct {
	requests  *RequestService
	teams     *TeamService
	equipment repository.EquipmentRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(requests *RequestService, teams *TeamService, equipment repository.EquipmentRepository) *DashboardService {
	return &DashboardService{requests: requests, teams: teams, equipment: equipment}
}

// TeamStats is the per-team rollup.
type TeamStats struct {
	TeamID     int64  `json:"team_id"`
	TeamName   string `json:"team_name"`
	Color      string `json:"color"`
	Open       int    `json:"open"`
	InProgress int    `json:"in_progress"`
	Closed     int    `json:"closed"`
	Overdue    int    `json:"overdue"`
}

// Stats is the dashboard payload.
type Stats struct {
	Total      int                            `json:"total"`
	ByStatus   map[domain.RequestStatus]int   `json:"by_status"`
	ByPriority map[domain.RequestPriority]int `json:"by_priority"`
	ByType     map[domain.RequestType]int     `json:"by_type"`
	Overdue    int                            `json:"overdue"`
	Equipment  map[domain.EquipmentStatus]int `json:"equipment"`
	Teams      []TeamStats                    `json:"teams"`
}

// Stats computes counts over the requests visible to the actor.
func (s *DashboardService) Stats(ctx context.Context, actor *domain.User) (*Stats, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	requests, err := s.requests.ListVisible(ctx, actor, RequestListFilter{Limit: 1000})
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}
	assets, err := s.equipment.ListWithFilter(ctx, repository.EquipmentFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &Stats{
		Total:      len(requests),
		ByStatus:   make(map[domain.RequestStatus]int),
		ByPriority: make(map[domain.RequestPriority]int),
		ByType:     make(map[domain.RequestType]int),
		Equipment:  make(map[domain.EquipmentStatus]int),
	}
	for _, asset := range assets {
		stats.Equipment[asset.Status]++
	}
	perTeam := make(map[int64]*TeamStats, len(teams))
	for _, team := range teams {
		perTeam[team.ID] = &TeamStats{TeamID: team.ID, TeamName: team.Name, Color: team.Color}
	}

	now := time.Now()
	for _, request := range requests {
		stats.ByStatus[request.Status]++
		stats.ByPriority[request.Priority]++
		stats.ByType[request.Type]++
		overdue := request.IsOverdue(now)
		if overdue {
			stats.Overdue++
		}

		if request.TeamID == nil {
			continue
		}
		rollup, ok := perTeam[*request.TeamID]
		if !ok {
			continue
		}
		switch request.Status {
		case domain.RequestStatusNew:
			rollup.Open++
		case domain.RequestStatusInProgress:
			rollup.InProgress++
		default:
			rollup.Closed++
		}
		if overdue {
			rollup.Overdue++
		}
	}

	stats.Teams = make([]TeamStats, 0, len(teams))
	for _, team := range teams {
		stats.Teams = append(stats.Teams, *perTeam[team.ID])
	}
	return stats, nil
}
