package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/repository"
	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

// TeamService manages maintenance crews. Membership is derived from the
// users table, not stored on the team itself.
type TeamService struct {
	teams repository.TeamRepository
	users repository.UserRepository
}

// NewTeamService constructs the service.
func NewTeamService(teams repository.TeamRepository, users repository.UserRepository) *TeamService {
	return &TeamService{teams: teams, users: users}
}

// TeamInput describes create/update payload.
type TeamInput struct {
	Name        string
	Description string
	Color       string
	LeaderID    *int64
}

// Create registers a new team. The leader does not have to be a member of
// the team they lead.
func (s *TeamService) Create(ctx context.Context, input TeamInput) (*domain.Team, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}
	team := &domain.Team{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Color:       strings.TrimSpace(input.Color),
		LeaderID:    input.LeaderID,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// Update edits an existing team.
func (s *TeamService) Update(ctx context.Context, id int64, input TeamInput) (*domain.Team, error) {
	team, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}
	team.Name = strings.TrimSpace(input.Name)
	team.Description = strings.TrimSpace(input.Description)
	team.Color = strings.TrimSpace(input.Color)
	team.LeaderID = input.LeaderID
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// Get fetches one team.
func (s *TeamService) Get(ctx context.Context, id int64) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// List returns all teams.
func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return teams, nil
}

// GetWithMembers resolves a team together with its leader and roster.
func (s *TeamService) GetWithMembers(ctx context.Context, id int64) (*domain.TeamWithMembers, error) {
	team, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result := &domain.TeamWithMembers{Team: *team}

	members, err := s.users.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	result.Members = members

	if team.LeaderID != nil {
		leader, err := s.users.GetByID(ctx, *team.LeaderID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		result.Leader = leader
	}
	return result, nil
}

func (s *TeamService) validateInput(ctx context.Context, input TeamInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name is required", map[string]any{"field": "name"})
	}
	if input.LeaderID != nil {
		if _, err := s.users.GetByID(ctx, *input.LeaderID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("leader", map[string]any{"user_id": *input.LeaderID})
			}
			return apperrors.MapError(err)
		}
	}
	return nil
}
