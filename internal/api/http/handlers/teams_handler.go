package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gearguard/maintenance-service/internal/api/dto"
	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/service"
	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

// TeamsHandler manages team endpoints.
type TeamsHandler struct {
	service *service.TeamService
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(teamService *service.TeamService) *TeamsHandler {
	return &TeamsHandler{service: teamService}
}

// Create POST /teams.
func (h *TeamsHandler) Create(c *fiber.Ctx) error {
	var req dto.TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	team, err := h.service.Create(c.UserContext(), teamInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": teamResponse(team)})
}

// Update PUT /teams/:id.
func (h *TeamsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	team, err := h.service.Update(c.UserContext(), id, teamInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": teamResponse(team)})
}

// Get GET /teams/:id with resolved roster.
func (h *TeamsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	team, err := h.service.GetWithMembers(c.UserContext(), id)
	if err != nil {
		return err
	}

	detail := dto.TeamDetailResponse{TeamResponse: teamResponse(&team.Team)}
	if team.Leader != nil {
		leader := userResponse(team.Leader)
		detail.Leader = &leader
	}
	detail.Members = make([]dto.UserResponse, 0, len(team.Members))
	for i := range team.Members {
		detail.Members = append(detail.Members, userResponse(&team.Members[i]))
	}
	return c.JSON(fiber.Map{"data": detail})
}

// List GET /teams.
func (h *TeamsHandler) List(c *fiber.Ctx) error {
	teams, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, teamResponse(&teams[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func teamInput(req dto.TeamRequest) service.TeamInput {
	return service.TeamInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		LeaderID:    req.LeaderID,
	}
}

func teamResponse(team *domain.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		Color:       team.Color,
		LeaderID:    team.LeaderID,
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
}
