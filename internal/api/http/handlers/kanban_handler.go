package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gearguard/maintenance-service/internal/api/dto"
	"github.com/gearguard/maintenance-service/internal/service"
	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

// KanbanHandler serves the board view and drag-and-drop moves.
type KanbanHandler struct {
	service *service.KanbanService
}

// NewKanbanHandler constructs handler.
func NewKanbanHandler(kanbanService *service.KanbanService) *KanbanHandler {
	return &KanbanHandler{service: kanbanService}
}

// Board GET /kanban.
func (h *KanbanHandler) Board(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	board, err := h.service.Board(c.UserContext(), principal.User, parseRequestQuery(c))
	if err != nil {
		return err
	}

	columns := make([]fiber.Map, 0, len(board.Columns))
	for _, column := range board.Columns {
		columns = append(columns, fiber.Map{
			"status":   column.Status,
			"requests": requestResponses(column.Requests),
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"columns": columns}})
}

// Move POST /kanban/:id/move.
func (h *KanbanHandler) Move(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.MoveCardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Move(c.UserContext(), principal.User, id, req.TargetColumn, req.TargetCardID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"request": requestResponse(result.Request),
		"moved":   result.Moved,
	}})
}

// Targets GET /kanban/:id/targets lists the columns a card may move to.
func (h *KanbanHandler) Targets(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	status, targets, err := h.service.Targets(c.UserContext(), principal.User, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"status":  status,
		"targets": targets,
	}})
}
