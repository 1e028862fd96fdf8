package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gearguard/maintenance-service/internal/api/dto"
	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/repository"
)

// UsersHandler exposes read-only account listings for assignment pickers.
type UsersHandler struct {
	users repository.UserRepository
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users repository.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// Technicians GET /users/technicians populates assignment dropdowns.
func (h *UsersHandler) Technicians(c *fiber.Ctx) error {
	technicians, err := h.users.ListByRole(c.UserContext(), domain.RoleTechnician)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(technicians)})
}

func userResponses(users []domain.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return items
}
