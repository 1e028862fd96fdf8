package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gearguard/maintenance-service/internal/api/dto"
	"github.com/gearguard/maintenance-service/internal/domain"
	"github.com/gearguard/maintenance-service/internal/service"
	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

// EquipmentHandler manages the asset registry endpoints and the static
// reference catalogs.
type EquipmentHandler struct {
	service *service.EquipmentService
}

// NewEquipmentHandler constructs handler.
func NewEquipmentHandler(equipmentService *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{service: equipmentService}
}

// Create POST /equipment.
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var req dto.EquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	equipment, err := h.service.Create(c.UserContext(), equipmentInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": equipmentResponse(equipment)})
}

// Update PUT /equipment/:id.
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	equipment, err := h.service.Update(c.UserContext(), id, equipmentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": equipmentResponse(equipment)})
}

// Get GET /equipment/:id.
func (h *EquipmentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	equipment, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	openCount, err := h.service.OpenRequestCount(c.UserContext(), equipment.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"equipment":     equipmentResponse(equipment),
		"open_requests": openCount,
	}})
}

// List GET /equipment.
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	filter := service.EquipmentListFilter{}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.SearchTerm = &search
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.EquipmentStatus(statusStr)
		filter.Status = &status
	}
	if departmentID, err := strconv.ParseInt(c.Query("department_id"), 10, 64); err == nil && departmentID > 0 {
		filter.DepartmentID = &departmentID
	}
	if categoryID, err := strconv.ParseInt(c.Query("category_id"), 10, 64); err == nil && categoryID > 0 {
		filter.CategoryID = &categoryID
	}
	if teamID, err := strconv.ParseInt(c.Query("team_id"), 10, 64); err == nil && teamID > 0 {
		filter.TeamID = &teamID
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	items, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	responses := make([]dto.EquipmentResponse, 0, len(items))
	for i := range items {
		responses = append(responses, equipmentResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Scrap POST /equipment/:id/scrap.
func (h *EquipmentHandler) Scrap(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	equipment, err := h.service.Scrap(c.UserContext(), principal.User, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": equipmentResponse(equipment)})
}

// Categories GET /catalogs/categories.
func (h *EquipmentHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.EquipmentCategories()})
}

// Departments GET /catalogs/departments.
func (h *EquipmentHandler) Departments(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.Departments()})
}

// Locations GET /catalogs/locations.
func (h *EquipmentHandler) Locations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.Locations()})
}

func equipmentInput(req dto.EquipmentRequest) service.EquipmentInput {
	return service.EquipmentInput{
		Name:                req.Name,
		SerialNumber:        req.SerialNumber,
		Description:         req.Description,
		CategoryID:          req.CategoryID,
		DepartmentID:        req.DepartmentID,
		LocationID:          req.LocationID,
		TeamID:              req.TeamID,
		DefaultTechnicianID: req.DefaultTechnicianID,
	}
}

func equipmentResponse(equipment *domain.Equipment) dto.EquipmentResponse {
	return dto.EquipmentResponse{
		ID:                  equipment.ID,
		Name:                equipment.Name,
		SerialNumber:        equipment.SerialNumber,
		Description:         equipment.Description,
		CategoryID:          equipment.CategoryID,
		CategoryName:        domain.CatalogName(domain.EquipmentCategories(), equipment.CategoryID),
		DepartmentID:        equipment.DepartmentID,
		DepartmentName:      domain.CatalogName(domain.Departments(), equipment.DepartmentID),
		LocationID:          equipment.LocationID,
		LocationName:        domain.CatalogName(domain.Locations(), equipment.LocationID),
		TeamID:              equipment.TeamID,
		DefaultTechnicianID: equipment.DefaultTechnicianID,
		Status:              equipment.Status,
		CreatedAt:           equipment.CreatedAt,
		UpdatedAt:           equipment.UpdatedAt,
	}
}
