package dto

import (
	"time"

	"github.com/gearguard/maintenance-service/internal/domain"
)

// EquipmentRequest payload for create and update.
type EquipmentRequest struct {
	Name                string `json:"name" validate:"required"`
	SerialNumber        string `json:"serial_number"`
	Description         string `json:"description"`
	CategoryID          int64  `json:"category_id" validate:"required,gt=0"`
	DepartmentID        int64  `json:"department_id" validate:"required,gt=0"`
	LocationID          int64  `json:"location_id" validate:"required,gt=0"`
	TeamID              *int64 `json:"team_id"`
	DefaultTechnicianID *int64 `json:"default_technician_id"`
}

// EquipmentResponse is the wire shape of an asset.
type EquipmentResponse struct {
	ID                  int64                  `json:"id"`
	Name                string                 `json:"name"`
	SerialNumber        string                 `json:"serial_number"`
	Description         string                 `json:"description"`
	CategoryID          int64                  `json:"category_id"`
	CategoryName        string                 `json:"category_name"`
	DepartmentID        int64                  `json:"department_id"`
	DepartmentName      string                 `json:"department_name"`
	LocationID          int64                  `json:"location_id"`
	LocationName        string                 `json:"location_name"`
	TeamID              *int64                 `json:"team_id"`
	DefaultTechnicianID *int64                 `json:"default_technician_id"`
	Status              domain.EquipmentStatus `json:"status"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}
