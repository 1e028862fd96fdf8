package domain

import "time"

// EquipmentStatus enumerates the lifecycle of an asset. Scrapped is terminal.
type EquipmentStatus string

const (
	EquipmentStatusActive           EquipmentStatus = "active"
	EquipmentStatusUnderMaintenance EquipmentStatus = "under_maintenance"
	EquipmentStatusScrapped         EquipmentStatus = "scrapped"
)

// Equipment is a registered asset. Scrapped equipment rejects new
// maintenance requests.
type Equipment struct {
	ID                  int64
	Name                string
	SerialNumber        string
	Description         string
	CategoryID          int64
	DepartmentID        int64
	LocationID          int64
	TeamID              *int64
	DefaultTechnicianID *int64
	Status              EquipmentStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsScrapped reports whether the asset reached its terminal state.
func (e *Equipment) IsScrapped() bool {
	return e.Status == EquipmentStatusScrapped
}
