package domain

import "time"

// Role enumerates the access roles of the system.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleUser       Role = "user"
)

// User is an account provisioned outside this service; immutable during a
// session.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	TeamID       *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
