package dto

import (
	"time"

	"github.com/gearguard/maintenance-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the bearer token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the account shape returned to clients. The permission map
// lets the frontend gate its controls without a second round trip.
type UserResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        domain.Role     `json:"role"`
	Department  string          `json:"department"`
	TeamID      *int64          `json:"team_id"`
	Permissions map[string]bool `json:"permissions"`
}
