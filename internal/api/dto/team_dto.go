package dto

import "time"

// TeamRequest payload for create and update.
type TeamRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	LeaderID    *int64 `json:"leader_id"`
}

// TeamResponse is the wire shape of a team.
type TeamResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	LeaderID    *int64    `json:"leader_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamDetailResponse includes the resolved roster.
type TeamDetailResponse struct {
	TeamResponse
	Leader  *UserResponse  `json:"leader"`
	Members []UserResponse `json:"members"`
}
