package domain

import "time"

// Team is a maintenance crew that owns equipment and works its requests.
// LeaderID is not required to appear in the member set; membership is
// resolved by cross-referencing users by TeamID.
type Team struct {
	ID          int64
	Name        string
	Description string
	Color       string
	LeaderID    *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamWithMembers carries a team together with its resolved roster.
type TeamWithMembers struct {
	Team
	Leader  *User
	Members []User
}
