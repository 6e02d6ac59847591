package models

import "time"

type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type TeamMember struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"` // captain, player
	CreatedAt time.Time `json:"created_at"`
}

// TeamMemberDetail joins the membership row with the member's contact.
type TeamMemberDetail struct {
	TeamMember
	Contact Contact `json:"contact"`
}

// TeamDetail is a team with its full roster.
type TeamDetail struct {
	Team    Team                `json:"team"`
	Members []*TeamMemberDetail `json:"members"`
}
