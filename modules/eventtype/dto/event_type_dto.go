package dto

import "time"

type CreateEventTypeRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Length   int    `json:"length"`
	ParentID *int64 `json:"parent_id"`
	// UserID must be the caller when set.
	UserID *int64 `json:"user_id"`
}

type EventTypeResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Length    int       `json:"length"`
	TeamID    *int64    `json:"team_id,omitempty"`
	UserID    *int64    `json:"user_id,omitempty"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
