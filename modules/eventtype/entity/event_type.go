package entity

import (
	"booker-api/core/entity"
)

// EventType is a bookable meeting template. Only event types with a TeamID can have children.
type EventType struct {
	Title    string `db:"title" json:"title"`
	Slug     string `db:"slug" json:"slug"`
	Length   int    `db:"length" json:"length"`
	TeamID   *int64 `db:"team_id" json:"team_id"`
	UserID   *int64 `db:"user_id" json:"user_id"`
	ParentID *int64 `db:"parent_id" json:"parent_id"`
	entity.BaseEntity
}
