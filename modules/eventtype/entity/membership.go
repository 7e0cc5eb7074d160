package entity

import (
	"booker-api/core/entity"
)

type Membership struct {
	TeamID   int64  `db:"team_id" json:"team_id"`
	UserID   int64  `db:"user_id" json:"user_id"`
	Role     string `db:"role" json:"role"`
	Accepted bool   `db:"accepted" json:"accepted"`
	entity.BaseEntity
}
