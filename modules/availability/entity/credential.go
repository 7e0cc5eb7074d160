package entity

import (
	"time"

	"booker-api/core/entity"
)

// Credential is an external calendar account connection.
type Credential struct {
	UserID  int64  `db:"user_id" json:"user_id"`
	Type    string `db:"type" json:"type"`
	Revoked bool   `db:"revoked" json:"revoked"`
	entity.BaseEntity
}

type BusyTime struct {
	ID           int64     `db:"id"`
	CredentialID int64     `db:"credential_id"`
	ExternalID   string    `db:"external_id"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	Title        *string   `db:"title"`
	Source       string    `db:"source"`
}
