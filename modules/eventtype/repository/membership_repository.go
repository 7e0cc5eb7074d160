package repository

import (
	"context"
	"database/sql"

	"booker-api/core/database"
	"booker-api/core/logger"
	"booker-api/modules/eventtype/entity"
)

type MembershipRepository interface {
	// FindAccepted returns the accepted membership of userID in teamID, or nil.
	// A nil userID never matches.
	FindAccepted(ctx context.Context, teamID int64, userID *int64) (*entity.Membership, error)
}

type membershipRepository struct {
	db database.IDatabase
}

func NewMembershipRepository(db database.IDatabase) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) FindAccepted(ctx context.Context, teamID int64, userID *int64) (*entity.Membership, error) {
	if userID == nil {
		return nil, nil
	}

	var membership entity.Membership
	query := `
		SELECT id, team_id, user_id, role, accepted, created_at, updated_at
		FROM memberships
		WHERE team_id = $1 AND user_id = $2 AND accepted = true
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &membership, query, teamID, *userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MembershipRepository:FindAccepted:Error", "team_id", teamID, "user_id", *userID, "error", err)
		return nil, err
	}
	return &membership, nil
}
