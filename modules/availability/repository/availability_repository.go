package repository

import (
	"context"
	"time"

	"booker-api/core/database"
	"booker-api/core/logger"
	"booker-api/modules/availability/dto"
	"booker-api/modules/availability/entity"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type AvailabilityRepository interface {
	// FindOwnedCredentials returns the credentials among ids that belong to userID and are not revoked.
	FindOwnedCredentials(ctx context.Context, userID int64, ids []int64) ([]entity.Credential, error)
	// FindBusyTimes returns busy rows of the given calendars overlapping [from, to).
	FindBusyTimes(ctx context.Context, calendars []dto.CalendarToLoad, from, to time.Time) ([]entity.BusyTime, error)
}

type availabilityRepository struct {
	db database.IDatabase
}

func NewAvailabilityRepository(db database.IDatabase) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) FindOwnedCredentials(ctx context.Context, userID int64, ids []int64) ([]entity.Credential, error) {
	if len(ids) == 0 {
		return []entity.Credential{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, user_id, type, revoked, created_at, updated_at
		FROM credentials
		WHERE user_id = ? AND revoked = false AND id IN (?)
	`, userID, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.SQLx().Rebind(query)

	var credentials []entity.Credential
	if err := r.db.SelectContext(ctx, &credentials, query, args...); err != nil {
		logger.Error("AvailabilityRepository:FindOwnedCredentials:Error", "user_id", userID, "error", err)
		return nil, err
	}
	return credentials, nil
}

func (r *availabilityRepository) FindBusyTimes(ctx context.Context, calendars []dto.CalendarToLoad, from, to time.Time) ([]entity.BusyTime, error) {
	if len(calendars) == 0 {
		return []entity.BusyTime{}, nil
	}

	credentialIDs := make([]int64, len(calendars))
	externalIDs := make([]string, len(calendars))
	for i, cal := range calendars {
		credentialIDs[i] = cal.CredentialID
		externalIDs[i] = cal.ExternalID
	}

	query := `
		SELECT id, credential_id, external_id, start_time, end_time, title, source
		FROM busy_times
		WHERE (credential_id, external_id) IN (
			SELECT * FROM unnest($1::bigint[], $2::text[])
		)
		AND start_time < $4 AND end_time > $3
		ORDER BY start_time ASC
	`
	var busy []entity.BusyTime
	err := r.db.SelectContext(ctx, &busy, query, pq.Array(credentialIDs), pq.Array(externalIDs), from.UTC(), to.UTC())
	if err != nil {
		logger.Error("AvailabilityRepository:FindBusyTimes:Error", "calendars", len(calendars), "error", err)
		return nil, err
	}
	return busy, nil
}
