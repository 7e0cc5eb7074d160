package repository

import (
	"context"
	"database/sql"

	"booker-api/core/database"
	"booker-api/core/logger"
	"booker-api/modules/eventtype/entity"
)

type EventTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.EventType, error)
	Create(ctx context.Context, eventType *entity.EventType) error
}

type eventTypeRepository struct {
	db database.IDatabase
}

func NewEventTypeRepository(db database.IDatabase) EventTypeRepository {
	return &eventTypeRepository{db: db}
}

// GetByID returns nil, nil when no row matches.
func (r *eventTypeRepository) GetByID(ctx context.Context, id int64) (*entity.EventType, error) {
	var eventType entity.EventType
	query := `
		SELECT id, title, slug, length, team_id, user_id, parent_id, created_at, updated_at
		FROM event_types
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &eventType, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventTypeRepository:GetByID:Error", "id", id, "error", err)
		return nil, err
	}
	return &eventType, nil
}

func (r *eventTypeRepository) Create(ctx context.Context, eventType *entity.EventType) error {
	query := `
		INSERT INTO event_types (title, slug, length, team_id, user_id, parent_id)
		VALUES (:title, :slug, :length, :team_id, :user_id, :parent_id)
		RETURNING id, created_at, updated_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, eventType)
	if err != nil {
		logger.Error("EventTypeRepository:Create:Error", "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&eventType.ID, &eventType.CreatedAt, &eventType.UpdatedAt)
	}
	return rows.Err()
}
