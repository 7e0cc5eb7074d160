package service

import (
	"context"
	"encoding/json"
	"fmt"

	"booker-api/core/logger"
	"booker-api/modules/availability/dto"
)

const TaskSelectionInvalidated = "overlay:selection_invalidated"

type UserInvalidator interface {
	InvalidateUser(ctx context.Context, userID int64) error
}

// SelectionInvalidatedHandler drops the cached busy times of the user whose selection was cleared.
func SelectionInvalidatedHandler(invalidator UserInvalidator) func(ctx context.Context, payload []byte) error {
	return func(ctx context.Context, payload []byte) error {
		var p dto.SelectionInvalidatedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("invalid %s payload: %w", TaskSelectionInvalidated, err)
		}
		if p.UserID == 0 {
			logger.Debug("SelectionInvalidatedHandler:NoUser", "device_id", p.DeviceID)
			return nil
		}
		return invalidator.InvalidateUser(ctx, p.UserID)
	}
}
