package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"booker-api/core/cache"
	"booker-api/core/constants"
	"booker-api/core/logger"
	"booker-api/modules/availability/dto"

	"golang.org/x/sync/singleflight"
)

const (
	busyCachePrefix = "availability:busy:"
	busyIndexPrefix = "availability:busy_index:"
)

// CachedQuerier sits in front of AvailabilityService for the overlay. Identical concurrent requests
// share one call and successful results are kept for ttl. Failures are never cached.
type CachedQuerier struct {
	svc   AvailabilityService
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedQuerier(svc AvailabilityService, c cache.Cache, ttl time.Duration) *CachedQuerier {
	return &CachedQuerier{svc: svc, cache: c, ttl: ttl}
}

func (q *CachedQuerier) CalendarOverlay(ctx context.Context, userID int64, req dto.CalendarOverlayRequest) ([]dto.BusyTime, error) {
	key, err := cacheKey(userID, req)
	if err != nil {
		return nil, err
	}

	if data, ok, err := q.cache.Get(ctx, key); err != nil {
		logger.Warn("CachedQuerier:CalendarOverlay:CacheGetError", "error", err)
	} else if ok {
		var busy []dto.BusyTime
		if err := json.Unmarshal(data, &busy); err == nil {
			return busy, nil
		}
		logger.Warn("CachedQuerier:CalendarOverlay:CorruptEntry", "key", key)
	}

	v, err, shared := q.group.Do(key, func() (any, error) {
		// the call is shared, so one caller going away must not fail the others
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DefaultRequestTimeout)
		defer cancel()

		busy, appErr := q.svc.CalendarOverlay(callCtx, userID, req)
		if appErr != nil {
			return nil, appErr
		}
		q.store(callCtx, userID, key, busy)
		return busy, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("CachedQuerier:CalendarOverlay:Shared", "user_id", userID)
	}
	return v.([]dto.BusyTime), nil
}

func (q *CachedQuerier) store(ctx context.Context, userID int64, key string, busy []dto.BusyTime) {
	data, err := json.Marshal(busy)
	if err != nil {
		return
	}
	if err := q.cache.Set(ctx, key, data, q.ttl); err != nil {
		logger.Warn("CachedQuerier:Store:SetError", "error", err)
		return
	}
	if err := q.cache.AddToIndex(ctx, userIndex(userID), key, q.ttl); err != nil {
		logger.Warn("CachedQuerier:Store:IndexError", "error", err)
	}
}

// InvalidateUser drops every cached result of userID.
func (q *CachedQuerier) InvalidateUser(ctx context.Context, userID int64) error {
	index := userIndex(userID)
	keys, err := q.cache.IndexMembers(ctx, index)
	if err != nil {
		return err
	}
	keys = append(keys, index)
	if err := q.cache.Delete(ctx, keys...); err != nil {
		return err
	}
	logger.Info("CachedQuerier:InvalidateUser:Done", "user_id", userID, "entries", len(keys)-1)
	return nil
}

func cacheKey(userID int64, req dto.CalendarOverlayRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode overlay request: %w", err)
	}
	sum := sha256.Sum256(append([]byte(fmt.Sprintf("%d:", userID)), data...))
	return busyCachePrefix + hex.EncodeToString(sum[:]), nil
}

func userIndex(userID int64) string {
	return fmt.Sprintf("%s%d", busyIndexPrefix, userID)
}
