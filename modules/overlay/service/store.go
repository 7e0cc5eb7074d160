package service

import (
	"context"

	"booker-api/core/cache"
)

// KeyValueStore is the durable per-viewer storage the overlay state lives in.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Update atomically replaces the value of key with fn's result.
	Update(ctx context.Context, key string, fn cache.UpdateFunc) error
}

type deviceStore struct {
	cache  cache.Cache
	prefix string
}

// NewDeviceStore scopes c to one device. Keys never expire.
func NewDeviceStore(c cache.Cache, deviceID string) KeyValueStore {
	return &deviceStore{cache: c, prefix: "overlay:device:" + deviceID + ":"}
}

func (s *deviceStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.cache.Get(ctx, s.prefix+key)
}

func (s *deviceStore) Set(ctx context.Context, key string, value []byte) error {
	return s.cache.Set(ctx, s.prefix+key, value, 0)
}

func (s *deviceStore) Update(ctx context.Context, key string, fn cache.UpdateFunc) error {
	return s.cache.Update(ctx, s.prefix+key, 0, fn)
}
