package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUpdateConflict is returned when Update keeps losing the race for key.
var ErrUpdateConflict = errors.New("cache: update conflict")

// UpdateFunc maps the current value of a key to its next value. An error aborts the update
// without writing and is returned from Update as is.
type UpdateFunc func(current []byte, ok bool) ([]byte, error)

// Cache is the key/value surface the modules use. A zero ttl keeps the key until it is deleted.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Update is an atomic read-modify-write of key. fn may run more than once.
	Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) error

	// AddToIndex records key under index so it can be dropped together with its siblings.
	AddToIndex(ctx context.Context, index string, key string, ttl time.Duration) error
	IndexMembers(ctx context.Context, index string) ([]string, error)

	Close() error
}
