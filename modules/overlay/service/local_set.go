package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"booker-api/core/logger"
)

var errUnchanged = errors.New("set unchanged")

// LocalSet is an insertion-ordered set persisted under one key of a KeyValueStore.
// Members are compared with ==, so two values with equal fields are the same member.
// Every mutation is applied to the stored contents, so sets loaded from the same key
// never overwrite each other's changes.
type LocalSet[T comparable] struct {
	mu      sync.Mutex
	store   KeyValueStore
	key     string
	items   []T
	subs    map[int]func([]T)
	nextSub int
}

// NewLocalSet reads the stored contents of key. Unreadable contents start an empty set.
func NewLocalSet[T comparable](ctx context.Context, store KeyValueStore, key string) (*LocalSet[T], error) {
	s := &LocalSet[T]{store: store, key: key, subs: make(map[int]func([]T))}

	data, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	s.items = s.decode(data, ok)
	return s, nil
}

func (s *LocalSet[T]) Add(ctx context.Context, item T) error {
	return s.mutate(ctx, func(items []T) ([]T, bool) {
		if indexOf(items, item) >= 0 {
			return items, false
		}
		return append(items, item), true
	})
}

func (s *LocalSet[T]) Remove(ctx context.Context, item T) error {
	return s.mutate(ctx, func(items []T) ([]T, bool) {
		i := indexOf(items, item)
		if i < 0 {
			return items, false
		}
		return append(items[:i], items[i+1:]...), true
	})
}

func (s *LocalSet[T]) Clear(ctx context.Context) error {
	return s.mutate(ctx, func(items []T) ([]T, bool) {
		return []T{}, true
	})
}

// Items returns a copy of the members in insertion order.
func (s *LocalSet[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *LocalSet[T]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *LocalSet[T]) Has(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.items, item) >= 0
}

// Subscribe registers fn to receive the contents after every change.
func (s *LocalSet[T]) Subscribe(fn func([]T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// mutate applies op to the stored contents inside one store update. The in-memory contents
// only change once the write succeeded; subscribers run after that, outside the lock.
func (s *LocalSet[T]) mutate(ctx context.Context, op func([]T) ([]T, bool)) error {
	s.mu.Lock()

	var next []T
	err := s.store.Update(ctx, s.key, func(current []byte, ok bool) ([]byte, error) {
		items, changed := op(s.decode(current, ok))
		next = items
		if !changed {
			return nil, errUnchanged
		}
		data, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", s.key, err)
		}
		return data, nil
	})
	if errors.Is(err, errUnchanged) {
		s.items = next
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.mu.Unlock()
		logger.Error("LocalSet:Commit:Error", "key", s.key, "error", err)
		return fmt.Errorf("failed to store %s: %w", s.key, err)
	}
	s.items = next

	subs := make([]func([]T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(append([]T(nil), next...))
	}
	return nil
}

func (s *LocalSet[T]) decode(data []byte, ok bool) []T {
	if !ok || len(data) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("LocalSet:Load:Corrupt", "key", s.key, "error", err)
		return nil
	}
	return dedupe(items)
}

func (s *LocalSet[T]) snapshot() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func indexOf[T comparable](items []T, item T) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return -1
}

func dedupe[T comparable](items []T) []T {
	out := make([]T, 0, len(items))
	seen := make(map[T]struct{}, len(items))
	for _, v := range items {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
