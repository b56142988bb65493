// package flat provides the key-value (flat) implementation of [models.Store].
package flat

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/desertthunder/foodcodex/internal/kv"
	"github.com/desertthunder/foodcodex/internal/models"
	"github.com/desertthunder/foodcodex/internal/shared"
)

const (
	recipesKeyPrefix   = "fc_user_recipes:"
	favoritesKeyPrefix = "fc_favorites:"
	sequenceKeyPrefix  = "fc_sequence:"
)

// RecipesKey returns the key holding userID's recipe array.
func RecipesKey(userID string) string { return recipesKeyPrefix + userID }

// FavoritesKey returns the key holding userID's favorite array.
func FavoritesKey(userID string) string { return favoritesKeyPrefix + userID }

func sequenceKey(entity string) string { return sequenceKeyPrefix + entity }

// Store implements [models.Store] on a [kv.Store], one JSON array per user per entity.
//
// Read-modify-write cycles are serialized by mu, so goroutines sharing a Store never lose writes.
// Separate processes sharing the same keys are last-write-wins.
type Store struct {
	kv  kv.Store
	now func() time.Time
	mu  sync.Mutex
}

// Option configures a [Store].
type Option func(*Store)

// WithClock replaces the clock used to derive ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a flat [Store] on the given key-value engine.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{kv: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns [models.BackendFlat].
func (s *Store) Backend() models.Backend { return models.BackendFlat }

// Init is a no-op: each collection is a single value with no schema.
func (s *Store) Init(ctx context.Context) error { return nil }

// Close closes the key-value engine.
func (s *Store) Close() error { return s.kv.Close() }

// DeleteAllUserData removes userID's recipe and favorite keys in one batch.
func (s *Store) DeleteAllUserData(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.kv.Batch(ctx, []kv.Op{kv.DeleteOp(FavoritesKey(userID)), kv.DeleteOp(RecipesKey(userID))})
	if err != nil {
		return fmt.Errorf("failed to delete user data: %w", err)
	}
	return nil
}

// nextID returns a new id for entity and the op that persists it.
//
// Ids are Unix milliseconds, bumped past the last issued id so they stay unique and increasing
// across all users even when several are created within the same millisecond.
func (s *Store) nextID(ctx context.Context, entity string) (int64, kv.Op, error) {
	key := sequenceKey(entity)

	var last int64
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return 0, kv.Op{}, fmt.Errorf("failed to read sequence: %w", err)
	}
	if ok {
		if last, err = strconv.ParseInt(string(raw), 10, 64); err != nil {
			return 0, kv.Op{}, fmt.Errorf("%w: sequence %s: %v", shared.ErrCorruptRecord, entity, err)
		}
	}

	id := max(s.now().UnixMilli(), last+1)
	return id, kv.SetOp(key, []byte(strconv.FormatInt(id, 10))), nil
}

// load decodes the JSON array stored at key into a fresh slice. A missing key yields an empty slice.
func load[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	items := []T{}

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return items, nil
	}

	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrCorruptRecord, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// encode returns the op storing items as a JSON array at key.
func encode[T any](key string, items []T) (kv.Op, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return kv.Op{}, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.SetOp(key, raw), nil
}

// sortByIDDesc orders items newest first.
func sortByIDDesc[T any](items []T, id func(T) int64) {
	slices.SortStableFunc(items, func(a, b T) int {
		ia, ib := id(a), id(b)
		switch {
		case ia > ib:
			return -1
		case ia < ib:
			return 1
		}
		return 0
	})
}
