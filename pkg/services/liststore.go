package services

import (
	"context"
	"encoding/json"

	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/util"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListStore is the wishlist/compare shape: an insertion-ordered sequence of
// distinct artwork ids mirrored to redis, optionally capped. It follows the
// same hydrate-before-persist discipline as the cart.
type ListStore struct {
	rdb    *redis.Client
	key    string
	ids    []primitive.ObjectID
	max    int
	loaded bool
}

// NewWishlistStore loads the session's wishlist. No size cap.
func NewWishlistStore(ctx context.Context, rdb *redis.Client, sessionID string) *ListStore {
	return newListStore(ctx, rdb, common.WISHLIST_KEY_PREFIX+sessionID, 0)
}

// NewCompareStore loads the session's compare list, capped at
// COMPARE_MAX_ITEMS entries.
func NewCompareStore(ctx context.Context, rdb *redis.Client, sessionID string) *ListStore {
	return newListStore(ctx, rdb, common.COMPARE_KEY_PREFIX+sessionID, common.COMPARE_MAX_ITEMS)
}

func newListStore(ctx context.Context, rdb *redis.Client, key string, max int) *ListStore {
	s := &ListStore{rdb: rdb, key: key, max: max}

	raw, err := rdb.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
	case err != nil:
		util.LogError("loading list from session storage", err)
	default:
		if jsonErr := json.Unmarshal([]byte(raw), &s.ids); jsonErr != nil {
			util.LogError("discarding malformed list payload", jsonErr)
			s.ids = nil
		}
	}

	s.loaded = true
	return s
}

// Add appends the id. Duplicates are a no-op, and so is adding past the cap:
// the list stays unchanged and no error surfaces. Reports whether the list
// changed.
func (s *ListStore) Add(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if s.Has(id) {
		return false, nil
	}
	if s.max > 0 && len(s.ids) >= s.max {
		return false, nil
	}

	s.ids = append(s.ids, id)
	return true, s.persist(ctx)
}

// Remove drops the id; absent ids are a no-op.
func (s *ListStore) Remove(ctx context.Context, id primitive.ObjectID) (bool, error) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true, s.persist(ctx)
		}
	}
	return false, nil
}

// Has reports membership.
func (s *ListStore) Has(id primitive.ObjectID) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Ids returns the stored ids in insertion order.
func (s *ListStore) Ids() []primitive.ObjectID {
	if s.ids == nil {
		return []primitive.ObjectID{}
	}
	return s.ids
}

// Clear empties the list.
func (s *ListStore) Clear(ctx context.Context) error {
	s.ids = nil
	return s.persist(ctx)
}

func (s *ListStore) persist(ctx context.Context) error {
	if !s.loaded {
		return ErrNotHydrated
	}

	data, err := json.Marshal(s.ids)
	if err != nil {
		return errors.Wrap(err, "serializing list")
	}

	return s.rdb.Set(ctx, s.key, data, sessionStoreTTL).Err()
}
