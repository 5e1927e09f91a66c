package services

import (
	"context"
	"encoding/json"
	"time"

	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/pricing"
	"alternus-gallery-io/api/pkg/util"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session stores are re-persisted on every mutation and expire together with
// an abandoned session.
const sessionStoreTTL = 30 * 24 * time.Hour

// ErrNotHydrated guards against persisting a store before its initial load
// from redis has completed, which would clobber previously saved state.
var ErrNotHydrated = errors.New("session store not hydrated yet")

// CartStore owns one session's cart: an insertion-ordered sequence of lines,
// at most one per artwork, mirrored to redis on every mutation.
type CartStore struct {
	rdb    *redis.Client
	key    string
	lines  []models.CartLine
	loaded bool
}

// NewCartStore loads the session's cart from redis. A missing key means a
// first visit; a malformed payload is logged and treated as an empty cart.
// The store is marked hydrated only after the load attempt completes.
func NewCartStore(ctx context.Context, rdb *redis.Client, sessionID string) *CartStore {
	s := &CartStore{rdb: rdb, key: common.CART_KEY_PREFIX + sessionID}

	raw, err := rdb.Get(ctx, s.key).Result()
	switch {
	case err == redis.Nil:
		// first visit, nothing stored yet
	case err != nil:
		util.LogError("loading cart from session storage", err)
	default:
		if jsonErr := json.Unmarshal([]byte(raw), &s.lines); jsonErr != nil {
			util.LogError("discarding malformed cart payload", jsonErr)
			s.lines = nil
		}
	}

	s.loaded = true
	return s
}

// Add appends a new line with quantity 1. Adding an artwork already in the
// cart is a no-op: the existing line's quantity and frame are left untouched.
// Reports whether the cart changed.
func (s *CartStore) Add(ctx context.Context, line models.CartLine) (bool, error) {
	if s.find(line.ArtworkId) >= 0 {
		return false, nil
	}

	if line.Frame == "" {
		line.Frame = models.FrameNone
	}
	line.Quantity = 1
	line.AddedAt = time.Now()

	s.lines = append(s.lines, line)
	return true, s.persist(ctx)
}

// Remove drops the line for the given artwork; absent ids are a no-op.
func (s *CartStore) Remove(ctx context.Context, artworkID primitive.ObjectID) (bool, error) {
	i := s.find(artworkID)
	if i < 0 {
		return false, nil
	}

	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return true, s.persist(ctx)
}

// UpdateQuantity sets the line's quantity verbatim. It does not clamp;
// callers remove the line instead of updating it to zero.
func (s *CartStore) UpdateQuantity(ctx context.Context, artworkID primitive.ObjectID, quantity int) (bool, error) {
	i := s.find(artworkID)
	if i < 0 {
		return false, nil
	}

	s.lines[i].Quantity = quantity
	return true, s.persist(ctx)
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) error {
	s.lines = nil
	return s.persist(ctx)
}

// Lines returns the cart's lines in insertion order.
func (s *CartStore) Lines() []models.CartLine {
	return s.lines
}

// ItemCount is the number of distinct lines, not the sum of quantities.
func (s *CartStore) ItemCount() int {
	return len(s.lines)
}

// Summary bundles lines, item count and the quantity-weighted totals.
func (s *CartStore) Summary() models.CartSummary {
	lines := s.lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return models.CartSummary{
		Lines:     lines,
		ItemCount: s.ItemCount(),
		Totals:    pricing.CalculateOrderTotals(s.lines),
	}
}

func (s *CartStore) find(artworkID primitive.ObjectID) int {
	for i, line := range s.lines {
		if line.ArtworkId == artworkID {
			return i
		}
	}
	return -1
}

func (s *CartStore) persist(ctx context.Context) error {
	if !s.loaded {
		return ErrNotHydrated
	}

	data, err := json.Marshal(s.lines)
	if err != nil {
		return errors.Wrap(err, "serializing cart")
	}

	return s.rdb.Set(ctx, s.key, data, sessionStoreTTL).Err()
}
