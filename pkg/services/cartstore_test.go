package services

import (
	"context"
	"testing"

	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func cartLine(price float64, frame models.FrameOption) models.CartLine {
	return models.CartLine{
		ArtworkId: primitive.NewObjectID(),
		Title:     "Untitled",
		UnitPrice: price,
		Frame:     frame,
	}
}

func TestItemCountCountsDistinctLines(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)
	cart := NewCartStore(ctx, rdb, "sess-1")

	lines := []models.CartLine{cartLine(100, models.FrameNone), cartLine(200, models.FrameBlack), cartLine(300, models.FrameWhite)}
	for _, l := range lines {
		if changed, err := cart.Add(ctx, l); err != nil || !changed {
			t.Fatalf("add: changed=%v err=%v", changed, err)
		}
	}
	// repeat every add; none may change the cart
	for _, l := range lines {
		if changed, err := cart.Add(ctx, l); err != nil || changed {
			t.Fatalf("repeat add: changed=%v err=%v", changed, err)
		}
	}

	if cart.ItemCount() != 3 {
		t.Fatalf("item count = %d, want 3", cart.ItemCount())
	}
}

func TestRepeatAddKeepsQuantityAndFrame(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)
	cart := NewCartStore(ctx, rdb, "sess-1")

	l := cartLine(500, models.FrameBlack)
	if _, err := cart.Add(ctx, l); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.UpdateQuantity(ctx, l.ArtworkId, 3); err != nil {
		t.Fatal(err)
	}

	dup := l
	dup.Frame = models.FrameWhite
	if changed, err := cart.Add(ctx, dup); err != nil || changed {
		t.Fatalf("duplicate add must be a no-op, changed=%v err=%v", changed, err)
	}

	got := cart.Lines()[0]
	if got.Quantity != 3 {
		t.Errorf("quantity = %d, want 3", got.Quantity)
	}
	if got.Frame != models.FrameBlack {
		t.Errorf("frame = %s, want black", got.Frame)
	}
}

func TestUpdateQuantityFeedsTotals(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)
	cart := NewCartStore(ctx, rdb, "sess-1")

	l := cartLine(200, models.FrameNone)
	if _, err := cart.Add(ctx, l); err != nil {
		t.Fatal(err)
	}
	if changed, err := cart.UpdateQuantity(ctx, l.ArtworkId, 4); err != nil || !changed {
		t.Fatalf("update: changed=%v err=%v", changed, err)
	}

	summary := cart.Summary()
	if summary.Totals.Subtotal != 800 {
		t.Fatalf("subtotal = %.2f, want 800", summary.Totals.Subtotal)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)
	cart := NewCartStore(ctx, rdb, "sess-1")

	if changed, err := cart.Remove(ctx, primitive.NewObjectID()); err != nil || changed {
		t.Fatalf("remove absent: changed=%v err=%v", changed, err)
	}
}

func TestCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)

	first := NewCartStore(ctx, rdb, "sess-1")
	lines := []models.CartLine{cartLine(100, models.FrameNone), cartLine(200, models.FrameBlack)}
	for _, l := range lines {
		if _, err := first.Add(ctx, l); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := first.UpdateQuantity(ctx, lines[1].ArtworkId, 2); err != nil {
		t.Fatal(err)
	}

	// a fresh store for the same session must see the identical ordered lines
	second := NewCartStore(ctx, rdb, "sess-1")
	got := second.Lines()
	if len(got) != 2 {
		t.Fatalf("rehydrated %d lines, want 2", len(got))
	}
	if got[0].ArtworkId != lines[0].ArtworkId || got[1].ArtworkId != lines[1].ArtworkId {
		t.Fatal("line order not preserved across reload")
	}
	if got[1].Quantity != 2 || got[1].Frame != models.FrameBlack {
		t.Fatalf("line state not preserved: %+v", got[1])
	}

	// carts are per-session
	other := NewCartStore(ctx, rdb, "sess-2")
	if other.ItemCount() != 0 {
		t.Fatal("sessions must not share carts")
	}
}

func TestMalformedPayloadFailsOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	if err := mr.Set(common.CART_KEY_PREFIX+"sess-1", "{not json"); err != nil {
		t.Fatal(err)
	}

	cart := NewCartStore(ctx, rdb, "sess-1")
	if cart.ItemCount() != 0 {
		t.Fatal("malformed payload must load as an empty cart")
	}

	// the store still works after discarding the bad payload
	if changed, err := cart.Add(ctx, cartLine(100, models.FrameNone)); err != nil || !changed {
		t.Fatalf("add after recovery: changed=%v err=%v", changed, err)
	}
}

func TestPersistRefusedBeforeHydration(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)

	cart := &CartStore{rdb: rdb, key: common.CART_KEY_PREFIX + "sess-1"}
	if err := cart.persist(ctx); err != ErrNotHydrated {
		t.Fatalf("persist before load = %v, want ErrNotHydrated", err)
	}
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)
	cart := NewCartStore(ctx, rdb, "sess-1")

	if _, err := cart.Add(ctx, cartLine(100, models.FrameNone)); err != nil {
		t.Fatal(err)
	}
	if err := cart.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if cart.ItemCount() != 0 {
		t.Fatal("clear must empty the cart")
	}

	if NewCartStore(ctx, rdb, "sess-1").ItemCount() != 0 {
		t.Fatal("clear must persist")
	}
}
