package services

import (
	"context"
	"testing"

	"alternus-gallery-io/api/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompareCapIsSilent(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)
	compare := NewCompareStore(ctx, rdb, "sess-1")

	ids := make([]primitive.ObjectID, 5)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}

	for i := 0; i < common.COMPARE_MAX_ITEMS; i++ {
		if changed, err := compare.Add(ctx, ids[i]); err != nil || !changed {
			t.Fatalf("add %d: changed=%v err=%v", i, changed, err)
		}
	}

	// the fifth add must be a silent no-op: no error, no eviction
	if changed, err := compare.Add(ctx, ids[4]); err != nil || changed {
		t.Fatalf("add past cap: changed=%v err=%v", changed, err)
	}

	got := compare.Ids()
	if len(got) != common.COMPARE_MAX_ITEMS {
		t.Fatalf("compare holds %d ids, want %d", len(got), common.COMPARE_MAX_ITEMS)
	}
	for i := range got {
		if got[i] != ids[i] {
			t.Fatal("cap overflow must not reorder or evict")
		}
	}
}

func TestWishlistIsUncapped(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)
	wishlist := NewWishlistStore(ctx, rdb, "sess-1")

	for i := 0; i < 10; i++ {
		if changed, err := wishlist.Add(ctx, primitive.NewObjectID()); err != nil || !changed {
			t.Fatalf("add %d: changed=%v err=%v", i, changed, err)
		}
	}
	if len(wishlist.Ids()) != 10 {
		t.Fatalf("wishlist holds %d ids, want 10", len(wishlist.Ids()))
	}
}

func TestListRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)
	wishlist := NewWishlistStore(ctx, rdb, "sess-1")

	id := primitive.NewObjectID()
	if _, err := wishlist.Add(ctx, id); err != nil {
		t.Fatal(err)
	}

	if changed, err := wishlist.Remove(ctx, primitive.NewObjectID()); err != nil || changed {
		t.Fatalf("remove absent: changed=%v err=%v", changed, err)
	}
	if len(wishlist.Ids()) != 1 {
		t.Fatal("remove of absent id must not change the list")
	}
}

func TestListMembershipAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := testRedis(t)

	first := NewWishlistStore(ctx, rdb, "sess-1")
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	for _, id := range []primitive.ObjectID{a, b} {
		if _, err := first.Add(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	// duplicate add keeps the list distinct
	if changed, err := first.Add(ctx, a); err != nil || changed {
		t.Fatalf("duplicate add: changed=%v err=%v", changed, err)
	}

	second := NewWishlistStore(ctx, rdb, "sess-1")
	if !second.Has(a) || !second.Has(b) {
		t.Fatal("membership lost across reload")
	}
	got := second.Ids()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("order not preserved across reload: %v", got)
	}

	// wishlist and compare persist independently
	if NewCompareStore(ctx, rdb, "sess-1").Has(a) {
		t.Fatal("compare must not see wishlist entries")
	}
}
