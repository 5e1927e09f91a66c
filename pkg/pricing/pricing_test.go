package pricing

import (
	"testing"

	"alternus-gallery-io/api/pkg/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func line(price float64, frame models.FrameOption, qty int) models.CartLine {
	return models.CartLine{
		ArtworkId: primitive.NewObjectID(),
		UnitPrice: price,
		Frame:     frame,
		Quantity:  qty,
	}
}

func TestEmptyCartIsAllZero(t *testing.T) {
	totals := CalculateOrderTotals(nil)
	if totals.Subtotal != 0 || totals.Shipping != 0 || totals.Tax != 0 || totals.Total != 0 {
		t.Fatalf("empty cart should be all-zero, got %+v", totals)
	}
}

func TestShippingTiers(t *testing.T) {
	cases := []struct {
		name     string
		subtotal float64
		shipping float64
	}{
		{"zero subtotal", 0, 0},
		{"small order pays flat fee", 50, FlatShippingFee},
		{"at threshold still pays", 100, FlatShippingFee},
		{"over threshold ships free", 100.01, 0},
		{"large order ships free", 2400, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var lines []models.CartLine
			if tc.subtotal > 0 {
				lines = []models.CartLine{line(tc.subtotal, models.FrameNone, 1)}
			}
			totals := CalculateOrderTotals(lines)
			if totals.Shipping != tc.shipping {
				t.Fatalf("subtotal %.2f: shipping = %.2f, want %.2f", tc.subtotal, totals.Shipping, tc.shipping)
			}
		})
	}
}

func TestLargeOrderBreakdown(t *testing.T) {
	// One painting at 2400, no frame: free shipping, 20% VAT.
	totals := CalculateOrderTotals([]models.CartLine{line(2400, models.FrameNone, 1)})

	if totals.Subtotal != 2400 {
		t.Errorf("subtotal = %.2f, want 2400", totals.Subtotal)
	}
	if totals.Shipping != 0 {
		t.Errorf("shipping = %.2f, want 0", totals.Shipping)
	}
	if totals.Tax != 480 {
		t.Errorf("tax = %.2f, want 480", totals.Tax)
	}
	if totals.Total != 2880 {
		t.Errorf("total = %.2f, want 2880", totals.Total)
	}
}

func TestSmallOrderBreakdown(t *testing.T) {
	totals := CalculateOrderTotals([]models.CartLine{line(50, models.FrameNone, 1)})

	if totals.Subtotal != 50 {
		t.Errorf("subtotal = %.2f, want 50", totals.Subtotal)
	}
	if totals.Shipping != 10 {
		t.Errorf("shipping = %.2f, want 10", totals.Shipping)
	}
	if totals.Tax != 10 {
		t.Errorf("tax = %.2f, want 10", totals.Tax)
	}
	if totals.Total != 70 {
		t.Errorf("total = %.2f, want 70", totals.Total)
	}
}

func TestQuantityMultipliesLine(t *testing.T) {
	l := line(200, models.FrameWhite, 3)
	want := (200 + FrameSurchargeWhite) * 3
	if got := LineTotal(l); got != want {
		t.Fatalf("line total = %.2f, want %.2f", got, want)
	}

	totals := CalculateOrderTotals([]models.CartLine{l})
	if totals.Subtotal != want {
		t.Fatalf("subtotal = %.2f, want %.2f", totals.Subtotal, want)
	}
}

func TestFrameSurcharges(t *testing.T) {
	if FrameSurcharge(models.FrameNone) != 0 {
		t.Error("no frame should cost nothing")
	}
	if FrameSurcharge(models.FrameBlack) != FrameSurchargeBlack {
		t.Error("black frame surcharge mismatch")
	}
	if FrameSurcharge(models.FrameWhite) != FrameSurchargeWhite {
		t.Error("white frame surcharge mismatch")
	}
	if FrameSurcharge(models.FrameOption("gold")) != 0 {
		t.Error("unknown frame should price as none")
	}
}
