// Package pricing derives checkout totals from cart contents. Everything in
// here is a pure function of its inputs; persistence and transport live
// elsewhere.
package pricing

import (
	"math"

	"alternus-gallery-io/api/pkg/models"
)

const (
	// Orders above this subtotal ship free. Below it (but non-empty) a flat
	// fee applies.
	FreeShippingThreshold = 100.0
	FlatShippingFee       = 10.0

	// Flat-rate VAT applied to the subtotal.
	VatRate = 0.20

	FrameSurchargeBlack = 150.0
	FrameSurchargeWhite = 120.0
)

// FrameSurcharge returns the fixed additional price for a frame option.
// Unknown options price as "none".
func FrameSurcharge(f models.FrameOption) float64 {
	switch f {
	case models.FrameBlack:
		return FrameSurchargeBlack
	case models.FrameWhite:
		return FrameSurchargeWhite
	}
	return 0
}

// LineTotal is (unit price + frame surcharge) x quantity.
func LineTotal(line models.CartLine) float64 {
	return (line.UnitPrice + FrameSurcharge(line.Frame)) * float64(line.Quantity)
}

// CalculateOrderTotals derives the checkout breakdown from a cart snapshot.
// An empty cart yields all zeroes; shipping is never charged on a zero
// subtotal. Tax is rounded to the nearest base-currency unit.
func CalculateOrderTotals(lines []models.CartLine) models.OrderTotals {
	var subtotal float64
	for _, line := range lines {
		subtotal += LineTotal(line)
	}

	var shipping float64
	if subtotal > 0 && subtotal <= FreeShippingThreshold {
		shipping = FlatShippingFee
	}

	tax := math.Round(subtotal * VatRate)

	return models.OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
