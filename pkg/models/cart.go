package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FrameOption is the closed set of frames a cart line can carry.
type FrameOption string

const (
	FrameNone  FrameOption = "none"
	FrameBlack FrameOption = "black"
	FrameWhite FrameOption = "white"
)

// Valid reports whether f is one of the known frame options.
func (f FrameOption) Valid() bool {
	switch f {
	case FrameNone, FrameBlack, FrameWhite:
		return true
	}
	return false
}

// CartLine is one artwork in a session cart. Price and display fields are
// snapshotted from the catalog at add time. At most one line exists per
// artwork id.
type CartLine struct {
	ArtworkId primitive.ObjectID `json:"artworkId"`
	Title     string             `json:"title"`
	Thumbnail string             `json:"thumbnail"`
	UnitPrice float64            `json:"unitPrice"`
	Frame     FrameOption        `json:"frame"`
	Quantity  int                `json:"quantity"`
	AddedAt   time.Time          `json:"addedAt"`
}

type CartLineRequest struct {
	ArtworkId primitive.ObjectID `json:"artworkId" validate:"required"`
	Frame     FrameOption        `json:"frame" validate:"omitempty,oneof=none black white"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// CartSummary is the cart view returned to clients.
type CartSummary struct {
	Lines     []CartLine  `json:"lines"`
	ItemCount int         `json:"itemCount"`
	Totals    OrderTotals `json:"totals"`
}
