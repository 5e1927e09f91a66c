package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderTotals is the checkout price breakdown, all in base currency.
type OrderTotals struct {
	Subtotal float64 `bson:"subtotal" json:"subtotal"`
	Shipping float64 `bson:"shipping" json:"shipping"`
	Tax      float64 `bson:"tax" json:"tax"`
	Total    float64 `bson:"total" json:"total"`
}

// OrderLine is a purchased cart line frozen into an order.
type OrderLine struct {
	ArtworkId primitive.ObjectID `bson:"artwork_id" json:"artworkId"`
	Title     string             `bson:"title" json:"title"`
	Thumbnail string             `bson:"thumbnail" json:"thumbnail"`
	Frame     FrameOption        `bson:"frame" json:"frame"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	UnitPrice float64            `bson:"unit_price" json:"unitPrice"`
	LineTotal float64            `bson:"line_total" json:"lineTotal"`
}

type OrderCustomer struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	Country string `bson:"country" json:"country"`
	Zip     string `bson:"zip" json:"zip"`
}

type Order struct {
	Id          primitive.ObjectID `bson:"_id" json:"_id"`
	OrderNumber string             `bson:"order_number" json:"orderNumber"`
	Customer    OrderCustomer      `bson:"customer" json:"customer"`
	Lines       []OrderLine        `bson:"lines" json:"lines"`
	Totals      OrderTotals        `bson:"totals" json:"totals"`
	Status      OrderStatus        `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	ModifiedAt  time.Time          `bson:"modified_at" json:"modifiedAt"`
}

// CheckoutCard is validated at checkout and never persisted.
type CheckoutCard struct {
	Number string `json:"number" validate:"required"`
	Cvv    string `json:"cvv" validate:"required,len=3"`
	Month  string `json:"month" validate:"required"`
	Year   string `json:"year" validate:"required"`
}

type CheckoutRequest struct {
	Name    string       `json:"name" validate:"required,min=2"`
	Email   string       `json:"email" validate:"required,email"`
	Address string       `json:"address" validate:"required"`
	City    string       `json:"city" validate:"required"`
	Country string       `json:"country" validate:"required"`
	Zip     string       `json:"zip" validate:"required"`
	Card    CheckoutCard `json:"card" validate:"required"`
}

type OrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}
