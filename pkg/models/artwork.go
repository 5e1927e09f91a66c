package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PreOrderInfo holds release metadata for artworks sold ahead of availability.
type PreOrderInfo struct {
	ReleaseDate     time.Time `bson:"release_date" json:"releaseDate"`
	DiscountPercent float64   `bson:"discount_percent" json:"discountPercent"`
}

type Artwork struct {
	Id            primitive.ObjectID `bson:"_id" json:"_id"`
	Slug          string             `bson:"slug" json:"slug"`
	Title         string             `bson:"title" json:"title"`
	Price         float64            `bson:"price" json:"price"`
	Image         string             `bson:"image" json:"image"`
	ImagePublicId string             `bson:"image_public_id" json:"imagePublicId,omitempty"`
	Medium        string             `bson:"medium" json:"medium"`
	Dimensions    string             `bson:"dimensions" json:"dimensions"`
	Style         string             `bson:"style" json:"style"`
	ArtistId      primitive.ObjectID `bson:"artist_id" json:"artistId"`
	Available     bool               `bson:"available" json:"available"`
	PreOrder      *PreOrderInfo      `bson:"pre_order,omitempty" json:"preOrder,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	ModifiedAt    time.Time          `bson:"modified_at" json:"modifiedAt"`
}

type ArtworkRequest struct {
	Title      string             `json:"title" validate:"required,min=2,max=140"`
	Price      float64            `json:"price" validate:"required,gt=0"`
	Image      string             `json:"image" validate:"omitempty,url"`
	Medium     string             `json:"medium" validate:"required"`
	Dimensions string             `json:"dimensions" validate:"required"`
	Style      string             `json:"style" validate:"required"`
	ArtistId   primitive.ObjectID `json:"artistId" validate:"required"`
	Available  bool               `json:"available"`
	PreOrder   *PreOrderInfo      `json:"preOrder,omitempty"`
}
