package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Artist struct {
	Id         primitive.ObjectID `bson:"_id" json:"_id"`
	Slug       string             `bson:"slug" json:"slug"`
	Name       string             `bson:"name" json:"name"`
	Bio        string             `bson:"bio" json:"bio"`
	Portrait   string             `bson:"portrait" json:"portrait"`
	Origin     string             `bson:"origin" json:"origin"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	ModifiedAt time.Time          `bson:"modified_at" json:"modifiedAt"`
}

type ArtistRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Bio      string `json:"bio" validate:"omitempty,max=2000"`
	Portrait string `json:"portrait" validate:"omitempty,url"`
	Origin   string `json:"origin" validate:"omitempty,max=100"`
}
