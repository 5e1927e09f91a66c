package services

import (
	"context"
	"time"

	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArtworkFilter narrows catalog queries.
type ArtworkFilter struct {
	ArtistId      *primitive.ObjectID
	Style         string
	AvailableOnly bool
}

// ArtworkService defines catalog operations over artworks.
type ArtworkService interface {
	GetArtwork(ctx context.Context, identifier string) (*models.Artwork, error)
	GetArtworks(ctx context.Context, filter ArtworkFilter, pagination util.PaginationArgs) ([]models.Artwork, int64, error)
	CreateArtwork(ctx context.Context, req models.ArtworkRequest, image, imagePublicId string) (primitive.ObjectID, error)
	UpdateArtwork(ctx context.Context, artworkID primitive.ObjectID, req models.ArtworkRequest) error
	DeleteArtwork(ctx context.Context, artworkID primitive.ObjectID) (string, error)
}

// ArtistService defines catalog operations over artists.
type ArtistService interface {
	GetArtist(ctx context.Context, identifier string) (*models.Artist, error)
	GetArtists(ctx context.Context, pagination util.PaginationArgs) ([]models.Artist, int64, error)
	CreateArtist(ctx context.Context, req models.ArtistRequest) (primitive.ObjectID, error)
	UpdateArtist(ctx context.Context, artistID primitive.ObjectID, req models.ArtistRequest) error
}

// OrderService owns checkout persistence and the back-office order views.
type OrderService interface {
	CreateOrder(ctx context.Context, customer models.OrderCustomer, lines []models.CartLine) (*models.Order, error)
	GetOrderByID(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	GetOrders(ctx context.Context, pagination util.PaginationArgs) ([]models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) error
}

// ChatService owns support conversations.
type ChatService interface {
	StartChat(ctx context.Context, name, email string) (*models.Chat, error)
	AppendMessage(ctx context.Context, req models.ChatMessageRequest) (*models.ChatMessage, error)
	GetChat(ctx context.Context, chatID string, since time.Time) (*models.Chat, error)
	ListChats(ctx context.Context, pagination util.PaginationArgs) ([]models.Chat, int64, error)
	MarkRead(ctx context.Context, chatID string) error
}
