package services

import (
	"context"
	"fmt"
	"time"

	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/util"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ArtworkServiceImpl implements the ArtworkService interface
type ArtworkServiceImpl struct {
	artworkCollection *mongo.Collection
	artistCollection  *mongo.Collection
}

// NewArtworkService creates a new instance of ArtworkService
func NewArtworkService(db *mongo.Database) ArtworkService {
	return &ArtworkServiceImpl{
		artworkCollection: db.Collection("Artwork"),
		artistCollection:  db.Collection("Artist"),
	}
}

// GetArtwork fetches a single artwork by hex id or slug.
func (as *ArtworkServiceImpl) GetArtwork(ctx context.Context, identifier string) (*models.Artwork, error) {
	filter := bson.M{"slug": identifier}
	if objectID, err := primitive.ObjectIDFromHex(identifier); err == nil {
		filter = bson.M{"_id": objectID}
	}

	var artwork models.Artwork
	if err := as.artworkCollection.FindOne(ctx, filter).Decode(&artwork); err != nil {
		return nil, fmt.Errorf("artwork not found")
	}

	return &artwork, nil
}

// GetArtworks lists artworks matching the filter, newest first by default.
func (as *ArtworkServiceImpl) GetArtworks(ctx context.Context, filter ArtworkFilter, pagination util.PaginationArgs) ([]models.Artwork, int64, error) {
	query := bson.M{}
	if filter.ArtistId != nil {
		query["artist_id"] = *filter.ArtistId
	}
	if filter.Style != "" {
		query["style"] = filter.Style
	}
	if filter.AvailableOnly {
		query["available"] = true
	}

	findOptions := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Skip)).
		SetSort(util.GetCreatedAtSortBson(pagination.Sort))

	cursor, err := as.artworkCollection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	artworks := make([]models.Artwork, 0)
	if err = cursor.All(ctx, &artworks); err != nil {
		return nil, 0, err
	}

	count, err := as.artworkCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return artworks, count, nil
}

// CreateArtwork inserts a new artwork after checking the artist exists.
func (as *ArtworkServiceImpl) CreateArtwork(ctx context.Context, req models.ArtworkRequest, image, imagePublicId string) (primitive.ObjectID, error) {
	now := time.Now()

	if err := common.Validate.Struct(&req); err != nil {
		return primitive.NilObjectID, err
	}

	count, err := as.artistCollection.CountDocuments(ctx, bson.M{"_id": req.ArtistId})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if count == 0 {
		return primitive.NilObjectID, fmt.Errorf("artist not found")
	}

	if image == "" {
		image = common.DEFAULT_ARTWORK_IMG
	}

	id := primitive.NewObjectID()
	artwork := models.Artwork{
		Id:            id,
		Slug:          as.uniqueSlug(ctx, req.Title, id),
		Title:         req.Title,
		Price:         req.Price,
		Image:         image,
		ImagePublicId: imagePublicId,
		Medium:        req.Medium,
		Dimensions:    req.Dimensions,
		Style:         req.Style,
		ArtistId:      req.ArtistId,
		Available:     req.Available,
		PreOrder:      req.PreOrder,
		CreatedAt:     now,
		ModifiedAt:    now,
	}

	if _, err := as.artworkCollection.InsertOne(ctx, artwork); err != nil {
		return primitive.NilObjectID, err
	}

	return id, nil
}

// UpdateArtwork overwrites the mutable catalog fields.
func (as *ArtworkServiceImpl) UpdateArtwork(ctx context.Context, artworkID primitive.ObjectID, req models.ArtworkRequest) error {
	if err := common.Validate.Struct(&req); err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"title":       req.Title,
		"price":       req.Price,
		"medium":      req.Medium,
		"dimensions":  req.Dimensions,
		"style":       req.Style,
		"artist_id":   req.ArtistId,
		"available":   req.Available,
		"pre_order":   req.PreOrder,
		"modified_at": time.Now(),
	}}

	result, err := as.artworkCollection.UpdateOne(ctx, bson.M{"_id": artworkID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("artwork not found")
	}

	return nil
}

// DeleteArtwork removes the artwork and returns its image public id so the
// caller can destroy the hosted asset.
func (as *ArtworkServiceImpl) DeleteArtwork(ctx context.Context, artworkID primitive.ObjectID) (string, error) {
	var artwork models.Artwork
	if err := as.artworkCollection.FindOne(ctx, bson.M{"_id": artworkID}).Decode(&artwork); err != nil {
		return "", fmt.Errorf("artwork not found")
	}

	if _, err := as.artworkCollection.DeleteOne(ctx, bson.M{"_id": artworkID}); err != nil {
		return "", err
	}

	return artwork.ImagePublicId, nil
}

func (as *ArtworkServiceImpl) uniqueSlug(ctx context.Context, title string, id primitive.ObjectID) string {
	base := slug.Make(title)

	count, err := as.artworkCollection.CountDocuments(ctx, bson.M{"slug": base})
	if err != nil {
		util.LogError("checking slug uniqueness", err)
	}
	if count > 0 {
		hex := id.Hex()
		return base + "-" + hex[len(hex)-6:]
	}

	return base
}
