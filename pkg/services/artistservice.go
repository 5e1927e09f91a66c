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

type ArtistServiceImpl struct {
	artistCollection *mongo.Collection
}

func NewArtistService(db *mongo.Database) ArtistService {
	return &ArtistServiceImpl{
		artistCollection: db.Collection("Artist"),
	}
}

// GetArtist fetches a single artist by hex id or slug.
func (as *ArtistServiceImpl) GetArtist(ctx context.Context, identifier string) (*models.Artist, error) {
	filter := bson.M{"slug": identifier}
	if objectID, err := primitive.ObjectIDFromHex(identifier); err == nil {
		filter = bson.M{"_id": objectID}
	}

	var artist models.Artist
	if err := as.artistCollection.FindOne(ctx, filter).Decode(&artist); err != nil {
		return nil, fmt.Errorf("artist not found")
	}

	return &artist, nil
}

func (as *ArtistServiceImpl) GetArtists(ctx context.Context, pagination util.PaginationArgs) ([]models.Artist, int64, error) {
	findOptions := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Skip)).
		SetSort(util.GetCreatedAtSortBson(pagination.Sort))

	cursor, err := as.artistCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	artists := make([]models.Artist, 0)
	if err = cursor.All(ctx, &artists); err != nil {
		return nil, 0, err
	}

	count, err := as.artistCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	return artists, count, nil
}

func (as *ArtistServiceImpl) CreateArtist(ctx context.Context, req models.ArtistRequest) (primitive.ObjectID, error) {
	now := time.Now()

	if err := common.Validate.Struct(&req); err != nil {
		return primitive.NilObjectID, err
	}

	portrait := req.Portrait
	if portrait == "" {
		portrait = common.DEFAULT_PORTRAIT_IMG
	}

	id := primitive.NewObjectID()
	artist := models.Artist{
		Id:         id,
		Slug:       as.uniqueSlug(ctx, req.Name, id),
		Name:       req.Name,
		Bio:        req.Bio,
		Portrait:   portrait,
		Origin:     req.Origin,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if _, err := as.artistCollection.InsertOne(ctx, artist); err != nil {
		return primitive.NilObjectID, err
	}

	return id, nil
}

func (as *ArtistServiceImpl) UpdateArtist(ctx context.Context, artistID primitive.ObjectID, req models.ArtistRequest) error {
	if err := common.Validate.Struct(&req); err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"name":        req.Name,
		"bio":         req.Bio,
		"portrait":    req.Portrait,
		"origin":      req.Origin,
		"modified_at": time.Now(),
	}}

	result, err := as.artistCollection.UpdateOne(ctx, bson.M{"_id": artistID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("artist not found")
	}

	return nil
}

func (as *ArtistServiceImpl) uniqueSlug(ctx context.Context, name string, id primitive.ObjectID) string {
	base := slug.Make(name)

	count, err := as.artistCollection.CountDocuments(ctx, bson.M{"slug": base})
	if err != nil {
		util.LogError("checking slug uniqueness", err)
	}
	if count > 0 {
		hex := id.Hex()
		return base + "-" + hex[len(hex)-6:]
	}

	return base
}
