package controllers

import (
	"context"
	"net/http"

	"alternus-gallery-io/api/internal"
	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/services"
	"alternus-gallery-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ArtistController struct {
	artistService  services.ArtistService
	artworkService services.ArtworkService
	rdb            *redis.Client
}

func InitArtistController(artistService services.ArtistService, artworkService services.ArtworkService, rdb *redis.Client) *ArtistController {
	return &ArtistController{
		artistService:  artistService,
		artworkService: artworkService,
		rdb:            rdb,
	}
}

// GetArtists handles GET /v1/artists.
func (ac *ArtistController) GetArtists() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		paginationArgs := common.GetPaginationArgs(c)
		artists, count, err := ac.artistService.GetArtists(ctx, paginationArgs)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "success", gin.H{"artists": artists}, gin.H{
			"pagination": util.Pagination{
				Limit: paginationArgs.Limit,
				Skip:  paginationArgs.Skip,
				Count: count,
			},
		})
	}
}

// GetArtist handles GET /v1/artists/:artistid. Accepts an object id or a
// slug and returns the artist together with their works.
func (ac *ArtistController) GetArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artist, err := ac.artistService.GetArtist(ctx, c.Param("artistid"))
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		filter := services.ArtworkFilter{ArtistId: &artist.Id}
		works, _, err := ac.artworkService.GetArtworks(ctx, filter, common.GetPaginationArgs(c))
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{
			"artist":   artist,
			"artworks": works,
		})
	}
}

// CreateArtist handles POST /v1/admin/artists.
func (ac *ArtistController) CreateArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var artistReq models.ArtistRequest
		if err := c.ShouldBindJSON(&artistReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&artistReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		artistID, err := ac.artistService.CreateArtist(ctx, artistReq)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		go func() {
			if err := internal.PublishCacheMessage(context.Background(), ac.rdb, internal.CacheInvalidateArtists, artistID.Hex()); err != nil {
				util.LogError("Failed to publish artist cache invalidation", err)
			}
		}()

		util.HandleSuccess(c, http.StatusCreated, "Artist created successfully", gin.H{"artistId": artistID.Hex()})
	}
}

// UpdateArtist handles PUT /v1/admin/artists/:artistid.
func (ac *ArtistController) UpdateArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artistID, err := primitive.ObjectIDFromHex(c.Param("artistid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad artist id"))
			return
		}

		var artistReq models.ArtistRequest
		if err := c.ShouldBindJSON(&artistReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&artistReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := ac.artistService.UpdateArtist(ctx, artistID, artistReq); err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		go func() {
			if err := internal.PublishCacheMessage(context.Background(), ac.rdb, internal.CacheInvalidateArtist, artistID.Hex()); err != nil {
				util.LogError("Failed to publish artist cache invalidation", err)
			}
		}()

		util.HandleSuccess(c, http.StatusOK, "Artist updated successfully", gin.H{"artistId": artistID.Hex()})
	}
}
