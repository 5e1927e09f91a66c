package controllers

import (
	"context"
	"net/http"
	"strconv"

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

type ArtworkController struct {
	artworkService services.ArtworkService
	rdb            *redis.Client
}

func InitArtworkController(artworkService services.ArtworkService, rdb *redis.Client) *ArtworkController {
	return &ArtworkController{
		artworkService: artworkService,
		rdb:            rdb,
	}
}

// GetArtworks handles GET /v1/artworks with optional artist, style and
// available filters.
func (ac *ArtworkController) GetArtworks() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var filter services.ArtworkFilter
		if artist := c.Query("artist"); artist != "" {
			artistID, err := primitive.ObjectIDFromHex(artist)
			if err != nil {
				util.HandleError(c, http.StatusBadRequest, errors.New("bad artist id"))
				return
			}
			filter.ArtistId = &artistID
		}
		filter.Style = c.Query("style")
		filter.AvailableOnly, _ = strconv.ParseBool(c.DefaultQuery("available", "false"))

		paginationArgs := common.GetPaginationArgs(c)
		artworks, count, err := ac.artworkService.GetArtworks(ctx, filter, paginationArgs)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "success", gin.H{"artworks": artworks}, gin.H{
			"pagination": util.Pagination{
				Limit: paginationArgs.Limit,
				Skip:  paginationArgs.Skip,
				Count: count,
			},
		})
	}
}

// GetArtwork handles GET /v1/artworks/:artworkid. Accepts an object id or a
// slug.
func (ac *ArtworkController) GetArtwork() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artwork, err := ac.artworkService.GetArtwork(ctx, c.Param("artworkid"))
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"artwork": artwork})
	}
}

// CreateArtwork handles POST /v1/admin/artworks. Accepts multipart form data
// with an optional image file that is pushed to cloudinary.
func (ac *ArtworkController) CreateArtwork() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artistID, err := primitive.ObjectIDFromHex(c.PostForm("artistId"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad artist id"))
			return
		}

		price, err := strconv.ParseFloat(c.PostForm("price"), 64)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad price"))
			return
		}
		available, _ := strconv.ParseBool(c.DefaultPostForm("available", "true"))

		artworkReq := models.ArtworkRequest{
			Title:      c.PostForm("title"),
			Price:      price,
			Medium:     c.PostForm("medium"),
			Dimensions: c.PostForm("dimensions"),
			Style:      c.PostForm("style"),
			ArtistId:   artistID,
			Available:  available,
		}
		if err := common.Validate.Struct(&artworkReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		var image, imagePublicId string
		if file, err := c.FormFile("image"); err == nil {
			src, err := file.Open()
			if err != nil {
				util.HandleError(c, http.StatusBadRequest, err)
				return
			}
			defer src.Close()

			uploadRes, err := util.ImageUploadHelper(src)
			if err != nil {
				util.HandleError(c, http.StatusInternalServerError, err)
				return
			}
			image = uploadRes.SecureURL
			imagePublicId = uploadRes.PublicID
		}

		artworkID, err := ac.artworkService.CreateArtwork(ctx, artworkReq, image, imagePublicId)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		go func() {
			if err := internal.PublishCacheMessage(context.Background(), ac.rdb, internal.CacheInvalidateArtworks, artworkID.Hex()); err != nil {
				util.LogError("Failed to publish artwork cache invalidation", err)
			}
		}()

		util.HandleSuccess(c, http.StatusCreated, "Artwork created successfully", gin.H{"artworkId": artworkID.Hex()})
	}
}

// UpdateArtwork handles PUT /v1/admin/artworks/:artworkid.
func (ac *ArtworkController) UpdateArtwork() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artworkID, err := primitive.ObjectIDFromHex(c.Param("artworkid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad artwork id"))
			return
		}

		var artworkReq models.ArtworkRequest
		if err := c.ShouldBindJSON(&artworkReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&artworkReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := ac.artworkService.UpdateArtwork(ctx, artworkID, artworkReq); err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		go func() {
			if err := internal.PublishCacheMessage(context.Background(), ac.rdb, internal.CacheInvalidateArtwork, artworkID.Hex()); err != nil {
				util.LogError("Failed to publish artwork cache invalidation", err)
			}
		}()

		util.HandleSuccess(c, http.StatusOK, "Artwork updated successfully", gin.H{"artworkId": artworkID.Hex()})
	}
}

// DeleteArtwork handles DELETE /v1/admin/artworks/:artworkid and destroys
// the cloudinary asset once the document is gone.
func (ac *ArtworkController) DeleteArtwork() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artworkID, err := primitive.ObjectIDFromHex(c.Param("artworkid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad artwork id"))
			return
		}

		imagePublicId, err := ac.artworkService.DeleteArtwork(ctx, artworkID)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		if imagePublicId != "" {
			go func() {
				if _, err := util.ImageDeletionHelper(imagePublicId); err != nil {
					util.LogError("Failed to delete artwork image", err)
				}
			}()
		}

		go func() {
			if err := internal.PublishCacheMessage(context.Background(), ac.rdb, internal.CacheInvalidateArtworks, artworkID.Hex()); err != nil {
				util.LogError("Failed to publish artwork cache invalidation", err)
			}
		}()

		util.HandleSuccess(c, http.StatusOK, "Artwork deleted successfully", gin.H{"artworkId": artworkID.Hex()})
	}
}
