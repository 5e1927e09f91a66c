package controllers

import (
	"net/http"

	"alternus-gallery-io/api/pkg/services"
	"alternus-gallery-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListController serves the session wishlist and the side-by-side compare
// list. Both are plain ordered id lists; the compare list is capped.
type ListController struct {
	artworkService services.ArtworkService
	rdb            *redis.Client
}

func InitListController(artworkService services.ArtworkService, rdb *redis.Client) *ListController {
	return &ListController{
		artworkService: artworkService,
		rdb:            rdb,
	}
}

// GetWishlist handles GET /v1/wishlist.
func (lc *ListController) GetWishlist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		store := services.NewWishlistStore(ctx, lc.rdb, SessionID(c))
		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"wishlist": store.Ids()})
	}
}

// AddWishlistItem handles POST /v1/wishlist/:artworkid. Re-adding an artwork
// already on the list is a no-op.
func (lc *ListController) AddWishlistItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artworkID, err := lc.knownArtworkID(c)
		if err != nil {
			return
		}

		store := services.NewWishlistStore(ctx, lc.rdb, SessionID(c))
		if _, err := store.Add(ctx, artworkID); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Artwork added to wishlist", gin.H{"wishlist": store.Ids()})
	}
}

// RemoveWishlistItem handles DELETE /v1/wishlist/:artworkid.
func (lc *ListController) RemoveWishlistItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artworkID, err := primitive.ObjectIDFromHex(c.Param("artworkid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad artwork id"))
			return
		}

		store := services.NewWishlistStore(ctx, lc.rdb, SessionID(c))
		if _, err := store.Remove(ctx, artworkID); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Artwork removed from wishlist", gin.H{"wishlist": store.Ids()})
	}
}

// GetCompareList handles GET /v1/compare, hydrating the stored ids into full
// artworks for side-by-side display.
func (lc *ListController) GetCompareList() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		store := services.NewCompareStore(ctx, lc.rdb, SessionID(c))

		artworks := []interface{}{}
		for _, id := range store.Ids() {
			artwork, err := lc.artworkService.GetArtwork(ctx, id.Hex())
			if err != nil {
				// catalog entry removed since it was listed
				continue
			}
			artworks = append(artworks, artwork)
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"compareList": artworks})
	}
}

// AddCompareItem handles POST /v1/compare/:artworkid. Once the list is full
// further adds are silently ignored.
func (lc *ListController) AddCompareItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artworkID, err := lc.knownArtworkID(c)
		if err != nil {
			return
		}

		store := services.NewCompareStore(ctx, lc.rdb, SessionID(c))
		added, err := store.Add(ctx, artworkID)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		message := "Artwork added to compare list"
		if !added {
			message = "Compare list unchanged"
		}
		util.HandleSuccess(c, http.StatusOK, message, gin.H{"compareList": store.Ids()})
	}
}

// RemoveCompareItem handles DELETE /v1/compare/:artworkid.
func (lc *ListController) RemoveCompareItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artworkID, err := primitive.ObjectIDFromHex(c.Param("artworkid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad artwork id"))
			return
		}

		store := services.NewCompareStore(ctx, lc.rdb, SessionID(c))
		if _, err := store.Remove(ctx, artworkID); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Artwork removed from compare list", gin.H{"compareList": store.Ids()})
	}
}

// knownArtworkID parses the artwork id param and confirms the artwork exists.
// Error responses are written here; callers just return on error.
func (lc *ListController) knownArtworkID(c *gin.Context) (primitive.ObjectID, error) {
	ctx, cancel := WithTimeout()
	defer cancel()

	artworkID, err := primitive.ObjectIDFromHex(c.Param("artworkid"))
	if err != nil {
		util.HandleError(c, http.StatusBadRequest, errors.New("bad artwork id"))
		return primitive.NilObjectID, err
	}

	if _, err := lc.artworkService.GetArtwork(ctx, artworkID.Hex()); err != nil {
		util.HandleError(c, http.StatusNotFound, errors.New("artwork not found"))
		return primitive.NilObjectID, err
	}

	return artworkID, nil
}
