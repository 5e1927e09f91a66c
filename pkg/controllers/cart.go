package controllers

import (
	"net/http"
	"time"

	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/services"
	"alternus-gallery-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartController struct {
	artworkService services.ArtworkService
	rdb            *redis.Client
}

func InitCartController(artworkService services.ArtworkService, rdb *redis.Client) *CartController {
	return &CartController{
		artworkService: artworkService,
		rdb:            rdb,
	}
}

// GetCart handles GET /v1/cart for the current session.
func (cc *CartController) GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		store := services.NewCartStore(ctx, cc.rdb, SessionID(c))
		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"cart": store.Summary()})
	}
}

// AddCartItem handles POST /v1/cart. The artwork's price and display fields
// are snapshotted at add time; adding an artwork already in the cart leaves
// its line untouched.
func (cc *CartController) AddCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var cartReq models.CartLineRequest
		if err := c.ShouldBindJSON(&cartReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&cartReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		artwork, err := cc.artworkService.GetArtwork(ctx, cartReq.ArtworkId.Hex())
		if err != nil {
			util.HandleError(c, http.StatusNotFound, errors.New("artwork not found"))
			return
		}
		if !artwork.Available && artwork.PreOrder == nil {
			util.HandleError(c, http.StatusConflict, errors.New("artwork is no longer available"))
			return
		}

		frame := cartReq.Frame
		if frame == "" {
			frame = models.FrameNone
		}

		store := services.NewCartStore(ctx, cc.rdb, SessionID(c))
		added, err := store.Add(ctx, models.CartLine{
			ArtworkId: artwork.Id,
			Title:     artwork.Title,
			Thumbnail: artwork.Image,
			UnitPrice: artwork.Price,
			Frame:     frame,
			Quantity:  1,
			AddedAt:   time.Now(),
		})
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		message := "Artwork added to cart"
		if !added {
			message = "Artwork already in cart"
		}
		util.HandleSuccess(c, http.StatusOK, message, gin.H{"cart": store.Summary()})
	}
}

// UpdateCartItem handles PUT /v1/cart/:artworkid.
func (cc *CartController) UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artworkID, err := primitive.ObjectIDFromHex(c.Param("artworkid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad artwork id"))
			return
		}

		var quantityReq models.CartQuantityRequest
		if err := c.ShouldBindJSON(&quantityReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&quantityReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		store := services.NewCartStore(ctx, cc.rdb, SessionID(c))
		updated, err := store.UpdateQuantity(ctx, artworkID, quantityReq.Quantity)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}
		if !updated {
			util.HandleError(c, http.StatusNotFound, errors.New("artwork not in cart"))
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Cart updated", gin.H{"cart": store.Summary()})
	}
}

// RemoveCartItem handles DELETE /v1/cart/:artworkid. Removing an artwork that
// is not in the cart is a no-op.
func (cc *CartController) RemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		artworkID, err := primitive.ObjectIDFromHex(c.Param("artworkid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad artwork id"))
			return
		}

		store := services.NewCartStore(ctx, cc.rdb, SessionID(c))
		if _, err := store.Remove(ctx, artworkID); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Artwork removed from cart", gin.H{"cart": store.Summary()})
	}
}

// ClearCart handles DELETE /v1/cart.
func (cc *CartController) ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		store := services.NewCartStore(ctx, cc.rdb, SessionID(c))
		if err := store.Clear(ctx); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Cart cleared", gin.H{"cart": store.Summary()})
	}
}
