package controllers

import (
	"context"
	"net/http"
	"strings"

	"alternus-gallery-io/api/email"
	"alternus-gallery-io/api/internal"
	"alternus-gallery-io/api/internal/common"
	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/services"
	"alternus-gallery-io/api/pkg/util"

	creditcard "github.com/durango/go-credit-card"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderController struct {
	orderService services.OrderService
	emailPool    *email.EmailWorkerPool
	rdb          *redis.Client
}

func InitOrderController(orderService services.OrderService, emailPool *email.EmailWorkerPool, rdb *redis.Client) *OrderController {
	return &OrderController{
		orderService: orderService,
		emailPool:    emailPool,
		rdb:          rdb,
	}
}

// Checkout handles POST /v1/checkout. Validates the card, freezes the
// session cart into an order and clears the cart. Card details are checked
// and discarded, never stored.
func (oc *OrderController) Checkout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var checkoutReq models.CheckoutRequest
		if err := c.ShouldBindJSON(&checkoutReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&checkoutReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		card := creditcard.Card{
			Number:  checkoutReq.Card.Number,
			Cvv:     checkoutReq.Card.Cvv,
			Month:   checkoutReq.Card.Month,
			Year:    checkoutReq.Card.Year,
			Company: creditcard.Company{},
		}
		if err := card.Validate(true); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		store := services.NewCartStore(ctx, oc.rdb, SessionID(c))
		lines := store.Lines()
		if len(lines) == 0 {
			util.HandleError(c, http.StatusBadRequest, errors.New("cart is empty"))
			return
		}

		customer := models.OrderCustomer{
			Name:    checkoutReq.Name,
			Email:   checkoutReq.Email,
			Address: checkoutReq.Address,
			City:    checkoutReq.City,
			Country: checkoutReq.Country,
			Zip:     checkoutReq.Zip,
		}

		order, err := oc.orderService.CreateOrder(ctx, customer, lines)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		if err := store.Clear(ctx); err != nil {
			util.LogError("Failed to clear cart after checkout", err)
		}

		oc.emailPool.Enqueue(email.EmailJob{Type: "order_confirmation", Order: *order})

		go func() {
			if err := internal.PublishCacheMessage(context.Background(), oc.rdb, internal.CacheInvalidateOrders, order.OrderNumber); err != nil {
				util.LogError("Failed to publish order cache invalidation", err)
			}
		}()

		util.HandleSuccess(c, http.StatusCreated, "Order placed successfully", gin.H{"order": order})
	}
}

// TrackOrder handles GET /v1/orders/:ordernumber. The customer email must
// match so an order number alone cannot expose an address.
func (oc *OrderController) TrackOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		orderNumber := strings.ToUpper(strings.TrimSpace(c.Param("ordernumber")))
		orderEmail := strings.TrimSpace(c.Query("email"))
		if common.IsEmptyString(orderEmail) {
			util.HandleError(c, http.StatusBadRequest, errors.New("email query parameter is required"))
			return
		}

		order, err := oc.orderService.GetOrderByNumber(ctx, orderNumber)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}
		if !strings.EqualFold(order.Customer.Email, orderEmail) {
			util.HandleError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"order": order})
	}
}

// GetOrders handles GET /v1/admin/orders.
func (oc *OrderController) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		paginationArgs := common.GetPaginationArgs(c)
		orders, count, err := oc.orderService.GetOrders(ctx, paginationArgs)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "success", gin.H{"orders": orders}, gin.H{
			"pagination": util.Pagination{
				Limit: paginationArgs.Limit,
				Skip:  paginationArgs.Skip,
				Count: count,
			},
		})
	}
}

// GetOrder handles GET /v1/admin/orders/:orderid.
func (oc *OrderController) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		orderID, err := primitive.ObjectIDFromHex(c.Param("orderid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad order id"))
			return
		}

		order, err := oc.orderService.GetOrderByID(ctx, orderID)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, errors.New("order not found"))
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"order": order})
	}
}

// UpdateOrderStatus handles PATCH /v1/admin/orders/:orderid. Moving an order
// to shipped notifies the customer.
func (oc *OrderController) UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		orderID, err := primitive.ObjectIDFromHex(c.Param("orderid"))
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, errors.New("bad order id"))
			return
		}

		var statusReq models.OrderStatusRequest
		if err := c.ShouldBindJSON(&statusReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&statusReq); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := oc.orderService.UpdateOrderStatus(ctx, orderID, statusReq.Status); err != nil {
			util.HandleError(c, http.StatusNotFound, err)
			return
		}

		if statusReq.Status == models.OrderShipped {
			order, err := oc.orderService.GetOrderByID(ctx, orderID)
			if err != nil {
				util.LogError("Failed to load order for shipped notification", err)
			} else {
				oc.emailPool.Enqueue(email.EmailJob{Type: "order_shipped", Order: *order})
			}
		}

		go func() {
			if err := internal.PublishCacheMessage(context.Background(), oc.rdb, internal.CacheInvalidateOrder, orderID.Hex()); err != nil {
				util.LogError("Failed to publish order cache invalidation", err)
			}
		}()

		util.HandleSuccess(c, http.StatusOK, "Order status updated", gin.H{"orderId": orderID.Hex(), "status": statusReq.Status})
	}
}
