package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"alternus-gallery-io/api/pkg/models"
	"alternus-gallery-io/api/pkg/pricing"
	"alternus-gallery-io/api/pkg/util"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Unambiguous alphabet for order numbers read over the phone.
const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const orderNumberLength = 8

type OrderServiceImpl struct {
	orderCollection *mongo.Collection
}

func NewOrderService(db *mongo.Database) OrderService {
	return &OrderServiceImpl{
		orderCollection: db.Collection("Order"),
	}
}

// CreateOrder freezes the cart lines into an order with server-side totals.
// Totals are always recomputed here; client-supplied amounts are never
// trusted.
func (os *OrderServiceImpl) CreateOrder(ctx context.Context, customer models.OrderCustomer, lines []models.CartLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, errors.New("cannot create an order from an empty cart")
	}

	now := time.Now()
	orderLines := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, models.OrderLine{
			ArtworkId: line.ArtworkId,
			Title:     line.Title,
			Thumbnail: line.Thumbnail,
			Frame:     line.Frame,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: pricing.LineTotal(line),
		})
	}

	order := models.Order{
		Id:          primitive.NewObjectID(),
		OrderNumber: newOrderNumber(),
		Customer:    customer,
		Lines:       orderLines,
		Totals:      pricing.CalculateOrderTotals(lines),
		Status:      models.OrderPending,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	if _, err := os.orderCollection.InsertOne(ctx, order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (os *OrderServiceImpl) GetOrderByID(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := os.orderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &order, nil
}

func (os *OrderServiceImpl) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := os.orderCollection.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&order); err != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &order, nil
}

func (os *OrderServiceImpl) GetOrders(ctx context.Context, pagination util.PaginationArgs) ([]models.Order, int64, error) {
	findOptions := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Skip)).
		SetSort(util.GetCreatedAtSortBson(pagination.Sort))

	cursor, err := os.orderCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}

	count, err := os.orderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (os *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown order status: %s", status)
	}

	update := bson.M{"$set": bson.M{"status": status, "modified_at": time.Now()}}
	result, err := os.orderCollection.UpdateOne(ctx, bson.M{"_id": orderID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}

func newOrderNumber() string {
	b := make([]byte, orderNumberLength)
	if _, err := rand.Read(b); err != nil {
		// fall back to a time-derived number rather than failing checkout
		return fmt.Sprintf("T%d", time.Now().UnixNano()%1e7)
	}
	for i := range b {
		b[i] = orderNumberAlphabet[int(b[i])%len(orderNumberAlphabet)]
	}
	return string(b)
}
