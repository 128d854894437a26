package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrdersRepository stores submitted orders in the orders collection.
type OrdersRepository struct {
	collection *mongo.Collection
}

// NewOrdersRepository creates a new orders repository.
func NewOrdersRepository(db *MongoDB) *OrdersRepository {
	return &OrdersRepository{collection: db.Orders}
}

// Create inserts order, stamping its timestamps when unset.
func (r *OrdersRepository) Create(ctx context.Context, order *model.Order) error {
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, order)
	return err
}

// GetByID returns the order with the given ID.
func (r *OrdersRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders matching filter, newest first.
func (r *OrdersRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query := bson.M{}
	if filter.College != "" {
		query["college"] = filter.College
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	orders := []model.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets the status of an order. Admin notes are replaced only
// when notes is not empty.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, notes string) (*model.Order, error) {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if notes != "" {
		set["admin_notes"] = notes
	}

	var order model.Order
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes an order.
func (r *OrdersRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type orderStatsDocument struct {
	Total     int64 `bson:"total"`
	Recent    int64 `bson:"recent"`
	Pending   int64 `bson:"pending"`
	Completed int64 `bson:"completed"`
	Cancelled int64 `bson:"cancelled"`
	Products  int64 `bson:"products"`
}

func countIf(cond bson.M) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{cond, 1, 0}}}
}

// Stats aggregates order counts, optionally for one college. Orders
// created at or after since count as recent.
func (r *OrdersRepository) Stats(ctx context.Context, college string, since time.Time) (*model.OrderStats, error) {
	match := bson.M{}
	if college != "" {
		match["college"] = college
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"recent":    countIf(bson.M{"$gte": bson.A{"$created_at", since}}),
			"pending":   countIf(bson.M{"$eq": bson.A{"$status", model.OrderStatusPending}}),
			"completed": countIf(bson.M{"$eq": bson.A{"$status", model.OrderStatusCompleted}}),
			"cancelled": countIf(bson.M{"$eq": bson.A{"$status", model.OrderStatusCancelled}}),
			"products":  bson.M{"$sum": "$total_items"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	stats := &model.OrderStats{}
	if !cursor.Next(ctx) {
		return stats, cursor.Err()
	}
	var doc orderStatsDocument
	if err := cursor.Decode(&doc); err != nil {
		return nil, err
	}
	stats.TotalOrders = doc.Total
	stats.RecentOrders = doc.Recent
	stats.Pending = doc.Pending
	stats.Completed = doc.Completed
	stats.Cancelled = doc.Cancelled
	stats.TotalProducts = doc.Products
	return stats, nil
}
