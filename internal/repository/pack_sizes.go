package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PackSizesRepository stores pack size rule sets. At most one set is
// active; creating a set deactivates the others.
type PackSizesRepository struct {
	collection *mongo.Collection
}

// NewPackSizesRepository creates a new pack sizes repository.
func NewPackSizesRepository(db *MongoDB) *PackSizesRepository {
	return &PackSizesRepository{collection: db.PackSizeRules}
}

// GetActive returns the active rule set, or nil when none is stored.
func (r *PackSizesRepository) GetActive(ctx context.Context) (*model.PackSizeRuleSet, error) {
	var set model.PackSizeRuleSet
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&set)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// Create stores rules as the new active rule set.
func (r *PackSizesRepository) Create(ctx context.Context, rules model.PackSizeRules, createdBy string) (*model.PackSizeRuleSet, error) {
	now := time.Now().UTC()
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	)
	if err != nil {
		return nil, err
	}

	latest, err := r.latestVersion(ctx)
	if err != nil {
		return nil, err
	}

	set := model.PackSizeRuleSet{
		ID:        primitive.NewObjectID(),
		Rules:     rules,
		Active:    true,
		Version:   latest + 1,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
	}
	if _, err := r.collection.InsertOne(ctx, set); err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *PackSizesRepository) latestVersion(ctx context.Context) (int, error) {
	var last model.PackSizeRuleSet
	err := r.collection.FindOne(
		ctx,
		bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}),
	).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Version, nil
}

// Update replaces the rules of an existing set and bumps its version.
func (r *PackSizesRepository) Update(ctx context.Context, id primitive.ObjectID, rules model.PackSizeRules, updatedBy string) (*model.PackSizeRuleSet, error) {
	set := bson.M{
		"rules":      rules,
		"updated_at": time.Now().UTC(),
	}
	if updatedBy != "" {
		set["updated_by"] = updatedBy
	}

	var updated model.PackSizeRuleSet
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRuleSetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// List returns rule sets, newest first.
func (r *PackSizesRepository) List(ctx context.Context, limit int) ([]model.PackSizeRuleSet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	sets := []model.PackSizeRuleSet{}
	if err := cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}
