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

// DraftsRepository persists order drafts in the drafts collection. Drafts
// expire through a TTL index on updated_at.
type DraftsRepository struct {
	collection *mongo.Collection
}

// NewDraftsRepository creates a new drafts repository.
func NewDraftsRepository(db *MongoDB) *DraftsRepository {
	return &DraftsRepository{collection: db.Drafts}
}

// Load returns the draft id of college.
func (r *DraftsRepository) Load(ctx context.Context, college, id string) (*model.Draft, error) {
	var draft model.Draft
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "college": college}).Decode(&draft)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// Save upserts the draft.
func (r *DraftsRepository) Save(ctx context.Context, draft *model.Draft) error {
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = time.Now().UTC()
	}
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": draft.ID, "college": draft.College},
		draft,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Delete removes the draft. Deleting a missing draft is not an error.
func (r *DraftsRepository) Delete(ctx context.Context, college, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "college": college})
	return err
}
