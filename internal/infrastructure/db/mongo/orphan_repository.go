package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusly/lms-platform/internal/core/domain"
)

const collectionOrphans = "orphaned_accounts"

// OrphanRepository is the Mongo-backed orphan ledger.
type OrphanRepository struct {
	col *mongo.Collection
}

func NewOrphanRepository(db *mongo.Database) *OrphanRepository {
	return &OrphanRepository{col: db.Collection(collectionOrphans)}
}

func (r *OrphanRepository) Record(ctx context.Context, o *domain.OrphanedAccount) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"email":        o.Email,
			"display_name": o.DisplayName,
			"role":         o.Role,
			"reason":       o.Reason,
			"last_attempt": o.LastAttempt,
			"instructor":   o.Instructor,
		},
		"$inc":         bson.M{"attempts": o.Attempts},
		"$setOnInsert": bson.M{"first_seen": o.FirstSeen},
	}
	_, err := r.col.UpdateByID(ctx, o.AccountID, update, options.Update().SetUpsert(true))
	return toStoreError("record orphan", err)
}

// List returns the least recently attempted orphans first.
func (r *OrphanRepository) List(ctx context.Context, limit int) ([]*domain.OrphanedAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_attempt", Value: 1}, {Key: "first_seen", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, toStoreError("list orphans", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.OrphanedAccount
	if err := cursor.All(ctx, &out); err != nil {
		return nil, toStoreError("list orphans", err)
	}
	return out, nil
}

func (r *OrphanRepository) Resolve(ctx context.Context, accountID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": accountID})
	return toStoreError("resolve orphan", err)
}
