package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusly/lms-platform/internal/core/domain"
)

const collectionProfiles = "profiles"

// ProfileRepository stores profiles with _id set to the provider account id.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

// Upsert overwrites the profile fields, keeping created_at from the first write.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.ProfileRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"email":      p.Email,
			"full_name":  p.DisplayName,
			"role":       p.Role,
			"updated_at": p.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": p.CreatedAt},
	}
	_, err := r.col.UpdateByID(ctx, p.ID, update, options.Update().SetUpsert(true))
	return toStoreError("upsert profile", err)
}

func (r *ProfileRepository) Insert(ctx context.Context, p *domain.ProfileRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return toStoreError("insert profile", err)
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.ProfileRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.ProfileRecord
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, toStoreError("find profile", err)
	}
	return &p, nil
}
