package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusly/lms-platform/internal/core/domain"
)

const collectionApplications = "instructor_applications"

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

// Insert assigns a uuid to the application and stores it.
func (r *ApplicationRepository) Insert(ctx context.Context, app *domain.InstructorApplication) (*domain.InstructorApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *app
	doc.ID = uuid.NewString()
	if _, err := r.col.InsertOne(ctx, &doc); err != nil {
		return nil, toStoreError("insert application", err)
	}
	return &doc, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.InstructorApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var app domain.InstructorApplication
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, toStoreError("find application", err)
	}
	return &app, nil
}

// List returns applications newest first, optionally filtered by status.
func (r *ApplicationRepository) List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.InstructorApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, toStoreError("list applications", err)
	}
	defer cursor.Close(ctx)

	var apps []*domain.InstructorApplication
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, toStoreError("list applications", err)
	}
	return apps, nil
}

// UpdateStatus only matches documents still in from, so two concurrent
// reviews cannot both succeed.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, reviewer string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "reviewed_by": reviewer, "reviewed_at": at}},
	)
	if err != nil {
		return toStoreError("update application status", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}
