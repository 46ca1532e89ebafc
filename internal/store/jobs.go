package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rchand7/rozgar/backend/internal/models"
)

// JobStore handles job postings in MongoDB.
type JobStore struct {
	col *mongo.Collection
}

func NewJobStore(db *mongo.Database) *JobStore {
	return &JobStore{col: db.Collection("jobs")}
}

func (s *JobStore) Insert(ctx context.Context, job *models.Job) (string, error) {
	job.CreatedAt = time.Now()
	if job.Applications == nil {
		job.Applications = []primitive.ObjectID{}
	}
	res, err := s.col.InsertOne(ctx, job)
	if err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	job.ID = oid
	return oid.Hex(), nil
}

// List returns postings newest first, optionally filtered by a keyword
// matched against title and description.
func (s *JobStore) List(ctx context.Context, keyword string) ([]models.Job, error) {
	filter := bson.M{}
	if keyword != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"title": bson.M{"$regex": keyword, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": keyword, "$options": "i"}},
		}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []models.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobStore) GetByID(ctx context.Context, id string) (*models.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var job models.Job
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListByCreator returns the postings created by a user, newest first.
func (s *JobStore) ListByCreator(ctx context.Context, userID string) ([]models.Job, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"created_by": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []models.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// PushApplication appends an application reference to a job posting.
func (s *JobStore) PushApplication(ctx context.Context, jobID string, appID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$push": bson.M{"applications": appID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
