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

// ApplicationStore handles job applications in MongoDB.
type ApplicationStore struct {
	col *mongo.Collection
}

func NewApplicationStore(db *mongo.Database) *ApplicationStore {
	return &ApplicationStore{col: db.Collection("applications")}
}

func (s *ApplicationStore) Insert(ctx context.Context, a *models.Application) (string, error) {
	a.CreatedAt = time.Now()
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	res, err := s.col.InsertOne(ctx, a)
	if err != nil {
		return "", fmt.Errorf("insert application: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	a.ID = oid
	return oid.Hex(), nil
}

// Exists reports whether the applicant already applied to the job.
func (s *ApplicationStore) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	jid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return false, ErrNotFound
	}
	aid, err := primitive.ObjectIDFromHex(applicantID)
	if err != nil {
		return false, ErrNotFound
	}
	n, err := s.col.CountDocuments(ctx, bson.M{"job": jid, "applicant": aid})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *ApplicationStore) ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	aid, err := primitive.ObjectIDFromHex(applicantID)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"applicant": aid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationStore) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	jid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"job": jid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationStore) GetByID(ctx context.Context, id string) (*models.Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var a models.Application
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *ApplicationStore) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
