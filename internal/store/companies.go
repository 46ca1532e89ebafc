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

// CompanyStore handles employer documents in MongoDB.
type CompanyStore struct {
	col *mongo.Collection
}

func NewCompanyStore(db *mongo.Database) *CompanyStore {
	return &CompanyStore{col: db.Collection("companies")}
}

func (s *CompanyStore) Insert(ctx context.Context, c *models.Company) (string, error) {
	c.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, c)
	if err != nil {
		return "", fmt.Errorf("insert company: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	c.ID = oid
	return oid.Hex(), nil
}

// GetByNameAndUser looks up a company registered by a user under a name.
func (s *CompanyStore) GetByNameAndUser(ctx context.Context, name, userID string) (*models.Company, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	var c models.Company
	err = s.col.FindOne(ctx, bson.M{"name": name, "userId": oid}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CompanyStore) ListByUser(ctx context.Context, userID string) ([]models.Company, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"userId": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var companies []models.Company
	if err := cur.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (s *CompanyStore) GetByID(ctx context.Context, id string) (*models.Company, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var c models.Company
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update replaces the stored document for c.ID.
func (s *CompanyStore) Update(ctx context.Context, c *models.Company) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
