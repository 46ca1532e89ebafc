package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is a single employer document in the companies collection.
type Company struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	Name        string             `json:"name"        bson:"name"`
	Description string             `json:"description" bson:"description"`
	Website     string             `json:"website"     bson:"website"`
	Location    string             `json:"location"    bson:"location"`
	Logo        string             `json:"logo"        bson:"logo"`
	UserID      primitive.ObjectID `json:"userId"      bson:"userId"`
	CreatedAt   time.Time          `json:"created_at"  bson:"created_at"`
}
