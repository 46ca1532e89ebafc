package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the known application statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

// Application links an applicant to a job posting.
type Application struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	JobID     primitive.ObjectID `json:"job"        bson:"job"`
	Applicant primitive.ObjectID `json:"applicant"  bson:"applicant"`
	Status    string             `json:"status"     bson:"status"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
