package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job is a single posting in the jobs collection.
type Job struct {
	ID              primitive.ObjectID   `json:"id"              bson:"_id,omitempty"`
	Title           string               `json:"title"           bson:"title"`
	Description     string               `json:"description"     bson:"description"`
	Requirements    []string             `json:"requirements"    bson:"requirements"`
	Salary          int                  `json:"salary"          bson:"salary"`
	ExperienceLevel int                  `json:"experienceLevel" bson:"experienceLevel"`
	Location        string               `json:"location"        bson:"location"`
	JobType         string               `json:"jobType"         bson:"jobType"`
	Position        int                  `json:"position"        bson:"position"`
	CompanyID       primitive.ObjectID   `json:"company"         bson:"company"`
	CreatedBy       primitive.ObjectID   `json:"created_by"      bson:"created_by"`
	Applications    []primitive.ObjectID `json:"applications"    bson:"applications"`
	CreatedAt       time.Time            `json:"created_at"      bson:"created_at"`
}

// PostJobRequest is the JSON body for POST /api/v1/job/post.
type PostJobRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"` // comma-separated, split server-side
	Salary       int    `json:"salary"`
	Location     string `json:"location"`
	JobType      string `json:"jobType"`
	Experience   int    `json:"experience"`
	Position     int    `json:"position"`
	CompanyID    string `json:"companyId"`
}
