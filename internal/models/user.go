package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can register with.
const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// MaxBioLength caps the profile bio field.
const MaxBioLength = 500

// Profile is the embedded profile sub-document of a User.
type Profile struct {
	Bio                string               `json:"bio"                bson:"bio"`
	Skills             []string             `json:"skills"             bson:"skills"`
	ProfilePhoto       string               `json:"profilePhoto"       bson:"profilePhoto"`
	Resume             string               `json:"resume"             bson:"resume"`
	ResumeOriginalName string               `json:"resumeOriginalName" bson:"resumeOriginalName"`
	Company            []primitive.ObjectID `json:"company"            bson:"company"`
}

// User is a single account document in the users collection.
type User struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	FullName    string             `json:"fullname"    bson:"fullname"`
	Email       string             `json:"email"       bson:"email"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	Password    string             `json:"-"           bson:"password"` // bcrypt hash, never serialized
	Role        string             `json:"role"        bson:"role"`
	Profile     Profile            `json:"profile"     bson:"profile"`
	CreatedAt   time.Time          `json:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"  bson:"updated_at"`
}

// LoginRequest is the JSON body for POST /api/v1/user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
