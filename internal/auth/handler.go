package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rchand7/rozgar/backend/internal/api"
	"github.com/rchand7/rozgar/backend/internal/middleware"
	"github.com/rchand7/rozgar/backend/internal/models"
	"github.com/rchand7/rozgar/backend/internal/store"
	"github.com/rchand7/rozgar/backend/internal/token"
)

// BcryptCost matches the cost factor user passwords were historically
// hashed with; changing it would not invalidate existing hashes but keeps
// new ones comparable.
const BcryptCost = 10

// MinPasswordLength is the register-time password floor.
const MinPasswordLength = 8

// maxUploadSize bounds multipart request bodies.
const maxUploadSize = 10 << 20

// UserStore defines the interface for user persistence.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}

// FileStore defines the interface for uploaded-asset storage. Upload returns
// the public URL of the stored object.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Handler holds the account HTTP handlers.
type Handler struct {
	users  UserStore
	files  FileStore
	issuer *token.Issuer
}

func NewHandler(users UserStore, files FileStore, issuer *token.Issuer) *Handler {
	return &Handler{users: users, files: files, issuer: issuer}
}

type registerRequest struct {
	FullName    string `json:"fullname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// Register creates a new account. No token is issued; the user logs in
// separately.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	var photo *upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
		req = registerRequest{
			FullName:    r.FormValue("fullname"),
			Email:       r.FormValue("email"),
			PhoneNumber: r.FormValue("phoneNumber"),
			Password:    r.FormValue("password"),
			Role:        r.FormValue("role"),
		}
		var err error
		photo, err = readUpload(r, "file")
		if err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid file upload.")
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if req.FullName == "" || req.Email == "" || req.PhoneNumber == "" || req.Password == "" || req.Role == "" {
		api.Error(w, http.StatusBadRequest, "Something is missing")
		return
	}
	if len(req.Password) < MinPasswordLength {
		api.Error(w, http.StatusBadRequest, "Password must be at least 8 characters long.")
		return
	}

	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		api.Error(w, http.StatusBadRequest, "User already exists with this email.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("register: lookup email: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	photoURL := ""
	if photo != nil {
		url, err := h.files.Upload(r.Context(), objectKey("photos", photo.filename), photo.data, photo.contentType)
		if err != nil {
			log.Printf("register: photo upload: %v", err)
			api.Error(w, http.StatusInternalServerError, "Server error.")
			return
		}
		photoURL = url
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		log.Printf("register: hash password: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	user := &models.User{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    string(hashed),
		Role:        req.Role,
		Profile:     models.Profile{ProfilePhoto: photoURL, Skills: []string{}},
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		// Existence check and insert are not atomic; the unique email
		// index surfaces the losing concurrent registration here.
		if errors.Is(err, store.ErrDuplicate) {
			api.Error(w, http.StatusBadRequest, "User already exists with this email.")
			return
		}
		log.Printf("register: create user: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	api.Message(w, http.StatusCreated, "Account created successfully.")
}

// Login verifies credentials and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		api.Error(w, http.StatusBadRequest, "Something is missing")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		// Same message as a password mismatch so accounts cannot be
		// enumerated.
		api.Error(w, http.StatusBadRequest, "Incorrect email or password.")
		return
	}
	if err != nil {
		log.Printf("login: lookup email: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		api.Error(w, http.StatusBadRequest, "Incorrect email or password.")
		return
	}
	if req.Role != user.Role {
		api.Error(w, http.StatusBadRequest, "Account doesn't exist with the current role.")
		return
	}

	signed, err := h.issuer.Issue(user.ID.Hex())
	if err != nil {
		log.Printf("login: issue token: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(token.DefaultTTL / time.Second),
	})

	api.JSON(w, http.StatusOK, api.Envelope{
		"message": fmt.Sprintf("Welcome back, %s", user.FullName),
		"success": true,
		"user":    user,
	})
}

// Logout overwrites the cookie with an empty, immediately-expired value.
// The token itself stays cryptographically valid until natural expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	api.Message(w, http.StatusOK, "Logged out successfully.")
}

// updateRequest uses pointers so an absent field keeps the stored value
// while a provided empty string is applied.
type updateRequest struct {
	FullName    *string         `json:"fullname"`
	Email       *string         `json:"email"`
	PhoneNumber *string         `json:"phoneNumber"`
	Bio         *string         `json:"bio"`
	Skills      json.RawMessage `json:"skills"`
}

// UpdateProfile applies a partial update to the authenticated user's record.
// Photo and resume uploads use separate form fields.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req updateRequest
	var skills []string
	skillsSet := false
	var photo, resume *upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
		form := r.MultipartForm.Value
		req.FullName = formField(form, "fullname")
		req.Email = formField(form, "email")
		req.PhoneNumber = formField(form, "phoneNumber")
		req.Bio = formField(form, "bio")
		if vals, present := form["skills"]; present {
			skills = vals
			skillsSet = true
		}
		var err error
		if photo, err = readUpload(r, "profilePhoto"); err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid file upload.")
			return
		}
		if resume, err = readUpload(r, "resume"); err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid file upload.")
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
		if len(req.Skills) > 0 && string(req.Skills) != "null" {
			if err := json.Unmarshal(req.Skills, &skills); err != nil {
				api.Error(w, http.StatusBadRequest, "Skills must be an array.")
				return
			}
			skillsSet = true
		}
	}

	if req.Bio != nil && len(*req.Bio) > models.MaxBioLength {
		api.Error(w, http.StatusBadRequest, "Bio cannot exceed 500 characters.")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		log.Printf("update profile: load user: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Bio != nil {
		user.Profile.Bio = *req.Bio
	}
	if skillsSet {
		user.Profile.Skills = skills
	}

	if photo != nil {
		url, err := h.files.Upload(r.Context(), objectKey("photos", photo.filename), photo.data, photo.contentType)
		if err != nil {
			log.Printf("update profile: photo upload: %v", err)
			api.Error(w, http.StatusInternalServerError, "Server error.")
			return
		}
		user.Profile.ProfilePhoto = url
	}
	if resume != nil {
		url, err := h.files.Upload(r.Context(), objectKey("resumes", resume.filename), resume.data, resume.contentType)
		if err != nil {
			log.Printf("update profile: resume upload: %v", err)
			api.Error(w, http.StatusInternalServerError, "Server error.")
			return
		}
		user.Profile.Resume = url
		user.Profile.ResumeOriginalName = resume.filename
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			api.Error(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, store.ErrDuplicate):
			api.Error(w, http.StatusBadRequest, "User already exists with this email.")
		default:
			log.Printf("update profile: save user: %v", err)
			api.Error(w, http.StatusInternalServerError, "Server error.")
		}
		return
	}

	api.JSON(w, http.StatusOK, api.Envelope{
		"message": "Profile updated successfully.",
		"success": true,
		"user":    user,
	})
}

// upload is an in-memory multipart file.
type upload struct {
	data        []byte
	filename    string
	contentType string
}

// readUpload pulls one optional file out of a parsed multipart form.
func readUpload(r *http.Request, field string) (*upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &upload{
		data:        data,
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
	}, nil
}

// objectKey builds a collision-free object-store key, keeping the original
// extension.
func objectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), path.Ext(filename))
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formField returns a pointer to the first value when the field is present,
// nil when it is absent. Presence, not truthiness, decides whether a field
// overwrites the stored value.
func formField(form map[string][]string, key string) *string {
	vals, present := form[key]
	if !present || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
