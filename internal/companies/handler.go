package companies

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

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rchand7/rozgar/backend/internal/api"
	"github.com/rchand7/rozgar/backend/internal/middleware"
	"github.com/rchand7/rozgar/backend/internal/models"
	"github.com/rchand7/rozgar/backend/internal/store"
)

const maxUploadSize = 10 << 20

// CompanyStore defines the interface for company persistence.
type CompanyStore interface {
	Insert(ctx context.Context, c *models.Company) (string, error)
	GetByNameAndUser(ctx context.Context, name, userID string) (*models.Company, error)
	ListByUser(ctx context.Context, userID string) ([]models.Company, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
	Update(ctx context.Context, c *models.Company) error
}

// FileStore uploads logo images and returns their public URL.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Handler holds the company HTTP handlers.
type Handler struct {
	companies CompanyStore
	files     FileStore
}

func NewHandler(companies CompanyStore, files FileStore) *Handler {
	return &Handler{companies: companies, files: files}
}

// Register creates a company owned by the caller.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req struct {
		CompanyName string `json:"companyName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.CompanyName == "" {
		api.Error(w, http.StatusBadRequest, "Company name is required.")
		return
	}

	if _, err := h.companies.GetByNameAndUser(r.Context(), req.CompanyName, userID); err == nil {
		api.Error(w, http.StatusBadRequest, "You can't register the same company again.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("register company: lookup: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	company := &models.Company{Name: req.CompanyName, UserID: oid}
	if _, err := h.companies.Insert(r.Context(), company); err != nil {
		log.Printf("register company: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	api.JSON(w, http.StatusCreated, api.Envelope{
		"message": "Company registered successfully.",
		"success": true,
		"company": company,
	})
}

// Get lists the caller's companies.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	companies, err := h.companies.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("list companies: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}
	api.JSON(w, http.StatusOK, api.Envelope{"companies": companies, "success": true})
}

// GetByID returns a single company.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	company, err := h.companies.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Company not found.")
			return
		}
		log.Printf("get company: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}
	api.JSON(w, http.StatusOK, api.Envelope{"company": company, "success": true})
}

type updateCompanyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Location    *string `json:"location"`
}

// Update applies a partial update and an optional logo upload.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req updateCompanyRequest
	var logoData []byte
	var logoName, logoType string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
		form := r.MultipartForm.Value
		req.Name = firstValue(form, "name")
		req.Description = firstValue(form, "description")
		req.Website = firstValue(form, "website")
		req.Location = firstValue(form, "location")

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			logoData, err = io.ReadAll(file)
			if err != nil {
				api.Error(w, http.StatusBadRequest, "Invalid file upload.")
				return
			}
			logoName = header.Filename
			logoType = header.Header.Get("Content-Type")
		} else if !errors.Is(err, http.ErrMissingFile) {
			api.Error(w, http.StatusBadRequest, "Invalid file upload.")
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	company, err := h.companies.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Company not found.")
			return
		}
		log.Printf("update company: load: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if company.UserID.Hex() != userID {
		api.Error(w, http.StatusForbidden, "You don't own this company.")
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Location != nil {
		company.Location = *req.Location
	}

	if logoData != nil {
		key := fmt.Sprintf("logos/%s%s", uuid.New().String(), path.Ext(logoName))
		url, err := h.files.Upload(r.Context(), key, logoData, logoType)
		if err != nil {
			log.Printf("update company: logo upload: %v", err)
			api.Error(w, http.StatusInternalServerError, "Server error.")
			return
		}
		company.Logo = url
	}

	if err := h.companies.Update(r.Context(), company); err != nil {
		log.Printf("update company: save: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	api.JSON(w, http.StatusOK, api.Envelope{
		"message": "Company information updated.",
		"success": true,
		"company": company,
	})
}

func firstValue(form map[string][]string, key string) *string {
	vals, present := form[key]
	if !present || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
