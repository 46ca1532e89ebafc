package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rchand7/rozgar/backend/internal/api"
	"github.com/rchand7/rozgar/backend/internal/middleware"
	"github.com/rchand7/rozgar/backend/internal/models"
	"github.com/rchand7/rozgar/backend/internal/store"
)

// JobStore defines the interface for job persistence.
type JobStore interface {
	Insert(ctx context.Context, job *models.Job) (string, error)
	List(ctx context.Context, keyword string) ([]models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	ListByCreator(ctx context.Context, userID string) ([]models.Job, error)
}

// Handler holds the job-posting HTTP handlers.
type Handler struct {
	jobs JobStore
}

func NewHandler(jobs JobStore) *Handler {
	return &Handler{jobs: jobs}
}

// Post creates a job posting owned by the authenticated recruiter.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req models.PostJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" || req.Description == "" || req.Requirements == "" ||
		req.Salary == 0 || req.Location == "" || req.JobType == "" ||
		req.Position == 0 || req.CompanyID == "" {
		api.Error(w, http.StatusBadRequest, "Something is missing")
		return
	}

	companyID, err := primitive.ObjectIDFromHex(req.CompanyID)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid company id.")
		return
	}
	creatorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	requirements := strings.Split(req.Requirements, ",")
	for i := range requirements {
		requirements[i] = strings.TrimSpace(requirements[i])
	}

	job := &models.Job{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    requirements,
		Salary:          req.Salary,
		ExperienceLevel: req.Experience,
		Location:        req.Location,
		JobType:         req.JobType,
		Position:        req.Position,
		CompanyID:       companyID,
		CreatedBy:       creatorID,
	}
	if _, err := h.jobs.Insert(r.Context(), job); err != nil {
		log.Printf("post job: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	api.JSON(w, http.StatusCreated, api.Envelope{
		"message": "New job created successfully.",
		"success": true,
		"job":     job,
	})
}

// Get lists postings, optionally filtered by ?keyword=.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	jobs, err := h.jobs.List(r.Context(), keyword)
	if err != nil {
		log.Printf("list jobs: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	api.JSON(w, http.StatusOK, api.Envelope{"jobs": jobs, "success": true})
}

// GetByID returns a single posting.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Job not found.")
			return
		}
		log.Printf("get job: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}
	api.JSON(w, http.StatusOK, api.Envelope{"job": job, "success": true})
}

// GetAdminJobs lists the postings created by the caller.
func (h *Handler) GetAdminJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	jobs, err := h.jobs.ListByCreator(r.Context(), userID)
	if err != nil {
		log.Printf("list admin jobs: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	api.JSON(w, http.StatusOK, api.Envelope{"jobs": jobs, "success": true})
}
