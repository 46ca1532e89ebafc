package applications

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rchand7/rozgar/backend/internal/api"
	"github.com/rchand7/rozgar/backend/internal/middleware"
	"github.com/rchand7/rozgar/backend/internal/models"
	"github.com/rchand7/rozgar/backend/internal/queue"
	"github.com/rchand7/rozgar/backend/internal/store"
)

// ApplicationStore defines the interface for application persistence.
type ApplicationStore interface {
	Insert(ctx context.Context, a *models.Application) (string, error)
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// JobStore is the slice of job persistence the application handlers need.
type JobStore interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	PushApplication(ctx context.Context, jobID string, appID primitive.ObjectID) error
}

// UserStore resolves applicant records for applicant listings and events.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Publisher sends application events to the broker.
type Publisher interface {
	PublishApplicationSubmitted(ctx context.Context, event queue.ApplicationSubmittedEvent) error
}

// Handler holds the application HTTP handlers.
type Handler struct {
	apps      ApplicationStore
	jobs      JobStore
	users     UserStore
	publisher Publisher
}

// NewHandler wires the application handlers. publisher may be nil when
// events are disabled.
func NewHandler(apps ApplicationStore, jobs JobStore, users UserStore, publisher Publisher) *Handler {
	return &Handler{apps: apps, jobs: jobs, users: users, publisher: publisher}
}

// Apply submits an application for the job in the URL.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	jobID := chi.URLParam(r, "id")

	job, err := h.jobs.GetByID(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Job not found.")
			return
		}
		log.Printf("apply: load job: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	applied, err := h.apps.Exists(r.Context(), jobID, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("apply: check existing: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if applied {
		api.Error(w, http.StatusBadRequest, "You have already applied for this job.")
		return
	}

	applicantID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}
	app := &models.Application{
		JobID:     job.ID,
		Applicant: applicantID,
		Status:    models.StatusPending,
	}
	appID, err := h.apps.Insert(r.Context(), app)
	if err != nil {
		log.Printf("apply: insert: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if err := h.jobs.PushApplication(r.Context(), jobID, app.ID); err != nil {
		log.Printf("apply: link job: %v", err)
	}

	if h.publisher != nil {
		event := queue.ApplicationSubmittedEvent{
			ApplicationID: appID,
			JobID:         jobID,
			JobTitle:      job.Title,
			CompanyID:     job.CompanyID.Hex(),
			ApplicantID:   userID,
			SubmittedAt:   app.CreatedAt,
		}
		if applicant, err := h.users.GetByID(r.Context(), userID); err == nil {
			event.ApplicantName = applicant.FullName
		}
		if err := h.publisher.PublishApplicationSubmitted(r.Context(), event); err != nil {
			log.Printf("apply: publish event: %v", err)
		}
	}

	api.Message(w, http.StatusCreated, "Job applied successfully.")
}

// appliedJob pairs an application with the posting it targets.
type appliedJob struct {
	models.Application
	Job *models.Job `json:"job"`
}

// GetAppliedJobs lists the caller's applications, newest first, with the
// job each one targets.
func (h *Handler) GetAppliedJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	apps, err := h.apps.ListByApplicant(r.Context(), userID)
	if err != nil {
		log.Printf("applied jobs: list: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	out := make([]appliedJob, 0, len(apps))
	for _, a := range apps {
		entry := appliedJob{Application: a}
		if job, err := h.jobs.GetByID(r.Context(), a.JobID.Hex()); err == nil {
			entry.Job = job
		}
		out = append(out, entry)
	}

	api.JSON(w, http.StatusOK, api.Envelope{"application": out, "success": true})
}

// applicant pairs an application with the user who submitted it.
type applicant struct {
	models.Application
	Applicant *models.User `json:"applicant"`
}

// GetApplicants lists everyone who applied to a job.
func (h *Handler) GetApplicants(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	job, err := h.jobs.GetByID(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Job not found.")
			return
		}
		log.Printf("applicants: load job: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	apps, err := h.apps.ListByJob(r.Context(), jobID)
	if err != nil {
		log.Printf("applicants: list: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	out := make([]applicant, 0, len(apps))
	for _, a := range apps {
		entry := applicant{Application: a}
		if user, err := h.users.GetByID(r.Context(), a.Applicant.Hex()); err == nil {
			entry.Applicant = user
		}
		out = append(out, entry)
	}

	api.JSON(w, http.StatusOK, api.Envelope{
		"job":        job,
		"applicants": out,
		"success":    true,
	})
}

// UpdateStatus lets a recruiter accept or reject an application.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Status == "" {
		api.Error(w, http.StatusBadRequest, "Status is required.")
		return
	}
	if !models.ValidStatus(req.Status) {
		api.Error(w, http.StatusBadRequest, "Invalid status.")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.apps.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Application not found.")
			return
		}
		log.Printf("update status: load: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	if err := h.apps.UpdateStatus(r.Context(), id, req.Status); err != nil {
		log.Printf("update status: %v", err)
		api.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	api.Message(w, http.StatusOK, "Status updated successfully.")
}
