package jobs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rchand7/rozgar/backend/internal/jobs"
	"github.com/rchand7/rozgar/backend/internal/middleware"
	"github.com/rchand7/rozgar/backend/internal/models"
	"github.com/rchand7/rozgar/backend/internal/store"
)

// fakeJobStore is an in-memory jobs.JobStore.
type fakeJobStore struct {
	jobs []*models.Job
}

func (f *fakeJobStore) Insert(_ context.Context, job *models.Job) (string, error) {
	job.ID = primitive.NewObjectID()
	f.jobs = append(f.jobs, job)
	return job.ID.Hex(), nil
}

func (f *fakeJobStore) List(_ context.Context, keyword string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeJobStore) GetByID(_ context.Context, id string) (*models.Job, error) {
	for _, j := range f.jobs {
		if j.ID.Hex() == id {
			cp := *j
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeJobStore) ListByCreator(_ context.Context, userID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.jobs {
		if j.CreatedBy.Hex() == userID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func postAs(h http.HandlerFunc, userID string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job/post", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestPost(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	companyID := primitive.NewObjectID().Hex()

	valid := map[string]interface{}{
		"title":        "Backend Engineer",
		"description":  "Go services",
		"requirements": "go, mongodb, docker",
		"salary":       12,
		"location":     "Pune",
		"jobType":      "Full-time",
		"experience":   2,
		"position":     3,
		"companyId":    companyID,
	}

	t.Run("success", func(t *testing.T) {
		fs := &fakeJobStore{}
		h := jobs.NewHandler(fs)

		rec := postAs(h.Post, userID, valid)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, fs.jobs, 1)
		job := fs.jobs[0]
		assert.Equal(t, []string{"go", "mongodb", "docker"}, job.Requirements)
		assert.Equal(t, userID, job.CreatedBy.Hex())
		assert.Equal(t, companyID, job.CompanyID.Hex())
	})

	t.Run("missing title", func(t *testing.T) {
		h := jobs.NewHandler(&fakeJobStore{})

		body := map[string]interface{}{}
		for k, v := range valid {
			body[k] = v
		}
		delete(body, "title")

		rec := postAs(h.Post, userID, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad company id", func(t *testing.T) {
		h := jobs.NewHandler(&fakeJobStore{})

		body := map[string]interface{}{}
		for k, v := range valid {
			body[k] = v
		}
		body["companyId"] = "not-an-id"

		rec := postAs(h.Post, userID, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetByID(t *testing.T) {
	fs := &fakeJobStore{}
	h := jobs.NewHandler(fs)

	job := &models.Job{Title: "Backend Engineer", CreatedBy: primitive.NewObjectID()}
	_, err := fs.Insert(context.Background(), job)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/api/v1/job/get/{id}", h.GetByID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/job/get/"+job.ID.Hex(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/job/get/"+primitive.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAdminJobs(t *testing.T) {
	fs := &fakeJobStore{}
	h := jobs.NewHandler(fs)

	mine := primitive.NewObjectID()
	other := primitive.NewObjectID()
	fs.Insert(context.Background(), &models.Job{Title: "Mine", CreatedBy: mine})
	fs.Insert(context.Background(), &models.Job{Title: "Theirs", CreatedBy: other})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job/getadminjobs", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), mine.Hex()))
	rec := httptest.NewRecorder()
	h.GetAdminJobs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Jobs []models.Job `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Jobs, 1)
	assert.Equal(t, "Mine", body.Jobs[0].Title)
}
