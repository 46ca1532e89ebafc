package applications_test

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

	"github.com/rchand7/rozgar/backend/internal/applications"
	"github.com/rchand7/rozgar/backend/internal/middleware"
	"github.com/rchand7/rozgar/backend/internal/models"
	"github.com/rchand7/rozgar/backend/internal/queue"
	"github.com/rchand7/rozgar/backend/internal/store"
)

type fakeAppStore struct {
	apps []*models.Application
}

func (f *fakeAppStore) Insert(_ context.Context, a *models.Application) (string, error) {
	a.ID = primitive.NewObjectID()
	f.apps = append(f.apps, a)
	return a.ID.Hex(), nil
}

func (f *fakeAppStore) Exists(_ context.Context, jobID, applicantID string) (bool, error) {
	for _, a := range f.apps {
		if a.JobID.Hex() == jobID && a.Applicant.Hex() == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppStore) ListByApplicant(_ context.Context, applicantID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range f.apps {
		if a.Applicant.Hex() == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppStore) ListByJob(_ context.Context, jobID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range f.apps {
		if a.JobID.Hex() == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppStore) GetByID(_ context.Context, id string) (*models.Application, error) {
	for _, a := range f.apps {
		if a.ID.Hex() == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAppStore) UpdateStatus(_ context.Context, id, status string) error {
	for _, a := range f.apps {
		if a.ID.Hex() == id {
			a.Status = status
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeJobStore struct {
	jobs map[string]*models.Job
}

func (f *fakeJobStore) GetByID(_ context.Context, id string) (*models.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobStore) PushApplication(_ context.Context, jobID string, appID primitive.ObjectID) error {
	j, ok := f.jobs[jobID]
	if !ok {
		return store.ErrNotFound
	}
	j.Applications = append(j.Applications, appID)
	return nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type capturingPublisher struct {
	events []queue.ApplicationSubmittedEvent
}

func (p *capturingPublisher) PublishApplicationSubmitted(_ context.Context, e queue.ApplicationSubmittedEvent) error {
	p.events = append(p.events, e)
	return nil
}

type fixture struct {
	handler   *applications.Handler
	apps      *fakeAppStore
	jobsStore *fakeJobStore
	publisher *capturingPublisher
	job       *models.Job
	user      *models.User
}

func newFixture() *fixture {
	job := &models.Job{
		ID:        primitive.NewObjectID(),
		Title:     "Backend Engineer",
		CompanyID: primitive.NewObjectID(),
	}
	user := &models.User{
		ID:       primitive.NewObjectID(),
		FullName: "A",
	}
	apps := &fakeAppStore{}
	jobsStore := &fakeJobStore{jobs: map[string]*models.Job{job.ID.Hex(): job}}
	users := &fakeUserStore{users: map[string]*models.User{user.ID.Hex(): user}}
	publisher := &capturingPublisher{}
	return &fixture{
		handler:   applications.NewHandler(apps, jobsStore, users, publisher),
		apps:      apps,
		jobsStore: jobsStore,
		publisher: publisher,
		job:       job,
		user:      user,
	}
}

func (fx *fixture) apply(t *testing.T, jobID string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/api/v1/application/apply/{id}", fx.handler.Apply)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/application/apply/"+jobID, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), fx.user.ID.Hex()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestApply(t *testing.T) {
	fx := newFixture()

	rec := fx.apply(t, fx.job.ID.Hex())

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, fx.apps.apps, 1)
	assert.Equal(t, models.StatusPending, fx.apps.apps[0].Status)
	assert.Len(t, fx.jobsStore.jobs[fx.job.ID.Hex()].Applications, 1)

	require.Len(t, fx.publisher.events, 1)
	event := fx.publisher.events[0]
	assert.Equal(t, fx.job.ID.Hex(), event.JobID)
	assert.Equal(t, "Backend Engineer", event.JobTitle)
	assert.Equal(t, "A", event.ApplicantName)
}

func TestApply_Twice(t *testing.T) {
	fx := newFixture()

	require.Equal(t, http.StatusCreated, fx.apply(t, fx.job.ID.Hex()).Code)

	rec := fx.apply(t, fx.job.ID.Hex())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, fx.apps.apps, 1)
}

func TestApply_UnknownJob(t *testing.T) {
	fx := newFixture()

	rec := fx.apply(t, primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, fx.publisher.events)
}

func TestUpdateStatus(t *testing.T) {
	fx := newFixture()
	require.Equal(t, http.StatusCreated, fx.apply(t, fx.job.ID.Hex()).Code)
	appID := fx.apps.apps[0].ID.Hex()

	r := chi.NewRouter()
	r.Post("/api/v1/application/status/{id}/update", fx.handler.UpdateStatus)

	post := func(id, status string) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(map[string]string{"status": status})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/application/status/"+id+"/update", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, post(appID, "").Code)
	assert.Equal(t, http.StatusBadRequest, post(appID, "hired").Code)
	assert.Equal(t, http.StatusNotFound, post(primitive.NewObjectID().Hex(), models.StatusAccepted).Code)

	rec := post(appID, models.StatusAccepted)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusAccepted, fx.apps.apps[0].Status)
}

func TestGetAppliedJobs(t *testing.T) {
	fx := newFixture()
	require.Equal(t, http.StatusCreated, fx.apply(t, fx.job.ID.Hex()).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/application/get", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), fx.user.ID.Hex()))
	rec := httptest.NewRecorder()
	fx.handler.GetAppliedJobs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Application []struct {
			Status string `json:"status"`
			Job    *models.Job
		} `json:"application"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Application, 1)
	assert.Equal(t, models.StatusPending, body.Application[0].Status)
	require.NotNil(t, body.Application[0].Job)
	assert.Equal(t, "Backend Engineer", body.Application[0].Job.Title)
}
