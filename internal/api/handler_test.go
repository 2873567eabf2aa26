package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
	"github.com/kurihiro0119/gh-reinvite/internal/hosting"
	"github.com/kurihiro0119/gh-reinvite/internal/reinvite"
	"github.com/kurihiro0119/gh-reinvite/internal/storage"
)

type serviceMock struct{ mock.Mock }

var _ hosting.Service = (*serviceMock)(nil)

func (m *serviceMock) CheckAuth(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *serviceMock) GetRepository(ctx context.Context, repo domain.RepoRef) error {
	args := m.Called(ctx, repo)
	return args.Error(0)
}

func (m *serviceMock) IsCollaborator(ctx context.Context, repo domain.RepoRef, username string) (bool, error) {
	args := m.Called(ctx, repo, username)
	return args.Bool(0), args.Error(1)
}

func (m *serviceMock) ListInvitations(ctx context.Context, repo domain.RepoRef) ([]hosting.Invitation, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hosting.Invitation), args.Error(1)
}

func (m *serviceMock) DeleteInvitation(ctx context.Context, repo domain.RepoRef, invitationID int64) error {
	args := m.Called(ctx, repo, invitationID)
	return args.Error(0)
}

func (m *serviceMock) RemoveCollaborator(ctx context.Context, repo domain.RepoRef, username string) error {
	args := m.Called(ctx, repo, username)
	return args.Error(0)
}

func (m *serviceMock) AddCollaborator(ctx context.Context, repo domain.RepoRef, username string, permission domain.Permission) error {
	args := m.Called(ctx, repo, username, permission)
	return args.Error(0)
}

type storeMock struct{ mock.Mock }

var _ storage.RunStore = (*storeMock)(nil)

func (m *storeMock) SaveRun(ctx context.Context, run *domain.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *storeMock) ListRuns(ctx context.Context, owner, repo string, limit int) ([]*domain.Run, error) {
	args := m.Called(ctx, owner, repo, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Run), args.Error(1)
}

func (m *storeMock) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *storeMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestRouter(store storage.RunStore, svc hosting.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	executor := &reinvite.Executor{
		Service:  svc,
		Store:    store,
		Reporter: reinvite.NopReporter{},
	}
	return SetupRoutes(NewHandler(store, executor))
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&storeMock{}, &serviceMock{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
}

func TestListRuns(t *testing.T) {
	store := &storeMock{}
	store.On("ListRuns", mock.Anything, "org", "repo", 50).Return([]*domain.Run{
		{
			ID:         "run-1",
			Owner:      "org",
			Repo:       "repo",
			Username:   "bob",
			PriorState: domain.RelationshipCollaborator,
			Permission: domain.PermissionPush,
			Outcome:    domain.RunCompleted,
			StartedAt:  time.Now(),
			FinishedAt: time.Now(),
		},
	}, nil)

	router := newTestRouter(store, &serviceMock{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/repos/org/repo/runs", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []*domain.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, "bob", body.Data[0].Username)
}

func TestReinviteInvalidPermission(t *testing.T) {
	svc := &serviceMock{}
	router := newTestRouter(&storeMock{}, svc)

	payload := bytes.NewBufferString(`{"permission": "owner"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/repos/org/repo/collaborators/bob/reinvite", payload)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetRepository", mock.Anything, mock.Anything)
}

func TestReinviteSuccess(t *testing.T) {
	repo := domain.RepoRef{Owner: "org", Name: "repo"}

	svc := &serviceMock{}
	svc.On("GetRepository", mock.Anything, repo).Return(nil)
	svc.On("IsCollaborator", mock.Anything, repo, "bob").Return(false, nil)
	svc.On("ListInvitations", mock.Anything, repo).Return(nil, nil)
	svc.On("AddCollaborator", mock.Anything, repo, "bob", domain.PermissionPull).Return(nil)

	store := &storeMock{}
	store.On("SaveRun", mock.Anything, mock.Anything).Return(nil)

	router := newTestRouter(store, svc)

	payload := bytes.NewBufferString(`{"permission": "pull", "delay_seconds": 0}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/repos/org/repo/collaborators/bob/reinvite", payload)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data *domain.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, domain.RunCompleted, body.Data.Outcome)
	require.Equal(t, domain.RelationshipNone, body.Data.PriorState)

	svc.AssertExpectations(t)
	store.AssertExpectations(t)
}
