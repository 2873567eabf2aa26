package reinvite

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
	"github.com/kurihiro0119/gh-reinvite/internal/hosting"
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

// recordingReporter captures progress for assertions
type recordingReporter struct {
	steps []string
	ticks []int
}

func (r *recordingReporter) Stepf(format string, args ...interface{})    { r.steps = append(r.steps, format) }
func (r *recordingReporter) Successf(format string, args ...interface{}) {}
func (r *recordingReporter) Warnf(format string, args ...interface{})    {}
func (r *recordingReporter) Tick(remaining int)                          { r.ticks = append(r.ticks, remaining) }
