package reinvite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
	apperrors "github.com/kurihiro0119/gh-reinvite/internal/errors"
	"github.com/kurihiro0119/gh-reinvite/internal/hosting"
)

var testRepo = domain.RepoRef{Owner: "org", Name: "repo"}

func TestProbeActiveCollaborator(t *testing.T) {
	svc := &serviceMock{}
	svc.On("IsCollaborator", mock.Anything, testRepo, "bob").Return(true, nil)

	prober := &Prober{Service: svc}
	state, err := prober.Probe(context.Background(), testRepo, "bob")
	require.NoError(t, err)
	require.Equal(t, domain.RelationshipCollaborator, state.Kind)

	// The invitation list is never consulted for an active collaborator
	svc.AssertNotCalled(t, "ListInvitations", mock.Anything, mock.Anything)
}

func TestProbePendingInvitationCaseInsensitive(t *testing.T) {
	svc := &serviceMock{}
	svc.On("IsCollaborator", mock.Anything, testRepo, "alice").Return(false, nil)
	svc.On("ListInvitations", mock.Anything, testRepo).Return([]hosting.Invitation{
		{ID: 7, InviteeLogin: "someone-else"},
		{ID: 42, InviteeLogin: "Alice"},
	}, nil)

	prober := &Prober{Service: svc}
	state, err := prober.Probe(context.Background(), testRepo, "alice")
	require.NoError(t, err)
	require.Equal(t, domain.RelationshipPendingInvite, state.Kind)
	require.Equal(t, int64(42), state.InvitationID)
}

func TestProbeNoRelationship(t *testing.T) {
	svc := &serviceMock{}
	svc.On("IsCollaborator", mock.Anything, testRepo, "bob").Return(false, nil)
	svc.On("ListInvitations", mock.Anything, testRepo).Return([]hosting.Invitation{
		{ID: 7, InviteeLogin: "someone-else"},
	}, nil)

	prober := &Prober{Service: svc}
	state, err := prober.Probe(context.Background(), testRepo, "bob")
	require.NoError(t, err)
	require.Equal(t, domain.RelationshipNone, state.Kind)
}

func TestProbeCollaboratorCheckFailure(t *testing.T) {
	svc := &serviceMock{}
	svc.On("IsCollaborator", mock.Anything, testRepo, "bob").Return(false, errors.New("network down"))

	prober := &Prober{Service: svc}
	_, err := prober.Probe(context.Background(), testRepo, "bob")
	require.Error(t, err)
	require.True(t, apperrors.IsProbeFailure(err))

	svc.AssertNotCalled(t, "ListInvitations", mock.Anything, mock.Anything)
}

func TestProbeInvitationListFailure(t *testing.T) {
	svc := &serviceMock{}
	svc.On("IsCollaborator", mock.Anything, testRepo, "bob").Return(false, nil)
	svc.On("ListInvitations", mock.Anything, testRepo).Return(nil, errors.New("bad response"))

	prober := &Prober{Service: svc}
	_, err := prober.Probe(context.Background(), testRepo, "bob")
	require.Error(t, err)
	require.True(t, apperrors.IsProbeFailure(err))
}
