package reinvite

import (
	"context"
	"strings"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
	apperrors "github.com/kurihiro0119/gh-reinvite/internal/errors"
	"github.com/kurihiro0119/gh-reinvite/internal/hosting"
)

// Prober classifies a (repository, username) pair into its current
// collaborator state
type Prober struct {
	Service hosting.Service
}

// Probe determines the user's relationship to the repository. The checks run
// in order: direct collaborator first, then a scan of pending invitations.
// Invitee logins are matched case-insensitively because GitHub usernames are
// case-preserving but case-insensitive for identity. A failed check surfaces
// as a probe error rather than being conflated with "absent".
func (p *Prober) Probe(ctx context.Context, repo domain.RepoRef, username string) (domain.CollaboratorState, error) {
	isCollab, err := p.Service.IsCollaborator(ctx, repo, username)
	if err != nil {
		return domain.CollaboratorState{}, apperrors.NewProbeError("could not determine collaborator status", err)
	}
	if isCollab {
		return domain.ActiveCollaborator(), nil
	}

	invitations, err := p.Service.ListInvitations(ctx, repo)
	if err != nil {
		return domain.CollaboratorState{}, apperrors.NewProbeError("could not list pending invitations", err)
	}
	for _, inv := range invitations {
		if strings.EqualFold(inv.InviteeLogin, username) {
			return domain.PendingInvitation(inv.ID), nil
		}
	}

	return domain.NoRelationship(), nil
}
