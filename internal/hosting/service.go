package hosting

import (
	"context"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
)

// Invitation is a pending repository invitation record
type Invitation struct {
	ID           int64
	InviteeLogin string
}

// Service defines the hosting-service operations the reinvite flow needs
type Service interface {
	// CheckAuth verifies the configured credentials and returns the
	// authenticated user's login
	CheckAuth(ctx context.Context) (string, error)

	// GetRepository verifies that the repository exists and is accessible
	GetRepository(ctx context.Context, repo domain.RepoRef) error

	// IsCollaborator reports whether the user currently has direct access
	IsCollaborator(ctx context.Context, repo domain.RepoRef, username string) (bool, error)

	// ListInvitations returns all pending invitations for the repository
	ListInvitations(ctx context.Context, repo domain.RepoRef) ([]Invitation, error)

	// DeleteInvitation cancels a pending invitation by its identifier
	DeleteInvitation(ctx context.Context, repo domain.RepoRef, invitationID int64) error

	// RemoveCollaborator revokes a collaborator's access
	RemoveCollaborator(ctx context.Context, repo domain.RepoRef, username string) error

	// AddCollaborator invites the user at the given permission level
	AddCollaborator(ctx context.Context, repo domain.RepoRef, username string, permission domain.Permission) error
}
