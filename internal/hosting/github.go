package hosting

import (
	"context"
	"fmt"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
)

// githubService implements Service using the GitHub API
type githubService struct {
	client      *github.Client
	rateLimiter RateLimiter
}

// NewGitHubService creates a new GitHub-backed service
func NewGitHubService(token string) Service {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	return &githubService{
		client:      client,
		rateLimiter: NewRateLimiter(),
	}
}

// CheckAuth returns the login of the authenticated user
func (s *githubService) CheckAuth(ctx context.Context) (string, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	user, resp, err := s.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to check authentication: %w", err)
	}
	s.updateRateLimitFromResponse(resp)

	return user.GetLogin(), nil
}

// GetRepository verifies repository existence and access
func (s *githubService) GetRepository(ctx context.Context, repo domain.RepoRef) error {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	_, resp, err := s.client.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return fmt.Errorf("failed to access repository %s: %w", repo, err)
	}
	s.updateRateLimitFromResponse(resp)

	return nil
}

// IsCollaborator checks whether the user has direct access to the repository.
// A 404 from the API means "not a collaborator" and is not an error; any
// other failure is returned so the caller can distinguish "confirmed absent"
// from "could not determine".
func (s *githubService) IsCollaborator(ctx context.Context, repo domain.RepoRef, username string) (bool, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return false, err
	}

	isCollab, resp, err := s.client.Repositories.IsCollaborator(ctx, repo.Owner, repo.Name, username)
	if err != nil {
		return false, fmt.Errorf("failed to check collaborator status for %s on %s: %w", username, repo, err)
	}
	s.updateRateLimitFromResponse(resp)

	return isCollab, nil
}

// ListInvitations returns all pending invitations for the repository
func (s *githubService) ListInvitations(ctx context.Context, repo domain.RepoRef) ([]Invitation, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var allInvitations []Invitation
	opts := &github.ListOptions{PerPage: 100}

	for {
		invitations, resp, err := s.client.Repositories.ListInvitations(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list invitations for %s: %w", repo, err)
		}

		s.updateRateLimitFromResponse(resp)

		for _, inv := range invitations {
			allInvitations = append(allInvitations, Invitation{
				ID:           inv.GetID(),
				InviteeLogin: inv.GetInvitee().GetLogin(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage

		if err := s.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return allInvitations, nil
}

// DeleteInvitation cancels a pending invitation by id
func (s *githubService) DeleteInvitation(ctx context.Context, repo domain.RepoRef, invitationID int64) error {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := s.client.Repositories.DeleteInvitation(ctx, repo.Owner, repo.Name, invitationID)
	if err != nil {
		return fmt.Errorf("failed to delete invitation %d on %s: %w", invitationID, repo, err)
	}
	s.updateRateLimitFromResponse(resp)

	return nil
}

// RemoveCollaborator revokes direct access for the user
func (s *githubService) RemoveCollaborator(ctx context.Context, repo domain.RepoRef, username string) error {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := s.client.Repositories.RemoveCollaborator(ctx, repo.Owner, repo.Name, username)
	if err != nil {
		return fmt.Errorf("failed to remove collaborator %s from %s: %w", username, repo, err)
	}
	s.updateRateLimitFromResponse(resp)

	return nil
}

// AddCollaborator issues a new invitation at the given permission level
func (s *githubService) AddCollaborator(ctx context.Context, repo domain.RepoRef, username string, permission domain.Permission) error {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	opts := &github.RepositoryAddCollaboratorOptions{
		Permission: string(permission),
	}
	_, resp, err := s.client.Repositories.AddCollaborator(ctx, repo.Owner, repo.Name, username, opts)
	if err != nil {
		return fmt.Errorf("failed to invite %s to %s: %w", username, repo, err)
	}
	s.updateRateLimitFromResponse(resp)

	return nil
}

// updateRateLimitFromResponse updates the rate limiter from API response
func (s *githubService) updateRateLimitFromResponse(resp *github.Response) {
	if resp != nil && resp.Rate.Remaining >= 0 {
		s.rateLimiter.UpdateLimit(resp.Rate.Remaining, resp.Rate.Reset.Time)
	}
}
