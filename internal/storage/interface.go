package storage

import (
	"context"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
)

// RunStore is the abstract interface for the run history store
type RunStore interface {
	// SaveRun records a finished run
	SaveRun(ctx context.Context, run *domain.Run) error

	// ListRuns returns runs ordered newest first, optionally filtered by
	// repository. Empty owner and repo list runs across all repositories.
	ListRuns(ctx context.Context, owner, repo string, limit int) ([]*domain.Run, error)

	// Migration
	Migrate(ctx context.Context) error

	// Connection management
	Close() error
}
