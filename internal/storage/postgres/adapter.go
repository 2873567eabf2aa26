package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
	"github.com/kurihiro0119/gh-reinvite/internal/storage"
)

// postgresStore implements the RunStore interface for PostgreSQL
type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL run store
func NewPostgresStore(connStr string) (storage.RunStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &postgresStore{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

// Migrate runs database migrations
func (s *postgresStore) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		repo TEXT NOT NULL,
		username TEXT NOT NULL,
		prior_state TEXT NOT NULL,
		permission TEXT NOT NULL,
		delay_seconds INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_owner_repo ON runs(owner, repo);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveRun records a finished run
func (s *postgresStore) SaveRun(ctx context.Context, run *domain.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, owner, repo, username, prior_state, permission, delay_seconds, outcome, error_message, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, run.ID, run.Owner, run.Repo, run.Username, string(run.PriorState), string(run.Permission),
		run.DelaySeconds, string(run.Outcome), run.ErrorMessage, run.StartedAt, run.FinishedAt)
	return err
}

// ListRuns returns runs ordered newest first
func (s *postgresStore) ListRuns(ctx context.Context, owner, repo string, limit int) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, owner, repo, username, prior_state, permission, delay_seconds, outcome, error_message, started_at, finished_at
		FROM runs
	`
	args := []interface{}{}
	if owner != "" && repo != "" {
		query += ` WHERE owner = $1 AND repo = $2 ORDER BY started_at DESC LIMIT $3`
		args = append(args, owner, repo, limit)
	} else {
		query += ` ORDER BY started_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		run := &domain.Run{}
		var priorState, permission, outcome string
		if err := rows.Scan(&run.ID, &run.Owner, &run.Repo, &run.Username, &priorState, &permission,
			&run.DelaySeconds, &outcome, &run.ErrorMessage, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, err
		}
		run.PriorState = domain.RelationshipKind(priorState)
		run.Permission = domain.Permission(permission)
		run.Outcome = domain.RunOutcome(outcome)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Close closes the database connection
func (s *postgresStore) Close() error {
	return s.db.Close()
}
