package domain

import "time"

// RunOutcome represents the final result of a reinvite run
type RunOutcome string

const (
	RunCompleted RunOutcome = "completed"
	RunDeclined  RunOutcome = "declined"
	RunFailed    RunOutcome = "failed"
)

// Run is the audit record of a single reinvite invocation. It is written
// after the run finishes and only ever read back for display; no decision
// logic depends on it.
type Run struct {
	ID           string           `json:"id"`
	Owner        string           `json:"owner"`
	Repo         string           `json:"repo"`
	Username     string           `json:"username"`
	PriorState   RelationshipKind `json:"prior_state"`
	Permission   Permission       `json:"permission"`
	DelaySeconds int              `json:"delay_seconds"`
	Outcome      RunOutcome       `json:"outcome"`
	ErrorMessage string           `json:"error_message,omitempty"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   time.Time        `json:"finished_at"`
}
