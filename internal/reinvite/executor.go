package reinvite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kurihiro0119/gh-reinvite/internal/domain"
	apperrors "github.com/kurihiro0119/gh-reinvite/internal/errors"
	"github.com/kurihiro0119/gh-reinvite/internal/hosting"
	"github.com/kurihiro0119/gh-reinvite/internal/storage"
)

// ConfirmFunc asks the user to confirm before any mutating action. It
// returns false when the user declines.
type ConfirmFunc func(prompt string) (bool, error)

// Options configures a single reinvite run
type Options struct {
	Repo         domain.RepoRef
	Username     string
	Permission   domain.Permission
	DelaySeconds int
	SkipConfirm  bool
}

// Executor drives the reinvite state machine: probe, confirm, remove,
// delay, invite. Each step runs at most once; a failed step aborts the run
// with no compensation of completed prior steps.
type Executor struct {
	Service  hosting.Service
	Store    storage.RunStore // optional; run records are dropped when nil
	Reporter Reporter
	Waiter   *Waiter
	Confirm  ConfirmFunc
}

// Run executes the full reinvite flow and returns the audit record of the
// run. The returned error is nil for a completed run and for a declined
// confirmation; a declined run has Outcome RunDeclined.
func (e *Executor) Run(ctx context.Context, opts Options) (*domain.Run, error) {
	reporter := e.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	waiter := e.Waiter
	if waiter == nil {
		waiter = &Waiter{}
	}

	run := &domain.Run{
		ID:           uuid.New().String(),
		Owner:        opts.Repo.Owner,
		Repo:         opts.Repo.Name,
		Username:     opts.Username,
		Permission:   opts.Permission,
		DelaySeconds: opts.DelaySeconds,
		StartedAt:    time.Now(),
	}

	if err := e.Service.GetRepository(ctx, opts.Repo); err != nil {
		return e.fail(ctx, run, reporter, apperrors.NewAccessError(
			fmt.Sprintf("cannot access repository %s", opts.Repo), err))
	}

	prober := &Prober{Service: e.Service}
	state, err := prober.Probe(ctx, opts.Repo, opts.Username)
	if err != nil {
		return e.fail(ctx, run, reporter, err)
	}
	run.PriorState = state.Kind

	switch state.Kind {
	case domain.RelationshipCollaborator:
		reporter.Successf("%s is currently a collaborator on %s", opts.Username, opts.Repo)
	case domain.RelationshipPendingInvite:
		reporter.Warnf("%s is not a collaborator on %s", opts.Username, opts.Repo)
		reporter.Warnf("found pending invitation for %s", opts.Username)
	default:
		reporter.Warnf("%s is not a collaborator on %s", opts.Username, opts.Repo)
		reporter.Warnf("no pending invitation found")
	}

	if !opts.SkipConfirm && e.Confirm != nil {
		ok, err := e.Confirm(confirmPrompt(state, opts))
		if err != nil {
			return e.fail(ctx, run, reporter, err)
		}
		if !ok {
			reporter.Stepf("Operation cancelled.")
			run.Outcome = domain.RunDeclined
			e.finish(ctx, run, reporter)
			return run, nil
		}
	}

	if err := e.removeIfNeeded(ctx, state, opts, reporter); err != nil {
		return e.fail(ctx, run, reporter, err)
	}

	if opts.DelaySeconds > 0 {
		reporter.Stepf("Step 2: Waiting %d seconds...", opts.DelaySeconds)
		if err := waiter.Wait(ctx, opts.DelaySeconds, reporter.Tick); err != nil {
			return e.fail(ctx, run, reporter, err)
		}
	}

	reporter.Stepf("Step 3: Reinviting collaborator...")
	if err := e.Service.AddCollaborator(ctx, opts.Repo, opts.Username, opts.Permission); err != nil {
		return e.fail(ctx, run, reporter, apperrors.NewStepError("failed to invite collaborator", err))
	}
	reporter.Successf("Successfully invited %s to %s with %s permissions",
		opts.Username, opts.Repo, opts.Permission)

	run.Outcome = domain.RunCompleted
	e.finish(ctx, run, reporter)
	return run, nil
}

// removeIfNeeded performs the state-appropriate removal. A user with no
// relationship needs no removal and succeeds immediately.
func (e *Executor) removeIfNeeded(ctx context.Context, state domain.CollaboratorState, opts Options, reporter Reporter) error {
	switch state.Kind {
	case domain.RelationshipCollaborator:
		reporter.Stepf("Step 1: Removing collaborator...")
		if err := e.Service.RemoveCollaborator(ctx, opts.Repo, opts.Username); err != nil {
			return apperrors.NewStepError("failed to remove collaborator", err)
		}
		reporter.Successf("Successfully removed %s from %s", opts.Username, opts.Repo)
	case domain.RelationshipPendingInvite:
		reporter.Stepf("Step 1: Removing pending invitation...")
		if err := e.Service.DeleteInvitation(ctx, opts.Repo, state.InvitationID); err != nil {
			return apperrors.NewStepError("failed to remove pending invitation", err)
		}
		reporter.Successf("Successfully removed pending invitation")
	}
	return nil
}

func (e *Executor) fail(ctx context.Context, run *domain.Run, reporter Reporter, err error) (*domain.Run, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.NewInterruptedError()
	}
	run.Outcome = domain.RunFailed
	run.ErrorMessage = err.Error()
	e.finish(ctx, run, reporter)
	return run, err
}

// finish stamps the run and records it. Recording failures are reported but
// never change the run's outcome.
func (e *Executor) finish(ctx context.Context, run *domain.Run, reporter Reporter) {
	run.FinishedAt = time.Now()
	if e.Store == nil {
		return
	}
	if err := e.Store.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		reporter.Warnf("failed to record run: %v", err)
	}
}

func confirmPrompt(state domain.CollaboratorState, opts Options) string {
	switch state.Kind {
	case domain.RelationshipCollaborator:
		return fmt.Sprintf("Remove %s from %s and reinvite them?", opts.Username, opts.Repo)
	case domain.RelationshipPendingInvite:
		return fmt.Sprintf("Remove pending invitation and reinvite %s?", opts.Username)
	default:
		return fmt.Sprintf("Invite %s to %s?", opts.Username, opts.Repo)
	}
}
