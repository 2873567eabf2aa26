package reinvite

import (
	"context"
	"time"

	apperrors "github.com/kurihiro0119/gh-reinvite/internal/errors"
)

// Waiter blocks between removal and re-invitation, reporting one tick per
// elapsed second. Interval defaults to one second; tests shorten it.
type Waiter struct {
	Interval time.Duration
}

// Wait blocks for the given number of seconds, calling onTick once per
// second with the remaining count. Zero or negative seconds return
// immediately with no ticks. Context cancellation aborts the wait.
func (w *Waiter) Wait(ctx context.Context, seconds int, onTick func(remaining int)) error {
	if seconds <= 0 {
		return nil
	}

	interval := w.Interval
	if interval <= 0 {
		interval = time.Second
	}

	for remaining := seconds; remaining > 0; remaining-- {
		if onTick != nil {
			onTick(remaining)
		}
		select {
		case <-ctx.Done():
			return apperrors.NewInterruptedError()
		case <-time.After(interval):
		}
	}

	return nil
}
