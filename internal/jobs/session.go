package jobs

import (
	"context"
	"fmt"
	"time"

	"karmaforge/internal/engage"
	"karmaforge/internal/events"
)

// Session is the unit of work the loop repeats. *engage.Runner is the
// production implementation.
type Session interface {
	Run(ctx context.Context) (engage.Summary, error)
}

// RunSessionOnce executes a single reply session.
func RunSessionOnce(ctx context.Context, s Session, emit *events.Emitter) (engage.Summary, error) {
	return s.Run(ctx)
}

// RunSessionLoop re-runs sessions on a ticker until ctx is cancelled.
// The daily quota carries across iterations, so an exhausted day just
// produces empty sessions until rollover.
func RunSessionLoop(ctx context.Context, s Session, emit *events.Emitter, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	// run immediately
	if _, err := RunSessionOnce(ctx, s, emit); err != nil {
		emit.Error(fmt.Sprintf("session error: %v", err), nil)
	}
	for {
		select {
		case <-ctx.Done():
			emit.Info("session loop stopped", nil)
			return ctx.Err()
		case <-t.C:
			if _, err := RunSessionOnce(ctx, s, emit); err != nil {
				emit.Error(fmt.Sprintf("session error: %v", err), nil)
			}
		}
	}
}
