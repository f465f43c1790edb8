package cmdlog

import (
	"fmt"

	"karmaforge/internal/events"
	"karmaforge/internal/metrics"
)

// Run wraps a command body with uniform outcome logging and counters.
func Run(cmd string, emit *events.Emitter, f func() error) error {
	metrics.IncCommandRun(cmd)
	err := f()
	if err != nil {
		metrics.IncCommandError(cmd)
		emit.Error(fmt.Sprintf("%s failed: %v", cmd, err), nil)
	} else {
		emit.Info(cmd+" done", nil)
	}
	return err
}
