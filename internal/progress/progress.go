// Package progress defines the checkpoint callback used by batch
// operations to report completion, plus a few standard reporters.
package progress

// Reporter receives completion checkpoints from a batch operation.
// Checkpoint is invoked synchronously on the goroutine driving the
// work, once after each item and once more with remaining == 0 when
// the batch ends, so implementations must return promptly. Reporter
// failures are the reporter's concern and never affect the operation.
type Reporter interface {
	// Checkpoint reports that completed items have finished and
	// remaining items are left. remaining is negative when the total
	// is not known.
	Checkpoint(completed, remaining int)
}

// Discard is a Reporter that ignores all checkpoints.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Checkpoint(int, int) {}

// Func adapts a plain function to the Reporter interface.
type Func func(completed, remaining int)

// Checkpoint calls f.
func (f Func) Checkpoint(completed, remaining int) { f(completed, remaining) }
