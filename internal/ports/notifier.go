package ports

import "github.com/xvierd/pomo/internal/domain"

// Notifier is told when a cycle runs out. Implementations must not block
// for long; the timer dispatcher waits for them.
type Notifier interface {
	CycleComplete(completed domain.Mode, state domain.TimerState) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(completed domain.Mode, state domain.TimerState) error

// CycleComplete calls f.
func (f NotifierFunc) CycleComplete(completed domain.Mode, state domain.TimerState) error {
	return f(completed, state)
}
