package headless

import (
	"context"
	"fmt"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Controller is the part of the timer a single headless cycle needs.
type Controller interface {
	Start(ctx context.Context) (domain.TimerState, error)
	SwitchMode(ctx context.Context, mode domain.Mode) (domain.TimerState, error)
}

// Waiter is a notifier that also signals when a cycle completes.
type Waiter struct {
	next ports.Notifier
	done chan domain.TimerState
}

// NewWaiter wraps next, which may be nil.
func NewWaiter(next ports.Notifier) *Waiter {
	return &Waiter{next: next, done: make(chan domain.TimerState, 1)}
}

// CycleComplete implements ports.Notifier.
func (w *Waiter) CycleComplete(completed domain.Mode, state domain.TimerState) error {
	select {
	case w.done <- state:
	default:
	}
	if w.next == nil {
		return nil
	}
	return w.next.CycleComplete(completed, state)
}

// Done receives the state after each completed cycle.
func (w *Waiter) Done() <-chan domain.TimerState {
	return w.done
}

var _ ports.Notifier = (*Waiter)(nil)

// RunCycle loads mode, starts the countdown and blocks until the cycle ends
// or ctx is cancelled.
func RunCycle(ctx context.Context, timer Controller, waiter *Waiter, mode domain.Mode) (domain.TimerState, error) {
	if _, err := timer.SwitchMode(ctx, mode); err != nil {
		return domain.TimerState{}, fmt.Errorf("failed to load %s: %w", mode, err)
	}
	if _, err := timer.Start(ctx); err != nil {
		return domain.TimerState{}, fmt.Errorf("failed to start timer: %w", err)
	}

	select {
	case state := <-waiter.Done():
		return state, nil
	case <-ctx.Done():
		return domain.TimerState{}, ctx.Err()
	}
}
