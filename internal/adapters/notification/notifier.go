// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"
	"sync/atomic"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Notifier shows a desktop notification when a cycle runs out.
type Notifier struct {
	enabled atomic.Bool
	sound   bool
	notify  func(title, message string) error
	beep    func() error
}

// New creates a new notifier with the given configuration.
func New(cfg config.NotificationConfig) *Notifier {
	n := &Notifier{
		sound: cfg.Sound,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
	n.enabled.Store(cfg.Enabled)
	return n
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	if err := n.notify(title, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	if n.sound {
		if err := n.beep(); err != nil {
			return fmt.Errorf("failed to beep: %w", err)
		}
	}
	return nil
}

// CycleComplete implements ports.Notifier.
func (n *Notifier) CycleComplete(completed domain.Mode, state domain.TimerState) error {
	title, message := Message(completed, state)
	return n.Notify(title, message)
}

// Message builds the notification text for a finished cycle.
func Message(completed domain.Mode, state domain.TimerState) (title, message string) {
	if completed == domain.ModeFocus {
		title = "🍅 Pomodoro Complete!"
		message = fmt.Sprintf("Time is up! That makes %d today. Ready for a break?", state.CompletedPomodoros)
		if state.CompletedPomodoros == 1 {
			message = "Time is up! First pomodoro done. Ready for a break?"
		}
		return title, message
	}
	return "☕ Break Over!", fmt.Sprintf("Your %s is complete. Ready to focus?", completed.Label())
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.enabled.Load()
}

// SetEnabled turns notifications on or off. Safe to call from any goroutine.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

var _ ports.Notifier = (*Notifier)(nil)
