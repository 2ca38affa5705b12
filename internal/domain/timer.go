package domain

import "fmt"

// TimerState is a snapshot of the countdown. It is a value type: every
// transition returns a new TimerState and never mutates its input.
type TimerState struct {
	Mode               Mode
	RemainingSeconds   int
	IsRunning          bool
	CompletedPomodoros int
}

// TickResult is the outcome of advancing the countdown by one second.
type TickResult struct {
	Next           TimerState
	CompletedCycle bool
}

// NewTimerState returns the initial state: focus mode, full duration, idle.
func NewTimerState() TimerState {
	return TimerState{
		Mode:             ModeFocus,
		RemainingSeconds: modeDurations[ModeFocus],
	}
}

// Tick advances s by one second.
//
// The cycle completes on the tick that brings the countdown to zero, and on
// any tick applied to a countdown already at zero. A completed focus cycle
// increments CompletedPomodoros. Mode and IsRunning are left untouched.
func Tick(s TimerState) TickResult {
	next := s
	if next.RemainingSeconds > 0 {
		next.RemainingSeconds--
	}
	if next.RemainingSeconds > 0 {
		return TickResult{Next: next}
	}

	next.RemainingSeconds = 0
	if s.Mode == ModeFocus {
		next.CompletedPomodoros++
	}
	return TickResult{Next: next, CompletedCycle: true}
}

// SwitchMode returns a stopped state for mode m at its full duration.
// The completed pomodoro counter is carried over.
func SwitchMode(s TimerState, m Mode) (TimerState, error) {
	d, err := DurationFor(m)
	if err != nil {
		return s, err
	}
	return TimerState{
		Mode:               m,
		RemainingSeconds:   d,
		IsRunning:          false,
		CompletedPomodoros: s.CompletedPomodoros,
	}, nil
}

// Reset stops the countdown and returns to a full focus cycle.
func Reset(s TimerState) TimerState {
	next, _ := SwitchMode(s, ModeFocus)
	return next
}

// WithRunning returns a copy of s with IsRunning set.
func (s TimerState) WithRunning(running bool) TimerState {
	s.IsRunning = running
	return s
}

// Duration returns the full duration of the current mode, or 0 for an invalid mode.
func (s TimerState) Duration() int {
	return modeDurations[s.Mode]
}

// Progress returns the elapsed fraction of the current cycle in [0, 1].
func (s TimerState) Progress() float64 {
	total := s.Duration()
	if total == 0 {
		return 0
	}
	p := 1 - float64(s.RemainingSeconds)/float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Started reports whether any time has elapsed in the current cycle.
func (s TimerState) Started() bool {
	return s.RemainingSeconds < s.Duration()
}

// Caption returns the status line shown under the clock.
func (s TimerState) Caption() string {
	switch {
	case s.RemainingSeconds == 0:
		return "Time is up!"
	case s.IsRunning && s.Mode == ModeFocus:
		return "Stay focused"
	case s.IsRunning:
		return "Take a break"
	case s.Started():
		return "Paused"
	}

	switch s.Mode {
	case ModeShortBreak:
		return "Time for a break"
	case ModeLongBreak:
		return "Time for a long break"
	default:
		return "Ready to focus?"
	}
}

// FormatTime renders whole seconds as a zero-padded "MM:SS" string.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
