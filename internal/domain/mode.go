// Package domain contains the core timer entities and their pure transitions.
// Nothing in here touches the terminal, the clock, or any other side effect.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors.
var (
	ErrUnknownMode    = errors.New("unknown mode")
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
	ErrTaskNotFound   = errors.New("task not found")
)

// Mode identifies which kind of cycle the timer is counting down.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short-break"
	ModeLongBreak  Mode = "long-break"
)

// modeDurations is the fixed duration table, in seconds.
var modeDurations = map[Mode]int{
	ModeFocus:      25 * 60,
	ModeShortBreak: 5 * 60,
	ModeLongBreak:  15 * 60,
}

// modeOrder is the display order of the mode selectors.
var modeOrder = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

// Modes returns every mode in display order.
func Modes() []Mode {
	out := make([]Mode, len(modeOrder))
	copy(out, modeOrder)
	return out
}

// DurationFor returns the fixed duration of a mode in seconds.
// An unrecognized mode is a caller error and never falls back to a default.
func DurationFor(m Mode) (int, error) {
	d, ok := modeDurations[m]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, string(m))
	}
	return d, nil
}

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	m := Mode(normalized)
	if _, ok := modeDurations[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	_, ok := modeDurations[m]
	return ok
}

// Label returns a human-readable name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak returns true for either break mode.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}
