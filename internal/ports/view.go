// Package ports defines the interfaces between the timer core and the shells
// that display it.
package ports

import (
	"fmt"
	"strings"
)

// Visual state names toggled on handles by the renderer.
const (
	StateActive   = "active"
	StateDisabled = "disabled"
)

// ViewHandle is one addressable element of a view: a text display, a button,
// or a counter. The renderer only reads its tag and sets its text or named
// visual states.
type ViewHandle interface {
	// Tag returns the element's identifying attribute, e.g. the mode a
	// selector button switches to.
	Tag() string

	// SetText replaces the element's text content.
	SetText(text string)

	// Toggle switches the named visual state on or off.
	Toggle(name string, on bool)
}

// ViewHandles is the set of elements a timer view exposes.
type ViewHandles struct {
	TimeDisplay    ViewHandle
	CompletedCount ViewHandle
	ModeButtons    []ViewHandle
	Start          ViewHandle
	Pause          ViewHandle
	Reset          ViewHandle

	// Optional elements.
	Label     ViewHandle
	Progress  ViewHandle
	TaskCount ViewHandle
}

// MissingHandlesError lists the required handles a view failed to provide.
type MissingHandlesError struct {
	Missing []string
}

func (e *MissingHandlesError) Error() string {
	return fmt.Sprintf("missing required view handles: %s", strings.Join(e.Missing, ", "))
}

// Validate checks that every required handle is present.
func (h ViewHandles) Validate() error {
	var missing []string
	if h.TimeDisplay == nil {
		missing = append(missing, "time display")
	}
	if h.CompletedCount == nil {
		missing = append(missing, "completed count")
	}
	if len(h.ModeButtons) == 0 {
		missing = append(missing, "mode buttons")
	}
	for i, b := range h.ModeButtons {
		if b == nil {
			missing = append(missing, fmt.Sprintf("mode button %d", i))
		}
	}
	if h.Start == nil {
		missing = append(missing, "start button")
	}
	if h.Pause == nil {
		missing = append(missing, "pause button")
	}
	if h.Reset == nil {
		missing = append(missing, "reset button")
	}
	if len(missing) > 0 {
		return &MissingHandlesError{Missing: missing}
	}
	return nil
}
