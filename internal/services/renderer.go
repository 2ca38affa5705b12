// Package services implements the application layer: the render
// synchronizer, the timer orchestrator, and the task list use cases.
package services

import (
	"strconv"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Render pushes state onto every handle so the view matches it exactly.
// It only derives values from state, so calling it again with the same
// state leaves the view unchanged.
func Render(state domain.TimerState, h ports.ViewHandles) {
	h.TimeDisplay.SetText(domain.FormatTime(state.RemainingSeconds))
	h.CompletedCount.SetText(strconv.Itoa(state.CompletedPomodoros))

	for _, b := range h.ModeButtons {
		b.Toggle(ports.StateActive, domain.Mode(b.Tag()) == state.Mode)
	}

	h.Start.Toggle(ports.StateDisabled, state.IsRunning)
	h.Pause.Toggle(ports.StateDisabled, !state.IsRunning)

	if h.Label != nil {
		h.Label.SetText(state.Caption())
	}
	if h.Progress != nil {
		h.Progress.SetText(FormatProgress(state.Progress()))
	}
}

// RenderTaskCount writes the number of tasks onto the counter handle.
func RenderTaskCount(count int, h ports.ViewHandle) {
	if h == nil {
		return
	}
	h.SetText(strconv.Itoa(count))
}

// FormatProgress encodes a progress fraction for a progress handle.
func FormatProgress(p float64) string {
	return strconv.FormatFloat(p, 'f', 4, 64)
}

// ParseProgress decodes text written by FormatProgress. Invalid input yields 0.
func ParseProgress(text string) float64 {
	p, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return p
}
