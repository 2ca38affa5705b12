package tui

import (
	"sync"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Widget is a screen element the timer renders into. The dispatcher writes
// to it and the bubbletea loop reads it, so every access is locked.
type Widget struct {
	mu     sync.RWMutex
	tag    string
	text   string
	states map[string]bool
}

// NewWidget creates a widget with the given tag.
func NewWidget(tag string) *Widget {
	return &Widget{tag: tag, states: make(map[string]bool)}
}

// Tag implements ports.ViewHandle.
func (w *Widget) Tag() string {
	return w.tag
}

// SetText implements ports.ViewHandle.
func (w *Widget) SetText(text string) {
	w.mu.Lock()
	w.text = text
	w.mu.Unlock()
}

// Toggle implements ports.ViewHandle.
func (w *Widget) Toggle(name string, on bool) {
	w.mu.Lock()
	w.states[name] = on
	w.mu.Unlock()
}

// Text returns the current text.
func (w *Widget) Text() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.text
}

// Is reports whether the named visual state is on.
func (w *Widget) Is(name string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.states[name]
}

var _ ports.ViewHandle = (*Widget)(nil)

// Screen holds every widget of the fullscreen timer.
type Screen struct {
	Clock    *Widget
	Count    *Widget
	Caption  *Widget
	Progress *Widget
	Tasks    *Widget
	Start    *Widget
	Pause    *Widget
	Reset    *Widget
	ModeTabs []*Widget
}

// NewScreen creates a screen with one tab per mode.
func NewScreen() *Screen {
	s := &Screen{
		Clock:    NewWidget("clock"),
		Count:    NewWidget("count"),
		Caption:  NewWidget("caption"),
		Progress: NewWidget("progress"),
		Tasks:    NewWidget("tasks"),
		Start:    NewWidget("start"),
		Pause:    NewWidget("pause"),
		Reset:    NewWidget("reset"),
	}
	for _, m := range domain.Modes() {
		s.ModeTabs = append(s.ModeTabs, NewWidget(string(m)))
	}
	return s
}

// Handles exposes the screen to the renderer.
func (s *Screen) Handles() ports.ViewHandles {
	h := ports.ViewHandles{
		TimeDisplay:    s.Clock,
		CompletedCount: s.Count,
		Start:          s.Start,
		Pause:          s.Pause,
		Reset:          s.Reset,
		Label:          s.Caption,
		Progress:       s.Progress,
		TaskCount:      s.Tasks,
	}
	for _, tab := range s.ModeTabs {
		h.ModeButtons = append(h.ModeButtons, tab)
	}
	return h
}

// ActiveMode returns the mode whose tab is highlighted.
func (s *Screen) ActiveMode() domain.Mode {
	for _, tab := range s.ModeTabs {
		if tab.Is(ports.StateActive) {
			return domain.Mode(tab.Tag())
		}
	}
	return domain.ModeFocus
}

// Running reports whether the start control is disabled, i.e. the timer runs.
func (s *Screen) Running() bool {
	return s.Start.Is(ports.StateDisabled)
}
