// Package headless renders the timer as plain lines for pipes, logs and
// terminals without cursor control.
package headless

import (
	"fmt"
	"io"
	"sync"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Console writes a line to w whenever a rendered value changes.
type Console struct {
	mu sync.Mutex
	w  io.Writer

	clock    *field
	count    *field
	caption  *field
	progress *field
	tasks    *field
	start    *field
	pause    *field
	reset    *field
	modes    []*field
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer) *Console {
	c := &Console{w: w}
	c.clock = c.newField("time", "time")
	c.count = c.newField("count", "completed")
	c.caption = c.newField("caption", "")
	c.progress = c.newField("progress", "")
	c.tasks = c.newField("tasks", "tasks")
	c.start = c.newField("start", "")
	c.pause = c.newField("pause", "")
	c.reset = c.newField("reset", "")
	for _, m := range domain.Modes() {
		c.modes = append(c.modes, c.newField(string(m), ""))
	}
	return c
}

// Handles exposes the console to the renderer.
func (c *Console) Handles() ports.ViewHandles {
	h := ports.ViewHandles{
		TimeDisplay:    c.clock,
		CompletedCount: c.count,
		Start:          c.start,
		Pause:          c.pause,
		Reset:          c.reset,
		Label:          c.caption,
		Progress:       c.progress,
	}
	for _, m := range c.modes {
		h.ModeButtons = append(h.ModeButtons, m)
	}
	return h
}

// TaskCounter returns the handle for the task count.
func (c *Console) TaskCounter() ports.ViewHandle {
	return c.tasks
}

func (c *Console) newField(tag, label string) *field {
	return &field{console: c, tag: tag, label: label, states: make(map[string]bool)}
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, format, args...)
}

// field is a console handle. Fields with an empty label never print text.
type field struct {
	console *Console
	tag     string
	label   string

	mu      sync.Mutex
	text    string
	written bool
	states  map[string]bool
}

func (f *field) Tag() string {
	return f.tag
}

func (f *field) SetText(text string) {
	f.mu.Lock()
	changed := !f.written || f.text != text
	f.text, f.written = text, true
	f.mu.Unlock()

	if !changed {
		return
	}
	switch {
	case f.tag == "caption":
		f.console.printf("%s\n", text)
	case f.label != "":
		f.console.printf("%-9s %s\n", f.label, text)
	}
}

func (f *field) Toggle(name string, on bool) {
	f.mu.Lock()
	prev, seen := f.states[name]
	f.states[name] = on
	f.mu.Unlock()

	if seen && prev == on {
		return
	}
	if name == ports.StateActive && on {
		f.console.printf("%-9s %s\n", "mode", domain.Mode(f.tag).Label())
	}
}
