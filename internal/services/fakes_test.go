package services

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// fakeHandle records what the renderer writes to it.
type fakeHandle struct {
	mu     sync.Mutex
	tag    string
	text   string
	states map[string]bool
	writes int
}

func newFakeHandle(tag string) *fakeHandle {
	return &fakeHandle{tag: tag, states: map[string]bool{}}
}

func (h *fakeHandle) Tag() string { return h.tag }

func (h *fakeHandle) SetText(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.text = text
	h.writes++
}

func (h *fakeHandle) Toggle(name string, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states[name] = on
	h.writes++
}

func (h *fakeHandle) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.text
}

func (h *fakeHandle) Is(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.states[name]
}

// snapshot returns a comparable view of the handle.
func (h *fakeHandle) snapshot() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	keys := make([]string, 0, len(h.states))
	for k := range h.states {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := h.tag + "|" + h.text
	for _, k := range keys {
		if h.states[k] {
			out += "|" + k
		}
	}
	return out
}

type fakeView struct {
	time, count, start, pause, reset, label, progress *fakeHandle
	modes                                             []*fakeHandle
}

func newFakeView() *fakeView {
	v := &fakeView{
		time:     newFakeHandle("time"),
		count:    newFakeHandle("count"),
		start:    newFakeHandle("start"),
		pause:    newFakeHandle("pause"),
		reset:    newFakeHandle("reset"),
		label:    newFakeHandle("label"),
		progress: newFakeHandle("progress"),
	}
	for _, m := range domain.Modes() {
		v.modes = append(v.modes, newFakeHandle(string(m)))
	}
	return v
}

func (v *fakeView) handles() ports.ViewHandles {
	h := ports.ViewHandles{
		TimeDisplay:    v.time,
		CompletedCount: v.count,
		Start:          v.start,
		Pause:          v.pause,
		Reset:          v.reset,
		Label:          v.label,
		Progress:       v.progress,
	}
	for _, m := range v.modes {
		h.ModeButtons = append(h.ModeButtons, m)
	}
	return h
}

func (v *fakeView) snapshot() []string {
	all := []*fakeHandle{v.time, v.count, v.start, v.pause, v.reset, v.label, v.progress}
	all = append(all, v.modes...)
	out := make([]string, len(all))
	for i, h := range all {
		out[i] = h.snapshot()
	}
	return out
}

func (v *fakeView) activeModes() []string {
	var out []string
	for _, m := range v.modes {
		if m.Is(ports.StateActive) {
			out = append(out, m.Tag())
		}
	}
	return out
}

// countingClock wraps a fake clock and tracks how many tickers are live.
type countingClock struct {
	*clockwork.FakeClock
	created atomic.Int32
	stopped atomic.Int32
}

func newCountingClock() *countingClock {
	return &countingClock{FakeClock: clockwork.NewFakeClock()}
}

func (c *countingClock) NewTicker(d time.Duration) clockwork.Ticker {
	c.created.Add(1)
	return &countingTicker{Ticker: c.FakeClock.NewTicker(d), clock: c}
}

func (c *countingClock) active() int {
	return int(c.created.Load() - c.stopped.Load())
}

type countingTicker struct {
	clockwork.Ticker
	clock *countingClock
	once  sync.Once
}

func (t *countingTicker) Stop() {
	t.once.Do(func() { t.clock.stopped.Add(1) })
	t.Ticker.Stop()
}
