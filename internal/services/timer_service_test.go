package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

const waitFor = 2 * time.Second

type recordingNotifier struct {
	mu    sync.Mutex
	calls []domain.Mode
	err   error
}

func (n *recordingNotifier) CycleComplete(completed domain.Mode, _ domain.TimerState) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, completed)
	return n.err
}

func (n *recordingNotifier) Calls() []domain.Mode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Mode(nil), n.calls...)
}

// startService runs a TimerService until the test ends.
func startService(t *testing.T, view *fakeView, opts ...TimerOption) (*TimerService, context.Context) {
	t.Helper()
	svc, err := NewTimerService(view.handles(), opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-errCh)
	})
	return svc, ctx
}

// advance moves the fake clock one interval and waits for the tick to land.
func advance(t *testing.T, ctx context.Context, svc *TimerService, clock *countingClock, wantRemaining int) {
	t.Helper()
	clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		s, err := svc.Snapshot(ctx)
		return err == nil && s.RemainingSeconds == wantRemaining
	}, waitFor, 5*time.Millisecond)
}

func TestNewTimerService_MissingHandles(t *testing.T) {
	view := newFakeView()
	h := view.handles()
	h.TimeDisplay = nil
	h.Start = nil

	svc, err := NewTimerService(h)
	assert.Nil(t, svc)

	var missing *ports.MissingHandlesError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"time display", "start button"}, missing.Missing)
}

func TestNewTimerService_InvalidInitialMode(t *testing.T) {
	_, err := NewTimerService(newFakeView().handles(), WithInitialState(domain.TimerState{Mode: "nap"}))
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestTimerService_InitialRender(t *testing.T) {
	view := newFakeView()
	svc, ctx := startService(t, view)

	s, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NewTimerState(), s)

	assert.Equal(t, "25:00", view.time.Text())
	assert.Equal(t, "0", view.count.Text())
	assert.Equal(t, "Ready to focus?", view.label.Text())
	assert.Equal(t, []string{"focus"}, view.activeModes())
	assert.False(t, view.start.Is(ports.StateDisabled))
	assert.True(t, view.pause.Is(ports.StateDisabled))
}

func TestTimerService_StartTicksAndRenders(t *testing.T) {
	view := newFakeView()
	clock := newCountingClock()
	svc, ctx := startService(t, view, WithClock(clock))

	s, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.True(t, s.IsRunning)
	assert.True(t, view.start.Is(ports.StateDisabled))
	assert.Equal(t, "Stay focused", view.label.Text())

	advance(t, ctx, svc, clock, 1499)
	advance(t, ctx, svc, clock, 1498)

	require.Eventually(t, func() bool { return view.time.Text() == "24:58" }, waitFor, 5*time.Millisecond)
}

func TestTimerService_StartTwiceKeepsOneSchedule(t *testing.T) {
	view := newFakeView()
	clock := newCountingClock()
	svc, ctx := startService(t, view, WithClock(clock))

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Start(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), clock.created.Load())
	assert.Equal(t, 1, clock.active())

	// One advance must only cost one second even after a double start.
	advance(t, ctx, svc, clock, 1499)
}

func TestTimerService_PauseStopsSchedule(t *testing.T) {
	view := newFakeView()
	clock := newCountingClock()
	svc, ctx := startService(t, view, WithClock(clock))

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	advance(t, ctx, svc, clock, 1499)

	s, err := svc.Pause(ctx)
	require.NoError(t, err)
	assert.False(t, s.IsRunning)
	assert.Equal(t, 1499, s.RemainingSeconds)
	assert.Equal(t, 0, clock.active())
	assert.Equal(t, "Paused", view.label.Text())

	clock.Advance(5 * time.Second)
	s, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1499, s.RemainingSeconds)

	// Resuming picks up where it left off with a fresh schedule.
	_, err = svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, clock.active())
	advance(t, ctx, svc, clock, 1498)
}

func TestTimerService_ResetReturnsToFocus(t *testing.T) {
	view := newFakeView()
	clock := newCountingClock()
	svc, ctx := startService(t, view, WithClock(clock),
		WithInitialState(domain.TimerState{Mode: domain.ModeLongBreak, RemainingSeconds: 40, CompletedPomodoros: 3}))

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	s, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TimerState{Mode: domain.ModeFocus, RemainingSeconds: 1500, CompletedPomodoros: 3}, s)
	assert.Equal(t, 0, clock.active())
	assert.Equal(t, "25:00", view.time.Text())
	assert.Equal(t, []string{"focus"}, view.activeModes())
}

func TestTimerService_SwitchModeStopsSchedule(t *testing.T) {
	view := newFakeView()
	clock := newCountingClock()
	svc, ctx := startService(t, view, WithClock(clock))

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	s, err := svc.SwitchMode(ctx, domain.ModeShortBreak)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeShortBreak, s.Mode)
	assert.Equal(t, 300, s.RemainingSeconds)
	assert.False(t, s.IsRunning)
	assert.Equal(t, 0, clock.active())

	assert.Equal(t, "05:00", view.time.Text())
	assert.Equal(t, []string{"short-break"}, view.activeModes())
	assert.Equal(t, "Time for a break", view.label.Text())
}

func TestTimerService_SwitchModeUnknownIsRejected(t *testing.T) {
	view := newFakeView()
	clock := newCountingClock()
	svc, ctx := startService(t, view, WithClock(clock))

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	s, err := svc.SwitchMode(ctx, domain.Mode("nap"))
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
	assert.True(t, s.IsRunning, "a rejected switch leaves the countdown alone")
	assert.Equal(t, 1, clock.active())
}

func TestTimerService_NaturalCompletion(t *testing.T) {
	view := newFakeView()
	clock := newCountingClock()
	notifier := &recordingNotifier{}
	svc, ctx := startService(t, view, WithClock(clock), WithNotifier(notifier),
		WithInitialState(domain.TimerState{Mode: domain.ModeFocus, RemainingSeconds: 2, CompletedPomodoros: 1}))

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	advance(t, ctx, svc, clock, 1)
	advance(t, ctx, svc, clock, 0)

	require.Eventually(t, func() bool {
		s, err := svc.Snapshot(ctx)
		return err == nil && !s.IsRunning
	}, waitFor, 5*time.Millisecond)

	s, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.CompletedPomodoros)
	assert.Equal(t, 0, clock.active())
	assert.Equal(t, []domain.Mode{domain.ModeFocus}, notifier.Calls())

	assert.Equal(t, "00:00", view.time.Text())
	assert.Equal(t, "2", view.count.Text())
	assert.Equal(t, "Time is up!", view.label.Text())
	assert.Equal(t, "1.0000", view.progress.Text())
}

func TestTimerService_BreakCompletionKeepsCounter(t *testing.T) {
	view := newFakeView()
	clock := newCountingClock()
	notifier := &recordingNotifier{err: errors.New("no display")}
	svc, ctx := startService(t, view, WithClock(clock), WithNotifier(notifier),
		WithInitialState(domain.TimerState{Mode: domain.ModeShortBreak, RemainingSeconds: 1, CompletedPomodoros: 4}))

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	advance(t, ctx, svc, clock, 0)

	require.Eventually(t, func() bool { return len(notifier.Calls()) == 1 }, waitFor, 5*time.Millisecond)

	s, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, s.CompletedPomodoros)
	assert.False(t, s.IsRunning)
}

func TestTimerService_StartAfterCompletionRestartsCycle(t *testing.T) {
	view := newFakeView()
	clock := newCountingClock()
	svc, ctx := startService(t, view, WithClock(clock),
		WithInitialState(domain.TimerState{Mode: domain.ModeLongBreak, RemainingSeconds: 0, CompletedPomodoros: 2}))

	s, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, 900, s.RemainingSeconds)
	assert.Equal(t, 2, s.CompletedPomodoros)
	assert.True(t, s.IsRunning)
}

func TestTimerService_OnChange(t *testing.T) {
	view := newFakeView()
	var mu sync.Mutex
	var seen []domain.TimerState
	svc, ctx := startService(t, view, WithClock(newCountingClock()), WithOnChange(func(s domain.TimerState) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	}))

	_, err := svc.SwitchMode(ctx, domain.ModeLongBreak)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2, "initial render plus the switch")
	assert.Equal(t, domain.ModeLongBreak, seen[1].Mode)
}

func TestTimerService_CommandsAfterStop(t *testing.T) {
	svc, err := NewTimerService(newFakeView().handles(), WithClock(newCountingClock()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = svc.Run(ctx) }()
	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)

	cancel()
	<-svc.Done()

	_, err = svc.Start(context.Background())
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestTimerService_RunTwice(t *testing.T) {
	svc, ctx := startService(t, newFakeView(), WithClock(newCountingClock()))
	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Run(ctx), ErrAlreadyRunning)
}
