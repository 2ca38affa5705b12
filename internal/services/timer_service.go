package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

var (
	// ErrNotRunning is returned by commands sent after the dispatcher has stopped.
	ErrNotRunning = errors.New("timer dispatcher is not running")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("timer dispatcher already running")
)

type commandKind int

const (
	cmdStart commandKind = iota
	cmdPause
	cmdReset
	cmdSwitch
	cmdSnapshot
)

func (k commandKind) String() string {
	switch k {
	case cmdStart:
		return "start"
	case cmdPause:
		return "pause"
	case cmdReset:
		return "reset"
	case cmdSwitch:
		return "switch"
	case cmdSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

type command struct {
	kind  commandKind
	mode  domain.Mode
	reply chan commandResult
}

type commandResult struct {
	state domain.TimerState
	err   error
}

// TimerService owns the authoritative TimerState and the one-second schedule.
// Commands and scheduled ticks are applied one at a time by the dispatcher
// started with Run, so the state needs no locking.
type TimerService struct {
	handles  ports.ViewHandles
	clock    clockwork.Clock
	interval time.Duration
	notifier ports.Notifier
	logger   *slog.Logger
	onChange func(domain.TimerState)

	commands chan command
	done     chan struct{}
	started  atomic.Bool

	// Owned by the dispatcher goroutine.
	state  domain.TimerState
	ticker clockwork.Ticker
}

// TimerOption configures a TimerService.
type TimerOption func(*TimerService)

// WithClock replaces the real clock, typically with a clockwork.FakeClock.
func WithClock(c clockwork.Clock) TimerOption {
	return func(s *TimerService) { s.clock = c }
}

// WithNotifier sets the callback fired when a cycle runs out.
func WithNotifier(n ports.Notifier) TimerOption {
	return func(s *TimerService) { s.notifier = n }
}

// WithLogger sets the logger used by the dispatcher.
func WithLogger(l *slog.Logger) TimerOption {
	return func(s *TimerService) { s.logger = l }
}

// WithOnChange sets a hook called after every render, from the dispatcher goroutine.
func WithOnChange(fn func(domain.TimerState)) TimerOption {
	return func(s *TimerService) { s.onChange = fn }
}

// WithInterval overrides the tick interval. A tick always counts as one second.
func WithInterval(d time.Duration) TimerOption {
	return func(s *TimerService) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithInitialState replaces the default starting state.
func WithInitialState(state domain.TimerState) TimerOption {
	return func(s *TimerService) { s.state = state.WithRunning(false) }
}

// NewTimerService validates the view handles and builds an idle timer.
// Initialization aborts if any required handle is missing.
func NewTimerService(handles ports.ViewHandles, opts ...TimerOption) (*TimerService, error) {
	if err := handles.Validate(); err != nil {
		return nil, fmt.Errorf("failed to initialize timer: %w", err)
	}

	s := &TimerService{
		handles:  handles,
		clock:    clockwork.NewRealClock(),
		interval: time.Second,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		commands: make(chan command),
		done:     make(chan struct{}),
		state:    domain.NewTimerState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.state.Mode.Valid() {
		return nil, fmt.Errorf("failed to initialize timer: %w: %q", domain.ErrUnknownMode, string(s.state.Mode))
	}
	return s, nil
}

// Run renders the initial state and dispatches commands and ticks until ctx
// is cancelled. It returns nil on cancellation.
func (s *TimerService) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(s.done)
	defer s.stopTicker()

	s.logger.Debug("timer dispatcher started", "mode", s.state.Mode, "remaining", s.state.RemainingSeconds)
	s.render()

	for {
		var tickC <-chan time.Time
		if s.ticker != nil {
			tickC = s.ticker.Chan()
		}

		select {
		case <-ctx.Done():
			s.logger.Debug("timer dispatcher stopped")
			return nil
		case cmd := <-s.commands:
			cmd.reply <- s.apply(cmd)
		case <-tickC:
			s.tick()
		}
	}
}

// Start begins counting down. Starting while already running is a no-op.
func (s *TimerService) Start(ctx context.Context) (domain.TimerState, error) {
	return s.send(ctx, command{kind: cmdStart})
}

// Pause stops the countdown, keeping the remaining time.
func (s *TimerService) Pause(ctx context.Context) (domain.TimerState, error) {
	return s.send(ctx, command{kind: cmdPause})
}

// Reset stops the countdown and returns to a full focus cycle.
func (s *TimerService) Reset(ctx context.Context) (domain.TimerState, error) {
	return s.send(ctx, command{kind: cmdReset})
}

// SwitchMode stops the countdown and loads the full duration of mode.
func (s *TimerService) SwitchMode(ctx context.Context, mode domain.Mode) (domain.TimerState, error) {
	return s.send(ctx, command{kind: cmdSwitch, mode: mode})
}

// Snapshot returns the current state.
func (s *TimerService) Snapshot(ctx context.Context) (domain.TimerState, error) {
	return s.send(ctx, command{kind: cmdSnapshot})
}

// Done is closed once Run has returned.
func (s *TimerService) Done() <-chan struct{} {
	return s.done
}

// send enqueues a command and waits for the dispatcher to apply it.
func (s *TimerService) send(ctx context.Context, cmd command) (domain.TimerState, error) {
	cmd.reply = make(chan commandResult, 1)

	select {
	case s.commands <- cmd:
	case <-s.done:
		return domain.TimerState{}, ErrNotRunning
	case <-ctx.Done():
		return domain.TimerState{}, ctx.Err()
	}

	select {
	case res := <-cmd.reply:
		return res.state, res.err
	case <-ctx.Done():
		return domain.TimerState{}, ctx.Err()
	}
}

func (s *TimerService) apply(cmd command) commandResult {
	if cmd.kind != cmdSnapshot {
		s.logger.Debug("timer command", "command", cmd.kind.String(), "mode", s.state.Mode, "remaining", s.state.RemainingSeconds)
	}

	switch cmd.kind {
	case cmdStart:
		if s.ticker != nil {
			return commandResult{state: s.state}
		}
		if s.state.RemainingSeconds == 0 {
			// A finished cycle restarts from the top rather than completing again.
			s.state, _ = domain.SwitchMode(s.state, s.state.Mode)
		}
		s.state = s.state.WithRunning(true)
		s.ticker = s.clock.NewTicker(s.interval)

	case cmdPause:
		s.stopTicker()
		s.state = s.state.WithRunning(false)

	case cmdReset:
		s.stopTicker()
		s.state = domain.Reset(s.state)

	case cmdSwitch:
		next, err := domain.SwitchMode(s.state, cmd.mode)
		if err != nil {
			return commandResult{state: s.state, err: err}
		}
		s.stopTicker()
		s.state = next

	case cmdSnapshot:
		return commandResult{state: s.state}
	}

	s.render()
	return commandResult{state: s.state}
}

func (s *TimerService) tick() {
	completed := s.state.Mode
	res := domain.Tick(s.state)
	s.state = res.Next

	if !res.CompletedCycle {
		s.render()
		return
	}

	s.stopTicker()
	s.state = s.state.WithRunning(false)
	s.render()

	s.logger.Info("cycle complete", "mode", completed, "completed_pomodoros", s.state.CompletedPomodoros)
	if s.notifier != nil {
		if err := s.notifier.CycleComplete(completed, s.state); err != nil {
			s.logger.Warn("completion notification failed", "error", err)
		}
	}
}

func (s *TimerService) stopTicker() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	s.ticker = nil
}

func (s *TimerService) render() {
	Render(s.state, s.handles)
	if s.onChange != nil {
		s.onChange(s.state)
	}
}
