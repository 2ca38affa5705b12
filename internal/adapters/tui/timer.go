package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

// App runs the fullscreen timer: a TimerService rendering into a Screen
// and a Bubbletea program drawing that screen.
type App struct {
	screen  *Screen
	timer   *services.TimerService
	tasks   *services.TaskService
	theme   *config.ThemeConfig
	options []tea.ProgramOption

	notificationsEnabled bool
	notificationToggle   func(bool)

	mu      sync.RWMutex
	program *tea.Program
}

// NewApp wires a timer service to a fresh screen. It returns the service's
// initialization error if the screen is incomplete.
func NewApp(theme *config.ThemeConfig, opts ...services.TimerOption) (*App, error) {
	a := &App{
		screen:  NewScreen(),
		theme:   theme,
		options: []tea.ProgramOption{tea.WithAltScreen()},
	}

	opts = append(opts, services.WithOnChange(func(domain.TimerState) { a.redraw() }))
	timer, err := services.NewTimerService(a.screen.Handles(), opts...)
	if err != nil {
		return nil, err
	}
	a.timer = timer
	return a, nil
}

// EnableTasks attaches a task list whose size is shown on the screen.
func (a *App) EnableTasks(logger *slog.Logger) *services.TaskService {
	a.tasks = services.NewTaskService(a.screen.Tasks, logger)
	return a.tasks
}

// Screen returns the widgets the timer renders into.
func (a *App) Screen() *Screen {
	return a.screen
}

// Timer returns the underlying timer service.
func (a *App) Timer() *services.TimerService {
	return a.timer
}

// SetNotificationToggle wires the notification switch shown in the help line.
func (a *App) SetNotificationToggle(enabled bool, toggle func(bool)) {
	a.notificationsEnabled = enabled
	a.notificationToggle = toggle
}

// SetProgramOptions replaces the Bubbletea program options.
func (a *App) SetProgramOptions(opts ...tea.ProgramOption) {
	a.options = opts
}

// Model builds the Bubbletea model for this app.
func (a *App) Model(ctx context.Context) Model {
	opts := []ModelOption{WithNotificationToggle(a.notificationsEnabled, a.notificationToggle)}
	if a.tasks != nil {
		opts = append(opts, WithTasks(a.tasks))
	}
	return NewModel(ctx, a.screen, a.timer, a.theme, opts...)
}

// Run starts the timer dispatcher and the interface, blocking until the user
// quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timerErr := make(chan error, 1)
	go func() { timerErr <- a.timer.Run(ctx) }()

	a.mu.Lock()
	a.program = tea.NewProgram(a.Model(ctx), append(a.options, tea.WithContext(ctx))...)
	program := a.program
	a.mu.Unlock()

	_, err := program.Run()
	cancelled := ctx.Err() != nil

	a.mu.Lock()
	a.program = nil
	a.mu.Unlock()

	cancel()
	if tErr := <-timerErr; tErr != nil {
		return tErr
	}
	if err != nil && !cancelled {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (a *App) redraw() {
	a.mu.RLock()
	program := a.program
	a.mu.RUnlock()

	if program != nil {
		program.Send(redrawMsg{})
	}
}
