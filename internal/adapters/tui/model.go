// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

// Controller drives the timer. TimerService satisfies it.
type Controller interface {
	Start(ctx context.Context) (domain.TimerState, error)
	Pause(ctx context.Context) (domain.TimerState, error)
	Reset(ctx context.Context) (domain.TimerState, error)
	SwitchMode(ctx context.Context, mode domain.Mode) (domain.TimerState, error)
}

// TaskStore holds the task list. TaskService satisfies it.
type TaskStore interface {
	AddTask(ctx context.Context, title string) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ToggleTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context) []domain.Task
}

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// redrawMsg asks the model to repaint after the timer rendered new values.
type redrawMsg struct{}

// commandDoneMsg carries the outcome of a timer command.
type commandDoneMsg struct {
	err error
}

// tasksMsg carries the task list after a change.
type tasksMsg struct {
	tasks []domain.Task
	err   error
}

// Model represents the TUI state. Timer values are read from the screen
// widgets, which the timer service keeps current.
type Model struct {
	ctx    context.Context
	screen *Screen
	timer  Controller
	tasks  TaskStore
	theme  config.ThemeConfig

	width  int
	height int

	keys    keyMap
	help    help.Model
	items   []domain.Task
	cursor  int
	adding  bool
	input   textinput.Model
	lastErr error

	notificationsEnabled bool
	notificationToggle   func(bool)
	onQuit               func()
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTasks enables the task list.
func WithTasks(store TaskStore) ModelOption {
	return func(m *Model) { m.tasks = store }
}

// WithNotificationToggle wires the notification switch.
func WithNotificationToggle(enabled bool, toggle func(bool)) ModelOption {
	return func(m *Model) {
		m.notificationsEnabled = enabled
		m.notificationToggle = toggle
	}
}

// WithQuitHook sets a function called when the user quits.
func WithQuitHook(fn func()) ModelOption {
	return func(m *Model) { m.onQuit = fn }
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, screen *Screen, timer Controller, theme *config.ThemeConfig, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.CharLimit = 120
	ti.Width = 40

	m := Model{
		ctx:    ctx,
		screen: screen,
		timer:  timer,
		theme:  resolveTheme(theme),
		input:  ti,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.keys = newKeyMap(m.tasks != nil)
	m.help = help.New()
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	if m.tasks == nil {
		return nil
	}
	return m.taskCmd(func(context.Context) error { return nil })
}

// timerCmd runs a timer command off the bubbletea loop. The timer calls
// back into the program on every render, so it must never run inside Update.
func (m Model) timerCmd(fn func(context.Context) (domain.TimerState, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		_, err := fn(ctx)
		return commandDoneMsg{err: err}
	}
}

func (m Model) taskCmd(fn func(context.Context) error) tea.Cmd {
	ctx, store := m.ctx, m.tasks
	return func() tea.Msg {
		err := fn(ctx)
		return tasksMsg{tasks: store.ListTasks(ctx), err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.adding {
		return m.updateTaskInput(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case redrawMsg:

	case commandDoneMsg:
		m.lastErr = msg.err

	case tasksMsg:
		m.lastErr = msg.err
		m.items = msg.tasks
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		return m, m.timerCmd(m.timer.Start)
	case key.Matches(msg, m.keys.Pause):
		return m, m.timerCmd(m.timer.Pause)
	case key.Matches(msg, m.keys.Toggle):
		if m.screen.Running() {
			return m, m.timerCmd(m.timer.Pause)
		}
		return m, m.timerCmd(m.timer.Start)
	case key.Matches(msg, m.keys.Reset):
		return m, m.timerCmd(m.timer.Reset)
	case key.Matches(msg, m.keys.Focus):
		return m, m.switchCmd(domain.ModeFocus)
	case key.Matches(msg, m.keys.Short):
		return m, m.switchCmd(domain.ModeShortBreak)
	case key.Matches(msg, m.keys.Long):
		return m, m.switchCmd(domain.ModeLongBreak)
	case key.Matches(msg, m.keys.NextMode):
		return m, m.switchCmd(nextMode(m.screen.ActiveMode()))
	case key.Matches(msg, m.keys.Notify):
		m.notificationsEnabled = !m.notificationsEnabled
		if m.notificationToggle != nil {
			m.notificationToggle(m.notificationsEnabled)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	// Task bindings are disabled, and never match, without a store.
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.input.Reset()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			return m, m.taskCmd(func(ctx context.Context) error { return m.tasks.DeleteTask(ctx, task.ID) })
		}
	case key.Matches(msg, m.keys.Done):
		if task, ok := m.selected(); ok {
			return m, m.taskCmd(func(ctx context.Context) error { return m.tasks.ToggleTask(ctx, task.ID) })
		}
	}
	return m, nil
}

func (m Model) updateTaskInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.adding = false
			m.input.Blur()
			return m, nil
		case "enter":
			m.adding = false
			m.input.Blur()
			title := m.input.Value()
			return m, m.taskCmd(func(ctx context.Context) error {
				_, err := m.tasks.AddTask(ctx, title)
				return err
			})
		case "ctrl+c":
			return m, tea.Quit
		}
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) switchCmd(mode domain.Mode) tea.Cmd {
	return m.timerCmd(func(ctx context.Context) (domain.TimerState, error) {
		return m.timer.SwitchMode(ctx, mode)
	})
}

func (m Model) selected() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.Task{}, false
	}
	return m.items[m.cursor], true
}

// nextMode returns the mode after current in display order, wrapping around.
func nextMode(current domain.Mode) domain.Mode {
	modes := domain.Modes()
	for i, mode := range modes {
		if mode == current {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// getTimerColor returns the color for the clock, accounting for pause state.
func (m Model) getTimerColor() lipgloss.Color {
	if !m.screen.Running() {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	return lipgloss.Color(m.theme.ModeColor(m.screen.ActiveMode()))
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Pomodoro", m.theme.IconApp)))
	sections = append(sections, m.viewModeTabs())

	sections = append(sections, "")
	sections = append(sections, renderBigTime(m.screen.Clock.Text(), m.getTimerColor(), m.width))

	prog := services.ParseProgress(m.screen.Progress.Text())
	if !m.screen.Running() && prog > 0 && prog < 1 {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "", pauseBadge)
	}

	captionStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(m.theme.ColorTask))
	sections = append(sections, "", captionStyle.Render(m.screen.Caption.Text()))

	pbar := progress.New(progress.WithSolidFill(m.theme.ModeColor(m.screen.ActiveMode())), progress.WithoutPercentage())
	pbar.Width = max(m.width-4, 10)
	sections = append(sections, "", pbar.ViewAs(prog))

	sections = append(sections, helpStyle.Render(fmt.Sprintf("%s × %s", m.theme.IconApp, m.screen.Count.Text())))

	if m.tasks != nil {
		sections = append(sections, "")
		sections = append(sections, m.viewTasks()...)
	}

	if m.lastErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EA4335"))
		sections = append(sections, "", errStyle.Render("Error: "+m.lastErr.Error()))
	}

	notifLabel := "off"
	if m.notificationsEnabled {
		notifLabel = "on"
	}
	sections = append(sections, "", helpStyle.Render("notifications "+notifLabel))
	m.help.Width = m.width
	sections = append(sections, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewModeTabs() string {
	tabs := make([]string, 0, len(m.screen.ModeTabs))
	for _, tab := range m.screen.ModeTabs {
		mode := domain.Mode(tab.Tag())
		style := lipgloss.NewStyle().Padding(0, 1)
		if tab.Is(ports.StateActive) {
			style = style.Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color(m.theme.ModeColor(mode)))
		} else {
			style = style.Faint(true)
		}
		tabs = append(tabs, style.Render(mode.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTasks() []string {
	taskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTask))
	lines := []string{taskStyle.Bold(true).Render(fmt.Sprintf("Tasks (%s)", m.screen.Tasks.Text()))}

	for i, task := range m.items {
		icon := m.theme.IconTask
		style := taskStyle
		if task.Completed {
			icon = m.theme.IconDone
			style = style.Strikethrough(true).Faint(true)
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "› "
		}
		lines = append(lines, cursor+style.Render(icon+" "+task.Title))
	}

	if m.adding {
		lines = append(lines, "New task: "+m.input.View())
	}
	return []string{strings.Join(lines, "\n")}
}
