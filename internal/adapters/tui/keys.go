package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start    key.Binding
	Pause    key.Binding
	Toggle   key.Binding
	Reset    key.Binding
	Focus    key.Binding
	Short    key.Binding
	Long     key.Binding
	NextMode key.Binding
	Add      key.Binding
	Delete   key.Binding
	Done     key.Binding
	Up       key.Binding
	Down     key.Binding
	Notify   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap(withTasks bool) keyMap {
	k := keyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Focus: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "focus"),
		),
		Short: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "short break"),
		),
		Long: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "long break"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next mode"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete task"),
		),
		Done: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle done"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Notify: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notifications"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	for _, b := range []*key.Binding{&k.Add, &k.Delete, &k.Done, &k.Up, &k.Down} {
		b.SetEnabled(withTasks)
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.NextMode, k.Add, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Toggle, k.Reset},
		{k.Focus, k.Short, k.Long, k.NextMode},
		{k.Add, k.Delete, k.Done, k.Up, k.Down},
		{k.Notify, k.Help, k.Quit},
	}
}
