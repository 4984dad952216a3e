package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/logical-psycho/internal/core"
)

// KeyMap holds the bindings shared by every screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Select  key.Binding
	Next    key.Binding
	Back    key.Binding
	Scores  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns WASD/arrow movement with single-letter commands.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("w", "up", "k"), key.WithHelp("↑/w", "up")),
		Down:    key.NewBinding(key.WithKeys("s", "down", "j"), key.WithHelp("↓/s", "down")),
		Left:    key.NewBinding(key.WithKeys("a", "left", "h"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("d", "right", "l"), key.WithHelp("→/d", "right")),
		Pause:   key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Next:    key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next level")),
		Back:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Scores:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the menu footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns every binding, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pause, k.Restart, k.Next, k.Back},
		{k.Select, k.Scores, k.Quit},
	}
}

// Action maps an in-level key press to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Next):
		return core.ActionConfirm
	}
	return core.ActionNone
}
