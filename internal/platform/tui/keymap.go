package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jage/internal/input"
)

// KeyMap defines the terminal key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Escape     key.Binding
	Enter      key.Binding
	Fullscreen key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "fullscreen"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "close"),
		),
	}
}

// Lookup translates a key message into an engine key. Alt+Enter maps to
// Enter with the Alt modifier set.
func (k KeyMap) Lookup(msg tea.KeyMsg) (code input.Key, alt bool, ok bool) {
	switch {
	case key.Matches(msg, k.Fullscreen):
		return input.KeyEnter, true, true
	case key.Matches(msg, k.Up):
		return input.KeyUp, false, true
	case key.Matches(msg, k.Down):
		return input.KeyDown, false, true
	case key.Matches(msg, k.Left):
		return input.KeyLeft, false, true
	case key.Matches(msg, k.Right):
		return input.KeyRight, false, true
	case key.Matches(msg, k.Escape):
		return input.KeyEscape, false, true
	case key.Matches(msg, k.Enter):
		return input.KeyEnter, msg.Alt, true
	}
	return input.KeyUnknown, false, false
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Fullscreen, k.Escape, k.Quit}
}

// HelpLine renders the short help as plain text, for logging.
func (k KeyMap) HelpLine() string {
	parts := make([]string, 0, len(k.ShortHelp()))
	for _, b := range k.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
