package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jage/internal/platform"
)

// frameMsg carries a rendered frame from Display to the program.
type frameMsg string

// Model is the Bubble Tea model presenting a Window. It only forwards
// input to the window and shows the last frame it was sent; all drawing
// happens in the engine's render goroutine.
type Model struct {
	win   *Window
	title string
	frame string
}

// NewModel creates the model for w.
func NewModel(w *Window, title string) Model {
	return Model{win: w, title: title}
}

// Init sets the terminal title and starts the key-hold ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.title),
		holdTickCmd(m.win.hold/2),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.win.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		m.frame = string(msg)
		return m, nil

	case holdTickMsg:
		m.win.expireKeys()
		return m, holdTickCmd(m.win.hold / 2)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Closing is the engine's job; the program quits when the window closes
	if key.Matches(msg, m.win.keys.Quit) {
		m.win.events.Push(platform.Closed{})
		return m, nil
	}

	if code, alt, ok := m.win.keys.Lookup(msg); ok {
		m.win.keyDown(code, alt)
	}
	return m, nil
}

// View renders the last frame.
func (m Model) View() string {
	return m.frame
}
