// Package tui implements terminal window backends on Bubble Tea: a local
// terminal ("terminal") and an SSH server for one remote player ("ssh").
// Canvases are drawn with half-block characters, two pixels per cell.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// holdTickMsg is sent periodically so held keys can expire.
type holdTickMsg time.Time

// holdTickCmd returns a Bubble Tea command that sends a hold tick after interval.
func holdTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return holdTickMsg(t)
	})
}
