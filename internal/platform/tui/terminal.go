package tui

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/jage/internal/platform"
)

func init() {
	platform.Register("terminal", "Local terminal, two pixels per character cell", newTerminal)
}

// Terminal presents the window in the controlling terminal.
type Terminal struct {
	*Window

	runMu sync.Mutex
	done  chan struct{} // closed when the program exits
}

func newTerminal(opts platform.Options) (platform.Backend, error) {
	return &Terminal{Window: newWindow(opts.Logger)}, nil
}

// Create starts the Bubble Tea program on first use. Later calls only
// switch the alternate screen to match cfg.Fullscreen.
func (t *Terminal) Create(cfg platform.WindowConfig) error {
	t.runMu.Lock()
	defer t.runMu.Unlock()

	if p := t.attachedProgram(); p != nil {
		t.setFullscreen(cfg.Fullscreen)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("%w: stdout is not a terminal", platform.ErrCreateWindow)
	}

	cols, rows := defaultCols, defaultRows
	if w, h, err := term.GetSize(fd); err == nil {
		cols, rows = w, h
	}

	var opts []tea.ProgramOption
	if cfg.Fullscreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(NewModel(t.Window, cfg.Title), opts...)

	t.markOpen(cfg)
	t.attach(p, lipgloss.DefaultRenderer(), cols, rows)

	done := make(chan struct{})
	t.done = done
	go func() {
		defer close(done)
		if _, err := p.Run(); err != nil {
			t.logger.Error("terminal program failed", "error", err)
		}
		// Exited on its own (signal, broken terminal): report it as closed
		if t.detach(p) {
			t.events.Push(platform.Closed{})
		}
	}()

	t.logger.Info("terminal window created", "cols", cols, "rows", rows, "keys", t.keys.HelpLine())
	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (t *Terminal) Close() error {
	t.runMu.Lock()
	defer t.runMu.Unlock()

	if p := t.markClosed(); p != nil {
		p.Quit()
	}
	if t.done != nil {
		<-t.done
		t.done = nil
	}
	return nil
}
