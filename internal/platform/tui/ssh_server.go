package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/jage/internal/platform"
)

// Defaults for the SSH backend when the options leave them empty.
const (
	DefaultSSHAddress = ":23234"
	DefaultHostKey    = "host_key"
	idleTimeout       = 30 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

func init() {
	platform.Register("ssh", "Serve the window to one SSH session", newSSHWindow)
}

// SSHWindow serves the window over SSH. One session watches and steers at
// a time; further sessions are turned away. The window closes when the
// watching session ends.
type SSHWindow struct {
	*Window

	address     string
	hostKeyPath string

	runMu    sync.Mutex
	server   *ssh.Server
	listener net.Listener
	served   chan struct{}

	ownerMu sync.Mutex
	owner   ssh.Session
}

func newSSHWindow(opts platform.Options) (platform.Backend, error) {
	s := &SSHWindow{
		Window:      newWindow(opts.Logger),
		address:     opts.SSHAddress,
		hostKeyPath: opts.HostKeyPath,
	}
	if s.address == "" {
		s.address = DefaultSSHAddress
	}
	if s.hostKeyPath == "" {
		s.hostKeyPath = DefaultHostKey
	}
	return s, nil
}

// Create starts listening on first use. Later calls only switch the
// watching session's alternate screen to match cfg.Fullscreen.
func (s *SSHWindow) Create(cfg platform.WindowConfig) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.server != nil {
		s.setFullscreen(cfg.Fullscreen)
		return nil
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(s.hostKeyPath), 0o700); err != nil {
		return fmt.Errorf("%w: cannot create host key directory: %w", platform.ErrCreateWindow, err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(s.address),
		wish.WithHostKeyPath(s.hostKeyPath),
		wish.WithIdleTimeout(idleTimeout),
		wish.WithBanner(cfg.Title+"\n"),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithProgramHandler(s.programHandler, termenv.ANSI256),
			s.sessionMiddleware,
		),
	)
	if err != nil {
		return fmt.Errorf("%w: cannot create SSH server: %w", platform.ErrCreateWindow, err)
	}

	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("%w: cannot listen on %s: %w", platform.ErrCreateWindow, s.address, err)
	}

	s.server = server
	s.listener = ln
	s.served = make(chan struct{})
	// Sessions always start on the alternate screen
	cfg.Fullscreen = true
	s.markOpen(cfg)

	go func() {
		defer close(s.served)
		if err := server.Serve(ln); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("ssh server error", "error", err)
		}
	}()

	s.logger.Info("waiting for ssh session", "address", ln.Addr().String(), "keys", s.keys.HelpLine())
	return nil
}

// Addr returns the address the server listens on, or "" before Create.
func (s *SSHWindow) Addr() string {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// claim makes sess the watching session unless another one already is.
func (s *SSHWindow) claim(sess ssh.Session) bool {
	s.ownerMu.Lock()
	defer s.ownerMu.Unlock()

	if s.owner != nil {
		return false
	}
	s.owner = sess
	return true
}

// release clears sess as the watching session and reports whether it was.
func (s *SSHWindow) release(sess ssh.Session) bool {
	s.ownerMu.Lock()
	defer s.ownerMu.Unlock()

	if s.owner != sess {
		return false
	}
	s.owner = nil
	return true
}

// programHandler creates the Bubble Tea program for a new session.
func (s *SSHWindow) programHandler(sess ssh.Session) *tea.Program {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		wish.Fatalln(sess, "a terminal is required, connect with ssh -t")
		return nil
	}
	if !s.IsOpen() {
		wish.Fatalln(sess, "the game has ended")
		return nil
	}
	if !s.claim(sess) {
		s.logger.Info("session refused, window in use", "user", sess.User())
		wish.Fatalln(sess, "someone else is playing, try again later")
		return nil
	}

	opts := append(bubbletea.MakeOptions(sess), tea.WithAltScreen())
	p := tea.NewProgram(NewModel(s.Window, s.Title()), opts...)
	s.attach(p, bubbletea.MakeRenderer(sess), pty.Window.Width, pty.Window.Height)
	return p
}

// sessionMiddleware logs SSH session events and closes the window when the
// watching session ends.
func (s *SSHWindow) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)

		if s.release(sess) {
			if p := s.attachedProgram(); p != nil {
				s.detach(p)
			}
			s.events.Push(platform.Closed{})
		}
	}
}

// Close ends the watching session and shuts the server down.
func (s *SSHWindow) Close() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if p := s.markClosed(); p != nil {
		p.Quit()
	}
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		err = s.server.Close()
	}
	// Serve tracks the listener only once it runs; close it here so a
	// Serve that started after Shutdown still returns
	if lerr := s.listener.Close(); lerr != nil && !errors.Is(lerr, net.ErrClosed) && err == nil {
		err = lerr
	}
	<-s.served
	s.server = nil
	s.listener = nil

	if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("tui: ssh shutdown: %w", err)
	}
	return nil
}
