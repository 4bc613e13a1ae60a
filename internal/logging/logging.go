// Package logging sets up the engine's charmbracelet/log logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// Prefix is printed in front of every log line.
const Prefix = "jage"

// Log is an open logger together with its backing file.
type Log struct {
	*log.Logger
	file *os.File
	path string
}

// Open creates <dir>/<name>.log, truncating any log from a previous run.
// When console is true, lines are also written to stderr.
func Open(dir, name string, console bool) (*Log, error) {
	path := filepath.Join(dir, name+".log")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot create %s: %w", path, err)
	}

	var w io.Writer = f
	if console {
		w = io.MultiWriter(f, os.Stderr)
	}

	return &Log{
		Logger: New(w),
		file:   f,
		path:   path,
	}, nil
}

// New returns a logger with the engine's options writing to w.
func New(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Close flushes and closes the log file.
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// SetLevel parses a level name ("debug", "info", ...). Unknown names leave
// the level unchanged and are returned as an error.
func SetLevel(l *log.Logger, name string) error {
	if name == "" {
		return nil
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	l.SetLevel(lvl)
	return nil
}

// SystemInfo logs the build and host description at startup.
func SystemInfo(l *log.Logger, version string) {
	host, _ := os.Hostname()
	l.Info("system info",
		"version", version,
		"go", runtime.Version(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"cpus", runtime.NumCPU(),
		"host", host,
	)
}
