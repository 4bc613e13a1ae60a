package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestOpenRecreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.log")
	if err := os.WriteFile(path, []byte("old run\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	l, err := Open(dir, "demo", false)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	l.Info("engine started", "backend", "desktop")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "old run") {
		t.Error("log from previous run was not truncated")
	}
	if !strings.Contains(out, "engine started") || !strings.Contains(out, "backend=desktop") {
		t.Errorf("log = %q, expected message and key/value", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("log = %q, expected prefix %q", out, Prefix)
	}
	if l.Path() != path {
		t.Errorf("Path() = %q, expected %q", l.Path(), path)
	}
}

func TestOpenMissingDir(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope"), "demo", false); err == nil {
		t.Error("Open() in a missing directory should fail")
	}
}

func TestCloseTwice(t *testing.T) {
	l, err := Open(t.TempDir(), "demo", false)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close() = %v, expected nil", err)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	if err := SetLevel(l, "debug"); err != nil {
		t.Fatalf("SetLevel(debug) failed: %v", err)
	}
	if l.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, expected debug", l.GetLevel())
	}

	if err := SetLevel(l, "loud"); err == nil {
		t.Error("SetLevel(loud) should fail")
	}
	if l.GetLevel() != log.DebugLevel {
		t.Errorf("level changed after bad name: %v", l.GetLevel())
	}

	if err := SetLevel(l, ""); err != nil {
		t.Errorf("SetLevel(\"\") = %v, expected nil", err)
	}
}

func TestSystemInfo(t *testing.T) {
	var buf bytes.Buffer
	SystemInfo(New(&buf), "1.2.3")
	if out := buf.String(); !strings.Contains(out, "version=1.2.3") || !strings.Contains(out, "go=") {
		t.Errorf("SystemInfo() = %q", out)
	}
}
