package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestEmbeddedDefaultsMatchCompiled(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults = %+v, compiled = %+v", cfg, Default())
	}
}

func TestEmbeddedDefaultsKeepName(t *testing.T) {
	def := Default()
	def.Name = "spacefight"

	if cfg := embeddedDefaults(def); cfg != def {
		t.Errorf("embeddedDefaults() = %+v, expected %+v", cfg, def)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spacefight")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	cfg, err := Load(dir)
	if err == nil {
		t.Error("Load() should report the missing file")
	}

	expected := Default()
	expected.Name = "spacefight"
	if cfg != expected {
		t.Errorf("Load() = %+v, expected defaults %+v", cfg, expected)
	}
}

func TestLoadMalformedFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "width: 640\nheight: [oops\n")

	cfg, err := Load(dir)
	if err == nil {
		t.Fatal("Load() should report the parse error")
	}
	if cfg.Width != Default().Width {
		t.Errorf("Width = %d, expected default %d (no partial apply)", cfg.Width, Default().Width)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
name: Space Fight
width: 1600
fullscreen: true
deadzone: 20.5
backend: terminal
ssh:
  address: ":2222"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Name != "Space Fight" || cfg.Width != 1600 || !cfg.Fullscreen || cfg.DeadZone != 20.5 {
		t.Errorf("Load() did not apply file values: %+v", cfg)
	}
	if cfg.Backend != "terminal" || cfg.SSH.Address != ":2222" {
		t.Errorf("Load() did not apply runtime values: %+v", cfg)
	}

	def := Default()
	if cfg.Height != def.Height || cfg.KeySpeed != def.KeySpeed || cfg.VSync != def.VSync {
		t.Errorf("Load() lost defaults for missing keys: %+v", cfg)
	}
	if cfg.SSH.HostKey != def.SSH.HostKey {
		t.Errorf("SSH.HostKey = %q, expected default %q", cfg.SSH.HostKey, def.SSH.HostKey)
	}
}

func TestValidateResetsNonsense(t *testing.T) {
	cfg := Default()
	cfg.Width = 0
	cfg.UpdateHz = -1
	cfg.DeadZone = -3
	cfg.Backend = ""

	reset := cfg.Validate()

	if cfg.Width != Default().Width || cfg.UpdateHz != Default().UpdateHz || cfg.DeadZone != Default().DeadZone {
		t.Errorf("Validate() left bad values: %+v", cfg)
	}
	if cfg.Backend != "desktop" {
		t.Errorf("Backend = %q, expected desktop", cfg.Backend)
	}
	if len(reset) != 4 {
		t.Errorf("Validate() reset %v, expected 4 keys", reset)
	}

	clean := Default()
	if reset := clean.Validate(); len(reset) != 0 {
		t.Errorf("Validate() on defaults reset %v", reset)
	}
}

func TestCheckDataDir(t *testing.T) {
	dir := t.TempDir()
	if err := CheckDataDir(dir); err != nil {
		t.Errorf("CheckDataDir(existing) = %v", err)
	}

	if err := CheckDataDir(filepath.Join(dir, "missing")); !errors.Is(err, ErrDataDir) {
		t.Errorf("CheckDataDir(missing) = %v, expected ErrDataDir", err)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := CheckDataDir(file); !errors.Is(err, ErrDataDir) {
		t.Errorf("CheckDataDir(file) = %v, expected ErrDataDir", err)
	}
}

func TestWindowConfig(t *testing.T) {
	cfg := Default()
	cfg.Name = "demo"
	wc := cfg.WindowConfig()

	if wc.Title != "demo" || wc.Width != 1200 || wc.Height != 675 || wc.RenderWidth != 1280 || wc.RenderHeight != 720 {
		t.Errorf("WindowConfig() = %+v", wc)
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("game", "stats.db"); got != filepath.Join("game", "stats.db") {
		t.Errorf("ResolvePath(relative) = %q", got)
	}
	if got := ResolvePath("game", "/tmp/x"); got != "/tmp/x" {
		t.Errorf("ResolvePath(absolute) = %q", got)
	}
	if got := ResolvePath("game", ""); got != "" {
		t.Errorf("ResolvePath(empty) = %q", got)
	}
}
