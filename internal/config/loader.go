package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrDataDir is returned when the game data directory cannot be used.
var ErrDataDir = errors.New("config: data directory unavailable")

// CheckDataDir verifies that dir exists and is a directory.
func CheckDataDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDataDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDataDir, dir)
	}
	return nil
}

// Load reads <dir>/config.yaml over the defaults. Values are not validated;
// call Validate on the result.
//
// The returned Config is always usable: if the file is missing or malformed
// the embedded default file is used and the error is returned with it, for
// callers to log as a warning and otherwise ignore.
func Load(dir string) (Config, error) {
	def := Default()
	def.Name = filepath.Base(dir)

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return embeddedDefaults(def), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Decode into a copy so a half-applied malformed file never leaks out
	cfg := def
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return embeddedDefaults(def), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = def.Name
	}

	return cfg, nil
}

// ResolvePath returns p relative to the data directory unless it is absolute.
func ResolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
