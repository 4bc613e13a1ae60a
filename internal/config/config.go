// Package config provides YAML-based engine configuration loading for a
// game data directory.
package config

import "github.com/vovakirdan/jage/internal/platform"

// FileName is the config file looked up inside the data directory.
const FileName = "config.yaml"

// Config contains everything read from a game's config.yaml.
// Keys left out of the file keep their default values.
type Config struct {
	Name string `yaml:"name"` // Window title and log name; defaults to the directory name

	// Window
	Width          int  `yaml:"width"`
	Height         int  `yaml:"height"`
	Fullscreen     bool `yaml:"fullscreen"`
	UseDesktopSize bool `yaml:"useDesktopSize"` // Fullscreen at desktop resolution
	VSync          bool `yaml:"vsync"`

	// Controller/keyboard
	DeadZone float64 `yaml:"deadzone"` // Joystick magnitude below this reads as 0
	KeySpeed float64 `yaml:"keySpeed"` // Direction contributed by an arrow key

	// Render target and pacing
	RenderWidth  int `yaml:"renderWidth"`
	RenderHeight int `yaml:"renderHeight"`
	UpdateHz     int `yaml:"updateHz"`
	RenderHz     int `yaml:"renderHz"`

	// Runtime
	Backend  string    `yaml:"backend"`  // "desktop", "terminal" or "ssh"
	LogLevel string    `yaml:"logLevel"` // debug, info, warn, error
	Profile  string    `yaml:"profile"`  // "", cpu, mem, trace, block, mutex
	Stats    string    `yaml:"stats"`    // sqlite file in the data dir, "" disables
	SSH      SSHConfig `yaml:"ssh"`
}

// SSHConfig configures the "ssh" backend.
type SSHConfig struct {
	Address string `yaml:"address"`
	HostKey string `yaml:"hostKey"` // Relative paths resolve against the data directory
}

// WindowConfig returns the window settings for the platform layer.
func (c Config) WindowConfig() platform.WindowConfig {
	return platform.WindowConfig{
		Title:          c.Name,
		Width:          c.Width,
		Height:         c.Height,
		Fullscreen:     c.Fullscreen,
		UseDesktopSize: c.UseDesktopSize,
		VSync:          c.VSync,
		RenderWidth:    c.RenderWidth,
		RenderHeight:   c.RenderHeight,
	}
}

// Validate replaces nonsensical values with defaults and reports which keys
// were reset.
func (c *Config) Validate() []string {
	def := Default()
	var reset []string

	fixInt := func(key string, v *int, d int) {
		if *v <= 0 {
			*v = d
			reset = append(reset, key)
		}
	}
	fixInt("width", &c.Width, def.Width)
	fixInt("height", &c.Height, def.Height)
	fixInt("renderWidth", &c.RenderWidth, def.RenderWidth)
	fixInt("renderHeight", &c.RenderHeight, def.RenderHeight)
	fixInt("updateHz", &c.UpdateHz, def.UpdateHz)
	fixInt("renderHz", &c.RenderHz, def.RenderHz)

	if c.DeadZone < 0 {
		c.DeadZone = def.DeadZone
		reset = append(reset, "deadzone")
	}
	if c.KeySpeed < 0 {
		c.KeySpeed = def.KeySpeed
		reset = append(reset, "keySpeed")
	}
	if c.Backend == "" {
		c.Backend = def.Backend
		reset = append(reset, "backend")
	}

	return reset
}
