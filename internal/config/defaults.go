package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		// this size fits in most screens in windowed mode
		Width:          1200,
		Height:         675,
		Fullscreen:     false,
		UseDesktopSize: true,
		VSync:          true,
		DeadZone:       15,
		KeySpeed:       75,
		// render internally to 720p widescreen
		RenderWidth:  1280,
		RenderHeight: 720,
		UpdateHz:     60,
		RenderHz:     60,
		Backend:      "desktop",
		LogLevel:     "info",
		Stats:        "stats.db",
		SSH: SSHConfig{
			Address: ":23234",
			HostKey: "host_key",
		},
	}
}

// embeddedDefaults decodes the embedded default file over def.
// Falls back to def if the embedded file does not parse.
func embeddedDefaults(def Config) Config {
	cfg := def
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return def
	}
	return cfg
}
