package core

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// RGBA is a color that can be written in YAML as an SVG color name
// ("royalblue"), a hex string ("#4169e1" or "#4169e1ff") or a sequence of
// three or four 0-255 components ([65, 105, 225] or [65, 105, 225, 255]).
type RGBA color.RGBA

// Colors used by the engine itself.
var (
	Black = RGBA{A: 0xff}
	Gray  = RGBA{R: 128, G: 128, B: 128, A: 0xff}
	White = RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Std returns the image/color representation.
func (c RGBA) Std() color.RGBA {
	return color.RGBA(c)
}

// Hex formats the color as "#rrggbb", dropping alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String formats the color as "(r, g, b, a)".
func (c RGBA) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// ParseColor decodes a color name or hex string.
func ParseColor(s string) (RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return RGBA{}, fmt.Errorf("core: bad hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return RGBA{}, fmt.Errorf("core: bad hex color %q: %w", s, err)
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}

	named, ok := colornames.Map[s]
	if !ok {
		return RGBA{}, fmt.Errorf("core: unknown color %q", s)
	}
	return RGBA(named), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *RGBA) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseColor(node.Value)
		if err != nil {
			return err
		}
		*c = parsed
		return nil

	case yaml.SequenceNode:
		var parts []int
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("core: color components: %w", err)
		}
		if len(parts) != 3 && len(parts) != 4 {
			return fmt.Errorf("core: color needs 3 or 4 components, got %d", len(parts))
		}
		// Alpha defaults to opaque
		parts = append(parts, 255)
		for _, p := range parts[:4] {
			if p < 0 || p > 255 {
				return fmt.Errorf("core: color component %d out of range", p)
			}
		}
		*c = RGBA{R: uint8(parts[0]), G: uint8(parts[1]), B: uint8(parts[2]), A: uint8(parts[3])}
		return nil
	}

	return fmt.Errorf("core: cannot decode color from line %d", node.Line)
}

// MarshalYAML implements yaml.Marshaler.
func (c RGBA) MarshalYAML() (any, error) {
	return []int{int(c.R), int(c.G), int(c.B), int(c.A)}, nil
}
