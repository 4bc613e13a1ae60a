// Package sprite implements the engine's entities: fixed-size quads with a
// position, a velocity direction and a speed, drawn either from a texture
// or as a solid color.
package sprite

import (
	"fmt"
	"image"
	_ "image/png" // PNG textures
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/jage/internal/core"
)

// Defaults for sprites that leave fields out of their YAML.
const (
	DefaultSize = 50.0
	// DefaultSpeed scales direction per elapsed millisecond, so a direction
	// of 75 moves the sprite 300 units per second.
	DefaultSpeed = 0.004
)

// Sprite is a single drawable entity.
type Sprite struct {
	Name         string
	Position     core.Vec2
	Dir          core.Vec2 // velocity direction, set by input or a constant from YAML
	Speed        float64
	Size         float64
	Color        core.RGBA
	Texture      image.Image // nil draws a solid Color quad
	LockToScreen bool        // clamp inside the render target
}

// File is the YAML layout of a sprite definition.
type File struct {
	Name         string     `yaml:"name"`
	Size         float64    `yaml:"size"`
	Speed        float64    `yaml:"speed"`
	Color        *core.RGBA `yaml:"color"`
	Texture      string     `yaml:"texture"`  // PNG path, relative to the YAML file
	Velocity     []float64  `yaml:"velocity"` // constant [x, y] direction
	LockToScreen bool       `yaml:"lockToScreen"`
}

// Default creates a solid-color sprite with default size and speed.
func Default(name string, col core.RGBA) *Sprite {
	return &Sprite{
		Name:  name,
		Speed: DefaultSpeed,
		Size:  DefaultSize,
		Color: col,
	}
}

// Load reads a sprite definition from a YAML file. A referenced texture is
// decoded eagerly; any failure is returned and the caller picks a fallback.
func Load(path string) (*Sprite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sprite: failed to read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sprite: failed to parse %s: %w", path, err)
	}

	return FromFile(f, filepath.Dir(path))
}

// FromFile builds a sprite from a decoded definition. Texture paths are
// resolved against baseDir.
func FromFile(f File, baseDir string) (*Sprite, error) {
	s := Default(f.Name, core.White)
	if f.Size > 0 {
		s.Size = f.Size
	}
	if f.Speed > 0 {
		s.Speed = f.Speed
	}
	if f.Color != nil {
		s.Color = *f.Color
	}
	s.LockToScreen = f.LockToScreen

	switch len(f.Velocity) {
	case 0:
	case 2:
		s.Dir = core.V(f.Velocity[0], f.Velocity[1])
	default:
		return nil, fmt.Errorf("sprite: %q velocity needs 2 components, got %d", f.Name, len(f.Velocity))
	}

	if f.Texture != "" {
		texPath := f.Texture
		if !filepath.IsAbs(texPath) {
			texPath = filepath.Join(baseDir, texPath)
		}
		tex, err := loadTexture(texPath)
		if err != nil {
			return nil, err
		}
		s.Texture = tex
	}

	return s, nil
}

func loadTexture(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sprite: failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("sprite: failed to decode texture %s: %w", path, err)
	}
	return img, nil
}

// SetPosition moves the sprite's center to p.
func (s *Sprite) SetPosition(p core.Vec2) {
	s.Position = p
}

// SetVelocityDir replaces the direction the sprite moves in.
func (s *Sprite) SetVelocityDir(dir core.Vec2) {
	s.Dir = dir
}

// Bounds returns the quad the sprite covers, centered on its position.
func (s *Sprite) Bounds() core.Rect {
	return core.CenteredRect(s.Position, s.Size, s.Size)
}

// Update advances the position by Dir * Speed * elapsedMillis. A zero
// elapsed time is a zero-distance move. Lock-to-screen sprites are then
// clamped so their quad stays inside bounds.
func (s *Sprite) Update(elapsedMillis float64, bounds core.Rect) {
	if elapsedMillis > 0 && !s.Dir.IsZero() {
		s.Position = s.Position.Add(s.Dir.Scaled(s.Speed * elapsedMillis))
	}

	if s.LockToScreen {
		half := s.Size / 2
		s.Position.X = core.ClampF(s.Position.X, bounds.X+half, bounds.Right()-half)
		s.Position.Y = core.ClampF(s.Position.Y, bounds.Y+half, bounds.Bottom()-half)
	}
}

// Draw renders the sprite into the canvas. Sprites entirely off the canvas
// are skipped.
func (s *Sprite) Draw(c *core.Canvas) {
	b := s.Bounds()
	if !b.Intersects(c.Bounds()) {
		return
	}

	if s.Texture != nil {
		c.DrawImage(b, s.Texture)
		return
	}
	c.FillRect(b, s.Color)
}
