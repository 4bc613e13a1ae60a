package core

import (
	"image"
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(64, 36)

	if c.Width() != 64 {
		t.Errorf("Width() = %d, expected 64", c.Width())
	}
	if c.Height() != 36 {
		t.Errorf("Height() = %d, expected 36", c.Height())
	}

	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.At(x, y) != Black {
				t.Fatalf("new canvas should be black, got %v at (%d, %d)", c.At(x, y), x, y)
			}
		}
	}
}

func TestCanvasClearAndSet(t *testing.T) {
	c := NewCanvas(13, 7)
	c.Clear(Gray)

	if c.At(12, 6) != Gray {
		t.Errorf("At(12, 6) = %v, expected gray after Clear", c.At(12, 6))
	}

	c.Set(3, 4, White)
	if c.At(3, 4) != White {
		t.Errorf("At(3, 4) = %v, expected white", c.At(3, 4))
	}

	// Out of bounds should be silent
	c.Set(-1, 0, White)
	c.Set(100, 0, White)
	if c.At(-1, 0) != (RGBA{}) {
		t.Errorf("out of bounds At() = %v, expected zero color", c.At(-1, 0))
	}
}

func TestCanvasFillRectClips(t *testing.T) {
	c := NewCanvas(10, 10)
	red := RGBA{R: 255, A: 255}

	c.FillRect(NewRect(-5, -5, 8, 8), red)

	if c.At(0, 0) != red || c.At(2, 2) != red {
		t.Error("visible part of rect should be filled")
	}
	if c.At(3, 3) != Black {
		t.Errorf("At(3, 3) = %v, expected untouched black", c.At(3, 3))
	}

	// Entirely off-canvas is a no-op
	c.FillRect(NewRect(50, 50, 5, 5), red)
}

func TestCanvasDrawImageScales(t *testing.T) {
	c := NewCanvas(20, 20)
	src := image.NewUniform(color.RGBA{G: 255, A: 255})
	tex := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			tex.Set(x, y, src.C)
		}
	}

	c.DrawImage(NewRect(5, 5, 10, 10), tex)

	// Bilinear filtering may round a unit off
	if got := c.At(10, 10); got.G < 250 || got.R > 5 || got.B > 5 {
		t.Errorf("At(10, 10) = %v, expected green", got)
	}
	if c.At(2, 2) != Black {
		t.Errorf("At(2, 2) = %v, expected black outside the quad", c.At(2, 2))
	}
}

func TestCanvasCopyPixels(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(1, 0, White)

	buf := make([]byte, 4*4*2)
	if n := c.CopyPixels(buf); n != len(buf) {
		t.Fatalf("CopyPixels() = %d, expected %d", n, len(buf))
	}
	if buf[4] != 255 || buf[5] != 255 || buf[6] != 255 {
		t.Errorf("pixel (1, 0) = %v, expected white", buf[4:8])
	}
}

func TestColorYAML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected RGBA
		wantErr  bool
	}{
		{"svg name", "royalblue", RGBA{R: 65, G: 105, B: 225, A: 255}, false},
		{"hex", "'#ff8000'", RGBA{R: 255, G: 128, A: 255}, false},
		{"hex with alpha", "'#ff800080'", RGBA{R: 255, G: 128, A: 128}, false},
		{"rgb sequence", "[1, 2, 3]", RGBA{R: 1, G: 2, B: 3, A: 255}, false},
		{"rgba sequence", "[1, 2, 3, 4]", RGBA{R: 1, G: 2, B: 3, A: 4}, false},
		{"unknown name", "notacolor", RGBA{}, true},
		{"too few components", "[1, 2]", RGBA{}, true},
		{"out of range", "[1, 2, 300]", RGBA{}, true},
		{"mapping", "{r: 1}", RGBA{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c RGBA
			err := yaml.Unmarshal([]byte(tc.input), &c)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error decoding %q, got %v", tc.input, c)
				}
				return
			}
			if err != nil {
				t.Fatalf("decoding %q failed: %v", tc.input, err)
			}
			if c != tc.expected {
				t.Errorf("decoded %q = %v, expected %v", tc.input, c, tc.expected)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	if got := (RGBA{R: 0x12, G: 0xab, B: 0x0f, A: 0x80}).Hex(); got != "#12ab0f" {
		t.Errorf("Hex() = %q, expected #12ab0f", got)
	}
}
