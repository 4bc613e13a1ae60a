package core

import (
	"errors"
	"fmt"
	"math"
)

// Logical aspect ratio preserved inside the physical window.
const (
	AspectWidth  = 16.0
	AspectHeight = 9.0
)

// ErrInvalidDimensions is returned when a window size has a non-positive side.
var ErrInvalidDimensions = errors.New("core: invalid window dimensions")

// ViewportRect is the normalized sub-rectangle of the window that the render
// target is presented into. All fields are fractions in [0, 1].
type ViewportRect struct {
	OffsetX float64
	OffsetY float64
	ScaleX  float64
	ScaleY  float64
}

// IdentityViewport covers the whole window.
func IdentityViewport() ViewportRect {
	return ViewportRect{ScaleX: 1, ScaleY: 1}
}

// FitAspect computes the letterboxed (or pillarboxed) viewport that keeps a
// 16:9 image undistorted inside a width x height window.
func FitAspect(width, height int) (ViewportRect, error) {
	if width <= 0 || height <= 0 {
		return ViewportRect{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	vp := IdentityViewport()
	w, h := float64(width), float64(height)
	currentRatio := w / h
	targetRatio := AspectWidth / AspectHeight

	switch {
	case currentRatio > targetRatio:
		// wider than 16:9, bars left and right
		vp.ScaleX = math.Min(1, h*targetRatio/w)
		vp.OffsetX = (1 - vp.ScaleX) / 2
	case currentRatio < targetRatio:
		// narrower than 16:9, bars top and bottom
		vp.ScaleY = math.Min(1, w*(AspectHeight/AspectWidth)/h)
		vp.OffsetY = (1 - vp.ScaleY) / 2
	}

	return vp, nil
}

// Kind describes the viewport shape for logging: "16:9", "wide" or "narrow".
func (v ViewportRect) Kind() string {
	switch {
	case v.ScaleX < 1:
		return "wide"
	case v.ScaleY < 1:
		return "narrow"
	default:
		return "16:9"
	}
}

// Pixels maps the viewport onto a physical width x height surface, rounding
// to whole pixels. The result never extends past the surface.
func (v ViewportRect) Pixels(width, height int) (x, y, w, h int) {
	fw, fh := float64(width), float64(height)
	x = int(math.Round(v.OffsetX * fw))
	y = int(math.Round(v.OffsetY * fh))
	w = int(math.Round(v.ScaleX * fw))
	h = int(math.Round(v.ScaleY * fh))
	if x+w > width {
		w = width - x
	}
	if y+h > height {
		h = height - y
	}
	return x, y, w, h
}

// String formats the viewport like the engine's resize log line.
func (v ViewportRect) String() string {
	return fmt.Sprintf("wo:%f, ho:%f; ws:%f, hs:%f", v.OffsetX, v.OffsetY, v.ScaleX, v.ScaleY)
}
