package core

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Canvas is the offscreen render target. Sprites draw into it at the
// logical render resolution; window backends then present it scaled into
// the current viewport.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a canvas of the given logical size, cleared to black.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	c.Clear(Black)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.img.Rect.Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.img.Rect.Dy()
}

// Bounds returns the canvas area as a Rect.
func (c *Canvas) Bounds() Rect {
	return NewRect(0, 0, float64(c.Width()), float64(c.Height()))
}

// Clear fills the entire canvas with col.
func (c *Canvas) Clear(col RGBA) {
	pix := c.img.Pix
	if len(pix) < 4 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = col.R, col.G, col.B, col.A
	// Doubling copy fills the buffer in log(n) steps
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// Set places a pixel at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, col RGBA) {
	c.img.SetRGBA(x, y, col.Std())
}

// At returns the pixel at the given position.
// Returns transparent black for out-of-bounds coordinates.
func (c *Canvas) At(x, y int) RGBA {
	return RGBA(c.img.RGBAAt(x, y))
}

// FillRect fills the part of r that lies on the canvas.
func (c *Canvas) FillRect(r Rect, col RGBA) {
	dst := toImageRect(r).Intersect(c.img.Rect)
	if dst.Empty() {
		return
	}
	xdraw.Draw(c.img, dst, image.NewUniform(col.Std()), image.Point{}, xdraw.Over)
}

// DrawImage draws src scaled into r, blending over existing pixels.
func (c *Canvas) DrawImage(r Rect, src image.Image) {
	dst := toImageRect(r)
	if !dst.Overlaps(c.img.Rect) {
		return
	}
	xdraw.ApproxBiLinear.Scale(c.img, dst, src, src.Bounds(), xdraw.Over, nil)
}

// CopyPixels copies the RGBA bytes, row-major, into dst and returns the
// number of bytes copied.
func (c *Canvas) CopyPixels(dst []byte) int {
	return copy(dst, c.img.Pix)
}

func toImageRect(r Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.Right()), int(r.Bottom()))
}
