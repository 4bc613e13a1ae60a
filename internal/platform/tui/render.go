package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jage/internal/core"
)

// halfBlock paints the upper half of a cell in the foreground colour and
// the lower half in the background colour, giving two square-ish pixels per
// terminal cell.
const halfBlock = "▀"

// maxCachedStyles bounds the style cache; textured sprites can produce many
// distinct colour pairs.
const maxCachedStyles = 4096

// cell is the pair of pixels shown by one terminal cell.
type cell struct {
	top    core.RGBA
	bottom core.RGBA
}

// sampleCells maps the canvas into a cols x rows cell grid whose pixel
// height is 2*rows. Pixels outside the viewport get bg.
func sampleCells(c *core.Canvas, vp core.ViewportRect, cols, rows int, bg core.RGBA) [][]cell {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	x0, y0, w, h := vp.Pixels(cols, rows*2)
	pixel := func(px, py int) core.RGBA {
		if c == nil || w <= 0 || h <= 0 || px < x0 || px >= x0+w || py < y0 || py >= y0+h {
			return bg
		}
		// Sample at the centre of the physical pixel
		sx := ((px-x0)*2 + 1) * c.Width() / (2 * w)
		sy := ((py-y0)*2 + 1) * c.Height() / (2 * h)
		return c.At(sx, sy)
	}

	cells := make([][]cell, rows)
	for y := 0; y < rows; y++ {
		row := make([]cell, cols)
		for x := 0; x < cols; x++ {
			row[x] = cell{top: pixel(x, 2*y), bottom: pixel(x, 2*y+1)}
		}
		cells[y] = row
	}
	return cells
}

// frameRenderer turns canvases into styled half-block strings for one
// lipgloss renderer (one terminal or SSH session).
type frameRenderer struct {
	r      *lipgloss.Renderer
	styles map[cell]lipgloss.Style
}

func newFrameRenderer(r *lipgloss.Renderer) *frameRenderer {
	return &frameRenderer{r: r, styles: make(map[cell]lipgloss.Style)}
}

// render draws the canvas into a cols x rows frame.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func (f *frameRenderer) render(c *core.Canvas, vp core.ViewportRect, cols, rows int, bg core.RGBA) string {
	cells := sampleCells(c, vp, cols, rows, bg)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(cols*rows*len(halfBlock)*2 + rows)

	for y, row := range cells {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < len(row) {
			start := row[x]
			n := 0
			for x < len(row) && row[x] == start {
				n++
				x++
			}
			sb.WriteString(f.style(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

func (f *frameRenderer) style(c cell) lipgloss.Style {
	if st, ok := f.styles[c]; ok {
		return st
	}
	if len(f.styles) >= maxCachedStyles {
		clear(f.styles)
	}
	st := f.r.NewStyle().
		Foreground(lipgloss.Color(c.top.Hex())).
		Background(lipgloss.Color(c.bottom.Hex()))
	f.styles[c] = st
	return st
}
