package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/jage/internal/input"
	"github.com/vovakirdan/jage/internal/platform"
)

// axisRange converts Ebitengine's [-1, 1] gamepad axes to the [-100, 100]
// range the dead zone is configured in.
const axisRange = 100

// keyBindings maps keyboard keys to engine keys.
var keyBindings = []struct {
	key  ebiten.Key
	code input.Key
}{
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyW, input.KeyUp},
	{ebiten.KeyS, input.KeyDown},
	{ebiten.KeyA, input.KeyLeft},
	{ebiten.KeyD, input.KeyRight},
	{ebiten.KeyEscape, input.KeyEscape},
	{ebiten.KeyEnter, input.KeyEnter},
	{ebiten.KeyNumpadEnter, input.KeyEnter},
}

// game adapts Window to ebiten.Game.
type game struct {
	w     *Window
	frame *ebiten.Image
	pads  []ebiten.GamepadID
}

func (g *game) Update() error {
	if g.w.isTerminated() {
		return ebiten.Termination
	}

	if ebiten.IsWindowBeingClosed() {
		g.w.requestClose()
	}

	alt := ebiten.IsKeyPressed(ebiten.KeyAlt)
	st := input.NewState()
	for _, b := range keyBindings {
		switch {
		case inpututil.IsKeyJustPressed(b.key):
			g.w.events.Push(platform.KeyPressed{Code: b.code, Alt: alt})
		case inpututil.IsKeyJustReleased(b.key):
			g.w.events.Push(platform.KeyReleased{Code: b.code})
		}
		if ebiten.IsKeyPressed(b.key) {
			st.Press(b.code)
		}
	}

	st.AxisX, st.AxisY = g.readAxes()
	g.w.setInput(st)
	return nil
}

// readAxes returns the left stick (axes 0 and 1) of the first gamepad.
func (g *game) readAxes() (x, y float64) {
	g.pads = ebiten.AppendGamepadIDs(g.pads[:0])
	if len(g.pads) == 0 {
		return 0, 0
	}

	id := g.pads[0]
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		x = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	} else if ebiten.GamepadAxisCount(id) >= 2 {
		x = ebiten.GamepadAxisValue(id, 0)
		y = ebiten.GamepadAxisValue(id, 1)
	}
	return x * axisRange, y * axisRange
}

func (g *game) Draw(screen *ebiten.Image) {
	w := g.w

	w.mu.Lock()
	screen.Fill(w.clearColor.Std())
	if w.pixels == nil {
		w.mu.Unlock()
		return
	}
	if g.frame == nil || g.frame.Bounds().Dx() != w.frameW || g.frame.Bounds().Dy() != w.frameH {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(w.frameW, w.frameH)
	}
	g.frame.WritePixels(w.pixels)
	vp := w.view
	fw, fh := w.frameW, w.frameH
	w.mu.Unlock()

	b := screen.Bounds()
	x, y, vw, vh := vp.Pixels(b.Dx(), b.Dy())
	if vw <= 0 || vh <= 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(vw)/float64(fw), float64(vh)/float64(fh))
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.frame, op)
}

// Layout renders at the window's own size so the viewport math sees real
// pixels.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w.layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
