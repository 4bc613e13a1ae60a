package core

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFitAspectBoundaries(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		expected      ViewportRect
		kind          string
	}{
		{
			name:     "exact 16:9",
			width:    1600,
			height:   900,
			expected: ViewportRect{OffsetX: 0, OffsetY: 0, ScaleX: 1, ScaleY: 1},
			kind:     "16:9",
		},
		{
			name:     "square window is narrow",
			width:    1000,
			height:   1000,
			expected: ViewportRect{OffsetX: 0, OffsetY: 0.21875, ScaleX: 1, ScaleY: 0.5625},
			kind:     "narrow",
		},
		{
			name:     "ultra wide window",
			width:    2000,
			height:   900,
			expected: ViewportRect{OffsetX: 0.1, OffsetY: 0, ScaleX: 0.8, ScaleY: 1},
			kind:     "wide",
		},
		{
			name:     "1080p is exact",
			width:    1920,
			height:   1080,
			expected: IdentityViewport(),
			kind:     "16:9",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vp, err := FitAspect(tc.width, tc.height)
			if err != nil {
				t.Fatalf("FitAspect(%d, %d) failed: %v", tc.width, tc.height, err)
			}
			if !approxEqual(vp.OffsetX, tc.expected.OffsetX) || !approxEqual(vp.OffsetY, tc.expected.OffsetY) ||
				!approxEqual(vp.ScaleX, tc.expected.ScaleX) || !approxEqual(vp.ScaleY, tc.expected.ScaleY) {
				t.Errorf("FitAspect(%d, %d) = %+v, expected %+v", tc.width, tc.height, vp, tc.expected)
			}
			if vp.Kind() != tc.kind {
				t.Errorf("Kind() = %q, expected %q", vp.Kind(), tc.kind)
			}
		})
	}
}

func TestFitAspectExactRatioIsBitIdentity(t *testing.T) {
	vp, err := FitAspect(1600, 900)
	if err != nil {
		t.Fatalf("FitAspect failed: %v", err)
	}
	if vp != IdentityViewport() {
		t.Errorf("FitAspect(1600, 900) = %+v, expected identity", vp)
	}
}

func TestFitAspectInvariants(t *testing.T) {
	for w := 1; w <= 2000; w += 37 {
		for h := 1; h <= 2000; h += 41 {
			vp, err := FitAspect(w, h)
			if err != nil {
				t.Fatalf("FitAspect(%d, %d) failed: %v", w, h, err)
			}

			if vp.OffsetX+vp.ScaleX > 1 || vp.OffsetY+vp.ScaleY > 1 {
				t.Fatalf("FitAspect(%d, %d) = %+v exceeds the window", w, h, vp)
			}
			for _, f := range []float64{vp.OffsetX, vp.OffsetY, vp.ScaleX, vp.ScaleY} {
				if f < 0 || f > 1 {
					t.Fatalf("FitAspect(%d, %d) = %+v has a field outside [0, 1]", w, h, vp)
				}
			}

			exact := w*9 == h*16
			fullX, fullY := vp.ScaleX == 1, vp.ScaleY == 1
			if exact {
				if vp != IdentityViewport() {
					t.Fatalf("FitAspect(%d, %d) = %+v, expected identity for exact ratio", w, h, vp)
				}
				continue
			}
			if fullX == fullY {
				t.Fatalf("FitAspect(%d, %d) = %+v, expected exactly one full axis", w, h, vp)
			}
			if fullX && vp.OffsetX != 0 || fullY && vp.OffsetY != 0 {
				t.Fatalf("FitAspect(%d, %d) = %+v, full axis must have zero offset", w, h, vp)
			}
		}
	}
}

func TestFitAspectIdempotent(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1280, 720}, {1200, 675}, {333, 777}, {3440, 1440}}
	for _, s := range sizes {
		a, errA := FitAspect(s[0], s[1])
		b, errB := FitAspect(s[0], s[1])
		if errA != nil || errB != nil {
			t.Fatalf("FitAspect(%d, %d) failed: %v / %v", s[0], s[1], errA, errB)
		}
		if a != b {
			t.Errorf("FitAspect(%d, %d) not idempotent: %+v vs %+v", s[0], s[1], a, b)
		}
	}
}

func TestFitAspectInvalidDimensions(t *testing.T) {
	tests := [][2]int{{0, 0}, {100, 0}, {0, 100}, {-5, 10}, {10, -5}}
	for _, tc := range tests {
		_, err := FitAspect(tc[0], tc[1])
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("FitAspect(%d, %d) error = %v, expected ErrInvalidDimensions", tc[0], tc[1], err)
		}
	}
}

func TestViewportPixels(t *testing.T) {
	vp, err := FitAspect(2000, 900)
	if err != nil {
		t.Fatalf("FitAspect failed: %v", err)
	}

	x, y, w, h := vp.Pixels(2000, 900)
	if x != 200 || y != 0 || w != 1600 || h != 900 {
		t.Errorf("Pixels() = (%d, %d, %d, %d), expected (200, 0, 1600, 900)", x, y, w, h)
	}

	x, y, w, h = IdentityViewport().Pixels(80, 48)
	if x != 0 || y != 0 || w != 80 || h != 48 {
		t.Errorf("identity Pixels() = (%d, %d, %d, %d), expected full surface", x, y, w, h)
	}
}
