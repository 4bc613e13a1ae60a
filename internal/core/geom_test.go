package core

import "testing"

func TestRectIntersects(t *testing.T) {
	screen := NewRect(0, 0, 1280, 720)

	tests := []struct {
		name     string
		r        Rect
		expected bool
	}{
		{"inside", CenteredRect(V(640, 360), 50, 50), true},
		{"straddles left edge", CenteredRect(V(0, 360), 50, 50), true},
		{"straddles bottom-right corner", CenteredRect(V(1280, 720), 50, 50), true},
		{"touches right edge only", NewRect(1280, 100, 50, 50), false},
		{"above the screen", NewRect(100, -60, 50, 50), false},
		{"fractional overlap", NewRect(-49.5, 0, 50, 50), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Intersects(screen); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := screen.Intersects(tc.r); got != tc.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(V(100, 50), 20, 10)

	if r.X != 90 || r.Y != 45 {
		t.Errorf("origin = (%v, %v), expected (90, 45)", r.X, r.Y)
	}
	if r.Right() != 110 || r.Bottom() != 55 {
		t.Errorf("edges = (%v, %v), expected (110, 55)", r.Right(), r.Bottom())
	}
}

func TestVec2(t *testing.T) {
	v := V(1, -2).Add(V(3, 4)).Scaled(2)
	if v != V(8, 4) {
		t.Errorf("got %v, expected (8, 4)", v)
	}
	if !(Vec2{}).IsZero() || V(0, 0.1).IsZero() {
		t.Error("IsZero() wrong")
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{25, 25, 1255, 25},
		{-3.5, 25, 1255, 25},
		{1300, 25, 1255, 1255},
		{640.25, 25, 1255, 640.25},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
