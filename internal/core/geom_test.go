package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, true},
		{"touching edge", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, false},
		{"apart", Box{0, 0, 10, 10}, Box{0, 30, 10, 10}, false},
		{"contained", Box{0, 0, 20, 20}, Box{5, 5, 1.5, 1.5}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxPenetration(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 10, H: 10}
	b := Box{X: 8, Y: 3, W: 10, H: 10}

	px, py := a.Penetration(b)
	if px != 2 {
		t.Errorf("px = %v, expected 2", px)
	}
	if py != 7 {
		t.Errorf("py = %v, expected 7", py)
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(50, 40, 8)
	if b.X != 42 || b.Y != 32 || b.W != 16 || b.H != 16 {
		t.Errorf("BoxAround = %+v", b)
	}
	if b.CenterX() != 50 || b.CenterY() != 40 {
		t.Errorf("center = (%v, %v), expected (50, 40)", b.CenterX(), b.CenterY())
	}
}

func TestSign(t *testing.T) {
	if Sign(-3.5) != -1 || Sign(0) != 0 || Sign(2) != 1 {
		t.Error("Sign returned wrong values")
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
