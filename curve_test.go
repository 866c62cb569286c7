package imdraw

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(a, b mgl32.Vec2) bool {
	const eps = 1e-6
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx < eps && dx > -eps && dy < eps && dy > -eps
}

// TestBezier2 tests quadratic Bézier evaluation at the endpoints and the
// midpoint.
func TestBezier2(t *testing.T) {
	p1 := mgl32.Vec2{0, 0}
	p2 := mgl32.Vec2{1, 1}
	p3 := mgl32.Vec2{2, 0}

	tests := []struct {
		name string
		t    float32
		want mgl32.Vec2
	}{
		{"Start", 0, p1},
		{"Mid", 0.5, mgl32.Vec2{1, 0.5}},
		{"End", 1, p3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bezier2(tt.t, p1, p2, p3); !vecNear(got, tt.want) {
				t.Errorf("Bezier2(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

// TestBezier3 tests cubic Bézier evaluation at the endpoints and the
// midpoint.
func TestBezier3(t *testing.T) {
	p1 := mgl32.Vec2{0, 0}
	p2 := mgl32.Vec2{0, 1}
	p3 := mgl32.Vec2{2, 1}
	p4 := mgl32.Vec2{2, 0}

	tests := []struct {
		name string
		t    float32
		want mgl32.Vec2
	}{
		{"Start", 0, p1},
		{"Mid", 0.5, mgl32.Vec2{1, 0.75}},
		{"End", 1, p4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bezier3(tt.t, p1, p2, p3, p4); !vecNear(got, tt.want) {
				t.Errorf("Bezier3(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

// TestBezier2Symmetric tests that a symmetric control polygon evaluates
// symmetrically around the midpoint.
func TestBezier2Symmetric(t *testing.T) {
	p1 := mgl32.Vec2{0, 0}
	p2 := mgl32.Vec2{1, 2}
	p3 := mgl32.Vec2{2, 0}

	a := Bezier2(0.25, p1, p2, p3)
	b := Bezier2(0.75, p1, p2, p3)
	if !vecNear(mgl32.Vec2{2 - a[0], a[1]}, b) {
		t.Errorf("Bezier2(0.25) = %v and Bezier2(0.75) = %v are not mirror images", a, b)
	}
}
