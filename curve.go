package imdraw

import "github.com/go-gl/mathgl/mgl32"

// Bezier2 evaluates a quadratic Bézier curve at t in [0, 1].
// The curve starts at p1 (t = 0), ends at p3 (t = 1), and is pulled toward
// the control point p2.
func Bezier2(t float32, p1, p2, p3 mgl32.Vec2) mgl32.Vec2 {
	s := 1 - t
	term1 := p1.Mul(s * s)
	term2 := p2.Mul(2 * s * t)
	term3 := p3.Mul(t * t)
	return term1.Add(term2).Add(term3)
}

// Bezier3 evaluates a cubic Bézier curve at t in [0, 1].
// The curve starts at p1 (t = 0), ends at p4 (t = 1), and is pulled toward
// the control points p2 and p3.
func Bezier3(t float32, p1, p2, p3, p4 mgl32.Vec2) mgl32.Vec2 {
	s := 1 - t
	term1 := p1.Mul(s * s * s)
	term2 := p2.Mul(3 * s * s * t)
	term3 := p3.Mul(3 * s * t * t)
	term4 := p4.Mul(t * t * t)
	return term1.Add(term2).Add(term3).Add(term4)
}
