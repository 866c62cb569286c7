package imdraw

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pen draws line primitives with vertices produced by its template.
type Pen[V any] struct {
	// Template decorates every generated position.
	Template Template[V]
	// Segments is the tessellation resolution for curved strokes.
	Segments int
}

// NewPen returns a Pen with the default curve resolution.
func NewPen[V any](t Template[V]) Pen[V] {
	return Pen[V]{Template: t, Segments: 64}
}

// DrawLine draws a line from a to b.
func (p Pen[V]) DrawLine(dst Target[V], a, b mgl32.Vec2) {
	// 2 vertices, 1 primitive, 2 indices
	pb := dst.Begin(Lines, 2, 1)
	pb.AddIndex2(0, 1)
	pb.AddVertex(p.Template.ToVertex(a, 0))
	pb.AddVertex(p.Template.ToVertex(b, 1))
	pb.Finish()
}

// DrawLines draws an indexed set of line segments over a shared point pool.
// Segment indices must reference pts; out-of-range indices panic.
func (p Pen[V]) DrawLines(dst Target[V], pts []mgl32.Vec2, lines [][2]uint16) {
	if len(pts) == 0 || len(lines) == 0 {
		return
	}
	pb := dst.Begin(Lines, len(pts), len(lines))
	for _, line := range lines {
		pb.AddIndex2(int(line[0]), int(line[1]))
	}
	for i, pt := range pts {
		pb.AddVertex(p.Template.ToVertex(pt, i))
	}
	pb.Finish()
}

// DrawRect outlines the rectangle with four line segments.
func (p Pen[V]) DrawRect(dst Target[V], rc Rect) {
	StrokeRect(dst, p.Template, rc)
}

// DrawPolyLine draws a line through all the points, optionally closing the
// loop back to the first point. Fewer than two points draw nothing.
func (p Pen[V]) DrawPolyLine(dst Target[V], pts []mgl32.Vec2, closed bool) {
	if len(pts) < 2 {
		return
	}
	// open: n vertices, n - 1 primitives; closed: n vertices, n primitives
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	pb := dst.Begin(Lines, len(pts), n)
	for i := range n {
		j := i + 1
		if j == len(pts) {
			j = 0
		}
		pb.AddIndex2(i, j)
	}
	for i, pt := range pts {
		pb.AddVertex(p.Template.ToVertex(pt, i))
	}
	pb.Finish()
}

// DrawEllipse outlines the ellipse inscribed in the rectangle.
func (p Pen[V]) DrawEllipse(dst Target[V], rc Rect) {
	// n vertices, n primitives, n * 2 indices
	n := max(3, p.Segments)
	pb := dst.Begin(Lines, n, n)
	for i := range n {
		j := i + 1
		if j == n {
			j = 0
		}
		pb.AddIndex2(i, j)
	}

	// http://slabode.exofire.net/circle_draw.shtml
	sin, cos := sincos(2 * math.Pi / float64(n))
	radius := rc.Size().Mul(0.5)
	center := rc.Center()
	pt := mgl32.Vec2{1, 0}
	for v := range n {
		pb.AddVertex(p.Template.ToVertex(madd(pt, radius, center), v))
		pt = rotate(pt, sin, cos)
	}
	pb.Finish()
}

// DrawArc outlines an elliptic arc starting at the given angle in radians
// and sweeping counterclockwise. A sweep of a full turn or more draws the
// whole ellipse.
func (p Pen[V]) DrawArc(dst Target[V], rc Rect, start, sweep float32) {
	if sweep <= -2*math.Pi || sweep >= 2*math.Pi {
		p.DrawEllipse(dst, rc)
		return
	}

	// n + 1 vertices, n primitives, n * 2 indices
	n := max(2, p.Segments)
	pb := dst.Begin(Lines, n+1, n)
	for i := range n {
		pb.AddIndex2(i, i+1)
	}

	sin, cos := sincos(float64(sweep) / float64(n))
	radius := rc.Size().Mul(0.5)
	center := rc.Center()
	startSin, startCos := sincos(float64(start))
	pt := mgl32.Vec2{startCos, startSin}
	for v := range n + 1 {
		pb.AddVertex(p.Template.ToVertex(madd(pt, radius, center), v))
		pt = rotate(pt, sin, cos)
	}
	pb.Finish()
}

// DrawBezier2 draws a quadratic Bézier curve with the given control points.
func (p Pen[V]) DrawBezier2(dst Target[V], p1, p2, p3 mgl32.Vec2) {
	// n + 1 vertices, n primitives, n * 2 indices
	n := max(2, p.Segments)
	pb := dst.Begin(Lines, n+1, n)
	for i := range n {
		pb.AddIndex2(i, i+1)
	}
	for v := range n + 1 {
		t := float32(v) / float32(n)
		pb.AddVertex(p.Template.ToVertex(Bezier2(t, p1, p2, p3), v))
	}
	pb.Finish()
}

// DrawBezier3 draws a cubic Bézier curve with the given control points.
func (p Pen[V]) DrawBezier3(dst Target[V], p1, p2, p3, p4 mgl32.Vec2) {
	// n + 1 vertices, n primitives, n * 2 indices
	n := max(2, p.Segments)
	pb := dst.Begin(Lines, n+1, n)
	for i := range n {
		pb.AddIndex2(i, i+1)
	}
	for v := range n + 1 {
		t := float32(v) / float32(n)
		pb.AddVertex(p.Template.ToVertex(Bezier3(t, p1, p2, p3, p4), v))
	}
	pb.Finish()
}

// DrawCSpline draws a cubic Hermite spline through the points. Tension 0
// yields a Catmull-Rom spline; tension 1 degenerates to straight segments.
// Endpoint velocities are zero. Fewer than two points draw nothing.
func (p Pen[V]) DrawCSpline(dst Target[V], pts []mgl32.Vec2, tension float32) {
	if len(pts) < 2 {
		return
	}

	scale := (1 - tension) * 0.5
	var u mgl32.Vec2
	for i := range len(pts) - 1 {
		// Outgoing velocity at the segment end, zero on the last segment.
		var v mgl32.Vec2
		if i != len(pts)-2 {
			v = pts[i+2].Sub(pts[i]).Mul(scale)
		}
		p.DrawBezier3(dst,
			pts[i],
			pts[i].Add(u.Mul(1.0/3)),
			pts[i+1].Sub(v.Mul(1.0/3)),
			pts[i+1],
		)
		u = v
	}
}
