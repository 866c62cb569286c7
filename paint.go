package imdraw

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/imdraw/polygon"
)

// Paint fills shapes with vertices produced by its template.
//
// The zero value is not useful: curved fills tessellate at the minimum
// resolution and the nil template panics. Use NewPaint, or set the fields.
type Paint[V any] struct {
	// Template decorates every generated position.
	Template Template[V]
	// Segments is the tessellation resolution for curved shapes.
	Segments int
}

// NewPaint returns a Paint with the default curve resolution.
func NewPaint[V any](t Template[V]) Paint[V] {
	return Paint[V]{Template: t, Segments: 64}
}

// FillRect fills a rectangle.
func (p Paint[V]) FillRect(dst Target[V], rc Rect) {
	StampRect(dst, p.Template, rc)
}

// FillQuad fills a quad given its corners in the order bottom-left,
// top-left, top-right, bottom-right.
func (p Paint[V]) FillQuad(dst Target[V], bl, tl, tr, br mgl32.Vec2) {
	StampQuad(dst, p.Template, bl, tl, tr, br)
}

// FillEdgeRect fills a rectangular frame of the given thickness, insetting
// the inner corners toward the rectangle center.
func (p Paint[V]) FillEdgeRect(dst Target[V], rc Rect, thickness float32) {
	// 8 vertices, 8 primitives, 24 indices
	pb := dst.Begin(Triangles, 8, 8)
	for i := range 4 {
		j := (i + 1) & 3
		pb.AddIndex3(i, j+4, i+4)
		pb.AddIndex3(i, j, j+4)
	}
	outer := [4]mgl32.Vec2{rc.BottomLeft(), rc.TopLeft(), rc.TopRight(), rc.BottomRight()}
	for i, pt := range outer {
		pb.AddVertex(p.Template.ToVertex(pt, i))
	}
	inner := [4]mgl32.Vec2{
		{rc.Min[0] + thickness, rc.Min[1] + thickness},
		{rc.Min[0] + thickness, rc.Max[1] - thickness},
		{rc.Max[0] - thickness, rc.Max[1] - thickness},
		{rc.Max[0] - thickness, rc.Min[1] + thickness},
	}
	for i, pt := range inner {
		pb.AddVertex(p.Template.ToVertex(pt, i+4))
	}
	pb.Finish()
}

// FillConvex fills a convex polygon as a triangle fan anchored at the first
// point. Fewer than three points fill nothing.
func (p Paint[V]) FillConvex(dst Target[V], pts []mgl32.Vec2) {
	if len(pts) < 3 {
		return
	}
	// n vertices, n - 2 primitives, (n - 2) * 3 indices
	pb := dst.Begin(Triangles, len(pts), len(pts)-2)
	for i := range len(pts) - 2 {
		pb.AddIndex3(0, i+1, i+2)
	}
	for i, pt := range pts {
		pb.AddVertex(p.Template.ToVertex(pt, i))
	}
	pb.Finish()
}

// FillPolygon fills a polygon from a precomputed triangulation. Triangle
// indices must reference pts; out-of-range indices panic.
func (p Paint[V]) FillPolygon(dst Target[V], pts []mgl32.Vec2, triangles []polygon.Triangle) {
	if len(pts) == 0 || len(triangles) == 0 {
		return
	}
	pb := dst.Begin(Triangles, len(pts), len(triangles))
	for _, tri := range triangles {
		pb.AddIndex3(int(tri.P1), int(tri.P2), int(tri.P3))
	}
	for i, pt := range pts {
		pb.AddVertex(p.Template.ToVertex(pt, i))
	}
	pb.Finish()
}

// FillEllipse fills the ellipse inscribed in the rectangle as a triangle
// fan around the center.
func (p Paint[V]) FillEllipse(dst Target[V], rc Rect) {
	// n + 1 vertices, n primitives, n * 3 indices
	n := max(3, p.Segments)
	pb := dst.Begin(Triangles, n+1, n)
	for i := range n - 1 {
		pb.AddIndex3(0, i+1, i+2)
	}
	pb.AddIndex3(0, n, 1)

	// http://slabode.exofire.net/circle_draw.shtml
	sin, cos := sincos(2 * math.Pi / float64(n))
	radius := rc.Size().Mul(0.5)
	center := rc.Center()
	pt := mgl32.Vec2{1, 0}

	pb.AddVertex(p.Template.ToVertex(center, 0))
	for v := 1; v <= n; v++ {
		pb.AddVertex(p.Template.ToVertex(madd(pt, radius, center), v))
		pt = rotate(pt, sin, cos)
	}
	pb.Finish()
}

// FillPie fills a wedge of the ellipse inscribed in the rectangle, starting
// at the given angle in radians and sweeping counterclockwise. A sweep of a
// full turn or more fills the whole ellipse.
func (p Paint[V]) FillPie(dst Target[V], rc Rect, start, sweep float32) {
	if sweep <= -2*math.Pi || sweep >= 2*math.Pi {
		p.FillEllipse(dst, rc)
		return
	}

	// n + 2 vertices, n primitives, n * 3 indices
	n := max(2, p.Segments)
	pb := dst.Begin(Triangles, n+2, n)
	for i := range n {
		pb.AddIndex3(0, i+1, i+2)
	}

	sin, cos := sincos(float64(sweep) / float64(n))
	radius := rc.Size().Mul(0.5)
	center := rc.Center()
	startSin, startCos := sincos(float64(start))
	pt := mgl32.Vec2{startCos, startSin}

	pb.AddVertex(p.Template.ToVertex(center, 0))
	for v := 1; v <= n+1; v++ {
		pb.AddVertex(p.Template.ToVertex(madd(pt, radius, center), v))
		pt = rotate(pt, sin, cos)
	}
	pb.Finish()
}

// FillRing fills the band between the ellipse inscribed in the rectangle
// and a concentric inner ellipse inset by width.
func (p Paint[V]) FillRing(dst Target[V], rc Rect, width float32) {
	// n * 2 vertices, n * 2 primitives, n * 6 indices
	n := max(3, p.Segments)
	pb := dst.Begin(Triangles, n*2, n*2)
	for i := range n - 1 {
		v := i * 2
		pb.AddIndex3(v, v+1, v+2)
		pb.AddIndex3(v+1, v+2, v+3)
	}
	last := (n - 1) * 2
	pb.AddIndex3(last, last+1, 0)
	pb.AddIndex3(last+1, 0, 1)

	sin, cos := sincos(2 * math.Pi / float64(n))
	outer := rc.Size().Mul(0.5)
	inner := mgl32.Vec2{outer[0] - width, outer[1] - width}
	center := rc.Center()
	pt := mgl32.Vec2{1, 0}

	for v := range n {
		pb.AddVertex(p.Template.ToVertex(madd(pt, outer, center), v*2))
		pb.AddVertex(p.Template.ToVertex(madd(pt, inner, center), v*2+1))
		pt = rotate(pt, sin, cos)
	}
	pb.Finish()
}

// FillBezier2 fills the area between the pivot point and a quadratic Bézier
// curve through the three control points.
func (p Paint[V]) FillBezier2(dst Target[V], pivot, p1, p2, p3 mgl32.Vec2) {
	// n + 2 vertices, n primitives, n * 3 indices
	n := max(2, p.Segments)
	pb := dst.Begin(Triangles, n+2, n)
	for i := range n {
		pb.AddIndex3(0, i+1, i+2)
	}

	pb.AddVertex(p.Template.ToVertex(pivot, 0))
	for v := 1; v <= n+1; v++ {
		t := float32(v-1) / float32(n)
		pb.AddVertex(p.Template.ToVertex(Bezier2(t, p1, p2, p3), v))
	}
	pb.Finish()
}

// madd scales pt elementwise and offsets it, mapping unit-circle points
// onto an ellipse.
func madd(pt, scale, center mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{pt[0]*scale[0] + center[0], pt[1]*scale[1] + center[1]}
}

// rotate applies a precomputed rotation to pt.
func rotate(pt mgl32.Vec2, sin, cos float32) mgl32.Vec2 {
	return mgl32.Vec2{cos*pt[0] - sin*pt[1], sin*pt[0] + cos*pt[1]}
}

func sincos(rad float64) (sin, cos float32) {
	s, c := math.Sincos(rad)
	return float32(s), float32(c)
}
