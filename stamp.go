package imdraw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/imdraw/polygon"
)

// Rect is re-exported from the polygon package for convenience.
type Rect = polygon.Rect

// RectXYWH constructs a rectangle from its bottom-left corner and size.
func RectXYWH(x, y, w, h float32) Rect {
	return polygon.RectXYWH(x, y, w, h)
}

// Target is the drawing surface the shape helpers write into. Every
// *Buffer[V, U] is a Target[V]; shape emission does not care about the
// uniform type.
type Target[V any] interface {
	// Begin reserves nverts vertex slots and index slots for nprims
	// primitives of the given kind, returning a builder over the block.
	Begin(kind Kind, nverts, nprims int) PrimBuilder[V]
}

// StampQuad emits a quad as two triangles sharing the bottom-left to
// top-right diagonal. Corners pass through the template with local indices
// 0 to 3 in the order bottom-left, top-left, top-right, bottom-right.
func StampQuad[V any](dst Target[V], t Template[V], bl, tl, tr, br mgl32.Vec2) {
	pb := dst.Begin(Triangles, 4, 2)
	pb.QuadIndices()
	pb.AddVertex(t.ToVertex(bl, 0))
	pb.AddVertex(t.ToVertex(tl, 1))
	pb.AddVertex(t.ToVertex(tr, 2))
	pb.AddVertex(t.ToVertex(br, 3))
	pb.Finish()
}

// StampRect emits the rectangle as a StampQuad of its corners.
func StampRect[V any](dst Target[V], t Template[V], rc Rect) {
	StampQuad(dst, t, rc.BottomLeft(), rc.TopLeft(), rc.TopRight(), rc.BottomRight())
}

// StampPolygon triangulates the polygon and emits it as a single block of
// len(points) vertices, each produced once by the template and shared by
// every triangle that references it. Fewer than three points emit nothing.
func StampPolygon[V any](dst Target[V], t Template[V], points []mgl32.Vec2) {
	tris := polygon.Triangulate(points)
	if len(tris) == 0 {
		return
	}
	pb := dst.Begin(Triangles, len(points), len(tris))
	for _, tri := range tris {
		pb.AddIndex3(int(tri.P1), int(tri.P2), int(tri.P3))
	}
	for i, pt := range points {
		pb.AddVertex(t.ToVertex(pt, i))
	}
	pb.Finish()
}

// StrokeRect emits the rectangle outline as four line segments over four
// shared corner vertices.
func StrokeRect[V any](dst Target[V], t Template[V], rc Rect) {
	pb := dst.Begin(Lines, 4, 4)
	pb.AddIndices(0, 1, 1, 2, 2, 3, 3, 0)
	pb.AddVertex(t.ToVertex(rc.BottomLeft(), 0))
	pb.AddVertex(t.ToVertex(rc.TopLeft(), 1))
	pb.AddVertex(t.ToVertex(rc.TopRight(), 2))
	pb.AddVertex(t.ToVertex(rc.BottomRight(), 3))
	pb.Finish()
}
