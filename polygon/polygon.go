// Package polygon provides pure geometric operations on ordered 2D point
// sequences: triangulation, hulls, winding queries, and bounding volumes.
//
// All functions treat their input as a closed polygon whose edges connect
// consecutive points, with an implicit edge from the last point back to the
// first. The package never allocates GPU resources and has no dependency on
// the draw buffer; it is safe to call from any goroutine as long as the
// input slice is not mutated concurrently.
package polygon

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Point is a polygon vertex position.
type Point = mgl32.Vec2

// Index references a vertex in a caller-supplied point slice.
type Index = uint16

// Rect is an axis-aligned rectangle. Corner accessors follow a Y-up
// convention: Min is the bottom-left corner and Max the top-right.
type Rect struct {
	Min, Max Point
}

// RectXYWH constructs a rectangle from its bottom-left corner and size.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{Min: Point{x, y}, Max: Point{x + w, y + h}}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float32 {
	return r.Max[0] - r.Min[0]
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float32 {
	return r.Max[1] - r.Min[1]
}

// Size returns the extent of the rectangle as a vector.
func (r Rect) Size() Point {
	return Point{r.Max[0] - r.Min[0], r.Max[1] - r.Min[1]}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{(r.Min[0] + r.Max[0]) * 0.5, (r.Min[1] + r.Max[1]) * 0.5}
}

// BottomLeft returns the Min corner.
func (r Rect) BottomLeft() Point { return r.Min }

// TopLeft returns the corner at (Min.X, Max.Y).
func (r Rect) TopLeft() Point { return Point{r.Min[0], r.Max[1]} }

// TopRight returns the Max corner.
func (r Rect) TopRight() Point { return r.Max }

// BottomRight returns the corner at (Max.X, Min.Y).
func (r Rect) BottomRight() Point { return Point{r.Max[0], r.Min[1]} }

// Edges returns an iterator over the edges of the polygon.
//
// Iteration starts with the closing edge, connecting the last point to the
// first. A single point yields one degenerate edge from the point to itself;
// an empty slice yields nothing.
func Edges(pts []Point) iter.Seq2[Point, Point] {
	return func(yield func(Point, Point) bool) {
		if len(pts) == 0 {
			return
		}
		prev := pts[len(pts)-1]
		for _, pt := range pts {
			if !yield(prev, pt) {
				return
			}
			prev = pt
		}
	}
}

// CloneIndexed builds a new polygon from the given indices into pts.
func CloneIndexed(pts []Point, indices []Index) []Point {
	out := make([]Point, len(indices))
	for i, index := range indices {
		out[i] = pts[index]
	}
	return out
}

// Bounds returns the axis-aligned bounding rectangle of the polygon.
// An empty polygon yields the zero rectangle.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	mins, maxs := pts[0], pts[0]
	for _, p := range pts[1:] {
		mins[0] = min(mins[0], p[0])
		mins[1] = min(mins[1], p[1])
		maxs[0] = max(maxs[0], p[0])
		maxs[1] = max(maxs[1], p[1])
	}
	return Rect{Min: mins, Max: maxs}
}

// Ball returns an enclosing circle of the polygon as a center and radius.
//
// The circle is computed with Ritter's approximation: it encloses every
// point but is not guaranteed to be the minimum enclosing circle.
func Ball(pts []Point) (Point, float32) {
	if len(pts) == 0 {
		return Point{}, 0
	}

	// Find the extreme points along each axis.
	pxmin, pxmax := pts[0], pts[0]
	pymin, pymax := pts[0], pts[0]
	for _, p := range pts[1:] {
		if p[0] < pxmin[0] {
			pxmin = p
		} else if p[0] > pxmax[0] {
			pxmax = p
		}
		if p[1] < pymin[1] {
			pymin = p
		} else if p[1] > pymax[1] {
			pymax = p
		}
	}

	// Seed the ball with the wider of the two extreme pairs.
	var center Point
	var radius2 float32
	dx := pxmax.Sub(pxmin)
	dy := pymax.Sub(pymin)
	if dx.LenSqr() > dy.LenSqr() {
		center = pxmin.Add(dx.Mul(0.5))
		radius2 = pxmax.Sub(center).LenSqr()
	} else {
		center = pymin.Add(dy.Mul(0.5))
		radius2 = pymax.Sub(center).LenSqr()
	}
	radius := sqrt32(radius2)

	// Grow the ball toward any point still outside it.
	for _, p := range pts {
		d := p.Sub(center)
		dist2 := d.LenSqr()
		if dist2 <= radius2 {
			continue
		}
		dist := sqrt32(dist2)
		radius = (radius + dist) * 0.5
		radius2 = radius * radius
		center = center.Add(d.Mul((dist - radius) / dist))
	}
	return center, radius
}

// SignedArea returns the signed area of the polygon.
//
// A positive result means counter-clockwise winding, a negative result
// clockwise. Self-intersecting polygons count overlapping area twice.
func SignedArea(pts []Point) float32 {
	var acc float32
	for pj, pi := range Edges(pts) {
		acc += pj[0]*pi[1] - pi[0]*pj[1]
	}
	return acc * 0.5
}

// CrossingNumber returns how many polygon edges a ray from pt toward
// positive X crosses. An even result places pt outside the polygon, an odd
// result inside.
func CrossingNumber(pts []Point, pt Point) uint32 {
	// http://geomalgorithms.com/a03-_inclusion.html#Crossing-Number
	var cn uint32
	for pj, pi := range Edges(pts) {
		if (pi[1] > pt[1]) != (pj[1] > pt[1]) {
			if pt[0]-pi[0] < (pj[0]-pi[0])*(pt[1]-pi[1])/(pj[1]-pi[1]) {
				cn++
			}
		}
	}
	return cn
}

// WindingNumber returns how many times the polygon wraps around pt.
// A zero result places pt outside the polygon.
func WindingNumber(pts []Point, pt Point) int32 {
	// http://geomalgorithms.com/a03-_inclusion.html#Winding-Number
	var wn int32
	for pj, pi := range Edges(pts) {
		if pj[1] <= pt[1] {
			if pi[1] > pt[1] && isLeft(pj, pi, pt) > 0 {
				wn++
			}
		} else if pi[1] <= pt[1] && isLeft(pj, pi, pt) < 0 {
			wn--
		}
	}
	return wn
}

// ConvexHull returns indices into pts forming the enclosing convex hull,
// in counter-clockwise order starting from the leftmost point. Collinear
// points on the hull boundary are dropped.
func ConvexHull(pts []Point) []Index {
	// Andrew's monotone chain:
	// https://en.wikibooks.org/wiki/Algorithm_Implementation/Geometry/Convex_hull/Monotone_chain
	n := len(pts)
	if n < 2 {
		if n == 1 {
			return []Index{0}
		}
		return nil
	}

	sorted := make([]Index, n)
	for i := range sorted {
		sorted[i] = Index(i)
	}
	slices.SortStableFunc(sorted, func(a, b Index) int {
		pa, pb := pts[a], pts[b]
		if pa[0] == pb[0] {
			return cmp.Compare(pa[1], pb[1])
		}
		return cmp.Compare(pa[0], pb[0])
	})

	hull := make([]Index, n+1)
	k := 0

	// Lower chain.
	for i := 0; i < n; i++ {
		for k >= 2 && crossIndexed(pts, hull[k-2], hull[k-1], sorted[i]) <= 0 {
			k--
		}
		hull[k] = sorted[i]
		k++
	}

	// Upper chain.
	t := k + 1
	for i := n - 2; i >= 0; i-- {
		for k >= t && crossIndexed(pts, hull[k-2], hull[k-1], sorted[i]) <= 0 {
			k--
		}
		hull[k] = sorted[i]
		k++
	}

	// The last point closes the chain back to the start; drop it.
	return hull[:k-1]
}

// crossIndexed returns the cross product of (a-o) and (b-o) looked up in pts.
func crossIndexed(pts []Point, o, a, b Index) float32 {
	return cross(pts[a].Sub(pts[o]), pts[b].Sub(pts[o]))
}

// cross returns the 2D cross product of u and v.
func cross(u, v Point) float32 {
	return u[0]*v[1] - u[1]*v[0]
}

// isLeft reports where pt lies relative to the directed edge v0->v1:
// positive for left, negative for right, zero for collinear.
func isLeft(v0, v1, pt Point) float32 {
	return (v1[0]-v0[0])*(pt[1]-v0[1]) - (pt[0]-v0[0])*(v1[1]-v0[1])
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
