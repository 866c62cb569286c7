package polygon

import "math"

// Triangle references three polygon vertices forming one triangle.
type Triangle struct {
	P1, P2, P3 Index
}

// Triangulate decomposes a simple polygon into triangles by ear clipping.
//
// The polygon may be concave and may wind either way, but its edges must
// not cross. The result holds len(pts)-2 triangles whose corners index
// into pts and follow the winding of the input; fewer than three points
// yield nil. Degenerate input (collinear runs, duplicate points) still
// terminates but may produce zero-area triangles.
//
// Triangulate panics if the polygon has more points than an Index can
// address.
func Triangulate(pts []Point) []Triangle {
	n := len(pts)
	if n < 3 {
		return nil
	}
	if n > math.MaxUint16+1 {
		panic("polygon: too many points to index")
	}

	work := make([]Index, n)
	for i := range work {
		work[i] = Index(i)
	}
	out := make([]Triangle, 0, n-2)
	ccw := SignedArea(pts) >= 0

	cursor := 0
	for len(work) > 3 {
		// Scan for the next ear. If the polygon is degenerate no ear may
		// pass the test; clipping at the cursor anyway keeps us terminating.
		clip := cursor
		for probe := range len(work) {
			i := (cursor + probe) % len(work)
			if isEar(pts, work, i, ccw) {
				clip = i
				break
			}
		}
		prev, next := neighbors(len(work), clip)
		out = append(out, Triangle{work[prev], work[clip], work[next]})
		work = append(work[:clip], work[clip+1:]...)
		cursor = clip % len(work)
	}
	return append(out, Triangle{work[0], work[1], work[2]})
}

// isEar reports whether working vertex i can be clipped off: it must turn
// in the polygon's winding direction and the triangle it spans with its
// neighbors must not contain any other remaining vertex, boundary included.
func isEar(pts []Point, work []Index, i int, ccw bool) bool {
	prev, next := neighbors(len(work), i)
	a, b, c := pts[work[prev]], pts[work[i]], pts[work[next]]

	turn := cross(b.Sub(a), c.Sub(b))
	if ccw {
		if turn <= 0 {
			return false
		}
	} else if turn >= 0 {
		return false
	}

	for j, v := range work {
		if j == prev || j == i || j == next {
			continue
		}
		if triangleContains(a, b, c, pts[v]) {
			return false
		}
	}
	return true
}

// triangleContains reports whether pt lies inside triangle (a, b, c) or on
// its boundary. The triangle may wind either way.
func triangleContains(a, b, c, pt Point) bool {
	s1 := cross(b.Sub(a), pt.Sub(a))
	s2 := cross(c.Sub(b), pt.Sub(b))
	s3 := cross(a.Sub(c), pt.Sub(c))
	hasNeg := s1 < 0 || s2 < 0 || s3 < 0
	hasPos := s1 > 0 || s2 > 0 || s3 > 0
	return !(hasNeg && hasPos)
}

// neighbors returns the cyclic predecessor and successor of position i in a
// working list of length n.
func neighbors(n, i int) (prev, next int) {
	prev = i - 1
	if prev < 0 {
		prev = n - 1
	}
	next = i + 1
	if next == n {
		next = 0
	}
	return prev, next
}
