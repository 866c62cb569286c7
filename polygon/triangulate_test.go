package polygon

import (
	"math"
	"testing"
)

// triangleArea returns the signed area of one triangle of the polygon.
func triangleArea(pts []Point, tri Triangle) float32 {
	a, b, c := pts[tri.P1], pts[tri.P2], pts[tri.P3]
	return cross(b.Sub(a), c.Sub(a)) * 0.5
}

// TestTriangulateConvexQuad tests triangulating a convex quad.
func TestTriangulateConvexQuad(t *testing.T) {
	pts := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	tris := Triangulate(pts)
	if len(tris) != 2 {
		t.Fatalf("Triangulate() returned %d triangles, want 2", len(tris))
	}
	for _, tri := range tris {
		if tri.P1 >= 4 || tri.P2 >= 4 || tri.P3 >= 4 {
			t.Errorf("triangle %v references missing vertices", tri)
		}
		if tri.P1 == tri.P2 || tri.P2 == tri.P3 || tri.P3 == tri.P1 {
			t.Errorf("triangle %v repeats a vertex", tri)
		}
	}
}

// TestTriangulateConcaveArrow tests triangulating a concave polygon with an
// inward dent.
func TestTriangulateConcaveArrow(t *testing.T) {
	pts := []Point{{0, 0}, {2, 0}, {2, 1}, {1, 0.5}, {0, 1}}

	tris := Triangulate(pts)
	if len(tris) != 3 {
		t.Fatalf("Triangulate() returned %d triangles, want 3", len(tris))
	}
	for _, tri := range tris {
		if tri.P1 >= 5 || tri.P2 >= 5 || tri.P3 >= 5 {
			t.Errorf("triangle %v references missing vertices", tri)
		}
	}

	// The triangles tile the polygon exactly: their areas sum to the
	// polygon area and none of them covers the dent.
	var sum float32
	for _, tri := range tris {
		sum += triangleArea(pts, tri)
	}
	if !near(sum, SignedArea(pts)) {
		t.Errorf("triangle area sum = %v, want %v", sum, SignedArea(pts))
	}
}

// TestTriangulateWinding tests that triangles follow the input winding.
func TestTriangulateWinding(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		ccw  bool
	}{
		{"ccw square", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, true},
		{"cw square", []Point{{0, 1}, {1, 1}, {1, 0}, {0, 0}}, false},
		{"cw arrow", []Point{{0, 1}, {1, 0.5}, {2, 1}, {2, 0}, {0, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, tri := range Triangulate(tt.pts) {
				area := triangleArea(tt.pts, tri)
				if tt.ccw && area < 0 || !tt.ccw && area > 0 {
					t.Errorf("triangle %v has area %v, winding flipped", tri, area)
				}
			}
		})
	}
}

// TestTriangulateConvexFan tests regular polygons of increasing order.
func TestTriangulateConvexFan(t *testing.T) {
	for n := 3; n <= 12; n++ {
		pts := make([]Point, n)
		for i := range pts {
			angle := 2 * math.Pi * float64(i) / float64(n)
			pts[i] = Point{float32(math.Cos(angle)), float32(math.Sin(angle))}
		}

		tris := Triangulate(pts)
		if len(tris) != n-2 {
			t.Errorf("n=%d: got %d triangles, want %d", n, len(tris), n-2)
			continue
		}
		var sum float32
		for _, tri := range tris {
			sum += triangleArea(pts, tri)
		}
		if want := SignedArea(pts); !near(sum, want) {
			t.Errorf("n=%d: triangle area sum = %v, want %v", n, sum, want)
		}
	}
}

// TestTriangulateDegenerate tests inputs below the minimum vertex count.
func TestTriangulateDegenerate(t *testing.T) {
	if tris := Triangulate(nil); tris != nil {
		t.Errorf("Triangulate(nil) = %v, want nil", tris)
	}
	if tris := Triangulate([]Point{{0, 0}, {1, 1}}); tris != nil {
		t.Errorf("Triangulate() two points = %v, want nil", tris)
	}

	tris := Triangulate([]Point{{0, 0}, {1, 0}, {0, 1}})
	if len(tris) != 1 || tris[0] != (Triangle{0, 1, 2}) {
		t.Errorf("Triangulate() triangle = %v, want [{0 1 2}]", tris)
	}
}
