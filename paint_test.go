package imdraw

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/imdraw/polygon"
)

func testPaint(segments int) Paint[ColorVertex] {
	return Paint[ColorVertex]{Template: ColorTemplate{Color1: White, Color2: White}, Segments: segments}
}

// TestNewPaint tests the constructor defaults.
func TestNewPaint(t *testing.T) {
	p := NewPaint(ColorTemplate{Color1: Red})
	if p.Segments != 64 {
		t.Errorf("Segments = %d, want 64", p.Segments)
	}
	if p.Template == nil {
		t.Error("Template = nil, want the given template")
	}
}

// TestFillCounts tests the vertex and index budget of every fill operation.
func TestFillCounts(t *testing.T) {
	rc := RectXYWH(0, 0, 10, 10)
	quadTris := []polygon.Triangle{{P1: 0, P2: 1, P3: 2}, {P1: 0, P2: 2, P3: 3}}

	tests := []struct {
		name         string
		fill         func(p Paint[ColorVertex], buf *testBuffer)
		segments     int
		wantVertices int
		wantIndices  int
	}{
		{
			name:     "Rect",
			fill:     func(p Paint[ColorVertex], buf *testBuffer) { p.FillRect(buf, rc) },
			segments: 8, wantVertices: 4, wantIndices: 6,
		},
		{
			name: "Quad",
			fill: func(p Paint[ColorVertex], buf *testBuffer) {
				p.FillQuad(buf, mgl32.Vec2{0, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1}, mgl32.Vec2{1, 0})
			},
			segments: 8, wantVertices: 4, wantIndices: 6,
		},
		{
			name:     "EdgeRect",
			fill:     func(p Paint[ColorVertex], buf *testBuffer) { p.FillEdgeRect(buf, rc, 2) },
			segments: 8, wantVertices: 8, wantIndices: 24,
		},
		{
			name: "Convex",
			fill: func(p Paint[ColorVertex], buf *testBuffer) {
				p.FillConvex(buf, []mgl32.Vec2{{0, 0}, {2, 0}, {3, 1}, {1, 3}, {0, 2}})
			},
			segments: 8, wantVertices: 5, wantIndices: 9,
		},
		{
			name: "Polygon",
			fill: func(p Paint[ColorVertex], buf *testBuffer) {
				p.FillPolygon(buf, []mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, quadTris)
			},
			segments: 8, wantVertices: 4, wantIndices: 6,
		},
		{
			name:     "Ellipse",
			fill:     func(p Paint[ColorVertex], buf *testBuffer) { p.FillEllipse(buf, rc) },
			segments: 8, wantVertices: 9, wantIndices: 24,
		},
		{
			name:     "EllipseClamped",
			fill:     func(p Paint[ColorVertex], buf *testBuffer) { p.FillEllipse(buf, rc) },
			segments: 0, wantVertices: 4, wantIndices: 9,
		},
		{
			name:     "Pie",
			fill:     func(p Paint[ColorVertex], buf *testBuffer) { p.FillPie(buf, rc, 0, math.Pi/2) },
			segments: 4, wantVertices: 6, wantIndices: 12,
		},
		{
			name:     "PieFullSweep",
			fill:     func(p Paint[ColorVertex], buf *testBuffer) { p.FillPie(buf, rc, 0, 2*math.Pi) },
			segments: 4, wantVertices: 5, wantIndices: 12,
		},
		{
			name:     "Ring",
			fill:     func(p Paint[ColorVertex], buf *testBuffer) { p.FillRing(buf, rc, 1) },
			segments: 4, wantVertices: 8, wantIndices: 24,
		},
		{
			name: "Bezier2",
			fill: func(p Paint[ColorVertex], buf *testBuffer) {
				p.FillBezier2(buf, mgl32.Vec2{0, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 2}, mgl32.Vec2{2, 1})
			},
			segments: 4, wantVertices: 6, wantIndices: 12,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer[ColorVertex, ColorUniform]()
			tt.fill(testPaint(tt.segments), buf)

			if got := buf.VertexCount(); got != tt.wantVertices {
				t.Errorf("VertexCount() = %d, want %d", got, tt.wantVertices)
			}
			if got := buf.IndexCount(); got != tt.wantIndices {
				t.Errorf("IndexCount() = %d, want %d", got, tt.wantIndices)
			}
			if got := buf.CommandCount(); got != 1 {
				t.Errorf("CommandCount() = %d, want 1", got)
			}
			if kind := buf.commands[0].State.Kind; kind != Triangles {
				t.Errorf("command kind = %v, want Triangles", kind)
			}
		})
	}
}

// TestFillNoOps tests the degenerate inputs that must emit nothing.
func TestFillNoOps(t *testing.T) {
	tests := []struct {
		name string
		fill func(p Paint[ColorVertex], buf *testBuffer)
	}{
		{
			name: "ConvexTwoPoints",
			fill: func(p Paint[ColorVertex], buf *testBuffer) {
				p.FillConvex(buf, []mgl32.Vec2{{0, 0}, {1, 1}})
			},
		},
		{
			name: "PolygonNoPoints",
			fill: func(p Paint[ColorVertex], buf *testBuffer) {
				p.FillPolygon(buf, nil, []polygon.Triangle{{P1: 0, P2: 1, P3: 2}})
			},
		},
		{
			name: "PolygonNoTriangles",
			fill: func(p Paint[ColorVertex], buf *testBuffer) {
				p.FillPolygon(buf, []mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}}, nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer[ColorVertex, ColorUniform]()
			tt.fill(testPaint(8), buf)

			if got := buf.VertexCount(); got != 0 {
				t.Errorf("VertexCount() = %d, want 0", got)
			}
			if got := buf.CommandCount(); got != 0 {
				t.Errorf("CommandCount() = %d, want 0", got)
			}
		})
	}
}

// TestFillPolygonBadIndex tests that a triangulation referencing a vertex
// outside the point list panics.
func TestFillPolygonBadIndex(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	p := testPaint(8)

	msg := mustPanic(t, func() {
		p.FillPolygon(buf, []mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}}, []polygon.Triangle{{P1: 0, P2: 1, P3: 3}})
	})
	if !strings.Contains(msg, "out of bounds") {
		t.Errorf("panic message = %q, want out-of-bounds", msg)
	}
}

// TestFillEdgeRectGeometry tests frame corner placement: outer corners on
// the rectangle, inner corners inset by the thickness.
func TestFillEdgeRectGeometry(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	testPaint(8).FillEdgeRect(buf, RectXYWH(0, 0, 10, 10), 2)

	wantPos := []mgl32.Vec2{
		{0, 0}, {0, 10}, {10, 10}, {10, 0}, // outer
		{2, 2}, {2, 8}, {8, 8}, {8, 2}, // inner
	}
	for i, want := range wantPos {
		if got := buf.vertices[i].Pos; got != want {
			t.Errorf("vertices[%d].Pos = %v, want %v", i, got, want)
		}
	}

	wantIndices := []uint16{
		0, 5, 4, 0, 1, 5,
		1, 6, 5, 1, 2, 6,
		2, 7, 6, 2, 3, 7,
		3, 4, 7, 3, 0, 4,
	}
	for i, want := range wantIndices {
		if got := buf.indices[i]; got != want {
			t.Errorf("indices[%d] = %d, want %d", i, got, want)
		}
	}
}

// TestFillEllipseGeometry tests rim placement for a four-segment circle:
// center first, then rim points counterclockwise from the positive X axis.
func TestFillEllipseGeometry(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	testPaint(4).FillEllipse(buf, RectXYWH(-1, -1, 2, 2))

	wantPos := []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for i, want := range wantPos {
		if got := buf.vertices[i].Pos; !vecNear(got, want) {
			t.Errorf("vertices[%d].Pos = %v, want %v", i, got, want)
		}
	}

	wantIndices := []uint16{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 1}
	for i, want := range wantIndices {
		if got := buf.indices[i]; got != want {
			t.Errorf("indices[%d] = %d, want %d", i, got, want)
		}
	}
}

// TestFillPieGeometry tests a quarter wedge: center plus an inclusive arc
// from the start angle through the sweep.
func TestFillPieGeometry(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	testPaint(4).FillPie(buf, RectXYWH(-1, -1, 2, 2), 0, math.Pi/2)

	if got := buf.VertexCount(); got != 6 {
		t.Fatalf("VertexCount() = %d, want 6", got)
	}
	if got := buf.vertices[0].Pos; !vecNear(got, mgl32.Vec2{0, 0}) {
		t.Errorf("center = %v, want (0, 0)", got)
	}
	if got := buf.vertices[1].Pos; !vecNear(got, mgl32.Vec2{1, 0}) {
		t.Errorf("arc start = %v, want (1, 0)", got)
	}
	if got := buf.vertices[5].Pos; !vecNear(got, mgl32.Vec2{0, 1}) {
		t.Errorf("arc end = %v, want (0, 1)", got)
	}
}

// TestFillRingGeometry tests the strip layout: alternating outer and inner
// rim vertices with a wrapped closing quad.
func TestFillRingGeometry(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	testPaint(4).FillRing(buf, RectXYWH(-2, -2, 4, 4), 0.5)

	if got := buf.vertices[0].Pos; !vecNear(got, mgl32.Vec2{2, 0}) {
		t.Errorf("outer rim start = %v, want (2, 0)", got)
	}
	if got := buf.vertices[1].Pos; !vecNear(got, mgl32.Vec2{1.5, 0}) {
		t.Errorf("inner rim start = %v, want (1.5, 0)", got)
	}
	if got := buf.vertices[2].Pos; !vecNear(got, mgl32.Vec2{0, 2}) {
		t.Errorf("outer rim second = %v, want (0, 2)", got)
	}

	wantIndices := []uint16{
		0, 1, 2, 1, 2, 3,
		2, 3, 4, 3, 4, 5,
		4, 5, 6, 5, 6, 7,
		6, 7, 0, 7, 0, 1,
	}
	for i, want := range wantIndices {
		if got := buf.indices[i]; got != want {
			t.Errorf("indices[%d] = %d, want %d", i, got, want)
		}
	}
}

// TestFillBezier2Geometry tests that the fan pivot is first and the curve
// endpoints land on the first and last control points.
func TestFillBezier2Geometry(t *testing.T) {
	buf := NewBuffer[ColorVertex, ColorUniform]()
	pivot := mgl32.Vec2{0, -1}
	p1 := mgl32.Vec2{0, 0}
	p2 := mgl32.Vec2{1, 2}
	p3 := mgl32.Vec2{2, 0}
	testPaint(4).FillBezier2(buf, pivot, p1, p2, p3)

	if got := buf.vertices[0].Pos; !vecNear(got, pivot) {
		t.Errorf("pivot vertex = %v, want %v", got, pivot)
	}
	if got := buf.vertices[1].Pos; !vecNear(got, p1) {
		t.Errorf("curve start = %v, want %v", got, p1)
	}
	if got := buf.vertices[5].Pos; !vecNear(got, p3) {
		t.Errorf("curve end = %v, want %v", got, p3)
	}
}
