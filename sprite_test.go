package imdraw

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// TestNewSpriteUV tests that each corner template carries its side of the
// UV sub-rectangle.
func TestNewSpriteUV(t *testing.T) {
	buf := NewBuffer[TexturedVertex, TexturedUniform]()
	s := NewSpriteUV(RectXYWH(0.25, 0.5, 0.5, 0.25), Red)
	s.DrawRect(buf, RectXYWH(10, 20, 4, 2))

	if got := buf.VertexCount(); got != 4 {
		t.Fatalf("VertexCount() = %d, want 4", got)
	}

	wantPos := []mgl32.Vec2{{10, 20}, {10, 22}, {14, 22}, {14, 20}}
	wantUV := []mgl32.Vec2{{0.25, 0.5}, {0.25, 0.75}, {0.75, 0.75}, {0.75, 0.5}}
	for i := range 4 {
		v := buf.vertices[i]
		if v.Pos != wantPos[i] {
			t.Errorf("vertices[%d].Pos = %v, want %v", i, v.Pos, wantPos[i])
		}
		if v.UV != wantUV[i] {
			t.Errorf("vertices[%d].UV = %v, want %v", i, v.UV, wantUV[i])
		}
		if v.Color != Red {
			t.Errorf("vertices[%d].Color = %+v, want %+v", i, v.Color, Red)
		}
	}
}

// TestNewSprite tests the unit UV square default.
func TestNewSprite(t *testing.T) {
	buf := NewBuffer[TexturedVertex, TexturedUniform]()
	NewSprite(White).DrawRect(buf, RectXYWH(0, 0, 1, 1))

	wantUV := []mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	for i, want := range wantUV {
		if got := buf.vertices[i].UV; got != want {
			t.Errorf("vertices[%d].UV = %v, want %v", i, got, want)
		}
	}
}

// TestSpriteDrawQuad tests oriented placement: the sprite's unit square
// maps onto the origin and axis vectors.
func TestSpriteDrawQuad(t *testing.T) {
	buf := NewBuffer[TexturedVertex, TexturedUniform]()
	s := NewSprite(White)
	// Rotate 90° counterclockwise and stretch: x spans up, y spans left.
	s.DrawQuad(buf, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 2}, mgl32.Vec2{-1, 0})

	wantPos := []mgl32.Vec2{{1, 1}, {0, 1}, {0, 3}, {1, 3}}
	for i, want := range wantPos {
		if got := buf.vertices[i].Pos; got != want {
			t.Errorf("vertices[%d].Pos = %v, want %v", i, got, want)
		}
	}

	if got := buf.IndexCount(); got != 6 {
		t.Errorf("IndexCount() = %d, want 6", got)
	}
	if got := buf.commands[0].State.Kind; got != Triangles {
		t.Errorf("command kind = %v, want Triangles", got)
	}
}
