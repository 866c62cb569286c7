package imdraw

import "github.com/go-gl/mathgl/mgl32"

// Sprite places decorated quads using a distinct template per corner,
// letting a single draw assign per-corner UVs or colors without branching.
type Sprite[V any] struct {
	// BottomLeft is the vertex template for the bottom-left corner.
	BottomLeft Template[V]
	// TopLeft is the vertex template for the top-left corner.
	TopLeft Template[V]
	// TopRight is the vertex template for the top-right corner.
	TopRight Template[V]
	// BottomRight is the vertex template for the bottom-right corner.
	BottomRight Template[V]
}

// NewSprite returns a textured sprite covering the unit UV square with the
// given tint.
func NewSprite(color RGBA) Sprite[TexturedVertex] {
	return NewSpriteUV(Rect{Max: mgl32.Vec2{1, 1}}, color)
}

// NewSpriteUV returns a textured sprite sampling the given UV sub-rectangle,
// as cut from a texture atlas.
func NewSpriteUV(uv Rect, color RGBA) Sprite[TexturedVertex] {
	return Sprite[TexturedVertex]{
		BottomLeft:  TexturedTemplate{UV: uv.BottomLeft(), Color: color},
		TopLeft:     TexturedTemplate{UV: uv.TopLeft(), Color: color},
		TopRight:    TexturedTemplate{UV: uv.TopRight(), Color: color},
		BottomRight: TexturedTemplate{UV: uv.BottomRight(), Color: color},
	}
}

// DrawRect draws the sprite axis-aligned inside the rectangle.
func (s Sprite[V]) DrawRect(dst Target[V], rc Rect) {
	s.DrawQuad(dst, rc.BottomLeft(), mgl32.Vec2{rc.Width(), 0}, mgl32.Vec2{0, rc.Height()})
}

// DrawQuad draws the sprite at an arbitrary orientation. Conceptually the
// sprite is a unit square: its bottom-left corner lands on origin and its
// sides extend along the x and y axis vectors, so rotation, scale, and skew
// all come from the axes.
func (s Sprite[V]) DrawQuad(dst Target[V], origin, x, y mgl32.Vec2) {
	pb := dst.Begin(Triangles, 4, 2)
	pb.QuadIndices()
	pb.AddVertex(s.BottomLeft.ToVertex(origin, 0))
	pb.AddVertex(s.TopLeft.ToVertex(origin.Add(y), 1))
	pb.AddVertex(s.TopRight.ToVertex(origin.Add(x).Add(y), 2))
	pb.AddVertex(s.BottomRight.ToVertex(origin.Add(x), 3))
	pb.Finish()
}
