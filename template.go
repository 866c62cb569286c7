package imdraw

import "github.com/go-gl/mathgl/mgl32"

// Template converts shape positions into concrete vertices.
//
// A template is a caller-defined decoration — colors, UVs, any per-vertex
// payload — that is not itself a vertex. Shape tools position geometry and
// call ToVertex once per produced vertex with the shape-local vertex index,
// letting a single template assign different sub-values per corner.
//
// ToVertex must be pure: no side effects, no access to the buffer being
// filled, and the same inputs always produce the same vertex.
type Template[V any] interface {
	ToVertex(pos mgl32.Vec2, index int) V
}
