package imdraw

import "fmt"

// PrimBuilder populates one reserved geometry block of a Buffer.
//
// Begin reserves vertex and index slots and returns a builder over them;
// the Add methods consume the slots front to back. Index arguments are
// shape-local, counted from the block's first vertex — the reservation
// prefilled every index slot with the block's base offset, so adding a
// local index produces the final buffer-wide value.
//
// The builder panics when a method writes past the reservation or
// references a vertex outside the block, and Finish panics if slots are
// left unwritten. These are caller contract violations, not runtime
// conditions to handle.
type PrimBuilder[V any] struct {
	vertices []V
	indices  []uint16
	nverts   int
}

// AddIndex adds a vertex index.
func (p *PrimBuilder[V]) AddIndex(vertex int) {
	p.room(1)
	p.check(vertex)
	p.indices[0] += uint16(vertex)
	p.indices = p.indices[1:]
}

// AddIndex2 adds two vertex indices forming a line.
func (p *PrimBuilder[V]) AddIndex2(vertex1, vertex2 int) {
	p.room(2)
	p.check(vertex1)
	p.check(vertex2)
	p.indices[0] += uint16(vertex1)
	p.indices[1] += uint16(vertex2)
	p.indices = p.indices[2:]
}

// AddIndex3 adds three vertex indices forming a triangle.
func (p *PrimBuilder[V]) AddIndex3(vertex1, vertex2, vertex3 int) {
	p.room(3)
	p.check(vertex1)
	p.check(vertex2)
	p.check(vertex3)
	p.indices[0] += uint16(vertex1)
	p.indices[1] += uint16(vertex2)
	p.indices[2] += uint16(vertex3)
	p.indices = p.indices[3:]
}

// AddIndices adds vertex indices.
func (p *PrimBuilder[V]) AddIndices(indices ...uint16) {
	p.room(len(indices))
	for _, v := range indices {
		p.check(int(v))
	}
	head := p.indices[:len(indices)]
	for i, v := range indices {
		head[i] += v
	}
	p.indices = p.indices[len(indices):]
}

// QuadIndices adds the six indices of a quad split along its 0-2 diagonal.
//
//	1---2
//	| / |
//	0---3
func (p *PrimBuilder[V]) QuadIndices() {
	p.AddIndices(0, 1, 2, 0, 2, 3)
}

// AddVertex adds a vertex.
func (p *PrimBuilder[V]) AddVertex(vertex V) {
	if len(p.vertices) < 1 {
		panic("imdraw: too many vertices")
	}
	p.vertices[0] = vertex
	p.vertices = p.vertices[1:]
}

// AddVertices adds vertices.
func (p *PrimBuilder[V]) AddVertices(vertices ...V) {
	if len(p.vertices) < len(vertices) {
		panic("imdraw: too many vertices")
	}
	copy(p.vertices, vertices)
	p.vertices = p.vertices[len(vertices):]
}

// Finish closes the block, verifying every reserved slot was written.
func (p *PrimBuilder[V]) Finish() {
	if len(p.indices) != 0 {
		panic(fmt.Sprintf("imdraw: expected more indices, %d left", len(p.indices)))
	}
	if len(p.vertices) != 0 {
		panic(fmt.Sprintf("imdraw: expected more vertices, %d left", len(p.vertices)))
	}
}

// room panics unless at least n index slots remain.
func (p *PrimBuilder[V]) room(n int) {
	if len(p.indices) < n {
		panic("imdraw: too many indices")
	}
}

// check panics unless vertex is a valid shape-local index.
func (p *PrimBuilder[V]) check(vertex int) {
	if vertex < 0 || vertex >= p.nverts {
		panic(fmt.Sprintf("imdraw: vertex index (%d) out of bounds (%d vertices)", vertex, p.nverts))
	}
}
