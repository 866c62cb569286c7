package imdraw

import (
	"errors"
	"unsafe"
)

// ErrNilSubmitter is returned by Draw and pool flushes given a nil submitter.
var ErrNilSubmitter = errors.New("imdraw: nil submitter")

// Snapshot is a read-only, type-erased view of a buffer's accumulated
// geometry, ready for backend upload. Vertex and uniform values appear as
// raw bytes laid out per the layout descriptors, with strides equal to the
// layouts' Size.
//
// A snapshot aliases the buffer's storage and stays valid until the buffer
// is next mutated.
type Snapshot struct {
	// Vertex describes the format of VertexData.
	Vertex *VertexLayout
	// Uniform describes the format of UniformData.
	Uniform *UniformLayout

	// VertexData holds VertexCount vertices of Vertex.Size bytes each. Nil
	// when the buffer holds no vertices.
	VertexData []byte
	// VertexCount is the number of vertices in VertexData.
	VertexCount int

	// Indices are offsets into the vertex sequence.
	Indices []uint16

	// UniformData holds UniformCount values of Uniform.Size bytes each.
	// Sampler fields past Uniform.DataSize are handles, not GPU data.
	UniformData []byte
	// UniformCount is the number of uniform values in UniformData.
	UniformCount int

	// Commands are the batched draw commands; their index ranges tile
	// Indices exactly.
	Commands []Command
}

// Submitter consumes snapshots one command at a time. Implementations
// typically upload a snapshot's data on first sight, telling consecutive
// commands of the same build apart by the snapshot's pointer identity, and
// issue one draw call per command.
type Submitter interface {
	SubmitBatch(snap *Snapshot, cmd Command) error
}

// Snapshot returns the type-erased view of the buffer's current contents.
func (b *Buffer[V, U]) Snapshot() *Snapshot {
	var v V
	var u U
	snap := &Snapshot{
		Vertex:       v.VertexLayout(),
		Uniform:      u.UniformLayout(),
		VertexCount:  len(b.vertices),
		Indices:      b.indices,
		UniformCount: len(b.uniforms),
		Commands:     b.commands,
	}
	if len(b.vertices) > 0 {
		n := unsafe.Sizeof(b.vertices[0]) * uintptr(len(b.vertices))
		snap.VertexData = unsafe.Slice((*byte)(unsafe.Pointer(&b.vertices[0])), n) //nolint:gosec // safe struct serialization
	}
	if len(b.uniforms) > 0 {
		n := unsafe.Sizeof(b.uniforms[0]) * uintptr(len(b.uniforms))
		snap.UniformData = unsafe.Slice((*byte)(unsafe.Pointer(&b.uniforms[0])), n) //nolint:gosec // safe struct serialization
	}
	return snap
}

// Draw submits every accumulated command in order. The buffer must not be
// mutated until Draw returns.
func (b *Buffer[V, U]) Draw(s Submitter) error {
	if s == nil {
		return ErrNilSubmitter
	}
	snap := b.Snapshot()
	for _, cmd := range snap.Commands {
		if err := s.SubmitBatch(snap, cmd); err != nil {
			return err
		}
	}
	return nil
}
