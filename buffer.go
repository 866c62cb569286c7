package imdraw

import "math"

// Buffer accumulates indexed geometry of one vertex/uniform type pair and
// batches it into draw commands.
//
// Drawing tools append vertices, uint16 indices into the vertex sequence,
// deduplicated uniform values, and commands. Consecutive emissions merge
// into the previous command while the buffer's shared render state stays
// unchanged, so a backend replays one draw call per state change rather
// than one per shape.
//
// Rendering behavior is controlled via the public fields: Scissor, Blend,
// Depth, Cull, Mask, and Shader select pipeline state, and Uniform holds
// the current shader constants. Every Begin snapshots these into the
// command it lands in; changing any of them splits the batch.
//
// A Buffer has a single writer during its build phase and is read-only
// once handed to a backend. Call Clear to reuse it without releasing
// capacity. See Pool for mixing buffers of different types in one frame.
type Buffer[V Vertex, U Uniform] struct {
	vertices []V
	indices  []uint16
	uniforms []U
	commands []Command

	// merging arms batch coalescing. Fresh and cleared buffers leave it
	// disarmed so reused command storage never extends a stale command;
	// every Begin re-arms it. The pool disarms it on buffer switches.
	merging bool

	// Scissor restricts rendering to a framebuffer rectangle.
	Scissor Scissor
	// Blend selects fragment blending for subsequent draws.
	Blend BlendMode
	// Depth selects the depth test for subsequent draws.
	Depth DepthTest
	// Cull selects triangle culling for subsequent draws.
	Cull CullMode
	// Mask selects the written framebuffer channels. Defaults to MaskAll.
	Mask Mask
	// Shader identifies the shader program for subsequent draws.
	Shader Shader
	// Uniform holds the current shader constants. Its value is recorded
	// on Begin only when it differs from the last recorded value.
	Uniform U
}

// NewBuffer creates an empty buffer, registering the layouts of V and U if
// this is their first use. Options preallocate capacity.
func NewBuffer[V Vertex, U Uniform](opts ...Option) *Buffer[V, U] {
	RegisterVertex[V]()
	RegisterUniform[U]()

	o := defaultBufferOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Buffer[V, U]{Mask: MaskAll}
	if o.vertexCapacity > 0 {
		b.vertices = make([]V, 0, o.vertexCapacity)
	}
	if o.indexCapacity > 0 {
		b.indices = make([]uint16, 0, o.indexCapacity)
	}
	if o.commandCapacity > 0 {
		b.commands = make([]Command, 0, o.commandCapacity)
	}
	return b
}

// Clear empties the buffer for reuse, keeping allocated capacity. Shared
// render state resets to defaults and batch merging is disarmed.
func (b *Buffer[V, U]) Clear() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.uniforms = b.uniforms[:0]
	b.commands = b.commands[:0]
	b.merging = false

	b.Scissor = Scissor{}
	b.Blend = BlendSolid
	b.Depth = DepthNone
	b.Cull = CullNone
	b.Mask = MaskAll
	b.Shader = ShaderNone
	var zero U
	b.Uniform = zero
}

// VertexCount returns the number of accumulated vertices.
func (b *Buffer[V, U]) VertexCount() int { return len(b.vertices) }

// IndexCount returns the number of accumulated indices.
func (b *Buffer[V, U]) IndexCount() int { return len(b.indices) }

// UniformCount returns the number of recorded uniform values.
func (b *Buffer[V, U]) UniformCount() int { return len(b.uniforms) }

// CommandCount returns the number of batched draw commands.
func (b *Buffer[V, U]) CommandCount() int { return len(b.commands) }

// Commands returns the accumulated draw commands. The slice is owned by
// the buffer and valid until the next mutation.
func (b *Buffer[V, U]) Commands() []Command { return b.commands }

// recordUniform appends the current uniform value unless it equals the
// last recorded one, and returns the index of the value in effect.
func (b *Buffer[V, U]) recordUniform() uint32 {
	if n := len(b.uniforms); n == 0 || b.uniforms[n-1] != b.Uniform {
		b.uniforms = append(b.uniforms, b.Uniform)
	}
	return uint32(len(b.uniforms) - 1)
}

// Begin starts a new geometry block of nprims primitives spanning nverts
// vertices and returns a builder over the reserved slots.
//
// The current shared state is snapshotted into a State; if merging is
// armed and the snapshot equals the previous command's state, the block
// extends that command, otherwise a new command opens. Index slots are
// prefilled with the block's base vertex offset, so the builder's AddIndex
// methods take shape-local indices counted from zero.
//
// The builder must be fully populated and closed with Finish before the
// next Begin. A zero or negative count is a no-op returning an empty
// builder. Begin panics when the buffer's total vertex count outgrows the
// uint16 index space.
func (b *Buffer[V, U]) Begin(kind Kind, nverts, nprims int) PrimBuilder[V] {
	if nverts <= 0 || nprims <= 0 {
		return PrimBuilder[V]{}
	}
	nindices := kind.indexCount(nprims)

	state := State{
		Kind:         kind,
		Scissor:      b.Scissor,
		Blend:        b.Blend,
		Depth:        b.Depth,
		Cull:         b.Cull,
		Mask:         b.Mask,
		Shader:       b.Shader,
		UniformIndex: b.recordUniform(),
	}

	// Extend the previous command when nothing about the state changed.
	newCmd := true
	if b.merging && len(b.commands) > 0 {
		if last := &b.commands[len(b.commands)-1]; last.State == state {
			last.IndexEnd += uint32(nindices)
			newCmd = false
		}
	}
	b.merging = true

	if newCmd {
		start := uint32(len(b.indices))
		b.commands = append(b.commands, Command{
			State:      state,
			IndexStart: start,
			IndexEnd:   start + uint32(nindices),
		})
	}

	base := len(b.vertices)
	var verts []V
	b.vertices, verts = extend(b.vertices, nverts)
	if len(b.vertices) > math.MaxUint16 {
		panic("imdraw: too many vertices for uint16 indices")
	}
	var idx []uint16
	b.indices, idx = extendFill(b.indices, nindices, uint16(base))

	return PrimBuilder[V]{vertices: verts, indices: idx, nverts: nverts}
}
