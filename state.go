package imdraw

// Scissor is an optional scissor rectangle in framebuffer pixels.
// The zero value disables scissor testing.
type Scissor struct {
	Enabled bool
	X, Y    int32
	W, H    int32
}

// ScissorRect returns an enabled scissor rectangle.
func ScissorRect(x, y, w, h int32) Scissor {
	return Scissor{Enabled: true, X: x, Y: y, W: w, H: h}
}

// State is the full pipeline state snapshot of one draw command. Two
// consecutive emissions merge into a single command exactly when their
// states compare equal.
type State struct {
	Kind         Kind
	Scissor      Scissor
	Blend        BlendMode
	Depth        DepthTest
	Cull         CullMode
	Mask         Mask
	Shader       Shader
	UniformIndex uint32
}

// Command addresses a contiguous range of the owning buffer's index array,
// drawn with a single pipeline state.
type Command struct {
	State      State
	IndexStart uint32
	IndexEnd   uint32
}

// IndexCount returns the number of indices the command covers.
func (c Command) IndexCount() uint32 {
	return c.IndexEnd - c.IndexStart
}

// sharedState is the per-buffer render state the pool carries over when
// switching between buffers of different types. Shader and uniform are
// deliberately excluded: they are type-specific and must be set explicitly.
type sharedState struct {
	scissor Scissor
	blend   BlendMode
	depth   DepthTest
	cull    CullMode
}
