package imdraw

import (
	"testing"

	"github.com/gogpu/gputypes"
)

// TestBufferLayout tests the conversion from a vertex layout descriptor to
// a WebGPU vertex buffer layout.
func TestBufferLayout(t *testing.T) {
	bl := colorVertexLayout.BufferLayout()

	if bl.ArrayStride != 16 {
		t.Errorf("ArrayStride = %d, want 16", bl.ArrayStride)
	}
	if bl.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want VertexStepModeVertex", bl.StepMode)
	}
	if len(bl.Attributes) != 3 {
		t.Fatalf("len(Attributes) = %d, want 3", len(bl.Attributes))
	}

	want := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatUnorm8x4, Offset: 8, ShaderLocation: 1},
		{Format: gputypes.VertexFormatUnorm8x4, Offset: 12, ShaderLocation: 2},
	}
	for i, w := range want {
		if bl.Attributes[i] != w {
			t.Errorf("Attributes[%d] = %+v, want %+v", i, bl.Attributes[i], w)
		}
	}
}

// TestUniformTypeByteSize tests the byte sizes backing uniform upload math.
func TestUniformTypeByteSize(t *testing.T) {
	tests := []struct {
		typ  UniformType
		want int
	}{
		{UniformFloat, 4},
		{UniformVec2, 8},
		{UniformVec3, 12},
		{UniformVec4, 16},
		{UniformMat2, 16},
		{UniformMat3, 36},
		{UniformMat4, 64},
		{UniformInt, 4},
		{UniformSampler, 4},
		{UniformType(99), 0},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.ByteSize(); got != tt.want {
				t.Errorf("ByteSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestUniformTypeString tests the uniform type names.
func TestUniformTypeString(t *testing.T) {
	tests := []struct {
		typ  UniformType
		want string
	}{
		{UniformFloat, "Float"},
		{UniformVec2, "Vec2"},
		{UniformVec3, "Vec3"},
		{UniformVec4, "Vec4"},
		{UniformMat2, "Mat2"},
		{UniformMat3, "Mat3"},
		{UniformMat4, "Mat4"},
		{UniformInt, "Int"},
		{UniformSampler, "Sampler"},
		{UniformType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("UniformType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

// TestUniformDataSize tests that sampler fields are excluded from the
// uploadable prefix.
func TestUniformDataSize(t *testing.T) {
	if got := texturedUniformLayout.DataSize(); got != 80 {
		t.Errorf("textured DataSize() = %d, want 80", got)
	}
	if got, want := colorUniformLayout.DataSize(), int(colorUniformLayout.Size); got != want {
		t.Errorf("color DataSize() = %d, want full size %d", got, want)
	}
}
