package imdraw

import (
	"github.com/gogpu/gputypes"
)

// VertexAttribute describes one field of a vertex struct.
type VertexAttribute struct {
	// Name is the attribute identifier referenced by shaders (e.g. "a_pos").
	Name string

	// Format is the WebGPU-family vertex format of the field.
	Format gputypes.VertexFormat

	// Offset is the field's byte offset within the vertex struct.
	Offset uint16
}

// VertexLayout is the static byte-layout descriptor of a vertex type.
//
// Exactly one layout exists per concrete vertex type, identified by a
// process-unique numeric ID. The descriptor is binary-stable: Size and the
// attribute offsets must match the Go struct's memory layout exactly, since
// backends consume vertex data as raw bytes with stride Size.
type VertexLayout struct {
	// ID uniquely identifies the vertex type. Registering two different
	// layouts under one ID panics.
	ID uint32

	// Size is the total byte size of one vertex. It must equal the Go
	// struct's unsafe.Sizeof, which registration verifies.
	Size uint16

	// Alignment is the Go struct's alignment in bytes.
	Alignment uint16

	// Attributes lists the vertex fields in shader-location order.
	Attributes []VertexAttribute
}

// BufferLayout returns the equivalent WebGPU vertex buffer layout with
// per-vertex stepping and sequential shader locations.
func (l *VertexLayout) BufferLayout() gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(l.Attributes))
	for i, a := range l.Attributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.Format,
			Offset:         uint64(a.Offset),
			ShaderLocation: uint32(i),
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(l.Size),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// UniformType tags the GPU-side type of one uniform field.
type UniformType uint8

const (
	UniformFloat UniformType = iota
	UniformVec2
	UniformVec3
	UniformVec4
	UniformMat2
	UniformMat3
	UniformMat4
	UniformInt
	// UniformSampler marks a texture binding slot. Sampler fields hold a
	// backend texture handle and are not uploaded with the value data;
	// layouts must order them after all value fields.
	UniformSampler
)

// String returns the name of the uniform type.
func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "Float"
	case UniformVec2:
		return "Vec2"
	case UniformVec3:
		return "Vec3"
	case UniformVec4:
		return "Vec4"
	case UniformMat2:
		return "Mat2"
	case UniformMat3:
		return "Mat3"
	case UniformMat4:
		return "Mat4"
	case UniformInt:
		return "Int"
	case UniformSampler:
		return "Sampler"
	default:
		return "Unknown"
	}
}

// ByteSize returns the byte size of a single element of the type.
func (t UniformType) ByteSize() int {
	switch t {
	case UniformFloat, UniformInt, UniformSampler:
		return 4
	case UniformVec2:
		return 8
	case UniformVec3:
		return 12
	case UniformVec4, UniformMat2:
		return 16
	case UniformMat3:
		return 36
	case UniformMat4:
		return 64
	default:
		return 0
	}
}

// UniformField describes one field of a uniform struct.
type UniformField struct {
	// Name is the identifier referenced by shaders (e.g. "u_transform").
	Name string

	// Type is the GPU-side type of the field.
	Type UniformType

	// Offset is the field's byte offset within the uniform struct.
	Offset uint16

	// Count is the array element count; 1 for non-arrays.
	Count uint16
}

// UniformLayout is the static byte-layout descriptor of a uniform type,
// identified by a process-unique numeric ID like VertexLayout.
//
// Fields must be ordered by offset with sampler fields last, so that the
// value prefix of the struct can be uploaded to a GPU buffer as one block.
type UniformLayout struct {
	ID        uint32
	Size      uint16
	Alignment uint16
	Fields    []UniformField
}

// DataSize returns the byte length of the uploadable value prefix: the
// offset of the first sampler field, or the full struct size if the layout
// has no samplers.
func (l *UniformLayout) DataSize() int {
	for _, f := range l.Fields {
		if f.Type == UniformSampler {
			return int(f.Offset)
		}
	}
	return int(l.Size)
}

// Vertex is the contract of buffer vertex types: a plain struct exposing
// its static layout descriptor. The method must return the same pointer on
// every call.
type Vertex interface {
	VertexLayout() *VertexLayout
}

// Uniform is the contract of buffer uniform types. Uniform values are
// compared with == to deduplicate consecutive recordings, so the struct
// must be comparable.
type Uniform interface {
	comparable
	UniformLayout() *UniformLayout
}
