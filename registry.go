package imdraw

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/gogpu/gputypes"
)

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu     sync.RWMutex
	vertexLayouts  = make(map[uint32]*VertexLayout)
	uniformLayouts = make(map[uint32]*UniformLayout)
)

// RegisterVertex registers the layout of vertex type V and returns it.
// Registration is typically performed from init() in the package defining
// the vertex type, following the database/sql driver pattern.
//
// RegisterVertex panics if:
//   - the layout is nil or has no attributes
//   - the layout's Size disagrees with the Go struct's actual size
//   - an attribute lies outside the struct's bytes
//   - a different layout is already registered under the same ID
//
// Registering the same layout twice is a no-op, so multiple packages may
// safely register a shared vertex type.
func RegisterVertex[V Vertex]() *VertexLayout {
	var v V
	l := v.VertexLayout()
	if l == nil || len(l.Attributes) == 0 {
		panic("imdraw: RegisterVertex with nil or empty layout")
	}
	if sz := unsafe.Sizeof(v); uintptr(l.Size) != sz {
		panic(fmt.Sprintf("imdraw: vertex layout %#x declares size %d, struct has size %d", l.ID, l.Size, sz))
	}
	for _, a := range l.Attributes {
		if int(a.Offset)+formatSize(a.Format) > int(l.Size) {
			panic(fmt.Sprintf("imdraw: vertex layout %#x attribute %q exceeds struct size", l.ID, a.Name))
		}
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if prev, dup := vertexLayouts[l.ID]; dup {
		if prev != l {
			panic(fmt.Sprintf("imdraw: vertex layout ID %#x registered twice", l.ID))
		}
		return l
	}
	vertexLayouts[l.ID] = l
	return l
}

// RegisterUniform registers the layout of uniform type U and returns it.
// The same rules and panics apply as for RegisterVertex, with field byte
// ranges validated against the struct size.
func RegisterUniform[U Uniform]() *UniformLayout {
	var u U
	l := u.UniformLayout()
	if l == nil {
		panic("imdraw: RegisterUniform with nil layout")
	}
	if sz := unsafe.Sizeof(u); uintptr(l.Size) != sz {
		panic(fmt.Sprintf("imdraw: uniform layout %#x declares size %d, struct has size %d", l.ID, l.Size, sz))
	}
	for _, f := range l.Fields {
		count := int(f.Count)
		if count == 0 {
			count = 1
		}
		if int(f.Offset)+f.Type.ByteSize()*count > int(l.Size) {
			panic(fmt.Sprintf("imdraw: uniform layout %#x field %q exceeds struct size", l.ID, f.Name))
		}
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if prev, dup := uniformLayouts[l.ID]; dup {
		if prev != l {
			panic(fmt.Sprintf("imdraw: uniform layout ID %#x registered twice", l.ID))
		}
		return l
	}
	uniformLayouts[l.ID] = l
	return l
}

// VertexLayoutByID returns the registered vertex layout for id.
func VertexLayoutByID(id uint32) (*VertexLayout, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	l, ok := vertexLayouts[id]
	return l, ok
}

// UniformLayoutByID returns the registered uniform layout for id.
func UniformLayoutByID(id uint32) (*UniformLayout, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	l, ok := uniformLayouts[id]
	return l, ok
}

// formatSize returns the byte size of the vertex formats used by the
// built-in layouts. Unknown formats size to 0 and skip range validation.
func formatSize(f gputypes.VertexFormat) int {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 4
	case gputypes.VertexFormatFloat32x2:
		return 8
	case gputypes.VertexFormatFloat32x3:
		return 12
	case gputypes.VertexFormatFloat32x4:
		return 16
	case gputypes.VertexFormatUnorm8x4:
		return 4
	default:
		return 0
	}
}
