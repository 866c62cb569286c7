package imdraw

// Kind selects the primitive topology of a draw command.
// Its numeric value is the number of indices consumed per primitive.
type Kind uint8

const (
	// Lines renders pairs of indices as independent line segments.
	Lines Kind = 2
	// Triangles renders triples of indices as independent triangles.
	Triangles Kind = 3
)

// String returns the name of the primitive kind.
func (k Kind) String() string {
	switch k {
	case Lines:
		return "Lines"
	case Triangles:
		return "Triangles"
	default:
		return "Unknown"
	}
}

// indexCount returns the number of indices consumed by nprims primitives.
func (k Kind) indexCount(nprims int) int {
	return nprims * int(k)
}

// BlendMode selects how fragments combine with the framebuffer.
type BlendMode uint8

const (
	// BlendSolid overwrites the destination (no blending).
	BlendSolid BlendMode = iota
	// BlendAlpha composites with premultiplied source alpha.
	BlendAlpha
	// BlendAdditive adds source to destination.
	BlendAdditive
	// BlendLighten keeps the per-channel maximum.
	BlendLighten
	// BlendScreen inverts, multiplies, and inverts again.
	BlendScreen
	// BlendDarken keeps the per-channel minimum.
	BlendDarken
	// BlendMultiply multiplies source with destination.
	BlendMultiply
)

// String returns the name of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendSolid:
		return "Solid"
	case BlendAlpha:
		return "Alpha"
	case BlendAdditive:
		return "Additive"
	case BlendLighten:
		return "Lighten"
	case BlendScreen:
		return "Screen"
	case BlendDarken:
		return "Darken"
	case BlendMultiply:
		return "Multiply"
	default:
		return "Unknown"
	}
}

// DepthTest selects the fragment depth comparison.
// The zero value DepthNone disables depth testing entirely.
type DepthTest uint8

const (
	DepthNone DepthTest = iota
	DepthNever
	DepthLess
	DepthEqual
	DepthLessEqual
	DepthGreater
	DepthNotEqual
	DepthGreaterEqual
	DepthAlways
)

// String returns the name of the depth test.
func (d DepthTest) String() string {
	switch d {
	case DepthNone:
		return "None"
	case DepthNever:
		return "Never"
	case DepthLess:
		return "Less"
	case DepthEqual:
		return "Equal"
	case DepthLessEqual:
		return "LessEqual"
	case DepthGreater:
		return "Greater"
	case DepthNotEqual:
		return "NotEqual"
	case DepthGreaterEqual:
		return "GreaterEqual"
	case DepthAlways:
		return "Always"
	default:
		return "Unknown"
	}
}

// Enabled reports whether depth testing is active.
func (d DepthTest) Enabled() bool {
	return d != DepthNone
}

// CullMode selects which triangle winding is discarded.
// The zero value CullNone disables culling.
type CullMode uint8

const (
	CullNone CullMode = iota
	// CullCCW discards counter-clockwise triangles.
	CullCCW
	// CullCW discards clockwise triangles.
	CullCW
)

// String returns the name of the cull mode.
func (c CullMode) String() string {
	switch c {
	case CullNone:
		return "None"
	case CullCCW:
		return "CCW"
	case CullCW:
		return "CW"
	default:
		return "Unknown"
	}
}

// Mask selects which framebuffer channels a draw command writes.
type Mask uint8

const (
	// MaskColor enables color writes.
	MaskColor Mask = 1 << iota
	// MaskDepth enables depth writes.
	MaskDepth

	// MaskAll enables every channel.
	MaskAll = MaskColor | MaskDepth
)

// String returns the names of the enabled channels.
func (m Mask) String() string {
	switch m {
	case 0:
		return "None"
	case MaskColor:
		return "Color"
	case MaskDepth:
		return "Depth"
	case MaskAll:
		return "Color|Depth"
	default:
		return "Unknown"
	}
}

// Shader identifies a shader program to the backend. The value is opaque to
// the batching engine: it participates in batch-merge equality and is
// otherwise passed through unchanged. The zero value means "no shader";
// backends reject commands carrying it.
type Shader uint32

// ShaderNone is the zero Shader value.
const ShaderNone Shader = 0
