package imdraw

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Texture is an opaque handle to a texture binding. The engine stores it
// untouched in uniform data; only the backend that issued the handle can
// resolve it. Sampler fields never reach the GPU uniform upload (see
// UniformLayout.DataSize).
type Texture uint32

// TextureNone is the zero Texture. Built-in textured pipelines reject it.
const TextureNone Texture = 0

// Built-in shader handles. Backends resolve these to their bundled
// pipelines; custom shaders use handles minted by the backend.
const (
	// ShaderColor renders ColorVertex geometry using Color1, modulated by
	// the uniform's ColorMod.
	ShaderColor Shader = 0x6b1d29c4

	// ShaderTextured samples the bound texture and multiplies by the
	// per-vertex color and the uniform's ColorMod.
	ShaderTextured Shader = 0xe3a7501f
)

// ColorVertex is the built-in vertex for solid and per-vertex-colored
// geometry. Color2 is a free secondary attribute: the built-in color shader
// renders Color1 and leaves Color2 to custom shaders.
type ColorVertex struct {
	Pos    mgl32.Vec2
	Color1 RGBA
	Color2 RGBA
}

var colorVertexLayout = &VertexLayout{
	ID:        0x21c45b8a,
	Size:      uint16(unsafe.Sizeof(ColorVertex{})),
	Alignment: uint16(unsafe.Alignof(ColorVertex{})),
	Attributes: []VertexAttribute{
		{Name: "a_pos", Format: gputypes.VertexFormatFloat32x2, Offset: uint16(unsafe.Offsetof(ColorVertex{}.Pos))},
		{Name: "a_color1", Format: gputypes.VertexFormatUnorm8x4, Offset: uint16(unsafe.Offsetof(ColorVertex{}.Color1))},
		{Name: "a_color2", Format: gputypes.VertexFormatUnorm8x4, Offset: uint16(unsafe.Offsetof(ColorVertex{}.Color2))},
	},
}

// VertexLayout returns the static layout descriptor for ColorVertex.
func (ColorVertex) VertexLayout() *VertexLayout { return colorVertexLayout }

// ColorTemplate stamps ColorVertex values: every produced vertex carries the
// template's two colors.
type ColorTemplate struct {
	Color1 RGBA
	Color2 RGBA
}

// ToVertex implements Template[ColorVertex].
func (t ColorTemplate) ToVertex(pos mgl32.Vec2, _ int) ColorVertex {
	return ColorVertex{Pos: pos, Color1: t.Color1, Color2: t.Color2}
}

// ColorUniform is the uniform block for the built-in color shader.
type ColorUniform struct {
	// Transform maps vertex positions to clip space.
	Transform mgl32.Mat4
	// ColorMod multiplies the fragment color. Opaque white is identity.
	ColorMod mgl32.Vec4
}

var colorUniformLayout = &UniformLayout{
	ID:        0x7f30d96e,
	Size:      uint16(unsafe.Sizeof(ColorUniform{})),
	Alignment: uint16(unsafe.Alignof(ColorUniform{})),
	Fields: []UniformField{
		{Name: "u_transform", Type: UniformMat4, Offset: uint16(unsafe.Offsetof(ColorUniform{}.Transform)), Count: 1},
		{Name: "u_colorMod", Type: UniformVec4, Offset: uint16(unsafe.Offsetof(ColorUniform{}.ColorMod)), Count: 1},
	},
}

// UniformLayout returns the static layout descriptor for ColorUniform.
func (ColorUniform) UniformLayout() *UniformLayout { return colorUniformLayout }

// NewColorUniform returns a ColorUniform with an identity transform and
// identity color modulation.
func NewColorUniform() ColorUniform {
	return ColorUniform{
		Transform: mgl32.Ident4(),
		ColorMod:  mgl32.Vec4{1, 1, 1, 1},
	}
}

// TexturedVertex is the built-in vertex for textured geometry.
type TexturedVertex struct {
	Pos   mgl32.Vec2
	UV    mgl32.Vec2
	Color RGBA
}

var texturedVertexLayout = &VertexLayout{
	ID:        0x4e8a17d3,
	Size:      uint16(unsafe.Sizeof(TexturedVertex{})),
	Alignment: uint16(unsafe.Alignof(TexturedVertex{})),
	Attributes: []VertexAttribute{
		{Name: "a_pos", Format: gputypes.VertexFormatFloat32x2, Offset: uint16(unsafe.Offsetof(TexturedVertex{}.Pos))},
		{Name: "a_uv", Format: gputypes.VertexFormatFloat32x2, Offset: uint16(unsafe.Offsetof(TexturedVertex{}.UV))},
		{Name: "a_color", Format: gputypes.VertexFormatUnorm8x4, Offset: uint16(unsafe.Offsetof(TexturedVertex{}.Color))},
	},
}

// VertexLayout returns the static layout descriptor for TexturedVertex.
func (TexturedVertex) VertexLayout() *VertexLayout { return texturedVertexLayout }

// TexturedTemplate stamps TexturedVertex values with a fixed UV and color.
// Quad helpers that need distinct UVs per corner use one template per corner
// instead of the shape-local index.
type TexturedTemplate struct {
	UV    mgl32.Vec2
	Color RGBA
}

// ToVertex implements Template[TexturedVertex].
func (t TexturedTemplate) ToVertex(pos mgl32.Vec2, _ int) TexturedVertex {
	return TexturedVertex{Pos: pos, UV: t.UV, Color: t.Color}
}

// TexturedUniform is the uniform block for the built-in textured shader.
// The sampler handle sits last so the uploaded data slice (DataSize) stays a
// plain prefix.
type TexturedUniform struct {
	Transform mgl32.Mat4
	ColorMod  mgl32.Vec4
	Texture   Texture
}

var texturedUniformLayout = &UniformLayout{
	ID:        0xb5c62f91,
	Size:      uint16(unsafe.Sizeof(TexturedUniform{})),
	Alignment: uint16(unsafe.Alignof(TexturedUniform{})),
	Fields: []UniformField{
		{Name: "u_transform", Type: UniformMat4, Offset: uint16(unsafe.Offsetof(TexturedUniform{}.Transform)), Count: 1},
		{Name: "u_colorMod", Type: UniformVec4, Offset: uint16(unsafe.Offsetof(TexturedUniform{}.ColorMod)), Count: 1},
		{Name: "u_texture", Type: UniformSampler, Offset: uint16(unsafe.Offsetof(TexturedUniform{}.Texture)), Count: 1},
	},
}

// UniformLayout returns the static layout descriptor for TexturedUniform.
func (TexturedUniform) UniformLayout() *UniformLayout { return texturedUniformLayout }

// NewTexturedUniform returns a TexturedUniform with an identity transform,
// identity color modulation, and the given texture.
func NewTexturedUniform(tex Texture) TexturedUniform {
	return TexturedUniform{
		Transform: mgl32.Ident4(),
		ColorMod:  mgl32.Vec4{1, 1, 1, 1},
		Texture:   tex,
	}
}

func init() {
	RegisterVertex[ColorVertex]()
	RegisterUniform[ColorUniform]()
	RegisterVertex[TexturedVertex]()
	RegisterUniform[TexturedUniform]()
}
