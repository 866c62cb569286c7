package wgpu

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/imdraw"
)

// Config describes the render target the renderer draws into. Pipelines
// are specialized per target configuration; changing it requires a new
// Renderer.
type Config struct {
	// ColorFormat is the color attachment pixel format.
	// Default: BGRA8Unorm.
	ColorFormat gputypes.TextureFormat

	// DepthFormat is the depth/stencil attachment format, or
	// TextureFormatUndefined when the pass has no depth attachment.
	// Without one, command depth state and depth write masks are ignored.
	DepthFormat gputypes.TextureFormat

	// SampleCount is the MSAA sample count of the target.
	// Default: 1 (no MSAA).
	SampleCount uint32
}

// DefaultConfig returns the single-sampled BGRA8 configuration with no
// depth attachment.
func DefaultConfig() Config {
	return Config{
		ColorFormat: gputypes.TextureFormatBGRA8Unorm,
		DepthFormat: gputypes.TextureFormatUndefined,
		SampleCount: 1,
	}
}

// normalize fills zero-value fields with defaults.
func (c Config) normalize() Config {
	if c.ColorFormat == gputypes.TextureFormatUndefined {
		c.ColorFormat = gputypes.TextureFormatBGRA8Unorm
	}
	if c.SampleCount == 0 {
		c.SampleCount = 1
	}
	return c
}

// program bundles the compiled shader module and bind layouts for one
// built-in vertex type. Render pipelines derive from a program plus a
// command's pipeline state.
type program struct {
	label  string
	shader imdraw.Shader
	layout gputypes.VertexBufferLayout

	// textured programs bind a texture view and sampler after the
	// uniform buffer.
	textured bool

	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
}

// destroy releases the program's GPU objects in reverse creation order.
// Safe to call repeatedly.
func (p *program) destroy(device hal.Device) {
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

// ensureProgram returns the program for the snapshot's vertex type,
// compiling it on first use.
func (r *Renderer) ensureProgram(snap *imdraw.Snapshot) (*program, error) {
	if p, ok := r.programs[snap.Vertex.ID]; ok {
		return p, nil
	}

	var (
		label    string
		source   string
		shader   imdraw.Shader
		textured bool
	)
	switch snap.Vertex.ID {
	case imdraw.ColorVertex{}.VertexLayout().ID:
		label, source, shader = "imdraw_color", colorShaderSource, imdraw.ShaderColor
	case imdraw.TexturedVertex{}.VertexLayout().ID:
		label, source, shader = "imdraw_textured", texturedShaderSource, imdraw.ShaderTextured
		textured = true
	default:
		return nil, fmt.Errorf("%w: vertex layout %#x", ErrUnknownVertexType, snap.Vertex.ID)
	}

	module, err := createShaderModule(r.device, label, source)
	if err != nil {
		return nil, err
	}

	entries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
	if textured {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		r.device.DestroyShaderModule(module)
		return nil, fmt.Errorf("create %s bind layout: %w", label, err)
	}

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		r.device.DestroyBindGroupLayout(bindLayout)
		r.device.DestroyShaderModule(module)
		return nil, fmt.Errorf("create %s pipeline layout: %w", label, err)
	}

	p := &program{
		label:      label,
		shader:     shader,
		layout:     snap.Vertex.BufferLayout(),
		textured:   textured,
		module:     module,
		bindLayout: bindLayout,
		pipeLayout: pipeLayout,
	}
	r.programs[snap.Vertex.ID] = p
	return p, nil
}

// ensurePipeline returns the render pipeline for a program and command
// state, creating and caching it on first use. Scissor and uniform index
// are dynamic and do not participate in the key.
func (r *Renderer) ensurePipeline(p *program, state imdraw.State) (hal.RenderPipeline, error) {
	key := pipelineKey(p.layout, state, r.config)
	if pipe, ok := r.pipelines[key]; ok {
		return pipe, nil
	}

	desc := &hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_pipeline_%016x", p.label, key),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.module,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{p.layout},
		},
		Fragment: &hal.FragmentState{
			Module:     p.module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.config.ColorFormat,
					Blend:     blendState(state.Blend),
					WriteMask: colorWriteMask(state.Mask),
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topology(state.Kind),
			CullMode: cullMode(state.Cull),
		},
		Multisample: gputypes.MultisampleState{
			Count: r.config.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
	if r.config.DepthFormat != gputypes.TextureFormatUndefined {
		keep := hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		}
		desc.DepthStencil = &hal.DepthStencilState{
			Format:            r.config.DepthFormat,
			DepthWriteEnabled: state.Mask&imdraw.MaskDepth != 0,
			DepthCompare:      compareFunction(state.Depth),
			StencilFront:      keep,
			StencilBack:       keep,
			StencilReadMask:   0x00,
			StencilWriteMask:  0x00,
		}
	}

	pipe, err := r.device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", p.label, err)
	}
	r.pipelines[key] = pipe

	imdraw.Logger().Debug("pipeline created",
		slog.String("backend", "wgpu"),
		slog.String("program", p.label),
		slog.String("kind", state.Kind.String()),
		slog.String("blend", state.Blend.String()),
		slog.Int("cached", len(r.pipelines)),
	)
	return pipe, nil
}

// pipelineKey computes an FNV-1a hash over every field that selects a
// distinct render pipeline.
func pipelineKey(layout gputypes.VertexBufferLayout, state imdraw.State, cfg Config) uint64 {
	h := fnv.New64a()
	hashWriteUint64(h, layout.ArrayStride)
	for _, a := range layout.Attributes {
		hashWriteUint32(h, uint32(a.Format))
		hashWriteUint64(h, a.Offset)
	}
	hashWriteUint32(h, uint32(state.Shader))
	hashWriteUint32(h, uint32(state.Kind))
	hashWriteUint32(h, uint32(state.Blend))
	hashWriteUint32(h, uint32(state.Depth))
	hashWriteUint32(h, uint32(state.Cull))
	hashWriteUint32(h, uint32(state.Mask))
	hashWriteUint32(h, uint32(cfg.ColorFormat))
	hashWriteUint32(h, uint32(cfg.DepthFormat))
	hashWriteUint32(h, cfg.SampleCount)
	return h.Sum64()
}

func hashWriteUint32(h hash.Hash64, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = h.Write(buf[:])
}

func hashWriteUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

// topology maps a primitive kind to its hal topology.
func topology(kind imdraw.Kind) gputypes.PrimitiveTopology {
	if kind == imdraw.Lines {
		return gputypes.PrimitiveTopologyLineList
	}
	return gputypes.PrimitiveTopologyTriangleList
}

// blendState returns the blend configuration for a mode. Nil means no
// blending: source replaces destination. Color factors follow the
// premultiplied-alpha convention of the built-in shaders.
func blendState(mode imdraw.BlendMode) *gputypes.BlendState {
	switch mode {
	case imdraw.BlendAlpha:
		premul := gputypes.BlendStatePremultiplied()
		return &premul
	case imdraw.BlendAdditive:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case imdraw.BlendLighten:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationMax,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationMax,
			},
		}
	case imdraw.BlendScreen:
		// src + dst*(1-src)
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOneMinusSrc,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case imdraw.BlendDarken:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationMin,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationMin,
			},
		}
	case imdraw.BlendMultiply:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDst,
				DstFactor: gputypes.BlendFactorZero,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDstAlpha,
				DstFactor: gputypes.BlendFactorZero,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	default: // BlendSolid
		return nil
	}
}

// compareFunction maps a depth test to its hal comparison. DepthNone
// compares Always; pipelines without a depth attachment never call this.
func compareFunction(d imdraw.DepthTest) gputypes.CompareFunction {
	switch d {
	case imdraw.DepthNever:
		return gputypes.CompareFunctionNever
	case imdraw.DepthLess:
		return gputypes.CompareFunctionLess
	case imdraw.DepthEqual:
		return gputypes.CompareFunctionEqual
	case imdraw.DepthLessEqual:
		return gputypes.CompareFunctionLessEqual
	case imdraw.DepthGreater:
		return gputypes.CompareFunctionGreater
	case imdraw.DepthNotEqual:
		return gputypes.CompareFunctionNotEqual
	case imdraw.DepthGreaterEqual:
		return gputypes.CompareFunctionGreaterEqual
	default: // DepthNone, DepthAlways
		return gputypes.CompareFunctionAlways
	}
}

// cullMode maps winding culling to hal. Front faces are counter-clockwise
// (the WebGPU default).
func cullMode(c imdraw.CullMode) gputypes.CullMode {
	switch c {
	case imdraw.CullCCW:
		return gputypes.CullModeFront
	case imdraw.CullCW:
		return gputypes.CullModeBack
	default:
		return gputypes.CullModeNone
	}
}

// colorWriteMask maps the command mask's color bit to the hal write mask.
func colorWriteMask(m imdraw.Mask) gputypes.ColorWriteMask {
	if m&imdraw.MaskColor != 0 {
		return gputypes.ColorWriteMaskAll
	}
	return 0
}
