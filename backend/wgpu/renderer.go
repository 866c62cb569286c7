package wgpu

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/imdraw"
)

// Renderer errors.
var (
	// ErrNotRecording is returned when SubmitBatch or EndFrame is called
	// outside a BeginFrame/EndFrame pair.
	ErrNotRecording = errors.New("wgpu: no frame recording")

	// ErrAlreadyRecording is returned when BeginFrame is called twice
	// without an EndFrame between.
	ErrAlreadyRecording = errors.New("wgpu: frame already recording")

	// ErrNilPass is returned when BeginFrame is given a nil pass encoder.
	ErrNilPass = errors.New("wgpu: nil render pass encoder")

	// ErrUnknownVertexType is returned when a snapshot's vertex layout has
	// no built-in pipeline.
	ErrUnknownVertexType = errors.New("wgpu: no pipeline for vertex type")

	// ErrNoShader is returned for commands carrying imdraw.ShaderNone.
	ErrNoShader = errors.New("wgpu: command carries no shader")

	// ErrShaderMismatch is returned when a command's shader does not
	// belong to the snapshot's vertex type.
	ErrShaderMismatch = errors.New("wgpu: shader does not match vertex type")

	// ErrNoTexture is returned for textured draws whose uniform carries
	// imdraw.TextureNone.
	ErrNoTexture = errors.New("wgpu: textured draw without texture")

	// ErrUnknownTexture is returned when a uniform references a texture
	// handle this renderer did not mint.
	ErrUnknownTexture = errors.New("wgpu: unknown texture handle")

	// ErrUniformIndexOutOfRange is returned when a command references a
	// uniform value past the snapshot's uniform count.
	ErrUniformIndexOutOfRange = errors.New("wgpu: uniform index out of range")
)

// uniformAlignment is WebGPU's minimum uniform buffer offset alignment.
// Uniform values are repacked at this stride for per-command binding.
const uniformAlignment = 256

// Renderer executes imdraw command buffers on a WebGPU device. It
// implements imdraw.Submitter: snapshot data is uploaded on first sight
// within a frame, and every command becomes one indexed draw call.
//
// Not safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	config Config

	programs  map[uint32]*program           // by vertex layout ID
	pipelines map[uint64]hal.RenderPipeline // by pipelineKey
	sampler   hal.Sampler

	textures   map[imdraw.Texture]*textureEntry
	nextHandle uint32

	// Frame state, valid between BeginFrame and EndFrame.
	recording bool
	ctx       context.Context
	pass      hal.RenderPassEncoder
	width     uint32
	height    uint32
	frames    map[*imdraw.Snapshot]*frameData
}

var _ imdraw.Submitter = (*Renderer)(nil)

// textureEntry is one registered texture. tex is nil for externally
// owned views.
type textureEntry struct {
	tex  hal.Texture
	view hal.TextureView
}

// frameData holds the uploaded GPU buffers for one snapshot. Buffers live
// for exactly one frame.
type frameData struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	uniformBuf hal.Buffer

	// uniformStride is the aligned byte distance between uniform values
	// in uniformBuf.
	uniformStride uint64

	// bindGroups caches one bind group per referenced uniform index.
	bindGroups map[uint32]hal.BindGroup
}

// destroy releases the frame's GPU objects. Bind groups go first, then
// the buffers they reference.
func (f *frameData) destroy(device hal.Device) {
	for _, bg := range f.bindGroups {
		device.DestroyBindGroup(bg)
	}
	f.bindGroups = nil
	if f.uniformBuf != nil {
		device.DestroyBuffer(f.uniformBuf)
		f.uniformBuf = nil
	}
	if f.idxBuf != nil {
		device.DestroyBuffer(f.idxBuf)
		f.idxBuf = nil
	}
	if f.vertBuf != nil {
		device.DestroyBuffer(f.vertBuf)
		f.vertBuf = nil
	}
}

// New creates a renderer on a hal device and queue. GPU objects are
// created lazily on first use.
func New(device hal.Device, queue hal.Queue, cfg Config) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Renderer{
		device:     device,
		queue:      queue,
		config:     cfg.normalize(),
		programs:   make(map[uint32]*program),
		pipelines:  make(map[uint64]hal.RenderPipeline),
		textures:   make(map[imdraw.Texture]*textureEntry),
		nextHandle: 1,
	}, nil
}

// NewFromHandle creates a renderer from a host application's device
// provider. A zero cfg.ColorFormat adopts the provider's surface format.
func NewFromHandle(handle DeviceHandle, cfg Config) (*Renderer, error) {
	device, queue, err := halDeviceFromHandle(handle)
	if err != nil {
		return nil, err
	}
	if cfg.ColorFormat == gputypes.TextureFormatUndefined {
		cfg.ColorFormat = handle.SurfaceFormat()
	}
	r, err := New(device, queue, cfg)
	if err != nil {
		return nil, err
	}
	imdraw.Logger().Info("renderer created",
		slog.String("backend", "wgpu"),
		slog.Uint64("color_format", uint64(r.config.ColorFormat)),
		slog.Uint64("depth_format", uint64(r.config.DepthFormat)),
		slog.Uint64("samples", uint64(r.config.SampleCount)),
	)
	return r, nil
}

// Destroy releases every GPU object the renderer owns: cached pipelines,
// programs, the sampler, minted textures, and any leftover frame buffers.
// Safe to call repeatedly.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	for _, fd := range r.frames {
		fd.destroy(r.device)
	}
	r.frames = nil
	r.recording = false
	r.pass = nil

	for key, pipe := range r.pipelines {
		r.device.DestroyRenderPipeline(pipe)
		delete(r.pipelines, key)
	}
	for id, p := range r.programs {
		p.destroy(r.device)
		delete(r.programs, id)
	}
	if r.sampler != nil {
		r.device.DestroySampler(r.sampler)
		r.sampler = nil
	}
	for handle, entry := range r.textures {
		r.releaseTexture(entry)
		delete(r.textures, handle)
	}
}

// BeginFrame binds a render pass for command recording. The pass must
// match the renderer's Config (color format, depth attachment, sample
// count). width and height are the attachment dimensions in pixels,
// used to reset the scissor for unscissored commands.
//
// The context is checked on every subsequent upload; a canceled context
// fails the remaining SubmitBatch calls.
func (r *Renderer) BeginFrame(ctx context.Context, pass hal.RenderPassEncoder, width, height uint32) error {
	if r.recording {
		return ErrAlreadyRecording
	}
	if pass == nil {
		return ErrNilPass
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r.recording = true
	r.ctx = ctx
	r.pass = pass
	r.width = width
	r.height = height
	r.frames = make(map[*imdraw.Snapshot]*frameData)
	return nil
}

// EndFrame releases the frame's transient GPU buffers and unbinds the
// pass. The pass itself stays open; ending it belongs to the caller.
func (r *Renderer) EndFrame() error {
	if !r.recording {
		return ErrNotRecording
	}
	for _, fd := range r.frames {
		fd.destroy(r.device)
	}
	r.frames = nil
	r.recording = false
	r.ctx = nil
	r.pass = nil
	return nil
}

// SubmitBatch implements imdraw.Submitter. The first command of each
// snapshot uploads its vertex, index, and uniform data; every command
// records one indexed draw.
func (r *Renderer) SubmitBatch(snap *imdraw.Snapshot, cmd imdraw.Command) error {
	if !r.recording {
		return ErrNotRecording
	}
	if err := r.ctx.Err(); err != nil {
		return err
	}
	if cmd.State.Shader == imdraw.ShaderNone {
		return ErrNoShader
	}

	prog, err := r.ensureProgram(snap)
	if err != nil {
		return err
	}
	if cmd.State.Shader != prog.shader {
		return fmt.Errorf("%w: shader %#x on %s geometry",
			ErrShaderMismatch, uint32(cmd.State.Shader), prog.label)
	}

	fd, err := r.ensureFrameData(snap)
	if err != nil {
		return err
	}
	pipe, err := r.ensurePipeline(prog, cmd.State)
	if err != nil {
		return err
	}
	bg, err := r.ensureBindGroup(prog, snap, fd, cmd.State.UniformIndex)
	if err != nil {
		return err
	}

	r.pass.SetPipeline(pipe)
	r.pass.SetBindGroup(0, bg, nil)
	r.pass.SetVertexBuffer(0, fd.vertBuf, 0)
	r.pass.SetIndexBuffer(fd.idxBuf, gputypes.IndexFormatUint16, 0)
	x, y, w, h := clampScissor(cmd.State.Scissor, r.width, r.height)
	r.pass.SetScissorRect(x, y, w, h)
	r.pass.DrawIndexed(cmd.IndexCount(), 1, cmd.IndexStart, 0, 0)
	return nil
}

// ensureFrameData uploads a snapshot's data on first sight within the
// current frame. Subsequent commands of the same snapshot reuse the
// buffers by pointer identity.
func (r *Renderer) ensureFrameData(snap *imdraw.Snapshot) (*frameData, error) {
	if fd, ok := r.frames[snap]; ok {
		return fd, nil
	}

	fd := &frameData{bindGroups: make(map[uint32]hal.BindGroup)}

	vertBuf, err := r.createAndUpload("imdraw_vertices", snap.VertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	fd.vertBuf = vertBuf

	idxBytes := indexBytes(snap.Indices)
	idxBuf, err := r.createAndUpload("imdraw_indices", idxBytes,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		fd.destroy(r.device)
		return nil, err
	}
	fd.idxBuf = idxBuf

	fd.uniformStride = uniformStride(snap.Uniform)
	uniBytes := packUniforms(snap)
	uniformBuf, err := r.createAndUpload("imdraw_uniforms", uniBytes,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		fd.destroy(r.device)
		return nil, err
	}
	fd.uniformBuf = uniformBuf

	r.frames[snap] = fd
	imdraw.Logger().Debug("snapshot uploaded",
		slog.String("backend", "wgpu"),
		slog.Int("vertices", snap.VertexCount),
		slog.Int("indices", len(snap.Indices)),
		slog.Int("uniforms", snap.UniformCount),
		slog.Int("commands", len(snap.Commands)),
		slog.Int("bytes", len(snap.VertexData)+len(idxBytes)+len(uniBytes)),
	)
	return fd, nil
}

// createAndUpload creates a GPU buffer and writes data through the queue.
func (r *Renderer) createAndUpload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// ensureBindGroup returns the bind group for one uniform value of the
// snapshot, creating it on first use. Textured programs resolve the
// uniform's texture handle here.
func (r *Renderer) ensureBindGroup(prog *program, snap *imdraw.Snapshot, fd *frameData, index uint32) (hal.BindGroup, error) {
	if bg, ok := fd.bindGroups[index]; ok {
		return bg, nil
	}
	if int(index) >= snap.UniformCount {
		return nil, fmt.Errorf("%w: %d of %d", ErrUniformIndexOutOfRange, index, snap.UniformCount)
	}

	entries := []gputypes.BindGroupEntry{
		{
			Binding: 0,
			Resource: gputypes.BufferBinding{
				Buffer: fd.uniformBuf.NativeHandle(),
				Offset: uint64(index) * fd.uniformStride,
				Size:   uint64(snap.Uniform.DataSize()),
			},
		},
	}
	if prog.textured {
		handle, ok := samplerHandle(snap, index)
		if !ok || handle == imdraw.TextureNone {
			return nil, ErrNoTexture
		}
		entry, ok := r.textures[handle]
		if !ok {
			return nil, fmt.Errorf("%w: %#x", ErrUnknownTexture, uint32(handle))
		}
		if err := r.ensureSampler(); err != nil {
			return nil, err
		}
		entries = append(entries,
			gputypes.BindGroupEntry{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: entry.view.NativeHandle()}},
			gputypes.BindGroupEntry{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
		)
	}

	bg, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   fmt.Sprintf("%s_bind_%d", prog.label, index),
		Layout:  prog.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s bind group: %w", prog.label, err)
	}
	fd.bindGroups[index] = bg
	return bg, nil
}

// ensureSampler creates the shared linear-filtering sampler on first use.
func (r *Renderer) ensureSampler() error {
	if r.sampler != nil {
		return nil
	}
	sampler, err := r.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "imdraw_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}
	r.sampler = sampler
	return nil
}

// CreateTexture uploads width*height RGBA pixels (tightly packed, 4
// bytes per pixel) and returns a handle for TexturedUniform.Texture.
func (r *Renderer) CreateTexture(ctx context.Context, width, height uint32, pixels []byte) (imdraw.Texture, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return imdraw.TextureNone, err
		}
	}
	if width == 0 || height == 0 {
		return imdraw.TextureNone, fmt.Errorf("wgpu: invalid texture size %dx%d", width, height)
	}
	if want := int(width) * int(height) * 4; len(pixels) != want {
		return imdraw.TextureNone, fmt.Errorf("wgpu: texture data is %d bytes, want %d", len(pixels), want)
	}

	handle := r.mintHandle()
	label := fmt.Sprintf("imdraw_texture_%d", uint32(handle))

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return imdraw.TextureNone, fmt.Errorf("create texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return imdraw.TextureNone, fmt.Errorf("create texture view: %w", err)
	}

	r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		pixels,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: width * 4, RowsPerImage: height},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)

	r.textures[handle] = &textureEntry{tex: tex, view: view}
	imdraw.Logger().Debug("texture created",
		slog.String("backend", "wgpu"),
		slog.Uint64("handle", uint64(handle)),
		slog.Uint64("width", uint64(width)),
		slog.Uint64("height", uint64(height)),
	)
	return handle, nil
}

// RegisterTextureView wraps an externally owned texture view in a
// handle. The caller keeps ownership of the view; DestroyTexture only
// forgets the handle.
func (r *Renderer) RegisterTextureView(view hal.TextureView) (imdraw.Texture, error) {
	if view == nil {
		return imdraw.TextureNone, fmt.Errorf("wgpu: nil texture view")
	}
	handle := r.mintHandle()
	r.textures[handle] = &textureEntry{view: view}
	return handle, nil
}

// DestroyTexture releases a handle and any GPU objects this renderer
// created for it. Unknown handles are ignored.
func (r *Renderer) DestroyTexture(handle imdraw.Texture) {
	entry, ok := r.textures[handle]
	if !ok {
		return
	}
	r.releaseTexture(entry)
	delete(r.textures, handle)
}

func (r *Renderer) releaseTexture(entry *textureEntry) {
	if entry.tex == nil {
		return
	}
	r.device.DestroyTextureView(entry.view)
	r.device.DestroyTexture(entry.tex)
	entry.tex = nil
	entry.view = nil
}

func (r *Renderer) mintHandle() imdraw.Texture {
	h := imdraw.Texture(r.nextHandle)
	r.nextHandle++
	return h
}

// indexBytes serializes indices for upload, padded to the 4-byte copy
// alignment.
func indexBytes(indices []uint16) []byte {
	n := len(indices) * 2
	data := make([]byte, (n+3)&^3)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}

// uniformStride returns the aligned byte distance between uniform values
// in the upload buffer.
func uniformStride(l *imdraw.UniformLayout) uint64 {
	return (uint64(l.DataSize()) + uniformAlignment - 1) &^ (uniformAlignment - 1)
}

// packUniforms lays the snapshot's uniform values out at the uniform
// offset alignment. Sampler handles past DataSize never reach the GPU.
func packUniforms(snap *imdraw.Snapshot) []byte {
	stride := uniformStride(snap.Uniform)
	dataSize := snap.Uniform.DataSize()
	size := int(snap.Uniform.Size)
	out := make([]byte, uint64(snap.UniformCount)*stride)
	for i := 0; i < snap.UniformCount; i++ {
		src := snap.UniformData[i*size : i*size+dataSize]
		copy(out[uint64(i)*stride:], src)
	}
	return out
}

// samplerHandle reads the texture handle from the sampler field of the
// index-th uniform value.
func samplerHandle(snap *imdraw.Snapshot, index uint32) (imdraw.Texture, bool) {
	for _, f := range snap.Uniform.Fields {
		if f.Type == imdraw.UniformSampler {
			off := int(index)*int(snap.Uniform.Size) + int(f.Offset)
			return imdraw.Texture(binary.LittleEndian.Uint32(snap.UniformData[off:])), true
		}
	}
	return imdraw.TextureNone, false
}

// clampScissor clamps a scissor rectangle to the framebuffer. A disabled
// scissor covers the whole framebuffer.
func clampScissor(sc imdraw.Scissor, fbW, fbH uint32) (x, y, w, h uint32) {
	if !sc.Enabled {
		return 0, 0, fbW, fbH
	}
	x0 := clampI64(int64(sc.X), 0, int64(fbW))
	y0 := clampI64(int64(sc.Y), 0, int64(fbH))
	x1 := clampI64(int64(sc.X)+int64(sc.W), x0, int64(fbW))
	y1 := clampI64(int64(sc.Y)+int64(sc.H), y0, int64(fbH))
	return uint32(x0), uint32(y0), uint32(x1 - x0), uint32(y1 - y0)
}

func clampI64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
