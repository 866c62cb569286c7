// Package wgpu renders imdraw command buffers on a WebGPU device via
// gogpu/wgpu. It is the reference consumer of the imdraw submission
// interface: snapshots are uploaded once per flush, and each batched
// command becomes exactly one indexed draw call.
//
// # Architecture Overview
//
//	imdraw.Pool / imdraw.Buffer
//	        |  Flush / Draw (Submitter interface)
//	        v
//	wgpu.Renderer -- upload vertex/index/uniform data (once per snapshot)
//	        |      -- resolve pipeline from the FNV-hashed state cache
//	        v
//	hal.RenderPassEncoder -- SetPipeline / SetBindGroup / DrawIndexed
//
// Key components:
//
//   - Renderer: implements imdraw.Submitter; owns the pipeline cache,
//     texture registry, and per-frame upload state
//   - pipeline cache: one hal.RenderPipeline per distinct (vertex layout,
//     blend, depth, cull, mask, topology) combination, created lazily and
//     reused across frames
//   - built-in programs: WGSL shaders for imdraw.ColorVertex and
//     imdraw.TexturedVertex, compiled to SPIR-V through gogpu/naga
//
// # Frame Lifecycle
//
// The renderer records into a render pass owned by the caller:
//
//	rend, _ := wgpu.New(device, queue, wgpu.DefaultConfig())
//	defer rend.Destroy()
//
//	rend.BeginFrame(ctx, pass, width, height)
//	err := pool.Flush(rend)
//	rend.EndFrame()
//
// BeginFrame binds the pass; SubmitBatch uploads data on first sight of a
// snapshot and records one draw per command; EndFrame releases the
// per-frame buffers. Transient GPU buffers live for exactly one frame.
//
// # Device Access
//
// The device arrives either as a direct hal.Device/hal.Queue pair (New)
// or through a host application's gpucontext.DeviceProvider
// (NewFromHandle), matching how gogpu surfaces share their device.
//
// # Textures
//
// imdraw.Texture handles are minted by this package: CreateTexture
// uploads RGBA pixels and returns a handle, RegisterTextureView wraps an
// externally owned view. The built-in textured pipeline rejects
// imdraw.TextureNone.
//
// The renderer is not safe for concurrent use. Record one frame at a
// time, or use one Renderer per render pass.
package wgpu
