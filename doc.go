// Package imdraw provides a retained drawing-command buffer for 2D graphics.
//
// # Overview
//
// imdraw batches CPU-generated geometry for GPU submission. Application code
// issues drawing operations (filled and stroked rectangles, polygons,
// sprites, curves) against strongly typed vertex and uniform formats; a
// Buffer accumulates them into a minimal sequence of draw commands.
// Contiguous geometry sharing primitive topology, vertex layout, shader,
// uniforms, and pipeline state coalesces into a single Command, so a backend
// issues one draw call per batch instead of one per shape.
//
// # Quick Start
//
//	import "github.com/gogpu/imdraw"
//
//	// Create a buffer for colored 2D geometry
//	buf := imdraw.NewBuffer[imdraw.ColorVertex, imdraw.ColorUniform]()
//	buf.Blend = imdraw.BlendAlpha
//	buf.Shader = myShader
//
//	// Fill some shapes through a paint tool
//	paint := imdraw.Paint[imdraw.ColorVertex]{
//		Template: imdraw.ColorTemplate{Color1: imdraw.Red, Color2: imdraw.Red},
//	}
//	paint.FillRect(buf, imdraw.RectXYWH(50, 50, 100, 100))
//
//	// Hand the result to a backend
//	err := buf.Draw(submitter)
//
// # Drawing Tools
//
// Paint fills shapes, Pen strokes outlines, and Sprite stamps textured
// quads. The tools append to the buffer incrementally and can be freely
// mixed. Rendering behavior is controlled through the buffer's public fields
// (Scissor, Blend, Depth, Cull, Mask, Shader, Uniform); draw calls batch
// automatically while these stay unchanged, so grouping similar operations
// yields the fewest commands.
//
// Custom tools build on Buffer.Begin, which reserves vertex and index slots
// and returns a PrimBuilder for populating them directly. Every built-in
// tool goes through the same path.
//
// # Submission
//
// A populated buffer is handed to a backend as a read-only Snapshot, or by
// walking a Submitter over its commands with Buffer.Draw. A Pool recycles
// buffers of heterogeneous vertex/uniform types across frames and replays
// interleaved submissions in order. The backend/wgpu package contains a
// reference submitter for the gogpu stack.
//
// # Coordinate System
//
// imdraw does not impose a coordinate system: positions pass through to the
// vertex shader unchanged, and the uniform transform decides the projection.
// The built-in uniforms default to the identity transform.
package imdraw

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
