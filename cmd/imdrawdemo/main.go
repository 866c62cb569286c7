// Command imdrawdemo builds one frame with the imdraw shape toolkit,
// reports how the batching engine packed it into draw calls, and replays
// the frame through the wgpu reference backend on a headless noop device.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/imdraw"
	"github.com/gogpu/imdraw/backend/wgpu"
)

func main() {
	var (
		width   = flag.Int("width", 800, "framebuffer width")
		height  = flag.Int("height", 600, "framebuffer height")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		imdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	device, queue, releaseDevice, err := openNoopDevice()
	if err != nil {
		log.Fatalf("open device: %v", err)
	}
	defer releaseDevice()

	renderer, err := wgpu.New(device, queue, wgpu.DefaultConfig())
	if err != nil {
		log.Fatalf("create renderer: %v", err)
	}
	defer renderer.Destroy()

	// 2x2 checkerboard for the sprite section.
	checker, err := renderer.CreateTexture(context.Background(), 2, 2, []byte{
		235, 235, 235, 255, 40, 40, 40, 255,
		40, 40, 40, 255, 235, 235, 235, 255,
	})
	if err != nil {
		log.Fatalf("create texture: %v", err)
	}
	defer renderer.DestroyTexture(checker)

	pool := imdraw.NewPool()
	buildFrame(pool, float32(*width), float32(*height), checker)

	// A Flush does not consume the pool, so the same frame can be walked
	// once for statistics and once for rendering.
	var stats frameStats
	if err := pool.Flush(&stats); err != nil {
		log.Fatalf("flush: %v", err)
	}
	stats.report()

	if err := renderFrame(renderer, device, queue, pool, uint32(*width), uint32(*height)); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Println("frame encoded and submitted through the wgpu backend")
}

// openNoopDevice opens the headless noop adapter: the full hal surface
// with no GPU behind it.
func openNoopDevice() (hal.Device, hal.Queue, func(), error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("no adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("open adapter: %w", err)
	}
	release := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, release, nil
}

// cornerColors colors each stamped quad corner separately: a template
// that varies by shape-local index.
type cornerColors [4]imdraw.RGBA

func (c cornerColors) ToVertex(pos mgl32.Vec2, i int) imdraw.ColorVertex {
	return imdraw.ColorVertex{Pos: pos, Color1: c[i]}
}

// buildFrame fills the pool with one frame of mixed geometry: a gradient
// background, blended ellipses, a concave star, curve strokes, and
// checkered sprites interleaved with colored outlines.
func buildFrame(pool *imdraw.Pool, w, h float32, checker imdraw.Texture) {
	ortho := mgl32.Ortho2D(0, w, 0, h)

	colors := imdraw.PoolGet[imdraw.ColorVertex, imdraw.ColorUniform](pool)
	colors.Shader = imdraw.ShaderColor
	cu := imdraw.NewColorUniform()
	cu.Transform = ortho
	colors.Uniform = cu

	drawBackground(colors, w, h)
	drawShapes(colors)
	drawStar(colors, mgl32.Vec2{w - 160, h - 160}, 100, 45)
	drawStrokes(colors, w, h)

	sprites := imdraw.PoolGet[imdraw.TexturedVertex, imdraw.TexturedUniform](pool)
	sprites.Shader = imdraw.ShaderTextured
	tu := imdraw.NewTexturedUniform(checker)
	tu.Transform = ortho
	sprites.Uniform = tu
	drawSprites(sprites, w, h)

	// Switch back to the color buffer: the outline draws after the
	// sprites because Flush preserves submission order across switches.
	colors = imdraw.PoolGet[imdraw.ColorVertex, imdraw.ColorUniform](pool)
	pen := imdraw.NewPen(imdraw.ColorTemplate{Color1: imdraw.RGB(255, 255, 255)})
	pen.DrawRect(colors, imdraw.RectXYWH(w/2-90, 30, 180, 180))
}

// drawBackground lays a vertical gradient as a single quad.
func drawBackground(dst *imdraw.Buffer[imdraw.ColorVertex, imdraw.ColorUniform], w, h float32) {
	bottom := imdraw.RGB(18, 26, 51)
	top := imdraw.RGB(64, 96, 128)
	grad := cornerColors{bottom, top, top, bottom}
	imdraw.StampQuad(dst, grad,
		mgl32.Vec2{0, 0}, mgl32.Vec2{0, h}, mgl32.Vec2{w, h}, mgl32.Vec2{w, 0})
}

// drawShapes overlaps three ellipses with alpha and additive blending,
// then a ring and a pie slice. The blend flips split the batches.
func drawShapes(dst *imdraw.Buffer[imdraw.ColorVertex, imdraw.ColorUniform]) {
	dst.Blend = imdraw.BlendAlpha
	red := imdraw.NewPaint(imdraw.ColorTemplate{Color1: imdraw.RGBA2(255, 77, 77, 204)})
	green := imdraw.NewPaint(imdraw.ColorTemplate{Color1: imdraw.RGBA2(77, 255, 77, 204)})
	blue := imdraw.NewPaint(imdraw.ColorTemplate{Color1: imdraw.RGBA2(77, 77, 255, 204)})
	red.FillEllipse(dst, imdraw.RectXYWH(90, 340, 120, 120))
	green.FillEllipse(dst, imdraw.RectXYWH(140, 340, 120, 120))
	blue.FillEllipse(dst, imdraw.RectXYWH(115, 290, 120, 120))

	dst.Blend = imdraw.BlendAdditive
	gold := imdraw.NewPaint(imdraw.ColorTemplate{Color1: imdraw.RGB(255, 200, 60)})
	gold.FillRing(dst, imdraw.RectXYWH(320, 300, 140, 140), 18)
	gold.FillPie(dst, imdraw.RectXYWH(500, 300, 140, 140), 0, math.Pi*1.5)
	dst.Blend = imdraw.BlendSolid
}

// drawStar stamps a concave star polygon through the ear-clipping
// triangulator.
func drawStar(dst *imdraw.Buffer[imdraw.ColorVertex, imdraw.ColorUniform], center mgl32.Vec2, outer, inner float32) {
	const points = 5
	pts := make([]mgl32.Vec2, 0, points*2)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/points - math.Pi/2
		pts = append(pts, mgl32.Vec2{
			center[0] + r*float32(math.Cos(a)),
			center[1] + r*float32(math.Sin(a)),
		})
	}
	imdraw.StampPolygon(dst, imdraw.ColorTemplate{Color1: imdraw.RGB(255, 230, 0)}, pts)
}

// drawStrokes draws line work: a cardinal spline, a cubic bezier, and an
// arc, all merging into Lines batches.
func drawStrokes(dst *imdraw.Buffer[imdraw.ColorVertex, imdraw.ColorUniform], w, h float32) {
	pen := imdraw.NewPen(imdraw.ColorTemplate{Color1: imdraw.RGB(255, 140, 0)})
	pen.DrawCSpline(dst, []mgl32.Vec2{
		{40, h - 80}, {w * 0.25, h - 30}, {w * 0.5, h - 110}, {w * 0.75, h - 40}, {w - 40, h - 90},
	}, 0.5)
	pen.DrawBezier3(dst,
		mgl32.Vec2{40, h - 160}, mgl32.Vec2{w * 0.3, h - 240},
		mgl32.Vec2{w * 0.7, h - 100}, mgl32.Vec2{w - 40, h - 180})
	pen.DrawArc(dst, imdraw.RectXYWH(w-260, 60, 200, 200), 0, math.Pi)
}

// drawSprites places checkered sprites: axis-aligned tiles and one
// rotated quad sampling a quarter of the texture.
func drawSprites(dst *imdraw.Buffer[imdraw.TexturedVertex, imdraw.TexturedUniform], w, h float32) {
	sprite := imdraw.NewSprite(imdraw.RGB(255, 255, 255))
	sprite.DrawRect(dst, imdraw.RectXYWH(w/2-80, 40, 160, 160))

	tinted := imdraw.NewSprite(imdraw.RGBA2(255, 160, 160, 255))
	tinted.DrawRect(dst, imdraw.RectXYWH(w/2-140, 70, 50, 50))
	tinted.DrawRect(dst, imdraw.RectXYWH(w/2+90, 70, 50, 50))

	quarter := imdraw.NewSpriteUV(imdraw.RectXYWH(0, 0, 0.5, 0.5), imdraw.RGB(255, 255, 255))
	sin, cos := math.Sincos(math.Pi / 6)
	x := mgl32.Vec2{90 * float32(cos), 90 * float32(sin)}
	y := mgl32.Vec2{-90 * float32(sin), 90 * float32(cos)}
	quarter.DrawQuad(dst, mgl32.Vec2{w/2 - 45, 260}, x, y)
}

// frameStats tallies submissions the way a backend sees them.
type frameStats struct {
	batches  int
	tris     int
	lines    int
	indices  int
	vertices int
	bytes    int
	buffers  map[*imdraw.Snapshot]struct{}
}

func (s *frameStats) SubmitBatch(snap *imdraw.Snapshot, cmd imdraw.Command) error {
	if s.buffers == nil {
		s.buffers = make(map[*imdraw.Snapshot]struct{})
	}
	if _, ok := s.buffers[snap]; !ok {
		s.buffers[snap] = struct{}{}
		s.vertices += snap.VertexCount
		s.bytes += len(snap.VertexData) + 2*len(snap.Indices) + len(snap.UniformData)
	}
	s.batches++
	s.indices += int(cmd.IndexCount())
	switch cmd.State.Kind {
	case imdraw.Triangles:
		s.tris++
	case imdraw.Lines:
		s.lines++
	}
	return nil
}

func (s *frameStats) report() {
	fmt.Printf("frame packed into %d draw calls (%d triangle batches, %d line batches)\n",
		s.batches, s.tris, s.lines)
	fmt.Printf("  %d vertices, %d indices, %d upload bytes across %d buffers\n",
		s.vertices, s.indices, s.bytes, len(s.buffers))
}

// renderFrame replays the pool through the backend into an offscreen
// color attachment and submits the command buffer.
func renderFrame(renderer *wgpu.Renderer, device hal.Device, queue hal.Queue, pool *imdraw.Pool, w, h uint32) error {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "demo_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	defer device.DestroyTexture(tex)
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "demo_target_view",
	})
	if err != nil {
		return fmt.Errorf("create target view: %w", err)
	}
	defer device.DestroyTextureView(view)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "demo_encoder",
	})
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}
	if err := encoder.BeginEncoding("demo_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "demo_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0.07, G: 0.1, B: 0.2, A: 1},
		}},
	})

	if err := renderer.BeginFrame(context.Background(), rp, w, h); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := pool.Flush(renderer); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := renderer.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)
	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := device.Wait(fence, 1, 5*time.Second)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("wait for GPU: timed out")
	}
	return nil
}
