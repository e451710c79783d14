package commands

import (
	_ "embed"
	"fmt"
	"log/slog"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/vrdesk/glm"
	"github.com/oliverbestmann/vrdesk/pulse"
	"github.com/oliverbestmann/vrdesk/surface"
	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed surface.wgsl
var surfaceShaderCode string

// number of uniform slots, one per eye
const surfaceUniformSlots = 2

type surfaceUniforms struct {
	_ structs.HostLayout

	ViewProjection glm.Mat4f
}

// SurfaceCommand draws the desktop texture onto the virtual screen mesh.
type SurfaceCommand struct {
	ctx *pulse.Context

	pipelineCache *pulse.PipelineCache[surfacePipelineConfig]

	bufVertices    *wgpu.Buffer
	vertexCapacity int
	vertexCount    uint32
	topology       wgpu.PrimitiveTopology

	bufUniforms [surfaceUniformSlots]*wgpu.Buffer
}

func NewSurfaceCommand(ctx *pulse.Context) *SurfaceCommand {
	c := &SurfaceCommand{
		ctx:           ctx,
		pipelineCache: pulse.NewPipelineCache[surfacePipelineConfig](ctx),
	}

	for idx := range c.bufUniforms {
		c.bufUniforms[idx] = ctx.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("Surface.Uniforms[%d]", idx),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			Size:  uint64(unsafe.Sizeof(surfaceUniforms{})),
		})
	}

	return c
}

// SetGeometry uploads a new mesh. The vertex buffer only grows.
func (c *SurfaceCommand) SetGeometry(geometry surface.Geometry) error {
	if len(geometry.Vertices) == 0 {
		return fmt.Errorf("geometry has no vertices")
	}

	if len(geometry.Vertices) > c.vertexCapacity {
		if c.bufVertices != nil {
			c.bufVertices.Release()
		}

		slog.Debug("Allocate surface vertex buffer", slog.Int("vertices", len(geometry.Vertices)))

		c.bufVertices = c.ctx.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Surface.Vertices",
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			Size:  uint64(unsafe.Sizeof(surface.Vertex{})) * uint64(len(geometry.Vertices)),
		})

		c.vertexCapacity = len(geometry.Vertices)
	}

	if err := c.ctx.TryWriteBuffer(c.bufVertices, 0, pulse.SliceAsBytes(geometry.Vertices)); err != nil {
		return fmt.Errorf("upload surface vertices: %w", err)
	}

	c.vertexCount = uint32(len(geometry.Vertices))
	c.topology = topologyOf(geometry.Topology)

	return nil
}

func topologyOf(topology surface.Topology) wgpu.PrimitiveTopology {
	switch topology {
	case surface.TriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	default:
		panic(fmt.Sprintf("unsupported topology %d", topology))
	}
}

type DrawSurfaceOptions struct {
	// Desktop is the texture shown on the screen mesh
	Desktop *pulse.Texture

	ViewProjection glm.Mat4f

	// Slot selects the uniform buffer to use. Draws submitted within the
	// same frame must use distinct slots.
	Slot int
}

// Draw renders the current geometry into the region of target. The
// existing content of target is kept.
func (c *SurfaceCommand) Draw(target *pulse.Texture, opts DrawSurfaceOptions) error {
	if c.vertexCount == 0 {
		return fmt.Errorf("no geometry set")
	}

	if opts.Slot < 0 || opts.Slot >= surfaceUniformSlots {
		return fmt.Errorf("invalid uniform slot %d", opts.Slot)
	}

	sampler, err := pulse.CachedSampler(c.ctx.Device, pulse.LinearClampSampler)
	if err != nil {
		return err
	}

	pc, err := c.pipelineCache.Get(surfacePipelineConfig{
		TargetFormat:      target.Format(),
		TargetSampleCount: target.SampleCount(),
		Topology:          c.topology,
	})
	if err != nil {
		return fmt.Errorf("get surface pipeline: %w", err)
	}

	bufUniforms := c.bufUniforms[opts.Slot]

	uniforms := surfaceUniforms{ViewProjection: opts.ViewProjection}
	if err := c.ctx.TryWriteBuffer(bufUniforms, 0, pulse.AsByteSlice(&uniforms)); err != nil {
		return fmt.Errorf("upload surface uniforms: %w", err)
	}

	bindGroup, err := c.ctx.TryCreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Surface.BindGroup",
		Layout: pc.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: opts.Desktop.ToWGPUTextureView(),
				Size:        wgpu.WholeSize,
			},
			{
				Binding: 1,
				Sampler: sampler,
			},
			{
				Binding: 2,
				Buffer:  bufUniforms,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create surface bind group: %w", err)
	}

	defer bindGroup.Release()

	encoder := c.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Surface"})
	defer encoder.Release()

	view, resolveTarget := target.RenderViews()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassSurface",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          view,
				ResolveTarget: resolveTarget,
				LoadOp:        wgpu.LoadOpLoad,
				StoreOp:       wgpu.StoreOpStore,
			},
		},
	})

	passGuard := pulse.NewReleaseGuard(pass)
	defer passGuard.Release()

	// restrict drawing to the target region
	x, y, w, h := target.Region().XYWH()

	pass.SetViewport(float32(x), float32(y), float32(w), float32(h), 0, 1)
	pass.SetScissorRect(x, y, w, h)
	pass.SetPipeline(pc.Pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.SetVertexBuffer(0, c.bufVertices, 0, wgpu.WholeSize)
	pass.Draw(c.vertexCount, 1, 0, 0)

	if err := pass.TryEnd(); err != nil {
		return fmt.Errorf("end surface pass: %w", err)
	}

	// must release pass before finishing the encoder
	passGuard.Release()

	cmdBuffer, err := encoder.TryFinish(nil)
	if err != nil {
		return fmt.Errorf("finish surface commands: %w", err)
	}

	defer cmdBuffer.Release()

	c.ctx.Submit(cmdBuffer)

	return nil
}

// Release frees all gpu resources held by the command.
func (c *SurfaceCommand) Release() {
	c.pipelineCache.Release()

	for _, buf := range c.bufUniforms {
		buf.Release()
	}

	if c.bufVertices != nil {
		c.bufVertices.Release()
		c.bufVertices = nil
	}
}

type surfacePipelineConfig struct {
	TargetFormat      wgpu.TextureFormat
	TargetSampleCount uint32
	Topology          wgpu.PrimitiveTopology
}

func (conf surfacePipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for surface",
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Surface.Shader",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: surfaceShaderCode},
	})

	defer shader.Release()

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Surface.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(surface.Vertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         uint64(unsafe.Offsetof(surface.Vertex{}.Position)),
							ShaderLocation: 0,
						},
						{
							// uv
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(surface.Vertex{}.UV)),
							ShaderLocation: 1,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  conf.Topology,
			FrontFace: wgpu.FrontFaceCCW,
			// the screen can be looked at from behind
			CullMode: wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  conf.TargetSampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	pipeline, err := dev.TryCreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build surface pipeline: %w", err)
	}

	return pipeline, nil
}
