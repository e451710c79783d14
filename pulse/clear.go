package pulse

import (
	"fmt"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// ClearCommand fills a whole texture with a single color.
type ClearCommand struct {
	ctx *Context
}

func NewClear(ctx *Context) *ClearCommand {
	return &ClearCommand{ctx: ctx}
}

// Clear fills the root of target. A render pass can only clear complete
// attachments, so clearing a sub texture clears its root too.
func (c *ClearCommand) Clear(target *Texture, color Color) error {
	enc := c.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "ClearTexture",
	})

	defer enc.Release()

	view, resolveView := target.Root().RenderViews()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ClearTexture",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          view,
				ResolveTarget: resolveView,
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       wgpu.StoreOpStore,
				ClearValue:    color.ToWGPU(),
			},
		},
	})

	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	if err := pass.TryEnd(); err != nil {
		return fmt.Errorf("end clear pass: %w", err)
	}

	// the pass must be released before finishing the encoder
	passGuard.Release()

	buf, err := enc.TryFinish(&wgpu.CommandBufferDescriptor{Label: "ClearTexture"})
	if err != nil {
		return fmt.Errorf("finish clear commands: %w", err)
	}

	defer buf.Release()

	c.ctx.Submit(buf)

	return nil
}

type Releaser interface {
	Release()
}

// ReleaseGuard releases its delegate at most once.
type ReleaseGuard struct {
	delegate Releaser
}

func NewReleaseGuard(delegate Releaser) ReleaseGuard {
	return ReleaseGuard{delegate: delegate}
}

func (r *ReleaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}
