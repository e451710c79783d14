package vrdesk

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/vrdesk/glimpse"
	"github.com/oliverbestmann/vrdesk/pulse"
	"github.com/oliverbestmann/vrdesk/tracking"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Compositor receives the rendered eye images of a frame.
type Compositor interface {
	// BeginFrame prepares the eye targets. It returns false if there is
	// nothing to render into this frame.
	BeginFrame() (bool, error)

	// EyeTarget returns the texture the given eye is rendered into. The
	// target is already cleared to black.
	EyeTarget(eye tracking.Eye) *pulse.Texture

	// Submit hands a finished eye image to the compositor.
	Submit(eye tracking.Eye, target *pulse.Texture) error

	EndFrame() error
}

// windowCompositor shows both eyes side by side in the preview window,
// the left eye on the left half.
type windowCompositor struct {
	view   *pulse.View
	window glimpse.Window
	clear  *pulse.ClearCommand

	width  uint32
	height uint32

	surface     *wgpu.Texture
	surfaceView *wgpu.TextureView
	eyes        [2]*pulse.Texture
	submitted   int
}

func newWindowCompositor(view *pulse.View, window glimpse.Window) *windowCompositor {
	return &windowCompositor{
		view:   view,
		window: window,
		clear:  pulse.NewClear(view.Context),
	}
}

// EyeAspect returns the aspect ratio of a single eye viewport.
func (c *windowCompositor) EyeAspect() float32 {
	width, height := c.window.GetSize()
	if width == 0 || height == 0 {
		return 1
	}

	return float32(width/2) / float32(height)
}

func (c *windowCompositor) BeginFrame() (bool, error) {
	if !c.window.Visible() {
		return false, nil
	}

	width, height := c.window.GetSize()
	if width < 2 || height == 0 {
		// minimized
		return false, nil
	}

	if c.width != width || c.height != height {
		slog.Debug("Resize surface",
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
		)

		if err := c.view.Configure(width, height); err != nil {
			return false, fmt.Errorf("resize surface: %w", err)
		}

		c.width = width
		c.height = height
	}

	surface, err := c.view.Surface.TryGetCurrentTexture()
	if err != nil {
		return false, fmt.Errorf("get current texture: %w", err)
	}

	surfaceView, err := surface.TryCreateView(nil)
	if err != nil {
		surface.Release()
		return false, fmt.Errorf("create surface view: %w", err)
	}

	c.surface = surface
	c.surfaceView = surfaceView
	c.submitted = 0

	target := c.view.SurfaceAsTexture(surface, surfaceView)

	if err := c.clear.Clear(target, pulse.ColorBlack); err != nil {
		c.releaseSurface()
		return false, fmt.Errorf("clear surface: %w", err)
	}

	left, right := target.Region().SplitX()
	c.eyes[tracking.EyeLeft] = target.SubTexture(left.Offset(), left.Size())
	c.eyes[tracking.EyeRight] = target.SubTexture(right.Offset(), right.Size())

	return true, nil
}

func (c *windowCompositor) EyeTarget(eye tracking.Eye) *pulse.Texture {
	return c.eyes[eye]
}

func (c *windowCompositor) Submit(eye tracking.Eye, target *pulse.Texture) error {
	if target != c.eyes[eye] {
		return fmt.Errorf("submitted foreign target for %s eye", eye)
	}

	// eyes are drawn straight into the surface, nothing left to copy
	c.submitted++

	return nil
}

func (c *windowCompositor) EndFrame() error {
	if c.surface == nil {
		return nil
	}

	if c.submitted != len(c.eyes) {
		slog.Debug("Frame ended with missing eyes", slog.Int("submitted", c.submitted))
	}

	c.view.Surface.Present()

	c.releaseSurface()

	return nil
}

func (c *windowCompositor) releaseSurface() {
	c.eyes = [2]*pulse.Texture{}

	if c.surfaceView != nil {
		c.surfaceView.Release()
		c.surfaceView = nil
	}

	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
}
