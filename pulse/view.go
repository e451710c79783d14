package pulse

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// View owns the configuration of the window surface. Both eyes are drawn
// into the surface texture side by side.
type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration

	// only configured if we have a multisample texture configured
	msaaTexture *Texture

	sampleCount uint32
}

func NewView(dev *Context, msaa bool) *View {
	st := &View{Context: dev}

	if msaa {
		st.sampleCount = 4
	} else {
		st.sampleCount = 1
	}

	// Print the available render formats
	caps := dev.Surface.GetCapabilities(dev.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	st.surfaceConfig = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      wgpu.TextureFormatBGRA8Unorm,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],

		// try to reduce input latency
		DesiredMaximumFrameLatency: 1,
	}

	return st
}

func (vs *View) MSAA() bool {
	return vs.sampleCount > 1
}

func (vs *View) Format() wgpu.TextureFormat {
	return vs.surfaceConfig.Format
}

// SurfaceAsTexture wraps the current surface texture. With MSAA enabled,
// drawing goes to the multisample texture and resolves into the surface.
func (vs *View) SurfaceAsTexture(screen *wgpu.Texture, screenView *wgpu.TextureView) *Texture {
	if vs.MSAA() {
		screenTexture := WrapTexture(screen, screenView, nil)

		return WrapTexture(
			vs.msaaTexture.texture,
			vs.msaaTexture.textureView,
			screenTexture,
		)
	}

	return WrapTexture(screen, screenView, nil)
}

func (vs *View) ReleaseTexture() {
	if vs.msaaTexture != nil {
		vs.msaaTexture.Release()
		vs.msaaTexture = nil
	}
}

func (vs *View) Configure(width, height uint32) error {
	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height
	vs.Surface.Configure(vs.Device, vs.surfaceConfig)

	vs.ReleaseTexture()

	if vs.MSAA() {
		// create msaa render target texture
		texture, err := createMultisampleTexture(vs.Context, vs.surfaceConfig, vs.sampleCount)
		if err != nil {
			return fmt.Errorf("create multisample texture: %w", err)
		}

		vs.msaaTexture = texture
	}

	return nil
}

// Release frees the multisample texture. The Context is not released.
func (vs *View) Release() {
	vs.ReleaseTexture()
}

func createMultisampleTexture(ctx *Context, surfaceConfig *wgpu.SurfaceConfiguration, sampleCount uint32) (*Texture, error) {
	return NewTextureFromDesc(ctx, &wgpu.TextureDescriptor{
		Label: "MultisampleRenderTarget",
		Usage: wgpu.TextureUsageRenderAttachment,
		Size: wgpu.Extent3D{
			Width:              surfaceConfig.Width,
			Height:             surfaceConfig.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        surfaceConfig.Format,
		Dimension:     wgpu.TextureDimension2D,
		SampleCount:   sampleCount,
		MipLevelCount: 1,
	})
}
