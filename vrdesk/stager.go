package vrdesk

import (
	"fmt"

	"github.com/oliverbestmann/vrdesk/frameslot"
	"github.com/oliverbestmann/vrdesk/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// desktopTexture keeps the gpu copy of the captured desktop.
type desktopTexture struct {
	ctx     *pulse.Context
	texture *pulse.Texture
}

var _ frameslot.Stager = (*desktopTexture)(nil)

func (d *desktopTexture) Stage(frame frameslot.Frame, realloc bool) error {
	if realloc || d.texture == nil {
		texture, err := pulse.NewTexture(d.ctx, pulse.NewTextureOptions{
			Label: "Desktop",
			// captured pixels are stored as BGRA
			Format: wgpu.TextureFormatBGRA8Unorm,
			Width:  uint32(frame.Width),
			Height: uint32(frame.Height),
		})
		if err != nil {
			return fmt.Errorf("create desktop texture: %w", err)
		}

		d.Release()
		d.texture = texture
	}

	return d.texture.WritePixelsToRect(d.ctx, pulse.WritePixelsOptions{
		Pixels: frame.Pixels,
		Region: pulse.RectangleFromXYWH(0, 0, uint32(frame.Width), uint32(frame.Height)),
		Stride: uint32(frame.Stride),
	})
}

// Texture returns the desktop texture, nil until the first frame arrived.
func (d *desktopTexture) Texture() *pulse.Texture {
	return d.texture
}

func (d *desktopTexture) Release() {
	if d.texture != nil {
		d.texture.Release()
		d.texture = nil
	}
}
