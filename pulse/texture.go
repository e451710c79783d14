package pulse

import (
	"fmt"

	"github.com/oliverbestmann/vrdesk/glm"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
// For multisample textures a Texture also holds the resolve target
// texture. A Texture can represent a sub region of another texture.
type Texture struct {
	// point to root Texture this texture is a part of.
	root *Texture

	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	resolveTarget *Texture

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	// equal to texture.GetSampleCount()
	sampleCount uint32

	// sub texture
	region Rectangle2u
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32

	MSAA  bool
	Label string
}

func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	var sampleCount uint32 = 1

	if opts.MSAA {
		sampleCount = 4
	}

	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   sampleCount,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		// allow to do almost everything with this texture
		Usage: wgpu.TextureUsageTextureBinding |
			wgpu.TextureUsageRenderAttachment |
			wgpu.TextureUsageCopyDst |
			wgpu.TextureUsageCopySrc,
	}

	return NewTextureFromDesc(ctx, desc)
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) (*Texture, error) {
	texture, err := ctx.Device.TryCreateTexture(desc)
	if err != nil {
		return nil, err
	}

	// now create a default texture view
	textureView, err := texture.TryCreateView(nil)
	if err != nil {
		texture.Release()

		return nil, err
	}

	var resolveTarget *Texture

	if desc.SampleCount > 1 {
		// create resolve target texture
		descResolve := *desc
		descResolve.SampleCount = 1

		resolveTarget, err = NewTextureFromDesc(ctx, &descResolve)
		if err != nil {
			textureView.Release()
			texture.Release()

			return nil, fmt.Errorf("create resolveTarget texture: %w", err)
		}
	}

	region := RectangleFromSize(
		glm.Vec2u{},
		glm.Vec2u{
			desc.Size.Width,
			desc.Size.Height,
		},
	)

	t := &Texture{
		texture:       texture,
		textureView:   textureView,
		resolveTarget: resolveTarget,

		format:      desc.Format,
		region:      region,
		sampleCount: desc.SampleCount,
	}

	// texture itself is the root
	t.root = t

	return t, nil
}

// WrapTexture creates a texture from an existing wgpu.Texture and wgpu.TextureView. If it is a
// multisample texture, you also need to specify a resolve target.
func WrapTexture(texture *wgpu.Texture, textureView *wgpu.TextureView, resolveTarget *Texture) *Texture {
	if texture.GetSampleCount() > 1 && resolveTarget == nil {
		panic("no resolveTarget specified for multisample texture")
	}

	if texture.GetSampleCount() == 1 && resolveTarget != nil {
		panic("resolveTarget specified for multisample texture")
	}

	region := RectangleFromSize(
		glm.Vec2u{},
		glm.Vec2u{
			texture.GetWidth(),
			texture.GetHeight(),
		},
	)

	t := &Texture{
		texture:       texture,
		textureView:   textureView,
		resolveTarget: resolveTarget,
		format:        texture.GetFormat(),
		sampleCount:   texture.GetSampleCount(),
		region:        region,
	}

	t.root = t

	return t
}

func (t *Texture) SubTexture(pos glm.Vec2u, size glm.Vec2u) *Texture {
	sub := *t

	pos = t.region.Min.Add(pos)
	sub.region = RectangleFromSize(pos, size)

	return &sub
}

func (t *Texture) Root() *Texture {
	return t.root
}

func (t *Texture) Width() uint32 {
	return t.region.Width()
}

func (t *Texture) Height() uint32 {
	return t.region.Height()
}

func (t *Texture) Offset() glm.Vec2u {
	return t.region.Offset()
}

// Region returns the area of the root texture covered by this texture.
func (t *Texture) Region() Rectangle2u {
	return t.region
}

func (t *Texture) Size() glm.Vec2u {
	return t.region.Size()
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) SampleCount() uint32 {
	return t.sampleCount
}

func (t *Texture) ToWGPUTextureView() *wgpu.TextureView {
	return t.textureView
}

// Release frees the texture and its views. Calling it on a sub texture is
// a no-op, only the root owns the gpu resources.
func (t *Texture) Release() {
	if t.root == t {
		t.textureView.Release()
		t.texture.Release()
	}
}

// RenderViews returns the views to use as color attachment of a render pass.
func (t *Texture) RenderViews() (view, resolveView *wgpu.TextureView) {
	view = t.textureView

	if t.sampleCount > 1 {
		resolveView = t.resolveTarget.textureView
	}

	return
}

type WritePixelsOptions struct {
	Pixels   []byte
	Region   Rectangle2u
	Stride   uint32
	MipLevel uint32
}

func (t *Texture) WritePixelsToRect(ctx *Context, opts WritePixelsOptions) error {
	// fail if not in rect
	if !t.region.Contains(opts.Region) {
		return fmt.Errorf("target rect %s not in texture region %s", opts.Region, t.region)
	}

	if opts.Region.Width() == 0 || opts.Region.Height() == 0 {
		return fmt.Errorf("empty target rect %s", opts.Region)
	}

	if opts.Stride == 0 {
		opts.Stride = opts.Region.Width() * 4
	}

	if need := uint64(opts.Stride)*uint64(opts.Region.Height()-1) + uint64(opts.Region.Width())*4; uint64(len(opts.Pixels)) < need {
		return fmt.Errorf("pixel buffer too small: got %d bytes, need %d", len(opts.Pixels), need)
	}

	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  opts.Stride,
		RowsPerImage: opts.Region.Height(),
	}

	size := &wgpu.Extent3D{
		Width:              opts.Region.Width(),
		Height:             opts.Region.Height(),
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: opts.MipLevel,
		Origin: wgpu.Origin3D{
			X: opts.Region.Min[0],
			Y: opts.Region.Min[1],
		},
		Aspect: wgpu.TextureAspectAll,
	}

	// send data to the gpu
	err := ctx.TryWriteTexture(dest, opts.Pixels, layout, size)
	if err != nil {
		return fmt.Errorf("copy image data to texture: %w", err)
	}

	return nil
}
