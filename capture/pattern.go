package capture

import (
	"fmt"
	"time"

	"github.com/furui/fastnoiselite-go"
	"golang.org/x/mobile/exp/f32"
)

// PatternOutput is the single output name of a PatternSource.
const PatternOutput = "pattern"

const patternScale = 0.5

// radians per frame the cursor travels along its path
const cursorSpeed = 0.02

// PatternSource renders an animated noise pattern instead of capturing a
// real screen. Useful to check the viewer without a display server.
type PatternSource struct {
	width  int
	height int

	noise *fastnoiselite.FastNoiseLite
	pacer *time.Ticker
	start time.Time
	frame int

	pixels []byte
}

func NewPatternSource(width, height, rate int) (*PatternSource, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid pattern size %dx%d", width, height)
	}

	if rate <= 0 {
		rate = DefaultCaptureRate
	}

	noise := fastnoiselite.NewNoise()
	noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)
	noise.FractalType = fastnoiselite.FractalTypeFBm

	return &PatternSource{
		width:  width,
		height: height,
		noise:  noise,
		pacer:  time.NewTicker(time.Second / time.Duration(rate)),
		start:  time.Now(),
		pixels: make([]byte, width*height*4),
	}, nil
}

func (p *PatternSource) Outputs() []string {
	return []string{PatternOutput}
}

func (p *PatternSource) Capture(_ string, includeCursor bool) (Image, error) {
	<-p.pacer.C

	p.frame++

	shift := float32(time.Since(p.start).Seconds() * 60)
	stride := p.width * 4

	for y := range p.height {
		row := p.pixels[y*stride : (y+1)*stride]

		for x := range p.width {
			value := p.noise.GetNoise2D(
				fastnoiselite.FNLfloat((float32(x)+shift)*patternScale),
				fastnoiselite.FNLfloat(float32(y)*patternScale),
			)

			// noise is in [-1, 1]
			v := byte((float32(value) + 1) * 127.5)

			row[x*4+0] = v
			row[x*4+1] = byte(x * 255 / p.width)
			row[x*4+2] = byte(y * 255 / p.height)
			row[x*4+3] = 0xff
		}
	}

	if includeCursor {
		p.drawCursor(stride)
	}

	return Image{
		Pixels: p.pixels,
		Width:  p.width,
		Height: p.height,
		Stride: stride,
	}, nil
}

// drawCursor moves a white square on an ellipse around the image center so
// motion is visible.
func (p *PatternSource) drawCursor(stride int) {
	const size = 16

	angle := float32(p.frame) * cursorSpeed

	cx := p.width/2 + int(0.35*float32(p.width)*f32.Cos(angle)) - size/2
	cy := p.height/2 + int(0.35*float32(p.height)*f32.Sin(angle)) - size/2

	fillSquare(p.pixels, stride, p.width, p.height, cx, cy, size)
}

// fillSquare paints a white square, clipped to the image bounds.
func fillSquare(pixels []byte, stride, width, height, x0, y0, size int) {
	x1 := min(x0+size, width)
	y1 := min(y0+size, height)

	for y := max(y0, 0); y < y1; y++ {
		row := pixels[y*stride:]

		for x := max(x0, 0); x < x1; x++ {
			copy(row[x*4:x*4+4], []byte{0xff, 0xff, 0xff, 0xff})
		}
	}
}

func (p *PatternSource) Close() error {
	p.pacer.Stop()
	return nil
}
