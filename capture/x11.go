package capture

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
)

// DefaultCaptureRate is the rate an X11 source delivers images at, if the
// server keeps up.
const DefaultCaptureRate = 120

type x11Output struct {
	name string
	x, y int16
	w, h uint16
}

// X11Source captures RandR outputs of an X server via GetImage.
type X11Source struct {
	conn   *xgb.Conn
	root   xproto.Window
	cursor bool

	outputs []x11Output
	pacer   *time.Ticker

	// reused between captures
	pixels []byte
}

// NewX11Source connects to the given display, an empty display uses $DISPLAY.
func NewX11Source(display string, rate int) (*X11Source, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to x server: %w", err)
	}

	src := &X11Source{
		conn: conn,
		root: xproto.Setup(conn).DefaultScreen(conn).Root,
	}

	if err := randr.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize randr: %w", err)
	}

	if err := src.queryOutputs(); err != nil {
		conn.Close()
		return nil, err
	}

	if len(src.outputs) == 0 {
		conn.Close()
		return nil, ErrNoOutputs
	}

	// cursor compositing is optional, images are fine without it
	if err := xfixes.Init(conn); err == nil {
		if _, err := xfixes.QueryVersion(conn, 4, 0).Reply(); err == nil {
			src.cursor = true
		}
	}

	if !src.cursor {
		slog.Warn("XFixes not available, captured images will not show the cursor")
	}

	if rate <= 0 {
		rate = DefaultCaptureRate
	}

	src.pacer = time.NewTicker(time.Second / time.Duration(rate))

	return src, nil
}

func (s *X11Source) queryOutputs() error {
	resources, err := randr.GetScreenResources(s.conn, s.root).Reply()
	if err != nil {
		return fmt.Errorf("get screen resources: %w", err)
	}

	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(s.conn, output, resources.ConfigTimestamp).Reply()
		if err != nil {
			return fmt.Errorf("get output info: %w", err)
		}

		// disconnected or disabled outputs have no crtc
		if info.Crtc == 0 {
			continue
		}

		crtc, err := randr.GetCrtcInfo(s.conn, info.Crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			return fmt.Errorf("get crtc info for %q: %w", string(info.Name), err)
		}

		s.outputs = append(s.outputs, x11Output{
			name: string(info.Name),
			x:    crtc.X,
			y:    crtc.Y,
			w:    crtc.Width,
			h:    crtc.Height,
		})

		slog.Info("Found output",
			slog.String("name", string(info.Name)),
			slog.Int("x", int(crtc.X)),
			slog.Int("y", int(crtc.Y)),
			slog.Int("width", int(crtc.Width)),
			slog.Int("height", int(crtc.Height)),
		)
	}

	return nil
}

func (s *X11Source) Outputs() []string {
	names := make([]string, 0, len(s.outputs))
	for _, output := range s.outputs {
		names = append(names, output.name)
	}

	return names
}

func (s *X11Source) Capture(name string, includeCursor bool) (Image, error) {
	idx, _ := selectOutput(s.Outputs(), name)
	output := s.outputs[idx]

	// wait for the next capture slot
	<-s.pacer.C

	reply, err := xproto.GetImage(
		s.conn,
		xproto.ImageFormatZPixmap,
		xproto.Drawable(s.root),
		output.x, output.y,
		output.w, output.h,
		0xffffffff,
	).Reply()
	if err != nil {
		return Image{}, fmt.Errorf("get image of %q: %w", output.name, err)
	}

	width := int(output.w)
	height := int(output.h)
	stride := width * 4

	if len(reply.Data) < stride*height {
		return Image{}, fmt.Errorf("short image of %q: got %d bytes, want %d",
			output.name, len(reply.Data), stride*height)
	}

	s.pixels = append(s.pixels[:0], reply.Data[:stride*height]...)

	// the x server leaves the padding byte undefined
	for idx := 3; idx < len(s.pixels); idx += 4 {
		s.pixels[idx] = 0xff
	}

	if includeCursor && s.cursor {
		if err := s.compositeCursor(output, s.pixels, stride); err != nil {
			slog.Debug("Composite cursor", slog.String("err", err.Error()))
		}
	}

	return Image{
		Pixels: s.pixels,
		Width:  width,
		Height: height,
		Stride: stride,
	}, nil
}

func (s *X11Source) compositeCursor(output x11Output, pixels []byte, stride int) error {
	cursor, err := xfixes.GetCursorImage(s.conn).Reply()
	if err != nil {
		return fmt.Errorf("get cursor image: %w", err)
	}

	originX := int(cursor.X) - int(cursor.Xhot) - int(output.x)
	originY := int(cursor.Y) - int(cursor.Yhot) - int(output.y)

	blendCursor(pixels, int(output.w), int(output.h), stride,
		cursor.CursorImage, int(cursor.Width), int(cursor.Height),
		originX, originY)

	return nil
}

// blendCursor draws a premultiplied ARGB cursor image over BGRA pixels.
func blendCursor(pixels []byte, width, height, stride int, cursor []uint32, cw, ch, originX, originY int) {
	for cy := range ch {
		y := originY + cy
		if y < 0 || y >= height {
			continue
		}

		for cx := range cw {
			x := originX + cx
			if x < 0 || x >= width {
				continue
			}

			argb := cursor[cy*cw+cx]

			a := argb >> 24
			if a == 0 {
				continue
			}

			r := (argb >> 16) & 0xff
			g := (argb >> 8) & 0xff
			b := argb & 0xff

			offset := y*stride + x*4
			px := pixels[offset : offset+4 : offset+4]

			px[0] = byte(b + uint32(px[0])*(255-a)/255)
			px[1] = byte(g + uint32(px[1])*(255-a)/255)
			px[2] = byte(r + uint32(px[2])*(255-a)/255)
			px[3] = 0xff
		}
	}
}

func (s *X11Source) Close() error {
	s.pacer.Stop()
	s.conn.Close()
	return nil
}
