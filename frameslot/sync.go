package frameslot

import (
	"fmt"
	"log/slog"
)

// Stager moves a frame to wherever the renderer wants it, usually a texture.
// realloc is set for the first frame and whenever the frame size changed,
// otherwise the previous allocation can be updated in place.
type Stager interface {
	Stage(frame Frame, realloc bool) error
}

// TextureSync stages every new slot version at most once, in increasing
// version order. It must only be used from the render loop.
type TextureSync struct {
	slot   *Slot
	stager Stager

	consumed uint64
	width    int
	height   int
	stride   int
}

func NewTextureSync(slot *Slot, stager Stager) *TextureSync {
	return &TextureSync{slot: slot, stager: stager}
}

// Tick checks the slot once and stages the frame if it is newer than the
// last staged one. It reports whether a frame was staged.
func (t *TextureSync) Tick() (bool, error) {
	version := t.slot.Version()
	if version == 0 || version <= t.consumed {
		return false, nil
	}

	var staged bool
	var err error

	t.slot.Read(func(frame Frame) {
		// the writer may have advanced since we loaded the version
		if frame.Version <= t.consumed {
			return
		}

		realloc := t.consumed == 0 ||
			frame.Width != t.width ||
			frame.Height != t.height ||
			frame.Stride != t.stride

		if realloc {
			slog.Info("Allocate desktop texture",
				slog.Int("width", frame.Width),
				slog.Int("height", frame.Height),
				slog.Int("stride", frame.Stride),
			)
		}

		if err = t.stager.Stage(frame, realloc); err != nil {
			err = fmt.Errorf("stage frame version=%d: %w", frame.Version, err)
			return
		}

		t.consumed = frame.Version
		t.width = frame.Width
		t.height = frame.Height
		t.stride = frame.Stride
		staged = true
	})

	return staged, err
}

// Consumed returns the last staged version.
func (t *TextureSync) Consumed() uint64 {
	return t.consumed
}

// Size returns the dimensions of the last staged frame.
func (t *TextureSync) Size() (width, height int) {
	return t.width, t.height
}
