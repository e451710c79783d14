// Package anchor places the virtual screen in tracking space. Each display
// mode keeps its own anchor pose and viewing distance.
package anchor

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/vrdesk/glm"
)

//go:generate go tool stringer -type Mode -linecomment

type Mode int

const (
	Flat   Mode = iota // flat
	Curved             // curved
)

// ParseMode parses the textual representation written by Mode.String.
func ParseMode(value string) (Mode, error) {
	switch value {
	case Flat.String():
		return Flat, nil
	case Curved.String():
		return Curved, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", value)
	}
}

// Range limits the viewing distance of a mode in meters.
type Range struct {
	Min float32
	Max float32
}

// Clamp limits value to the range. NaN maps to Min.
func (r Range) Clamp(value float32) float32 {
	if value != value {
		return r.Min
	}

	return min(r.Max, max(r.Min, value))
}

var (
	FlatRange = Range{Min: 0.5, Max: 5.0}

	// a negative distance moves the center of the cylinder behind the
	// head, wrapping the screen tighter around the viewer
	CurvedRange = Range{Min: -1.0, Max: 5.0}
)

// DefaultDistance is the viewing distance used without configuration.
const DefaultDistance = 0.7

// HeadSource provides the latest valid head pose.
type HeadSource interface {
	Head() (glm.Mat4f, bool)
}

type anchorState struct {
	pose     glm.Mat4f
	distance float32
	anchored bool
}

// Controller tracks the anchor pose and distance of both modes. It is
// owned by the render tick and not safe for concurrent use.
type Controller struct {
	head   HeadSource
	mode   Mode
	states [2]anchorState
}

// NewController creates a controller with both distances set to the given
// value, clamped to each mode's range.
func NewController(head HeadSource, mode Mode, distance float32) *Controller {
	c := &Controller{head: head, mode: mode}

	c.states[Flat].distance = FlatRange.Clamp(distance)
	c.states[Curved].distance = CurvedRange.Clamp(distance)

	return c
}

func RangeOf(mode Mode) Range {
	if mode == Curved {
		return CurvedRange
	}

	return FlatRange
}

// Recenter places the anchor of the given mode straight ahead of the
// current head pose, at the given distance clamped to the mode's range.
// Without a head pose nothing changes.
func (c *Controller) Recenter(mode Mode, distance float32) {
	head, ok := c.head.Head()
	if !ok {
		return
	}

	distance = RangeOf(mode).Clamp(distance)

	state := &c.states[mode]
	state.distance = distance
	state.pose = head.Mul(glm.TranslationMat4[float32](0, 0, -distance))
	state.anchored = true

	slog.Debug("Recentered anchor",
		slog.String("mode", mode.String()),
		slog.Float64("distance", float64(distance)),
	)
}

// RecenterActive recenters the active mode at its current distance.
func (c *Controller) RecenterActive() {
	c.Recenter(c.mode, c.states[c.mode].distance)
}

// AdjustDistance moves the anchor of the given mode by delta meters and
// recenters it. The resulting distance is clamped to the mode's range and
// kept even if there is no head pose to recenter on yet.
func (c *Controller) AdjustDistance(mode Mode, delta float32) {
	state := &c.states[mode]
	state.distance = RangeOf(mode).Clamp(state.distance + delta)

	c.Recenter(mode, state.distance)
}

// ToggleMode switches between flat and curved. Anchors are not touched.
func (c *Controller) ToggleMode() Mode {
	if c.mode == Flat {
		c.mode = Curved
	} else {
		c.mode = Flat
	}

	slog.Info("Display mode changed", slog.String("mode", c.mode.String()))

	return c.mode
}

// EnsureAnchored anchors every mode that has no pose yet, as soon as a
// head pose is available. Returns true if any anchor was placed.
func (c *Controller) EnsureAnchored() bool {
	if _, ok := c.head.Head(); !ok {
		return false
	}

	var placed bool

	for _, mode := range []Mode{Flat, Curved} {
		state := &c.states[mode]
		if state.anchored {
			continue
		}

		c.Recenter(mode, state.distance)
		placed = true
	}

	return placed
}

func (c *Controller) Anchor(mode Mode) (glm.Mat4f, bool) {
	state := c.states[mode]
	return state.pose, state.anchored
}

// Active returns the anchor of the active mode.
func (c *Controller) Active() (glm.Mat4f, bool) {
	return c.Anchor(c.mode)
}

func (c *Controller) Distance(mode Mode) float32 {
	return c.states[mode].distance
}

func (c *Controller) Mode() Mode {
	return c.mode
}
