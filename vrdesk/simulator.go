package vrdesk

import (
	"log/slog"

	"github.com/oliverbestmann/vrdesk/glimpse"
	"github.com/oliverbestmann/vrdesk/glm"
	"github.com/oliverbestmann/vrdesk/tracking"
)

// degrees of head rotation per pixel of mouse movement
const mouseSensitivity = 0.15

// degrees per tick while an arrow key is held
const keyTurnRate = 1.5

// headSimulator drives a simulated head from the preview window input.
// Dragging with the left mouse button or the arrow keys look around.
type headSimulator struct {
	head *tracking.SimulatedHead
}

var _ tracking.Runtime = (*headSimulator)(nil)

func newHeadSimulator() *headSimulator {
	return &headSimulator{head: tracking.NewSimulatedHead()}
}

func (s *headSimulator) update(input glimpse.InputState, eyeAspect float32) {
	s.head.Aspect = eyeAspect

	var yaw, pitch float32

	if input.Mouse.Pressed[glimpse.MouseButtonLeft] {
		yaw -= input.Mouse.DeltaX * mouseSensitivity
		pitch -= input.Mouse.DeltaY * mouseSensitivity
	}

	keys := input.Keys.Pressed

	if keys[glimpse.KeyLeft] {
		yaw += keyTurnRate
	}

	if keys[glimpse.KeyRight] {
		yaw -= keyTurnRate
	}

	if keys[glimpse.KeyUp] {
		pitch += keyTurnRate
	}

	if keys[glimpse.KeyDown] {
		pitch -= keyTurnRate
	}

	if yaw != 0 || pitch != 0 {
		s.head.Look(yaw, pitch)

		yaw, pitch = s.head.Orientation()
		slog.Debug("Simulated head moved",
			slog.Float64("yaw", float64(yaw)),
			slog.Float64("pitch", float64(pitch)),
		)
	}
}

func (s *headSimulator) HeadPose() (glm.Mat4f, bool) {
	return s.head.HeadPose()
}

func (s *headSimulator) EyeToHead(eye tracking.Eye) glm.Mat4f {
	return s.head.EyeToHead(eye)
}

func (s *headSimulator) Projection(eye tracking.Eye, near, far float32) glm.Mat4f {
	return s.head.Projection(eye, near, far)
}
