package tracking

import (
	"github.com/oliverbestmann/vrdesk/glm"
)

// Simulated head defaults, roughly a seated user with a common headset.
const (
	DefaultEyeHeight = 1.2
	DefaultIPD       = 0.064
	DefaultFovY      = 90
	maxPitch         = 85
)

// SimulatedHead computes head and eye poses for a virtual head that can
// look around by yaw and pitch, standing at a fixed position. It is pure
// math, input handling lives with whoever drives it.
type SimulatedHead struct {
	Position glm.Vec3f

	// interpupillary distance in meters
	IPD float32

	// vertical field of view per eye in degrees
	FovY float32

	// aspect ratio (width / height) of one eye's viewport
	Aspect float32

	yaw   float32
	pitch float32
}

func NewSimulatedHead() *SimulatedHead {
	return &SimulatedHead{
		Position: glm.Vec3f{0, DefaultEyeHeight, 0},
		IPD:      DefaultIPD,
		FovY:     DefaultFovY,
		Aspect:   1,
	}
}

// Look rotates the head by the given deltas in degrees. Yaw wraps into
// [-180, 180), pitch is limited so the head never flips over.
func (s *SimulatedHead) Look(deltaYaw, deltaPitch float32) {
	s.yaw = glm.RadToDeg[float32](glm.DegToRad(s.yaw + deltaYaw).Wrap())
	s.pitch = min(maxPitch, max(-maxPitch, s.pitch+deltaPitch))
}

func (s *SimulatedHead) Orientation() (yaw, pitch float32) {
	return s.yaw, s.pitch
}

func (s *SimulatedHead) HeadPose() (glm.Mat4f, bool) {
	x, y, z := s.Position.XYZ()

	pose := glm.TranslationMat4(x, y, z).
		Mul(glm.RotationYMat4[float32](glm.DegToRad(s.yaw))).
		Mul(glm.RotationXMat4[float32](glm.DegToRad(s.pitch)))

	return pose, true
}

func (s *SimulatedHead) EyeToHead(eye Eye) glm.Mat4f {
	offset := s.IPD / 2
	if eye == EyeLeft {
		offset = -offset
	}

	return glm.TranslationMat4[float32](offset, 0, 0)
}

func (s *SimulatedHead) Projection(eye Eye, near, far float32) glm.Mat4f {
	return glm.Perspective(glm.DegToRad(s.FovY), s.Aspect, near, far)
}
