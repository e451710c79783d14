// Package tracking keeps the most recent head pose reported by a tracking
// runtime.
package tracking

import "github.com/oliverbestmann/vrdesk/glm"

//go:generate go tool stringer -type Eye -linecomment

type Eye int

const (
	EyeLeft  Eye = iota // left
	EyeRight            // right
)

// Eyes lists both eyes in submission order.
var Eyes = [2]Eye{EyeLeft, EyeRight}

// Runtime is the part of a VR runtime the viewer needs. All poses are rigid
// transforms in the runtime's absolute tracking space.
type Runtime interface {
	// HeadPose returns the current absolute-from-head transform. The
	// second result is false if the runtime has no valid pose this tick.
	HeadPose() (glm.Mat4f, bool)

	// EyeToHead returns the head-from-eye transform of the given eye.
	EyeToHead(eye Eye) glm.Mat4f

	// Projection returns the projection matrix of the given eye for the
	// near and far clip planes, mapping depth to [0, 1].
	Projection(eye Eye, near, far float32) glm.Mat4f
}
