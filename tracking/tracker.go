package tracking

import (
	"log/slog"

	"github.com/oliverbestmann/vrdesk/glm"
)

// Tracker holds the latest valid head pose. It is owned by the render tick
// and not safe for concurrent use.
type Tracker struct {
	head      glm.Mat4f
	available bool
}

// Update records a pose observation. Invalid observations are ignored, the
// previous pose stays in place and availability never goes back to false.
func (t *Tracker) Update(pose glm.Mat4f, valid bool) {
	if !valid {
		return
	}

	if !t.available {
		slog.Info("Head pose available",
			slog.Any("position", pose.Translation()),
		)
	}

	t.head = pose
	t.available = true
}

// Poll reads the head pose from the runtime and updates the tracker.
func (t *Tracker) Poll(runtime Runtime) {
	t.Update(runtime.HeadPose())
}

// Head returns the latest valid head pose, if any was ever observed.
func (t *Tracker) Head() (glm.Mat4f, bool) {
	return t.head, t.available
}
