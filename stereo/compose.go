// Package stereo derives per eye view and projection matrices for the
// virtual screen.
package stereo

import (
	"github.com/oliverbestmann/vrdesk/glm"
	"github.com/oliverbestmann/vrdesk/tracking"
)

// Clip planes in meters.
const (
	Near = 0.1
	Far  = 100.0
)

// EyeFromSurface maps points in the surface's local space into the space
// of one eye. All inputs must be rigid transforms.
func EyeFromSurface(absoluteFromHead, headFromEye, absoluteFromSurface glm.Mat4f) glm.Mat4f {
	absoluteFromEye := absoluteFromHead.Mul(headFromEye)
	eyeFromAbsolute := absoluteFromEye.InvertRigid()
	return eyeFromAbsolute.Mul(absoluteFromSurface)
}

// EyeView holds the matrices needed to draw the surface for one eye.
type EyeView struct {
	Eye        tracking.Eye
	View       glm.Mat4f
	Projection glm.Mat4f

	// ViewProjection is Projection * View
	ViewProjection glm.Mat4f
}

// Optics is the part of a tracking runtime that describes the eyes.
type Optics interface {
	EyeToHead(eye tracking.Eye) glm.Mat4f
	Projection(eye tracking.Eye, near, far float32) glm.Mat4f
}

type Composer struct {
	Near float32
	Far  float32
}

func NewComposer() Composer {
	return Composer{Near: Near, Far: Far}
}

// Compose computes the view of both eyes onto a surface anchored at
// absoluteFromSurface.
func (c Composer) Compose(optics Optics, absoluteFromHead, absoluteFromSurface glm.Mat4f) [2]EyeView {
	var views [2]EyeView

	for idx, eye := range tracking.Eyes {
		view := EyeFromSurface(absoluteFromHead, optics.EyeToHead(eye), absoluteFromSurface)
		projection := optics.Projection(eye, c.Near, c.Far)

		views[idx] = EyeView{
			Eye:            eye,
			View:           view,
			Projection:     projection,
			ViewProjection: projection.Mul(view),
		}
	}

	return views
}
