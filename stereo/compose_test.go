package stereo

import (
	"testing"

	"github.com/oliverbestmann/vrdesk/glm"
	"github.com/oliverbestmann/vrdesk/tracking"
	"github.com/stretchr/testify/assert"
)

func TestEyeFromSurfaceIdentityHead(t *testing.T) {
	identity := glm.IdentityMat4[float32]()
	anchor := glm.TranslationMat4[float32](0, 0, -0.7)

	eyeFromSurface := EyeFromSurface(identity, identity, anchor)
	assert.True(t, eyeFromSurface.ApproxEqual(anchor, 1e-6))
}

func TestEyeFromSurfaceEyeOffset(t *testing.T) {
	identity := glm.IdentityMat4[float32]()
	anchor := glm.TranslationMat4[float32](0, 0, -1)
	leftEye := glm.TranslationMat4[float32](-0.032, 0, 0)

	// the surface appears shifted to the right for the left eye
	eyeFromSurface := EyeFromSurface(identity, leftEye, anchor)
	translation := eyeFromSurface.Translation()
	assert.InDeltaSlice(t, []float32{0.032, 0, -1}, translation[:], 1e-6)
}

func TestEyeFromSurfaceRecenteredIsIndependentOfHead(t *testing.T) {
	identity := glm.IdentityMat4[float32]()

	head := glm.TranslationMat4[float32](0.5, 1.7, -3).
		Mul(glm.RotationYMat4[float32](0.8)).
		Mul(glm.RotationXMat4[float32](-0.3))

	// recentering puts the anchor straight ahead of the head, so the eye
	// always sees it straight ahead, whatever the head pose is
	anchor := head.Mul(glm.TranslationMat4[float32](0, 0, -2))

	eyeFromSurface := EyeFromSurface(head, identity, anchor)
	assert.True(t, eyeFromSurface.ApproxEqual(glm.TranslationMat4[float32](0, 0, -2), 1e-5))
}

type fakeOptics struct{}

func (fakeOptics) EyeToHead(eye tracking.Eye) glm.Mat4f {
	if eye == tracking.EyeLeft {
		return glm.TranslationMat4[float32](-0.03, 0, 0)
	}

	return glm.TranslationMat4[float32](0.03, 0, 0)
}

func (fakeOptics) Projection(eye tracking.Eye, near, far float32) glm.Mat4f {
	return glm.Perspective(glm.DegToRad[float32](90), 1, near, far)
}

func TestCompose(t *testing.T) {
	identity := glm.IdentityMat4[float32]()
	anchor := glm.TranslationMat4[float32](0, 0, -1)

	views := NewComposer().Compose(fakeOptics{}, identity, anchor)

	assert.Equal(t, tracking.EyeLeft, views[0].Eye)
	assert.Equal(t, tracking.EyeRight, views[1].Eye)

	for _, view := range views {
		assert.Equal(t, view.Projection.Mul(view.View), view.ViewProjection)
		assert.Equal(t, glm.Perspective[float32](glm.DegToRad(90), 1, Near, Far), view.Projection)
	}

	// surface center ends up in front of both eyes, left eye sees it right of center
	center := views[0].ViewProjection.Transform(glm.Vec4f{0, 0, 0, 1})
	assert.Greater(t, center[0]/center[3], float32(0))

	center = views[1].ViewProjection.Transform(glm.Vec4f{0, 0, 0, 1})
	assert.Less(t, center[0]/center[3], float32(0))

	depth := center[2] / center[3]
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))
}
