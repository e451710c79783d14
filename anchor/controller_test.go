package anchor

import (
	"math"
	"testing"

	"github.com/oliverbestmann/vrdesk/glm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedHead struct {
	pose      glm.Mat4f
	available bool
}

func (f *fixedHead) Head() (glm.Mat4f, bool) {
	return f.pose, f.available
}

func identityHead() *fixedHead {
	return &fixedHead{pose: glm.IdentityMat4[float32](), available: true}
}

func TestRecenterIdentityHead(t *testing.T) {
	c := NewController(identityHead(), Flat, DefaultDistance)

	c.Recenter(Flat, 0.7)

	anchor, ok := c.Anchor(Flat)
	require.True(t, ok)
	assert.True(t, anchor.ApproxEqual(glm.TranslationMat4[float32](0, 0, -0.7), 1e-6))
}

func TestRecenterRotatedHead(t *testing.T) {
	head := &fixedHead{
		pose: glm.TranslationMat4[float32](1, 1.5, 2).
			Mul(glm.RotationYMat4[float32](glm.DegToRad(90))),
		available: true,
	}

	c := NewController(head, Flat, 1)
	c.RecenterActive()

	anchor, ok := c.Active()
	require.True(t, ok)

	// looking down -X after turning left by 90 degrees
	translation := anchor.Translation()
	assert.InDeltaSlice(t, []float32{0, 1.5, 2}, translation[:], 1e-5)
}

func TestRecenterWithoutHeadPose(t *testing.T) {
	c := NewController(&fixedHead{}, Flat, DefaultDistance)

	c.Recenter(Flat, 2)

	_, ok := c.Anchor(Flat)
	assert.False(t, ok)
	assert.Equal(t, float32(DefaultDistance), c.Distance(Flat))

	assert.False(t, c.EnsureAnchored())
}

func TestAdjustDistanceClampsFlat(t *testing.T) {
	c := NewController(identityHead(), Flat, 0.7)

	c.AdjustDistance(Flat, -0.3)
	assert.Equal(t, float32(0.5), c.Distance(Flat))

	anchor, ok := c.Anchor(Flat)
	require.True(t, ok)
	assert.InDelta(t, -0.5, anchor.Translation()[2], 1e-6)

	for range 100 {
		c.AdjustDistance(Flat, 0.1)
	}

	assert.Equal(t, float32(5), c.Distance(Flat))
}

func TestAdjustDistanceClampsCurved(t *testing.T) {
	c := NewController(identityHead(), Curved, 0.7)

	for range 100 {
		c.AdjustDistance(Curved, -0.1)
	}

	assert.Equal(t, float32(-1), c.Distance(Curved))

	// zooming out stops at the upper bound
	for range 100 {
		c.AdjustDistance(Curved, 0.1)
	}

	assert.Equal(t, float32(5), c.Distance(Curved))
}

func TestAdjustDistanceWithoutHeadPose(t *testing.T) {
	c := NewController(&fixedHead{}, Flat, 0.7)

	c.AdjustDistance(Flat, 0.1)
	assert.InDelta(t, 0.8, c.Distance(Flat), 1e-6)

	_, ok := c.Anchor(Flat)
	assert.False(t, ok)
}

func TestInitialDistanceIsClamped(t *testing.T) {
	c := NewController(identityHead(), Flat, -0.5)

	assert.Equal(t, float32(0.5), c.Distance(Flat))
	assert.Equal(t, float32(-0.5), c.Distance(Curved))
}

func TestToggleModeKeepsAnchors(t *testing.T) {
	head := identityHead()
	c := NewController(head, Flat, 1)
	c.EnsureAnchored()

	flat, _ := c.Anchor(Flat)
	curved, _ := c.Anchor(Curved)

	head.pose = glm.TranslationMat4[float32](5, 0, 0)

	assert.Equal(t, Curved, c.ToggleMode())
	assert.Equal(t, Flat, c.ToggleMode())

	afterFlat, _ := c.Anchor(Flat)
	afterCurved, _ := c.Anchor(Curved)

	assert.Equal(t, flat, afterFlat)
	assert.Equal(t, curved, afterCurved)
	assert.Equal(t, Flat, c.Mode())
}

func TestEnsureAnchoredOnFirstPose(t *testing.T) {
	head := &fixedHead{}
	c := NewController(head, Curved, 2)

	_, ok := c.Active()
	assert.False(t, ok)

	head.pose = glm.IdentityMat4[float32]()
	head.available = true

	assert.True(t, c.EnsureAnchored())

	flat, ok := c.Anchor(Flat)
	require.True(t, ok)
	assert.InDelta(t, -2, flat.Translation()[2], 1e-6)

	curved, ok := c.Anchor(Curved)
	require.True(t, ok)
	assert.InDelta(t, -2, curved.Translation()[2], 1e-6)

	// later head movement does not move already placed anchors
	head.pose = glm.TranslationMat4[float32](0, 0, 10)
	assert.False(t, c.EnsureAnchored())

	again, _ := c.Anchor(Flat)
	assert.Equal(t, flat, again)
}

func TestRecenterIsDeterministic(t *testing.T) {
	head := &fixedHead{
		pose: glm.TranslationMat4[float32](0.3, 1.1, -0.2).
			Mul(glm.RotationXMat4[float32](0.2)).
			Mul(glm.RotationYMat4[float32](1.1)),
		available: true,
	}

	a := NewController(head, Flat, 1.3)
	b := NewController(head, Flat, 1.3)

	a.RecenterActive()
	b.RecenterActive()

	poseA, _ := a.Active()
	poseB, _ := b.Active()
	assert.Equal(t, poseA, poseB)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("curved")
	require.NoError(t, err)
	assert.Equal(t, Curved, mode)

	mode, err = ParseMode("flat")
	require.NoError(t, err)
	assert.Equal(t, Flat, mode)

	_, err = ParseMode("round")
	assert.Error(t, err)
}

func TestRecenterClampsDistance(t *testing.T) {
	c := NewController(identityHead(), Flat, DefaultDistance)

	c.Recenter(Flat, 9)
	assert.Equal(t, float32(5), c.Distance(Flat))

	anchor, ok := c.Anchor(Flat)
	require.True(t, ok)
	assert.InDelta(t, -5, anchor.Translation()[2], 1e-6)

	c.Recenter(Curved, -3)
	assert.Equal(t, float32(-1), c.Distance(Curved))
}

func TestClampNaN(t *testing.T) {
	nan := float32(math.NaN())

	assert.Equal(t, float32(0.5), FlatRange.Clamp(nan))
	assert.Equal(t, float32(-1), CurvedRange.Clamp(nan))

	c := NewController(identityHead(), Flat, nan)
	assert.Equal(t, float32(0.5), c.Distance(Flat))

	c.AdjustDistance(Flat, -0.1)
	assert.Equal(t, float32(0.5), c.Distance(Flat))

	anchor, ok := c.Anchor(Flat)
	require.True(t, ok)
	assert.InDelta(t, -0.5, anchor.Translation()[2], 1e-6)
}
