package pulse

import (
	"testing"

	"github.com/oliverbestmann/vrdesk/glm"
	"github.com/stretchr/testify/assert"
)

func TestRectangleContains(t *testing.T) {
	outer := RectangleFromXYWH[uint32](0, 0, 100, 50)

	assert.True(t, outer.Contains(outer))
	assert.True(t, outer.Contains(RectangleFromXYWH[uint32](10, 10, 20, 20)))
	assert.False(t, outer.Contains(RectangleFromXYWH[uint32](90, 0, 20, 10)))
	assert.False(t, outer.Contains(RectangleFromXYWH[uint32](0, 45, 10, 10)))
}

func TestRectangleSplitX(t *testing.T) {
	rect := RectangleFromXYWH[uint32](0, 0, 1280, 720)

	left, right := rect.SplitX()

	assert.Equal(t, RectangleFromXYWH[uint32](0, 0, 640, 720), left)
	assert.Equal(t, RectangleFromXYWH[uint32](640, 0, 640, 720), right)
	assert.Equal(t, glm.Vec2u{640, 0}, right.Offset())
}

func TestRectangleFromPointsNormalizes(t *testing.T) {
	rect := RectangleFromPoints(glm.Vec2f{3, 4}, glm.Vec2f{1, 2})

	assert.Equal(t, glm.Vec2f{1, 2}, rect.Min)
	assert.Equal(t, glm.Vec2f{2, 2}, rect.Size())
	assert.Equal(t, "(1, 2, 2x2)", rect.String())
}
