package surface

import (
	"math"
	"testing"

	"github.com/oliverbestmann/vrdesk/anchor"
	"github.com/oliverbestmann/vrdesk/glm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat(t *testing.T) {
	geometry := Flat(1.5, 0.84375)

	require.Len(t, geometry.Vertices, 4)
	assert.Equal(t, TriangleStrip, geometry.Topology)
	assert.Zero(t, geometry.Radius)

	expected := []Vertex{
		{Position: glm.Vec3f{-0.75, 0.421875, 0}, UV: glm.Vec2f{0, 0}},
		{Position: glm.Vec3f{-0.75, -0.421875, 0}, UV: glm.Vec2f{0, 1}},
		{Position: glm.Vec3f{0.75, 0.421875, 0}, UV: glm.Vec2f{1, 0}},
		{Position: glm.Vec3f{0.75, -0.421875, 0}, UV: glm.Vec2f{1, 1}},
	}

	assert.Equal(t, expected, geometry.Vertices)
}

func TestCurved(t *testing.T) {
	geometry := Curved(1.5, 0.84375, DefaultArc, DefaultSegments)

	require.Len(t, geometry.Vertices, 2*(DefaultSegments+1))
	assert.InDelta(t, 1.0607, geometry.Radius, 1e-4)

	first := geometry.Vertices[0]
	last := geometry.Vertices[len(geometry.Vertices)-1]

	assert.InDelta(t, -0.75, first.Position[0], 1e-5)
	assert.InDelta(t, -0.75, first.Position[2], 1e-5)
	assert.Equal(t, glm.Vec2f{0, 0}, first.UV)

	assert.InDelta(t, 0.75, last.Position[0], 1e-5)
	assert.InDelta(t, -0.75, last.Position[2], 1e-5)
	assert.Equal(t, glm.Vec2f{1, 1}, last.UV)

	// center of the arc lies at radius straight ahead
	middle := geometry.Vertices[DefaultSegments]
	assert.InDelta(t, 0, middle.Position[0], 1e-6)
	assert.InDelta(t, -geometry.Radius, middle.Position[2], 1e-6)
	assert.InDelta(t, 0.5, middle.UV[0], 1e-6)
}

func TestCurvedVertexInvariants(t *testing.T) {
	geometry := Curved(2, 1, glm.DegToRad(120), 17)

	var previousU float32 = -1

	for idx := 0; idx < len(geometry.Vertices); idx += 2 {
		top := geometry.Vertices[idx]
		bottom := geometry.Vertices[idx+1]

		// top then bottom, same column
		assert.Equal(t, float32(0), top.UV[1])
		assert.Equal(t, float32(1), bottom.UV[1])
		assert.Equal(t, top.UV[0], bottom.UV[0])
		assert.Equal(t, top.Position[0], bottom.Position[0])
		assert.Equal(t, top.Position[2], bottom.Position[2])
		assert.InDelta(t, 0.5, top.Position[1], 1e-6)
		assert.InDelta(t, -0.5, bottom.Position[1], 1e-6)

		// every vertex lies on the cylinder
		x, z := float64(top.Position[0]), float64(top.Position[2])
		assert.InDelta(t, geometry.Radius, math.Hypot(x, z), 1e-5)

		assert.Greater(t, top.UV[0], previousU)
		previousU = top.UV[0]
	}
}

func TestBuildIsPure(t *testing.T) {
	for _, mode := range []anchor.Mode{anchor.Flat, anchor.Curved} {
		params := DefaultParams(mode, 9.0/16.0)
		assert.Equal(t, Build(params), Build(params))
	}
}

func TestBuildSelectsMode(t *testing.T) {
	assert.Len(t, Build(DefaultParams(anchor.Flat, 0.5)).Vertices, 4)
	assert.Len(t, Build(DefaultParams(anchor.Curved, 0.5)).Vertices, 2*(DefaultSegments+1))
}

func TestHeightForFrame(t *testing.T) {
	assert.InDelta(t, 0.84375, HeightForFrame(1.5, 1920, 1080), 1e-6)
	assert.Equal(t, float32(FallbackHeight), HeightForFrame(1.5, 0, 0))
}
