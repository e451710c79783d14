// Package surface generates the vertex data of the virtual screen.
package surface

import (
	"math"
	"structs"

	"github.com/oliverbestmann/vrdesk/anchor"
	"github.com/oliverbestmann/vrdesk/glm"
)

const (
	DefaultWidth    = 1.5
	FallbackHeight  = 0.9
	DefaultSegments = 64
)

// DefaultArc is the horizontal angle covered by the curved screen.
var DefaultArc = glm.DegToRad(90)

// Vertex is uploaded to the gpu as is.
type Vertex struct {
	_        structs.HostLayout
	Position glm.Vec3f
	UV       glm.Vec2f
}

type Topology int

const (
	TriangleStrip Topology = iota
)

// Geometry is a screen mesh in the surface's local space. The screen faces
// the -Z direction, +Y is up.
type Geometry struct {
	Vertices []Vertex
	Topology Topology

	// radius of the cylinder of a curved screen, zero for a flat one
	Radius float32
}

// Params describe the screen to build.
type Params struct {
	Mode     anchor.Mode
	Width    float32
	Height   float32
	Arc      glm.Rad
	Segments int
}

// DefaultParams returns the parameters for a screen of the given aspect
// ratio (height / width).
func DefaultParams(mode anchor.Mode, aspect float32) Params {
	return Params{
		Mode:     mode,
		Width:    DefaultWidth,
		Height:   DefaultWidth * aspect,
		Arc:      DefaultArc,
		Segments: DefaultSegments,
	}
}

// HeightForFrame derives the screen height from the captured frame size,
// keeping the aspect ratio of the desktop.
func HeightForFrame(width float32, frameWidth, frameHeight int) float32 {
	if frameWidth <= 0 || frameHeight <= 0 {
		return FallbackHeight
	}

	return width * float32(frameHeight) / float32(frameWidth)
}

// Build generates the geometry for the mode in params.
func Build(params Params) Geometry {
	if params.Mode == anchor.Curved {
		return Curved(params.Width, params.Height, params.Arc, params.Segments)
	}

	return Flat(params.Width, params.Height)
}

// Flat builds a rectangle centered at the origin in the XY plane.
func Flat(width, height float32) Geometry {
	hw := width / 2
	hh := height / 2

	return Geometry{
		Topology: TriangleStrip,
		Vertices: []Vertex{
			{Position: glm.Vec3f{-hw, hh, 0}, UV: glm.Vec2f{0, 0}},
			{Position: glm.Vec3f{-hw, -hh, 0}, UV: glm.Vec2f{0, 1}},
			{Position: glm.Vec3f{hw, hh, 0}, UV: glm.Vec2f{1, 0}},
			{Position: glm.Vec3f{hw, -hh, 0}, UV: glm.Vec2f{1, 1}},
		},
	}
}

// Curved builds a section of a cylinder around the Y axis, so that the
// chord between both ends has the given width. The center of the section
// lies at distance radius in front of the origin.
func Curved(width, height float32, arc glm.Rad, segments int) Geometry {
	segments = max(1, segments)

	radius := float64(width) / (2 * math.Sin(float64(arc)/2))
	hh := height / 2

	vertices := make([]Vertex, 0, 2*(segments+1))

	for idx := range segments + 1 {
		u := float64(idx) / float64(segments)
		theta := (u - 0.5) * float64(arc)

		x := float32(radius * math.Sin(theta))
		z := float32(-radius * math.Cos(theta))

		vertices = append(vertices,
			Vertex{Position: glm.Vec3f{x, hh, z}, UV: glm.Vec2f{float32(u), 0}},
			Vertex{Position: glm.Vec3f{x, -hh, z}, UV: glm.Vec2f{float32(u), 1}},
		)
	}

	return Geometry{
		Vertices: vertices,
		Topology: TriangleStrip,
		Radius:   float32(radius),
	}
}
