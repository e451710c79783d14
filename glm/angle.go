package glm

import "math"

// Sincos returns sine and cosine of the angle. Both are computed in double
// precision, rotation matrices built from them stay orthonormal.
func (r Rad) Sincos() (sin, cos float32) {
	s, c := math.Sincos(float64(r))
	return float32(s), float32(c)
}

// Wrap normalizes the angle into the range [-pi, pi).
func (r Rad) Wrap() Rad {
	wrapped := math.Mod(float64(r)+math.Pi, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}

	return Rad(wrapped - math.Pi)
}
