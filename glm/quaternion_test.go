package glm

import "math"

// Quaternions serve as an independent reference for the rotation matrices.

func (lhs Vec3[T]) Dot(rhs Vec3[T]) T {
	return lhs[0]*rhs[0] + lhs[1]*rhs[1] + lhs[2]*rhs[2]
}

func (lhs Vec3[T]) MulScalar(s T) Vec3[T] {
	return Vec3[T]{
		lhs[0] * s,
		lhs[1] * s,
		lhs[2] * s,
	}
}

func (lhs Vec3[T]) Add(rhs Vec3[T]) Vec3[T] {
	return Vec3[T]{
		lhs[0] + rhs[0],
		lhs[1] + rhs[1],
		lhs[2] + rhs[2],
	}
}

func (lhs Vec3[T]) Cross(rhs Vec3[T]) Vec3[T] {
	return Vec3[T]{
		lhs[1]*rhs[2] - rhs[1]*lhs[2],
		lhs[2]*rhs[0] - rhs[2]*lhs[0],
		lhs[0]*rhs[1] - rhs[0]*lhs[1],
	}
}

// Quaternion is a rotation with vector part V and scalar part S.
type Quaternion[T float] struct {
	V Vec3[T]
	S T
}

// QuaternionFromAxisAngle rotates by angle around the given unit axis.
func QuaternionFromAxisAngle[T float](axis Vec3[T], angle Rad) Quaternion[T] {
	s, c := math.Sincos(float64(angle) * 0.5)

	return Quaternion[T]{
		V: axis.MulScalar(T(s)),
		S: T(c),
	}
}

// Mul composes two rotations, rhs is applied first.
func (lhs Quaternion[T]) Mul(rhs Quaternion[T]) Quaternion[T] {
	return Quaternion[T]{
		V: rhs.V.MulScalar(lhs.S).
			Add(lhs.V.MulScalar(rhs.S)).
			Add(lhs.V.Cross(rhs.V)),
		S: lhs.S*rhs.S - lhs.V.Dot(rhs.V),
	}
}

func (lhs Quaternion[T]) Normalize() Quaternion[T] {
	n := T(math.Sqrt(float64(lhs.V.Dot(lhs.V) + lhs.S*lhs.S)))
	return Quaternion[T]{V: lhs.V.MulScalar(1 / n), S: lhs.S / n}
}

// Mat4FromQuaternion returns the rotation described by a unit quaternion.
func Mat4FromQuaternion[T float](quat Quaternion[T]) Mat4[T] {
	x2 := quat.V[0] + quat.V[0]
	y2 := quat.V[1] + quat.V[1]
	z2 := quat.V[2] + quat.V[2]

	xx2 := x2 * quat.V[0]
	xy2 := x2 * quat.V[1]
	xz2 := x2 * quat.V[2]

	yy2 := y2 * quat.V[1]
	yz2 := y2 * quat.V[2]
	zz2 := z2 * quat.V[2]

	sy2 := y2 * quat.S
	sz2 := z2 * quat.S
	sx2 := x2 * quat.S

	return Mat4[T]{
		1 - yy2 - zz2, xy2 + sz2, xz2 - sy2, 0,
		xy2 - sz2, 1 - xx2 - zz2, yz2 + sx2, 0,
		xz2 + sy2, yz2 - sx2, 1 - xx2 - yy2, 0,
		0, 0, 0, 1,
	}
}
