package model

import "github.com/go-gl/mathgl/mgl32"

// LocalMatrix builds a node's local transform as Translation * Rotation * Scale.
// rotation is a quaternion in x, y, z, w order.
func LocalMatrix(translation mgl32.Vec3, rotation mgl32.Vec4, scale mgl32.Vec3) mgl32.Mat4 {
	q := mgl32.Quat{W: rotation[3], V: mgl32.Vec3{rotation[0], rotation[1], rotation[2]}}
	if q.Len() < 1e-6 {
		q = mgl32.QuatIdent()
	} else {
		q = q.Normalize()
	}

	m := mgl32.Translate3D(translation[0], translation[1], translation[2])
	m = m.Mul4(q.Mat4())
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// IsIdentity reports whether m is the identity matrix within a small tolerance.
func IsIdentity(m mgl32.Mat4) bool {
	return m.ApproxEqualThreshold(mgl32.Ident4(), 1e-6)
}

// ReversesWinding reports whether m mirrors geometry (negative determinant),
// in which case triangle winding must be flipped to keep faces outward.
func ReversesWinding(m mgl32.Mat4) bool {
	return m.Mat3().Det() < 0
}
