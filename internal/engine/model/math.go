package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBounds returns a box that contains nothing; expanding it by any
// point yields a zero-size box at that point.
func EmptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box has never been expanded.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Expand grows the box to contain p.
func (b *Bounds) Expand(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
}

// Union grows the box to contain other.
func (b *Bounds) Union(other Bounds) {
	if other.IsEmpty() {
		return
	}
	b.Expand(other.Min)
	b.Expand(other.Max)
}

// Size returns the extent along each axis. An empty box has zero size.
func (b Bounds) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the centroid of the box.
func (b Bounds) Center() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// TransformPoint applies a 4x4 affine matrix to a point.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection applies the rotation/scale part of m to a direction and
// renormalizes it.
func TransformDirection(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return Normalize(m.Mul4x1(d.Vec4(0)).Vec3())
}

// Normalize returns a unit vector in the same direction as v.
// Degenerate vectors map to +Y.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	length := v.Len()
	if length < 0.0001 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Mul(1 / length)
}
