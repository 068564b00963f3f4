// Package transform maps a model's native coordinates into the normalized
// scene space the viewer renders in.
package transform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stageviewer/internal/engine/model"
)

// CanonicalSize is the width of the box the largest model dimension is
// scaled to.
const CanonicalSize = 2.0

// GroundOffset lifts scene space so the model center sits at Y=1.
const GroundOffset = 1.0

// Anchor is the scene-space point the normalized model is centered on.
var Anchor = mgl32.Vec3{0, GroundOffset, 0}

// Transform is the per-load normalization of a model.
type Transform struct {
	Scale  float32
	Center mgl32.Vec3
}

// Compute derives the transform from a native-space bounding box. It
// reports false for empty or degenerate boxes, in which case the model is
// shown unscaled and stage sync stays inert.
func Compute(b model.Bounds) (Transform, bool) {
	if b.IsEmpty() {
		return Transform{}, false
	}
	size := b.Size()
	maxDim := math32.Max(size[0], math32.Max(size[1], size[2]))
	if maxDim <= 0 || math32.IsInf(maxDim, 0) || math32.IsNaN(maxDim) {
		return Transform{}, false
	}

	center := b.Center()
	for _, c := range center {
		if math32.IsInf(c, 0) || math32.IsNaN(c) {
			return Transform{}, false
		}
	}
	return Transform{
		Scale:  CanonicalSize / maxDim,
		Center: center,
	}, true
}

// Placement is the scene-root translation: -Center*Scale lifted by
// GroundOffset on Y.
func (t Transform) Placement() mgl32.Vec3 {
	return t.Center.Mul(-t.Scale).Add(Anchor)
}

// ToScene maps a native-space point into scene space. Camera positions,
// camera targets and label anchors all go through here.
func (t Transform) ToScene(p mgl32.Vec3) mgl32.Vec3 {
	return p.Sub(t.Center).Mul(t.Scale).Add(Anchor)
}

// ToNative is the inverse of ToScene.
func (t Transform) ToNative(p mgl32.Vec3) mgl32.Vec3 {
	return p.Sub(Anchor).Mul(1 / t.Scale).Add(t.Center)
}

// Apply places the scene root so that the model renders normalized.
func (t Transform) Apply(s *model.Scene) {
	s.Position = t.Placement()
	s.Scale = t.Scale
}

// Unplace resets a scene root to its native placement.
func Unplace(s *model.Scene) {
	s.Position = mgl32.Vec3{}
	s.Scale = 1
}
