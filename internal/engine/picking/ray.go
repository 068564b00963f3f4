// Package picking provides ray casting and mesh picking utilities.
package picking

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stageviewer/internal/engine/model"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with a top-left origin, viewportW/H
// are viewport dimensions. invViewProj is the inverse of the view-projection
// matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1, 1})

	return Ray{Origin: near, Direction: model.Normalize(far.Sub(near))}
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	p := inv.Mul4x1(ndc)
	if p[3] != 0 {
		return p.Vec3().Mul(1 / p[3])
	}
	return p.Vec3()
}

// IntersectBounds tests ray intersection with an axis-aligned box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBounds(box model.Bounds) (t float32, hit bool) {
	if box.IsEmpty() {
		return 0, false
	}
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - o) / d
		t2 := (box.Max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// TransformBounds maps a native box into world space. world must be a
// translation plus positive scale, which keeps the box axis-aligned.
func TransformBounds(b model.Bounds, world mgl32.Mat4) model.Bounds {
	if b.IsEmpty() {
		return b
	}
	out := model.EmptyBounds()
	out.Expand(model.TransformPoint(world, b.Min))
	out.Expand(model.TransformPoint(world, b.Max))
	return out
}

// PickMesh returns the nearest visible mesh of s whose bounding box the ray
// hits.
func PickMesh(s *model.Scene, r Ray) (*model.Mesh, bool) {
	if s == nil {
		return nil, false
	}
	world := s.ModelMatrix()
	var best *model.Mesh
	bestT := float32(math.MaxFloat32)
	for _, m := range s.Meshes() {
		if !m.Visible {
			continue
		}
		if t, ok := r.IntersectBounds(TransformBounds(m.Bounds(), world)); ok && t < bestT {
			best, bestT = m, t
		}
	}
	return best, best != nil
}
