package model

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawOrder splits the visible meshes into an opaque pass (scene order) and
// a blended pass sorted back to front from eye. Positions are taken through
// world, the matrix the renderer draws with.
func (s *Scene) DrawOrder(world mgl32.Mat4, eye mgl32.Vec3) (opaque, blended []*Mesh) {
	type keyed struct {
		mesh *Mesh
		dist float32
	}
	var far []keyed
	for _, m := range s.meshes {
		if !m.Visible || m.Material == nil || len(m.Indices) == 0 {
			continue
		}
		if !m.Material.Blended() {
			opaque = append(opaque, m)
			continue
		}
		c := TransformPoint(world, m.Bounds().Center())
		far = append(far, keyed{m, c.Sub(eye).LenSqr()})
	}
	sort.SliceStable(far, func(i, j int) bool { return far[i].dist > far[j].dist })
	for _, k := range far {
		blended = append(blended, k.mesh)
	}
	return opaque, blended
}

// Blended reports whether the material needs alpha blending.
func (m *Material) Blended() bool {
	return m.Transparent || m.Opacity < 1
}
