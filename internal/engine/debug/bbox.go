// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stageviewer/internal/engine/model"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// boxEdges indexes corners as bit flags: x=1, y=2, z=4 select the max side.
var boxEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Verticals
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// BoundsWireframe returns line-list vertices ([x, y, z] per endpoint) for b
// after applying world, padded by pad native units on every side. An empty
// box yields nil.
func BoundsWireframe(b model.Bounds, world mgl32.Mat4, pad float32) []float32 {
	if b.IsEmpty() {
		return nil
	}
	lo := b.Min.Sub(mgl32.Vec3{pad, pad, pad})
	hi := b.Max.Add(mgl32.Vec3{pad, pad, pad})

	var corners [8]mgl32.Vec3
	for i := range corners {
		c := lo
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		corners[i] = model.TransformPoint(world, c)
	}

	out := make([]float32, 0, BBoxWireframeVertexCount*3)
	for _, e := range boxEdges {
		p, q := corners[e[0]], corners[e[1]]
		out = append(out, p[0], p[1], p[2], q[0], q[1], q[2])
	}
	return out
}

// SceneWireframe outlines every visible mesh of s plus the whole model, in
// scene space. The model outline comes first.
func SceneWireframe(s *model.Scene) []float32 {
	if s == nil {
		return nil
	}
	world := s.ModelMatrix()
	out := BoundsWireframe(s.Bounds(), world, 0)
	for _, m := range s.Meshes() {
		if m.Visible {
			out = append(out, BoundsWireframe(m.Bounds(), world, 0)...)
		}
	}
	return out
}
