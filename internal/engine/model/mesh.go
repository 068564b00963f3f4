package model

import "github.com/go-gl/mathgl/mgl32"

// NewMesh creates a visible mesh from native-space geometry. When indices is
// nil the positions are treated as a plain triangle list. Missing or
// mismatched normals are rebuilt from the triangles.
func NewMesh(name string, positions, normals []mgl32.Vec3, indices []uint32, mat *Material) *Mesh {
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if mat == nil {
		mat = NewMaterial("default", mgl32.Vec3{0.8, 0.8, 0.8})
	}

	m := &Mesh{
		Name:      name,
		Positions: positions,
		Normals:   normals,
		Indices:   sanitizeIndices(indices, len(positions)),
		Material:  mat,
		Visible:   true,
	}
	if len(m.Normals) != len(m.Positions) {
		m.Normals = ComputeNormals(m.Positions, m.Indices)
	}
	m.bounds = computeBounds(positions)
	return m
}

// Bounds returns the native-space bounding box of the mesh.
func (m *Mesh) Bounds() Bounds {
	return m.bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Clone returns a copy of the mesh with its own material. Geometry slices are
// shared since they are never mutated after load.
func (m *Mesh) Clone() *Mesh {
	c := *m
	if m.Material != nil {
		c.Material = m.Material.Clone()
	}
	return &c
}

// ComputeNormals builds smooth vertex normals by accumulating the face
// normal of every triangle that references a vertex.
func ComputeNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		e1 := positions[b].Sub(positions[a])
		e2 := positions[c].Sub(positions[a])
		n := e1.Cross(e2)

		// Degenerate triangle
		if n.Len() < 1e-10 {
			continue
		}
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = Normalize(normals[i])
	}
	return normals
}

// sanitizeIndices drops trailing partial triangles and any triangle that
// references a vertex outside the position range.
func sanitizeIndices(indices []uint32, vertexCount int) []uint32 {
	out := indices[:0:0]
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= vertexCount || int(b) >= vertexCount || int(c) >= vertexCount {
			continue
		}
		out = append(out, a, b, c)
	}
	return out
}

func computeBounds(positions []mgl32.Vec3) Bounds {
	b := EmptyBounds()
	for _, p := range positions {
		b.Expand(p)
	}
	return b
}
