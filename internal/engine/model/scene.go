package model

import "github.com/go-gl/mathgl/mgl32"

// Scene is a loaded model: a node hierarchy plus the root placement applied
// when rendering (translation and uniform scale).
type Scene struct {
	Name     string
	Root     *Node
	Position mgl32.Vec3
	Scale    float32

	meshes []*Mesh
}

// NewScene wraps root into a scene and assigns mesh IDs in depth-first order.
func NewScene(name string, root *Node) *Scene {
	if root == nil {
		root = NewNode(name)
	}
	s := &Scene{
		Name:  name,
		Root:  root,
		Scale: 1,
	}
	s.reindex()
	return s
}

// Meshes returns every mesh in depth-first order. The slice is shared; do
// not modify it.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Mesh returns the mesh with the given ID, or nil.
func (s *Scene) Mesh(id int) *Mesh {
	if id < 0 || id >= len(s.meshes) {
		return nil
	}
	return s.meshes[id]
}

// Walk visits every node depth-first, parents before children.
func (s *Scene) Walk(fn func(n *Node, depth int)) {
	if s.Root == nil {
		return
	}
	walkNode(s.Root, 0, fn)
}

// Bounds returns the native-space bounding box of all meshes, ignoring the
// root placement.
func (s *Scene) Bounds() Bounds {
	b := EmptyBounds()
	for _, m := range s.meshes {
		b.Union(m.Bounds())
	}
	return b
}

// ModelMatrix returns the root placement as a matrix: Translate * Scale.
func (s *Scene) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(s.Position[0], s.Position[1], s.Position[2]).
		Mul4(mgl32.Scale3D(s.Scale, s.Scale, s.Scale))
}

// Clone deep-copies the node hierarchy and every mesh material. Geometry is
// shared. Mesh IDs are preserved.
func (s *Scene) Clone() *Scene {
	c := &Scene{
		Name:     s.Name,
		Position: s.Position,
		Scale:    s.Scale,
	}
	if s.Root != nil {
		c.Root = cloneNode(s.Root)
	}
	c.reindex()
	return c
}

// Materials returns the distinct materials used by the scene's meshes.
func (s *Scene) Materials() []*Material {
	seen := make(map[*Material]bool)
	var out []*Material
	for _, m := range s.meshes {
		if m.Material == nil || seen[m.Material] {
			continue
		}
		seen[m.Material] = true
		out = append(out, m.Material)
	}
	return out
}

// Dispose drops the hierarchy so the scene can no longer be rendered or
// mutated through this handle.
func (s *Scene) Dispose() {
	s.Root = nil
	s.meshes = nil
}

func (s *Scene) reindex() {
	s.meshes = s.meshes[:0]
	s.Walk(func(n *Node, _ int) {
		for _, m := range n.Meshes {
			m.ID = len(s.meshes)
			s.meshes = append(s.meshes, m)
		}
	})
}

func walkNode(n *Node, depth int, fn func(*Node, int)) {
	fn(n, depth)
	for _, child := range n.Children {
		walkNode(child, depth+1, fn)
	}
}

func cloneNode(n *Node) *Node {
	c := &Node{Name: n.Name}
	if len(n.Meshes) > 0 {
		c.Meshes = make([]*Mesh, len(n.Meshes))
		for i, m := range n.Meshes {
			c.Meshes[i] = m.Clone()
		}
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = cloneNode(child)
		}
	}
	return c
}
