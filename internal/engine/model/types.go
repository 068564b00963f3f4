// Package model holds the in-memory model asset: a hierarchy of named nodes
// whose meshes carry their own materials.
package model

import "github.com/go-gl/mathgl/mgl32"

// Material is the per-mesh surface state the engine is allowed to mutate.
type Material struct {
	Name        string
	Color       mgl32.Vec3
	Opacity     float32
	Transparent bool
	DepthWrite  bool
}

// NewMaterial returns an opaque material with the given base color.
func NewMaterial(name string, color mgl32.Vec3) *Material {
	return &Material{
		Name:       name,
		Color:      color,
		Opacity:    1.0,
		DepthWrite: true,
	}
}

// Clone returns an independent copy of the material.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// Mesh is a triangle list in native (model) space. Node transforms are
// already baked into Positions and Normals.
type Mesh struct {
	// ID is stable across clones and identifies the mesh in resolver output.
	ID        int
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
	Material  *Material
	Visible   bool

	bounds Bounds
}

// Node is a named element of the scene hierarchy.
type Node struct {
	Name     string
	Children []*Node
	Meshes   []*Mesh
}

// NewNode creates a node with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// AddChild appends child and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AddMesh attaches a mesh to the node.
func (n *Node) AddMesh(m *Mesh) *Mesh {
	n.Meshes = append(n.Meshes, m)
	return m
}
