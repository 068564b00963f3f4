package model

import "github.com/go-gl/mathgl/mgl32"

// PlaceholderName is the name of the scene returned by Placeholder.
const PlaceholderName = "placeholder"

// Placeholder returns a unit cube resting on the origin. It stands in for a
// missing model reference.
func Placeholder() *Scene {
	return NewScene(PlaceholderName, Box("placeholder-box", mgl32.Vec3{-0.5, 0, -0.5}, mgl32.Vec3{0.5, 1, 0.5}))
}

// Box builds a node holding one axis-aligned box mesh spanning min..max.
func Box(name string, min, max mgl32.Vec3) *Node {
	corners := [8]mgl32.Vec3{
		{min[0], min[1], min[2]}, {max[0], min[1], min[2]},
		{max[0], max[1], min[2]}, {min[0], max[1], min[2]},
		{min[0], min[1], max[2]}, {max[0], min[1], max[2]},
		{max[0], max[1], max[2]}, {min[0], max[1], max[2]},
	}
	// Four corners per face so each face gets a flat normal.
	faces := [6][4]int{
		{0, 3, 2, 1}, // back
		{4, 5, 6, 7}, // front
		{0, 4, 7, 3}, // left
		{1, 2, 6, 5}, // right
		{3, 7, 6, 2}, // top
		{0, 1, 5, 4}, // bottom
	}

	positions := make([]mgl32.Vec3, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(positions))
		for _, ci := range f {
			positions = append(positions, corners[ci])
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	node := NewNode(name)
	node.AddMesh(NewMesh(name, positions, nil, indices, NewMaterial(name, mgl32.Vec3{0.62, 0.64, 0.68})))
	return node
}
