package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene() *Scene {
	root := NewNode("roof")
	root.AddChild(Box("deck", mgl32.Vec3{-2, 0, -1}, mgl32.Vec3{2, 0.2, 1}))
	root.AddChild(Box("pipe-flashing", mgl32.Vec3{-0.2, 0.2, -0.2}, mgl32.Vec3{0.2, 1, 0.2}))
	return NewScene("roof", root)
}

func TestBoundsEmpty(t *testing.T) {
	b := EmptyBounds()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, mgl32.Vec3{}, b.Size())

	b.Expand(mgl32.Vec3{1, 2, 3})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, mgl32.Vec3{}, b.Size())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.Center())
}

func TestSceneIndexesMeshes(t *testing.T) {
	s := testScene()
	meshes := s.Meshes()
	require.Len(t, meshes, 2)
	assert.Equal(t, "deck", meshes[0].Name)
	assert.Equal(t, 0, meshes[0].ID)
	assert.Equal(t, "pipe-flashing", meshes[1].Name)
	assert.Equal(t, 1, meshes[1].ID)
	assert.Same(t, meshes[1], s.Mesh(1))
	assert.Nil(t, s.Mesh(2))
}

func TestSceneBounds(t *testing.T) {
	b := testScene().Bounds()
	assert.Equal(t, mgl32.Vec3{-2, 0, -1}, b.Min)
	assert.Equal(t, mgl32.Vec3{2, 1, 1}, b.Max)
	assert.Equal(t, mgl32.Vec3{4, 1, 2}, b.Size())
}

func TestCloneIsolatesMaterials(t *testing.T) {
	src := testScene()
	clone := src.Clone()

	require.Len(t, clone.Meshes(), len(src.Meshes()))
	for i, m := range clone.Meshes() {
		orig := src.Meshes()[i]
		assert.Equal(t, orig.ID, m.ID)
		assert.NotSame(t, orig.Material, m.Material)
		assert.NotSame(t, orig, m)
	}

	clone.Meshes()[0].Material.Opacity = 0.25
	clone.Meshes()[0].Visible = false
	assert.Equal(t, float32(1), src.Meshes()[0].Material.Opacity)
	assert.True(t, src.Meshes()[0].Visible)
}

func TestDispose(t *testing.T) {
	s := testScene()
	s.Dispose()
	assert.Nil(t, s.Root)
	assert.Empty(t, s.Meshes())
	assert.True(t, s.Bounds().IsEmpty())
}

func TestNewMeshSanitizesIndices(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	m := NewMesh("tri", positions, nil, []uint32{0, 1, 2, 0, 1, 9, 2}, nil)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Equal(t, 1, m.TriangleCount())
	require.Len(t, m.Normals, 3)
	assert.InDelta(t, 1.0, float64(m.Normals[0][2]), 1e-6)
}

func TestModelMatrix(t *testing.T) {
	s := testScene()
	s.Position = mgl32.Vec3{0, 1, 0}
	s.Scale = 0.5
	p := TransformPoint(s.ModelMatrix(), mgl32.Vec3{2, 2, 2})
	assert.True(t, p.ApproxEqual(mgl32.Vec3{1, 2, 1}))
}

func TestLocalMatrix(t *testing.T) {
	// 90 degrees about Y maps +X to -Z.
	rot := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	m := LocalMatrix(mgl32.Vec3{0, 0, 5}, mgl32.Vec4{rot.V[0], rot.V[1], rot.V[2], rot.W}, mgl32.Vec3{2, 2, 2})
	p := TransformPoint(m, mgl32.Vec3{1, 0, 0})
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{0, 0, 3}, 1e-5), "got %v", p)

	assert.True(t, IsIdentity(LocalMatrix(mgl32.Vec3{}, mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec3{1, 1, 1})))
	assert.True(t, ReversesWinding(mgl32.Scale3D(-1, 1, 1)))
}

func TestPlaceholder(t *testing.T) {
	s := Placeholder()
	assert.Equal(t, PlaceholderName, s.Name)
	require.Len(t, s.Meshes(), 1)
	assert.Equal(t, 12, s.Meshes()[0].TriangleCount())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.Bounds().Size())
}

func TestDrawOrder(t *testing.T) {
	root := NewNode("root")
	near := root.AddChild(Box("near", mgl32.Vec3{0, 0, 4}, mgl32.Vec3{1, 1, 5}))
	far := root.AddChild(Box("far", mgl32.Vec3{0, 0, -5}, mgl32.Vec3{1, 1, -4}))
	solid := root.AddChild(Box("solid", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}))
	hidden := root.AddChild(Box("hidden", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}))
	s := NewScene("order", root)

	near.Meshes[0].Material.Opacity = 0.25
	far.Meshes[0].Material.Transparent = true
	hidden.Meshes[0].Visible = false

	opaque, blended := s.DrawOrder(mgl32.Ident4(), mgl32.Vec3{0, 0, 10})

	require.Len(t, opaque, 1)
	assert.Same(t, solid.Meshes[0], opaque[0])
	require.Len(t, blended, 2)
	assert.Same(t, far.Meshes[0], blended[0], "farthest first")
	assert.Same(t, near.Meshes[0], blended[1])
}
