package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stageviewer/internal/engine/model"
)

func box(min, max mgl32.Vec3) model.Bounds {
	b := model.EmptyBounds()
	b.Expand(min)
	b.Expand(max)
	return b
}

func TestIntersectBounds(t *testing.T) {
	unit := box(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"head on", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, true, 4},
		{"miss to the side", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"pointing away", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"from inside returns exit", Ray{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}}, true, 1},
		{"parallel outside slab", Ray{mgl32.Vec3{0, 2, 5}, mgl32.Vec3{0, 0, -1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectBounds(unit)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.wantT, got, 1e-5)
			}
		})
	}

	_, hit := Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}.IntersectBounds(model.EmptyBounds())
	assert.False(t, hit)
}

func TestScreenToRayCenter(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 100)
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(400, 200, 800, 400, inv)
	assert.InDelta(t, 0, r.Origin.X(), 1e-3)
	assert.InDelta(t, 0, r.Origin.Y(), 1e-3)
	assert.InDelta(t, -1, r.Direction.Z(), 1e-4)

	// Upper half of the screen looks up
	up := ScreenToRay(400, 50, 800, 400, inv)
	assert.Greater(t, up.Direction.Y(), float32(0))
}

func TestPickMeshNearestVisible(t *testing.T) {
	root := model.NewNode("roof")
	root.AddChild(model.Box("front", mgl32.Vec3{-1, 0, 1}, mgl32.Vec3{1, 1, 2}))
	root.AddChild(model.Box("back", mgl32.Vec3{-1, 0, -2}, mgl32.Vec3{1, 1, -1}))
	s := model.NewScene("roof", root)

	r := Ray{Origin: mgl32.Vec3{0, 0.5, 10}, Direction: mgl32.Vec3{0, 0, -1}}
	m, ok := PickMesh(s, r)
	require.True(t, ok)
	assert.Equal(t, "front", m.Name)

	m.Visible = false
	m, ok = PickMesh(s, r)
	require.True(t, ok)
	assert.Equal(t, "back", m.Name)

	_, ok = PickMesh(s, Ray{Origin: mgl32.Vec3{5, 5, 10}, Direction: mgl32.Vec3{0, 0, -1}})
	assert.False(t, ok)
	_, ok = PickMesh(nil, r)
	assert.False(t, ok)
}

func TestTransformBounds(t *testing.T) {
	b := box(mgl32.Vec3{-2, 0, -1}, mgl32.Vec3{2, 1, 1})
	world := mgl32.Translate3D(0, 1, 0).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))
	got := TransformBounds(b, world)
	assert.Equal(t, mgl32.Vec3{-1, 1, -0.5}, got.Min)
	assert.Equal(t, mgl32.Vec3{1, 1.5, 0.5}, got.Max)
}
