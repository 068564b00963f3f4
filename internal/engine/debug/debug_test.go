package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stageviewer/internal/engine/model"
)

func TestBoundsWireframe(t *testing.T) {
	b := model.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{2, 1, 4}}
	verts := BoundsWireframe(b, mgl32.Ident4(), 0)
	require.Len(t, verts, BBoxWireframeVertexCount*3)

	// Every edge is axis aligned and spans the full extent on its axis
	for i := 0; i < len(verts); i += 6 {
		d := mgl32.Vec3{verts[i+3] - verts[i], verts[i+4] - verts[i+1], verts[i+5] - verts[i+2]}
		nonZero := 0
		for _, c := range d {
			if c != 0 {
				nonZero++
			}
		}
		assert.Equal(t, 1, nonZero, "edge %d is not axis aligned: %v", i/6, d)
		l := d.Len()
		assert.Contains(t, []float32{1, 2, 4}, l)
	}
}

func TestBoundsWireframeTransformAndPad(t *testing.T) {
	b := model.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	world := mgl32.Translate3D(0, 1, 0).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))
	verts := BoundsWireframe(b, world, 1)

	lo := mgl32.Vec3{10, 10, 10}
	hi := mgl32.Vec3{-10, -10, -10}
	for i := 0; i < len(verts); i += 3 {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], verts[i+k])
			hi[k] = max(hi[k], verts[i+k])
		}
	}
	assert.InDelta(t, -1, lo[0], 1e-6)
	assert.InDelta(t, 0, lo[1], 1e-6)
	assert.InDelta(t, 1, hi[0], 1e-6)
	assert.InDelta(t, 2, hi[1], 1e-6)
}

func TestBoundsWireframeEmpty(t *testing.T) {
	assert.Nil(t, BoundsWireframe(model.EmptyBounds(), mgl32.Ident4(), 0))
	assert.Nil(t, SceneWireframe(nil))
}

func TestSceneWireframeSkipsHidden(t *testing.T) {
	root := model.NewNode("roof")
	root.AddChild(model.Box("deck", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}))
	hidden := root.AddChild(model.Box("membrane", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 2, 1}))
	s := model.NewScene("roof", root)

	assert.Len(t, SceneWireframe(s), 3*BBoxWireframeVertexCount*3)
	hidden.Meshes[0].Visible = false
	assert.Len(t, SceneWireframe(s), 2*BBoxWireframeVertexCount*3)
}

func TestFlipRows(t *testing.T) {
	// 1x2 image: bottom row red, top row blue (GL order)
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRows(pixels, 1, 2)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b)
	r, _, _, _ = img.At(0, 1).RGBA()
	assert.NotZero(t, r)

	_, err = FlipRows(pixels, 2, 2)
	assert.Error(t, err)
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "")
	sc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }

	assert.Equal(t, filepath.Join(dir, "stageviewer_stage03_2026-03-01_09-30-00.png"), sc.Filename(3))
	assert.Equal(t, filepath.Join(dir, "stageviewer_2026-03-01_09-30-00.png"), sc.Filename(0))

	path, err := sc.CaptureFromPixels(make([]byte, 4*3*2), 4, 3, 3)
	require.Error(t, err)
	assert.Empty(t, path)

	path, err = sc.CaptureFromPixels(make([]byte, 4*3*4), 4, 3, 3)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}
