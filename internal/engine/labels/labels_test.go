package labels

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stageviewer/internal/engine/model"
	"github.com/Faultbox/stageviewer/internal/engine/stage"
	"github.com/Faultbox/stageviewer/internal/engine/transform"
)

func testTransform(t *testing.T) *transform.Transform {
	t.Helper()
	tr, ok := transform.Compute(model.Bounds{Min: mgl32.Vec3{-2, 0, -2}, Max: mgl32.Vec3{2, 1, 2}})
	require.True(t, ok)
	return &tr
}

func TestProjectFilters(t *testing.T) {
	tr := testTransform(t)
	in := []stage.Label{
		{Marker: "a", Text: "Seal here", Position: stage.Vec3{0, 0.5, 0}},
		{Marker: "", Text: "", Position: stage.Vec3{1, 1, 1}},
		{Marker: "b", Text: "Origin", Position: stage.Vec3{0, 0, 0}},
		{Marker: "c", Position: stage.Vec3{1, 0, 0}},
	}
	out := Project(in, *tr)
	require.Len(t, out, 2)
	assert.Equal(t, "Seal here", out[0].Text)
	assert.Equal(t, tr.ToScene(mgl32.Vec3{0, 0.5, 0}), out[0].Scene)
	assert.Equal(t, "c", out[1].Caption())
}

func TestForStage(t *testing.T) {
	tr := testTransform(t)
	stages := stage.List{
		{Number: 1, Labels: []stage.Label{{Marker: "x", Position: stage.Vec3{1, 1, 1}}}},
		{Number: 2, Labels: []stage.Label{{Marker: "a", Text: "Seal here", Position: stage.Vec3{0, 0.5, 0}}}},
		{Number: 3, Labels: []stage.Label{
			{Marker: "b", Text: "Fix", Position: stage.Vec3{1, 0, 1}},
			{Marker: "c", Text: "Lap", Position: stage.Vec3{-1, 0, 1}},
		}},
	}

	tests := []struct {
		name   string
		active int
		tr     *transform.Transform
		want   []string
	}{
		{"overview has no labels", 1, tr, nil},
		{"stage 2", 2, tr, []string{"Seal here"}},
		{"stage 3 replaces stage 2", 3, tr, []string{"Fix", "Lap"}},
		{"missing stage", 9, tr, nil},
		{"no transform", 2, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range ForStage(stages, tt.active, tt.tr) {
				got = append(got, p.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCaption(t *testing.T) {
	assert.Equal(t, "a  Seal", Projected{Marker: "a", Text: "Seal"}.Caption())
	assert.Equal(t, "Seal", Projected{Text: "Seal"}.Caption())
	assert.Equal(t, "a", Projected{Marker: "a"}.Caption())
}

func TestToScreen(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)

	center, ok := ToScreen(mgl32.Vec3{}, view, proj, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400, float64(center.X()), 1e-3)
	assert.InDelta(t, 300, float64(center.Y()), 1e-3)

	above, ok := ToScreen(mgl32.Vec3{0, 1, 0}, view, proj, 800, 600)
	require.True(t, ok)
	assert.Less(t, above.Y(), center.Y(), "screen Y grows downward")

	_, ok = ToScreen(mgl32.Vec3{0, 0, 10}, view, proj, 800, 600)
	assert.False(t, ok, "behind the camera")
}
