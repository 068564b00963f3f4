package stage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioJSON = `[
  {"number": 1, "camera": null, "actions": [], "labels": []},
  {"number": 2,
   "camera": {"position": [1, 1, 1], "target": [0, 0, 0]},
   "actions": [{"layers": "Layer:pipe-flashing", "operation": "reveal"}],
   "labels": [{"marker": "a", "text": "Seal here", "position": {"x": 0, "y": 0.5, "z": 0}}]}
]`

func TestParseJSONScenario(t *testing.T) {
	list, err := Parse([]byte(scenarioJSON))
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Nil(t, list[0].Camera)
	assert.Empty(t, list[0].Actions)

	s2 := list[1]
	require.NotNil(t, s2.Camera)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s2.Camera.Position.Vec())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s2.Camera.Target.Vec())
	require.Len(t, s2.Actions, 1)
	assert.True(t, s2.Actions[0].IsReveal())
	require.Len(t, s2.Labels, 1)
	assert.Equal(t, "Seal here", s2.Labels[0].Text)
	assert.Equal(t, mgl32.Vec3{0, 0.5, 0}, s2.Labels[0].Position.Vec())
}

func TestParseYAMLDocument(t *testing.T) {
	data := `
stages:
  - title: Overview
  - title: Underlay
    actions:
      - layers: "Layer:underlay, !Layer:tiles"
`
	list, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Number)
	assert.Equal(t, 2, list[1].Number)
	assert.Equal(t, "Underlay", list[1].Title)
	assert.False(t, list[1].Actions[0].IsReveal())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"scalar", `42`},
		{"short vector", `[{"number": 1, "labels": [{"text": "x", "position": [1, 2]}]}]`},
		{"bad vector", `[{"number": 1, "labels": [{"text": "x", "position": "up"}]}]`},
		{"syntax", `[{"number": 1,`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	list, err := Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, list.Count())
}

func TestParseLayers(t *testing.T) {
	tests := []struct {
		spec string
		want []Toggle
	}{
		{"Layer:deck", []Toggle{{"deck", true}}},
		{"!Layer:deck", []Toggle{{"deck", false}}},
		{" Layer:a , !Layer:b,Layer:c ", []Toggle{{"a", true}, {"b", false}, {"c", true}}},
		{"Layer:,deck,Other:x", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLayers(tt.spec))
		})
	}
}

func TestListFindAndThrough(t *testing.T) {
	list := List{{Number: 3}, {Number: 1}, {Number: 2}}
	s, ok := list.Find(2)
	require.True(t, ok)
	assert.Equal(t, 2, s.Number)

	_, ok = list.Find(7)
	assert.False(t, ok)

	through := list.Through(2)
	require.Len(t, through, 2)
	assert.Equal(t, 1, through[0].Number)
	assert.Equal(t, 2, through[1].Number)
	assert.Equal(t, 3, list[0].Number, "Through must not reorder the list")
	assert.Equal(t, 3, list.Count())
}

func TestLabelRenderable(t *testing.T) {
	assert.True(t, Label{Marker: "a", Position: Vec3{0, 1, 0}}.Renderable())
	assert.True(t, Label{Text: "Seal", Position: Vec3{0, 1, 0}}.Renderable())
	assert.False(t, Label{Position: Vec3{0, 1, 0}}.Renderable())
	assert.False(t, Label{Marker: "a", Text: "Seal"}.Renderable())
}

func TestMarshalRoundTrip(t *testing.T) {
	list, err := Parse([]byte(scenarioJSON))
	require.NoError(t, err)

	data, err := Marshal(list)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, list[1].Camera, again[1].Camera)
	assert.Equal(t, list[1].Labels, again[1].Labels)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioJSON), 0644))

	w, err := Watch(path, nil)
	require.NoError(t, err)
	defer w.Close()

	updated := `[{"number": 1}, {"number": 2}, {"number": 3}]`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	// A truncating write may surface an intermediate empty file first.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case list := <-w.Updates():
			if len(list) == 3 {
				assert.NoError(t, w.Close())
				assert.NoError(t, w.Close())
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
