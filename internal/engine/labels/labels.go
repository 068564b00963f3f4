// Package labels projects stage labels from native model space into scene
// space and onto the screen.
package labels

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stageviewer/internal/engine/stage"
	"github.com/Faultbox/stageviewer/internal/engine/transform"
)

// Projected is a renderable label anchored in scene space.
type Projected struct {
	Marker string
	Text   string
	Native mgl32.Vec3
	Scene  mgl32.Vec3
}

// Caption returns the text drawn for the label.
func (p Projected) Caption() string {
	switch {
	case p.Marker == "":
		return p.Text
	case p.Text == "":
		return p.Marker
	default:
		return p.Marker + "  " + p.Text
	}
}

// Project drops non-renderable labels and maps the rest into scene space.
func Project(ls []stage.Label, tr transform.Transform) []Projected {
	var out []Projected
	for _, l := range ls {
		if !l.Renderable() {
			continue
		}
		out = append(out, Projected{
			Marker: l.Marker,
			Text:   l.Text,
			Native: l.Position.Vec(),
			Scene:  tr.ToScene(l.Position.Vec()),
		})
	}
	return out
}

// ForStage returns the labels of the active stage only. Nothing is shown
// before a transform exists (tr == nil) or on the overview.
func ForStage(stages stage.List, active int, tr *transform.Transform) []Projected {
	if tr == nil || active == stage.Overview {
		return nil
	}
	st, ok := stages.Find(active)
	if !ok {
		return nil
	}
	return Project(st.Labels, *tr)
}

// ToScreen maps a scene-space point to window pixels, origin top-left. It
// reports false for points behind the camera or outside the depth range.
func ToScreen(p mgl32.Vec3, view, proj mgl32.Mat4, width, height int) (mgl32.Vec2, bool) {
	clip := proj.Mul4(view).Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return mgl32.Vec2{}, false
	}
	x := (ndc.X() + 1) / 2 * float32(width)
	y := (1 - ndc.Y()) / 2 * float32(height)
	return mgl32.Vec2{x, y}, true
}
