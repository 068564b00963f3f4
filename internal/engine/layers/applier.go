package layers

import "github.com/Faultbox/stageviewer/internal/engine/model"

// GhostOpacity is the opacity of ghosted context meshes.
const GhostOpacity = 0.25

// Ghosts at or below this opacity stop writing depth.
const depthWriteCutoff = 0.1

type baseline struct {
	opacity     float32
	transparent bool
	depthWrite  bool
}

// Applier writes resolutions into a scene's materials. It must be created
// on a cloned scene right after load, before any stage is applied, so that
// it captures each material's authored state.
type Applier struct {
	scene        *model.Scene
	ghostOpacity float32
	original     map[*model.Material]baseline
}

// NewApplier captures the authored state of every material in s. An
// out-of-range ghostOpacity falls back to GhostOpacity.
func NewApplier(s *model.Scene, ghostOpacity float32) *Applier {
	if ghostOpacity <= 0 || ghostOpacity > 1 {
		ghostOpacity = GhostOpacity
	}
	a := &Applier{
		scene:        s,
		ghostOpacity: ghostOpacity,
		original:     make(map[*model.Material]baseline),
	}
	for _, mat := range s.Materials() {
		a.original[mat] = baseline{
			opacity:     mat.Opacity,
			transparent: mat.Transparent,
			depthWrite:  mat.DepthWrite,
		}
	}
	return a
}

// Apply sets mesh visibility and material opacity from r. Meshes absent
// from r are left alone.
func (a *Applier) Apply(r Resolution) {
	for _, m := range a.scene.Meshes() {
		visible, ok := r.Visible[m.ID]
		if !ok {
			continue
		}
		m.Visible = visible
		if r.Class[m.ID] == Ghost {
			a.ghost(m.Material)
		} else {
			a.restore(m.Material)
		}
	}
}

// Reset shows every mesh at its authored opacity.
func (a *Applier) Reset() {
	for _, m := range a.scene.Meshes() {
		m.Visible = true
		a.restore(m.Material)
	}
}

// Original returns the authored opacity captured for mat.
func (a *Applier) Original(mat *model.Material) (float32, bool) {
	b, ok := a.original[mat]
	return b.opacity, ok
}

func (a *Applier) ghost(mat *model.Material) {
	if mat == nil {
		return
	}
	mat.Opacity = a.ghostOpacity
	mat.Transparent = true
	mat.DepthWrite = a.ghostOpacity > depthWriteCutoff
}

func (a *Applier) restore(mat *model.Material) {
	if mat == nil {
		return
	}
	b, ok := a.original[mat]
	if !ok {
		return
	}
	mat.Opacity = b.opacity
	mat.Transparent = b.transparent
	mat.DepthWrite = b.depthWrite
}
