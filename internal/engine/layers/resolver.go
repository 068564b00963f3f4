// Package layers resolves which mesh groups are visible, ghosted or
// highlighted for a stage, and applies that state to a model's materials.
package layers

import (
	"sort"
	"strings"

	"github.com/Faultbox/stageviewer/internal/engine/model"
	"github.com/Faultbox/stageviewer/internal/engine/stage"
)

// OpacityClass says how a visible mesh is drawn.
type OpacityClass int

const (
	// Full draws the mesh with its authored opacity.
	Full OpacityClass = iota
	// Ghost draws the mesh as translucent context.
	Ghost
)

func (c OpacityClass) String() string {
	switch c {
	case Full:
		return "full"
	case Ghost:
		return "ghost"
	default:
		return "unknown"
	}
}

// Resolution is the cumulative layer state of one stage, keyed by mesh ID.
type Resolution struct {
	Stage   int
	Visible map[int]bool
	Class   map[int]OpacityClass

	// Revealed holds the layer names the active stage itself reveals.
	Revealed []string
}

// Ghosted returns the IDs of visible meshes drawn as ghosts.
func (r Resolution) Ghosted() []int {
	var ids []int
	for id, c := range r.Class {
		if c == Ghost && r.Visible[id] {
			ids = append(ids, id)
		}
	}
	return sortInts(ids)
}

// Hidden returns the IDs of hidden meshes.
func (r Resolution) Hidden() []int {
	var ids []int
	for id, v := range r.Visible {
		if !v {
			ids = append(ids, id)
		}
	}
	return sortInts(ids)
}

// Resolve replays stages 1..active over meshes. It reports false, and
// returns no state, when no stage carries the active number.
//
// The replay always starts from an all-visible, all-full state, so the
// result does not depend on which stage was shown before.
func Resolve(meshes []*model.Mesh, stages stage.List, active int) (Resolution, bool) {
	if _, ok := stages.Find(active); !ok {
		return Resolution{}, false
	}

	r := Resolution{
		Stage:   active,
		Visible: make(map[int]bool, len(meshes)),
		Class:   make(map[int]OpacityClass, len(meshes)),
	}
	for _, m := range meshes {
		r.Visible[m.ID] = true
		r.Class[m.ID] = Full
	}

	for _, st := range stages.Through(active) {
		for _, action := range st.Actions {
			reveal := st.Number == active && action.IsReveal()
			for _, t := range action.Toggles() {
				for _, m := range meshes {
					if strings.Contains(m.Name, t.Name) {
						r.Visible[m.ID] = t.Visible
					}
				}
				if reveal && t.Visible {
					r.Revealed = append(r.Revealed, t.Name)
				}
			}
		}
	}

	if active <= stage.Overview || len(r.Revealed) == 0 {
		return r, true
	}
	for _, m := range meshes {
		if !r.Visible[m.ID] {
			continue
		}
		r.Class[m.ID] = Ghost
		if matchesAny(m.Name, r.Revealed) {
			r.Class[m.ID] = Full
		}
	}
	return r, true
}

func matchesAny(name string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

func sortInts(ids []int) []int {
	sort.Ints(ids)
	return ids
}
