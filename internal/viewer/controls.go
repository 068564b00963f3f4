package viewer

import (
	"github.com/Faultbox/stageviewer/internal/engine/camera"
	"github.com/Faultbox/stageviewer/internal/engine/labels"
	"github.com/Faultbox/stageviewer/internal/engine/layers"
	"github.com/Faultbox/stageviewer/internal/engine/model"
	"github.com/Faultbox/stageviewer/internal/engine/stage"
	"github.com/Faultbox/stageviewer/internal/engine/transform"
)

// GoTo activates stage n on behalf of the viewer's own UI.
func (v *Viewer) GoTo(n int) bool {
	return v.nav.GoTo(n)
}

// Next advances one stage.
func (v *Viewer) Next() bool {
	return v.nav.Next()
}

// Prev goes back one stage.
func (v *Viewer) Prev() bool {
	return v.nav.Prev()
}

// Overview returns to stage 1.
func (v *Viewer) Overview() bool {
	return v.nav.JumpToOverview()
}

// RequestStage applies a stage request coming from outside, such as a
// linked step list. It behaves like GoTo but does not echo the change back
// through OnStageChange.
func (v *Viewer) RequestStage(n int) bool {
	v.external = true
	defer func() { v.external = false }()
	return v.nav.GoTo(n)
}

// PostStage queues an outside stage request from any goroutine. It is
// applied on the next Tick. Requests beyond the queue capacity are dropped.
func (v *Viewer) PostStage(n int) bool {
	select {
	case v.requests <- n:
		return true
	default:
		return false
	}
}

// HandleGesture applies a user camera gesture. Orbit, zoom and pan stop an
// in-flight stage approach; reset flies back to the default pose.
func (v *Viewer) HandleGesture(g Gesture) {
	switch g.Kind {
	case GestureOrbit:
		v.anim.Interrupt()
		v.cam.HandleDrag(g.DX, g.DY)
	case GestureZoom:
		v.anim.Interrupt()
		v.cam.HandleZoom(g.DY)
	case GesturePan:
		v.anim.Interrupt()
		v.cam.HandlePan(g.DX, g.DY)
	case GestureReset:
		v.anim.Reset()
	}
}

// Status returns the load state.
func (v *Viewer) Status() Status { return v.status }

// Err returns the last load error while the status is StatusFailed.
func (v *Viewer) Err() error { return v.err }

// Ref returns the current model reference.
func (v *Viewer) Ref() string { return v.ref }

// Scene returns the viewer's own clone of the model, or nil.
func (v *Viewer) Scene() *model.Scene { return v.scene }

// Transform returns the model transform and whether one exists.
func (v *Viewer) Transform() (transform.Transform, bool) { return v.tr, v.hasTr }

// Camera returns the live camera.
func (v *Viewer) Camera() *camera.OrbitCamera { return v.cam }

// Animator returns the stage camera animator.
func (v *Viewer) Animator() *camera.Animator { return v.anim }

// Stage returns the active stage number.
func (v *Viewer) Stage() int { return v.nav.Current() }

// StageCount returns the number of stages.
func (v *Viewer) StageCount() int { return v.nav.Count() }

// Stages returns the stage list.
func (v *Viewer) Stages() stage.List { return v.stages }

// CurrentStage returns the record of the active stage, if any.
func (v *Viewer) CurrentStage() (*stage.Stage, bool) {
	return v.stages.Find(v.nav.Current())
}

// Staging reports whether stage sync is live: a model with a transform and
// at least one stage.
func (v *Viewer) Staging() bool {
	return v.status == StatusReady && v.hasTr && v.nav.Enabled()
}

// Resolution returns the layer state last applied.
func (v *Viewer) Resolution() layers.Resolution { return v.resolution }

// Labels returns the labels of the active stage in scene space.
func (v *Viewer) Labels() []labels.Projected { return v.labels }
