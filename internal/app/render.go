package app

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stageviewer/internal/engine/debug"
	"github.com/Faultbox/stageviewer/internal/engine/labels"
	"github.com/Faultbox/stageviewer/internal/engine/model"
	"github.com/Faultbox/stageviewer/internal/engine/picking"
	"github.com/Faultbox/stageviewer/internal/engine/ui2d"
	"github.com/Faultbox/stageviewer/internal/viewer"
)

const controlsHint = "drag: orbit   right-drag: pan   wheel: zoom   double-click: reset   arrows: stages   B: bounds   F12: screenshot"

var (
	boundsColor = mgl32.Vec4{0.85, 0.35, 0.1, 1}
	hoverColor  = mgl32.Vec4{0.05, 0.45, 0.85, 1}
)

// render draws the current frame: the scene, then the overlay on top.
func (a *App) render() {
	a.renderer.Begin()

	cam := a.viewer.Camera()
	view := cam.ViewMatrix()
	proj := cam.Projection(a.renderer.Aspect())

	scene := a.viewer.Scene()
	switch a.viewer.Status() {
	case viewer.StatusReady, viewer.StatusPlaceholder:
		a.renderer.DrawScene(scene, view, proj, cam.Position)
		if a.showBounds {
			a.renderer.DrawLines(debug.SceneWireframe(scene), boundsColor, view, proj)
			a.drawHover(scene, view, proj)
		}
	}

	a.ui.Begin()
	a.drawOverlay(view, proj)
	a.ui.End()
}

// drawHover outlines the mesh under the pointer and remembers its name for
// the tooltip.
func (a *App) drawHover(scene *model.Scene, view, proj mgl32.Mat4) {
	a.hovered = ""
	if a.ui.CapturesMouse() {
		return
	}
	in := a.ui.Input()
	sw, sh := a.ui.Renderer().ScreenSize()
	ray := picking.ScreenToRay(in.MouseX, in.MouseY, sw, sh, proj.Mul4(view).Inv())
	m, ok := picking.PickMesh(scene, ray)
	if !ok {
		return
	}
	a.hovered = m.Name
	a.renderer.DrawLines(debug.BoundsWireframe(m.Bounds(), scene.ModelMatrix(), 0), hoverColor, view, proj)
}

func (a *App) drawOverlay(view, proj mgl32.Mat4) {
	sw, sh := a.ui.Renderer().ScreenSize()

	switch a.viewer.Status() {
	case viewer.StatusLoading:
		a.drawLoading(sw, sh)
		return
	case viewer.StatusFailed:
		a.drawFailed(sw, sh)
		return
	}

	a.ui.Hint(controlsHint)
	if a.showBounds {
		a.ui.Tooltip(a.hovered)
	}
	w, h := int(sw), int(sh)
	for _, l := range a.viewer.Labels() {
		if p, ok := labels.ToScreen(l.Scene, view, proj, w, h); ok {
			a.ui.Marker(p.X(), p.Y(), l.Caption())
		}
	}

	bottom := sh
	if a.viewer.Staging() {
		caption := ""
		if st, ok := a.viewer.CurrentStage(); ok {
			caption = st.Title
		}
		a.ui.StageBar(a.viewer.Stage(), a.viewer.StageCount(), caption)
		bottom -= ui2d.StageBarHeight
	}
	a.drawResetButton(sw, bottom)
}

// drawResetButton places the reset control in the bottom-right corner,
// above the stage bar when it is shown.
func (a *App) drawResetButton(sw, bottom float32) {
	const pw, ph, margin = 120, 44, 8
	a.ui.BeginPanel(sw-pw-margin, bottom-ph-margin, pw, ph)
	a.ui.Row(24)
	if a.ui.Button("reset-view", 100, "Reset view") {
		a.viewer.HandleGesture(viewer.Gesture{Kind: viewer.GestureReset})
	}
	a.ui.EndPanel()
}

func (a *App) drawLoading(sw, sh float32) {
	const pw, ph = 280, 70
	a.ui.BeginPanel((sw-pw)/2, (sh-ph)/2, pw, ph)
	a.ui.Row(20)
	a.ui.LabelCentered("Loading model...", ui2d.ColorText)
	a.ui.Row(10)
	ms := time.Now().UnixMilli() % 1500
	a.ui.ProgressBar(float32(math.Abs(float64(ms)/750 - 1)))
	a.ui.EndPanel()
}

func (a *App) drawFailed(sw, sh float32) {
	pw, ph := float32(360), float32(110)
	if a.thumb.ready() {
		ph = 330
	}
	a.ui.BeginPanel((sw-pw)/2, (sh-ph)/2, pw, ph)
	if a.thumb.ready() {
		a.ui.Row(220)
		a.ui.Image(a.thumb.tex, a.thumb.width, a.thumb.height)
	}
	a.ui.Row(20)
	a.ui.LabelCentered("The 3D model could not be loaded.", ui2d.ColorError)
	a.ui.Row(28)
	if a.ui.Button("retry", 120, "Retry") {
		a.viewer.Retry()
	}
	a.ui.EndPanel()
}
