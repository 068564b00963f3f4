package app

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/stageviewer/internal/engine/input"
	"github.com/Faultbox/stageviewer/internal/viewer"
)

// handleEvents routes this frame's input to the overlay, the camera and the
// stage controls. Pointer gestures that start over an overlay widget stay
// with the overlay.
func (a *App) handleEvents() {
	ui := a.ui.Input()
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			dw, dh := a.window.DrawableSize()
			a.renderer.Resize(dw, dh)
			a.ui.Resize(e.Width, e.Height)

		case input.EventKeyDown:
			a.handleKey(e.Key)

		case input.EventMouseMove:
			ui.MouseX, ui.MouseY = e.X, e.Y
		case input.EventMouseDown:
			ui.MouseX, ui.MouseY = e.X, e.Y
			ui.MouseLeftDown = true
		case input.EventMouseUp:
			ui.MouseLeftDown = false

		case input.EventOrbit:
			if !a.ui.CapturesMouse() {
				a.viewer.HandleGesture(viewer.Gesture{Kind: viewer.GestureOrbit, DX: e.DX, DY: e.DY})
			}
		case input.EventPan:
			if !a.ui.CapturesMouse() {
				a.viewer.HandleGesture(viewer.Gesture{Kind: viewer.GesturePan, DX: e.DX, DY: e.DY})
			}
		case input.EventZoom:
			a.viewer.HandleGesture(viewer.Gesture{Kind: viewer.GestureZoom, DY: e.DY})
		case input.EventReset:
			if !a.ui.CapturesMouse() {
				a.viewer.HandleGesture(viewer.Gesture{Kind: viewer.GestureReset})
			}
		}
	}
}

func (a *App) handleKey(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE:
		a.running = false
	case sdl.K_RIGHT, sdl.K_n:
		a.viewer.Next()
	case sdl.K_LEFT, sdl.K_p:
		a.viewer.Prev()
	case sdl.K_HOME, sdl.K_o:
		a.viewer.Overview()
	case sdl.K_r:
		a.viewer.HandleGesture(viewer.Gesture{Kind: viewer.GestureReset})
	case sdl.K_F5:
		a.viewer.Retry()
	case sdl.K_b:
		a.showBounds = !a.showBounds
	case sdl.K_F12:
		a.captureScreenshot()
	}
}

func (a *App) captureScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h, a.viewer.Stage())
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}
