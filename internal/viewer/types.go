// Package viewer composes model loading, stage navigation, layer
// visibility, camera animation and labels into one render-thread object.
package viewer

import (
	"context"

	"github.com/Faultbox/stageviewer/internal/engine/model"
)

// Status is the load state of the current model.
type Status int

const (
	// StatusIdle means no model was requested yet or the viewer is closed.
	StatusIdle Status = iota
	// StatusLoading shows a neutral loading placeholder.
	StatusLoading
	// StatusReady means the model is loaded and staging is live.
	StatusReady
	// StatusFailed shows the 2D fallback with a retry action.
	StatusFailed
	// StatusPlaceholder renders placeholder geometry without staging.
	StatusPlaceholder
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	case StatusPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// GestureKind identifies a user camera gesture.
type GestureKind int

const (
	GestureOrbit GestureKind = iota
	GestureZoom
	GesturePan
	// GestureReset is a double click, double tap or the reset button.
	GestureReset
)

// Gesture is a device-independent camera input. DX and DY are pixel deltas
// for orbit and pan; DY is the wheel or pinch amount for zoom.
type Gesture struct {
	Kind GestureKind
	DX   float32
	DY   float32
}

// Loader produces parsed scenes. Returned scenes may be shared with other
// viewers; the viewer clones them before mutating.
type Loader interface {
	LoadScene(ctx context.Context, ref string) (*model.Scene, error)
}

type loadResult struct {
	gen   uint64
	ref   string
	scene *model.Scene
	err   error
}
