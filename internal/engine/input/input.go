// Package input turns SDL2 mouse, touch and keyboard events into viewer
// gestures and key presses.
package input

import (
	"math"

	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
	// Camera gestures
	EventOrbit
	EventPan
	EventZoom
	EventReset
)

// Event represents a processed input event. DX/DY carry pixel deltas for
// orbit and pan, and the zoom amount (positive zooms in) in DY for zoom.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	X, Y   float32
	DX, DY float32
}

// mouse events SDL synthesizes from touches carry this device id
const touchMouseID = math.MaxUint32

const (
	doubleTapMs = 300
	// Pinch distance deltas are normalized to the touch device; scale them
	// to roughly match one wheel notch.
	pinchScale = 12
)

// Input handles all input processing.
type Input struct {
	events []Event

	width, height int // window size, for touch coordinates

	fingers     int
	lastTap     uint32
	multiActive bool
}

// New creates a new input handler for a window of the given size.
func New(width, height int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  width,
		height: height,
	}
}

// Update polls SDL events. It returns true if the app should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.push(Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.width, i.height = int(e.Data1), int(e.Data2)
				i.push(Event{Type: EventWindowResize, Width: i.width, Height: i.height})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.push(Event{Type: EventKeyDown, Key: e.Keysym.Sym})
			}

		case *sdl.MouseMotionEvent:
			if e.Which == touchMouseID {
				continue
			}
			x, y := float32(e.X), float32(e.Y)
			i.push(Event{Type: EventMouseMove, X: x, Y: y})
			dx, dy := float32(e.XRel), float32(e.YRel)
			switch {
			case e.State&sdl.ButtonLMask() != 0:
				i.push(Event{Type: EventOrbit, X: x, Y: y, DX: dx, DY: dy})
			case e.State&(sdl.ButtonRMask()|sdl.ButtonMMask()) != 0:
				i.push(Event{Type: EventPan, X: x, Y: y, DX: dx, DY: dy})
			}

		case *sdl.MouseButtonEvent:
			if e.Which == touchMouseID || e.Button != sdl.BUTTON_LEFT {
				continue
			}
			x, y := float32(e.X), float32(e.Y)
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.push(Event{Type: EventMouseDown, X: x, Y: y})
				if e.Clicks == 2 {
					i.push(Event{Type: EventReset, X: x, Y: y})
				}
			} else {
				i.push(Event{Type: EventMouseUp, X: x, Y: y})
			}

		case *sdl.MouseWheelEvent:
			if e.Which == touchMouseID || e.Y == 0 {
				continue
			}
			dy := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			i.push(Event{Type: EventZoom, DY: dy})

		case *sdl.TouchFingerEvent:
			i.handleFinger(e)

		case *sdl.MultiGestureEvent:
			i.multiActive = true
			if e.DDist != 0 {
				i.push(Event{Type: EventZoom, DY: e.DDist * pinchScale})
			}
		}
	}
	return quit
}

func (i *Input) handleFinger(e *sdl.TouchFingerEvent) {
	x, y := e.X*float32(i.width), e.Y*float32(i.height)
	switch e.Type {
	case sdl.FINGERDOWN:
		i.fingers++
		if i.fingers == 1 {
			i.multiActive = false
			i.push(Event{Type: EventMouseMove, X: x, Y: y})
			i.push(Event{Type: EventMouseDown, X: x, Y: y})
			if i.lastTap != 0 && e.Timestamp-i.lastTap < doubleTapMs {
				i.push(Event{Type: EventReset, X: x, Y: y})
				i.lastTap = 0
			} else {
				i.lastTap = e.Timestamp
			}
		}
	case sdl.FINGERUP:
		if i.fingers > 0 {
			i.fingers--
		}
		if i.fingers == 0 {
			i.push(Event{Type: EventMouseUp, X: x, Y: y})
		}
	case sdl.FINGERMOTION:
		dx, dy := e.DX*float32(i.width), e.DY*float32(i.height)
		switch {
		case i.fingers == 1 && !i.multiActive:
			i.push(Event{Type: EventMouseMove, X: x, Y: y})
			i.push(Event{Type: EventOrbit, X: x, Y: y, DX: dx, DY: dy})
		case i.fingers == 2:
			// Each finger reports its own motion; halve so a two-finger
			// drag pans by the distance the fingers moved
			i.push(Event{Type: EventPan, X: x, Y: y, DX: dx / 2, DY: dy / 2})
		}
	}
}

func (i *Input) push(e Event) {
	i.events = append(i.events, e)
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(key sdl.Keycode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}
