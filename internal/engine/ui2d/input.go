package ui2d

// InputState holds the pointer state the UI reads each frame.
type InputState struct {
	MouseX float32
	MouseY float32

	MouseLeftDown bool

	// Edges, valid for the current frame only
	MouseLeftPressed  bool
	MouseLeftReleased bool

	prevMouseLeft bool
}

// Update derives press/release edges. Call at the start of each frame after
// the raw values are set.
func (i *InputState) Update() {
	i.MouseLeftPressed = i.MouseLeftDown && !i.prevMouseLeft
	i.MouseLeftReleased = !i.MouseLeftDown && i.prevMouseLeft
	i.prevMouseLeft = i.MouseLeftDown
}

// EndFrame clears per-frame state.
func (i *InputState) EndFrame() {
	i.MouseLeftPressed = false
	i.MouseLeftReleased = false
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return Rect{x, y, w, h}.Contains(i.MouseX, i.MouseY)
}
