package ui2d

import "fmt"

// Context is an immediate-mode UI context: widgets are declared every frame
// between Begin and End.
type Context struct {
	renderer *Renderer
	input    *InputState

	hotWidget    string
	activeWidget string

	panel   *Rect
	cursorX float32
	cursorY float32
	rowH    float32
}

// Rect is a screen rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// NewContext creates a UI context and its renderer.
func NewContext(width, height int) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return &Context{renderer: r, input: &InputState{}}, nil
}

// Close releases resources.
func (c *Context) Close() {
	c.renderer.Close()
}

// Renderer returns the underlying renderer.
func (c *Context) Renderer() *Renderer {
	return c.renderer
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the input state for the event loop to fill.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.hotWidget = ""
	c.renderer.Begin()
}

// End draws the frame.
func (c *Context) End() {
	c.renderer.End()
	c.input.EndFrame()
}

// CapturesMouse reports whether the pointer is over a widget, in which case
// mouse input should not reach the camera.
func (c *Context) CapturesMouse() bool {
	return c.hotWidget != "" || c.activeWidget != ""
}

// BeginPanel draws a panel and starts laying out rows inside it.
func (c *Context) BeginPanel(x, y, w, h float32) {
	c.panel = &Rect{x, y, w, h}
	c.renderer.DrawPanel(x, y, w, h, ColorPanelBg, ColorPanelBorder)
	c.cursorX = x + 10
	c.cursorY = y + 10
	c.rowH = 0
	if c.panel.Contains(c.input.MouseX, c.input.MouseY) {
		c.hotWidget = "panel"
	}
}

// EndPanel ends the current panel.
func (c *Context) EndPanel() {
	c.panel = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.panel == nil {
		return
	}
	c.cursorX = c.panel.X + 10
	c.cursorY += c.rowH
	if c.rowH > 0 {
		c.cursorY += 6
	}
	c.rowH = height
}

// Label draws a text line in the current row.
func (c *Context) Label(text string, color Color) {
	if c.panel == nil {
		return
	}
	_, h := c.renderer.MeasureText(text, 1)
	c.renderer.DrawText(c.cursorX, c.cursorY+(c.rowH-h)/2, text, 1, color)
}

// LabelCentered draws text centered in the current row.
func (c *Context) LabelCentered(text string, color Color) {
	if c.panel == nil {
		return
	}
	w, h := c.renderer.MeasureText(text, 1)
	c.renderer.DrawText(c.panel.X+(c.panel.W-w)/2, c.cursorY+(c.rowH-h)/2, text, 1, color)
}

// Image draws a texture filling the current row, keeping its aspect ratio.
func (c *Context) Image(tex uint32, imgW, imgH int) {
	if c.panel == nil || tex == 0 || imgW <= 0 || imgH <= 0 {
		return
	}
	maxW := c.panel.W - 20
	w := maxW
	h := w * float32(imgH) / float32(imgW)
	if h > c.rowH {
		h = c.rowH
		w = h * float32(imgW) / float32(imgH)
	}
	c.renderer.DrawImage(c.panel.X+(c.panel.W-w)/2, c.cursorY+(c.rowH-h)/2, w, h, tex)
}

// Button draws a button centered in the current row and returns true on the
// frame it is clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.panel == nil {
		return false
	}
	h := c.rowH
	if h == 0 {
		h = 28
	}
	x := c.panel.X + (c.panel.W-width)/2
	rect := Rect{x, c.cursorY, width, h}

	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false
	if hovered {
		c.hotWidget = id
		if c.input.MouseLeftPressed {
			c.activeWidget = id
			clicked = true
		}
	}
	if c.activeWidget == id && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	if c.activeWidget == id {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}
	c.renderer.DrawRect(rect.X, rect.Y, rect.W, rect.H, color)
	c.renderer.DrawRectOutline(rect.X, rect.Y, rect.W, rect.H, 1, ColorPanelBorder)

	tw, th := c.renderer.MeasureText(label, 1)
	c.renderer.DrawText(x+(width-tw)/2, rect.Y+(h-th)/2, label, 1, ColorButtonText)
	return clicked
}

// ProgressBar draws an indeterminate bar whose highlight sweeps with phase
// (0..1).
func (c *Context) ProgressBar(phase float32) {
	if c.panel == nil {
		return
	}
	x, w := c.panel.X+10, c.panel.W-20
	c.renderer.DrawRect(x, c.cursorY, w, c.rowH, ColorTrack)
	seg := w / 4
	off := (w - seg) * phase
	c.renderer.DrawRect(x+off, c.cursorY, seg, c.rowH, ColorHighlight)
}
