package ui2d

import "fmt"

const markerSize = 8

// StageBarHeight is the height of the strip drawn by StageBar.
const StageBarHeight = 56

// StageBar draws the stage strip along the bottom edge: one pip per stage,
// the active one highlighted, with the caption above.
func (c *Context) StageBar(active, count int, caption string) {
	if count <= 0 {
		return
	}
	sw, sh := c.renderer.ScreenSize()
	const pip, gap = 14, 6
	y := sh - StageBarHeight

	c.renderer.DrawRect(0, y, sw, StageBarHeight, ColorPanelBg)
	c.renderer.DrawRect(0, y, sw, 1, ColorPanelBorder)

	title := fmt.Sprintf("Stage %d of %d", active, count)
	if caption != "" {
		title += "  " + caption
	}
	c.renderer.DrawText(12, y+8, title, 1, ColorText)

	total := float32(count)*(pip+gap) - gap
	x := (sw - total) / 2
	for i := 1; i <= count; i++ {
		color := ColorTrack
		if i == active {
			color = ColorHighlight
		} else if i < active {
			color = ColorButtonNormal
		}
		c.renderer.DrawRect(x, y+32, pip, pip, color)
		x += pip + gap
	}
}

// Marker draws a stage label: a square pin at the projected point and a
// caption box to its right.
func (c *Context) Marker(x, y float32, caption string) {
	c.renderer.DrawRect(x-markerSize/2, y-markerSize/2, markerSize, markerSize, ColorMarker)
	c.renderer.DrawRectOutline(x-markerSize/2, y-markerSize/2, markerSize, markerSize, 1, ColorWhite)
	if caption == "" {
		return
	}
	w, h := c.renderer.MeasureText(caption, 1)
	bx, by := x+markerSize, y-h/2-4
	c.renderer.DrawPanel(bx, by, w+10, h+8, ColorPanelBg, ColorPanelBorder)
	c.renderer.DrawText(bx+5, by+4, caption, 1, ColorText)
}

// Hint draws dim single-line text at the top-left corner.
func (c *Context) Hint(text string) {
	c.renderer.DrawText(12, 12, text, 1, ColorTextDim)
}

// Tooltip draws a small caption box just below and right of the pointer.
func (c *Context) Tooltip(text string) {
	if text == "" {
		return
	}
	x, y := c.input.MouseX+14, c.input.MouseY+18
	w, h := c.renderer.MeasureText(text, 1)
	c.renderer.DrawPanel(x, y, w+10, h+8, ColorPanelBg, ColorHighlight)
	c.renderer.DrawText(x+5, y+4, text, 1, ColorText)
}
