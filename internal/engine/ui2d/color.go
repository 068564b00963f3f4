package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Overlay palette.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}

	ColorPanelBg      = Color{1, 1, 1, 0.92}
	ColorPanelBorder  = Color{0.75, 0.77, 0.8, 1}
	ColorButtonNormal = RGB(0x1f, 0x5f, 0x99)
	ColorButtonHover  = RGB(0x2a, 0x75, 0xb8)
	ColorButtonActive = RGB(0x16, 0x47, 0x73)
	ColorButtonText   = ColorWhite
	ColorText         = Color{0.13, 0.14, 0.16, 1}
	ColorTextDim      = Color{0.42, 0.45, 0.5, 1}
	ColorError        = RGB(0xb3, 0x26, 0x1e)
	ColorTrack        = Color{0.86, 0.88, 0.9, 1}
	ColorHighlight    = RGB(0xe8, 0x6a, 0x10)
	ColorMarker       = RGB(0xe8, 0x6a, 0x10)
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}
