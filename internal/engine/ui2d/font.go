package ui2d

import (
	"image"
	"image/draw"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph    = 32
	lastGlyph     = 126
	atlasCols     = 16
	glyphFallback = '?'
)

// Font is a fixed-width ASCII atlas rendered from basicfont.Face7x13.
type Font struct {
	texture uint32
	glyphW  int
	glyphH  int
	atlasW  int
	atlasH  int
}

// NewFont rasterizes the atlas and uploads it.
func NewFont() *Font {
	atlas, gw, gh := buildAtlas()
	f := &Font{
		glyphW: gw,
		glyphH: gh,
		atlasW: atlas.Bounds().Dx(),
		atlasH: atlas.Bounds().Dy(),
	}

	gl.GenTextures(1, &f.texture)
	gl.BindTexture(gl.TEXTURE_2D, f.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(f.atlasW), int32(f.atlasH), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&atlas.Pix[0]))
	// Nearest keeps the bitmap glyphs crisp at integer scales
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return f
}

// buildAtlas draws printable ASCII into a grid of cells, white with coverage
// in alpha.
func buildAtlas() (*image.RGBA, int, int) {
	face := basicfont.Face7x13
	gw := face.Advance
	gh := face.Height
	ascent := face.Ascent

	count := lastGlyph - firstGlyph + 1
	rows := (count + atlasCols - 1) / atlasCols
	atlas := image.NewRGBA(image.Rect(0, 0, atlasCols*gw, rows*gh))
	draw.Draw(atlas, atlas.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: atlas, Src: image.White, Face: face}
	for i := 0; i < count; i++ {
		col, row := i%atlasCols, i/atlasCols
		d.Dot = fixed.P(col*gw, row*gh+ascent)
		d.DrawString(string(rune(firstGlyph + i)))
	}
	return atlas, gw, gh
}

// TextureID returns the atlas texture.
func (f *Font) TextureID() uint32 {
	return f.texture
}

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GlyphUV returns the atlas rectangle for ch. Characters outside printable
// ASCII render as '?'.
func (f *Font) GlyphUV(ch rune) (u0, v0, u1, v1 float32) {
	if ch < firstGlyph || ch > lastGlyph {
		ch = glyphFallback
	}
	i := int(ch - firstGlyph)
	col, row := i%atlasCols, i/atlasCols
	u0 = float32(col*f.glyphW) / float32(f.atlasW)
	v0 = float32(row*f.glyphH) / float32(f.atlasH)
	u1 = float32((col+1)*f.glyphW) / float32(f.atlasW)
	v1 = float32((row+1)*f.glyphH) / float32(f.atlasH)
	return
}

// MeasureText returns the size of text at scale, honoring newlines.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	lines, longest, cur := 1, 0, 0
	for _, ch := range text {
		if ch == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		longest = max(longest, cur)
	}
	return float32(longest*f.glyphW) * scale, float32(lines*f.glyphH) * scale
}

// Close releases the atlas texture.
func (f *Font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}
