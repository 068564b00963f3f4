// Package ui2d draws the viewer overlay (stage bar, labels, status panels and
// the fallback thumbnail) as batched 2D quads over the 3D scene.
package ui2d

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stageviewer/internal/engine/shader"
)

// Renderer batches solid quads, images and text for one frame.
type Renderer struct {
	screenWidth  int
	screenHeight int

	solid *shader.Program
	text  *shader.Program
	image *shader.Program

	solidVAO, solidVBO uint32
	texVAO, texVBO     uint32

	solidVertices []float32
	textVertices  []float32
	images        []imageQuad

	font *Font
}

type imageQuad struct {
	x, y, w, h float32
	tex        uint32
}

// New creates a 2D renderer. Call after the GL context exists.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		screenWidth:   width,
		screenHeight:  height,
		solidVertices: make([]float32, 0, 4096),
		textVertices:  make([]float32, 0, 4096),
	}

	var err error
	if r.solid, err = shader.New(solidVertexShader, solidFragmentShader); err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	if r.text, err = shader.New(texturedVertexShader, textFragmentShader); err != nil {
		return nil, fmt.Errorf("create text shader: %w", err)
	}
	if r.image, err = shader.New(texturedVertexShader, imageFragmentShader); err != nil {
		return nil, fmt.Errorf("create image shader: %w", err)
	}

	// pos(2) + color(4)
	r.solidVAO, r.solidVBO = newBuffers(6, []int32{2, 4})
	// pos(2) + uv(2) + color(4)
	r.texVAO, r.texVBO = newBuffers(8, []int32{2, 2, 4})

	r.font = NewFont()
	return r, nil
}

func newBuffers(stride int32, sizes []int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	offset := uintptr(0)
	for i, size := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(i), size, gl.FLOAT, false, stride*4, offset)
		gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(size) * 4
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// ScreenSize returns the current screen dimensions.
func (r *Renderer) ScreenSize() (float32, float32) {
	return float32(r.screenWidth), float32(r.screenHeight)
}

// Begin starts a new UI frame.
func (r *Renderer) Begin() {
	r.solidVertices = r.solidVertices[:0]
	r.textVertices = r.textVertices[:0]
	r.images = r.images[:0]
}

// End renders everything queued since Begin: solid quads, then images, then
// text.
func (r *Renderer) End() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := mgl32.Ortho(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)

	if len(r.solidVertices) > 0 {
		r.solid.Use()
		r.solid.SetMat4("uProjection", proj)
		stream(r.solidVAO, r.solidVBO, r.solidVertices)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.solidVertices)/6))
	}

	if len(r.images) > 0 {
		r.image.Use()
		r.image.SetMat4("uProjection", proj)
		r.image.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		var quad []float32
		for _, img := range r.images {
			quad = appendTexturedQuad(quad[:0], img.x, img.y, img.w, img.h, 0, 0, 1, 1, ColorWhite)
			gl.BindTexture(gl.TEXTURE_2D, img.tex)
			stream(r.texVAO, r.texVBO, quad)
			gl.DrawArrays(gl.TRIANGLES, 0, 6)
		}
	}

	if len(r.textVertices) > 0 {
		r.text.Use()
		r.text.SetMat4("uProjection", proj)
		r.text.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.font.TextureID())
		stream(r.texVAO, r.texVBO, r.textVertices)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.textVertices)/8))
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func stream(vao, vbo uint32, data []float32) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STREAM_DRAW)
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	r.font.Close()
	gl.DeleteVertexArrays(1, &r.solidVAO)
	gl.DeleteBuffers(1, &r.solidVBO)
	gl.DeleteVertexArrays(1, &r.texVAO)
	gl.DeleteBuffers(1, &r.texVBO)
	r.solid.Delete()
	r.text.Delete()
	r.image.Delete()
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(x, y, w, h float32, c Color) {
	r.solidVertices = append(r.solidVertices,
		x, y, c.R, c.G, c.B, c.A,
		x+w, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,
		x, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,
		x, y+h, c.R, c.G, c.B, c.A,
	)
}

// DrawRectOutline draws a rectangle outline.
func (r *Renderer) DrawRectOutline(x, y, w, h, thickness float32, c Color) {
	r.DrawRect(x, y, w, thickness, c)
	r.DrawRect(x, y+h-thickness, w, thickness, c)
	r.DrawRect(x, y+thickness, thickness, h-thickness*2, c)
	r.DrawRect(x+w-thickness, y+thickness, thickness, h-thickness*2, c)
}

// DrawPanel draws a panel with a 1px border.
func (r *Renderer) DrawPanel(x, y, w, h float32, bg, border Color) {
	r.DrawRect(x, y, w, h, bg)
	r.DrawRectOutline(x, y, w, h, 1, border)
}

// DrawText draws text with its top-left corner at x, y.
func (r *Renderer) DrawText(x, y float32, text string, scale float32, c Color) {
	gw, gh := r.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, ch := range text {
		if ch == '\n' {
			curX = x
			y += charH
			continue
		}
		u0, v0, u1, v1 := r.font.GlyphUV(ch)
		r.textVertices = appendTexturedQuad(r.textVertices, curX, y, charW, charH, u0, v0, u1, v1, c)
		curX += charW
	}
}

// MeasureText returns the width and height of rendered text.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	return r.font.MeasureText(text, scale)
}

// DrawImage queues a texture uploaded with UploadImage.
func (r *Renderer) DrawImage(x, y, w, h float32, tex uint32) {
	if tex == 0 {
		return
	}
	r.images = append(r.images, imageQuad{x, y, w, h, tex})
}

// UploadImage creates a texture from img. Release it with DeleteImage.
func UploadImage(img *image.RGBA) uint32 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[img.PixOffset(b.Min.X, b.Min.Y)]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// DeleteImage releases a texture from UploadImage.
func DeleteImage(tex uint32) {
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}

// appendTexturedQuad appends two triangles; v0 is the top edge.
func appendTexturedQuad(dst []float32, x, y, w, h, u0, v0, u1, v1 float32, c Color) []float32 {
	return append(dst,
		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,
		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, u0, v1, c.R, c.G, c.B, c.A,
	)
}

const solidVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

const texturedVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

uniform mat4 uProjection;

out vec2 vTexCoord;
out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vTexCoord = aTexCoord;
	vColor = aColor;
}
`

const textFragmentShader = `
#version 410 core

uniform sampler2D uTexture;

in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;

void main() {
	float alpha = texture(uTexture, vTexCoord).a;
	FragColor = vec4(vColor.rgb, vColor.a * alpha);
}
`

const imageFragmentShader = `
#version 410 core

uniform sampler2D uTexture;

in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = texture(uTexture, vTexCoord) * vColor;
}
`
