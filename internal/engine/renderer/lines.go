package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

func (r *Renderer) createLineBuffers() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// DrawLines draws a line list given as [x, y, z] per endpoint in world space.
// Lines are drawn over the scene without depth testing.
func (r *Renderer) DrawLines(vertices []float32, color mgl32.Vec4, view, proj mgl32.Mat4) {
	if len(vertices) < 6 {
		return
	}
	p := r.lineProgram
	p.Use()
	p.SetMat4("uViewProj", proj.Mul4(view))
	p.SetVec4("uColor", color)

	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Enable(gl.DEPTH_TEST)
}
