package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/stageviewer/internal/engine/lighting"
	"github.com/Faultbox/stageviewer/internal/engine/model"
)

// Key light from high in the south-west.
var lightDir = lighting.LightDirection(215, 55)

type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// DrawScene renders s from the given camera. Opaque meshes draw first with
// depth writes; blended meshes follow back to front, each honoring its
// material's depth-write flag. A new scene pointer replaces the GPU buffers.
func (r *Renderer) DrawScene(s *model.Scene, view, proj mgl32.Mat4, eye mgl32.Vec3) {
	if s != r.scene {
		r.upload(s)
	}
	if s == nil {
		return
	}

	world := s.ModelMatrix()
	opaque, blended := s.DrawOrder(world, eye)
	if len(opaque)+len(blended) == 0 {
		return
	}

	p := r.meshProgram
	p.Use()
	p.SetMat4("uViewProj", proj.Mul4(view))
	p.SetMat4("uModel", world)
	p.SetVec3("uEye", eye)
	p.SetVec3("uLightDir", lightDir)

	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, m := range opaque {
		r.drawMesh(m)
	}

	if len(blended) > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		for _, m := range blended {
			gl.DepthMask(m.Material.DepthWrite)
			r.drawMesh(m)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (r *Renderer) drawMesh(m *model.Mesh) {
	g := r.meshes[m.ID]
	if g == nil || g.indexCount == 0 {
		return
	}
	c := m.Material.Color
	r.meshProgram.SetVec4("uColor", mgl32.Vec4{c[0], c[1], c[2], m.Material.Opacity})
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
}

func (r *Renderer) upload(s *model.Scene) {
	r.releaseScene()
	r.scene = s
	if s == nil {
		return
	}
	for _, m := range s.Meshes() {
		if len(m.Positions) == 0 || len(m.Indices) == 0 {
			continue
		}
		r.meshes[m.ID] = uploadMesh(m)
	}
	r.log.Debug("scene uploaded", zap.String("scene", s.Name), zap.Int("meshes", len(r.meshes)))
}

// uploadMesh interleaves position and normal into one buffer.
func uploadMesh(m *model.Mesh) *gpuMesh {
	vertices := make([]float32, 0, len(m.Positions)*6)
	for i, p := range m.Positions {
		n := mgl32.Vec3{0, 1, 0}
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		vertices = append(vertices, p[0], p[1], p[2], n[0], n[1], n[2])
	}

	g := &gpuMesh{indexCount: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g
}

func (r *Renderer) releaseScene() {
	for id, g := range r.meshes {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		delete(r.meshes, id)
	}
	r.scene = nil
}
