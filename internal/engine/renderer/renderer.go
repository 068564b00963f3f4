// Package renderer draws the model scene and debug lines with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/stageviewer/internal/engine/model"
	"github.com/Faultbox/stageviewer/internal/engine/shader"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor mgl32.Vec4
}

// Renderer owns the GL programs and the GPU copies of the current scene.
// IMPORTANT: create it AFTER the OpenGL context exists, and use it from the
// thread that owns the context.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram *shader.Program
	lineProgram *shader.Program

	scene  *model.Scene
	meshes map[int]*gpuMesh

	lineVAO uint32
	lineVBO uint32
}

// New initializes OpenGL and compiles the programs.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ClearColor == (mgl32.Vec4{}) {
		cfg.ClearColor = mgl32.Vec4{0.93, 0.94, 0.95, 1}
	}
	r := &Renderer{
		config: cfg,
		log:    log,
		meshes: make(map[int]*gpuMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	var err error
	if r.meshProgram, err = shader.New(meshVertexShader, meshFragmentShader); err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	if r.lineProgram, err = shader.New(lineVertexShader, lineFragmentShader); err != nil {
		r.meshProgram.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}
	r.createLineBuffers()

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases every GL resource.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.releaseScene()
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	r.meshProgram.Delete()
	r.lineProgram.Delete()
}

// Resize handles drawable size changes.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns width over height, or 1 for an empty viewport.
func (r *Renderer) Aspect() float32 {
	if r.config.Height <= 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
