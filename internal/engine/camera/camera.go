// Package camera provides the orbit camera and the stage camera animator.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Pose is a camera position and the point it orbits and looks at.
type Pose struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// DefaultPose frames the normalized model from above and to the side.
var DefaultPose = Pose{
	Position: mgl32.Vec3{3, 2.5, 3},
	Target:   mgl32.Vec3{0, 1, 0},
}

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3

	// Projection
	FOV  float32 // vertical, degrees
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32
}

// NewOrbitCamera creates an orbit camera on DefaultPose.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Position:        DefaultPose.Position,
		Target:          DefaultPose.Target,
		FOV:             45,
		Near:            0.01,
		Far:             100,
		MinDistance:     0.5,
		MaxDistance:     20,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.0015,
	}
}

// Distance returns the distance between the camera and its target.
func (c *OrbitCamera) Distance() float32 {
	return c.Position.Sub(c.Target).Len()
}

// Angles returns yaw and pitch of the camera around its target, in radians.
func (c *OrbitCamera) Angles() (yaw, pitch float32) {
	off := c.Position.Sub(c.Target)
	d := off.Len()
	if d == 0 {
		return 0, 0
	}
	yaw = math32.Atan2(off[0], off[2])
	pitch = math32.Asin(mgl32.Clamp(off[1]/d, -1, 1))
	return yaw, pitch
}

func (c *OrbitCamera) place(yaw, pitch, dist float32) {
	cp := math32.Cos(pitch)
	c.Position = c.Target.Add(mgl32.Vec3{
		dist * cp * math32.Sin(yaw),
		dist * math32.Sin(pitch),
		dist * cp * math32.Cos(yaw),
	})
}

// HandleDrag orbits the camera based on a pointer drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	yaw, pitch := c.Angles()
	yaw -= deltaX * c.DragSensitivity
	pitch += deltaY * c.DragSensitivity
	pitch = mgl32.Clamp(pitch, c.MinPitch, c.MaxPitch)
	c.place(yaw, pitch, c.Distance())
}

// HandleZoom moves the camera toward (positive delta) or away from its
// target.
func (c *OrbitCamera) HandleZoom(delta float32) {
	dist := c.Distance()
	dist -= delta * dist * c.ZoomSensitivity
	dist = mgl32.Clamp(dist, c.MinDistance, c.MaxDistance)
	yaw, pitch := c.Angles()
	c.place(yaw, pitch, dist)
}

// HandlePan slides camera and target along the view plane. Speed scales
// with distance for a consistent feel.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	forward := c.Target.Sub(c.Position)
	if forward.Len() == 0 {
		return
	}
	forward = forward.Normalize()
	right := forward.Cross(worldUp)
	if right.Len() < 1e-6 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up := right.Cross(forward).Normalize()

	speed := c.Distance() * c.PanSensitivity
	move := right.Mul(-deltaX * speed).Add(up.Mul(deltaY * speed))
	c.Position = c.Position.Add(move)
	c.Target = c.Target.Add(move)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, worldUp)
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Pose returns the current camera pose.
func (c *OrbitCamera) Pose() Pose {
	return Pose{Position: c.Position, Target: c.Target}
}

// SetPose moves the camera to p immediately.
func (c *OrbitCamera) SetPose(p Pose) {
	c.Position = p.Position
	c.Target = p.Target
}
