package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stageviewer/internal/engine/model"
	"github.com/Faultbox/stageviewer/internal/engine/stage"
	"github.com/Faultbox/stageviewer/internal/engine/transform"
)

func assertNear(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, float64(want[i]), float64(got[i]), delta, "component %d of %v vs %v", i, want, got)
	}
}

// unitTransform maps native space onto scene space unchanged: a 2-unit
// box centered on the anchor.
func unitTransform(t *testing.T) *transform.Transform {
	t.Helper()
	tr, ok := transform.Compute(model.Bounds{Min: mgl32.Vec3{-1, 0, -1}, Max: mgl32.Vec3{1, 2, 1}})
	require.True(t, ok)
	return &tr
}

func pose(pos, target stage.Vec3) *stage.CameraPose {
	return &stage.CameraPose{Position: pos, Target: target}
}

var testStages = stage.List{
	{Number: 1},
	{Number: 2, Camera: pose(stage.Vec3{1, 2, 1}, stage.Vec3{0, 1, 0})},
	{Number: 3},
	{Number: 4, Camera: pose(stage.Vec3{100, 1, 0}, stage.Vec3{100, 1, 0})},
	{Number: 5, Camera: pose(stage.Vec3{2, 2, 0}, stage.Vec3{0, 1, 80})},
}

func TestOrbitDragKeepsDistance(t *testing.T) {
	c := NewOrbitCamera()
	d := c.Distance()
	c.HandleDrag(120, -40)
	assert.InDelta(t, float64(d), float64(c.Distance()), 1e-4)
	assert.Equal(t, DefaultPose.Target, c.Target)
}

func TestOrbitPitchClamped(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	_, pitch := c.Angles()
	assert.InDelta(t, float64(c.MaxPitch), float64(pitch), 1e-3)
}

func TestOrbitZoomClamped(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	assert.InDelta(t, float64(c.MinDistance), float64(c.Distance()), 1e-4)

	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	assert.InDelta(t, float64(c.MaxDistance), float64(c.Distance()), 1e-3)
}

func TestOrbitPanMovesBoth(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Pose()
	c.HandlePan(50, 0)
	moved := c.Target.Sub(before.Target)
	assert.Greater(t, moved.Len(), float32(0))
	assertNear(t, moved, c.Position.Sub(before.Position), 1e-5)
	assert.InDelta(t, 0, float64(moved[1]), 1e-5, "horizontal pan keeps height")
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewOrbitCamera()
	v := c.ViewMatrix()
	p := model.TransformPoint(v, c.Target)
	assert.InDelta(t, 0, float64(p[0]), 1e-5)
	assert.InDelta(t, 0, float64(p[1]), 1e-5)
	assert.Less(t, p[2], float32(0), "target is in front of the camera")
}

func TestFirstOverviewActivationIsStill(t *testing.T) {
	a := NewAnimator(NewOrbitCamera(), DefaultSettings(), nil)
	assert.False(t, a.OnStage(testStages, 1, unitTransform(t)))
	assert.False(t, a.Animating())
	assert.False(t, a.Update())
	assert.Equal(t, DefaultPose, a.Camera().Pose())
}

func TestFirstActivationSnapsToStage(t *testing.T) {
	a := NewAnimator(NewOrbitCamera(), DefaultSettings(), nil)
	require.True(t, a.OnStage(testStages, 2, unitTransform(t)))
	assert.False(t, a.Animating())
	assert.Equal(t, mgl32.Vec3{1, 2, 1}, a.Camera().Position)
}

func TestAnimatorApproachesGoal(t *testing.T) {
	a := NewAnimator(NewOrbitCamera(), DefaultSettings(), nil)
	tr := unitTransform(t)
	a.OnStage(testStages, 1, tr)

	require.True(t, a.OnStage(testStages, 2, tr))
	goal := Pose{Position: mgl32.Vec3{1, 2, 1}, Target: mgl32.Vec3{0, 1, 0}}
	assert.Equal(t, goal, a.Goal())
	assert.True(t, a.Animating())

	require.True(t, a.Update())
	start := DefaultPose.Position
	want := start.Add(goal.Position.Sub(start).Mul(0.06))
	assertNear(t, want, a.Camera().Position, 1e-5)

	frames := 1
	for a.Update() {
		frames++
		require.Less(t, frames, 1000)
	}
	assert.Greater(t, frames, 10, "approach spans many frames")
	assert.Equal(t, goal, a.Camera().Pose())
	assert.False(t, a.Animating())
}

func TestNullCameraHoldsGoal(t *testing.T) {
	a := NewAnimator(NewOrbitCamera(), DefaultSettings(), nil)
	tr := unitTransform(t)
	a.OnStage(testStages, 1, tr)
	a.OnStage(testStages, 2, tr)
	goal := a.Goal()

	assert.False(t, a.OnStage(testStages, 3, tr))
	assert.Equal(t, goal, a.Goal())
}

func TestDistanceClamp(t *testing.T) {
	tests := []struct {
		name  string
		stage int
	}{
		{"far position and target", 4},
		{"far target only", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnimator(NewOrbitCamera(), DefaultSettings(), nil)
			tr := unitTransform(t)
			a.OnStage(testStages, 1, tr)
			a.OnStage(testStages, 2, tr)
			prior := a.Goal()

			assert.False(t, a.OnStage(testStages, tt.stage, tr))
			assert.Equal(t, prior, a.Goal())
		})
	}
}

func TestNoTransformNoGoal(t *testing.T) {
	a := NewAnimator(NewOrbitCamera(), DefaultSettings(), nil)
	a.OnStage(testStages, 1, nil)
	assert.False(t, a.OnStage(testStages, 2, nil))
	assert.False(t, a.Animating())
}

func TestOverviewReturnsToDefault(t *testing.T) {
	a := NewAnimator(NewOrbitCamera(), DefaultSettings(), nil)
	tr := unitTransform(t)
	a.OnStage(testStages, 2, tr)
	require.True(t, a.OnStage(testStages, 1, tr))
	assert.Equal(t, DefaultPose, a.Goal())
}

func TestLatestGoalWins(t *testing.T) {
	a := NewAnimator(NewOrbitCamera(), DefaultSettings(), nil)
	first := Pose{Position: mgl32.Vec3{0, 3, 3}, Target: mgl32.Vec3{0, 1, 0}}
	second := Pose{Position: mgl32.Vec3{-2, 2, 0}, Target: mgl32.Vec3{0, 0.5, 0}}

	a.SetGoal(first)
	a.Update()
	a.SetGoal(second)
	assert.Equal(t, second, a.Goal())
	for i := 0; i < 1000 && a.Update(); i++ {
	}
	assert.Equal(t, second, a.Camera().Pose())
}

func TestInterruptStopsApproach(t *testing.T) {
	a := NewAnimator(NewOrbitCamera(), DefaultSettings(), nil)
	a.SetGoal(Pose{Position: mgl32.Vec3{0, 3, 3}, Target: mgl32.Vec3{0, 1, 0}})
	a.Update()
	a.Interrupt()
	held := a.Camera().Pose()
	assert.False(t, a.Update())
	assert.Equal(t, held, a.Camera().Pose())
}

func TestNewAnimatorFillsSettings(t *testing.T) {
	a := NewAnimator(NewOrbitCamera(), Settings{Default: DefaultPose}, nil)
	assert.Equal(t, DefaultSettings(), a.Settings())
}
