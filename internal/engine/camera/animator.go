package camera

import (
	"go.uber.org/zap"

	"github.com/Faultbox/stageviewer/internal/engine/stage"
	"github.com/Faultbox/stageviewer/internal/engine/transform"
)

// Settings tune the stage camera animation.
type Settings struct {
	Default Pose

	// Damping is the fraction of the remaining distance covered per frame.
	Damping float32
	// Epsilon is the distance at which the approach snaps to the goal.
	Epsilon float32
	// MaxGoalDistance discards stage poses farther than this from the
	// model anchor, in scene units.
	MaxGoalDistance float32
}

// DefaultSettings returns the stock animation tuning.
func DefaultSettings() Settings {
	return Settings{
		Default:         DefaultPose,
		Damping:         0.06,
		Epsilon:         0.01,
		MaxGoalDistance: 6,
	}
}

// Animator moves an OrbitCamera toward per-stage goals, one step per frame.
//
// Stage changes only post a goal; Update drains the latest posted goal and
// steps toward it. A goal posted mid-approach replaces the old one and the
// camera redirects smoothly.
type Animator struct {
	cam      *OrbitCamera
	settings Settings
	log      *zap.Logger

	goal      Pose
	pending   *Pose
	animating bool
	activated bool
}

// NewAnimator creates an animator driving cam.
func NewAnimator(cam *OrbitCamera, settings Settings, log *zap.Logger) *Animator {
	def := DefaultSettings()
	if settings.Damping <= 0 || settings.Damping > 1 {
		settings.Damping = def.Damping
	}
	if settings.Epsilon <= 0 {
		settings.Epsilon = def.Epsilon
	}
	if settings.MaxGoalDistance <= 0 {
		settings.MaxGoalDistance = def.MaxGoalDistance
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Animator{
		cam:      cam,
		settings: settings,
		log:      log,
		goal:     cam.Pose(),
	}
}

// Camera returns the driven camera.
func (a *Animator) Camera() *OrbitCamera {
	return a.cam
}

// Settings returns the active tuning.
func (a *Animator) Settings() Settings {
	return a.settings
}

// OnStage derives the goal for a stage change and reports whether one was
// posted. tr is nil while no model transform exists.
//
// The first activation after ResetActivation is not animated: the overview
// keeps the default framing and any other stage snaps to its pose.
func (a *Animator) OnStage(stages stage.List, active int, tr *transform.Transform) bool {
	first := !a.activated
	a.activated = true

	if active == stage.Overview {
		if first {
			return false
		}
		a.SetGoal(a.settings.Default)
		return true
	}

	if tr == nil {
		return false
	}
	st, ok := stages.Find(active)
	if !ok || st.Camera == nil {
		return false
	}

	goal := Pose{
		Position: tr.ToScene(st.Camera.Position.Vec()),
		Target:   tr.ToScene(st.Camera.Target.Vec()),
	}
	if !a.withinReach(goal) {
		a.log.Debug("stage camera out of range, ignored",
			zap.Int("stage", active),
			zap.Float32("position_distance", goal.Position.Sub(transform.Anchor).Len()),
			zap.Float32("target_distance", goal.Target.Sub(transform.Anchor).Len()))
		return false
	}

	if first {
		a.Snap(goal)
		return true
	}
	a.SetGoal(goal)
	return true
}

func (a *Animator) withinReach(p Pose) bool {
	limit := a.settings.MaxGoalDistance
	return p.Position.Sub(transform.Anchor).Len() <= limit &&
		p.Target.Sub(transform.Anchor).Len() <= limit
}

// SetGoal posts a new goal. Only the latest posted goal is kept until the
// next Update.
func (a *Animator) SetGoal(p Pose) {
	a.pending = &p
}

// Reset posts the default pose as the goal.
func (a *Animator) Reset() {
	a.SetGoal(a.settings.Default)
}

// Snap moves the camera to p without animation.
func (a *Animator) Snap(p Pose) {
	a.pending = nil
	a.animating = false
	a.goal = p
	a.cam.SetPose(p)
}

// Interrupt abandons the current approach, leaving the camera where it is.
func (a *Animator) Interrupt() {
	a.pending = nil
	a.animating = false
}

// ResetActivation marks the next OnStage call as the first one. Call it
// whenever a new model is loaded.
func (a *Animator) ResetActivation() {
	a.activated = false
}

// Goal returns the most recently posted goal.
func (a *Animator) Goal() Pose {
	if a.pending != nil {
		return *a.pending
	}
	return a.goal
}

// Animating reports whether the camera is still approaching a goal.
func (a *Animator) Animating() bool {
	return a.pending != nil || a.animating
}

// Update advances the camera one frame toward the goal and reports whether
// the camera moved.
func (a *Animator) Update() bool {
	if a.pending != nil {
		a.goal = *a.pending
		a.pending = nil
		a.animating = true
	}
	if !a.animating {
		return false
	}

	pos, target := a.cam.Position, a.cam.Target
	eps := a.settings.Epsilon
	if pos.Sub(a.goal.Position).Len() < eps && target.Sub(a.goal.Target).Len() < eps {
		a.cam.SetPose(a.goal)
		a.animating = false
		return true
	}

	k := a.settings.Damping
	a.cam.Position = pos.Add(a.goal.Position.Sub(pos).Mul(k))
	a.cam.Target = target.Add(a.goal.Target.Sub(target).Mul(k))
	return true
}
