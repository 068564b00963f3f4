package viewer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/stageviewer/internal/engine/camera"
	"github.com/Faultbox/stageviewer/internal/engine/labels"
	"github.com/Faultbox/stageviewer/internal/engine/layers"
	"github.com/Faultbox/stageviewer/internal/engine/model"
	"github.com/Faultbox/stageviewer/internal/engine/navigation"
	"github.com/Faultbox/stageviewer/internal/engine/stage"
	"github.com/Faultbox/stageviewer/internal/engine/transform"
)

// Options configure a Viewer.
type Options struct {
	Loader       Loader
	Camera       camera.Settings
	GhostOpacity float32
	// StartStage is the stage shown first; out-of-range values mean 1.
	StartStage int
	Log        *zap.Logger
}

// Viewer is the stage-synchronized model viewer. Except for PostStage, all
// methods must be called from the render thread.
type Viewer struct {
	loader       Loader
	log          *zap.Logger
	ghostOpacity float32
	startStage   int

	cam  *camera.OrbitCamera
	anim *camera.Animator
	nav  *navigation.Controller

	stages stage.List

	ref        string
	status     Status
	err        error
	scene      *model.Scene
	applier    *layers.Applier
	tr         transform.Transform
	hasTr      bool
	resolution layers.Resolution
	labels     []labels.Projected

	gen      uint64
	cancel   context.CancelFunc
	results  chan loadResult
	requests chan int

	// external suppresses stage-change callbacks for outside requests.
	external bool

	onStageChange []func(stage int)
	onTransition  []func(stage int)
	onLoaded      []func()
	onError       []func(err error)
}

// New creates a viewer. Nothing is loaded until Load is called.
func New(opts Options) *Viewer {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	cam := camera.NewOrbitCamera()
	if opts.Camera.Default == (camera.Pose{}) {
		opts.Camera.Default = camera.DefaultPose
	}
	cam.SetPose(opts.Camera.Default)

	v := &Viewer{
		loader:       opts.Loader,
		log:          opts.Log,
		ghostOpacity: opts.GhostOpacity,
		startStage:   opts.StartStage,
		cam:          cam,
		anim:         camera.NewAnimator(cam, opts.Camera, opts.Log.Named("camera")),
		results:      make(chan loadResult, 4),
		requests:     make(chan int, 16),
	}
	v.nav = v.newNav(0, 1)
	return v
}

// newNav creates the controller. Every transition replays layers, then
// moves the camera, then swaps labels, all for the same stage number.
func (v *Viewer) newNav(count, start int) *navigation.Controller {
	nav := navigation.New(count, start)
	nav.Subscribe(v.applyLayers)
	nav.Subscribe(v.applyCamera)
	nav.Subscribe(v.applyLabels)
	nav.Subscribe(v.notifyStage)
	return nav
}

// OnStageChange registers a callback for internal stage transitions.
func (v *Viewer) OnStageChange(fn func(stage int)) {
	v.onStageChange = append(v.onStageChange, fn)
}

// OnTransition registers a callback for every stage transition, including
// ones requested from outside.
func (v *Viewer) OnTransition(fn func(stage int)) {
	v.onTransition = append(v.onTransition, fn)
}

// OnLoaded registers a callback for successful model loads.
func (v *Viewer) OnLoaded(fn func()) {
	v.onLoaded = append(v.onLoaded, fn)
}

// OnError registers a callback for failed model loads.
func (v *Viewer) OnError(fn func(err error)) {
	v.onError = append(v.onError, fn)
}

// SetStages replaces the stage list. The active stage is kept when it is
// still in range and is otherwise reset to the overview; its state is then
// re-applied. An empty list turns the viewer into a plain orbit viewer.
func (v *Viewer) SetStages(list stage.List) {
	v.stages = list
	if v.nav.Count() == 0 && list.Count() > 0 {
		// First stage list: honor the configured start stage.
		v.nav = v.newNav(list.Count(), v.startStage)
	} else {
		v.nav.SetCount(list.Count())
	}

	cur := v.nav.Current()
	v.log.Debug("stages set", zap.Int("count", list.Count()), zap.Int("stage", cur))
	v.applyLayers(cur)
	v.applyCamera(cur)
	v.applyLabels(cur)
}

// Load starts loading ref in the background. Any previous model is
// disposed first. An empty ref shows placeholder geometry without staging.
func (v *Viewer) Load(ref string) {
	v.discard()
	v.ref = ref

	if ref == "" {
		v.install(model.Placeholder(), true)
		return
	}
	if v.loader == nil {
		v.fail(fmt.Errorf("loading %s: no loader configured", ref))
		return
	}

	v.status = StatusLoading
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	gen := v.gen
	loader := v.loader
	v.log.Info("loading model", zap.String("ref", ref))

	go func() {
		s, err := loader.LoadScene(ctx, ref)
		select {
		case v.results <- loadResult{gen: gen, ref: ref, scene: s, err: err}:
		case <-ctx.Done():
		}
	}()
}

// SetModel switches to another model reference.
func (v *Viewer) SetModel(ref string) {
	v.Load(ref)
}

// Retry reloads the current reference after a failure.
func (v *Viewer) Retry() {
	if v.status != StatusFailed {
		return
	}
	v.log.Info("retrying model load", zap.String("ref", v.ref))
	v.Load(v.ref)
}

// Close disposes the model and stops any pending load.
func (v *Viewer) Close() {
	v.discard()
	v.status = StatusIdle
}

// Tick runs once per rendered frame: it installs finished loads, applies
// queued stage requests and advances the camera. It never blocks.
func (v *Viewer) Tick() {
	v.drainResults()
	v.drainRequests()
	v.anim.Update()
}

func (v *Viewer) drainResults() {
	for {
		select {
		case r := <-v.results:
			if r.gen != v.gen {
				v.log.Debug("discarding stale load", zap.String("ref", r.ref))
				continue
			}
			if v.cancel != nil {
				v.cancel()
				v.cancel = nil
			}
			if r.err != nil {
				v.fail(r.err)
				continue
			}
			v.install(r.scene.Clone(), false)
		default:
			return
		}
	}
}

func (v *Viewer) drainRequests() {
	for {
		select {
		case n := <-v.requests:
			v.RequestStage(n)
		default:
			return
		}
	}
}

func (v *Viewer) install(clone *model.Scene, placeholder bool) {
	v.scene = clone
	if placeholder {
		v.status = StatusPlaceholder
		v.anim.Snap(v.anim.Settings().Default)
		return
	}

	if tr, ok := transform.Compute(clone.Bounds()); ok {
		tr.Apply(clone)
		v.tr = tr
		v.hasTr = true
	} else {
		v.log.Warn("model has degenerate bounds, stage sync disabled", zap.String("ref", v.ref))
	}
	v.applier = layers.NewApplier(clone, v.ghostOpacity)
	v.status = StatusReady

	// Open framed on the default pose, then bring the model to the active
	// stage without a fly-in.
	v.anim.Snap(v.anim.Settings().Default)
	v.anim.ResetActivation()
	cur := v.nav.Current()
	v.applyLayers(cur)
	v.applyCamera(cur)
	v.applyLabels(cur)

	v.log.Info("model ready",
		zap.String("ref", v.ref),
		zap.Int("meshes", len(clone.Meshes())),
		zap.Bool("normalized", v.hasTr),
		zap.Float32("scale", v.tr.Scale))
	for _, fn := range v.onLoaded {
		fn()
	}
}

func (v *Viewer) fail(err error) {
	v.status = StatusFailed
	v.err = err
	v.log.Error("model load failed", zap.String("ref", v.ref), zap.Error(err))
	for _, fn := range v.onError {
		fn(err)
	}
}

// discard drops the current model and invalidates in-flight loads.
func (v *Viewer) discard() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.gen++
	if v.scene != nil {
		v.scene.Dispose()
		v.scene = nil
	}
	v.applier = nil
	v.tr = transform.Transform{}
	v.hasTr = false
	v.resolution = layers.Resolution{}
	v.labels = nil
	v.err = nil
}

func (v *Viewer) sceneTransform() *transform.Transform {
	if !v.hasTr {
		return nil
	}
	tr := v.tr
	return &tr
}

func (v *Viewer) applyLayers(n int) {
	if v.applier == nil {
		return
	}
	if len(v.stages) == 0 {
		v.applier.Reset()
		v.resolution = layers.Resolution{}
		return
	}
	r, ok := layers.Resolve(v.scene.Meshes(), v.stages, n)
	if !ok {
		v.log.Debug("no stage record, layers unchanged", zap.Int("stage", n))
		return
	}
	v.applier.Apply(r)
	v.resolution = r
}

func (v *Viewer) applyCamera(n int) {
	if len(v.stages) == 0 || v.status == StatusPlaceholder {
		return
	}
	v.anim.OnStage(v.stages, n, v.sceneTransform())
}

func (v *Viewer) applyLabels(n int) {
	v.labels = labels.ForStage(v.stages, n, v.sceneTransform())
}

func (v *Viewer) notifyStage(n int) {
	for _, fn := range v.onTransition {
		fn(n)
	}
	if v.external {
		return
	}
	for _, fn := range v.onStageChange {
		fn(n)
	}
}
