// Package app runs the interactive viewer: window, render loop, input and
// the optional step-list sync server.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/stageviewer/internal/assets"
	"github.com/Faultbox/stageviewer/internal/config"
	"github.com/Faultbox/stageviewer/internal/engine/camera"
	"github.com/Faultbox/stageviewer/internal/engine/debug"
	"github.com/Faultbox/stageviewer/internal/engine/input"
	"github.com/Faultbox/stageviewer/internal/engine/renderer"
	"github.com/Faultbox/stageviewer/internal/engine/stage"
	"github.com/Faultbox/stageviewer/internal/engine/ui2d"
	"github.com/Faultbox/stageviewer/internal/engine/window"
	"github.com/Faultbox/stageviewer/internal/syncserver"
	"github.com/Faultbox/stageviewer/internal/viewer"
)

// App is the viewer application instance.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	ui       *ui2d.Context
	input    *input.Input

	assets  *assets.Manager
	viewer  *viewer.Viewer
	watcher *stage.Watcher
	sync    *syncserver.Server

	screenshots *debug.ScreenshotCapture
	showBounds  bool
	hovered     string

	thumb thumbnail
}

// New creates the window and GL resources, then starts loading the model.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		cfg:         cfg,
		log:         log,
		screenshots: debug.NewScreenshotCapture("screenshots", ""),
	}

	if err := a.initAssets(); err != nil {
		return nil, err
	}
	a.initViewer()

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    4,
	}, log.Named("window"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer AFTER window, since the OpenGL context must exist
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh}, log.Named("renderer"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := a.window.Size()
	a.ui, err = ui2d.NewContext(w, h)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}
	a.input = input.New(w, h)

	if err := a.initStages(); err != nil {
		a.Close()
		return nil, err
	}
	if cfg.Sync.Enabled {
		if err := a.initSync(); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.viewer.Load(cfg.Viewer.Model)
	log.Info("viewer initialized")
	return a, nil
}

func (a *App) initAssets() error {
	opts := assets.Options{
		HTTPTimeout: a.cfg.Assets.HTTPTimeout,
		Log:         a.log.Named("assets"),
	}
	if addr := a.cfg.Assets.ValkeyAddr; addr != "" {
		remote, err := assets.NewValkeyCache(addr, a.cfg.Assets.ValkeyTTL)
		if err != nil {
			// The shared cache only saves downloads; run without it.
			a.log.Warn("valkey cache unavailable", zap.String("addr", addr), zap.Error(err))
		} else {
			opts.Remote = remote
		}
	}
	a.assets = assets.NewManager(opts)
	return nil
}

func (a *App) initViewer() {
	cc := a.cfg.Camera
	a.viewer = viewer.New(viewer.Options{
		Loader: a.assets,
		Camera: camera.Settings{
			Default: camera.Pose{
				Position: mgl32.Vec3(cc.DefaultPosition),
				Target:   mgl32.Vec3(cc.DefaultTarget),
			},
			Damping:         cc.Damping,
			Epsilon:         cc.Epsilon,
			MaxGoalDistance: cc.MaxGoalDistance,
		},
		GhostOpacity: a.cfg.Layers.GhostOpacity,
		StartStage:   a.cfg.Viewer.StartStage,
		Log:          a.log.Named("viewer"),
	})
	cam := a.viewer.Camera()
	cam.FOV = cc.FOV
	cam.MinDistance = cc.MinDistance
	cam.MaxDistance = cc.MaxDistance

	a.viewer.OnTransition(a.stageChanged)
	a.viewer.OnStageChange(func(n int) {
		a.log.Debug("stage changed locally", zap.Int("stage", n))
	})
	a.viewer.OnLoaded(func() {
		a.log.Info("model ready", zap.String("ref", a.viewer.Ref()))
	})
	a.viewer.OnError(func(err error) {
		a.log.Warn("model failed to load", zap.Error(err))
		a.thumb.request(a.assets, a.cfg.Viewer.Thumbnail, a.log)
	})
}

func (a *App) initStages() error {
	path := a.cfg.Viewer.Stages
	if path == "" {
		return nil
	}
	list, err := stage.Load(path)
	if err != nil {
		return fmt.Errorf("loading stages: %w", err)
	}
	a.viewer.SetStages(list)

	if a.cfg.Viewer.WatchStages {
		a.watcher, err = stage.Watch(path, a.log.Named("stages"))
		if err != nil {
			a.log.Warn("stage file not watched", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

func (a *App) initSync() error {
	a.sync = syncserver.New(func(n int) { a.viewer.PostStage(n) }, a.log.Named("sync"))
	addr, err := a.sync.Start(a.cfg.Sync.Listen)
	if err != nil {
		return fmt.Errorf("starting sync server: %w", err)
	}
	a.sync.Publish(a.viewer.Stage(), a.viewer.StageCount())
	a.log.Info("sync server listening", zap.String("addr", addr))
	return nil
}

// stageChanged runs on the render thread for every transition, including
// ones requested by sync clients, so all clients see the same stage.
func (a *App) stageChanged(n int) {
	if a.sync != nil {
		a.sync.Publish(n, a.viewer.StageCount())
	}
	if a.window != nil {
		a.window.SetTitle(a.title())
	}
}

func (a *App) title() string {
	if !a.viewer.Staging() {
		return a.cfg.Window.Title
	}
	return fmt.Sprintf("%s - stage %d/%d", a.cfg.Window.Title, a.viewer.Stage(), a.viewer.StageCount())
}

// Run starts the render loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true
	a.window.SetTitle(a.title())

	var frameBudget time.Duration
	if a.cfg.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Window.FPSLimit)
	}
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop")
	for a.running {
		frameStart := time.Now()

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Update viewer state
		a.update()

		// 3. Render
		a.render()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	return nil
}

func (a *App) update() {
	if a.watcher != nil {
		select {
		case list := <-a.watcher.Updates():
			a.log.Info("stage file reloaded", zap.Int("count", list.Count()))
			a.viewer.SetStages(list)
			if a.sync != nil {
				a.sync.Publish(a.viewer.Stage(), a.viewer.StageCount())
			}
			a.window.SetTitle(a.title())
		default:
		}
	}
	a.thumb.poll()
	a.viewer.Tick()
}

// Close releases every resource in reverse order of creation.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.sync != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := a.sync.Shutdown(ctx); err != nil {
			a.log.Warn("sync server shutdown", zap.Error(err))
		}
		cancel()
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.viewer != nil {
		a.viewer.Close()
	}
	if a.assets != nil {
		a.assets.Close()
	}
	a.thumb.release()
	if a.ui != nil {
		a.ui.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
