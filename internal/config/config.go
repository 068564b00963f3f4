// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Camera  CameraConfig  `yaml:"camera"`
	Layers  LayersConfig  `yaml:"layers"`
	Assets  AssetsConfig  `yaml:"assets"`
	Sync    SyncConfig    `yaml:"sync"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// ViewerConfig selects what is shown.
type ViewerConfig struct {
	Model       string `yaml:"model"`  // File path or URL; empty shows placeholder geometry
	Stages      string `yaml:"stages"` // YAML/JSON stage file; empty disables staging
	StartStage  int    `yaml:"start_stage"`
	Thumbnail   string `yaml:"thumbnail"` // Shown when the model fails to load
	WatchStages bool   `yaml:"watch_stages"`
}

// CameraConfig tunes the orbit camera and stage animation.
type CameraConfig struct {
	DefaultPosition [3]float32 `yaml:"default_position"`
	DefaultTarget   [3]float32 `yaml:"default_target"`
	FOV             float32    `yaml:"fov"`
	Damping         float32    `yaml:"damping"`
	Epsilon         float32    `yaml:"epsilon"`
	MaxGoalDistance float32    `yaml:"max_goal_distance"`
	MinDistance     float32    `yaml:"min_distance"`
	MaxDistance     float32    `yaml:"max_distance"`
}

// LayersConfig tunes ghosting.
type LayersConfig struct {
	GhostOpacity float32 `yaml:"ghost_opacity"`
}

// AssetsConfig holds asset fetching settings.
type AssetsConfig struct {
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	ValkeyAddr  string        `yaml:"valkey_addr"` // Optional shared byte cache
	ValkeyTTL   time.Duration `yaml:"valkey_ttl"`
}

// SyncConfig holds the step-list sync server settings.
type SyncConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Stage Viewer",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Viewer: ViewerConfig{
			StartStage:  1,
			WatchStages: true,
		},
		Camera: CameraConfig{
			DefaultPosition: [3]float32{3, 2.5, 3},
			DefaultTarget:   [3]float32{0, 1, 0},
			FOV:             45,
			Damping:         0.06,
			Epsilon:         0.01,
			MaxGoalDistance: 6,
			MinDistance:     0.5,
			MaxDistance:     20,
		},
		Layers: LayersConfig{
			GhostOpacity: 0.25,
		},
		Assets: AssetsConfig{
			HTTPTimeout: 30 * time.Second,
			ValkeyTTL:   24 * time.Hour,
		},
		Sync: SyncConfig{
			Enabled: false,
			Listen:  "127.0.0.1:7420",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
