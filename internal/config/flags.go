package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagModel      = flag.String("model", "", "Model file path or URL (.glb/.gltf)")
	flagStages     = flag.String("stages", "", "Stage file (YAML or JSON)")
	flagStep       = flag.Int("step", 0, "Stage to open on")
	flagThumbnail  = flag.String("thumbnail", "", "Fallback image shown when the model fails to load")
	flagSync       = flag.String("sync", "", "Serve the step-list sync API on this address")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSaveConfig = flag.String("save-config", "", "Write the effective config to this path (or \"user\" for the user config dir) and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigPath returns the --save-config target, or "" when not set.
func SaveConfigPath() string {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagModel != "" {
		cfg.Viewer.Model = *flagModel
	}
	if *flagStages != "" {
		cfg.Viewer.Stages = *flagStages
	}
	if *flagStep > 0 {
		cfg.Viewer.StartStage = *flagStep
	}
	if *flagThumbnail != "" {
		cfg.Viewer.Thumbnail = *flagThumbnail
	}
	if *flagSync != "" {
		cfg.Sync.Enabled = true
		cfg.Sync.Listen = *flagSync
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
