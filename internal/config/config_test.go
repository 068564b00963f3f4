package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test viewer defaults
	if cfg.Viewer.StartStage != 1 {
		t.Errorf("expected start stage 1, got %d", cfg.Viewer.StartStage)
	}
	if cfg.Viewer.Model != "" {
		t.Errorf("expected no model, got %s", cfg.Viewer.Model)
	}

	// Test camera defaults
	if cfg.Camera.DefaultPosition != [3]float32{3, 2.5, 3} {
		t.Errorf("unexpected default position %v", cfg.Camera.DefaultPosition)
	}
	if cfg.Camera.DefaultTarget != [3]float32{0, 1, 0} {
		t.Errorf("unexpected default target %v", cfg.Camera.DefaultTarget)
	}
	if cfg.Camera.Damping != 0.06 {
		t.Errorf("expected damping 0.06, got %f", cfg.Camera.Damping)
	}
	if cfg.Camera.MaxGoalDistance != 6 {
		t.Errorf("expected max goal distance 6, got %f", cfg.Camera.MaxGoalDistance)
	}

	if cfg.Layers.GhostOpacity != 0.25 {
		t.Errorf("expected ghost opacity 0.25, got %f", cfg.Layers.GhostOpacity)
	}
	if cfg.Assets.HTTPTimeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.Assets.HTTPTimeout)
	}
	if cfg.Sync.Enabled {
		t.Error("expected sync to be disabled by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

viewer:
  model: "models/roof.glb"
  stages: "models/roof.stages.yaml"
  start_stage: 3

camera:
  default_position: [4, 3, 4]
  damping: 0.1

layers:
  ghost_opacity: 0.4

assets:
  http_timeout: 5s
  valkey_addr: "127.0.0.1:6379"

sync:
  enabled: true
  listen: ":9000"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Window.FPSLimit)
	}

	if cfg.Viewer.Model != "models/roof.glb" {
		t.Errorf("expected model models/roof.glb, got %s", cfg.Viewer.Model)
	}
	if cfg.Viewer.StartStage != 3 {
		t.Errorf("expected start stage 3, got %d", cfg.Viewer.StartStage)
	}

	if cfg.Camera.DefaultPosition != [3]float32{4, 3, 4} {
		t.Errorf("expected position [4 3 4], got %v", cfg.Camera.DefaultPosition)
	}
	// Untouched keys keep their defaults
	if cfg.Camera.DefaultTarget != [3]float32{0, 1, 0} {
		t.Errorf("expected default target to survive, got %v", cfg.Camera.DefaultTarget)
	}
	if cfg.Camera.Damping != 0.1 {
		t.Errorf("expected damping 0.1, got %f", cfg.Camera.Damping)
	}
	if cfg.Layers.GhostOpacity != 0.4 {
		t.Errorf("expected ghost opacity 0.4, got %f", cfg.Layers.GhostOpacity)
	}

	if cfg.Assets.HTTPTimeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Assets.HTTPTimeout)
	}
	if cfg.Assets.ValkeyAddr != "127.0.0.1:6379" {
		t.Errorf("expected valkey addr, got %s", cfg.Assets.ValkeyAddr)
	}
	if !cfg.Sync.Enabled || cfg.Sync.Listen != ":9000" {
		t.Errorf("expected sync on :9000, got %+v", cfg.Sync)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "stageviewer.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find stageviewer.yaml in current directory")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"STAGEVIEWER_MODEL":        "https://cdn.example.com/roof.glb",
		"STAGEVIEWER_START_STAGE":  "4",
		"STAGEVIEWER_HTTP_TIMEOUT": "2s",
		"STAGEVIEWER_SYNC_LISTEN":  ":7000",
		"STAGEVIEWER_LOG_LEVEL":    "warn",
	}
	cfg := Default()
	if err := applyEnv(cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}

	if cfg.Viewer.Model != "https://cdn.example.com/roof.glb" {
		t.Errorf("expected model from env, got %s", cfg.Viewer.Model)
	}
	if cfg.Viewer.StartStage != 4 {
		t.Errorf("expected start stage 4, got %d", cfg.Viewer.StartStage)
	}
	if cfg.Assets.HTTPTimeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", cfg.Assets.HTTPTimeout)
	}
	if !cfg.Sync.Enabled || cfg.Sync.Listen != ":7000" {
		t.Errorf("expected sync enabled on :7000, got %+v", cfg.Sync)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	// Unset variables leave values alone
	if cfg.Viewer.Stages != "" {
		t.Errorf("expected no stages, got %s", cfg.Viewer.Stages)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"STAGEVIEWER_START_STAGE":  "three",
		"STAGEVIEWER_HTTP_TIMEOUT": "soon",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := Default()
			err := applyEnv(cfg, func(k string) string {
				if k == key {
					return value
				}
				return ""
			})
			if err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(envPath, []byte("STAGEVIEWER_TEST_DOTENV=roof.glb\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("STAGEVIEWER_TEST_DOTENV")

	// Missing files are skipped
	if err := loadDotEnv(filepath.Join(tmpDir, "missing.env"), envPath); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
	if got := os.Getenv("STAGEVIEWER_TEST_DOTENV"); got != "roof.glb" {
		t.Errorf("expected value from .env, got %q", got)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "model and stages flags",
			setup: func() {
				*flagModel = "roof.glb"
				*flagStages = "roof.stages.yaml"
				*flagStep = 2
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.Model != "roof.glb" || cfg.Viewer.Stages != "roof.stages.yaml" {
					t.Errorf("unexpected viewer config %+v", cfg.Viewer)
				}
				if cfg.Viewer.StartStage != 2 {
					t.Errorf("expected start stage 2, got %d", cfg.Viewer.StartStage)
				}
			},
			teardown: func() {
				*flagModel = ""
				*flagStages = ""
				*flagStep = 0
			},
		},
		{
			name:  "sync flag",
			setup: func() { *flagSync = ":8080" },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Sync.Enabled || cfg.Sync.Listen != ":8080" {
					t.Errorf("expected sync on :8080, got %+v", cfg.Sync)
				}
			},
			teardown: func() { *flagSync = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"damping above one", func(c *Config) { c.Camera.Damping = 1.5 }},
		{"inverted distance range", func(c *Config) { c.Camera.MaxDistance = 0.1 }},
		{"ghost opacity zero", func(c *Config) { c.Layers.GhostOpacity = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
viewer:
  model: "from-file.glb"
  stages: "from-file.yaml"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("STAGEVIEWER_MODEL", "from-env.glb")

	*flagConfig = configPath
	*flagWidth = 1920
	*flagModel = "from-flag.glb"
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagModel = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
	if cfg.Viewer.Model != "from-flag.glb" {
		t.Errorf("expected model from flag, got %s", cfg.Viewer.Model)
	}
	if cfg.Viewer.Stages != "from-file.yaml" {
		t.Errorf("expected stages from file, got %s", cfg.Viewer.Stages)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("viewer:\n  model: from-file.glb\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("STAGEVIEWER_MODEL", "from-env.glb")

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Viewer.Model != "from-env.glb" {
		t.Errorf("expected model from env, got %s", cfg.Viewer.Model)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Viewer.Model = "saved.glb"
	cfg.Camera.DefaultPosition = [3]float32{1, 2, 3}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Viewer.Model != "saved.glb" {
		t.Errorf("expected saved model, got %s", loaded.Viewer.Model)
	}
	if loaded.Camera.DefaultPosition != [3]float32{1, 2, 3} {
		t.Errorf("expected saved position, got %v", loaded.Camera.DefaultPosition)
	}
}

func TestExport(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("APPDATA", filepath.Join(home, "appdata"))

	cfg := Default()
	cfg.Viewer.Stages = "steps.yaml"

	explicit := filepath.Join(t.TempDir(), "out.yaml")
	path, err := cfg.Export(explicit)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != explicit {
		t.Errorf("expected %s, got %s", explicit, path)
	}

	path, err = cfg.Export(UserTarget)
	if err != nil {
		t.Fatalf("Export user: %v", err)
	}
	if path != UserConfigPath() {
		t.Errorf("expected user config path %s, got %s", UserConfigPath(), path)
	}
	if !strings.HasPrefix(path, home) {
		t.Errorf("user config %s should live under %s", path, home)
	}

	for _, p := range []string{explicit, path} {
		loaded := Default()
		if err := loadFromFile(loaded, p); err != nil {
			t.Fatalf("reload %s: %v", p, err)
		}
		if loaded.Viewer.Stages != "steps.yaml" {
			t.Errorf("%s: expected saved stages, got %s", p, loaded.Viewer.Stages)
		}
	}
}

func TestSaveConfigPath(t *testing.T) {
	if got := SaveConfigPath(); got != "" {
		t.Errorf("expected no save target by default, got %q", got)
	}
	*flagSaveConfig = UserTarget
	defer func() { *flagSaveConfig = "" }()
	if got := SaveConfigPath(); got != UserTarget {
		t.Errorf("expected %q, got %q", UserTarget, got)
	}
}
