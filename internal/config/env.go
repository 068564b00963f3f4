package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STAGEVIEWER_"

// loadDotEnv reads .env files into the process environment. Variables that
// are already set win over the file.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("reading %s: %w", p, err)
		}
	}
	return nil
}

// applyEnv applies STAGEVIEWER_* overrides to the config.
func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	str("MODEL", &cfg.Viewer.Model)
	str("STAGES", &cfg.Viewer.Stages)
	str("THUMBNAIL", &cfg.Viewer.Thumbnail)
	str("VALKEY_ADDR", &cfg.Assets.ValkeyAddr)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FILE", &cfg.Logging.LogFile)

	if v := getenv(EnvPrefix + "START_STAGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSTART_STAGE: %w", EnvPrefix, err)
		}
		cfg.Viewer.StartStage = n
	}
	if v := getenv(EnvPrefix + "HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sHTTP_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Assets.HTTPTimeout = d
	}
	if v := getenv(EnvPrefix + "SYNC_LISTEN"); v != "" {
		cfg.Sync.Enabled = true
		cfg.Sync.Listen = v
	}
	return nil
}

func osGetenv(key string) string {
	return os.Getenv(key)
}
