package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserTarget selects the user's config directory in Export.
const UserTarget = "user"

// UserConfigPath is the file Save writes.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(UserConfigPath())
}

// Export writes the config to path, or to the user's config directory when
// path is UserTarget, and returns the file written.
func (c *Config) Export(path string) (string, error) {
	if path == UserTarget {
		return UserConfigPath(), c.Save()
	}
	return path, c.SaveTo(path)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
