package config

import (
	"os"
	"path/filepath"

	"github.com/fluffle/mpdlink/internal/infra/confloader"
)

// DefaultConfigPath returns the default config file location,
// following the platform config directory convention.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mpdlink", "config.yaml")
}

// Load merges configuration from the given file, the environment and
// the overrides map (flag values), in ascending priority, on top of
// the defaults. An empty path falls back to DefaultConfigPath; a
// missing default file is fine, a missing explicit file is an error.
func Load(path string, overrides map[string]any) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" && !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}

	cfg := Default()
	l := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := l.Load(&cfg); err != nil {
		return Config{}, err
	}
	if len(overrides) > 0 {
		if err := l.LoadMap(overrides); err != nil {
			return Config{}, err
		}
		if err := l.Unmarshal(&cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Verify(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
