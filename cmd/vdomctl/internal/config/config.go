// Package config loads cmd/vdomctl's project configuration, a small
// YAML file: this repo has no styling/PWA/build surface to configure,
// only where the live dev loop listens and what it watches.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the vdomctl.yaml project configuration.
type Config struct {
	// Serve holds the dev server's network and watch settings.
	Serve *ServeConfig `yaml:"serve,omitempty"`
}

// ServeConfig configures `vdomctl serve`.
type ServeConfig struct {
	// Port the HTTP/WebSocket server listens on.
	Port int `yaml:"port,omitempty"`

	// Host the server binds to.
	Host string `yaml:"host,omitempty"`

	// ScenePath is the scene YAML file rendered on startup and
	// re-rendered whenever WatchDir reports a change.
	ScenePath string `yaml:"scenePath,omitempty"`

	// WatchDir is the directory fsnotify watches for changes. It
	// defaults to ScenePath's containing directory.
	WatchDir string `yaml:"watchDir,omitempty"`
}

const configFileName = "vdomctl.yaml"

// Load reads projectPath/vdomctl.yaml, returning DefaultConfig if no
// such file exists.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, configFileName)

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", configPath, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes config to projectPath/vdomctl.yaml.
func Save(cfg *Config, projectPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(filepath.Join(projectPath, configFileName), data, 0644)
}

// DefaultConfig returns the configuration used when no vdomctl.yaml
// is present.
func DefaultConfig() *Config {
	return &Config{
		Serve: &ServeConfig{
			Port:      8080,
			Host:      "localhost",
			ScenePath: "scene.yaml",
			WatchDir:  ".",
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Serve == nil {
		cfg.Serve = defaults.Serve
		return
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = defaults.Serve.Port
	}
	if cfg.Serve.Host == "" {
		cfg.Serve.Host = defaults.Serve.Host
	}
	if cfg.Serve.ScenePath == "" {
		cfg.Serve.ScenePath = defaults.Serve.ScenePath
	}
	if cfg.Serve.WatchDir == "" {
		cfg.Serve.WatchDir = filepath.Dir(cfg.Serve.ScenePath)
	}
}

// Validate reports whether cfg is usable as-is.
func (c *Config) Validate() error {
	if c.Serve == nil {
		return fmt.Errorf("config: serve section is required")
	}
	if c.Serve.ScenePath == "" {
		return fmt.Errorf("config: serve.scenePath is required")
	}
	return nil
}
