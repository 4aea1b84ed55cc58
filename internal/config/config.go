// Package config loads the optional per-repository configuration from
// .repodoc/config.yaml. A missing file is not an error; every field
// has a default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up under the cache directory.
const FileName = "config.yaml"

// Config is the per-repository configuration.
type Config struct {
	// Binary is the Copilot CLI executable name or path.
	Binary string `yaml:"binary"`
	// TimeoutSeconds bounds one Copilot invocation; 0 means no limit.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// LogDir receives session logs and raw output artifacts, relative
	// to the repository root unless absolute.
	LogDir string `yaml:"log_dir"`
	// PromptDir optionally overrides the built-in prompt templates.
	PromptDir string `yaml:"prompt_dir"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Binary: "copilot",
		LogDir: filepath.Join(".repodoc", "logs"),
	}
}

// Load reads <root>/.repodoc/config.yaml, filling unset fields with
// defaults. A missing file yields the defaults without error.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, ".repodoc", FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var in Config
	if err := yaml.Unmarshal(data, &in); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.merge(in)

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(in Config) {
	if in.Binary != "" {
		c.Binary = in.Binary
	}
	if in.TimeoutSeconds != 0 {
		c.TimeoutSeconds = in.TimeoutSeconds
	}
	if in.LogDir != "" {
		c.LogDir = in.LogDir
	}
	if in.PromptDir != "" {
		c.PromptDir = in.PromptDir
	}
}

func (c Config) validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be non-negative, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the invocation timeout as a duration; 0 disables the
// deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolveDir makes a configured directory absolute against root.
func (c Config) ResolveDir(root, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
