/*
PURPOSE:
  Defines the configuration structure and loading logic for cc-publish.

REQUIREMENTS:
  User-specified:
  - Default to the historical fixed paths (/tmp/cc -> site/cc).
  - Allow overriding the roots without editing code.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs to support environment variable overrides (CC_PUBLISH_...).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/publish
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if an explicitly named config file is missing or invalid.
  - A missing default config file falls back to defaults.
  - Validate() wraps ErrInvalid.

IMPLEMENTATION RULES:
  - Precedence: defaults < file < environment < flags (flags applied by internal/cli).

USAGE:
  cfg, err := config.Load("cc-publish.yaml")

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update Validate() when adding fields.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	EnvSourceDir  = "CC_PUBLISH_SOURCE_DIR"
	EnvTargetDir  = "CC_PUBLISH_TARGET_DIR"
	EnvStylesheet = "CC_PUBLISH_STYLESHEET"
)

// DefaultFiles are searched in order when no config path is given.
var DefaultFiles = []string{"cc-publish.yaml", ".cc-publish.yaml"}

// Config represents the full configuration for cc-publish.
type Config struct {
	SourceDir string `yaml:"source_dir"`
	TargetDir string `yaml:"target_dir"`
	// Stylesheet is relative to SourceDir.
	Stylesheet string `yaml:"stylesheet"`
	// Pattern is matched against base names, case-sensitive.
	Pattern  string        `yaml:"pattern"`
	Manifest string        `yaml:"manifest"`
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:  "/tmp/cc",
		TargetDir:  "site/cc",
		Stylesheet: filepath.Join(".css", "coverage.css"),
		Pattern:    "*.html",
		Debounce:   500 * time.Millisecond,
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file is found, defaults are used. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSourceDir); v != "" {
		c.SourceDir = v
	}
	if v := os.Getenv(EnvTargetDir); v != "" {
		c.TargetDir = v
	}
	if v := os.Getenv(EnvStylesheet); v != "" {
		c.Stylesheet = v
	}
}

// StylesheetPath returns the absolute-or-relative path of the stylesheet on disk.
func (c *Config) StylesheetPath() string {
	return filepath.Join(c.SourceDir, c.Stylesheet)
}

// Validate reports the first problem with the configuration.
func (c *Config) Validate() error {
	switch {
	case c.SourceDir == "":
		return fmt.Errorf("%w: source_dir is empty", ErrInvalid)
	case c.TargetDir == "":
		return fmt.Errorf("%w: target_dir is empty", ErrInvalid)
	case filepath.Clean(c.SourceDir) == filepath.Clean(c.TargetDir):
		return fmt.Errorf("%w: source_dir and target_dir are both %s", ErrInvalid, c.SourceDir)
	case c.Stylesheet == "":
		return fmt.Errorf("%w: stylesheet is empty", ErrInvalid)
	case filepath.IsAbs(c.Stylesheet):
		return fmt.Errorf("%w: stylesheet %s must be relative to source_dir", ErrInvalid, c.Stylesheet)
	case c.Pattern == "":
		return fmt.Errorf("%w: pattern is empty", ErrInvalid)
	case c.Debounce < 0:
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalid)
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("%w: pattern %q: %v", ErrInvalid, c.Pattern, err)
	}
	return nil
}
