// Package config loads the flowdocs.yaml workspace configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Version is the flowdocs release version, recorded in scaffolded
// workspaces.
const Version = "0.3.0"

// Config holds all flowdocs configuration.
type Config struct {
	Name            string `yaml:"name"`
	FlowdocsVersion string `yaml:"flowdocs-version"`

	Docs    DocsConfig    `yaml:"docs"`
	Lint    LintConfig    `yaml:"lint"`
	Logging LoggingConfig `yaml:"logging"`
}

// DocsConfig locates the docs tree.
type DocsConfig struct {
	Root string `yaml:"root"`
}

// LintConfig configures the lint runner.
type LintConfig struct {
	Strict         bool     `yaml:"strict"`
	DisabledRules  []string `yaml:"disabled_rules"`
	FenceLanguages []string `yaml:"fence_languages"`
}

// LoggingConfig configures workspace logging.
type LoggingConfig struct {
	Level     string `yaml:"level"`      // debug, info, warn, error
	DebugMode bool   `yaml:"debug_mode"` // enables .flowdocs/logs
}

// Default returns the configuration used when no flowdocs.yaml exists.
func Default() *Config {
	return &Config{
		Name:            "docs",
		FlowdocsVersion: Version,
		Docs:            DocsConfig{Root: "docs"},
		Logging:         LoggingConfig{Level: "info"},
	}
}

// Load reads flowdocs.yaml from dir, falling back to defaults when absent,
// and applies environment overrides.
func Load(dir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(dir, "flowdocs.yaml")
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if cfg.Docs.Root == "" {
		cfg.Docs.Root = "docs"
	}
	return cfg, nil
}

// applyEnvOverrides lets FLOWDOCS_* variables override scalar settings
// without editing the workspace file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FLOWDOCS_DOCS_ROOT"); v != "" {
		c.Docs.Root = v
	}
	if v := os.Getenv("FLOWDOCS_LINT_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Lint.Strict = b
		}
	}
	if v := os.Getenv("FLOWDOCS_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("FLOWDOCS_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
	if v := os.Getenv("FLOWDOCS_DISABLED_RULES"); v != "" {
		c.Lint.DisabledRules = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Lint.DisabledRules = append(c.Lint.DisabledRules, name)
			}
		}
	}
}
