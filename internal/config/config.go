// Package config loads the artwizard server configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/wbrown/artwizard/internal/log"
	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	Listen          string `yaml:"listen"`
	Backend         string `yaml:"backend"`
	MaxUploadMB     int    `yaml:"max_upload_mb"`
	MaxConcurrent   int    `yaml:"max_concurrent"`
	PreviewMaxWidth int    `yaml:"preview_max_width"`
	TempDir         string `yaml:"temp_dir"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
}

// Default returns sane defaults.
func Default() *Config {
	return &Config{
		Listen:          ":8501",
		Backend:         "go",
		MaxUploadMB:     20,
		MaxConcurrent:   4,
		PreviewMaxWidth: 800,
		TempDir:         os.TempDir(),
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load builds a configuration from defaults, the YAML file at path (if
// path is not empty) and ARTWIZARD_* environment overrides, then
// validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from ARTWIZARD_LISTEN, ARTWIZARD_BACKEND,
// ARTWIZARD_LOG_LEVEL and ARTWIZARD_MAX_UPLOAD_MB.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ARTWIZARD_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("ARTWIZARD_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("ARTWIZARD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ARTWIZARD_MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ARTWIZARD_MAX_UPLOAD_MB: %w", err)
		}
		c.MaxUploadMB = n
	}
	return nil
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen is required")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be > 0")
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("max_concurrent must be > 0")
	}
	if c.PreviewMaxWidth < 0 {
		return fmt.Errorf("preview_max_width must be >= 0")
	}
	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("log_level %q must be debug, info, warn or error", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q must be text or json", c.LogFormat)
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int {
	return c.MaxUploadMB << 20
}
