// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config is the application configuration. It can be loaded from a JSON
// file, with environment variables filling gaps. All fields are optional;
// missing values use defaults or must come from CLI flags.
type Config struct {
	APIKey              string            `json:"api_key,omitempty"`
	Port                int               `json:"port,omitempty"`
	StageTimeoutSeconds int               `json:"stage_timeout_seconds,omitempty"`
	Models              map[string]string `json:"models,omitempty"` // tier -> model name overrides
	Verbose             bool              `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv fills unset fields from environment variables: GEMINI_API_KEY,
// PORT, STAGE_TIMEOUT_SECONDS.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			c.Port = port
		}
	}
	if c.StageTimeoutSeconds == 0 {
		if secs, err := strconv.Atoi(os.Getenv("STAGE_TIMEOUT_SECONDS")); err == nil {
			c.StageTimeoutSeconds = secs
		}
	}
}

// StageTimeout returns the configured per-stage timeout, or zero when unset
// so callers can apply their own default.
func (c *Config) StageTimeout() time.Duration {
	return time.Duration(c.StageTimeoutSeconds) * time.Second
}

// Validate checks numeric ranges. Required fields are checked after flag
// merging by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.StageTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'stage_timeout_seconds' must be non-negative")
	}
	return nil
}
