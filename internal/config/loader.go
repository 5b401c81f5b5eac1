// Package config provides configuration loading for the redteam pipeline.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// LoadWithFile loads configuration from a YAML file, then overrides with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (MODEL_NAME, RUN_RESULTS_DIR, etc.)
//  2. YAML config file (~/.config/redteam/config.yaml)
//  3. Hardcoded defaults
//
// The configPath parameter specifies the YAML file to load. If empty, uses
// the default path. A missing file is not an error; defaults apply.
//
// Configuration files must have 0600 or 0400 permissions (they can carry an
// API key) and are limited to 1MB.
//
// Environment variables use underscore separator and are uppercased:
//
//	MODEL_BASE_URL  -> model.base_url
//	RUN_RESULTS_DIR -> run.results_dir
//	LOGGING_LEVEL   -> logging.level
func LoadWithFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "redteam", "config.yaml")
	}

	// Load from YAML file if it exists
	if _, err := os.Stat(configPath); err == nil {
		// Open file once and validate using file descriptor to avoid TOCTOU race
		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}

		if err := validateConfigFileProperties(info); err != nil {
			return nil, fmt.Errorf("config file validation failed: %w", err)
		}

		content, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Use rawbytes provider to avoid re-opening the file
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Override with environment variables.
	// Strategy: split on first underscore only (section.field_name pattern).
	//
	// Examples:
	//   MODEL_REQ_TEMPERATURE -> model.req_temperature
	//   RUN_NUM_TEST_CASES    -> run.num_test_cases
	if err := k.Load(env.Provider("", ".", func(s string) string {
		lower := strings.ToLower(s)
		parts := strings.SplitN(lower, "_", 2)

		if len(parts) == 1 {
			return lower
		}

		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validateConfigFileProperties checks file permissions and size.
// Takes FileInfo from an already-opened file descriptor to avoid TOCTOU race.
func validateConfigFileProperties(info os.FileInfo) error {
	// Check file permissions (must be 0600 or 0400).
	// Skip on Windows (different permission model).
	if runtime.GOOS != "windows" {
		perm := info.Mode().Perm()
		if perm != 0600 && perm != 0400 {
			return fmt.Errorf("insecure config file permissions: %v (expected 0600 or 0400)", perm)
		}
	}

	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	return nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	// Model defaults
	if cfg.Model.Name == "" {
		cfg.Model.Name = "gpt-4-1106-preview"
	}
	if cfg.Model.BaseURL == "" {
		cfg.Model.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model.APIKey == "" {
		cfg.Model.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Model.ReqTemperature == 0 {
		cfg.Model.ReqTemperature = 0.7
	}
	if cfg.Model.TestTemperature == 0 {
		cfg.Model.TestTemperature = 0.8
	}
	if cfg.Model.EvalTemperature == 0 {
		cfg.Model.EvalTemperature = 0.3
	}

	// Run defaults
	if cfg.Run.DetectorsPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Run.DetectorsPath = filepath.Join(home, ".config", "redteam", "detectors.toml")
		}
	}
	if cfg.Run.ResultsDir == "" {
		cfg.Run.ResultsDir = "results"
	}
	if len(cfg.Run.Languages) == 0 {
		cfg.Run.Languages = []string{"English"}
	}
	if cfg.Run.NumRequirements == 0 {
		cfg.Run.NumRequirements = 3
	}
	if cfg.Run.NumTestCases == 0 {
		cfg.Run.NumTestCases = 2
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	for name, temp := range map[string]float64{
		"req_temperature":  c.Model.ReqTemperature,
		"test_temperature": c.Model.TestTemperature,
		"eval_temperature": c.Model.EvalTemperature,
	} {
		if temp < 0 || temp > 2 {
			return fmt.Errorf("model.%s must be in [0, 2], got %v", name, temp)
		}
	}
	if c.Run.NumRequirements < 1 {
		return fmt.Errorf("run.num_requirements must be >= 1, got %d", c.Run.NumRequirements)
	}
	if c.Run.NumTestCases < 1 {
		return fmt.Errorf("run.num_test_cases must be >= 1, got %d", c.Run.NumTestCases)
	}
	if c.Run.ResultsDir == "" {
		return fmt.Errorf("run.results_dir cannot be empty")
	}
	return nil
}
