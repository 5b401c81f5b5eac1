package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadWithFile_Defaults(t *testing.T) {
	// Nonexistent file: defaults apply
	cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4-1106-preview", cfg.Model.Name)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Model.BaseURL)
	assert.Equal(t, 0.7, cfg.Model.ReqTemperature)
	assert.Equal(t, 0.8, cfg.Model.TestTemperature)
	assert.Equal(t, 0.3, cfg.Model.EvalTemperature)
	assert.Equal(t, "results", cfg.Run.ResultsDir)
	assert.Equal(t, []string{"English"}, cfg.Run.Languages)
	assert.Equal(t, 3, cfg.Run.NumRequirements)
	assert.Equal(t, 2, cfg.Run.NumTestCases)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithFile_YAML(t *testing.T) {
	path := writeConfig(t, `
model:
  name: gpt-4o-mini
  eval_temperature: 0.1
run:
  results_dir: /tmp/redteam-results
  num_requirements: 5
  languages:
    - English
    - Spanish
logging:
  level: debug
  format: json
`)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, 0.1, cfg.Model.EvalTemperature)
	// Unset values still default
	assert.Equal(t, 0.7, cfg.Model.ReqTemperature)
	assert.Equal(t, "/tmp/redteam-results", cfg.Run.ResultsDir)
	assert.Equal(t, 5, cfg.Run.NumRequirements)
	assert.Equal(t, []string{"English", "Spanish"}, cfg.Run.Languages)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadWithFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
model:
  name: from-file
`)

	t.Setenv("MODEL_NAME", "from-env")
	t.Setenv("RUN_NUM_TEST_CASES", "4")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Model.Name)
	assert.Equal(t, 4, cfg.Run.NumTestCases)
}

func TestLoadWithFile_InsecurePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  name: x\n"), 0644))

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure config file permissions")
}

func TestLoadWithFile_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "model: [unclosed")

	_, err := LoadWithFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative temperature",
			mutate:  func(c *Config) { c.Model.EvalTemperature = -0.5 },
			wantErr: "eval_temperature",
		},
		{
			name:    "temperature too high",
			mutate:  func(c *Config) { c.Model.ReqTemperature = 2.5 },
			wantErr: "req_temperature",
		},
		{
			name:    "zero requirements",
			mutate:  func(c *Config) { c.Run.NumRequirements = -1 },
			wantErr: "num_requirements",
		},
		{
			name:    "empty results dir",
			mutate:  func(c *Config) { c.Run.ResultsDir = "" },
			wantErr: "results_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
