package config

// Config is the top-level redteam configuration.
type Config struct {
	Logging LoggingConfig `koanf:"logging"`
	Model   ModelConfig   `koanf:"model"`
	Run     RunConfig     `koanf:"run"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ModelConfig configures the OpenAI-compatible model endpoint used by the
// generation and evaluation services.
type ModelConfig struct {
	// Name is the chat model used for generation and evaluation.
	Name string `koanf:"name"`

	// BaseURL is the API base URL. Works for OpenAI and any
	// OpenAI-compatible server.
	BaseURL string `koanf:"base_url"`

	// APIKey authenticates against the endpoint. Usually set via
	// MODEL_API_KEY or OPENAI_API_KEY.
	APIKey string `koanf:"api_key"`

	// ReqTemperature is used for requirement generation (higher for
	// varied requirements).
	ReqTemperature float64 `koanf:"req_temperature"`

	// TestTemperature is used for test case generation (higher for
	// creative test cases).
	TestTemperature float64 `koanf:"test_temperature"`

	// EvalTemperature is used for evaluation (lower for consistency).
	EvalTemperature float64 `koanf:"eval_temperature"`
}

// RunConfig holds pipeline run defaults.
type RunConfig struct {
	// DetectorsPath is the TOML file listing supported detector names.
	DetectorsPath string `koanf:"detectors_path"`

	// ResultsDir is where result tables are written.
	ResultsDir string `koanf:"results_dir"`

	// Languages test cases are generated in.
	Languages []string `koanf:"languages"`

	// NumRequirements generated per detector.
	NumRequirements int `koanf:"num_requirements"`

	// NumTestCases generated per requirement.
	NumTestCases int `koanf:"num_test_cases"`
}
