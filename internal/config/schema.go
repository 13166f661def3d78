package config

// Config holds docsift configuration.
// Loaded from ./config.yaml or ~/.docsift/config.yaml.
type Config struct {
	OCRProviders map[string]OCRProviderCfg `mapstructure:"ocr_providers" yaml:"ocr_providers"`
	LLMProviders map[string]LLMProviderCfg `mapstructure:"llm_providers" yaml:"llm_providers"`
	Defaults     DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
	Eval         EvalCfg                   `mapstructure:"eval" yaml:"eval"`
}

// OCRProviderCfg configures an OCR provider.
type OCRProviderCfg struct {
	Type           string  `mapstructure:"type" yaml:"type"`             // "mistral-ocr"
	Model          string  `mapstructure:"model" yaml:"model"`           // Provider model name
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"`       // Supports ${ENV_VAR} syntax
	RateLimit      float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per second
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Enabled        bool    `mapstructure:"enabled" yaml:"enabled"`
}

// LLMProviderCfg configures a completion provider.
type LLMProviderCfg struct {
	Type           string  `mapstructure:"type" yaml:"type"`             // "openai"
	Model          string  `mapstructure:"model" yaml:"model"`           // Model name
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"`       // Supports ${ENV_VAR} syntax
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	RateLimit      float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per second
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Enabled        bool    `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg selects providers and classification behavior.
type DefaultsCfg struct {
	OCRProvider string `mapstructure:"ocr_provider" yaml:"ocr_provider"`
	LLMProvider string `mapstructure:"llm_provider" yaml:"llm_provider"`
	// Strict controls the response recovery parser: fail on unrecoverable
	// model output instead of returning a fallback record.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// EvalCfg configures dataset evaluation.
type EvalCfg struct {
	Seed         int64   `mapstructure:"seed" yaml:"seed"`
	TestFraction float64 `mapstructure:"test_fraction" yaml:"test_fraction"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OCRProviders: map[string]OCRProviderCfg{
			"mistral": {
				Type:      "mistral-ocr",
				APIKey:    "${MISTRAL_API_KEY}",
				RateLimit: 6.0,
				Enabled:   true,
			},
		},
		LLMProviders: map[string]LLMProviderCfg{
			"openai": {
				Type:        "openai",
				Model:       "gpt-4o-mini",
				APIKey:      "${OPENAI_API_KEY}",
				Temperature: 0.2,
				MaxTokens:   1000,
				RateLimit:   3.0,
				Enabled:     true,
			},
		},
		Defaults: DefaultsCfg{
			OCRProvider: "mistral",
			LLMProvider: "openai",
			Strict:      true,
		},
		Eval: EvalCfg{
			Seed:         42,
			TestFraction: 0.2,
		},
	}
}

// GetOCRProvider returns an OCR provider config by name.
func (c *Config) GetOCRProvider(name string) (OCRProviderCfg, bool) {
	cfg, ok := c.OCRProviders[name]
	return cfg, ok
}

// GetLLMProvider returns an LLM provider config by name.
func (c *Config) GetLLMProvider(name string) (LLMProviderCfg, bool) {
	cfg, ok := c.LLMProviders[name]
	return cfg, ok
}
