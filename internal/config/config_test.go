package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	mistral, ok := cfg.GetOCRProvider("mistral")
	if !ok {
		t.Fatal("expected default mistral OCR provider")
	}
	if mistral.Type != "mistral-ocr" || !mistral.Enabled {
		t.Errorf("unexpected mistral defaults: %+v", mistral)
	}
	if mistral.APIKey != "${MISTRAL_API_KEY}" {
		t.Error("expected mistral API key placeholder")
	}

	openai, ok := cfg.GetLLMProvider("openai")
	if !ok {
		t.Fatal("expected default openai LLM provider")
	}
	if openai.Model != "gpt-4o-mini" || openai.Temperature != 0.2 || openai.MaxTokens != 1000 {
		t.Errorf("unexpected openai defaults: %+v", openai)
	}

	if cfg.Defaults.OCRProvider != "mistral" || cfg.Defaults.LLMProvider != "openai" {
		t.Errorf("unexpected provider selections: %+v", cfg.Defaults)
	}
	if !cfg.Defaults.Strict {
		t.Error("strict parsing should default to true")
	}
	if cfg.Eval.Seed != 42 || cfg.Eval.TestFraction != 0.2 {
		t.Errorf("unexpected eval defaults: %+v", cfg.Eval)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
llm_providers:
  openai:
    type: openai
    model: gpt-4o
    api_key: "${OPENAI_API_KEY}"
    enabled: true
defaults:
  strict: false
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		llm, ok := cfg.GetLLMProvider("openai")
		if !ok {
			t.Fatal("expected openai provider from file")
		}
		if llm.Model != "gpt-4o" {
			t.Errorf("expected gpt-4o, got %s", llm.Model)
		}
		if cfg.Defaults.Strict {
			t.Error("strict should be overridden to false")
		}
	})

	t.Run("works without config file", func(t *testing.T) {
		mgr, err := NewManager("")
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if mgr.Get() == nil {
			t.Fatal("expected defaults when no file present")
		}
	})
}

func TestManager_OnChange(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
defaults:
  ocr_provider: mistral
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	changed := make(chan *Config, 1)
	mgr.OnChange(func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	mgr.WatchConfig()

	updated := `
defaults:
  ocr_provider: other-ocr
`
	if err := os.WriteFile(configFile, []byte(updated), 0644); err != nil {
		t.Fatalf("failed to update config file: %v", err)
	}

	select {
	case cfg := <-changed:
		if cfg.Defaults.OCRProvider != "other-ocr" {
			t.Errorf("expected other-ocr, got %s", cfg.Defaults.OCRProvider)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("config change callback was not invoked")
	}
}

func TestToRegistryConfig(t *testing.T) {
	os.Setenv("TEST_MISTRAL_KEY", "mk-123")
	defer os.Unsetenv("TEST_MISTRAL_KEY")

	cfg := &Config{
		OCRProviders: map[string]OCRProviderCfg{
			"mistral": {
				Type:           "mistral-ocr",
				APIKey:         "${TEST_MISTRAL_KEY}",
				RateLimit:      6.0,
				TimeoutSeconds: 90,
				Enabled:        true,
			},
		},
		LLMProviders: map[string]LLMProviderCfg{
			"openai": {
				Type:        "openai",
				Model:       "gpt-4o-mini",
				APIKey:      "literal-key",
				Temperature: 0.2,
				MaxTokens:   1000,
				Enabled:     true,
			},
		},
	}

	registryCfg := cfg.ToRegistryConfig()

	ocr := registryCfg.OCRProviders["mistral"]
	if ocr.APIKey != "mk-123" {
		t.Errorf("expected resolved API key, got %s", ocr.APIKey)
	}
	if ocr.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", ocr.Timeout)
	}

	llm := registryCfg.LLMProviders["openai"]
	if llm.APIKey != "literal-key" {
		t.Errorf("expected literal API key, got %s", llm.APIKey)
	}
	if llm.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d", llm.MaxTokens)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("written default config should load: %v", err)
	}
	if _, ok := mgr.Get().GetOCRProvider("mistral"); !ok {
		t.Error("written config should carry the mistral provider")
	}
}
