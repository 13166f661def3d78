package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry holds references to LLM clients and OCR providers.
// It supports config-driven instantiation and provides thread-safe access.
type Registry struct {
	mu           sync.RWMutex
	llmClients   map[string]LLMClient
	ocrProviders map[string]OCRProvider
	logger       *slog.Logger
}

// OCRProviderConfig is the provider-agnostic OCR configuration.
type OCRProviderConfig struct {
	Type      string
	Model     string
	APIKey    string
	RateLimit float64
	Timeout   time.Duration
	Enabled   bool
}

// LLMProviderConfig is the provider-agnostic LLM configuration.
type LLMProviderConfig struct {
	Type        string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
	RateLimit   float64
	Timeout     time.Duration
	Enabled     bool
}

// RegistryConfig holds all provider configurations by name.
type RegistryConfig struct {
	OCRProviders map[string]OCRProviderConfig
	LLMProviders map[string]LLMProviderConfig
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		llmClients:   make(map[string]LLMClient),
		ocrProviders: make(map[string]OCRProvider),
		logger:       slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// RegisterLLM registers an LLM client by name.
func (r *Registry) RegisterLLM(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.llmClients[name] = client
	if r.logger != nil {
		r.logger.Info("registered LLM client", "name", name)
	}
}

// RegisterOCR registers an OCR provider by name.
func (r *Registry) RegisterOCR(name string, provider OCRProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ocrProviders[name] = provider
	if r.logger != nil {
		r.logger.Info("registered OCR provider", "name", name)
	}
}

// GetLLM returns an LLM client by name.
func (r *Registry) GetLLM(name string) (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.llmClients[name]
	if !ok {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// GetOCR returns an OCR provider by name.
func (r *Registry) GetOCR(name string) (OCRProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.ocrProviders[name]
	if !ok {
		return nil, fmt.Errorf("OCR provider not found: %s", name)
	}
	return provider, nil
}

// LLMNames returns the registered LLM client names.
func (r *Registry) LLMNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.llmClients))
	for name := range r.llmClients {
		names = append(names, name)
	}
	return names
}

// OCRNames returns the registered OCR provider names.
func (r *Registry) OCRNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ocrProviders))
	for name := range r.ocrProviders {
		names = append(names, name)
	}
	return names
}

// LoadFromConfig instantiates and registers providers from configuration.
// Disabled providers are skipped; unknown types are an error.
func (r *Registry) LoadFromConfig(cfg RegistryConfig) error {
	for name, ocr := range cfg.OCRProviders {
		if !ocr.Enabled {
			continue
		}
		switch ocr.Type {
		case "mistral-ocr":
			r.RegisterOCR(name, NewMistralOCRClient(MistralOCRConfig{
				APIKey:    ocr.APIKey,
				Model:     ocr.Model,
				RateLimit: ocr.RateLimit,
				Timeout:   ocr.Timeout,
			}))
		default:
			return fmt.Errorf("unknown OCR provider type: %s", ocr.Type)
		}
	}

	for name, llm := range cfg.LLMProviders {
		if !llm.Enabled {
			continue
		}
		switch llm.Type {
		case "openai":
			r.RegisterLLM(name, NewOpenAIClient(OpenAIConfig{
				APIKey:      llm.APIKey,
				Model:       llm.Model,
				Temperature: llm.Temperature,
				MaxTokens:   llm.MaxTokens,
				RateLimit:   llm.RateLimit,
				Timeout:     llm.Timeout,
			}))
		default:
			return fmt.Errorf("unknown LLM provider type: %s", llm.Type)
		}
	}

	return nil
}
