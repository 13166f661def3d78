// Package providers holds the clients for the external services the
// classification pipeline consumes: hosted OCR engines and LLM completion
// APIs. Both are reached through narrow interfaces so the pipeline never
// depends on a concrete vendor.
package providers

import (
	"context"
	"time"
)

// OCRProvider handles image-to-text extraction.
type OCRProvider interface {
	// Name returns the provider identifier (e.g., "mistral-ocr").
	Name() string

	// ProcessImage extracts text from a page image.
	ProcessImage(ctx context.Context, image []byte) (*OCRResult, error)

	// Rate limiting properties
	RequestsPerSecond() float64
	MaxRetries() int
	RetryDelayBase() time.Duration
}

// LLMClient is the interface for text completion requests.
type LLMClient interface {
	// Complete sends a completion request and returns the raw model output.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// Name returns the client identifier (e.g., "openai").
	Name() string
}

// CompletionRequest is a request to an LLM.
type CompletionRequest struct {
	// Required
	Prompt string `json:"prompt"`

	// Model selection (uses client default if empty)
	Model string `json:"model,omitempty"`

	// Generation parameters
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Timeout     time.Duration `json:"-"`

	// Request tracking
	RequestID string `json:"-"`
}

// CompletionResult is the complete response from an LLM call.
type CompletionResult struct {
	// Raw model output; no structure guaranteed. Recovery happens
	// downstream in llmjson.
	Content string `json:"content"`

	// Token counts
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	// Timing
	ExecutionTime time.Duration `json:"execution_time"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Request tracking
	RequestID string `json:"request_id"`
}

// OCRResult is the outcome of a single page OCR call.
type OCRResult struct {
	// Success/content
	Success bool   `json:"success"`
	Text    string `json:"text"` // Markdown formatted

	// Confidence is the provider's mean word confidence in [0,1].
	// Providers that do not report word confidences use 1.0.
	Confidence float64 `json:"confidence"`

	// Metadata from provider (dimensions, page index, etc.)
	Metadata map[string]any `json:"metadata,omitempty"`

	// Timing
	ExecutionTime time.Duration `json:"execution_time"`

	// Error info
	ErrorMessage string `json:"error_message,omitempty"`
	RetryCount   int    `json:"retry_count"`
}
