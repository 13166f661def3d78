// Package classify labels scanned financial documents. Text goes straight
// to the completion model; images are run through an OCR provider first.
// The model's raw response is recovered into a structured record by
// internal/llmjson before being shaped into a Result.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/docsift/docsift/internal/llmjson"
	"github.com/docsift/docsift/internal/providers"
)

// Options configures a Classifier.
type Options struct {
	// Strict controls the recovery parser. When true, unrecoverable model
	// output is an error; when false it degrades to a fallback Result
	// carrying the raw text and the failure description.
	Strict bool

	Logger *slog.Logger
}

// Classifier orchestrates OCR extraction and LLM classification.
type Classifier struct {
	llm    providers.LLMClient
	ocr    providers.OCRProvider
	strict bool
	logger *slog.Logger
}

// New creates a Classifier. The OCR provider may be nil when only
// ClassifyText is used.
func New(llm providers.LLMClient, ocr providers.OCRProvider, opts Options) *Classifier {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		llm:    llm,
		ocr:    ocr,
		strict: opts.Strict,
		logger: logger,
	}
}

// ClassifyText classifies a document from its text content.
func (c *Classifier) ClassifyText(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text content is empty")
	}

	c.logger.Debug("classifying text", "chars", len(text))

	completion, err := c.llm.Complete(ctx, &providers.CompletionRequest{
		Prompt: BuildPrompt(text),
	})
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	record, err := llmjson.Parse(completion.Content, c.strict)
	if err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}

	result := resultFromRecord(record)
	c.logger.Info("classified document",
		"document_type", result.DocumentType,
		"confidence", result.Confidence,
		"model", completion.ModelUsed,
		"tokens", completion.TotalTokens)
	return result, nil
}

// ClassifyImage classifies a document image. The image is OCR'd, the
// extracted text classified, and the OCR confidence folded into a combined
// score (classification confidence times OCR confidence). An image that
// yields no text produces a zero-confidence "unknown" result rather than
// an error.
func (c *Classifier) ClassifyImage(ctx context.Context, path string) (*Result, error) {
	if c.ocr == nil {
		return nil, fmt.Errorf("no OCR provider configured")
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	c.logger.Debug("extracting text from image", "path", path)
	ocrResult, err := c.ocr.ProcessImage(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("OCR failed for %s: %w", path, err)
	}

	if strings.TrimSpace(ocrResult.Text) == "" {
		c.logger.Warn("no text extracted from image", "path", path)
		return &Result{
			DocumentType:  "unknown",
			Confidence:    0,
			Reasoning:     "No text could be extracted from the image",
			OCRConfidence: ocrResult.Confidence,
			Error:         "empty OCR result",
		}, nil
	}

	c.logger.Debug("OCR extraction successful",
		"path", path,
		"confidence", ocrResult.Confidence,
		"chars", len(ocrResult.Text))

	result, err := c.ClassifyText(ctx, ocrResult.Text)
	if err != nil {
		return nil, err
	}

	result.OCRConfidence = ocrResult.Confidence
	result.CombinedConfidence = result.Confidence * ocrResult.Confidence
	return result, nil
}
