package eval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docsift/docsift/internal/classify"
)

// ImageClassifier is the part of the classifier evaluation needs.
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, path string) (*classify.Result, error)
}

// SampleError records a sample the classifier failed on.
type SampleError struct {
	Path      string `json:"image_path" yaml:"image_path"`
	TrueLabel string `json:"true_label" yaml:"true_label"`
	Error     string `json:"error" yaml:"error"`
}

// Report summarizes an evaluation run.
type Report struct {
	Accuracy   float64        `json:"accuracy" yaml:"accuracy"`
	Correct    int            `json:"correct_predictions" yaml:"correct_predictions"`
	Incorrect  int            `json:"incorrect_predictions" yaml:"incorrect_predictions"`
	Total      int            `json:"total_predictions" yaml:"total_predictions"`
	TrueLabels []string       `json:"y_true" yaml:"y_true"`
	Predicted  []string       `json:"y_pred" yaml:"y_pred"`
	Confusion  map[string]int `json:"confusion,omitempty" yaml:"confusion,omitempty"`
	Errors     []SampleError  `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Evaluate classifies every sample and scores exact label matches.
// Classification failures count as "unknown" predictions rather than
// aborting the run. Context cancellation stops the run with an error.
func Evaluate(ctx context.Context, classifier ImageClassifier, samples []Sample, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to evaluate")
	}

	logger.Info("starting evaluation", "samples", len(samples))

	report := &Report{
		TrueLabels: make([]string, 0, len(samples)),
		Predicted:  make([]string, 0, len(samples)),
		Confusion:  make(map[string]int),
	}

	for idx, sample := range samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		predicted := "unknown"
		result, err := classifier.ClassifyImage(ctx, sample.Path)
		if err != nil {
			logger.Warn("error processing sample", "path", sample.Path, "error", err)
			report.Errors = append(report.Errors, SampleError{
				Path:      sample.Path,
				TrueLabel: sample.Label,
				Error:     err.Error(),
			})
		} else if result.DocumentType != "" {
			predicted = result.DocumentType
		}

		report.TrueLabels = append(report.TrueLabels, sample.Label)
		report.Predicted = append(report.Predicted, predicted)
		report.Confusion[sample.Label+" -> "+predicted]++

		if (idx+1)%10 == 0 {
			logger.Info("evaluation progress", "processed", idx+1, "total", len(samples))
		}
	}

	for i := range report.TrueLabels {
		if report.TrueLabels[i] == report.Predicted[i] {
			report.Correct++
		}
	}
	report.Total = len(report.TrueLabels)
	report.Incorrect = report.Total - report.Correct
	report.Accuracy = float64(report.Correct) / float64(report.Total)

	logger.Info("evaluation complete",
		"accuracy", report.Accuracy,
		"correct", report.Correct,
		"incorrect", report.Incorrect,
		"errors", len(report.Errors))

	return report, nil
}
