// Package eval measures classifier accuracy on a labeled folder hierarchy.
// Each category lives in its own directory of .jpg scans; a seeded shuffle
// carves out a reproducible test split which is then classified and scored.
package eval

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
)

// DefaultSeed makes dataset splits reproducible across runs.
const DefaultSeed = 42

// DefaultTestFraction is the share of samples held out for evaluation.
const DefaultTestFraction = 0.2

// Categories are the labeled folder names scanned under the dataset root.
var Categories = []string{
	"Bank Statement",
	"Check",
	"ITR_Form 16",
	"Salary Slip",
	"Utility",
}

// Sample is one labeled document image.
type Sample struct {
	Path  string `json:"image_path" yaml:"image_path"`
	Label string `json:"true_label" yaml:"true_label"`
}

// LoadDataset scans the category folders under basePath and returns all
// labeled samples in category order. Missing category folders are logged
// and skipped rather than failing the scan.
func LoadDataset(basePath string, logger *slog.Logger) ([]Sample, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("dataset path not found: %s", basePath)
	}

	logger.Info("scanning dataset folders", "path", basePath)

	var samples []Sample
	for _, category := range Categories {
		categoryPath := filepath.Join(basePath, category)
		if _, err := os.Stat(categoryPath); err != nil {
			logger.Warn("category folder not found", "path", categoryPath)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(categoryPath, "*.jpg"))
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", categoryPath, err)
		}
		logger.Info("found images", "category", category, "count", len(matches))

		for _, path := range matches {
			samples = append(samples, Sample{Path: path, Label: category})
		}
	}

	logger.Info("dataset scan complete", "total", len(samples))
	return samples, nil
}

// Split shuffles samples with the given seed and returns the held-out test
// split. testFraction values outside (0, 1) fall back to the default.
func Split(samples []Sample, seed int64, testFraction float64) []Sample {
	if testFraction <= 0 || testFraction >= 1 {
		testFraction = DefaultTestFraction
	}

	shuffled := make([]Sample, len(samples))
	copy(shuffled, samples)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	splitIndex := int(float64(len(shuffled)) * (1 - testFraction))
	return shuffled[splitIndex:]
}
