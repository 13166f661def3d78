package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/eval"
)

var (
	evalSeed         int64
	evalTestFraction float64
	evalLimit        int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <dataset-dir>",
	Short: "Measure classifier accuracy on a labeled dataset",
	Long: `Evaluate classification accuracy against a labeled folder hierarchy:
each category lives in its own directory of .jpg scans under the dataset
root. A seeded shuffle holds out a reproducible test split, every held-out
image is classified, and exact label matches are scored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		seed := cfg.Eval.Seed
		if cmd.Flags().Changed("seed") {
			seed = evalSeed
		}
		testFraction := cfg.Eval.TestFraction
		if cmd.Flags().Changed("test-fraction") {
			testFraction = evalTestFraction
		}

		logger := slog.Default()

		samples, err := eval.LoadDataset(args[0], logger)
		if err != nil {
			return err
		}

		testSet := eval.Split(samples, seed, testFraction)
		if evalLimit > 0 && evalLimit < len(testSet) {
			testSet = testSet[:evalLimit]
		}

		classifier, err := buildClassifier(cfg, cfg.Defaults.Strict, true)
		if err != nil {
			return err
		}

		report, err := eval.Evaluate(cmd.Context(), classifier, testSet, logger)
		if err != nil {
			return err
		}
		return output(report)
	},
}

func init() {
	evaluateCmd.Flags().Int64Var(&evalSeed, "seed", eval.DefaultSeed, "random seed for the dataset split")
	evaluateCmd.Flags().Float64Var(&evalTestFraction, "test-fraction", eval.DefaultTestFraction, "fraction of samples held out for evaluation")
	evaluateCmd.Flags().IntVar(&evalLimit, "limit", 0, "classify at most this many test samples (0 = all)")
}
