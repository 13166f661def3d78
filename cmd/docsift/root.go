package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/classify"
	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/llmjson"
	"github.com/docsift/docsift/internal/providers"
	"github.com/docsift/docsift/version"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Classify and extract scanned financial documents",
	Long: `docsift labels scanned financial documents (bank statements, salary
slips, tax forms, utility bills, checks) by running OCR and asking a
completion model to classify the text. Model output is recovered through
a tolerant parser that survives markdown fences, comments, trailing
commas, and unescaped quotes.

Commands:
  - classify: label a document image, PDF, or text
  - extract:  pull structured fields out of a document
  - evaluate: measure accuracy on a labeled folder hierarchy`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docsift/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, error",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// API keys commonly live in a local .env file.
		_ = godotenv.Load()
		setOutputFormat(outputFormat)
		setupLogging(logLevel)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(initCmd)
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	llmjson.SetLogger(logger)
}

// loadConfig builds the config manager from the --config flag.
func loadConfig() (*config.Manager, error) {
	mgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return mgr, nil
}

// buildRegistry instantiates providers from configuration.
func buildRegistry(cfg *config.Config) (*providers.Registry, error) {
	registry := providers.NewRegistry()
	if err := registry.LoadFromConfig(cfg.ToRegistryConfig()); err != nil {
		return nil, fmt.Errorf("failed to load providers: %w", err)
	}
	return registry, nil
}

// buildClassifier wires the configured providers into a classifier.
// needOCR controls whether a missing OCR provider is fatal.
func buildClassifier(cfg *config.Config, strict, needOCR bool) (*classify.Classifier, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	llm, err := registry.GetLLM(cfg.Defaults.LLMProvider)
	if err != nil {
		return nil, err
	}

	var ocr providers.OCRProvider
	if cfg.Defaults.OCRProvider != "" {
		ocr, err = registry.GetOCR(cfg.Defaults.OCRProvider)
		if err != nil && needOCR {
			return nil, err
		}
	}

	return classify.New(llm, ocr, classify.Options{
		Strict: strict,
		Logger: slog.Default(),
	}), nil
}
