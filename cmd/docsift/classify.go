package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/classify"
	"github.com/docsift/docsift/internal/ingest"
)

var (
	classifyText   string
	classifyStrict bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify [path]",
	Short: "Classify a document image, PDF, or text file",
	Long: `Classify a scanned financial document. Images are OCR'd first; PDFs
have their first page rendered and OCR'd; .txt files and --text input
skip OCR entirely.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if classifyText == "" && len(args) == 0 {
			return fmt.Errorf("provide a document path or --text")
		}

		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		strict := cfg.Defaults.Strict
		if cmd.Flags().Changed("strict") {
			strict = classifyStrict
		}

		ctx := cmd.Context()

		if classifyText != "" {
			classifier, err := buildClassifier(cfg, strict, false)
			if err != nil {
				return err
			}
			result, err := classifier.ClassifyText(ctx, classifyText)
			if err != nil {
				return err
			}
			return output(result)
		}

		path := args[0]
		var result *classify.Result

		switch {
		case ingest.IsPDF(path):
			classifier, err := buildClassifier(cfg, strict, true)
			if err != nil {
				return err
			}
			imagePath, cleanup, err := ingest.RenderFirstPage(ctx, path)
			if err != nil {
				return err
			}
			defer cleanup()
			result, err = classifier.ClassifyImage(ctx, imagePath)
			if err != nil {
				return err
			}

		case strings.EqualFold(filepath.Ext(path), ".txt"):
			classifier, err := buildClassifier(cfg, strict, false)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read text file: %w", err)
			}
			result, err = classifier.ClassifyText(ctx, string(data))
			if err != nil {
				return err
			}

		default:
			classifier, err := buildClassifier(cfg, strict, true)
			if err != nil {
				return err
			}
			result, err = classifier.ClassifyImage(ctx, path)
			if err != nil {
				return err
			}
		}

		return output(result)
	},
}

func init() {
	classifyCmd.Flags().StringVar(&classifyText, "text", "", "classify raw text instead of a file")
	classifyCmd.Flags().BoolVar(&classifyStrict, "strict", true, "fail on unrecoverable model output instead of degrading")
}
