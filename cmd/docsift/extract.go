package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/extract"
	"github.com/docsift/docsift/internal/ingest"
)

var extractText string

var extractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Extract structured fields from a document",
	Long: `Extract typed fields (account numbers, amounts, dates, names) from a
scanned financial document into a flat record. Images and PDFs are OCR'd
first; .txt files and --text input skip OCR.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if extractText == "" && len(args) == 0 {
			return fmt.Errorf("provide a document path or --text")
		}

		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		registry, err := buildRegistry(cfg)
		if err != nil {
			return err
		}
		llm, err := registry.GetLLM(cfg.Defaults.LLMProvider)
		if err != nil {
			return err
		}
		extractor := extract.NewExtractor(llm, slog.Default())

		ctx := cmd.Context()

		text := extractText
		if text == "" {
			path := args[0]
			switch {
			case strings.EqualFold(filepath.Ext(path), ".txt"):
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read text file: %w", err)
				}
				text = string(data)

			default:
				imagePath := path
				if ingest.IsPDF(path) {
					rendered, cleanup, err := ingest.RenderFirstPage(ctx, path)
					if err != nil {
						return err
					}
					defer cleanup()
					imagePath = rendered
				}

				ocr, err := registry.GetOCR(cfg.Defaults.OCRProvider)
				if err != nil {
					return err
				}
				image, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("failed to read image: %w", err)
				}
				ocrResult, err := ocr.ProcessImage(ctx, image)
				if err != nil {
					return fmt.Errorf("OCR failed: %w", err)
				}
				text = ocrResult.Text
			}
		}

		result, err := extractor.ExtractText(ctx, text)
		if err != nil {
			return err
		}
		return output(result)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractText, "text", "", "extract from raw text instead of a file")
}
