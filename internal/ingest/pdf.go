// Package ingest prepares scanned documents for classification. PDFs are
// rendered to page images with pdftoppm (poppler-utils); pdfcpu supplies
// the page count so callers can iterate or pick the first page.
package ingest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// IsPDF reports whether a path looks like a PDF by extension.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// PageCount returns the number of pages in a PDF.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count for %s: %w", path, err)
	}
	return count, nil
}

// RenderPage renders a single PDF page (1-indexed) to a PNG in outputDir
// and returns the image path. pdftoppm renders the page as displayed,
// unlike extracting embedded image objects whose internal numbering may
// not match page order.
func RenderPage(ctx context.Context, pdfPath string, pageNum int, outputDir string) (string, error) {
	if pageNum < 1 {
		return "", fmt.Errorf("invalid page number: %d", pageNum)
	}

	tmpDir, err := os.MkdirTemp("", "docsift-page-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPrefix := filepath.Join(tmpDir, "page")

	// -r 300 gives enough resolution for OCR; -singlefile drops the page
	// number suffix so the output path is predictable.
	pageStr := fmt.Sprintf("%d", pageNum)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", "300",
		"-singlefile",
		pdfPath,
		outputPrefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	srcPath := outputPrefix + ".png"
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}

	dstPath := filepath.Join(outputDir, fmt.Sprintf("page_%04d.png", pageNum))
	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write page image: %w", err)
	}

	return dstPath, nil
}

// RenderFirstPage renders page 1 of a PDF into a temporary directory the
// caller must clean up. Scanned financial documents usually carry their
// identifying content on the first page.
func RenderFirstPage(ctx context.Context, pdfPath string) (imagePath string, cleanup func(), err error) {
	outputDir, err := os.MkdirTemp("", "docsift-ingest-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(outputDir) }

	imagePath, err = RenderPage(ctx, pdfPath, 1, outputDir)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return imagePath, cleanup, nil
}
