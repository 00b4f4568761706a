package extractor

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ocrPDF renders each page and runs it through tesseract. Pages that fail are
// skipped; the last failure is reported only when nothing was recognized.
func (e *Extractor) ocrPDF(ctx context.Context, doc *fitz.Document) (string, error) {
	if err := checkTesseract(ctx); err != nil {
		return "", fmt.Errorf("tesseract check failed: %w", err)
	}

	var (
		fullText strings.Builder
		lastErr  error
	)
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := ocrPage(ctx, doc, n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			e.logger.Warn("OCR page failed", "page", n+1, "error", err)
			continue
		}
		e.logger.Debug("OCR page done", "page", n+1, "chars", len(pageText))
		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" && lastErr != nil {
		return "", fmt.Errorf("failed to extract text via OCR: %w", lastErr)
	}
	return result, nil
}

func ocrPage(ctx context.Context, doc *fitz.Document, n int) (string, error) {
	img, err := doc.Image(n)
	if err != nil {
		return "", fmt.Errorf("failed to extract image: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	err = savePNG(tmpFile, img)
	tmpFile.Close()
	if err != nil {
		return "", err
	}

	out, err := exec.CommandContext(ctx, "tesseract", tmpPath, "stdout", "-l", "eng").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, "tesseract", "-v").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w\nOutput: %s", err, string(out))
	}
	return nil
}

func savePNG(f *os.File, img image.Image) error {
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
