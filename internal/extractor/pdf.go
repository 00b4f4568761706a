package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// extractPDF concatenates the text layer of every page in page order.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errEmptyDocument
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		b.WriteString(text)
	}

	if e.pdfOCR && strings.TrimSpace(b.String()) == "" && doc.NumPage() > 0 {
		e.logger.Info("PDF has no text layer, falling back to OCR", "pages", doc.NumPage())
		return e.ocrPDF(ctx, doc)
	}
	return b.String(), nil
}
