package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"github.com/fadilmartias/pitch-evaluator/internal/model"
)

// ExtractionError reports an unreadable or corrupt presentation.
type ExtractionError struct {
	Name string
	Kind model.FileKind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s text from %q: %v", e.Kind, e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

type Extractor struct {
	pdfOCR bool
	logger *slog.Logger
}

func NewExtractor(cfg *config.ExtractConfig, logger *slog.Logger) *Extractor {
	e := &Extractor{logger: logger}
	if cfg != nil {
		e.pdfOCR = cfg.PDFOCR
	}
	return e
}

// KindFromFilename maps an upload name to its declared document kind.
func KindFromFilename(name string) model.FileKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".doc", ".docx":
		return model.KindWord
	case ".pdf":
		return model.KindPDF
	case ".ppt", ".pptx":
		return model.KindSlides
	default:
		return model.KindUnknown
	}
}

// Extract returns the plain text of doc. Unknown kinds yield an empty string.
func (e *Extractor) Extract(ctx context.Context, doc model.SourceDocument) (string, error) {
	var (
		text string
		err  error
	)
	switch doc.Kind {
	case model.KindWord:
		text, err = extractDocx(doc.Data)
	case model.KindPDF:
		text, err = e.extractPDF(ctx, doc.Data)
	case model.KindSlides:
		text, err = extractPptx(doc.Data)
	default:
		e.logger.Warn("unrecognized document kind, skipping extraction", "name", doc.Name, "kind", doc.Kind)
		return "", nil
	}
	if err != nil {
		return "", &ExtractionError{Name: doc.Name, Kind: doc.Kind, Err: err}
	}

	e.logger.Debug("extracted presentation text", "name", doc.Name, "kind", doc.Kind, "chars", len(text))
	return text, nil
}
