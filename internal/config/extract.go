package config

import "sync"

type ExtractConfig struct {
	PDFOCR bool
}

var (
	extractConfig *ExtractConfig
	extractOnce   sync.Once
)

func LoadExtractConfig() *ExtractConfig {
	extractOnce.Do(func() {
		extractConfig = &ExtractConfig{
			PDFOCR: boolEnv("EXTRACT_PDF_OCR", false),
		}
	})
	return extractConfig
}
