package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
	"github.com/lu4p/cat"
)

// TextExtractor is the black box between an uploaded file and raw text.
// The retrieval pipeline only cares about text-or-failure.
type TextExtractor interface {
	Extract(path string) (string, error)
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".docx": true,
	".rtf":  true,
}

// AllowedExtension reports whether we can extract text from this file type.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

type fileExtractor struct {
	logger *logger_i.Logger
}

func NewFileExtractor() TextExtractor {
	return &fileExtractor{logger: logger_i.NewLogger("Extractor")}
}

func (e *fileExtractor) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return e.extractPDF(path)
	case ".txt", ".docx", ".rtf":
		text, err := cat.File(path)
		if err != nil {
			e.logger.Error("Error extracting content from doc", "path", path, "error", err)
			return "", fmt.Errorf("failed to extract %s: %w", ext, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("unsupported content type: %s", ext)
	}
}
