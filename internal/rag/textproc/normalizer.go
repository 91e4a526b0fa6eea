package textproc

import (
	"regexp"
	"strings"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
)

//pdf extractors and scanners leave a lot of junk behind - stray control
//bytes, page footers, "!!!!" runs. Everything here is pure string -> string.

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	controlChars    = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x{7f}-\x{9f}]`)
	repeatedPunct   = regexp.MustCompile(`([.!?]){2,}`)
	numberOnlyLine  = regexp.MustCompile(`(?m)^\s*\d+\s*$`)
	pageNumberLabel = regexp.MustCompile(`(?i)Page \d+`)

	quoteReplacer = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
)

// Clean normalizes extracted text: whitespace runs collapse to single
// spaces, control characters and curly quotes go away, repeated terminal
// punctuation collapses to one.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	text := whitespaceRun.ReplaceAllString(raw, " ")
	text = controlChars.ReplaceAllString(text, "")
	text = quoteReplacer.Replace(text)
	text = repeatedPunct.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// StripPageNumbers drops standalone numeric lines and "Page N" labels.
// A true numeric line gets eaten too - accepted tradeoff, a lone number
// is useless for retrieval anyway.
func StripPageNumbers(raw string) string {
	text := numberOnlyLine.ReplaceAllString(raw, "")
	text = pageNumberLabel.ReplaceAllString(text, "")
	return text
}

// ExtractMeaningful runs the full cleanup and rejects near-empty scans so
// they never enter the index as noise chunks. The second return is false
// when the text is not worth indexing.
func ExtractMeaningful(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	cleaned := Clean(StripPageNumbers(raw))
	if len(cleaned) < config.MinMeaningfulChars {
		return "", false
	}
	if len(strings.Fields(cleaned)) < config.MinMeaningfulWords {
		return "", false
	}
	return cleaned, true
}
