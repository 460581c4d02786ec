package textfilter

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// InputNormalizer prepares raw player input for full-match command patterns.
// Matching is meant to ignore whitespace layout and letter case, so the
// normalizer collapses runs of whitespace, drops control characters, folds
// full-width forms to their narrow equivalents and case-folds the result.
type InputNormalizer struct {
	folder cases.Caser
}

// NewInputNormalizer creates a normalizer.
func NewInputNormalizer() *InputNormalizer {
	return &InputNormalizer{
		folder: cases.Fold(),
	}
}

// Normalize returns the canonical form of input.
func (n *InputNormalizer) Normalize(input string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)

	cleaned = width.Fold.String(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	// Caser is stateful; reset before reuse.
	n.folder.Reset()
	return n.folder.String(cleaned)
}

// IsBlank reports whether input has nothing but whitespace and control characters.
func IsBlank(input string) bool {
	for _, r := range input {
		if !unicode.IsSpace(r) && !unicode.IsControl(r) {
			return false
		}
	}
	return true
}
