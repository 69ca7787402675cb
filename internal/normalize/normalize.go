// Package normalize prepares raw text for embedding or lexical matching.
package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lorehub/relevance/internal/domain"
)

// Per-kind length budgets in characters. Titles embed well short; full
// content is capped to stay inside the provider's context window.
const (
	TitleMax   = 256
	SummaryMax = 1024
	ContentMax = 8192
)

// Text cleans raw text and bounds it to the kind-specific budget, trimming at
// a whitespace boundary near the cutoff rather than mid-word. Returns
// domain.ErrEmptyText when nothing survives cleaning.
func Text(raw string, kind domain.EmbeddingKind) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown embedding kind %q", kind)
	}

	cleaned := Clean(raw)
	if cleaned == "" {
		return "", domain.ErrEmptyText
	}

	return truncateAtBoundary(cleaned, maxFor(kind)), nil
}

// Clean collapses whitespace runs and strips characters outside the safe
// punctuation set. Idempotent: Clean(Clean(s)) == Clean(s).
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastSpace := true // swallow leading whitespace
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case safeRune(r):
			b.WriteRune(r)
			lastSpace = false
		}
	}

	return strings.TrimRight(b.String(), " ")
}

func maxFor(kind domain.EmbeddingKind) int {
	switch kind {
	case domain.KindTitle:
		return TitleMax
	case domain.KindSummary:
		return SummaryMax
	default:
		return ContentMax
	}
}

// safeRune keeps letters, digits, and a conservative punctuation set.
func safeRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '.', ',', ';', ':', '!', '?', '\'', '"', '-', '_', '(', ')', '/', '&', '%', '+':
		return true
	}
	return false
}

// truncateAtBoundary cuts text to at most max characters, backing up to the
// previous word boundary when the cut lands mid-word.
func truncateAtBoundary(text string, max int) string {
	if len(text) <= max {
		return text
	}

	cut := text[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ")
}
