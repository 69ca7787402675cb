// Package cultural detects indicator terms for sensitive or
// indigenous-knowledge content.
//
// Detection only ever annotates and prioritizes results. It is never used to
// hide or exclude content.
package cultural

import (
	"strings"
	"unicode"

	"github.com/lorehub/relevance/internal/domain"
)

// indicator is one entry in the fixed term table. Weight encodes specificity:
// multi-word phrases tied to indigenous knowledge systems score high, single
// words that also appear in everyday corporate usage score low.
type indicator struct {
	term   string
	weight float64
	sacred bool
}

// indicators is the fixed detection table. Order is irrelevant; every term is
// checked.
var indicators = []indicator{
	// Long-horizon thinking
	{term: "seven generations", weight: 0.6},
	{term: "seven generation thinking", weight: 0.65},
	{term: "intergenerational knowledge", weight: 0.5},

	// Custodianship / stewardship
	{term: "custodianship", weight: 0.45},
	{term: "custodian", weight: 0.35},
	{term: "stewardship of country", weight: 0.6},
	{term: "caring for country", weight: 0.6},
	{term: "knowledge keeper", weight: 0.55},
	{term: "elder", weight: 0.3},

	// Knowledge systems
	{term: "indigenous knowledge", weight: 0.6},
	{term: "traditional knowledge", weight: 0.55},
	{term: "traditional", weight: 0.3},
	{term: "ancestral", weight: 0.35},
	{term: "dreaming story", weight: 0.65, sacred: true},
	{term: "songline", weight: 0.65, sacred: true},

	// Ceremonial / sacred-content markers. "ceremony" alone is weak: it is
	// common corporate vocabulary (award ceremony, launch ceremony).
	{term: "ceremony", weight: 0.2, sacred: true},
	{term: "ceremonial", weight: 0.3, sacred: true},
	{term: "sacred", weight: 0.35, sacred: true},
	{term: "sacred site", weight: 0.65, sacred: true},
	{term: "sorry business", weight: 0.7, sacred: true},
	{term: "initiation", weight: 0.3, sacred: true},
}

// reviewConfidence is the minimum confidence at which a sacred-marker match
// is routed to human/community review. Below it the match is treated as
// everyday usage of the word.
const reviewConfidence = 0.4

// Detect scans text for indicator terms and returns a visible annotation.
// Confidence grows monotonically with the count and specificity of matches
// (noisy-or over term weights), never exceeding 1.
func Detect(text string) domain.CulturalContext {
	lowered := strings.ToLower(text)

	var (
		concepts   []string
		sacredHit  bool
		complement = 1.0
	)

	for _, ind := range indicators {
		if !containsTerm(lowered, ind.term) {
			continue
		}
		concepts = append(concepts, ind.term)
		complement *= 1 - ind.weight
		if ind.sacred {
			sacredHit = true
		}
	}

	if len(concepts) == 0 {
		return domain.CulturalContext{}
	}

	confidence := 1 - complement
	return domain.CulturalContext{
		HasIndicator: true,
		Confidence:   confidence,
		Concepts:     concepts,
		NeedsReview:  sacredHit && confidence >= reviewConfidence,
	}
}

// containsTerm reports whether term occurs in text on word boundaries, so
// "elder" does not fire on "elderberry".
func containsTerm(text, term string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start

		beforeOK := idx == 0 || !isWordRune(rune(text[idx-1]))
		afterIdx := idx + len(term)
		afterOK := afterIdx >= len(text) || !isWordRune(rune(text[afterIdx]))
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
