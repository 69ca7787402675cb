// Package scoring blends vector similarity with rule-based textual and
// metadata signals into one composite relevance score.
package scoring

import (
	"fmt"
	"strings"

	"github.com/lorehub/relevance/internal/domain"
)

// semanticOverlap is the term-overlap ratio above which a match is tagged
// semantic rather than conceptual or contextual.
const semanticOverlap = 0.5

// Scorer computes composite relevance for content items.
type Scorer struct {
	weights Weights
}

// New creates a scorer. Zero weight fields fall back to the defaults.
func New(w Weights) *Scorer {
	w.ApplyDefaults()
	return &Scorer{weights: w}
}

// Weights returns the active blend.
func (s *Scorer) Weights() Weights { return s.weights }

// Input is everything known about one candidate at scoring time.
type Input struct {
	Item   *domain.ContentItem
	Query  string
	Intent domain.IntentAnalysis
	// MaxComplexity is the requested ceiling; 0 means no ceiling.
	MaxComplexity int
	// Similarity is the cosine score from the embedding path.
	Similarity    float64
	HasSimilarity bool
}

// Score produces a ranked result for one candidate. The composite is clamped
// to [0,1]; quality and engagement priors cannot push it above 1.
func (s *Scorer) Score(in Input) domain.SearchResult {
	item := in.Item
	query := strings.ToLower(strings.TrimSpace(in.Query))
	terms := queryTerms(query)

	var (
		rule    float64
		reasons []string
	)

	exact := query != "" && query == strings.ToLower(strings.TrimSpace(item.Title))
	if exact {
		rule += s.weights.ExactTitle
		reasons = append(reasons, "exact title match")
	}

	overlap := termOverlap(terms, strings.ToLower(item.SearchableText()))
	if overlap > 0 {
		rule += overlap * s.weights.TermOverlapMax
		reasons = append(reasons, fmt.Sprintf("matches %.0f%% of query terms", overlap*100))
	}

	conceptHits := conceptOverlap(in.Intent.Concepts, item)
	if conceptHits > 0 {
		rule += conceptHits * s.weights.ConceptOverlapMax
		reasons = append(reasons, "overlaps extracted concepts")
	}

	if bonus, aligned := s.intentAlignment(in.Intent, item.Type); aligned {
		rule += bonus
		reasons = append(reasons, fmt.Sprintf("%s content fits %s intent", item.Type, in.Intent.Primary))
	}

	rule += item.QualityScore * s.weights.QualityMax
	if item.EngagementScore > s.weights.EngagementFloor {
		rule += s.weights.EngagementBonus
		reasons = append(reasons, "highly engaged content")
	}
	if in.MaxComplexity > 0 && item.Complexity > 0 && item.Complexity <= in.MaxComplexity {
		rule += s.weights.ComplexityBonus
	}

	composite := rule
	if in.HasSimilarity {
		composite = s.weights.Similarity*in.Similarity + s.weights.RuleBased*rule
		reasons = append(reasons, fmt.Sprintf("semantic similarity %.2f", in.Similarity))
	}
	composite = clamp01(composite)

	result := domain.SearchResult{
		ContentID:  item.ID,
		Item:       item,
		Score:      composite,
		MatchType:  matchType(exact, overlap, conceptHits, in.HasSimilarity),
		Highlights: highlights(terms, item),
		Reasoning:  strings.Join(reasons, "; "),
	}
	if in.HasSimilarity {
		result.Similarity = in.Similarity
	}
	return result
}

// MeetsFloor reports whether a lexical-only composite clears the minimum
// threshold for inclusion.
func (s *Scorer) MeetsFloor(score float64) bool {
	return score >= s.weights.LexicalFloor
}

// matchType assigns the tag by priority: exact > semantic > conceptual >
// contextual. Hits produced purely by the embedding path, with no lexical
// signal at all, are tagged vector-similarity.
func matchType(exact bool, overlap, conceptHits float64, hasSimilarity bool) domain.MatchType {
	switch {
	case exact:
		return domain.MatchExact
	case overlap > semanticOverlap:
		return domain.MatchSemantic
	case conceptHits > 0:
		return domain.MatchConceptual
	case hasSimilarity && overlap == 0:
		return domain.MatchVector
	default:
		return domain.MatchContextual
	}
}

// intentAlignment returns the bonus for intent-to-content-type fit.
func (s *Scorer) intentAlignment(intent domain.IntentAnalysis, t domain.ContentType) (float64, bool) {
	if intentFitsType(intent.Primary, t) {
		return s.weights.AlignPrimary, true
	}
	for _, sec := range intent.Secondary {
		if intentFitsType(sec, t) {
			return s.weights.AlignSecondary, true
		}
	}
	return 0, false
}

func intentFitsType(intent domain.Intent, t domain.ContentType) bool {
	switch intent {
	case domain.IntentImplementation:
		return t == domain.TypeTool
	case domain.IntentExamples:
		return t == domain.TypeCaseStudy || t == domain.TypeStory
	case domain.IntentPhilosophy:
		return t == domain.TypePrimer
	case domain.IntentConceptual:
		return t == domain.TypeResearch
	}
	return false
}

// termOverlap is the proportion of query terms found in the text.
func termOverlap(terms []string, text string) float64 {
	if len(terms) == 0 {
		return 0
	}
	matched := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// conceptOverlap is the proportion of extracted query concepts present in
// the item's concepts, tags, or themes. Concept names are compared with
// hyphens normalized to spaces.
func conceptOverlap(concepts []string, item *domain.ContentItem) float64 {
	if len(concepts) == 0 {
		return 0
	}

	itemConcepts := make(map[string]struct{})
	for _, group := range [][]string{item.KeyConcepts, item.Tags, item.Themes} {
		for _, c := range group {
			itemConcepts[normalizeConcept(c)] = struct{}{}
		}
	}

	matched := 0
	for _, c := range concepts {
		if _, ok := itemConcepts[normalizeConcept(c)]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(concepts))
}

func normalizeConcept(c string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c)), "-", " ")
}

// highlights collects up to three text fragments containing query terms.
func highlights(terms []string, item *domain.ContentItem) []string {
	var out []string

	if containsAnyTerm(strings.ToLower(item.Title), terms) {
		out = append(out, item.Title)
	}
	if len(out) < 3 && containsAnyTerm(strings.ToLower(item.Description), terms) {
		out = append(out, snippet(item.Description, 140))
	}
	for _, tag := range item.Tags {
		if len(out) >= 3 {
			break
		}
		if containsAnyTerm(strings.ToLower(tag), terms) {
			out = append(out, tag)
		}
	}
	return out
}

func containsAnyTerm(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func snippet(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}

// queryTerms tokenizes the lower-cased query, dropping single-character
// noise.
func queryTerms(lowered string) []string {
	fields := strings.Fields(lowered)
	terms := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, `.,;:!?'"()`)
		if len(f) > 1 {
			terms = append(terms, f)
		}
	}
	return terms
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
