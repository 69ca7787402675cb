package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lorehub/relevance/internal/domain"
)

const (
	maxSuggestions     = 5
	maxRelatedConcepts = 8
	// conceptWindow caps how many top results feed the related-concepts
	// frequency count.
	conceptWindow = 10
	// highQuality marks content whose editorial quality prior counts toward
	// the search-quality blend.
	highQuality = 0.7
)

// buildSummary produces the one-line natural-language description of the
// result set.
func buildSummary(query string, total int, intent domain.IntentAnalysis) string {
	if total == 0 {
		return fmt.Sprintf("No results found for %q. Try broader terms or different keywords.", query)
	}

	noun := "results"
	if total == 1 {
		noun = "result"
	}
	switch intent.Primary {
	case domain.IntentImplementation:
		return fmt.Sprintf("Found %d %s with practical guidance for %q.", total, noun, query)
	case domain.IntentExamples:
		return fmt.Sprintf("Found %d %s with real examples related to %q.", total, noun, query)
	case domain.IntentPhilosophy:
		return fmt.Sprintf("Found %d %s exploring the thinking behind %q.", total, noun, query)
	case domain.IntentConceptual:
		return fmt.Sprintf("Found %d %s explaining %q.", total, noun, query)
	default:
		return fmt.Sprintf("Found %d %s for %q.", total, noun, query)
	}
}

// buildSuggestions derives up to five follow-up queries from the top result's
// concepts, type, and domain. Suggestions never repeat the original query.
func buildSuggestions(query string, results []domain.SearchResult, intent domain.IntentAnalysis) []string {
	if len(results) == 0 {
		return nil
	}

	loweredQuery := strings.ToLower(strings.TrimSpace(query))
	seen := map[string]struct{}{loweredQuery: {}}
	var out []string

	add := func(s string) {
		if len(out) >= maxSuggestions {
			return
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	top := results[0].Item

	for _, c := range top.KeyConcepts {
		add(fmt.Sprintf("more about %s", strings.ReplaceAll(c, "-", " ")))
	}
	for _, c := range intent.Concepts {
		add(fmt.Sprintf("how does %s work in practice", strings.ReplaceAll(c, "-", " ")))
	}
	if top.Type != "" {
		add(fmt.Sprintf("other %s content like %q", top.Type, top.Title))
	}
	if top.PhilosophyDomain != "" {
		add(fmt.Sprintf("explore the %s domain", top.PhilosophyDomain))
	}
	return out
}

// relatedConcepts frequency-ranks the concepts, tags, and themes of the top
// results. Ties break alphabetically so the list is deterministic.
func relatedConcepts(results []domain.SearchResult) []string {
	window := results
	if len(window) > conceptWindow {
		window = window[:conceptWindow]
	}

	counts := make(map[string]int)
	for _, r := range window {
		for _, group := range [][]string{r.Item.KeyConcepts, r.Item.Tags, r.Item.Themes} {
			for _, c := range group {
				c = strings.ToLower(strings.TrimSpace(c))
				if c == "" {
					continue
				}
				counts[c]++
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	concepts := make([]string, 0, len(counts))
	for c := range counts {
		concepts = append(concepts, c)
	}
	sort.Slice(concepts, func(i, j int) bool {
		if counts[concepts[i]] != counts[concepts[j]] {
			return counts[concepts[i]] > counts[concepts[j]]
		}
		return concepts[i] < concepts[j]
	})

	if len(concepts) > maxRelatedConcepts {
		concepts = concepts[:maxRelatedConcepts]
	}
	return concepts
}

// searchQuality blends four signals into [0,1]: average relevance, result
// type diversity, intent-to-type match ratio, and the share of high-quality
// content.
func searchQuality(results []domain.SearchResult, intent domain.IntentAnalysis) float64 {
	if len(results) == 0 {
		return 0
	}

	var (
		scoreSum   float64
		types      = make(map[domain.ContentType]struct{})
		intentFit  int
		highQualCt int
	)
	for _, r := range results {
		scoreSum += r.Score
		types[r.Item.Type] = struct{}{}
		if matchesIntent(intent.Primary, r.Item.Type) {
			intentFit++
		}
		if r.Item.QualityScore >= highQuality {
			highQualCt++
		}
	}

	n := float64(len(results))
	avgScore := scoreSum / n
	diversity := float64(len(types)) / 4.0
	if diversity > 1 {
		diversity = 1
	}
	intentRatio := float64(intentFit) / n
	qualityRatio := float64(highQualCt) / n

	return clamp01(0.4*avgScore + 0.2*diversity + 0.2*intentRatio + 0.2*qualityRatio)
}

func matchesIntent(intent domain.Intent, t domain.ContentType) bool {
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
	return true // general intent fits anything
}
