// Package intent classifies search queries by purpose and extracts domain
// concepts. A rule-based classifier is always available; an AI-assisted
// strategy can be layered on top and silently falls back to the rules.
package intent

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/domain"
)

// minAIQueryLength gates the AI-assisted pass: shorter queries classify
// reliably with the rules and are not worth a provider call.
const minAIQueryLength = 10

// Strategy is an optional higher-cost classification pass.
// TryClassify returns ok=false when the strategy is unavailable or produced
// malformed output; the caller must then use the rule-based result.
type Strategy interface {
	TryClassify(ctx context.Context, query string) (domain.IntentAnalysis, bool)
}

// Classifier maps a raw query to an intent analysis. The zero-cost rule pass
// is the guaranteed fallback; ai is optional.
type Classifier struct {
	ai     Strategy
	logger *zap.Logger
}

// New creates a classifier. ai may be nil.
func New(ai Strategy, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{ai: ai, logger: logger}
}

// Classify analyzes a query. The AI-assisted strategy is attempted first for
// queries long enough to justify it; any failure or malformed output falls
// back to the rules without surfacing an error.
func (c *Classifier) Classify(ctx context.Context, query string) domain.IntentAnalysis {
	if c.ai != nil && len(query) > minAIQueryLength {
		if analysis, ok := c.ai.TryClassify(ctx, query); ok {
			if valid := sanitize(analysis); valid != nil {
				return *valid
			}
			c.logger.Debug("AI intent analysis malformed, using rules",
				zap.String("query", query))
		}
	}
	return ClassifyRules(query)
}

// ClassifyRules runs the ordered pattern checks against the lower-cased
// query. Always succeeds.
func ClassifyRules(query string) domain.IntentAnalysis {
	lowered := strings.ToLower(strings.TrimSpace(query))

	analysis := domain.IntentAnalysis{
		Primary:    domain.IntentGeneral,
		Complexity: estimateComplexity(lowered),
		Confidence: 0.65,
		Concepts:   extractConcepts(lowered),
	}

	comparing := matchesAny(lowered, comparisonPatterns)

	for _, group := range patternGroups {
		if !matchesAny(lowered, group.patterns) {
			continue
		}
		if analysis.Primary == domain.IntentGeneral {
			analysis.Primary = group.intent
			analysis.Confidence = 0.85
		} else if group.intent != analysis.Primary {
			analysis.Secondary = append(analysis.Secondary, group.intent)
		}
	}

	if comparing {
		if analysis.Primary == domain.IntentGeneral {
			analysis.Primary = domain.IntentConceptual
			analysis.Confidence = 0.8
		}
		analysis.Secondary = appendIntent(analysis.Secondary, domain.IntentExamples, analysis.Primary)
	}

	return analysis
}

// sanitize validates AI output against the domain shape. Returns nil when the
// result is unusable so the caller falls back to rules.
func sanitize(a domain.IntentAnalysis) *domain.IntentAnalysis {
	if !a.Primary.IsValid() {
		return nil
	}
	if a.Confidence <= 0 || a.Confidence > 1 {
		return nil
	}
	if a.Complexity < domain.MinComplexity || a.Complexity > domain.MaxComplexity {
		a.Complexity = domain.MinComplexity + 1
	}

	secondary := a.Secondary[:0]
	for _, s := range a.Secondary {
		if s.IsValid() && s != a.Primary {
			secondary = appendIntent(secondary, s, a.Primary)
		}
	}
	a.Secondary = secondary
	a.Concepts = dedupe(a.Concepts)
	return &a
}

// extractConcepts scans the query against the concept-keyword table.
// Output is deduplicated and sorted for deterministic responses.
func extractConcepts(lowered string) []string {
	var concepts []string
	for concept, triggers := range conceptTriggers {
		if matchesAny(lowered, triggers) {
			concepts = append(concepts, concept)
		}
	}
	sort.Strings(concepts)
	return concepts
}

func estimateComplexity(lowered string) int {
	switch {
	case matchesAny(lowered, advancedCues):
		return 4
	case matchesAny(lowered, basicCues):
		return 1
	case len(strings.Fields(lowered)) > 8:
		return 3
	default:
		return 2
	}
}

func matchesAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func appendIntent(list []domain.Intent, it, primary domain.Intent) []domain.Intent {
	if it == primary {
		return list
	}
	for _, existing := range list {
		if existing == it {
			return list
		}
	}
	return append(list, it)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, s := range items {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
