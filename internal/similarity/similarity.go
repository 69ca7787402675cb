// Package similarity implements cosine similarity matching over embedding
// vectors.
package similarity

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/domain"
)

// DefaultThreshold is the minimum cosine similarity for a candidate to count
// as a match.
const DefaultThreshold = 0.7

// Candidate pairs a content id with its cached vector.
type Candidate struct {
	ID     string
	Vector []float32
}

// Match is one candidate that cleared the threshold.
type Match struct {
	ID    string
	Score float64
}

// Cosine computes cosine similarity between two vectors. Vectors of different
// lengths (a model version mix-up) fail with domain.ErrDimensionMismatch.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("%w: empty vectors", domain.ErrDimensionMismatch)
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// FindSimilar scores every candidate against the query vector, drops those
// below threshold, and returns at most limit matches sorted by descending
// similarity. Equal scores keep the original candidate order. A failing
// candidate is logged and skipped; it never aborts the scan.
func FindSimilar(
	query []float32,
	candidates []Candidate,
	threshold float64,
	limit int,
	logger *zap.Logger,
) []Match {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score, err := Cosine(query, c.Vector)
		if err != nil {
			logger.Warn("Skipping candidate with incompatible vector",
				zap.String("content_id", c.ID), zap.Error(err))
			continue
		}
		if score < threshold {
			continue
		}
		matches = append(matches, Match{ID: c.ID, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
