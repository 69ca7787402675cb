package search

import (
	"context"

	"github.com/lorehub/relevance/internal/domain"
)

// ContentStore lists candidate items, pre-filtered where the store can.
type ContentStore interface {
	List(ctx context.Context, filters domain.QueryFilters) ([]domain.ContentItem, error)
}

// VectorCache reads cached content embeddings.
type VectorCache interface {
	Get(ctx context.Context, contentID string, kind domain.EmbeddingKind, modelVersion string) ([]float32, bool)
}

// Classifier analyzes query intent. It never fails; at worst it returns the
// rule-based general analysis.
type Classifier interface {
	Classify(ctx context.Context, query string) domain.IntentAnalysis
}
