package embedding

import (
	"context"

	"github.com/lorehub/relevance/internal/domain"
)

// Catalog lists the content items to vectorize.
type Catalog interface {
	List(ctx context.Context, filters domain.QueryFilters) ([]domain.ContentItem, error)
}

// RecordWriter persists embedding records.
type RecordWriter interface {
	Put(ctx context.Context, rec domain.EmbeddingRecord) error
}
