// Package content reads the content catalog populated by the ingestion
// pipelines. The engine never writes catalog records.
package content

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/db"
	"github.com/lorehub/relevance/internal/domain"
)

const keyPrefix = "relevance:content:"

// Repository lists catalog records from a hash store.
type Repository struct {
	store  db.HashStore
	logger *zap.Logger
}

// New creates a content repository.
func New(store db.HashStore, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{store: store, logger: logger}
}

// List returns catalog items matching the filters. The catalog has no
// server-side query support, so filtering happens here after a full scan;
// callers must expect result sets up to the whole catalog (~1000 items).
// Malformed records are logged and skipped, never surfaced to scoring.
func (r *Repository) List(ctx context.Context, filters domain.QueryFilters) ([]domain.ContentItem, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("%w: scan catalog: %w", domain.ErrContentStore, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog records: %w", domain.ErrContentStore, err)
	}

	items := make([]domain.ContentItem, 0, len(hashes))
	for i, fields := range hashes {
		id := strings.TrimPrefix(keys[i], keyPrefix)
		item := parseHashFields(id, fields)
		if err := item.Validate(); err != nil {
			r.logger.Warn("Skipping malformed catalog record", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		if !matchesFilters(&item, filters) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns one catalog item by id.
func (r *Repository) Get(ctx context.Context, id string) (domain.ContentItem, error) {
	fields, err := r.store.HGetAll(ctx, keyPrefix+id)
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("%w: read %s: %w", domain.ErrContentStore, id, err)
	}
	if len(fields) == 0 {
		return domain.ContentItem{}, fmt.Errorf("content item %s: %w", id, domain.ErrNotFound)
	}

	item := parseHashFields(id, fields)
	if err := item.Validate(); err != nil {
		return domain.ContentItem{}, fmt.Errorf("content item %s malformed: %w", id, err)
	}
	return item, nil
}

func matchesFilters(item *domain.ContentItem, f domain.QueryFilters) bool {
	if len(f.ContentTypes) > 0 {
		found := false
		for _, t := range f.ContentTypes {
			if item.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PhilosophyDomain != "" && !strings.EqualFold(item.PhilosophyDomain, f.PhilosophyDomain) {
		return false
	}
	if f.MaxComplexity > 0 && item.Complexity > f.MaxComplexity {
		return false
	}
	return true
}
