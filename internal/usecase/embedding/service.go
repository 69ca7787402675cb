// Package embedding generates and caches content vectors in provider-sized
// batches.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/domain"
	"github.com/lorehub/relevance/internal/normalize"
)

// MaxBatchSize is the provider's documented items-per-request limit.
const MaxBatchSize = 100

// defaultBatchDelay spaces consecutive batches to respect the provider's
// per-minute rate limit.
const defaultBatchDelay = 200 * time.Millisecond

// Service walks the catalog and fills the embedding cache. Batches are
// processed sequentially within one run; a failed batch is skipped, not
// fatal.
type Service struct {
	catalog      Catalog
	embedder     domain.BatchEmbedder
	cache        RecordWriter
	modelVersion string
	batchSize    int
	batchDelay   time.Duration
	logger       *zap.Logger
}

// New creates an embedding service.
func New(
	catalog Catalog,
	embedder domain.BatchEmbedder,
	cache RecordWriter,
	modelVersion string,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:      catalog,
		embedder:     embedder,
		cache:        cache,
		modelVersion: modelVersion,
		batchSize:    MaxBatchSize,
		batchDelay:   defaultBatchDelay,
		logger:       logger,
	}
}

// WithBatchSize lowers the batch cap (it can never exceed the provider
// limit).
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 && size <= MaxBatchSize {
		s.batchSize = size
	}
	return s
}

// WithBatchDelay overrides the inter-batch delay.
func (s *Service) WithBatchDelay(d time.Duration) *Service {
	if d >= 0 {
		s.batchDelay = d
	}
	return s
}

// Report summarizes one catalog embedding run.
type Report struct {
	Embedded      int
	SkippedEmpty  int
	FailedBatches int
}

// EmbedCatalog vectorizes every catalog item's text of the given kind and
// writes the records to the cache. Items whose text is empty after
// normalization are skipped. A failed batch is logged and skipped so the run
// returns partial success rather than aborting.
func (s *Service) EmbedCatalog(ctx context.Context, kind domain.EmbeddingKind) (Report, error) {
	items, err := s.catalog.List(ctx, domain.QueryFilters{})
	if err != nil {
		return Report{}, fmt.Errorf("list catalog: %w", err)
	}

	var report Report

	type pending struct {
		id   string
		text string
	}
	batch := make([]pending, 0, s.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = p.text
		}

		res, err := s.embedBatchWithRetry(ctx, texts)
		if err != nil {
			s.logger.Warn("Skipping failed embedding batch",
				zap.Int("size", len(batch)), zap.Error(err))
			report.FailedBatches++
			batch = batch[:0]
			return
		}

		for i, p := range batch {
			rec := domain.EmbeddingRecord{
				ContentID:    p.id,
				Kind:         kind,
				ModelVersion: s.modelVersion,
				Vector:       res.Vectors[i],
			}
			if err := s.cache.Put(ctx, rec); err != nil {
				s.logger.Warn("Failed to cache embedding",
					zap.String("content_id", p.id), zap.Error(err))
				continue
			}
			report.Embedded++
		}
		batch = batch[:0]

		if s.batchDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.batchDelay):
			}
		}
	}

	for i := range items {
		if ctx.Err() != nil {
			return report, fmt.Errorf("embed catalog: %w", ctx.Err())
		}

		text, err := normalize.Text(textFor(&items[i], kind), kind)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyText) {
				report.SkippedEmpty++
				continue
			}
			return report, fmt.Errorf("normalize %s: %w", items[i].ID, err)
		}

		batch = append(batch, pending{id: items[i].ID, text: text})
		if len(batch) >= s.batchSize {
			flush()
		}
	}
	flush()

	s.logger.Info("Catalog embedding run finished",
		zap.String("kind", string(kind)),
		zap.String("model", s.modelVersion),
		zap.Int("embedded", report.Embedded),
		zap.Int("skipped_empty", report.SkippedEmpty),
		zap.Int("failed_batches", report.FailedBatches),
	)
	return report, nil
}

// embedBatchWithRetry retries a rate-limited batch once after waiting out
// the inter-batch delay.
func (s *Service) embedBatchWithRetry(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	res, err := s.embedder.BatchEmbed(ctx, texts)
	if err == nil || !errors.Is(err, domain.ErrRateLimited) {
		return res, err
	}

	s.logger.Warn("Rate limited, retrying batch once", zap.Int("size", len(texts)))
	select {
	case <-ctx.Done():
		return domain.BatchEmbeddingResult{}, ctx.Err()
	case <-time.After(s.batchDelay):
	}
	return s.embedder.BatchEmbed(ctx, texts)
}

// textFor picks the item text matching the embedding kind, preferring the
// richer field and falling back to what the record has.
func textFor(item *domain.ContentItem, kind domain.EmbeddingKind) string {
	switch kind {
	case domain.KindTitle:
		return item.Title
	case domain.KindSummary:
		if item.Description != "" {
			return item.Description
		}
		return item.Title
	default:
		if item.Body != "" {
			return item.Title + " " + item.Description + " " + item.Body
		}
		return item.Title + " " + item.Description
	}
}
