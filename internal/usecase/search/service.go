// Package search orchestrates the full query pipeline: intent analysis,
// candidate retrieval, embedding or lexical scoring, and response assembly.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/cultural"
	"github.com/lorehub/relevance/internal/domain"
	"github.com/lorehub/relevance/internal/metrics"
	"github.com/lorehub/relevance/internal/normalize"
	"github.com/lorehub/relevance/internal/scoring"
	"github.com/lorehub/relevance/internal/similarity"
)

// culturalBoost nudges annotated results up the ranking without ever
// displacing an exact match (whose composite is already 1.0).
const culturalBoost = 0.05

// Service runs searches end to end. The embedding path is best-effort:
// any failure on it degrades the request to lexical scoring, and only a
// content-store failure produces a failed response.
type Service struct {
	store        ContentStore
	embedder     domain.Embedder
	cache        VectorCache
	classifier   Classifier
	scorer       *scoring.Scorer
	modelVersion string
	embedKind    domain.EmbeddingKind
	logger       *zap.Logger
}

// New creates a search service. embedder and cache may be nil; the service
// then runs lexical-only regardless of the requested mode.
func New(
	store ContentStore,
	embedder domain.Embedder,
	cache VectorCache,
	classifier Classifier,
	scorer *scoring.Scorer,
	modelVersion string,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:        store,
		embedder:     embedder,
		cache:        cache,
		classifier:   classifier,
		scorer:       scorer,
		modelVersion: modelVersion,
		embedKind:    domain.KindContent,
		logger:       logger,
	}
}

// Search executes one query. The response is always well-formed; Success is
// false only when the content store itself failed.
func (s *Service) Search(ctx context.Context, q domain.SearchQuery) domain.SearchResponse {
	start := time.Now()
	mode := q.Mode()

	resp := s.run(ctx, q)
	resp.Metadata.ProcessingTime = time.Since(start)

	status := "ok"
	if !resp.Success {
		status = "error"
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(mode), status).Inc()
	metrics.SearchDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	metrics.SearchResultCount.Observe(float64(len(resp.Results)))

	s.logger.Info("Search completed",
		zap.String("mode", string(mode)),
		zap.Bool("success", resp.Success),
		zap.Bool("used_embeddings", resp.Metadata.UsedEmbeddings),
		zap.Bool("fallback_used", resp.Metadata.FallbackUsed),
		zap.Int("total", resp.Total),
		zap.Duration("took", resp.Metadata.ProcessingTime),
	)
	return resp
}

func (s *Service) run(ctx context.Context, q domain.SearchQuery) domain.SearchResponse {
	text := strings.TrimSpace(q.Text())
	if text == "" {
		return domain.SearchResponse{
			Success: true,
			Results: []domain.SearchResult{},
			Summary: "No query provided.",
		}
	}

	intent := s.classifier.Classify(ctx, text)

	items, err := s.store.List(ctx, q.Filters())
	if err != nil {
		s.logger.Error("Content store unavailable", zap.Error(err))
		return domain.SearchResponse{
			Success: false,
			Results: []domain.SearchResult{},
			Summary: "Search is temporarily unavailable.",
			Metadata: domain.SearchMetadata{
				Intent: intent,
				Error:  fmt.Sprintf("list content: %v", err),
			},
		}
	}

	var (
		results        []domain.SearchResult
		usedEmbeddings bool
		fallbackUsed   bool
	)

	if q.Mode() == domain.ModeEnhanced && s.embedder != nil && s.cache != nil {
		scored, embErr := s.scoreWithEmbeddings(ctx, text, q, intent, items)
		if embErr != nil {
			s.logger.Warn("Embedding path failed, degrading to lexical scoring",
				zap.Error(embErr))
			metrics.SearchFallbacksTotal.Inc()
			fallbackUsed = true
		} else {
			results = scored
			usedEmbeddings = true
		}
	}

	if !usedEmbeddings {
		results = s.scoreLexical(text, q, intent, items)
	}

	s.annotateCultural(results)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	total := len(results)
	page := paginate(results, q.Offset(), q.Limit())

	resp := domain.SearchResponse{
		Success:         true,
		Results:         page,
		Total:           total,
		Summary:         buildSummary(text, total, intent),
		Suggestions:     buildSuggestions(text, results, intent),
		RelatedConcepts: relatedConcepts(results),
		Metadata: domain.SearchMetadata{
			UsedEmbeddings: usedEmbeddings,
			FallbackUsed:   fallbackUsed,
			Intent:         intent,
			QualityScore:   searchQuality(results, intent),
		},
	}
	return resp
}

// scoreWithEmbeddings embeds the query, matches it against cached content
// vectors, and blends similarity into the composite score. Items without a
// cached vector still get a lexical score but must clear the floor.
func (s *Service) scoreWithEmbeddings(
	ctx context.Context,
	text string,
	q domain.SearchQuery,
	intent domain.IntentAnalysis,
	items []domain.ContentItem,
) ([]domain.SearchResult, error) {
	normalized, err := normalize.Text(text, domain.KindSummary)
	if err != nil {
		return nil, fmt.Errorf("normalize query: %w", err)
	}

	embedded, err := s.embedder.Embed(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	candidates := make([]similarity.Candidate, 0, len(items))
	for i := range items {
		vec, ok := s.cache.Get(ctx, items[i].ID, s.embedKind, s.modelVersion)
		if !ok {
			continue
		}
		candidates = append(candidates, similarity.Candidate{ID: items[i].ID, Vector: vec})
	}

	matches := similarity.FindSimilar(
		embedded.Vector, candidates, q.SimilarityThreshold(), len(candidates), s.logger)
	byID := make(map[string]float64, len(matches))
	for _, m := range matches {
		byID[m.ID] = m.Score
	}

	results := make([]domain.SearchResult, 0, len(items))
	for i := range items {
		sim, hasSim := byID[items[i].ID]
		res := s.scorer.Score(scoring.Input{
			Item:          &items[i],
			Query:         text,
			Intent:        intent,
			MaxComplexity: q.Filters().MaxComplexity,
			Similarity:    sim,
			HasSimilarity: hasSim,
		})
		if !hasSim && !s.scorer.MeetsFloor(res.Score) {
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

// scoreLexical scores on textual and metadata signals only. Results below
// the floor are dropped.
func (s *Service) scoreLexical(
	text string,
	q domain.SearchQuery,
	intent domain.IntentAnalysis,
	items []domain.ContentItem,
) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(items))
	for i := range items {
		res := s.scorer.Score(scoring.Input{
			Item:          &items[i],
			Query:         text,
			Intent:        intent,
			MaxComplexity: q.Filters().MaxComplexity,
		})
		if !s.scorer.MeetsFloor(res.Score) {
			continue
		}
		results = append(results, res)
	}
	return results
}

// annotateCultural attaches the indicator annotation to each result and
// nudges flagged content up. A detector panic is contained: the result keeps
// a zero-value annotation and the search continues.
func (s *Service) annotateCultural(results []domain.SearchResult) {
	for i := range results {
		cc := s.safeDetect(results[i].Item)
		if !cc.HasIndicator {
			continue
		}
		results[i].Cultural = &cc
		results[i].Score = clamp01(results[i].Score + culturalBoost)
	}
}

func (s *Service) safeDetect(item *domain.ContentItem) (cc domain.CulturalContext) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Cultural detector panicked",
				zap.String("content_id", item.ID), zap.Any("panic", r))
			cc = domain.CulturalContext{}
		}
	}()
	return cultural.Detect(item.SearchableText())
}

func paginate(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset >= len(results) {
		return []domain.SearchResult{}
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
