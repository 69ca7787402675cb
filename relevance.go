// Package relevance is the in-process entry point to the search and
// relevance ranking engine. It wires the content store, embedding provider,
// intent classifier, and scorer behind one injectable object; services that
// prefer HTTP use cmd/relevance and pkg/sdk instead.
package relevance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lorehub/relevance/internal/db"
	dbRedis "github.com/lorehub/relevance/internal/db/redis"
	"github.com/lorehub/relevance/internal/domain"
	"github.com/lorehub/relevance/internal/intent"
	contentrepo "github.com/lorehub/relevance/internal/repository/content"
	"github.com/lorehub/relevance/internal/repository/embcache"
	"github.com/lorehub/relevance/internal/scoring"
	openaiTransport "github.com/lorehub/relevance/internal/transport/openai"
	embeddinguc "github.com/lorehub/relevance/internal/usecase/embedding"
	searchuc "github.com/lorehub/relevance/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Engine is the relevance SDK entry point.
type Engine struct {
	store     db.Store
	searchSvc *searchuc.Service
	embedSvc  *embeddinguc.Service
}

// New creates an Engine and connects to the store.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("relevance: store address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("relevance: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("relevance: store not ready: %w", err)
	}

	return wireEngine(store, cfg), nil
}

func wireEngine(store db.Store, cfg *engineConfig) *Engine {
	logger := cfg.logger

	catalog := contentrepo.New(store, logger)
	cache := embcache.New(store, nil, logger)

	var embedder *openaiTransport.Embedder
	modelVersion := ""
	if cfg.openAIKey != "" {
		embedder = openaiTransport.NewEmbedder(&openaiTransport.Config{
			APIKey:     cfg.openAIKey,
			BaseURL:    cfg.openAIBaseURL,
			Model:      cfg.model,
			Dimensions: cfg.dimensions,
			Logger:     logger,
		})
		modelVersion = embedder.Model()
	}

	var aiStrategy intent.Strategy
	if cfg.aiIntent {
		aiStrategy = openaiTransport.NewIntentClassifier(&openaiTransport.IntentConfig{
			APIKey:  cfg.intentAPIKey,
			BaseURL: cfg.intentBaseURL,
			Model:   cfg.intentModel,
			Logger:  logger,
		})
	}
	classifier := intent.New(aiStrategy, logger)

	scorer := scoring.New(cfg.weights)

	// Pass nil interface (not typed nil pointer!) if the provider is not
	// configured. Go gotcha: (*Embedder)(nil) wrapped in domain.Embedder != nil.
	var queryEmbedder domain.Embedder
	var batchEmbedder domain.BatchEmbedder
	if embedder != nil {
		queryEmbedder = embedder
		batchEmbedder = embedder
	}

	searchSvc := searchuc.New(
		catalog, queryEmbedder, cache, classifier, scorer, modelVersion, logger,
	)

	var embedSvc *embeddinguc.Service
	if embedder != nil {
		embedSvc = embeddinguc.New(catalog, batchEmbedder, cache, modelVersion, logger)
	}

	return &Engine{
		store:     store,
		searchSvc: searchSvc,
		embedSvc:  embedSvc,
	}
}

// Close releases all resources.
func (e *Engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// Ping checks store connectivity.
func (e *Engine) Ping(ctx context.Context) error {
	if err := e.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs one query. The returned error covers invalid parameters only;
// runtime degradation is reported in Response.Metadata.
func (e *Engine) Search(ctx context.Context, req Request) (*Response, error) {
	query, err := queryFromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	resp := e.searchSvc.Search(ctx, query)
	return responseFromDomain(resp), nil
}

// Suggest returns title completions for a partial query.
func (e *Engine) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	out, err := e.searchSvc.Suggest(ctx, partial, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return out, nil
}

// AvailableFilters enumerates filterable catalog values.
func (e *Engine) AvailableFilters(ctx context.Context) (Filters, error) {
	f, err := e.searchSvc.AvailableFilters(ctx)
	if err != nil {
		return Filters{}, fmt.Errorf("available filters: %w", err)
	}
	return filtersFromUsecase(f), nil
}

// EmbedReport summarizes one catalog embedding run.
type EmbedReport struct {
	Embedded      int
	SkippedEmpty  int
	FailedBatches int
}

// EmbedCatalog vectorizes the whole catalog for the given kind ("title",
// "summary", or "content") and fills the embedding cache. Requires the
// provider configured via WithOpenAI.
func (e *Engine) EmbedCatalog(ctx context.Context, kind string) (EmbedReport, error) {
	if e.embedSvc == nil {
		return EmbedReport{}, errors.New("embed catalog: embedding provider not configured (use WithOpenAI)")
	}
	k := domain.EmbeddingKind(kind)
	if !k.IsValid() {
		return EmbedReport{}, fmt.Errorf("embed catalog: unknown kind %q", kind)
	}
	report, err := e.embedSvc.EmbedCatalog(ctx, k)
	if err != nil {
		return EmbedReport{}, fmt.Errorf("embed catalog: %w", err)
	}
	return EmbedReport{
		Embedded:      report.Embedded,
		SkippedEmpty:  report.SkippedEmpty,
		FailedBatches: report.FailedBatches,
	}, nil
}
