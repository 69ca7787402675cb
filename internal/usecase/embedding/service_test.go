package embedding

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lorehub/relevance/internal/domain"
)

type mockCatalog struct {
	items []domain.ContentItem
	err   error
}

func (m *mockCatalog) List(_ context.Context, _ domain.QueryFilters) ([]domain.ContentItem, error) {
	return m.items, m.err
}

type mockBatchEmbedder struct {
	calls   [][]string
	failOn  int // 1-based call index to fail, 0 = never
	failErr error
}

func (m *mockBatchEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls = append(m.calls, texts)
	if m.failOn != 0 && len(m.calls) == m.failOn {
		return domain.BatchEmbeddingResult{}, m.failErr
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{float32(i), 1}
	}
	return domain.BatchEmbeddingResult{Vectors: vectors}, nil
}

type mockWriter struct {
	records []domain.EmbeddingRecord
	err     error
}

func (m *mockWriter) Put(_ context.Context, rec domain.EmbeddingRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func catalogOf(n int) *mockCatalog {
	items := make([]domain.ContentItem, n)
	for i := range items {
		items[i] = domain.ContentItem{
			ID:    fmt.Sprintf("item-%03d", i),
			Title: fmt.Sprintf("Mentoring guide %d", i),
		}
	}
	return &mockCatalog{items: items}
}

func newTestService(catalog Catalog, emb domain.BatchEmbedder, w RecordWriter) *Service {
	return New(catalog, emb, w, "emb-v1", nil).WithBatchDelay(0)
}

func TestEmbedCatalogWritesRecords(t *testing.T) {
	emb := &mockBatchEmbedder{}
	w := &mockWriter{}
	svc := newTestService(catalogOf(3), emb, w)

	report, err := svc.EmbedCatalog(context.Background(), domain.KindTitle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Embedded != 3 {
		t.Fatalf("expected 3 embedded, got %d", report.Embedded)
	}
	if len(w.records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(w.records))
	}
	rec := w.records[0]
	if rec.ContentID != "item-000" || rec.Kind != domain.KindTitle || rec.ModelVersion != "emb-v1" {
		t.Fatalf("unexpected record key: %+v", rec)
	}
	if len(rec.Vector) == 0 {
		t.Fatal("expected non-empty vector")
	}
}

func TestEmbedCatalogPartitionsByBatchSize(t *testing.T) {
	emb := &mockBatchEmbedder{}
	w := &mockWriter{}
	svc := newTestService(catalogOf(205), emb, w)

	report, err := svc.EmbedCatalog(context.Background(), domain.KindTitle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(emb.calls); got != 3 {
		t.Fatalf("expected 3 batches for 205 items, got %d", got)
	}
	if len(emb.calls[0]) != MaxBatchSize || len(emb.calls[1]) != MaxBatchSize || len(emb.calls[2]) != 5 {
		t.Fatalf("unexpected batch sizes: %d/%d/%d",
			len(emb.calls[0]), len(emb.calls[1]), len(emb.calls[2]))
	}
	if report.Embedded != 205 {
		t.Fatalf("expected 205 embedded, got %d", report.Embedded)
	}
}

func TestEmbedCatalogSkipsEmptyText(t *testing.T) {
	catalog := &mockCatalog{items: []domain.ContentItem{
		{ID: "a", Title: "Real title"},
		{ID: "b", Title: "   "},
		{ID: "c", Title: "Another title"},
	}}
	emb := &mockBatchEmbedder{}
	w := &mockWriter{}
	svc := newTestService(catalog, emb, w)

	report, err := svc.EmbedCatalog(context.Background(), domain.KindTitle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.SkippedEmpty != 1 {
		t.Fatalf("expected 1 skipped, got %d", report.SkippedEmpty)
	}
	if report.Embedded != 2 {
		t.Fatalf("expected 2 embedded, got %d", report.Embedded)
	}
}

func TestEmbedCatalogSkipsFailedBatch(t *testing.T) {
	emb := &mockBatchEmbedder{failOn: 1, failErr: domain.ErrEmbeddingProvider}
	w := &mockWriter{}
	svc := newTestService(catalogOf(150), emb, w)

	report, err := svc.EmbedCatalog(context.Background(), domain.KindTitle)
	if err != nil {
		t.Fatalf("failed batch should not abort the run: %v", err)
	}
	if report.FailedBatches != 1 {
		t.Fatalf("expected 1 failed batch, got %d", report.FailedBatches)
	}
	if report.Embedded != 50 {
		t.Fatalf("expected 50 embedded from the surviving batch, got %d", report.Embedded)
	}
}

func TestEmbedCatalogRetriesRateLimitOnce(t *testing.T) {
	emb := &mockBatchEmbedder{failOn: 1, failErr: fmt.Errorf("quota: %w", domain.ErrRateLimited)}
	w := &mockWriter{}
	svc := newTestService(catalogOf(10), emb, w)

	report, err := svc.EmbedCatalog(context.Background(), domain.KindTitle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(emb.calls) != 2 {
		t.Fatalf("expected retry after rate limit, got %d calls", len(emb.calls))
	}
	if report.Embedded != 10 || report.FailedBatches != 0 {
		t.Fatalf("expected recovered batch, got %+v", report)
	}
}

func TestEmbedCatalogListError(t *testing.T) {
	catalog := &mockCatalog{err: errors.New("store down")}
	svc := newTestService(catalog, &mockBatchEmbedder{}, &mockWriter{})

	if _, err := svc.EmbedCatalog(context.Background(), domain.KindTitle); err == nil {
		t.Fatal("expected error when catalog listing fails")
	}
}

func TestEmbedCatalogSummaryFallsBackToTitle(t *testing.T) {
	catalog := &mockCatalog{items: []domain.ContentItem{
		{ID: "a", Title: "Only a title"},
	}}
	emb := &mockBatchEmbedder{}
	w := &mockWriter{}
	svc := newTestService(catalog, emb, w)

	report, err := svc.EmbedCatalog(context.Background(), domain.KindSummary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Embedded != 1 {
		t.Fatalf("expected title fallback to embed, got %+v", report)
	}
	if emb.calls[0][0] != "Only a title" {
		t.Fatalf("expected title text, got %q", emb.calls[0][0])
	}
}
