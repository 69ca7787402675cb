package embcache

import (
	"context"
	"strings"
	"testing"

	"github.com/lorehub/relevance/internal/db"
	"github.com/lorehub/relevance/internal/domain"
)

// mockKV implements the consumer store interface in memory.
type mockKV struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMockKV() *mockKV {
	return &mockKV{data: map[string][]byte{}}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKV) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockKV) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKV) Scan(_ context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func record(id string, kind domain.EmbeddingKind, model string, vec []float32) domain.EmbeddingRecord {
	return domain.EmbeddingRecord{ContentID: id, Kind: kind, ModelVersion: model, Vector: vec}
}

func TestCache_PutGetRoundTrip(t *testing.T) {
	kv := newMockKV()
	c := New(kv, nil, nil)
	ctx := context.Background()

	vec := []float32{0.25, -1.5, 3.75}
	if err := c.Put(ctx, record("doc-1", domain.KindContent, "m1", vec)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok := c.Get(ctx, "doc-1", domain.KindContent, "m1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != len(vec) {
		t.Fatalf("vector length = %d, want %d", len(got), len(vec))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("vec[%d] = %f, want %f", i, got[i], vec[i])
		}
	}
}

func TestCache_MissOnAbsentKey(t *testing.T) {
	c := New(newMockKV(), nil, nil)
	if _, ok := c.Get(context.Background(), "nope", domain.KindTitle, "m1"); ok {
		t.Fatal("expected miss")
	}
}

func TestCache_ModelVersionsIsolated(t *testing.T) {
	kv := newMockKV()
	c := New(kv, nil, nil)
	ctx := context.Background()

	if err := c.Put(ctx, record("doc-1", domain.KindContent, "m1", []float32{1})); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := c.Get(ctx, "doc-1", domain.KindContent, "m2"); ok {
		t.Fatal("vector from model m1 must not be visible under m2")
	}
}

func TestCache_KindsIsolated(t *testing.T) {
	kv := newMockKV()
	c := New(kv, nil, nil)
	ctx := context.Background()

	if err := c.Put(ctx, record("doc-1", domain.KindTitle, "m1", []float32{1})); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := c.Get(ctx, "doc-1", domain.KindContent, "m1"); ok {
		t.Fatal("title vector must not be visible under content kind")
	}
}

func TestCache_LastWriteWins(t *testing.T) {
	kv := newMockKV()
	c := New(kv, nil, nil)
	ctx := context.Background()

	_ = c.Put(ctx, record("doc-1", domain.KindContent, "m1", []float32{1}))
	_ = c.Put(ctx, record("doc-1", domain.KindContent, "m1", []float32{2}))

	got, ok := c.Get(ctx, "doc-1", domain.KindContent, "m1")
	if !ok || got[0] != 2 {
		t.Fatalf("got %v, want the second write", got)
	}
}

func TestCache_PutRejectsIncompleteRecords(t *testing.T) {
	c := New(newMockKV(), nil, nil)
	ctx := context.Background()

	bad := []domain.EmbeddingRecord{
		{Kind: domain.KindTitle, ModelVersion: "m1", Vector: []float32{1}},
		{ContentID: "a", ModelVersion: "m1", Vector: []float32{1}},
		{ContentID: "a", Kind: domain.KindTitle, Vector: []float32{1}},
		{ContentID: "a", Kind: domain.KindTitle, ModelVersion: "m1"},
	}
	for i, rec := range bad {
		if err := c.Put(ctx, rec); err == nil {
			t.Errorf("record %d should be rejected", i)
		}
	}
}

func TestCache_CorruptDataIsMiss(t *testing.T) {
	kv := newMockKV()
	c := New(kv, nil, nil)
	ctx := context.Background()

	_ = c.Put(ctx, record("doc-1", domain.KindContent, "m1", []float32{1, 2}))
	// Corrupt: length no longer a multiple of 4.
	for k, v := range kv.data {
		kv.data[k] = v[:5]
	}

	if _, ok := c.Get(ctx, "doc-1", domain.KindContent, "m1"); ok {
		t.Fatal("corrupt data should read as a miss")
	}
}

func TestCache_InvalidateModel(t *testing.T) {
	kv := newMockKV()
	c := New(kv, nil, nil)
	ctx := context.Background()

	_ = c.Put(ctx, record("a", domain.KindContent, "m1", []float32{1}))
	_ = c.Put(ctx, record("b", domain.KindTitle, "m1", []float32{1}))
	_ = c.Put(ctx, record("a", domain.KindContent, "m2", []float32{1}))

	deleted, err := c.InvalidateModel(ctx, "m1")
	if err != nil {
		t.Fatalf("invalidate model: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if _, ok := c.Get(ctx, "a", domain.KindContent, "m2"); !ok {
		t.Error("m2 vectors should survive m1 invalidation")
	}
}
