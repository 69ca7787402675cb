// Package embcache persists one embedding vector per
// (content id, kind, model version) in a key-value store.
package embcache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/db"
	"github.com/lorehub/relevance/internal/domain"
)

const keyPrefix = "relevance:emb:"

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Cache stores embedding records. Writes are atomic per record (single SET);
// concurrent writers for the same key are last-write-wins. There is no TTL:
// invalidation is explicit, on content update or model change.
type Cache struct {
	store      store
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates an embedding cache. cacheTotal is a counter vec with label
// "result" ("hit"/"miss"), passed explicitly; nil disables it.
func New(s store, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{store: s, cacheTotal: cacheTotal, logger: logger}
}

// Get returns the cached vector, or ok=false when absent. A vector cached
// under a different model version is never returned. Unreadable cache data
// is treated as a miss and logged.
func (c *Cache) Get(
	ctx context.Context, contentID string, kind domain.EmbeddingKind, modelVersion string,
) ([]float32, bool) {
	key := cacheKey(contentID, kind, modelVersion)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached embedding", zap.String("key", key), zap.Error(err))
		}
		c.inc("miss")
		return nil, false
	}

	vec, err := bytesToVector(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached embedding", zap.String("key", key), zap.Error(err))
		c.inc("miss")
		return nil, false
	}

	c.inc("hit")
	return vec, true
}

// Put stores one record, replacing any existing vector for the same key.
func (c *Cache) Put(ctx context.Context, rec domain.EmbeddingRecord) error {
	if rec.ContentID == "" || !rec.Kind.IsValid() || rec.ModelVersion == "" {
		return fmt.Errorf("embedding record requires content id, kind, and model version")
	}
	if len(rec.Vector) == 0 {
		return fmt.Errorf("embedding record for %s has no vector", rec.ContentID)
	}

	key := cacheKey(rec.ContentID, rec.Kind, rec.ModelVersion)
	if err := c.store.Set(ctx, key, vectorToBytes(rec.Vector)); err != nil {
		return fmt.Errorf("cache embedding %s: %w", key, err)
	}
	return nil
}

// Invalidate removes the record for one (id, kind, model version) key, used
// when a content item is updated.
func (c *Cache) Invalidate(
	ctx context.Context, contentID string, kind domain.EmbeddingKind, modelVersion string,
) error {
	if err := c.store.Del(ctx, cacheKey(contentID, kind, modelVersion)); err != nil {
		return fmt.Errorf("invalidate embedding: %w", err)
	}
	return nil
}

// InvalidateModel drops every vector produced by a model version. Changing
// the model is a breaking change: old vectors must never enter similarity
// math against new ones.
func (c *Cache) InvalidateModel(ctx context.Context, modelVersion string) (int, error) {
	keys, err := c.store.Scan(ctx, keyPrefix+modelVersion+":*")
	if err != nil {
		return 0, fmt.Errorf("scan model %s: %w", modelVersion, err)
	}

	deleted := 0
	for _, key := range keys {
		if err := c.store.Del(ctx, key); err != nil {
			return deleted, fmt.Errorf("delete %s: %w", key, err)
		}
		deleted++
	}
	return deleted, nil
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(contentID string, kind domain.EmbeddingKind, modelVersion string) string {
	return keyPrefix + modelVersion + ":" + string(kind) + ":" + contentID
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding cache data: len=%d", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
