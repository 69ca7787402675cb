package domain

import "context"

// EmbeddingKind selects which text of a content item a vector represents.
type EmbeddingKind string

// Embedding kinds. Each kind has its own normalization budget and cache slot.
const (
	KindTitle   EmbeddingKind = "title"
	KindSummary EmbeddingKind = "summary"
	KindContent EmbeddingKind = "content"
)

// IsValid checks the kind against the supported set.
func (k EmbeddingKind) IsValid() bool {
	return k == KindTitle || k == KindSummary || k == KindContent
}

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// BatchEmbedder vectorizes multiple texts in a single API call.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Vector       []float32
	PromptTokens int
	TotalTokens  int
}

// BatchEmbeddingResult carries multiple vectors and aggregate token usage.
type BatchEmbeddingResult struct {
	Vectors      [][]float32
	PromptTokens int
	TotalTokens  int
}

// EmbeddingRecord is one cached vector. At most one record exists per
// (ContentID, Kind, ModelVersion); vectors from different model versions are
// never compared to each other.
type EmbeddingRecord struct {
	ContentID    string
	Kind         EmbeddingKind
	ModelVersion string
	Vector       []float32
}
