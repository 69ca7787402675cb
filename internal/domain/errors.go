package domain

import "errors"

var (
	// ErrEmptyText signals that normalization left nothing to embed or match.
	ErrEmptyText = errors.New("empty text after normalization")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrDimensionMismatch signals vectors of different lengths in similarity math,
	// usually a model version mix-up.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrRateLimited signals a provider rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrContentStore signals that the content catalog is unreachable.
	ErrContentStore = errors.New("content store unavailable")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid search query")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
