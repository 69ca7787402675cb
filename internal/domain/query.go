package domain

import "fmt"

// SearchMode selects the scoring path.
type SearchMode string

// Search modes. All UI search experiences converge on this one parameter.
const (
	// ModeEnhanced uses embedding similarity blended with rule-based signals.
	ModeEnhanced SearchMode = "enhanced"
	// ModeLexical scores on term overlap and metadata only, no provider calls.
	ModeLexical SearchMode = "lexical"
)

// IsValid checks the mode against the supported values.
func (m SearchMode) IsValid() bool {
	return m == ModeEnhanced || m == ModeLexical
}

// Search parameter limits.
const (
	MaxQueryLength     = 1024
	DefaultLimit       = 20
	MaxLimit           = 100
	DefaultSimilarity  = 0.7
	MaxSuggestionLimit = 20
)

// QueryFilters narrows the candidate set before scoring.
type QueryFilters struct {
	ContentTypes     []ContentType
	PhilosophyDomain string
	MaxComplexity    int
}

// SearchQuery is a validated search request. Constructed per request, never
// persisted.
type SearchQuery struct {
	text       string
	mode       SearchMode
	filters    QueryFilters
	similarity float64
	limit      int
	offset     int
}

// NewSearchQuery validates and normalizes search parameters.
// Defaults: mode=enhanced, limit=20, similarity threshold 0.7.
// An empty query is valid: it produces an empty, successful response.
func NewSearchQuery(
	text string,
	mode SearchMode,
	filters QueryFilters,
	similarity float64,
	limit, offset int,
) (SearchQuery, error) {
	if len(text) > MaxQueryLength {
		return SearchQuery{}, fmt.Errorf("%w: query too long (max %d chars)", ErrInvalidQuery, MaxQueryLength)
	}
	if mode == "" {
		mode = ModeEnhanced
	}
	if !mode.IsValid() {
		return SearchQuery{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidQuery, mode)
	}
	for _, t := range filters.ContentTypes {
		if !t.IsValid() {
			return SearchQuery{}, fmt.Errorf("%w: unknown content type %q", ErrInvalidQuery, t)
		}
	}
	if filters.MaxComplexity < 0 || filters.MaxComplexity > MaxComplexity {
		return SearchQuery{}, fmt.Errorf("%w: max complexity %d out of [0,%d]",
			ErrInvalidQuery, filters.MaxComplexity, MaxComplexity)
	}
	if similarity == 0 {
		similarity = DefaultSimilarity
	}
	if similarity < 0 || similarity > 1 {
		return SearchQuery{}, fmt.Errorf("%w: similarity threshold must be in [0,1]", ErrInvalidQuery)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return SearchQuery{
		text:       text,
		mode:       mode,
		filters:    filters,
		similarity: similarity,
		limit:      limit,
		offset:     offset,
	}, nil
}

// Text returns the raw query text.
func (q *SearchQuery) Text() string { return q.text }

// Mode returns the requested scoring path.
func (q *SearchQuery) Mode() SearchMode { return q.mode }

// Filters returns the candidate filters.
func (q *SearchQuery) Filters() QueryFilters { return q.filters }

// SimilarityThreshold returns the minimum cosine similarity for the
// embedding path.
func (q *SearchQuery) SimilarityThreshold() float64 { return q.similarity }

// Limit returns the maximum results to return.
func (q *SearchQuery) Limit() int { return q.limit }

// Offset returns the pagination offset.
func (q *SearchQuery) Offset() int { return q.offset }
