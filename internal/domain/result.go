package domain

import "time"

// MatchType tags how a result matched the query.
type MatchType string

// Match types in priority order: exact > semantic > conceptual > contextual.
// VectorMatch is reserved for hits produced purely via the embedding path.
const (
	MatchExact      MatchType = "exact"
	MatchSemantic   MatchType = "semantic"
	MatchConceptual MatchType = "conceptual"
	MatchContextual MatchType = "contextual"
	MatchVector     MatchType = "vector-similarity"
)

// CulturalContext annotates a result that touches sensitive or
// indigenous-knowledge material. It is visible metadata: never used to hide
// or exclude content.
type CulturalContext struct {
	HasIndicator bool
	Confidence   float64
	Concepts     []string
	// NeedsReview flags sacred-content markers for human/community review
	// before fully automated display.
	NeedsReview bool
}

// SearchResult is one ranked item in a response. Built by the scorer,
// discarded after the response is returned.
type SearchResult struct {
	ContentID  string
	Item       *ContentItem
	Score      float64
	MatchType  MatchType
	Highlights []string
	Reasoning  string
	// Similarity is the raw cosine similarity when the embedding path
	// produced the hit; zero otherwise.
	Similarity float64
	Cultural   *CulturalContext
}

// SearchMetadata records how a response was produced.
type SearchMetadata struct {
	UsedEmbeddings bool
	FallbackUsed   bool
	ProcessingTime time.Duration
	Intent         IntentAnalysis
	// QualityScore blends average relevance, result-type diversity,
	// intent-match ratio, and high-quality-content ratio into [0,1].
	QualityScore float64
	Error        string
}

// SearchResponse is the public output of a search call.
type SearchResponse struct {
	Success         bool
	Results         []SearchResult
	Total           int
	Summary         string
	Suggestions     []string
	RelatedConcepts []string
	Metadata        SearchMetadata
}
