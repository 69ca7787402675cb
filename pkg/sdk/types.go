package sdk

// SearchRequest mirrors the POST /v1/search body.
type SearchRequest struct {
	Query               string         `json:"query"`
	Mode                string         `json:"mode,omitempty"`
	Filters             *SearchFilters `json:"filters,omitempty"`
	SimilarityThreshold float64        `json:"similarity_threshold,omitempty"`
	Limit               int            `json:"limit,omitempty"`
	Offset              int            `json:"offset,omitempty"`
}

// SearchFilters narrows the candidate set.
type SearchFilters struct {
	ContentTypes     []string `json:"content_types,omitempty"`
	PhilosophyDomain string   `json:"philosophy_domain,omitempty"`
	MaxComplexity    int      `json:"max_complexity,omitempty"`
}

// SearchResponse mirrors the search response body.
type SearchResponse struct {
	Success         bool           `json:"success"`
	Results         []SearchResult `json:"results"`
	Total           int            `json:"total"`
	Summary         string         `json:"summary,omitempty"`
	Suggestions     []string       `json:"suggestions,omitempty"`
	RelatedConcepts []string       `json:"related_concepts,omitempty"`
	Metadata        SearchMetadata `json:"metadata"`
}

// SearchResult is one ranked item.
type SearchResult struct {
	ContentID  string           `json:"content_id"`
	Title      string           `json:"title"`
	Source     string           `json:"source,omitempty"`
	Type       string           `json:"type"`
	Score      float64          `json:"score"`
	MatchType  string           `json:"match_type"`
	Highlights []string         `json:"highlights,omitempty"`
	Reasoning  string           `json:"reasoning,omitempty"`
	Similarity float64          `json:"similarity,omitempty"`
	Cultural   *CulturalContext `json:"cultural_context,omitempty"`
}

// CulturalContext annotates sensitive or indigenous-knowledge content.
type CulturalContext struct {
	HasIndicator bool     `json:"has_indicator"`
	Confidence   float64  `json:"confidence"`
	Concepts     []string `json:"concepts,omitempty"`
	NeedsReview  bool     `json:"needs_review"`
}

// SearchMetadata records how the response was produced.
type SearchMetadata struct {
	UsedEmbeddings   bool           `json:"used_embeddings"`
	FallbackUsed     bool           `json:"fallback_used"`
	ProcessingTimeMS int64          `json:"processing_time_ms"`
	Intent           IntentAnalysis `json:"intent"`
	QualityScore     float64        `json:"quality_score"`
	Error            string         `json:"error,omitempty"`
}

// IntentAnalysis is the query analysis attached to each response.
type IntentAnalysis struct {
	Primary    string   `json:"primary"`
	Secondary  []string `json:"secondary,omitempty"`
	Concepts   []string `json:"concepts,omitempty"`
	Complexity int      `json:"complexity"`
	Confidence float64  `json:"confidence"`
}

// FiltersResponse enumerates the filterable catalog values.
type FiltersResponse struct {
	ContentTypes      []string `json:"content_types"`
	PhilosophyDomains []string `json:"philosophy_domains"`
	Sources           []string `json:"sources"`
}
