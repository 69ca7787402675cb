package chi

import (
	"time"

	"github.com/lorehub/relevance/internal/domain"
	searchuc "github.com/lorehub/relevance/internal/usecase/search"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	codeBadRequest    = "bad_request"
	codeInternalError = "internal_error"
	codeUnavailable   = "unavailable"
)

type searchRequest struct {
	Query               string         `json:"query"`
	Mode                string         `json:"mode,omitempty"`
	Filters             *searchFilters `json:"filters,omitempty"`
	SimilarityThreshold float64        `json:"similarity_threshold,omitempty"`
	Limit               int            `json:"limit,omitempty"`
	Offset              int            `json:"offset,omitempty"`
}

type searchFilters struct {
	ContentTypes     []string `json:"content_types,omitempty"`
	PhilosophyDomain string   `json:"philosophy_domain,omitempty"`
	MaxComplexity    int      `json:"max_complexity,omitempty"`
}

type searchResponse struct {
	Success         bool           `json:"success"`
	Results         []searchResult `json:"results"`
	Total           int            `json:"total"`
	Summary         string         `json:"summary,omitempty"`
	Suggestions     []string       `json:"suggestions,omitempty"`
	RelatedConcepts []string       `json:"related_concepts,omitempty"`
	Metadata        searchMetadata `json:"metadata"`
}

type searchResult struct {
	ContentID  string           `json:"content_id"`
	Title      string           `json:"title"`
	Source     string           `json:"source,omitempty"`
	Type       string           `json:"type"`
	Score      float64          `json:"score"`
	MatchType  string           `json:"match_type"`
	Highlights []string         `json:"highlights,omitempty"`
	Reasoning  string           `json:"reasoning,omitempty"`
	Similarity float64          `json:"similarity,omitempty"`
	Cultural   *culturalContext `json:"cultural_context,omitempty"`
}

type culturalContext struct {
	HasIndicator bool     `json:"has_indicator"`
	Confidence   float64  `json:"confidence"`
	Concepts     []string `json:"concepts,omitempty"`
	NeedsReview  bool     `json:"needs_review"`
}

type searchMetadata struct {
	UsedEmbeddings   bool           `json:"used_embeddings"`
	FallbackUsed     bool           `json:"fallback_used"`
	ProcessingTimeMS int64          `json:"processing_time_ms"`
	Intent           intentAnalysis `json:"intent"`
	QualityScore     float64        `json:"quality_score"`
	Error            string         `json:"error,omitempty"`
}

type intentAnalysis struct {
	Primary    string   `json:"primary"`
	Secondary  []string `json:"secondary,omitempty"`
	Concepts   []string `json:"concepts,omitempty"`
	Complexity int      `json:"complexity"`
	Confidence float64  `json:"confidence"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

type filtersResponse struct {
	ContentTypes      []string `json:"content_types"`
	PhilosophyDomains []string `json:"philosophy_domains"`
	Sources           []string `json:"sources"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func queryFromRequest(req searchRequest) (domain.SearchQuery, error) {
	var filters domain.QueryFilters
	if req.Filters != nil {
		filters.PhilosophyDomain = req.Filters.PhilosophyDomain
		filters.MaxComplexity = req.Filters.MaxComplexity
		for _, t := range req.Filters.ContentTypes {
			filters.ContentTypes = append(filters.ContentTypes, domain.ContentType(t))
		}
	}
	return domain.NewSearchQuery(
		req.Query,
		domain.SearchMode(req.Mode),
		filters,
		req.SimilarityThreshold,
		req.Limit,
		req.Offset,
	)
}

func responseToDTO(resp domain.SearchResponse) searchResponse {
	results := make([]searchResult, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = resultToDTO(r)
	}
	return searchResponse{
		Success:         resp.Success,
		Results:         results,
		Total:           resp.Total,
		Summary:         resp.Summary,
		Suggestions:     resp.Suggestions,
		RelatedConcepts: resp.RelatedConcepts,
		Metadata: searchMetadata{
			UsedEmbeddings:   resp.Metadata.UsedEmbeddings,
			FallbackUsed:     resp.Metadata.FallbackUsed,
			ProcessingTimeMS: resp.Metadata.ProcessingTime.Milliseconds(),
			Intent:           intentToDTO(resp.Metadata.Intent),
			QualityScore:     resp.Metadata.QualityScore,
			Error:            resp.Metadata.Error,
		},
	}
}

func resultToDTO(r domain.SearchResult) searchResult {
	out := searchResult{
		ContentID:  r.ContentID,
		Score:      r.Score,
		MatchType:  string(r.MatchType),
		Highlights: r.Highlights,
		Reasoning:  r.Reasoning,
		Similarity: r.Similarity,
	}
	if r.Item != nil {
		out.Title = r.Item.Title
		out.Source = r.Item.Source
		out.Type = string(r.Item.Type)
	}
	if r.Cultural != nil {
		out.Cultural = &culturalContext{
			HasIndicator: r.Cultural.HasIndicator,
			Confidence:   r.Cultural.Confidence,
			Concepts:     r.Cultural.Concepts,
			NeedsReview:  r.Cultural.NeedsReview,
		}
	}
	return out
}

func intentToDTO(a domain.IntentAnalysis) intentAnalysis {
	out := intentAnalysis{
		Primary:    string(a.Primary),
		Concepts:   a.Concepts,
		Complexity: a.Complexity,
		Confidence: a.Confidence,
	}
	for _, s := range a.Secondary {
		out.Secondary = append(out.Secondary, string(s))
	}
	return out
}

func filtersToDTO(f searchuc.Filters) filtersResponse {
	return filtersResponse{
		ContentTypes:      emptyIfNil(f.ContentTypes),
		PhilosophyDomains: emptyIfNil(f.PhilosophyDomains),
		Sources:           emptyIfNil(f.Sources),
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// requestTimeout bounds handler work against slow providers.
const requestTimeout = 30 * time.Second
