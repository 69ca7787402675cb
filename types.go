package relevance

import (
	"time"

	"github.com/lorehub/relevance/internal/domain"
	searchuc "github.com/lorehub/relevance/internal/usecase/search"
)

// Request holds the public search parameters. Zero values pick the engine
// defaults (enhanced mode, limit 20, similarity threshold 0.7).
type Request struct {
	Query               string
	Mode                string // "enhanced" or "lexical"
	ContentTypes        []string
	PhilosophyDomain    string
	MaxComplexity       int
	SimilarityThreshold float64
	Limit               int
	Offset              int
}

// Response is the public search output.
type Response struct {
	Success         bool
	Results         []Result
	Total           int
	Summary         string
	Suggestions     []string
	RelatedConcepts []string
	Metadata        Metadata
}

// Result is one ranked item.
type Result struct {
	ContentID  string
	Title      string
	Source     string
	Type       string
	Score      float64
	MatchType  string
	Highlights []string
	Reasoning  string
	Similarity float64
	Cultural   *Cultural
}

// Cultural annotates sensitive or indigenous-knowledge content. It is
// informational only; nothing is ever filtered on it.
type Cultural struct {
	HasIndicator bool
	Confidence   float64
	Concepts     []string
	NeedsReview  bool
}

// Metadata records how the response was produced.
type Metadata struct {
	UsedEmbeddings bool
	FallbackUsed   bool
	ProcessingTime time.Duration
	Intent         Intent
	QualityScore   float64
	Error          string
}

// Intent is the query analysis attached to each response.
type Intent struct {
	Primary    string
	Secondary  []string
	Concepts   []string
	Complexity int
	Confidence float64
}

// Filters enumerates the filterable catalog values.
type Filters struct {
	ContentTypes      []string
	PhilosophyDomains []string
	Sources           []string
}

func queryFromRequest(req Request) (domain.SearchQuery, error) {
	var filters domain.QueryFilters
	filters.PhilosophyDomain = req.PhilosophyDomain
	filters.MaxComplexity = req.MaxComplexity
	for _, t := range req.ContentTypes {
		filters.ContentTypes = append(filters.ContentTypes, domain.ContentType(t))
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

func responseFromDomain(resp domain.SearchResponse) *Response {
	results := make([]Result, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = resultFromDomain(r)
	}
	return &Response{
		Success:         resp.Success,
		Results:         results,
		Total:           resp.Total,
		Summary:         resp.Summary,
		Suggestions:     resp.Suggestions,
		RelatedConcepts: resp.RelatedConcepts,
		Metadata: Metadata{
			UsedEmbeddings: resp.Metadata.UsedEmbeddings,
			FallbackUsed:   resp.Metadata.FallbackUsed,
			ProcessingTime: resp.Metadata.ProcessingTime,
			Intent:         intentFromDomain(resp.Metadata.Intent),
			QualityScore:   resp.Metadata.QualityScore,
			Error:          resp.Metadata.Error,
		},
	}
}

func resultFromDomain(r domain.SearchResult) Result {
	out := Result{
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
		out.Cultural = &Cultural{
			HasIndicator: r.Cultural.HasIndicator,
			Confidence:   r.Cultural.Confidence,
			Concepts:     r.Cultural.Concepts,
			NeedsReview:  r.Cultural.NeedsReview,
		}
	}
	return out
}

func intentFromDomain(a domain.IntentAnalysis) Intent {
	out := Intent{
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

func filtersFromUsecase(f searchuc.Filters) Filters {
	return Filters{
		ContentTypes:      f.ContentTypes,
		PhilosophyDomains: f.PhilosophyDomains,
		Sources:           f.Sources,
	}
}
