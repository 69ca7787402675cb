package content

import (
	"strconv"
	"strings"
	"time"

	"github.com/lorehub/relevance/internal/domain"
)

// Hash field names for catalog records. The ingestion pipelines write these;
// the engine only reads them.
const (
	fieldSource      = "source"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldBody        = "body"
	fieldType        = "type"
	fieldDomain      = "philosophy_domain"
	fieldComplexity  = "complexity"
	fieldTags        = "tags"
	fieldConcepts    = "key_concepts"
	fieldThemes      = "themes"
	fieldQuality     = "quality_score"
	fieldEngagement  = "engagement_score"
	fieldCreatedAt   = "created_at"
	fieldUpdatedAt   = "updated_at"

	listSeparator = ","
)

// parseHashFields converts a flat catalog hash into a ContentItem. The
// caller validates the result before letting it near the scorer.
func parseHashFields(id string, m map[string]string) domain.ContentItem {
	item := domain.ContentItem{
		ID:               id,
		Source:           m[fieldSource],
		Title:            m[fieldTitle],
		Description:      m[fieldDescription],
		Body:             m[fieldBody],
		Type:             domain.ContentType(m[fieldType]),
		PhilosophyDomain: m[fieldDomain],
		Tags:             splitList(m[fieldTags]),
		KeyConcepts:      splitList(m[fieldConcepts]),
		Themes:           splitList(m[fieldThemes]),
	}

	if v, err := strconv.Atoi(m[fieldComplexity]); err == nil {
		item.Complexity = v
	}
	if v, err := strconv.ParseFloat(m[fieldQuality], 64); err == nil {
		item.QualityScore = v
	}
	if v, err := strconv.ParseFloat(m[fieldEngagement], 64); err == nil {
		item.EngagementScore = v
	}
	if t, err := time.Parse(time.RFC3339, m[fieldCreatedAt]); err == nil {
		item.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, m[fieldUpdatedAt]); err == nil {
		item.UpdatedAt = t
	}

	return item
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, listSeparator)
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
