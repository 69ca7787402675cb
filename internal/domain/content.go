package domain

import (
	"fmt"
	"time"
)

// ContentType classifies a content item by its origin format.
type ContentType string

// Content type constants. The enumeration is closed: ingestion rejects
// anything else at the boundary.
const (
	TypeDocument   ContentType = "document"
	TypeVideo      ContentType = "video"
	TypeTool       ContentType = "tool"
	TypeCaseStudy  ContentType = "case-study"
	TypeReward     ContentType = "reward-object"
	TypeNewsletter ContentType = "newsletter"
	TypeResearch   ContentType = "research"
	TypeStory      ContentType = "story"
	TypePrimer     ContentType = "philosophy-primer"
)

// IsValid checks the content type against the closed enumeration.
func (t ContentType) IsValid() bool {
	switch t {
	case TypeDocument, TypeVideo, TypeTool, TypeCaseStudy, TypeReward,
		TypeNewsletter, TypeResearch, TypeStory, TypePrimer:
		return true
	}
	return false
}

// Complexity bounds for content items (ordinal scale).
const (
	MinComplexity = 1
	MaxComplexity = 5
)

// ContentItem is one unit of searchable material. Records are written by the
// ingestion collaborators and read-only to the engine.
type ContentItem struct {
	ID     string
	Source string

	Title       string
	Description string
	Body        string

	Type             ContentType
	PhilosophyDomain string
	Complexity       int

	Tags        []string
	KeyConcepts []string
	Themes      []string

	QualityScore    float64
	EngagementScore float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the invariants the scorer relies on. Malformed records are
// rejected at the repository boundary, never inside scoring.
func (c *ContentItem) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("content item id is required")
	}
	if !c.Type.IsValid() {
		return fmt.Errorf("content item %s: unknown content type %q", c.ID, c.Type)
	}
	if c.QualityScore < 0 || c.QualityScore > 1 {
		return fmt.Errorf("content item %s: quality score %f out of [0,1]", c.ID, c.QualityScore)
	}
	if c.EngagementScore < 0 || c.EngagementScore > 1 {
		return fmt.Errorf("content item %s: engagement score %f out of [0,1]", c.ID, c.EngagementScore)
	}
	if c.Complexity != 0 && (c.Complexity < MinComplexity || c.Complexity > MaxComplexity) {
		return fmt.Errorf("content item %s: complexity %d out of [%d,%d]",
			c.ID, c.Complexity, MinComplexity, MaxComplexity)
	}
	return nil
}

// SearchableText concatenates the fields term-overlap scoring runs against.
func (c *ContentItem) SearchableText() string {
	text := c.Title + " " + c.Description
	for _, t := range c.Tags {
		text += " " + t
	}
	for _, k := range c.KeyConcepts {
		text += " " + k
	}
	for _, th := range c.Themes {
		text += " " + th
	}
	return text
}
