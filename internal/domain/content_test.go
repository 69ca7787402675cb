package domain

import (
	"strings"
	"testing"
)

func validItem() ContentItem {
	return ContentItem{
		ID:              "doc-1",
		Source:          "knowledge-hub",
		Title:           "Mentoring Implementation Guide",
		Description:     "Step by step mentoring setup",
		Type:            TypeTool,
		Complexity:      2,
		Tags:            []string{"mentoring"},
		KeyConcepts:     []string{"mentoring", "relationships"},
		Themes:          []string{"education"},
		QualityScore:    0.8,
		EngagementScore: 0.9,
	}
}

func TestContentItem_Validate(t *testing.T) {
	item := validItem()
	if err := item.Validate(); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
}

func TestContentItem_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ContentItem)
	}{
		{"missing id", func(c *ContentItem) { c.ID = "" }},
		{"unknown type", func(c *ContentItem) { c.Type = "podcast" }},
		{"quality above 1", func(c *ContentItem) { c.QualityScore = 1.2 }},
		{"negative engagement", func(c *ContentItem) { c.EngagementScore = -0.1 }},
		{"complexity out of range", func(c *ContentItem) { c.Complexity = 9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)
			if err := item.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestContentItem_SearchableText(t *testing.T) {
	item := validItem()
	text := item.SearchableText()

	for _, want := range []string{item.Title, item.Description, "mentoring", "relationships", "education"} {
		if !strings.Contains(text, want) {
			t.Errorf("searchable text missing %q", want)
		}
	}
}

func TestContentType_IsValid(t *testing.T) {
	if !TypeCaseStudy.IsValid() {
		t.Error("case-study should be valid")
	}
	if ContentType("webinar").IsValid() {
		t.Error("webinar should not be valid")
	}
}
