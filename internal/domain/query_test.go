package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSearchQuery_Defaults(t *testing.T) {
	q, err := NewSearchQuery("mentoring", "", QueryFilters{}, 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Mode() != ModeEnhanced {
		t.Errorf("default mode = %q, want enhanced", q.Mode())
	}
	if q.Limit() != DefaultLimit {
		t.Errorf("default limit = %d, want %d", q.Limit(), DefaultLimit)
	}
	if q.SimilarityThreshold() != DefaultSimilarity {
		t.Errorf("default similarity = %f, want %f", q.SimilarityThreshold(), DefaultSimilarity)
	}
}

func TestNewSearchQuery_EmptyTextAllowed(t *testing.T) {
	// Empty queries produce an empty response, not an error.
	if _, err := NewSearchQuery("", ModeLexical, QueryFilters{}, 0, 10, 0); err != nil {
		t.Fatalf("empty query should be valid: %v", err)
	}
}

func TestNewSearchQuery_Rejects(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (SearchQuery, error)
	}{
		{"too long", func() (SearchQuery, error) {
			return NewSearchQuery(strings.Repeat("x", MaxQueryLength+1), "", QueryFilters{}, 0, 0, 0)
		}},
		{"bad mode", func() (SearchQuery, error) {
			return NewSearchQuery("q", "fuzzy", QueryFilters{}, 0, 0, 0)
		}},
		{"bad content type filter", func() (SearchQuery, error) {
			return NewSearchQuery("q", "", QueryFilters{ContentTypes: []ContentType{"podcast"}}, 0, 0, 0)
		}},
		{"similarity above 1", func() (SearchQuery, error) {
			return NewSearchQuery("q", "", QueryFilters{}, 1.5, 0, 0)
		}},
		{"complexity above max", func() (SearchQuery, error) {
			return NewSearchQuery("q", "", QueryFilters{MaxComplexity: 6}, 0, 0, 0)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestNewSearchQuery_ClampsLimit(t *testing.T) {
	q, err := NewSearchQuery("q", "", QueryFilters{}, 0, 500, -3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit() != MaxLimit {
		t.Errorf("limit = %d, want clamped to %d", q.Limit(), MaxLimit)
	}
	if q.Offset() != 0 {
		t.Errorf("offset = %d, want 0", q.Offset())
	}
}
