package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/lorehub/relevance/internal/domain"
)

func TestText_CollapsesWhitespace(t *testing.T) {
	got, err := Text("  mentoring \t\n  guide  ", domain.KindTitle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "mentoring guide" {
		t.Errorf("got %q, want %q", got, "mentoring guide")
	}
}

func TestText_StripsUnsafeRunes(t *testing.T) {
	got, err := Text("seven <generations> {thinking}", domain.KindSummary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.ContainsAny(got, "<>{}") {
		t.Errorf("unsafe runes survived: %q", got)
	}
	if !strings.Contains(got, "seven generations thinking") {
		t.Errorf("content mangled: %q", got)
	}
}

func TestText_EmptyAfterCleaning(t *testing.T) {
	_, err := Text("  \t <> ** \n ", domain.KindContent)
	if !errors.Is(err, domain.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestText_UnknownKind(t *testing.T) {
	if _, err := Text("text", "paragraph"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestText_TruncatesAtWordBoundary(t *testing.T) {
	long := strings.Repeat("mentoring ", 100) // 1000 chars, over TitleMax
	got, err := Text(long, domain.KindTitle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > TitleMax {
		t.Errorf("len = %d, want <= %d", len(got), TitleMax)
	}
	if strings.HasSuffix(got, "mentorin") || strings.HasSuffix(got, " ") {
		t.Errorf("cut mid-word or left trailing space: %q", got[len(got)-12:])
	}
}

func TestText_KindBudgets(t *testing.T) {
	long := strings.Repeat("word ", 4000)

	tests := []struct {
		kind domain.EmbeddingKind
		max  int
	}{
		{domain.KindTitle, TitleMax},
		{domain.KindSummary, SummaryMax},
		{domain.KindContent, ContentMax},
	}
	for _, tt := range tests {
		got, err := Text(long, tt.kind)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.kind, err)
		}
		if len(got) > tt.max {
			t.Errorf("%s: len = %d, want <= %d", tt.kind, len(got), tt.max)
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"  already   messy\ttext!  ",
		"plain text",
		"symbols *** and <tags>",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
