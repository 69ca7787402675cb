package similarity

import (
	"errors"
	"math"
	"testing"

	"github.com/lorehub/relevance/internal/domain"
)

func TestCosine_SelfSimilarity(t *testing.T) {
	vecs := [][]float32{
		{1, 0, 0},
		{0.3, 0.5, 0.8},
		{-1, 2, -3, 4},
	}
	for _, v := range vecs {
		got, err := Cosine(v, v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(got-1.0) > 1e-9 {
			t.Errorf("Cosine(v, v) = %f, want 1.0", got)
		}
	}
}

func TestCosine_Symmetric(t *testing.T) {
	a := []float32{0.1, 0.9, 0.2}
	b := []float32{0.7, 0.3, 0.5}

	ab, err := Cosine(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := Cosine(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab != ba {
		t.Errorf("Cosine not symmetric: %f != %f", ab, ba)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	got, err := Cosine([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("orthogonal vectors: got %f, want 0", got)
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	got, err := Cosine([]float32{0, 0}, []float32{1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("zero vector: got %f, want 0", got)
	}
}

func TestFindSimilar_ThresholdAndOrder(t *testing.T) {
	query := []float32{1, 0}
	// Similarities: 1.0, ~0.995, ~0.707, 0.0; threshold 0.7 keeps three.
	candidates := []Candidate{
		{ID: "exact", Vector: []float32{1, 0}},
		{ID: "close", Vector: []float32{10, 1}},
		{ID: "diagonal", Vector: []float32{1, 1}},
		{ID: "orthogonal", Vector: []float32{0, 1}},
	}

	matches := FindSimilar(query, candidates, 0.7, 10, nil)
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	want := []string{"exact", "close", "diagonal"}
	for i, id := range want {
		if matches[i].ID != id {
			t.Errorf("matches[%d] = %s, want %s", i, matches[i].ID, id)
		}
	}
}

func TestFindSimilar_ManyCandidatesFewAboveThreshold(t *testing.T) {
	query := []float32{1, 0}
	candidates := make([]Candidate, 0, 150)
	for i := 0; i < 147; i++ {
		candidates = append(candidates, Candidate{ID: "noise", Vector: []float32{0, 1}})
	}
	candidates = append(candidates,
		Candidate{ID: "a", Vector: []float32{1, 0}},
		Candidate{ID: "b", Vector: []float32{5, 1}},
		Candidate{ID: "c", Vector: []float32{3, 1}},
	)

	matches := FindSimilar(query, candidates, 0.7, 50, nil)
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want exactly 3", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Error("matches not sorted descending")
		}
	}
}

func TestFindSimilar_SkipsBadCandidate(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "bad", Vector: []float32{1, 0, 0}}, // wrong dimension
		{ID: "good", Vector: []float32{1, 0}},
	}

	matches := FindSimilar(query, candidates, 0.7, 10, nil)
	if len(matches) != 1 || matches[0].ID != "good" {
		t.Fatalf("bad candidate should be skipped, got %v", matches)
	}
}

func TestFindSimilar_StableTieBreak(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "first", Vector: []float32{2, 0}},
		{ID: "second", Vector: []float32{3, 0}}, // same similarity (1.0)
		{ID: "third", Vector: []float32{4, 0}},
	}

	a := FindSimilar(query, candidates, 0.5, 10, nil)
	b := FindSimilar(query, candidates, 0.5, 10, nil)

	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatal("tie-break not deterministic across runs")
		}
	}
	if a[0].ID != "first" || a[1].ID != "second" || a[2].ID != "third" {
		t.Errorf("tie-break should preserve candidate order, got %v", a)
	}
}

func TestFindSimilar_LimitTruncates(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{2, 0}},
		{ID: "c", Vector: []float32{3, 0}},
	}

	matches := FindSimilar(query, candidates, 0.5, 2, nil)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
}
