package rank

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 0, 0},
			b:    []float32{1, 0, 0},
			want: 1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0.0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1.0,
		},
		{
			name: "similar vectors",
			a:    []float32{1, 1},
			b:    []float32{1, 0},
			want: 0.70710678, // cos(45 degrees)
		},
		{
			name: "magnitude independent",
			a:    []float32{2, 0},
			b:    []float32{10, 0},
			want: 1.0,
		},
		{
			name: "zero vector scores neutral",
			a:    []float32{0, 0},
			b:    []float32{1, 0},
			want: 0.0,
		},
		{
			name: "length mismatch scores neutral",
			a:    []float32{1, 0},
			b:    []float32{1, 0, 0},
			want: 0.0,
		},
		{
			name: "empty vectors",
			a:    []float32{},
			b:    []float32{},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCosine_Commutative(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{4, 5, 6}

	if ab, ba := Cosine(a, b), Cosine(b, a); math.Abs(ab-ba) > 1e-9 {
		t.Errorf("Cosine not commutative: %v vs %v", ab, ba)
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid([][]float32{
		{1, 0},
		{0, 1},
	})
	want := []float32{0.5, 0.5}
	if len(got) != len(want) {
		t.Fatalf("Centroid length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("Centroid[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCentroid_Empty(t *testing.T) {
	if got := Centroid(nil); got != nil {
		t.Errorf("Centroid(nil) = %v, want nil", got)
	}
}

func TestCentroid_SkipsMismatchedLengths(t *testing.T) {
	got := Centroid([][]float32{
		{2, 4},
		{1, 2, 3},
		{4, 8},
	})
	want := []float32{3, 6}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("Centroid[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScore_Ordering(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "far", Vector: []float32{0, 1}},
		{ID: "near", Vector: []float32{0.9, 0.1}},
		{ID: "exact", Vector: []float32{1, 0}},
	}

	got := Score(query, candidates)
	wantOrder := []string{"exact", "near", "far"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("result[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestScore_ZeroNormKept(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "zero", Vector: []float32{0, 0}},
		{ID: "pos", Vector: []float32{1, 0}},
	}

	got := Score(query, candidates)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (zero-norm candidate must not be dropped)", len(got))
	}
	if got[0].ID != "pos" || got[1].ID != "zero" {
		t.Errorf("order = [%s %s], want [pos zero]", got[0].ID, got[1].ID)
	}
	if got[1].Score != 0 {
		t.Errorf("zero-norm score = %v, want 0", got[1].Score)
	}
}

func TestScore_TieBreakByID(t *testing.T) {
	query := []float32{0, 0} // uniform neutral scores
	candidates := []Candidate{
		{ID: "c", Vector: []float32{1, 0}},
		{ID: "a", Vector: []float32{0, 1}},
		{ID: "b", Vector: []float32{1, 1}},
	}

	got := Score(query, candidates)
	wantOrder := []string{"a", "b", "c"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("result[%d] = %q, want %q (lexical tie-break)", i, got[i].ID, id)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	query := []float32{0.3, 0.7}
	candidates := []Candidate{
		{ID: "x", Vector: []float32{0.3, 0.7}},
		{ID: "y", Vector: []float32{0.7, 0.3}},
		{ID: "z", Vector: []float32{0, 0}},
	}

	first := Score(query, candidates)
	second := Score(query, candidates)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run 1 result[%d] = %+v, run 2 = %+v", i, first[i], second[i])
		}
	}
}
