// Package rank computes cosine-similarity rankings over embedding
// vectors. Scoring is a linear scan, which is adequate for a corpus of
// thousands of articles.
package rank

import (
	"math"
	"sort"
)

// Candidate pairs an article id with its embedding vector.
type Candidate struct {
	ID     string
	Vector []float32
}

// Scored is a ranked candidate.
type Scored struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Cosine computes the cosine similarity between two vectors, in [-1, 1].
// A zero-norm vector on either side, or a length mismatch, scores 0:
// neutral, not an error, so degenerate candidates stay eligible.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Centroid returns the element-wise mean of the given vectors. Vectors
// whose length differs from the first are skipped. Returns nil for an
// empty input.
func Centroid(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	dims := len(vectors[0])
	sums := make([]float64, dims)
	count := 0
	for _, v := range vectors {
		if len(v) != dims {
			continue
		}
		for i, x := range v {
			sums[i] += float64(x)
		}
		count++
	}
	if count == 0 {
		return nil
	}

	mean := make([]float32, dims)
	for i, s := range sums {
		mean[i] = float32(s / float64(count))
	}
	return mean
}

// IsZero reports whether a vector is empty or has zero norm.
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Score ranks candidates by cosine similarity to the query vector,
// descending. Every candidate appears in the output: zero-norm vectors
// score 0 rather than being dropped. Ties are broken by ascending id so
// that rankings are reproducible across runs.
func Score(query []float32, candidates []Candidate) []Scored {
	results := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, Scored{
			ID:    c.ID,
			Score: Cosine(query, c.Vector),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	return results
}
