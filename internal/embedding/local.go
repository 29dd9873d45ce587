package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// LocalDimensions is the vector width of the local provider.
const LocalDimensions = 64

// Local is a keyless, offline embedding provider. It hashes word
// unigrams and bigrams into a fixed-width vector and L2-normalizes the
// result. Texts sharing vocabulary land near each other, which is
// enough signal for the demo corpus and for air-gapped runs.
type Local struct{}

// Embed implements Provider.
func (Local) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, LocalDimensions)
	words := strings.Fields(strings.ToLower(text))
	for i, w := range words {
		addFeature(vec, w)
		if i+1 < len(words) {
			addFeature(vec, w+" "+words[i+1])
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}

// ModelName implements Provider.
func (Local) ModelName() string { return "local-hash" }

// Dimensions implements Provider.
func (Local) Dimensions() int { return LocalDimensions }

// addFeature hashes a token into a signed bucket. The low bit picks the
// sign so collisions tend to cancel instead of piling up.
func addFeature(vec []float32, token string) {
	h := fnv.New64a()
	h.Write([]byte(token))
	sum := h.Sum64()
	idx := int(sum % LocalDimensions)
	if sum&(1<<63) != 0 {
		vec[idx] -= 1
	} else {
		vec[idx] += 1
	}
}
