// Package recommend orchestrates candidate selection, similarity
// scoring, and result shaping into the recommendation operations the
// serving layer exposes. It degrades instead of failing: when an anchor
// is unknown or no vectors are usable, it falls back to recency.
package recommend

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"newsrank/internal/article"
	"newsrank/internal/candidate"
	"newsrank/internal/rank"
	"newsrank/internal/store"
)

// ErrInvalidMaxResults indicates a negative result cap.
var ErrInvalidMaxResults = errors.New("max results must not be negative")

const (
	// DefaultMaxResults is the result cap applied when a caller passes
	// no explicit limit.
	DefaultMaxResults = 5

	// HardMaxResults bounds any single response regardless of what the
	// caller asked for.
	HardMaxResults = 50
)

// Request describes one recommendation query.
type Request struct {
	// AnchorID asks for articles similar to this one. An unknown anchor
	// degrades to trending rather than erroring.
	AnchorID string

	// Interests bias selection toward matching topics when no anchor is
	// given.
	Interests []string

	// MaxResults caps the response. Zero yields an empty result,
	// negative is an error, and anything above HardMaxResults is
	// clamped. Callers wanting the default pass DefaultMaxResults.
	MaxResults int

	// Diversify spreads results across topics instead of returning a
	// pure similarity ordering.
	Diversify bool
}

// Recommendation is one ranked result.
type Recommendation struct {
	Article article.Article `json:"article"`
	Score   float64         `json:"score"`
}

// Engine wires the candidate selector and embedding store into the
// recommendation operations.
type Engine struct {
	selector   *candidate.Selector
	embeddings *store.EmbeddingStore
	log        zerolog.Logger
}

// NewEngine creates an engine over the given stores.
func NewEngine(articles *store.ArticleStore, embeddings *store.EmbeddingStore, log zerolog.Logger) *Engine {
	return &Engine{
		selector:   candidate.NewSelector(articles, embeddings),
		embeddings: embeddings,
		log:        log.With().Str("component", "recommend").Logger(),
	}
}

// Recommend runs one recommendation query.
//
// The pool is chosen by anchor, interests, or recency, in that order of
// preference. Scoring compares each pool member against a query vector:
// the anchor's embedding, or the centroid of the pool's vectors for
// interest queries. When no usable query vector exists the pool's
// recency order stands as-is. Results never include the anchor, never
// repeat an id, and are capped.
func (e *Engine) Recommend(req Request) ([]Recommendation, error) {
	limit, err := resolveLimit(req.MaxResults)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []Recommendation{}, nil
	}

	pool, anchorKnown := e.selectPool(req)
	if len(pool) == 0 {
		return []Recommendation{}, nil
	}

	query := e.queryVector(req, pool, anchorKnown)
	var scored []rank.Scored
	if !rank.IsZero(query) {
		scored = rank.Score(query, members(pool))
	}
	// A nil scored slice keeps the selector's recency order.

	recs := hydrate(pool, scored, req.AnchorID)
	if req.Diversify {
		recs = diversify(recs)
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Trending returns the most recently published articles. It is both a
// first-class operation and the terminal fallback for Recommend.
func (e *Engine) Trending(maxResults int) ([]Recommendation, error) {
	limit, err := resolveLimit(maxResults)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []Recommendation{}, nil
	}

	pool, _ := e.selector.Select(candidate.Request{PoolSize: limit})
	recs := hydrate(pool, nil, "")
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Diverse returns recommendations spread across topics: the scored
// ordering is replayed round-robin over the topics present so no single
// topic dominates the response.
func (e *Engine) Diverse(req Request) ([]Recommendation, error) {
	req.Diversify = true
	recs, err := e.Recommend(req)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func resolveLimit(maxResults int) (int, error) {
	if maxResults < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMaxResults, maxResults)
	}
	if maxResults > HardMaxResults {
		return HardMaxResults, nil
	}
	return maxResults, nil
}

// selectPool resolves the candidate pool for a request, absorbing an
// unknown anchor into the trending path. The second return reports
// whether the anchor was usable.
func (e *Engine) selectPool(req Request) ([]candidate.Member, bool) {
	if req.AnchorID != "" {
		pool, err := e.selector.Select(candidate.Request{AnchorID: req.AnchorID})
		if err == nil {
			return pool, true
		}
		e.log.Warn().
			Str("anchor_id", req.AnchorID).
			Err(err).
			Msg("anchor unusable, falling back to trending")
	}

	pool, err := e.selector.Select(candidate.Request{Interests: req.Interests})
	if err != nil {
		// Interest and trending selection cannot fail today; guard
		// anyway so a future selector error degrades to empty.
		e.log.Error().Err(err).Msg("candidate selection failed")
		return nil, false
	}
	return pool, false
}

// queryVector resolves the vector the pool is scored against. Anchor
// queries use the anchor's own embedding; interest queries use the
// centroid of the pool's vectors. Nil means no usable signal.
func (e *Engine) queryVector(req Request, pool []candidate.Member, anchorKnown bool) []float32 {
	if anchorKnown {
		if vec, ok := e.embeddings.Get(req.AnchorID); ok {
			return vec
		}
		return nil
	}
	if len(req.Interests) == 0 {
		return nil
	}

	vectors := make([][]float32, 0, len(pool))
	for _, m := range pool {
		if m.Vector != nil {
			vectors = append(vectors, m.Vector)
		}
	}
	return rank.Centroid(vectors)
}

func members(pool []candidate.Member) []rank.Candidate {
	out := make([]rank.Candidate, len(pool))
	for i, m := range pool {
		out[i] = rank.Candidate{ID: m.Article.ID, Vector: m.Vector}
	}
	return out
}

// hydrate maps an ordering back onto full article records, re-excluding
// the anchor and dropping duplicate ids. A nil scored slice keeps the
// pool's own order with zero scores.
func hydrate(pool []candidate.Member, scored []rank.Scored, anchorID string) []Recommendation {
	byID := make(map[string]article.Article, len(pool))
	for _, m := range pool {
		byID[m.Article.ID] = m.Article
	}

	order := make([]rank.Scored, 0, len(pool))
	if scored != nil {
		order = scored
	} else {
		for _, m := range pool {
			order = append(order, rank.Scored{ID: m.Article.ID})
		}
	}

	seen := make(map[string]bool, len(order))
	recs := make([]Recommendation, 0, len(order))
	for _, s := range order {
		if s.ID == anchorID || seen[s.ID] {
			continue
		}
		a, ok := byID[s.ID]
		if !ok {
			continue
		}
		seen[s.ID] = true
		recs = append(recs, Recommendation{Article: a, Score: s.Score})
	}
	return recs
}

// diversify replays a ranked list round-robin over the topics present,
// preserving each topic's internal ordering, so that no single topic
// monopolizes the head of the response.
func diversify(recs []Recommendation) []Recommendation {
	if len(recs) < 2 {
		return recs
	}

	var topics []article.Topic
	grouped := make(map[article.Topic][]Recommendation)
	for _, r := range recs {
		t := r.Article.Topic
		if _, ok := grouped[t]; !ok {
			topics = append(topics, t)
		}
		grouped[t] = append(grouped[t], r)
	}

	out := make([]Recommendation, 0, len(recs))
	for len(out) < len(recs) {
		for _, t := range topics {
			if len(grouped[t]) == 0 {
				continue
			}
			out = append(out, grouped[t][0])
			grouped[t] = grouped[t][1:]
		}
	}
	return out
}
