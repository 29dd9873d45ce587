// Package candidate assembles the request-scoped pool of articles
// considered for ranking. Pools are ephemeral: built per request,
// discarded afterwards, never persisted.
package candidate

import (
	"errors"
	"strings"

	"newsrank/internal/article"
	"newsrank/internal/store"
)

// ErrUnknownArticle indicates an anchor id that is not in the embedding
// store. The orchestrator catches this and falls back rather than
// surfacing it to the caller.
var ErrUnknownArticle = errors.New("unknown anchor article")

const (
	// DefaultPoolSize bounds the candidate pool when the caller does not
	// specify one. The corpus is modest, so a linear scan over a pool of
	// this size stays cheap.
	DefaultPoolSize = 1000

	// MinInterestMatches is the minimum pool size for interest-based
	// selection. Below this, the pool widens to the full corpus to
	// avoid near-empty results.
	MinInterestMatches = 3
)

// Member is one (article, vector) entry of a candidate pool. The vector
// is nil when the article has no stored embedding; such members score
// neutrally rather than being excluded.
type Member struct {
	Article article.Article
	Vector  []float32
}

// Request describes what to assemble a pool for.
type Request struct {
	// AnchorID, when set, selects every other article in the store.
	AnchorID string

	// Interests, when set (and no anchor), selects articles whose topic
	// matches any interest, case-insensitively.
	Interests []string

	// PoolSize caps the pool. Zero or negative means DefaultPoolSize.
	PoolSize int
}

// Selector builds candidate pools from the article and embedding stores.
type Selector struct {
	articles   *store.ArticleStore
	embeddings *store.EmbeddingStore
}

// NewSelector creates a selector over the given stores.
func NewSelector(articles *store.ArticleStore, embeddings *store.EmbeddingStore) *Selector {
	return &Selector{articles: articles, embeddings: embeddings}
}

// Select assembles a candidate pool. The result is finite and
// deterministic for a given request and store state: members are
// ordered most-recent-published-first with ascending-id tie-break.
//
// Anchor given and present: all other articles, capped by recency.
// Anchor given but absent: ErrUnknownArticle.
// Interests only: topic matches, widened to the corpus when too few.
// Neither: most recent articles up to the cap (the trending case).
func (s *Selector) Select(req Request) ([]Member, error) {
	size := req.PoolSize
	if size <= 0 {
		size = DefaultPoolSize
	}

	if req.AnchorID != "" {
		if _, ok := s.embeddings.Get(req.AnchorID); !ok {
			return nil, ErrUnknownArticle
		}
		return s.allExcept(req.AnchorID, size), nil
	}

	if len(req.Interests) > 0 {
		matched := s.byTopics(req.Interests, size)
		if len(matched) >= MinInterestMatches {
			return matched, nil
		}
		// Too few topical matches: widen to the full corpus.
		return s.allExcept("", size), nil
	}

	return s.allExcept("", size), nil
}

// allExcept returns up to n members, most recent first, excluding the
// given id.
func (s *Selector) allExcept(excludeID string, n int) []Member {
	recent := s.articles.Recent(0)
	members := make([]Member, 0, len(recent))
	for _, a := range recent {
		if a.ID == excludeID {
			continue
		}
		members = append(members, s.member(a))
		if len(members) == n {
			break
		}
	}
	return members
}

// byTopics returns up to n members whose topic matches any interest.
func (s *Selector) byTopics(interests []string, n int) []Member {
	wanted := make(map[article.Topic]bool, len(interests))
	for _, raw := range interests {
		if t := article.ParseTopic(raw); t != article.TopicUncategorized {
			wanted[t] = true
		} else if strings.EqualFold(strings.TrimSpace(raw), string(article.TopicUncategorized)) {
			wanted[article.TopicUncategorized] = true
		}
	}

	var members []Member
	for _, a := range s.articles.Recent(0) {
		if !wanted[a.Topic] {
			continue
		}
		members = append(members, s.member(a))
		if len(members) == n {
			break
		}
	}
	return members
}

func (s *Selector) member(a article.Article) Member {
	vec, _ := s.embeddings.Get(a.ID)
	return Member{Article: a, Vector: vec}
}
