package store

import (
	"sort"
	"sync"

	"newsrank/internal/article"
)

// ArticleStore holds normalized article records keyed by id. The
// ingestion adapter is the single writer; recommendation code only
// reads. Safe for concurrent readers.
type ArticleStore struct {
	mu       sync.RWMutex
	articles map[string]article.Article
}

// NewArticleStore creates an empty article store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{articles: make(map[string]article.Article)}
}

// Put inserts or overwrites an article record.
func (s *ArticleStore) Put(a article.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[a.ID] = a
}

// Get returns the article for an id.
func (s *ArticleStore) Get(id string) (article.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	return a, ok
}

// BackfillSummary sets the summary for an article that does not have one
// yet. Records are otherwise immutable, so a non-empty summary is never
// overwritten. Reports whether the summary was applied.
func (s *ArticleStore) BackfillSummary(id, summary string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok || a.Summary != "" || summary == "" {
		return false
	}
	a.Summary = summary
	a.ReadTime = article.ReadTime(len(a.Title) + len(summary))
	s.articles[id] = a
	return true
}

// All returns a snapshot of every article, in unspecified order.
func (s *ArticleStore) All() []article.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]article.Article, 0, len(s.articles))
	for _, a := range s.articles {
		out = append(out, a)
	}
	return out
}

// Recent returns up to n articles ordered most-recent-published-first.
// Equal timestamps are broken by ascending id so the ordering is
// deterministic for a given store state. n <= 0 returns all articles.
func (s *ArticleStore) Recent(n int) []article.Article {
	out := s.All()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID < out[j].ID
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Len returns the number of stored articles.
func (s *ArticleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}
