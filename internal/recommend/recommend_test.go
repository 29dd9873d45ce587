package recommend

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"newsrank/internal/article"
	"newsrank/internal/store"
)

func newEngine(t *testing.T) (*Engine, *store.ArticleStore, *store.EmbeddingStore) {
	t.Helper()
	articles := store.NewArticleStore()
	embeddings := store.NewEmbeddingStore()
	return NewEngine(articles, embeddings, zerolog.Nop()), articles, embeddings
}

func seed(t *testing.T, articles *store.ArticleStore, embeddings *store.EmbeddingStore, id string, topic article.Topic, published time.Time, vec []float32) {
	t.Helper()
	articles.Put(article.Article{
		ID:          id,
		Title:       "Title " + id,
		Topic:       topic,
		PublishedAt: published,
	})
	if vec != nil {
		if err := embeddings.Put(id, vec); err != nil {
			t.Fatalf("seeding %s: %v", id, err)
		}
	}
}

func ids(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Article.ID
	}
	return out
}

func assertOrder(t *testing.T, recs []Recommendation, want ...string) {
	t.Helper()
	got := ids(recs)
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func TestRecommend_AnchorSimilarity(t *testing.T) {
	e, articles, embeddings := newEngine(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed(t, articles, embeddings, "a", article.TopicTechnology, base, []float32{1, 0})
	seed(t, articles, embeddings, "b", article.TopicTechnology, base.Add(-time.Hour), []float32{0.9, 0.1})
	seed(t, articles, embeddings, "c", article.TopicSports, base.Add(-2*time.Hour), []float32{0, 1})

	recs, err := e.Recommend(Request{AnchorID: "a", MaxResults: DefaultMaxResults})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	assertOrder(t, recs, "b", "c")
	if recs[0].Score <= recs[1].Score {
		t.Errorf("scores not descending: %v then %v", recs[0].Score, recs[1].Score)
	}
}

func TestRecommend_AnchorNeverReturned(t *testing.T) {
	e, articles, embeddings := newEngine(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed(t, articles, embeddings, "a", article.TopicTechnology, base, []float32{1, 0})
	seed(t, articles, embeddings, "b", article.TopicTechnology, base.Add(-time.Hour), []float32{1, 0})

	recs, err := e.Recommend(Request{AnchorID: "a", MaxResults: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, r := range recs {
		if r.Article.ID == "a" {
			t.Error("anchor present in results")
		}
	}
}

func TestRecommend_UnknownAnchorFallsBack(t *testing.T) {
	e, articles, embeddings := newEngine(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed(t, articles, embeddings, "a", article.TopicTechnology, base, []float32{1, 0})
	seed(t, articles, embeddings, "b", article.TopicSports, base.Add(-time.Hour), []float32{0, 1})

	recs, err := e.Recommend(Request{AnchorID: "ghost", MaxResults: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// Degrades to recency order over the whole corpus.
	assertOrder(t, recs, "a", "b")
}

func TestRecommend_MaxResults(t *testing.T) {
	tests := []struct {
		name       string
		maxResults int
		wantLen    int
		wantErr    bool
	}{
		{"zero yields empty", 0, 0, false},
		{"negative is an error", -1, 0, true},
		{"caps the response", 2, 2, false},
		{"clamped to hard cap", HardMaxResults + 10, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, articles, embeddings := newEngine(t)
			base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			seed(t, articles, embeddings, "a", article.TopicTechnology, base, []float32{1, 0})
			seed(t, articles, embeddings, "b", article.TopicTechnology, base.Add(-time.Hour), []float32{0.5, 0.5})
			seed(t, articles, embeddings, "c", article.TopicSports, base.Add(-2*time.Hour), []float32{0, 1})
			seed(t, articles, embeddings, "d", article.TopicScience, base.Add(-3*time.Hour), []float32{0.2, 0.8})

			recs, err := e.Recommend(Request{AnchorID: "a", MaxResults: tt.maxResults})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMaxResults) {
					t.Fatalf("error = %v, want ErrInvalidMaxResults", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(recs) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(recs), tt.wantLen)
			}
		})
	}
}

func TestRecommend_EmptyStore(t *testing.T) {
	e, _, _ := newEngine(t)

	recs, err := e.Recommend(Request{Interests: []string{"technology"}, MaxResults: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len = %d, want 0", len(recs))
	}
}

func TestRecommend_InterestCentroid(t *testing.T) {
	e, articles, embeddings := newEngine(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Three tech articles clustered near [1,0] and one outlier.
	seed(t, articles, embeddings, "t1", article.TopicTechnology, base, []float32{1, 0})
	seed(t, articles, embeddings, "t2", article.TopicTechnology, base.Add(-time.Hour), []float32{0.95, 0.05})
	seed(t, articles, embeddings, "t3", article.TopicTechnology, base.Add(-2*time.Hour), []float32{0.1, 0.9})

	recs, err := e.Recommend(Request{Interests: []string{"technology"}, MaxResults: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	if got := recs[len(recs)-1].Article.ID; got != "t3" {
		t.Errorf("least similar = %s, want t3", got)
	}
}

func TestRecommend_NoVectorsKeepsRecency(t *testing.T) {
	e, articles, embeddings := newEngine(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// No embeddings at all: interest scoring has no signal.
	seed(t, articles, embeddings, "n1", article.TopicHealth, base.Add(-time.Hour), nil)
	seed(t, articles, embeddings, "n2", article.TopicHealth, base, nil)
	seed(t, articles, embeddings, "n3", article.TopicHealth, base.Add(-2*time.Hour), nil)

	recs, err := e.Recommend(Request{Interests: []string{"health"}, MaxResults: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	assertOrder(t, recs, "n2", "n1", "n3")
	for _, r := range recs {
		if r.Score != 0 {
			t.Errorf("score = %v, want 0 without a query vector", r.Score)
		}
	}
}

func TestTrending(t *testing.T) {
	e, articles, embeddings := newEngine(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed(t, articles, embeddings, "old", article.TopicGeneral, base.Add(-48*time.Hour), nil)
	seed(t, articles, embeddings, "new", article.TopicGeneral, base, nil)
	seed(t, articles, embeddings, "mid", article.TopicGeneral, base.Add(-24*time.Hour), nil)

	recs, err := e.Trending(2)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	assertOrder(t, recs, "new", "mid")
}

func TestTrending_InvalidLimit(t *testing.T) {
	e, _, _ := newEngine(t)
	if _, err := e.Trending(-3); !errors.Is(err, ErrInvalidMaxResults) {
		t.Errorf("error = %v, want ErrInvalidMaxResults", err)
	}
}

func TestDiverse_SpreadsTopics(t *testing.T) {
	e, articles, embeddings := newEngine(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed(t, articles, embeddings, "s1", article.TopicSports, base, nil)
	seed(t, articles, embeddings, "s2", article.TopicSports, base.Add(-time.Hour), nil)
	seed(t, articles, embeddings, "b1", article.TopicBusiness, base.Add(-2*time.Hour), nil)
	seed(t, articles, embeddings, "b2", article.TopicBusiness, base.Add(-3*time.Hour), nil)

	recs, err := e.Diverse(Request{MaxResults: 4})
	if err != nil {
		t.Fatalf("Diverse() error = %v", err)
	}
	assertOrder(t, recs, "s1", "b1", "s2", "b2")
}

func TestRecommend_Deterministic(t *testing.T) {
	e, articles, embeddings := newEngine(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed(t, articles, embeddings, "a", article.TopicTechnology, base, []float32{1, 0})
	seed(t, articles, embeddings, "b", article.TopicTechnology, base.Add(-time.Hour), []float32{0.7, 0.7})
	seed(t, articles, embeddings, "c", article.TopicSports, base.Add(-2*time.Hour), []float32{0.7, 0.7})

	first, _ := e.Recommend(Request{AnchorID: "a", MaxResults: 10})
	second, _ := e.Recommend(Request{AnchorID: "a", MaxResults: 10})
	assertOrder(t, second, ids(first)...)

	// Equal scores break ties by ascending id.
	assertOrder(t, first, "b", "c")
}
