// Package ingest turns raw provider records into stored, embedded
// articles. Ingestion is the single write path: the recommendation side
// only ever reads what this package has committed.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"newsrank/internal/article"
	"newsrank/internal/embedding"
	"newsrank/internal/store"
)

// ErrEmbeddingUnavailable indicates the embedding provider could not
// produce a vector for a record. The record is skipped, not stored
// half-ingested.
var ErrEmbeddingUnavailable = errors.New("embedding unavailable")

// Failure records one skipped input within a batch.
type Failure struct {
	Index int
	ID    string
	Err   error
}

// Report summarizes a batch ingestion. A batch as a whole never fails:
// bad records are skipped and reported here.
type Report struct {
	Ingested int
	Failures []Failure
}

// Adapter normalizes, embeds, and stores articles. The optional DB
// write-through persists each committed record so stores can be
// rebuilt on restart.
type Adapter struct {
	provider   embedding.Provider
	articles   *store.ArticleStore
	embeddings *store.EmbeddingStore
	db         *store.DB
	log        zerolog.Logger
}

// NewAdapter creates an ingestion adapter. db may be nil for purely
// in-memory operation.
func NewAdapter(provider embedding.Provider, articles *store.ArticleStore, embeddings *store.EmbeddingStore, db *store.DB, log zerolog.Logger) *Adapter {
	return &Adapter{
		provider:   provider,
		articles:   articles,
		embeddings: embeddings,
		db:         db,
		log:        log.With().Str("component", "ingest").Logger(),
	}
}

// Ingest normalizes and stores a single raw record. The article becomes
// visible to readers only after both its record and its vector are
// committed: embedding failures leave no partial state behind.
func (a *Adapter) Ingest(ctx context.Context, raw article.Raw) error {
	art, err := article.Normalize(raw)
	if err != nil {
		return err
	}

	vec, err := a.embed(ctx, art)
	if err != nil {
		return err
	}

	if err := a.embeddings.Put(art.ID, vec); err != nil {
		return fmt.Errorf("storing vector for %s: %w", art.ID, err)
	}
	a.articles.Put(art)

	if a.db != nil {
		if err := a.db.SaveArticle(art); err != nil {
			a.log.Warn().Str("article_id", art.ID).Err(err).Msg("article write-through failed")
		}
		if err := a.db.SaveEmbedding(art.ID, vec); err != nil {
			a.log.Warn().Str("article_id", art.ID).Err(err).Msg("embedding write-through failed")
		}
	}

	a.log.Debug().
		Str("article_id", art.ID).
		Str("topic", string(art.Topic)).
		Msg("article ingested")
	return nil
}

// IngestBatch ingests a slice of raw records, skipping and recording
// each failure instead of aborting the batch.
func (a *Adapter) IngestBatch(ctx context.Context, raws []article.Raw) Report {
	var report Report
	for i, raw := range raws {
		if err := a.Ingest(ctx, raw); err != nil {
			report.Failures = append(report.Failures, Failure{Index: i, ID: raw.ID, Err: err})
			a.log.Warn().
				Int("index", i).
				Str("record_id", raw.ID).
				Err(err).
				Msg("record skipped")
			continue
		}
		report.Ingested++
	}
	return report
}

// BackfillSummary fills in a missing summary for an already ingested
// article and persists the change. Existing summaries are never
// overwritten.
func (a *Adapter) BackfillSummary(id, summary string) bool {
	if !a.articles.BackfillSummary(id, summary) {
		return false
	}
	if a.db != nil {
		art, _ := a.articles.Get(id)
		if err := a.db.UpdateSummary(id, summary, art.ReadTime); err != nil {
			a.log.Warn().Str("article_id", id).Err(err).Msg("summary write-through failed")
		}
	}
	return true
}

// embed produces the article's vector from its title and summary.
func (a *Adapter) embed(ctx context.Context, art article.Article) ([]float32, error) {
	text := strings.TrimSpace(art.Title + " " + art.Summary)
	vec, err := a.provider.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: provider returned no vector", ErrEmbeddingUnavailable)
	}
	return vec, nil
}
