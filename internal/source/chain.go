package source

import (
	"context"

	"github.com/rs/zerolog"

	"newsrank/internal/article"
)

// Chain tries providers in order until one yields articles. A provider
// error and an empty success are treated alike: both advance to the
// next tier. With a DemoProvider as the last tier the chain never comes
// back empty.
type Chain struct {
	providers []Provider
	log       zerolog.Logger
}

// NewChain creates a fallback chain over the given providers, tried in
// the order given.
func NewChain(log zerolog.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		log:       log.With().Str("component", "source").Logger(),
	}
}

// Name implements Provider.
func (c *Chain) Name() string { return "chain" }

// Fetch implements Provider. The result carries the records of the
// first tier that produced any, deduplicated by URL.
func (c *Chain) Fetch(ctx context.Context, q Query) ([]article.Raw, error) {
	var lastErr error = ErrNoArticles
	for _, p := range c.providers {
		raws, err := p.Fetch(ctx, q)
		if err != nil {
			c.log.Warn().
				Str("provider", p.Name()).
				Err(err).
				Msg("provider failed, trying next tier")
			lastErr = err
			continue
		}
		raws = dedupeByURL(raws)
		if len(raws) == 0 {
			c.log.Info().
				Str("provider", p.Name()).
				Msg("provider returned nothing, trying next tier")
			lastErr = ErrNoArticles
			continue
		}
		c.log.Info().
			Str("provider", p.Name()).
			Int("count", len(raws)).
			Msg("fetched articles")
		return raws, nil
	}
	return nil, lastErr
}

// dedupeByURL keeps the first record for each URL. Records without a
// URL pass through untouched; normalization rejects them later unless
// they carry their own id.
func dedupeByURL(raws []article.Raw) []article.Raw {
	seen := make(map[string]bool, len(raws))
	out := raws[:0]
	for _, r := range raws {
		if r.URL != "" {
			if seen[r.URL] {
				continue
			}
			seen[r.URL] = true
		}
		out = append(out, r)
	}
	return out
}
