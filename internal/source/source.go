// Package source fetches raw article records from external news
// providers. Providers share one interface so the fallback chain can
// treat a paid API, an RSS feed, and the built-in demo corpus the same
// way.
package source

import (
	"context"
	"errors"

	"newsrank/internal/article"
)

// ErrNoArticles indicates a provider answered successfully but had
// nothing to return. The chain treats this the same as a provider
// error and moves on.
var ErrNoArticles = errors.New("provider returned no articles")

// ErrNotConfigured indicates a provider is missing the credentials it
// needs and should be skipped.
var ErrNotConfigured = errors.New("provider not configured")

// DefaultFetchLimit bounds a single provider fetch when the query does
// not say otherwise.
const DefaultFetchLimit = 30

// Query describes one fetch from a provider.
type Query struct {
	// Topic restricts the fetch to one category. Empty means top
	// headlines across all categories.
	Topic article.Topic

	// Search is a free-text query. Providers that cannot search ignore
	// it.
	Search string

	// Limit caps the number of records. Zero or negative means
	// DefaultFetchLimit.
	Limit int
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return DefaultFetchLimit
	}
	return q.Limit
}

// Provider fetches raw article records from one upstream.
type Provider interface {
	// Name identifies the provider in logs and responses.
	Name() string

	// Fetch returns raw records for the query. An empty result with a
	// nil error is allowed; the chain normalizes it to ErrNoArticles.
	Fetch(ctx context.Context, q Query) ([]article.Raw, error)
}
