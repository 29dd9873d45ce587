package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsrank/internal/article"
)

// RSSProvider fetches articles from a fixed set of RSS/Atom feeds. It
// needs no API key, so it sits behind the paid providers as the
// keyless fallback.
type RSSProvider struct {
	parser *gofeed.Parser
	feeds  map[article.Topic][]string
}

// defaultFeeds maps topics to well-known public feeds.
var defaultFeeds = map[article.Topic][]string{
	article.TopicGeneral:       {"https://feeds.bbci.co.uk/news/rss.xml"},
	article.TopicTechnology:    {"https://feeds.bbci.co.uk/news/technology/rss.xml"},
	article.TopicBusiness:      {"https://feeds.bbci.co.uk/news/business/rss.xml"},
	article.TopicScience:       {"https://feeds.bbci.co.uk/news/science_and_environment/rss.xml"},
	article.TopicHealth:        {"https://feeds.bbci.co.uk/news/health/rss.xml"},
	article.TopicSports:        {"https://feeds.bbci.co.uk/sport/rss.xml"},
	article.TopicEntertainment: {"https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml"},
}

// RSSOption configures an RSSProvider.
type RSSOption func(*RSSProvider)

// WithFeeds replaces the default feed map.
func WithFeeds(feeds map[article.Topic][]string) RSSOption {
	return func(p *RSSProvider) {
		p.feeds = feeds
	}
}

// NewRSSProvider creates an RSS provider over the default feed set.
func NewRSSProvider(opts ...RSSOption) *RSSProvider {
	p := &RSSProvider{
		parser: gofeed.NewParser(),
		feeds:  defaultFeeds,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *RSSProvider) Name() string { return "rss" }

// Fetch implements Provider. Free-text search filters items by a naive
// substring match on the title, since feeds have no search endpoint.
func (p *RSSProvider) Fetch(ctx context.Context, q Query) ([]article.Raw, error) {
	urls := p.feedURLs(q.Topic)
	if len(urls) == 0 {
		return nil, fmt.Errorf("no feeds for topic %q", q.Topic)
	}

	limit := q.limit()
	var raws []article.Raw
	var lastErr error
	for _, feedURL := range urls {
		feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = fmt.Errorf("parsing feed %s: %w", feedURL, err)
			continue
		}
		for _, item := range feed.Items {
			if q.Search != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(q.Search)) {
				continue
			}
			raws = append(raws, rawFromItem(item, feed.Title, q.Topic))
			if len(raws) >= limit {
				return raws, nil
			}
		}
	}
	if len(raws) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return raws, nil
}

func (p *RSSProvider) feedURLs(topic article.Topic) []string {
	if topic == "" {
		return p.feeds[article.TopicGeneral]
	}
	return p.feeds[topic]
}

func rawFromItem(item *gofeed.Item, feedTitle string, topic article.Topic) article.Raw {
	published := item.Published
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	imageURL := ""
	if item.Image != nil {
		imageURL = item.Image.URL
	}
	if topic == "" {
		topic = article.TopicGeneral
	}
	return article.Raw{
		Title:       item.Title,
		URL:         item.Link,
		Source:      feedTitle,
		PublishedAt: published,
		ImageURL:    imageURL,
		Summary:     item.Description,
		Topic:       string(topic),
	}
}
