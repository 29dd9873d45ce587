// Package article defines the normalized news article record and its
// conversion from raw provider data.
package article

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// ErrInvalidArticle indicates a raw record that cannot be normalized
// (missing identifier and URL, or missing title). Such records are
// skipped during ingestion, never fatal to a batch.
var ErrInvalidArticle = errors.New("invalid article record")

// Topic is an enumerated article category. Unknown labels normalize to
// TopicUncategorized rather than passing through as free-form strings.
type Topic string

// Supported topics. These match the category vocabulary of the upstream
// news providers.
const (
	TopicBusiness      Topic = "business"
	TopicEntertainment Topic = "entertainment"
	TopicGeneral       Topic = "general"
	TopicHealth        Topic = "health"
	TopicScience       Topic = "science"
	TopicSports        Topic = "sports"
	TopicTechnology    Topic = "technology"
	TopicUncategorized Topic = "uncategorized"
)

// Topics lists every known topic except TopicUncategorized.
var Topics = []Topic{
	TopicBusiness,
	TopicEntertainment,
	TopicGeneral,
	TopicHealth,
	TopicScience,
	TopicSports,
	TopicTechnology,
}

// ParseTopic maps a label to a Topic, case-insensitively. Unknown or
// empty labels map to TopicUncategorized.
func ParseTopic(label string) Topic {
	t := Topic(strings.ToLower(strings.TrimSpace(label)))
	for _, known := range Topics {
		if t == known {
			return known
		}
	}
	return TopicUncategorized
}

// Article is a normalized news article. Records are immutable once
// ingested except for backfilling an empty summary.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Topic       Topic     `json:"topic"`
	PublishedAt time.Time `json:"publishedAt"`
	ReadTime    string    `json:"readTime"`
}

// Raw is an article record as received from a news provider, before
// normalization. Field names follow the provider wire format.
type Raw struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Topic       string `json:"topic,omitempty"`
}

// timeFormats are the timestamp layouts providers are known to emit.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// Normalize converts a raw provider record into an Article.
//
// A missing summary defaults to the empty string (pending backfill), a
// missing or unknown topic defaults to TopicUncategorized, and a missing
// ID is derived from the URL. Records lacking a title, or lacking both ID
// and URL, fail with ErrInvalidArticle.
func Normalize(raw Raw) (Article, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return Article{}, fmt.Errorf("%w: missing title", ErrInvalidArticle)
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		if strings.TrimSpace(raw.URL) == "" {
			return Article{}, fmt.Errorf("%w: missing id and url", ErrInvalidArticle)
		}
		id = DeriveID(raw.URL)
	}

	published := parseTime(raw.PublishedAt)
	summary := strings.TrimSpace(raw.Summary)

	return Article{
		ID:          id,
		Title:       title,
		Summary:     summary,
		Source:      strings.TrimSpace(raw.Source),
		URL:         strings.TrimSpace(raw.URL),
		ImageURL:    strings.TrimSpace(raw.ImageURL),
		Topic:       ParseTopic(raw.Topic),
		PublishedAt: published,
		ReadTime:    ReadTime(len(title) + len(summary)),
	}, nil
}

// DeriveID produces a stable article identifier from a URL.
func DeriveID(url string) string {
	h := fnv.New64a()
	h.Write([]byte(strings.TrimSpace(url)))
	return fmt.Sprintf("%016x", h.Sum64())
}

// parseTime tries the known provider layouts, falling back to the
// current time so that an unparseable timestamp never rejects a record.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, layout := range timeFormats {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Now().UTC()
}

// ReadTime estimates reading time from content length, assuming 225
// words per minute and an average word length of six characters.
func ReadTime(contentLength int) string {
	words := contentLength / 6
	minutes := words / 225
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
