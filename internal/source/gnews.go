package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"newsrank/internal/article"
)

const (
	// GNewsBaseURL is the GNews v4 base URL.
	GNewsBaseURL = "https://gnews.io/api/v4"

	// gnewsRateLimit keeps under the free-tier quota.
	gnewsRateLimit = 1.0
)

// GNewsClient fetches headlines from gnews.io. It is the second tier of
// the fallback chain: same shape of API as NewsAPI with a separate
// quota.
type GNewsClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// GNewsOption configures a GNewsClient.
type GNewsOption func(*GNewsClient)

// WithGNewsBaseURL sets a custom base URL (for testing).
func WithGNewsBaseURL(u string) GNewsOption {
	return func(c *GNewsClient) {
		c.baseURL = u
	}
}

// WithGNewsHTTPClient sets a custom HTTP client.
func WithGNewsHTTPClient(hc *http.Client) GNewsOption {
	return func(c *GNewsClient) {
		c.httpClient = hc
	}
}

// NewGNewsClient creates a GNews client. The key may be empty, in which
// case every fetch reports ErrNotConfigured.
func NewGNewsClient(apiKey string, opts ...GNewsOption) *GNewsClient {
	c := &GNewsClient{
		httpClient: &http.Client{Timeout: DefaultProviderTimeout},
		limiter:    rate.NewLimiter(rate.Limit(gnewsRateLimit), 1),
		apiKey:     apiKey,
		baseURL:    GNewsBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Provider.
func (c *GNewsClient) Name() string { return "gnews" }

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch implements Provider.
func (c *GNewsClient) Fetch(ctx context.Context, q Query) ([]article.Raw, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("token", c.apiKey)
	params.Set("lang", "en")
	params.Set("max", strconv.Itoa(q.limit()))

	endpoint := "/top-headlines"
	if q.Search != "" {
		endpoint = "/search"
		params.Set("q", q.Search)
	} else if q.Topic != "" {
		params.Set("category", gnewsCategory(q.Topic))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gnews request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews: unexpected status %d", resp.StatusCode)
	}

	var body gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("gnews: decoding response: %w", err)
	}

	topic := q.Topic
	if topic == "" {
		topic = article.TopicGeneral
	}
	raws := make([]article.Raw, 0, len(body.Articles))
	for _, a := range body.Articles {
		raws = append(raws, article.Raw{
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			ImageURL:    a.Image,
			Summary:     a.Description,
			Topic:       string(topic),
		})
	}
	return raws, nil
}

// gnewsCategory maps local topics onto GNews category names. The sets
// coincide except that GNews has no uncategorized bucket.
func gnewsCategory(t article.Topic) string {
	if t == article.TopicUncategorized {
		return "general"
	}
	return string(t)
}
