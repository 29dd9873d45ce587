package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"newsrank/internal/article"
)

const (
	// NewsAPIBaseURL is the NewsAPI v2 base URL.
	NewsAPIBaseURL = "https://newsapi.org/v2"

	// newsAPIRateLimit keeps well under the free-tier daily quota.
	newsAPIRateLimit = 1.0

	// DefaultProviderTimeout is the HTTP request timeout shared by the
	// API-backed providers.
	DefaultProviderTimeout = 15 * time.Second
)

// NewsAPIClient fetches headlines from newsapi.org.
type NewsAPIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	country    string
}

// NewsAPIOption configures a NewsAPIClient.
type NewsAPIOption func(*NewsAPIClient)

// WithNewsAPIBaseURL sets a custom base URL (for testing).
func WithNewsAPIBaseURL(u string) NewsAPIOption {
	return func(c *NewsAPIClient) {
		c.baseURL = u
	}
}

// WithNewsAPIHTTPClient sets a custom HTTP client.
func WithNewsAPIHTTPClient(hc *http.Client) NewsAPIOption {
	return func(c *NewsAPIClient) {
		c.httpClient = hc
	}
}

// WithNewsAPICountry sets the headline country code. Defaults to "us".
func WithNewsAPICountry(code string) NewsAPIOption {
	return func(c *NewsAPIClient) {
		c.country = code
	}
}

// NewNewsAPIClient creates a NewsAPI client. The key may be empty, in
// which case every fetch reports ErrNotConfigured.
func NewNewsAPIClient(apiKey string, opts ...NewsAPIOption) *NewsAPIClient {
	c := &NewsAPIClient{
		httpClient: &http.Client{Timeout: DefaultProviderTimeout},
		limiter:    rate.NewLimiter(rate.Limit(newsAPIRateLimit), 1),
		apiKey:     apiKey,
		baseURL:    NewsAPIBaseURL,
		country:    "us",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Provider.
func (c *NewsAPIClient) Name() string { return "newsapi" }

// newsAPIResponse is the upstream envelope for both the top-headlines
// and everything endpoints.
type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Fetch implements Provider.
func (c *NewsAPIClient) Fetch(ctx context.Context, q Query) ([]article.Raw, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint, params := c.request(q)
	params.Set("apiKey", c.apiKey)
	params.Set("pageSize", strconv.Itoa(q.limit()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: unexpected status %d", resp.StatusCode)
	}

	var body newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("newsapi: decoding response: %w", err)
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi: %s", body.Message)
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
			ImageURL:    a.URLToImage,
			Summary:     a.Description,
			Topic:       string(topic),
		})
	}
	return raws, nil
}

// request picks the endpoint and base parameters for a query. Free-text
// search goes to the everything endpoint; otherwise country headlines,
// optionally restricted to a category.
func (c *NewsAPIClient) request(q Query) (string, url.Values) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("q", q.Search)
		params.Set("language", "en")
		params.Set("sortBy", "publishedAt")
		return "/everything", params
	}
	params.Set("country", c.country)
	if q.Topic != "" {
		params.Set("category", string(q.Topic))
	}
	return "/top-headlines", params
}
