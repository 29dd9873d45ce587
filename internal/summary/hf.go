package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultHFSummaryURL is the hosted inference endpoint for the
	// summarization model.
	DefaultHFSummaryURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

	defaultHFTimeout = 45 * time.Second
)

// HFClient summarizes text through the Hugging Face hosted inference
// API. It satisfies Summarizer; callers fall back to Extractive when a
// request fails.
type HFClient struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
}

// HFOption configures an HFClient.
type HFOption func(*HFClient)

// WithHFEndpoint sets a custom endpoint (for testing).
func WithHFEndpoint(u string) HFOption {
	return func(c *HFClient) {
		c.endpoint = u
	}
}

// WithHFHTTPClient sets a custom HTTP client.
func WithHFHTTPClient(hc *http.Client) HFOption {
	return func(c *HFClient) {
		c.httpClient = hc
	}
}

// NewHFClient creates a hosted summarizer client. The key may be empty;
// the public endpoint accepts unauthenticated requests at a tight rate.
func NewHFClient(apiKey string, opts ...HFOption) *HFClient {
	c := &HFClient{
		httpClient: &http.Client{Timeout: defaultHFTimeout},
		apiKey:     apiKey,
		endpoint:   DefaultHFSummaryURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type hfSummaryRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MaxLength int  `json:"max_length"`
		MinLength int  `json:"min_length"`
		DoSample  bool `json:"do_sample"`
	} `json:"parameters"`
}

type hfSummaryResult struct {
	SummaryText string `json:"summary_text"`
}

// Summarize implements Summarizer.
func (c *HFClient) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	reqBody := hfSummaryRequest{Inputs: text}
	reqBody.Parameters.MaxLength = 130
	reqBody.Parameters.MinLength = 30

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarization request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarization: unexpected status %d", resp.StatusCode)
	}

	var results []hfSummaryResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("summarization: decoding response: %w", err)
	}
	if len(results) == 0 || results[0].SummaryText == "" {
		return "", fmt.Errorf("summarization: empty response")
	}
	return results[0].SummaryText, nil
}

// Fallback chains a primary summarizer with Extractive so callers
// always get a summary for non-empty text.
type Fallback struct {
	Primary Summarizer
}

// Summarize implements Summarizer.
func (f Fallback) Summarize(ctx context.Context, text string) (string, error) {
	if f.Primary != nil {
		if out, err := f.Primary.Summarize(ctx, text); err == nil && out != "" {
			return out, nil
		}
	}
	return Extractive{}.Summarize(ctx, text)
}
