package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	// DefaultHFBaseURL is the Hugging Face inference API endpoint.
	DefaultHFBaseURL = "https://api-inference.huggingface.co"

	// DefaultHFModel is the default sentence-embedding model. Its
	// vectors have the same 384 dimensions as the local all-minilm.
	DefaultHFModel = "sentence-transformers/all-MiniLM-L6-v2"
)

// HFProvider generates embeddings through the Hugging Face inference
// API. Used when no local Ollama instance is available.
type HFProvider struct {
	baseURL    string
	model      string
	apiKey     string
	dimensions int
	client     *http.Client
}

// HFOption configures an HFProvider.
type HFOption func(*HFProvider)

// WithHFBaseURL sets the inference API base URL (for testing).
func WithHFBaseURL(url string) HFOption {
	return func(p *HFProvider) {
		p.baseURL = url
	}
}

// WithHFModel sets the embedding model and its expected dimensions.
func WithHFModel(model string, dims int) HFOption {
	return func(p *HFProvider) {
		p.model = model
		p.dimensions = dims
	}
}

// NewHFProvider creates a Hugging Face embedding provider.
func NewHFProvider(apiKey string, opts ...HFOption) *HFProvider {
	p := &HFProvider{
		baseURL:    DefaultHFBaseURL,
		model:      DefaultHFModel,
		apiKey:     apiKey,
		dimensions: DefaultDimensions,
		client:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type hfEmbedRequest struct {
	Inputs []string `json:"inputs"`
}

// Embed generates an embedding for the given text.
func (p *HFProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(hfEmbedRequest{Inputs: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/pipeline/feature-extraction/%s", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}

	// The feature-extraction pipeline returns one vector per input.
	var vectors [][]float32
	if err := json.NewDecoder(resp.Body).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("inference API returned no vectors")
	}

	vector := vectors[0]
	if len(vector) != p.dimensions {
		return nil, fmt.Errorf("unexpected embedding dimensions: got %d, want %d", len(vector), p.dimensions)
	}
	return vector, nil
}

// ModelName returns the name of the embedding model.
func (p *HFProvider) ModelName() string {
	return p.model
}

// Dimensions returns the expected vector dimensions.
func (p *HFProvider) Dimensions() int {
	return p.dimensions
}
