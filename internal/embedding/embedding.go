// Package embedding provides vector embedding generation for article
// text. The ranking engine treats the provider as a black box: any
// implementation that returns fixed-length vectors will do.
package embedding

import "context"

// Provider generates embeddings from text.
type Provider interface {
	// Embed generates an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the name of the embedding model.
	ModelName() string

	// Dimensions returns the expected vector dimensions.
	Dimensions() int
}

// Func adapts a plain function to the Provider interface. Used in tests
// and for injecting deterministic embedders.
type Func struct {
	Fn    func(ctx context.Context, text string) ([]float32, error)
	Model string
	Dims  int
}

// Embed calls the wrapped function.
func (f Func) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.Fn(ctx, text)
}

// ModelName returns the configured model name.
func (f Func) ModelName() string { return f.Model }

// Dimensions returns the configured dimensionality.
func (f Func) Dimensions() int { return f.Dims }
