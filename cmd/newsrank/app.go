package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"newsrank/internal/config"
	"newsrank/internal/embedding"
	"newsrank/internal/ingest"
	"newsrank/internal/recommend"
	"newsrank/internal/source"
	"newsrank/internal/store"
)

// app bundles the wired components a command needs.
type app struct {
	cfg        config.Config
	articles   *store.ArticleStore
	embeddings *store.EmbeddingStore
	db         *store.DB
	adapter    *ingest.Adapter
	engine     *recommend.Engine
	provider   source.Provider
}

// newApp loads configuration, opens the database, restores the stores,
// and wires the provider chain and recommendation engine.
func newApp() (*app, error) {
	cfg := config.Load()

	articles := store.NewArticleStore()
	embeddings := store.NewEmbeddingStore()

	db, err := store.OpenDB(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	n, err := db.LoadInto(articles, embeddings)
	if err != nil {
		db.Close()
		return nil, err
	}
	if n > 0 {
		log.Info().Int("articles", n).Str("path", cfg.Storage.DBPath).Msg("stores restored")
	}

	embedder := pickEmbedder(cfg)
	log.Debug().Str("model", embedder.ModelName()).Msg("embedding provider selected")

	a := &app{
		cfg:        cfg,
		articles:   articles,
		embeddings: embeddings,
		db:         db,
		adapter:    ingest.NewAdapter(embedder, articles, embeddings, db, log.Logger),
		engine:     recommend.NewEngine(articles, embeddings, log.Logger),
		provider:   buildProviderChain(cfg),
	}
	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

// pickEmbedder selects the best reachable embedding provider: a local
// Ollama daemon first, the hosted API when a key exists, and the
// offline hash embedder as the floor.
func pickEmbedder(cfg config.Config) embedding.Provider {
	var ollamaOpts []embedding.OllamaOption
	if cfg.Embedding.OllamaURL != "" {
		ollamaOpts = append(ollamaOpts, embedding.WithBaseURL(cfg.Embedding.OllamaURL))
	}
	if cfg.Embedding.Model != "" && cfg.Embedding.Dimensions > 0 {
		ollamaOpts = append(ollamaOpts, embedding.WithModel(cfg.Embedding.Model, cfg.Embedding.Dimensions))
	}
	ollama := embedding.NewOllamaProvider(ollamaOpts...)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := ollama.IsAvailable(ctx); err == nil {
		return ollama
	}

	if cfg.Embedding.HFKey != "" {
		return embedding.NewHFProvider(cfg.Embedding.HFKey)
	}

	log.Warn().Msg("no embedding service reachable, using the offline embedder")
	return embedding.Local{}
}

// buildProviderChain assembles the tiered news source: configured API
// providers first, then keyless RSS, then the demo corpus.
func buildProviderChain(cfg config.Config) source.Provider {
	if cfg.Providers.DemoOnly {
		return source.NewDemoProvider()
	}

	var tiers []source.Provider
	if cfg.Providers.NewsAPIKey != "" {
		tiers = append(tiers, source.NewNewsAPIClient(cfg.Providers.NewsAPIKey))
	}
	if cfg.Providers.GNewsKey != "" {
		tiers = append(tiers, source.NewGNewsClient(cfg.Providers.GNewsKey))
	}
	tiers = append(tiers, source.NewRSSProvider(), source.NewDemoProvider())
	return source.NewChain(log.Logger, tiers...)
}
