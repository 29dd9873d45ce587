// Package api exposes the HTTP serving layer: news fetching,
// recommendations, trending, and on-demand summarization.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"newsrank/internal/cache"
	"newsrank/internal/ingest"
	"newsrank/internal/recommend"
	"newsrank/internal/source"
	"newsrank/internal/store"
	"newsrank/internal/summary"
)

// Server holds the wired application components behind the HTTP API.
type Server struct {
	articles   *store.ArticleStore
	engine     *recommend.Engine
	adapter    *ingest.Adapter
	provider   source.Provider
	summarizer summary.Summarizer
	extractor  *summary.Extractor
	cache      cache.Cache
	cacheTTL   time.Duration
	log        zerolog.Logger
}

// Options configures a Server.
type Options struct {
	Articles   *store.ArticleStore
	Engine     *recommend.Engine
	Adapter    *ingest.Adapter
	Provider   source.Provider
	Summarizer summary.Summarizer
	Extractor  *summary.Extractor
	Cache      cache.Cache
	CacheTTL   time.Duration
	Log        zerolog.Logger
}

// NewServer creates the HTTP server components. A nil cache disables
// response caching.
func NewServer(opts Options) *Server {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Server{
		articles:   opts.Articles,
		engine:     opts.Engine,
		adapter:    opts.Adapter,
		provider:   opts.Provider,
		summarizer: opts.Summarizer,
		extractor:  opts.Extractor,
		cache:      opts.Cache,
		cacheTTL:   ttl,
		log:        opts.Log.With().Str("component", "api").Logger(),
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/news", s.handleNews)
		r.Get("/news/trending", s.handleTrending)
		r.Get("/recommendations", s.handleRecommendations)
		r.Post("/summarize", s.handleSummarize)
	})
	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
