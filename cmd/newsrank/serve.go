package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"newsrank/internal/api"
	"newsrank/internal/cache"
	"newsrank/internal/summary"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

Endpoints:
  GET  /api/news             Fetch and return fresh articles
  GET  /api/news/trending    Most recent stored articles
  GET  /api/recommendations  Similarity-ranked articles
  POST /api/summarize        Summarize article text or a URL
  GET  /healthz              Health check`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		exitWithError(ExitConfigError, "starting: %v", err)
	}
	defer a.close()

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	responseCache, err := cache.OpenBadger(a.cfg.Storage.CacheDir)
	if err != nil {
		log.Warn().Err(err).Msg("disk cache unavailable, using memory cache")
		responseCache = nil
	}
	var c cache.Cache
	if responseCache != nil {
		c = responseCache
		defer responseCache.Close()
	} else {
		c = cache.NewMemory()
	}

	srv := api.NewServer(api.Options{
		Articles:   a.articles,
		Engine:     a.engine,
		Adapter:    a.adapter,
		Provider:   a.provider,
		Summarizer: summary.Fallback{Primary: newHFSummarizer(a)},
		Extractor:  summary.NewExtractor(),
		Cache:      c,
		CacheTTL:   a.cfg.Server.CacheTTL,
		Log:        log.Logger,
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			exitWithError(ExitError, "server: %v", err)
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			exitWithError(ExitError, "shutdown: %v", err)
		}
	}
	return nil
}

// newHFSummarizer returns the hosted summarizer when a key is
// configured, nil otherwise.
func newHFSummarizer(a *app) summary.Summarizer {
	if a.cfg.Summarizer.HFKey == "" {
		return nil
	}
	return summary.NewHFClient(a.cfg.Summarizer.HFKey)
}
