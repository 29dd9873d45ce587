package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"newsrank/internal/article"
	"newsrank/internal/source"
)

var (
	fetchTopic  string
	fetchSearch string
	fetchLimit  int
)

func init() {
	fetchCmd.Flags().StringVar(&fetchTopic, "topic", "", "Restrict to one topic (business, technology, ...)")
	fetchCmd.Flags().StringVar(&fetchSearch, "search", "", "Free-text search query")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", source.DefaultFetchLimit, "Maximum articles to fetch")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch articles from the provider chain and store them",
	Long: `Fetch articles from the provider chain and store them.

Providers are tried in order until one yields articles: NewsAPI and
GNews when keys are configured, then public RSS feeds, then the
built-in demo corpus. Fetched articles are normalized, embedded, and
persisted.

Examples:
  newsrank fetch
  newsrank fetch --topic technology --limit 10
  newsrank fetch --search "fusion power"`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		exitWithError(ExitConfigError, "starting: %v", err)
	}
	defer a.close()

	q := source.Query{Search: fetchSearch, Limit: fetchLimit}
	if fetchTopic != "" {
		q.Topic = article.ParseTopic(fetchTopic)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	raws, err := a.provider.Fetch(ctx, q)
	if err != nil {
		exitWithError(ExitNoProvider, "fetching: %v", err)
	}

	report := a.adapter.IngestBatch(ctx, raws)
	resp := IngestResponse{Ingested: report.Ingested, Skipped: len(report.Failures)}
	for _, f := range report.Failures {
		resp.Errors = append(resp.Errors, f.Err.Error())
	}

	if humanOutput {
		fmt.Printf("Fetched %d articles (%d ingested, %d skipped)\n", len(raws), resp.Ingested, resp.Skipped)
	} else {
		outputJSON(resp)
	}
	return nil
}
