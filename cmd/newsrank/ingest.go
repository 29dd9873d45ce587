package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newsrank/internal/article"
)

func init() {
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.json>",
	Short: "Ingest articles from a JSON file",
	Long: `Ingest articles from a JSON file.

The file holds an array of raw article records:

  [{"title": "...", "url": "...", "topic": "technology",
    "summary": "...", "publishedAt": "2026-03-01T10:00:00Z"}]

Records are normalized, embedded, and persisted. Invalid records are
skipped and reported; the run succeeds as long as the file parses.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", args[0], err)
	}
	var raws []article.Raw
	if err := json.Unmarshal(data, &raws); err != nil {
		exitWithError(ExitDataError, "parsing %s: %v", args[0], err)
	}

	a, err := newApp()
	if err != nil {
		exitWithError(ExitConfigError, "starting: %v", err)
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report := a.adapter.IngestBatch(ctx, raws)
	resp := IngestResponse{Ingested: report.Ingested, Skipped: len(report.Failures)}
	for _, f := range report.Failures {
		resp.Errors = append(resp.Errors, fmt.Sprintf("record %d: %v", f.Index, f.Err))
	}

	if humanOutput {
		fmt.Printf("Ingested %d articles, skipped %d\n", resp.Ingested, resp.Skipped)
		for _, e := range resp.Errors {
			fmt.Printf("  %s\n", e)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}
