package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"newsrank/internal/article"
	"newsrank/internal/recommend"
)

const (
	// Title truncation length for list output.
	ListTitleMaxLen = 70
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IngestResponse summarizes an ingestion run.
type IngestResponse struct {
	Ingested int      `json:"ingested"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// printArticlesHuman prints an article list in human-readable format.
func printArticlesHuman(articles []article.Article) {
	if len(articles) == 0 {
		fmt.Println("No articles found")
		return
	}
	for i, a := range articles {
		fmt.Printf("%d. %s\n", i+1, truncateString(a.Title, ListTitleMaxLen))
		fmt.Printf("   %s | %s | %s\n\n", a.Topic, a.Source, a.PublishedAt.Format(time.RFC822))
	}
}

// printRecommendationsHuman prints ranked results in human-readable
// format, score first the way similarity listings usually read.
func printRecommendationsHuman(recs []recommend.Recommendation) {
	if len(recs) == 0 {
		fmt.Println("No recommendations")
		return
	}
	for i, r := range recs {
		fmt.Printf("%d. [%.3f] %s\n", i+1, r.Score, r.Article.ID)
		fmt.Printf("   %s\n", truncateString(r.Article.Title, ListTitleMaxLen))
		fmt.Printf("   %s | %s\n\n", r.Article.Topic, r.Article.PublishedAt.Format(time.RFC822))
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
