package main

import (
	"github.com/spf13/cobra"

	"newsrank/internal/article"
	"newsrank/internal/recommend"
)

var trendingLimit int

func init() {
	trendingCmd.Flags().IntVar(&trendingLimit, "limit", recommend.DefaultMaxResults, "Maximum results to return")
	rootCmd.AddCommand(trendingCmd)
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List the most recently published stored articles",
	Args:  cobra.NoArgs,
	RunE:  runTrending,
}

func runTrending(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		exitWithError(ExitConfigError, "starting: %v", err)
	}
	defer a.close()

	recs, err := a.engine.Trending(trendingLimit)
	if err != nil {
		exitWithError(ExitDataError, "listing: %v", err)
	}

	articles := make([]article.Article, 0, len(recs))
	for _, r := range recs {
		articles = append(articles, r.Article)
	}

	if humanOutput {
		printArticlesHuman(articles)
	} else {
		outputJSON(articles)
	}
	return nil
}
