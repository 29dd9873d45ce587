package main

import (
	"github.com/spf13/cobra"

	"newsrank/internal/recommend"
)

var (
	recommendInterests []string
	recommendLimit     int
	recommendDiverse   bool
)

func init() {
	recommendCmd.Flags().StringSliceVar(&recommendInterests, "interest", nil, "Topic interest (repeatable)")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", recommend.DefaultMaxResults, "Maximum results to return")
	recommendCmd.Flags().BoolVar(&recommendDiverse, "diverse", false, "Spread results across topics")
	rootCmd.AddCommand(recommendCmd)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [article-id]",
	Short: "Recommend articles by similarity",
	Long: `Recommend articles by similarity.

With an article id, results are the stored articles closest to it by
cosine similarity over their embeddings. With --interest flags, results
come from the matching topics ranked against their shared centroid.
With neither, results are the most recent articles.

Examples:
  newsrank recommend 4f2d8a1b9c3e7f60
  newsrank recommend --interest technology --interest science
  newsrank recommend --diverse --limit 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		exitWithError(ExitConfigError, "starting: %v", err)
	}
	defer a.close()

	req := recommend.Request{
		Interests:  recommendInterests,
		MaxResults: recommendLimit,
		Diversify:  recommendDiverse,
	}
	if len(args) == 1 {
		req.AnchorID = args[0]
	}

	recs, err := a.engine.Recommend(req)
	if err != nil {
		exitWithError(ExitDataError, "recommending: %v", err)
	}

	if humanOutput {
		printRecommendationsHuman(recs)
	} else {
		outputJSON(recs)
	}
	return nil
}
