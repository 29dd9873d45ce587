// Package main provides the newsrank CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"newsrank/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newsrank",
	Short: "News recommendation engine",
	Long: `newsrank fetches news articles, embeds them, and serves
similarity-based recommendations.

Articles come from a tiered provider chain (NewsAPI, GNews, RSS, and a
built-in demo corpus) so the engine works with or without API keys.
Commands output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version

	cobra.OnInitialize(initRuntime)
}

// initRuntime loads .env and configures the global logger before any
// command runs.
func initRuntime() {
	godotenv.Load()

	level, err := zerolog.ParseLevel(config.Load().LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
