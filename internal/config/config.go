// Package config loads application settings from an optional YAML file
// with environment overrides on top. Missing or unparseable files fall
// back to defaults so the binary always starts.
package config

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "NEWSRANK_CONFIG"
	listenAddrEnv = "NEWSRANK_ADDR"
	dbPathEnv     = "NEWSRANK_DB"
	cacheDirEnv   = "NEWSRANK_CACHE_DIR"
	newsAPIKeyEnv = "NEWSAPI_KEY"
	gnewsKeyEnv   = "GNEWS_KEY"
	hfKeyEnv      = "HUGGINGFACE_KEY"
	ollamaURLEnv  = "OLLAMA_URL"
	embedModelEnv = "EMBED_MODEL"
	logLevelEnv   = "NEWSRANK_LOG_LEVEL"
	demoOnlyEnv   = "NEWSRANK_DEMO_ONLY"
)

// Config holds the settings shared across commands.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Providers  ProviderConfig   `yaml:"providers"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	LogLevel   string           `yaml:"logLevel"`
}

// ServerConfig describes the HTTP serving layer.
type ServerConfig struct {
	Addr     string        `yaml:"addr"`
	CacheTTL time.Duration `yaml:"cacheTtl"`
}

// StorageConfig points at the on-disk stores.
type StorageConfig struct {
	DBPath   string `yaml:"dbPath"`
	CacheDir string `yaml:"cacheDir"`
}

// ProviderConfig holds news provider credentials. Empty keys disable a
// tier; the demo corpus needs none.
type ProviderConfig struct {
	NewsAPIKey string `yaml:"newsApiKey"`
	GNewsKey   string `yaml:"gnewsKey"`
	DemoOnly   bool   `yaml:"demoOnly"`
}

// EmbeddingConfig describes the embedding provider.
type EmbeddingConfig struct {
	OllamaURL  string `yaml:"ollamaUrl"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	HFKey      string `yaml:"hfKey"`
}

// SummarizerConfig describes the hosted summarization model.
type SummarizerConfig struct {
	HFKey string `yaml:"hfKey"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Warn().Str("path", path).Err(err).Msg("cannot read config, using defaults")
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Warn().Str("path", path).Err(err).Msg("cannot parse config, using defaults")
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(listenAddrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(dbPathEnv); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv(cacheDirEnv); v != "" {
		c.Storage.CacheDir = v
	}
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.Providers.NewsAPIKey = v
	}
	if v := os.Getenv(gnewsKeyEnv); v != "" {
		c.Providers.GNewsKey = v
	}
	if v := os.Getenv(hfKeyEnv); v != "" {
		c.Embedding.HFKey = v
		c.Summarizer.HFKey = v
	}
	if v := os.Getenv(ollamaURLEnv); v != "" {
		c.Embedding.OllamaURL = v
	}
	if v := os.Getenv(embedModelEnv); v != "" {
		c.Embedding.Model = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(demoOnlyEnv); v == "1" || v == "true" {
		c.Providers.DemoOnly = true
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.CacheTTL > 0 {
		base.Server.CacheTTL = override.Server.CacheTTL
	}
	if override.Storage.DBPath != "" {
		base.Storage.DBPath = override.Storage.DBPath
	}
	if override.Storage.CacheDir != "" {
		base.Storage.CacheDir = override.Storage.CacheDir
	}
	if override.Providers.NewsAPIKey != "" {
		base.Providers.NewsAPIKey = override.Providers.NewsAPIKey
	}
	if override.Providers.GNewsKey != "" {
		base.Providers.GNewsKey = override.Providers.GNewsKey
	}
	if override.Providers.DemoOnly {
		base.Providers.DemoOnly = true
	}
	if override.Embedding.OllamaURL != "" {
		base.Embedding.OllamaURL = override.Embedding.OllamaURL
	}
	if override.Embedding.Model != "" {
		base.Embedding.Model = override.Embedding.Model
	}
	if override.Embedding.Dimensions > 0 {
		base.Embedding.Dimensions = override.Embedding.Dimensions
	}
	if override.Embedding.HFKey != "" {
		base.Embedding.HFKey = override.Embedding.HFKey
	}
	if override.Summarizer.HFKey != "" {
		base.Summarizer.HFKey = override.Summarizer.HFKey
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:     ":8080",
			CacheTTL: 5 * time.Minute,
		},
		Storage: StorageConfig{
			DBPath:   "newsrank.db",
			CacheDir: ".newsrank-cache",
		},
		Embedding: EmbeddingConfig{},
		LogLevel:  "info",
	}
}
