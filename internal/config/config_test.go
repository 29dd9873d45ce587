package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.Server.CacheTTL)
	}
	if cfg.Storage.DBPath != "newsrank.db" {
		t.Errorf("DBPath = %q", cfg.Storage.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9090"
providers:
  newsApiKey: file-key
logLevel: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Providers.NewsAPIKey != "file-key" {
		t.Errorf("NewsAPIKey = %q", cfg.Providers.NewsAPIKey)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	// Unset fields keep defaults.
	if cfg.Storage.DBPath != "newsrank.db" {
		t.Errorf("DBPath = %q", cfg.Storage.DBPath)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("providers:\n  newsApiKey: file-key\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(newsAPIKeyEnv, "env-key")
	t.Setenv(listenAddrEnv, ":7070")

	cfg := Load()
	if cfg.Providers.NewsAPIKey != "env-key" {
		t.Errorf("NewsAPIKey = %q, want env-key", cfg.Providers.NewsAPIKey)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Server.Addr)
	}
}

func TestLoad_BadFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":::not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoad_SharedHFKey(t *testing.T) {
	t.Setenv(hfKeyEnv, "hf-shared")

	cfg := Load()
	if cfg.Embedding.HFKey != "hf-shared" || cfg.Summarizer.HFKey != "hf-shared" {
		t.Errorf("HF keys = %q / %q, want hf-shared for both", cfg.Embedding.HFKey, cfg.Summarizer.HFKey)
	}
}
