package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if len(cfg.Sources.Feeds) != 3 {
		t.Errorf("expected 3 feeds, got %d", len(cfg.Sources.Feeds))
	}
	if cfg.Sources.Feeds[0].Name != "G1" {
		t.Errorf("expected first feed 'G1', got %q", cfg.Sources.Feeds[0].Name)
	}

	if cfg.Classifier.Strategy != "static" {
		t.Errorf("expected strategy 'static', got %q", cfg.Classifier.Strategy)
	}
	if cfg.Classifier.Threshold != 1 {
		t.Errorf("expected threshold 1, got %d", cfg.Classifier.Threshold)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Server.PageSize != 20 {
		t.Errorf("expected page size 20, got %d", cfg.Server.PageSize)
	}

	if !cfg.Learning.Enabled {
		t.Error("expected learning enabled by default")
	}
	if cfg.Cache.MaxEntries != 10000 {
		t.Errorf("expected cache max_entries 10000, got %d", cfg.Cache.MaxEntries)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
classifier:
  strategy: remote
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Classifier.Strategy != "remote" {
		t.Errorf("expected strategy 'remote', got %q", cfg.Classifier.Strategy)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Classifier.Threshold != 1 {
		t.Errorf("expected default threshold 1, got %d", cfg.Classifier.Threshold)
	}
	if cfg.Server.PageSize != 20 {
		t.Errorf("expected default page size 20, got %d", cfg.Server.PageSize)
	}
	if cfg.Classifier.Remote.APIKeyEnv != "HUGGINGFACE_API_KEY" {
		t.Errorf("expected default api_key_env, got %q", cfg.Classifier.Remote.APIKeyEnv)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Sources.Feeds) == 0 {
		t.Error("expected feeds to be populated from file")
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	if _, err := ResolveConfigPath("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{}
	defaultDir := cfg.GetDataDir()
	if defaultDir == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Output.DataDir = "/custom/path"
	if cfg.GetDataDir() != "/custom/path" {
		t.Errorf("expected '/custom/path', got %q", cfg.GetDataDir())
	}
	if cfg.VocabularyPath() != filepath.Join("/custom/path", "vocabulary.db") {
		t.Errorf("unexpected vocabulary path %q", cfg.VocabularyPath())
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}
	if cfg.FeedTimeout() != 15*time.Second {
		t.Errorf("expected 15s feed timeout, got %v", cfg.FeedTimeout())
	}
	if cfg.SnapshotTTL() != 10*time.Minute {
		t.Errorf("expected 10m snapshot TTL, got %v", cfg.SnapshotTTL())
	}
}
