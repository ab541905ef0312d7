package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
environment: test
server:
  port: 8080
stooq:
  base_url: https://stooq.pl
  timeout: 10s
cache:
  backend: memory
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "test" {
		t.Fatalf("environment = %q", cfg.Environment)
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("backend = %q", cfg.Cache.Backend)
	}
}

func TestValidateRejectsBadBackend(t *testing.T) {
	path := writeConfig(t, `
environment: test
stooq:
  base_url: https://stooq.pl
cache:
  backend: cassandra
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown cache backend")
	}
}

func TestValidateFileBackendNeedsDir(t *testing.T) {
	path := writeConfig(t, `
environment: test
stooq:
  base_url: https://stooq.pl
cache:
  backend: file
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a file backend without a dir")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("STOOQ_BASE_URL", "http://localhost:9999")
	t.Setenv("CACHE_BACKEND", "file")
	t.Setenv("CACHE_DIR", "/tmp/candles")

	cfg, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Stooq.BaseURL != "http://localhost:9999" {
		t.Fatalf("base_url = %q", cfg.Stooq.BaseURL)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir != "/tmp/candles" {
		t.Fatalf("cache override failed: %+v", cfg.Cache)
	}
}
