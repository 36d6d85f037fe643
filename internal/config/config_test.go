package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/procuregpt/procure/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "15m"
shutdown_timeout = "30s"

[database]
path = "data/procurement.db"
busy_timeout = "5s"
max_open_conns = 1

[storage]
container_name = "uploads"
connection_string = "DefaultEndpointsProtocol=http;AccountName=procurestore;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/procurestore;"

[api]
base_path = "/api"
max_upload_size = "50MB"

[api.cors]
enabled = false

[api.pagination]
default_page_size = 25
max_page_size = 50

[uploads]
allowed_extensions = ["pdf", "csv"]

[agent]
name = "test-agent"

[agent.provider]
name = "ollama"
base_url = "http://localhost:11434"

[agent.model]
name = "llama3.1:8b"

[validation]
price_warn_deviation = 0.25
`

const overlayConfig = `
[server]
port = 9090

[database]
path = "overlay.db"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Path != "data/procurement.db" {
		t.Errorf("db path: got %s, want data/procurement.db", cfg.Database.Path)
	}
	if cfg.Storage.ContainerName != "uploads" {
		t.Errorf("storage container: got %s, want uploads", cfg.Storage.ContainerName)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if !cfg.Uploads.Allowed("pdf") {
		t.Error("uploads: pdf should be allowed")
	}
	if cfg.Uploads.Allowed("exe") {
		t.Error("uploads: exe should not be allowed")
	}
	if cfg.Validation.PriceWarnDeviation != 0.25 {
		t.Errorf("validation price_warn_deviation: got %v, want 0.25", cfg.Validation.PriceWarnDeviation)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv("PROCURE_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "overlay.db" {
		t.Errorf("db path: got %s, want overlay.db", cfg.Database.Path)
	}
	// Fields absent from the overlay keep their base values.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server host: got %s, want base 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PROCURE_STORAGE_CONNECTION_STRING", "conn")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("shutdown_timeout: got %s, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown duration: got %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Database.Path != "procurement.db" {
		t.Errorf("db path default: got %s", cfg.Database.Path)
	}
	if !cfg.Uploads.Allowed("xlsx") {
		t.Error("uploads: xlsx should be allowed by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)
	t.Setenv("PROCURE_DB_PATH", "/var/lib/procure/env.db")
	t.Setenv("PROCURE_SHUTDOWN_TIMEOUT", "45s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Database.Path != "/var/lib/procure/env.db" {
		t.Errorf("db path: got %s, want env override", cfg.Database.Path)
	}
	if cfg.ShutdownTimeout != "45s" {
		t.Errorf("shutdown_timeout: got %s, want 45s", cfg.ShutdownTimeout)
	}
}
