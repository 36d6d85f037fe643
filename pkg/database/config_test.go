package database_test

import (
	"testing"

	"github.com/procuregpt/procure/pkg/database"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := database.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Path != "procurement.db" {
		t.Errorf("Path = %q, want procurement.db", cfg.Path)
	}
	if cfg.BusyTimeout != "5s" {
		t.Errorf("BusyTimeout = %q, want 5s", cfg.BusyTimeout)
	}
	if cfg.MaxOpenConns != 1 {
		t.Errorf("MaxOpenConns = %d, want 1", cfg.MaxOpenConns)
	}
}

func TestFinalizeEnvOverride(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/tmp/override.db")
	t.Setenv("TEST_DB_BUSY_TIMEOUT", "10s")

	cfg := database.Config{}
	err := cfg.Finalize(&database.Env{
		Path:        "TEST_DB_PATH",
		BusyTimeout: "TEST_DB_BUSY_TIMEOUT",
	})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Path != "/tmp/override.db" {
		t.Errorf("Path = %q, want /tmp/override.db", cfg.Path)
	}
	if cfg.BusyTimeout != "10s" {
		t.Errorf("BusyTimeout = %q, want 10s", cfg.BusyTimeout)
	}
}

func TestFinalizeInvalidDuration(t *testing.T) {
	cfg := database.Config{BusyTimeout: "not-a-duration"}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() = nil, want invalid busy_timeout error")
	}
}

func TestDsn(t *testing.T) {
	cfg := database.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	want := "file:procurement.db?_pragma=journal_mode%28WAL%29&_pragma=foreign_keys%281%29&_pragma=busy_timeout%285000%29"
	if got := cfg.Dsn(); got != want {
		t.Errorf("Dsn() = %q, want %q", got, want)
	}
}

func TestMerge(t *testing.T) {
	cfg := database.Config{Path: "base.db", BusyTimeout: "5s"}
	cfg.Merge(&database.Config{Path: "overlay.db"})

	if cfg.Path != "overlay.db" {
		t.Errorf("Path = %q, want overlay.db", cfg.Path)
	}
	if cfg.BusyTimeout != "5s" {
		t.Errorf("BusyTimeout = %q, want untouched 5s", cfg.BusyTimeout)
	}
}
