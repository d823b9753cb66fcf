package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected addr %q, got %q", ":8080", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != 20*time.Minute {
		t.Fatalf("expected session ttl 20m, got %s", cfg.SessionTTL)
	}
	if cfg.OTLPLogs {
		t.Fatal("expected OTLP logs to be disabled by default")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected log level %q, got %q", "info", cfg.LogLevel)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CALC_HTTP_ADDR", ":9090")
	t.Setenv("CALC_SESSION_TTL", "90s")
	t.Setenv("CALC_OTLP_LOGS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected addr %q, got %q", ":9090", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != 90*time.Second {
		t.Fatalf("expected session ttl 90s, got %s", cfg.SessionTTL)
	}
	if !cfg.OTLPLogs {
		t.Fatal("expected OTLP logs to be enabled")
	}
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CALC_SESSION_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero session ttl")
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CALC_SHUTDOWN_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
