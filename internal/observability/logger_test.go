package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitFileLoggerWithoutPathDiscards(t *testing.T) {
	old := Logger
	t.Cleanup(func() { Logger = old })

	if err := InitFileLogger("", "debug"); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	if Logger.Core().Enabled(-1) {
		t.Fatal("expected no-op logger")
	}
}

func TestInitFileLoggerWritesJSON(t *testing.T) {
	old := Logger
	t.Cleanup(func() { Logger = old })

	path := filepath.Join(t.TempDir(), "calc.log")
	if err := InitFileLogger(path, "info"); err != nil {
		t.Fatalf("init logger: %v", err)
	}

	Logger.Debug("dropped")
	Logger.Info("kept")
	SyncLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"kept"`) {
		t.Fatalf("expected info entry in %q", out)
	}
	if strings.Contains(out, "dropped") {
		t.Fatalf("did not expect debug entry in %q", out)
	}
}

func TestInitFileLoggerRejectsBadLevel(t *testing.T) {
	old := Logger
	t.Cleanup(func() { Logger = old })

	if err := InitFileLogger(filepath.Join(t.TempDir(), "calc.log"), "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
