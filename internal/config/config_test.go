package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseEnvDefaults(t *testing.T) {
	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}
	if cfg.CutoffHour != DefaultCutoffHour {
		t.Fatalf("expected default cutoff %d, got %d", DefaultCutoffHour, cfg.CutoffHour)
	}
	if cfg.Timezone != "Local" {
		t.Fatalf("expected Local timezone, got %q", cfg.Timezone)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected info log level, got %q", cfg.LogLevel)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("EVERYRIDE_CUTOFF_HOUR", "4")
	t.Setenv("EVERYRIDE_TZ", "America/New_York")
	t.Setenv("EVERYRIDE_DATA_DIR", "/tmp/everyride")
	t.Setenv("EVERYRIDE_REPORT_DIR", "/tmp/everyride-reports")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv failed: %v", err)
	}
	if cfg.CutoffHour != 4 {
		t.Fatalf("expected cutoff 4, got %d", cfg.CutoffHour)
	}
	if cfg.ReportDir != "/tmp/everyride-reports" {
		t.Fatalf("unexpected ReportDir %q", cfg.ReportDir)
	}
	if cfg.DBPath() != filepath.Join("/tmp/everyride", DBFileName) {
		t.Fatalf("unexpected DBPath %q", cfg.DBPath())
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("EVERYRIDE_CUTOFF_HOUR", "not-an-int")
	_, err := ParseEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvCutoffOutOfRange(t *testing.T) {
	t.Setenv("EVERYRIDE_CUTOFF_HOUR", "24")
	if _, err := ParseEnv(); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("EVERYRIDE_THEME=night\n"), 0o600); err != nil {
		t.Fatalf("write .env failed: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("EVERYRIDE_THEME") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "night" {
		t.Fatalf("expected theme from .env, got %q", cfg.Theme)
	}
}

func TestLoadMissingDotEnvIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("Load with missing .env failed: %v", err)
	}
}

func TestLocationDefaultsToLocal(t *testing.T) {
	loc, err := Config{}.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc != time.Local {
		t.Fatalf("expected time.Local, got %v", loc)
	}
}
