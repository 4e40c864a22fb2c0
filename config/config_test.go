package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

// unsetEnv clears keys for the duration of the test. godotenv only fills
// variables that are absent, so an empty value is not enough.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, EnvDefaultVenue, EnvLogLevel, EnvNoAltScreen)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.DefaultVenue != DefaultVenuePath || cfg.LogLevel != DefaultLogLevel || cfg.NoAltScreen {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	unsetEnv(t, EnvLogLevel, EnvNoAltScreen)
	t.Setenv(EnvDefaultVenue, "custom/venue_x.txt")

	path := filepath.Join(t.TempDir(), ".env")
	content := "TMS_DEFAULT_VENUE=from/file.txt\nTMS_LOG_LEVEL=debug\nTMS_NO_ALT_SCREEN=true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.DefaultVenue != "custom/venue_x.txt" {
		t.Fatalf("expected environment to win, got %q", cfg.DefaultVenue)
	}
	if cfg.LogLevel != "debug" || !cfg.NoAltScreen {
		t.Fatalf("expected values from file, got %+v", cfg)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
		ok   bool
	}{
		{in: "debug", want: log.DebugLevel, ok: true},
		{in: " WARN ", want: log.WarnLevel, ok: true},
		{in: "loud", want: log.InfoLevel, ok: false},
	}
	for _, tt := range tests {
		got, ok := Config{LogLevel: tt.in}.Level()
		if got != tt.want || ok != tt.ok {
			t.Fatalf("Level(%q): expected %v/%v, got %v/%v", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}
