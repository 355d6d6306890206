package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timezone != "UTC" || cfg.WindowDays != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected default config written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestLoadNormalizesOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("timezone: Europe/Berlin\nwindow_days: 9\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Fatalf("expected file timezone kept, got %q", cfg.Timezone)
	}
	if cfg.WindowDays != 3 {
		t.Fatalf("expected window days clamped to 3, got %d", cfg.WindowDays)
	}
}

func TestApplyEnvOverridesFileValues(t *testing.T) {
	t.Setenv("VOXCAL_BACKEND_URL", "https://backend.example.com")
	t.Setenv("VOXCAL_WINDOW_DAYS", "2")
	t.Setenv("DEEPGRAM_API_KEY", "dg-key")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if !cfg.UsesBackend() || cfg.Backend.BaseURL != "https://backend.example.com" {
		t.Fatalf("expected backend url from env, got %+v", cfg.Backend)
	}
	if cfg.WindowDays != 2 {
		t.Fatalf("expected window days from env, got %d", cfg.WindowDays)
	}
	if cfg.Speech.APIKey != "dg-key" {
		t.Fatalf("expected speech key from env, got %q", cfg.Speech.APIKey)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "https://backend.example.com"
	cfg.Speech.Live = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if loaded.Backend.BaseURL != cfg.Backend.BaseURL || !loaded.Speech.Live {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
