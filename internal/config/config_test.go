package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)
	return dir
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	withConfigDir(t)

	cfg := Load()
	if cfg != Default() {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestLoadMalformedFileReturnsDefault(t *testing.T) {
	withConfigDir(t)
	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load()
	if cfg != Default() {
		t.Fatalf("expected default config on malformed file, got %+v", cfg)
	}
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	withConfigDir(t)
	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	partial := `{"hotkey": "cmd+shift+d"}`
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load()
	if cfg.Hotkey != "cmd+shift+d" {
		t.Fatalf("expected overridden hotkey, got %q", cfg.Hotkey)
	}
	if cfg.SelectedModel != DefaultModel {
		t.Fatalf("expected default model, got %q", cfg.SelectedModel)
	}
	if !cfg.VocabEnabled {
		t.Fatal("expected vocab_enabled to default true when absent")
	}
	if !cfg.SmartPaste {
		t.Fatal("expected smart_paste to default true when absent")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	withConfigDir(t)
	cfg := Default()
	cfg.TranslationEnabled = true
	cfg.TranslationTargetLang = "es"

	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	got := Load()
	if got != cfg {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, cfg)
	}
}

func TestUnknownKeysIgnored(t *testing.T) {
	withConfigDir(t)
	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	raw := map[string]interface{}{
		"hotkey":       "alt+space",
		"future_field": "ignored",
	}
	data, _ := json.Marshal(raw)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load()
	if cfg.Hotkey != "alt+space" {
		t.Fatalf("unexpected hotkey %q", cfg.Hotkey)
	}
}
