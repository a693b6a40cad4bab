package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Run.Trials != 100 || cfg.Run.Parallelism != 1 {
		t.Errorf("run defaults: got %+v", cfg.Run)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults: got %+v", cfg.Log)
	}
	if !strings.HasPrefix(cfg.General.Storage, "sqlite:///") {
		t.Errorf("storage default: got %q", cfg.General.Storage)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[general]
storage = "json:///tuning.json"

[run]
trials = 25
parallelism = 4

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.Storage != "json:///tuning.json" {
		t.Errorf("storage: got %q", cfg.General.Storage)
	}
	if cfg.Run.Trials != 25 || cfg.Run.Parallelism != 4 {
		t.Errorf("run: got %+v", cfg.Run)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log: got %+v", cfg.Log)
	}
	if !cfg.Run.Progress {
		t.Error("unset keys must keep their defaults")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestExpandLocator(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := expandLocator("sqlite:///~/data/tuning.db")
	want := "sqlite:///" + filepath.Join(home, "data", "tuning.db")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	plain := "sqlite:///var/tuning.db"
	if got := expandLocator(plain); got != plain {
		t.Errorf("locator without ~ must pass through, got %q", got)
	}
}
