package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serve.Port != 8080 || cfg.Serve.Host != "localhost" {
		t.Fatalf("expected default serve config, got %+v", cfg.Serve)
	}
}

func TestLoad_AppliesDefaultsForPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vdomctl.yaml")
	if err := os.WriteFile(path, []byte("serve:\n  scenePath: app/scene.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serve.ScenePath != "app/scene.yaml" {
		t.Fatalf("expected scenePath to survive, got %q", cfg.Serve.ScenePath)
	}
	if cfg.Serve.Port != 8080 {
		t.Fatalf("expected default port, got %d", cfg.Serve.Port)
	}
	if cfg.Serve.WatchDir != "app" {
		t.Fatalf("expected watchDir derived from scenePath, got %q", cfg.Serve.WatchDir)
	}
}

func TestSaveLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Serve: &ServeConfig{Port: 9001, Host: "0.0.0.0", ScenePath: "s.yaml", WatchDir: "."}}
	if err := Save(cfg, dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got.Serve != *cfg.Serve {
		t.Fatalf("expected %+v, got %+v", cfg.Serve, got.Serve)
	}
}

func TestValidate_RequiresScenePath(t *testing.T) {
	cfg := &Config{Serve: &ServeConfig{Port: 8080}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a missing scenePath")
	}
}
