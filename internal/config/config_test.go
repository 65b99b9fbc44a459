package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Camps.RegroupWolfSubRoles {
		t.Error("default regroup_wolf_subroles should be true")
	}
	if len(cfg.Maps.Primary) != 2 {
		t.Errorf("default primary maps: want 2, got %v", cfg.Maps.Primary)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[camps]
regroup_wolf_subroles = false
small_camps = ["Agent"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Camps.RegroupWolfSubRoles {
		t.Error("regroup_wolf_subroles should be overridden to false")
	}
	if len(cfg.Camps.SmallCamps) != 1 || cfg.Camps.SmallCamps[0] != "Agent" {
		t.Errorf("small_camps: want [Agent], got %v", cfg.Camps.SmallCamps)
	}
	if len(cfg.Maps.Primary) != 2 {
		t.Errorf("untouched section should keep defaults, got %v", cfg.Maps.Primary)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.Upstream.ExportURL = "https://example.org/export.json"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Upstream.ExportURL != cfg.Upstream.ExportURL {
		t.Errorf("round trip: want %q, got %q", cfg.Upstream.ExportURL, got.Upstream.ExportURL)
	}
}
