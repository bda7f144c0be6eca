package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.PageSizes.Notes != 30 || cfg.PageSizes.Catalog != 24 || cfg.PageSizes.Highlights != 50 {
		t.Fatalf("default page sizes = %+v", cfg.PageSizes)
	}
	if cfg.Debounce() != 300*time.Millisecond {
		t.Fatalf("debounce = %v, want 300ms", cfg.Debounce())
	}
	if cfg.UndoWindow() != 5*time.Second {
		t.Fatalf("undo window = %v, want 5s", cfg.UndoWindow())
	}
}

func TestLoadFillsMissingFieldsWithDefaults(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	dir := filepath.Join(home, ".stacks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	partial := "library: /tmp/custom.yaml\npage_sizes:\n  notes: 10\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(partial), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(home)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Library != "/tmp/custom.yaml" {
		t.Fatalf("library = %q", cfg.Library)
	}
	if cfg.PageSizes.Notes != 10 {
		t.Fatalf("notes page size = %d, want 10", cfg.PageSizes.Notes)
	}
	if cfg.PageSizes.Catalog != 24 {
		t.Fatalf("catalog page size = %d, want default 24", cfg.PageSizes.Catalog)
	}
	if cfg.FolderBatch != 8 {
		t.Fatalf("folder batch = %d, want default 8", cfg.FolderBatch)
	}
	if cfg.RecentLimit != 20 || cfg.TopTags != 10 {
		t.Fatalf("limits = %d/%d, want defaults 20/10", cfg.RecentLimit, cfg.TopTags)
	}
}

func TestEnsureExistsWritesOnce(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	if err := EnsureExists(home); err != nil {
		t.Fatalf("EnsureExists: %v", err)
	}

	path := filepath.Join(home, ".stacks", "config.yaml")
	first, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if err := EnsureExists(home); err != nil {
		t.Fatalf("second EnsureExists: %v", err)
	}
	second, _ := os.Stat(path)
	if !second.ModTime().Equal(first.ModTime()) {
		t.Fatal("existing config was rewritten")
	}
}
