package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"ironlog/internal/platform/config"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	cfg, err := config.New(dataDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.DBPath != filepath.Join(dataDir, "ironlog.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ExportDir != dataDir {
		t.Errorf("ExportDir = %q", cfg.ExportDir)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("HistoryLimit = %d", cfg.HistoryLimit)
	}
}

func TestFileOverrides(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	exportDir := filepath.Join(dataDir, "exports")
	contents := "export_dir: " + exportDir + "\nhistory_limit: 10\n"
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.New(dataDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.ExportDir != exportDir {
		t.Errorf("ExportDir = %q, want %q", cfg.ExportDir, exportDir)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("HistoryLimit = %d, want 10", cfg.HistoryLimit)
	}
}

func TestMalformedFile(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(":\n:::"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dataDir); err == nil {
		t.Fatal("malformed config accepted")
	}
}

func TestHomeDirFallback(t *testing.T) {
	cfg, err := config.New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("home dir: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, ".ironlog") {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}
