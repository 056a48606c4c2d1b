package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("save default: %v", err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatalf("expected error when the settings file already exists")
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", s)
	}
	if dim := s.Dimension(); dim.Range.Min() != -64 || dim.Range.Max() != 319 {
		t.Fatalf("unexpected dimension %+v", dim)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	data := "[Runner]\nLogLevel = \"debug\"\nWorkers = 2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Runner.Workers != 2 || s.Level() != slog.LevelDebug {
		t.Fatalf("unexpected runner settings %+v", s.Runner)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for a missing settings file")
	}
}
