package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCueSheetPath(t *testing.T) {
	path := CueSheetPath("cues", time.Date(2026, 2, 13, 1, 0, 0, 0, time.UTC))
	if path != filepath.Join("cues", "cues_2026-02-13_01-00-00.yaml") {
		t.Errorf("unexpected path: %s", path)
	}
}

func TestFindLatestCueSheet(t *testing.T) {
	dir := t.TempDir()

	// Create test files with different timestamps
	files := []string{
		filepath.Join(dir, "cues_2026-02-12_10-00-00.yaml"),
		filepath.Join(dir, "cues_2026-02-13_01-00-00.yaml"),
		filepath.Join(dir, "cues_2026-02-11_15-30-00.yaml"),
	}
	base := time.Now().Add(-time.Hour)
	for i, f := range files {
		if err := os.WriteFile(f, []byte("version: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := base.Add(time.Duration(i) * time.Minute)
		os.Chtimes(f, modTime, modTime)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	latest, err := FindLatestCueSheet(dir)
	if err != nil {
		t.Fatalf("FindLatestCueSheet failed: %v", err)
	}
	if latest != files[2] {
		t.Errorf("Expected %s, got %s", files[2], latest)
	}

	if _, err := FindLatestCueSheet(t.TempDir()); err == nil || !strings.Contains(err.Error(), "no cue sheets") {
		t.Errorf("empty dir error = %v", err)
	}
}
