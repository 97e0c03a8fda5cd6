package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// CueSheetPath creates a timestamped cue sheet filename in dir
func CueSheetPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("cues_%s.yaml", now.Format("2006-01-02_15-04-05")))
}

// FindLatestCueSheet finds the most recent cue sheet in dir
func FindLatestCueSheet(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read cue sheet directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var sheets []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sheets = append(sheets, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(sheets) == 0 {
		return "", fmt.Errorf("no cue sheets found in %s", dir)
	}

	// Newest first
	sort.Slice(sheets, func(i, j int) bool {
		return sheets[i].mod.After(sheets[j].mod)
	})

	return sheets[0].path, nil
}
