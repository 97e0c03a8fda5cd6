package director

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteCueSheet writes a cue sheet to a YAML file
func WriteCueSheet(sheet *CueSheet, path string) error {
	data, err := yaml.Marshal(sheet)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadCueSheet reads a cue sheet from a YAML file
func ReadCueSheet(path string) (*CueSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sheet CueSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if sheet.Version != cueSheetVersion {
		return nil, fmt.Errorf("%s: unsupported cue sheet version %q", path, sheet.Version)
	}
	return &sheet, nil
}
