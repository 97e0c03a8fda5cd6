package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promoreel.yaml")
	yml := "output: out/reel.mp4\nworkers: 3\nquality: 18\nformat: PNG\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROMOREEL_QUALITY", "30")
	t.Setenv("PROMOREEL_DEBUG", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Output = "out/reel.mp4"
	want.Workers = 3
	want.Quality = 30
	want.Format = FormatPNG
	want.Debug = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != FormatMP4 {
		t.Errorf("default format = %q", cfg.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errHas string
	}{
		{"defaults", func(*Config) {}, ""},
		{"partial range", func(c *Config) { c.Start, c.End = 80, 100 }, ""},
		{"bad format", func(c *Config) { c.Format = "gif" }, "format"},
		{"range past end", func(c *Config) { c.End = 1300 }, "frame range"},
		{"empty range", func(c *Config) { c.Start, c.End = 50, 50 }, "frame range"},
		{"quality", func(c *Config) { c.Quality = 101 }, "quality"},
		{"negative quality", func(c *Config) { c.Quality = -1 }, "quality"},
		{"x264 crf too high", func(c *Config) { c.VideoEncoder, c.Quality = "libx264", 60 }, "quality"},
		{"x264 crf max", func(c *Config) { c.VideoEncoder, c.Quality = "libx264", 51 }, ""},
		{"nvenc cq too high", func(c *Config) { c.VideoEncoder, c.Quality = "h264_nvenc", 52 }, "quality"},
		{"videotoolbox bitrate", func(c *Config) { c.VideoEncoder, c.Quality = "h264_videotoolbox", 75 }, ""},
		{"auto defers", func(c *Config) { c.Quality = 75 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate(1260)
			if tt.errHas == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errHas) {
				t.Fatalf("error %v should mention %q", err, tt.errHas)
			}
		})
	}
}

func TestRange(t *testing.T) {
	cfg := Default()
	if s, e := cfg.Range(1260); s != 0 || e != 1260 {
		t.Errorf("Range = %d, %d", s, e)
	}
	cfg.Start, cfg.End = 10, 20
	if s, e := cfg.Range(1260); s != 10 || e != 20 {
		t.Errorf("Range = %d, %d", s, e)
	}
}
