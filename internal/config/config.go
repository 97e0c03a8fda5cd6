package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatMP4 = "mp4"
	FormatPNG = "png"
)

// Config drives a render run. Values come from Default, then an optional
// YAML file, then PROMOREEL_* environment variables, then command flags.
type Config struct {
	Output       string `yaml:"output" envconfig:"OUTPUT"` // empty picks a timestamped name
	Format       string `yaml:"format" envconfig:"FORMAT"`
	Start        int    `yaml:"start" envconfig:"START"`
	End          int    `yaml:"end" envconfig:"END"` // 0 means the whole composition
	Workers      int    `yaml:"workers" envconfig:"WORKERS"` // 0 picks from host stats
	ChunkSize    int    `yaml:"chunk_size" envconfig:"CHUNK_SIZE"`
	VideoEncoder string `yaml:"video_encoder" envconfig:"VIDEO_ENCODER"` // "auto" probes ffmpeg
	Quality      int    `yaml:"quality" envconfig:"QUALITY"` // 0 picks per encoder
	FFmpegPath   string `yaml:"ffmpeg_path" envconfig:"FFMPEG_PATH"`
	AssetDir     string `yaml:"asset_dir" envconfig:"ASSET_DIR"`
	Debug        bool   `yaml:"debug" envconfig:"DEBUG"`
	ShowStats    bool   `yaml:"show_stats" envconfig:"SHOW_STATS"`
	BuildVersion string `yaml:"-" ignored:"true"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Format:       FormatMP4,
		ChunkSize:    30,
		VideoEncoder: "auto",
		FFmpegPath:   "ffmpeg",
		AssetDir:     "assets",
	}
}

// Load reads path over the defaults (a missing path is fine when it is
// empty) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process("PROMOREEL", cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.ChunkSize <= 0 {
		c.ChunkSize = 30
	}
}

// Validate checks the configuration against a composition of total frames.
func (c *Config) Validate(total int) error {
	var errs []error
	if c.Format != FormatMP4 && c.Format != FormatPNG {
		errs = append(errs, fmt.Errorf("format %q: want %s or %s", c.Format, FormatMP4, FormatPNG))
	}
	end := c.End
	if end == 0 {
		end = total
	}
	if c.Start < 0 || end > total || c.Start >= end {
		errs = append(errs, fmt.Errorf("frame range [%d, %d) outside [0, %d)", c.Start, end, total))
	}
	if c.Workers < 0 {
		errs = append(errs, errors.New("workers must not be negative"))
	}
	if hi := MaxQuality(c.VideoEncoder); c.Quality < 0 || c.Quality > hi {
		errs = append(errs, fmt.Errorf("quality %d outside [0, %d] for encoder %q", c.Quality, hi, c.VideoEncoder))
	}
	return errors.Join(errs...)
}

// MaxQuality is the largest quality value encoder accepts. x264 and NVENC
// take a CRF/CQ level; VideoToolbox takes a bitrate in 100 kbit/s steps.
// An unresolved encoder allows the widest range and is checked again once
// the encoder is known.
func MaxQuality(encoder string) int {
	switch encoder {
	case "", "auto", "h264_videotoolbox":
		return 100
	default:
		return 51
	}
}

// Range returns the frame range to render for a composition of total frames.
func (c *Config) Range(total int) (start, end int) {
	if c.End == 0 {
		return c.Start, total
	}
	return c.Start, c.End
}
