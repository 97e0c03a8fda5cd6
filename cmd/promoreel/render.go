package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/promoreel/internal/asset"
	"github.com/ivlev/promoreel/internal/composition"
	"github.com/ivlev/promoreel/internal/config"
	"github.com/ivlev/promoreel/internal/engine"
	"github.com/ivlev/promoreel/internal/promo"
	"github.com/ivlev/promoreel/internal/system"
	"github.com/ivlev/promoreel/internal/video"
)

var renderFlags struct {
	output    string
	format    string
	start     int
	end       int
	workers   int
	encoder   string
	quality   int
	assetDir  string
	debug     bool
	showStats bool
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.output, "output", "o", "", "Путь к видео или папке кадров (если пусто, генерируется в output/)")
	f.StringVar(&renderFlags.format, "format", config.FormatMP4, "Формат: mp4 или png")
	f.IntVar(&renderFlags.start, "start", 0, "Первый кадр")
	f.IntVar(&renderFlags.end, "end", 0, "Кадр после последнего (0 - до конца)")
	f.IntVar(&renderFlags.workers, "workers", 0, "Потоки (0 - по ресурсам системы)")
	f.StringVar(&renderFlags.encoder, "encoder", "auto", "Видео энкодер (auto, libx264, h264_nvenc, h264_videotoolbox)")
	f.IntVar(&renderFlags.quality, "quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	f.StringVar(&renderFlags.assetDir, "assets", "assets", "Папка кэша ресурсов")
	f.BoolVar(&renderFlags.debug, "debug", false, "Штамп кадра и QR на каждом кадре")
	f.BoolVar(&renderFlags.showStats, "stats", false, "Отчет о производительности и запись в benchmark.log")
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the composition (or a frame range) to mp4 or a png sequence.",
	RunE: func(c *cobra.Command, args []string) error {
		// Увеличиваем лимиты системы (для macOS/Linux)
		system.InitResourceLimits()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyRenderFlags(c, cfg)

		comp, err := promo.Composition()
		if err != nil {
			return err
		}
		if err := cfg.Validate(comp.DurationInFrames); err != nil {
			return err
		}
		resolveAuto(cfg, comp)
		if err := cfg.Validate(comp.DurationInFrames); err != nil {
			return err
		}

		store := asset.NewStore(cfg.AssetDir)
		var stills []string
		for _, s := range comp.Stills {
			stills = append(stills, s.URI)
		}
		if err := store.Preload(stills...); err != nil {
			if errors.Is(err, asset.ErrNotCached) {
				return fmt.Errorf("%w (запустите promoreel fetch)", err)
			}
			return err
		}

		project := engine.NewVideoProject(cfg, comp, store, opener(cfg, comp, store))
		if err := project.Run(c.Context()); err != nil {
			return fmt.Errorf("ошибка проекта: %w", err)
		}
		fmt.Printf("[+++] Успех! Результат: %s\n", cfg.Output)
		return nil
	},
}

func applyRenderFlags(c *cobra.Command, cfg *config.Config) {
	f := c.Flags()
	if f.Changed("output") {
		cfg.Output = renderFlags.output
	}
	if f.Changed("format") {
		cfg.Format = renderFlags.format
	}
	if f.Changed("start") {
		cfg.Start = renderFlags.start
	}
	if f.Changed("end") {
		cfg.End = renderFlags.end
	}
	if f.Changed("workers") {
		cfg.Workers = renderFlags.workers
	}
	if f.Changed("encoder") {
		cfg.VideoEncoder = renderFlags.encoder
	}
	if f.Changed("quality") {
		cfg.Quality = renderFlags.quality
	}
	if f.Changed("assets") {
		cfg.AssetDir = renderFlags.assetDir
	}
	if f.Changed("debug") {
		cfg.Debug = renderFlags.debug
	}
	if f.Changed("stats") {
		cfg.ShowStats = renderFlags.showStats
	}
}

// resolveAuto fills the settings left for the host to decide.
func resolveAuto(cfg *config.Config, comp *composition.Composition) {
	if cfg.Workers == 0 {
		host := system.Host()
		cfg.Workers = system.DefaultWorkers(host)
		fmt.Printf("[*] Хост: %s\n", host)
	}
	if cfg.Format == config.FormatMP4 {
		if cfg.VideoEncoder == "" || cfg.VideoEncoder == "auto" {
			cfg.VideoEncoder = system.GetBestH264Encoder(cfg.FFmpegPath)
			if cfg.VideoEncoder != "libx264" {
				fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
			}
		}
		if cfg.Quality == 0 {
			cfg.Quality = video.DefaultQuality(cfg.VideoEncoder)
		}
	}
	if cfg.Output == "" {
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		name := fmt.Sprintf("%s_%s", comp.ID, timestamp)
		if cfg.Format == config.FormatMP4 {
			name += ".mp4"
		}
		cfg.Output = filepath.Join("output", name)
	}
}

func opener(cfg *config.Config, comp *composition.Composition, store *asset.Store) engine.Opener {
	if cfg.Format == config.FormatPNG {
		return func(_ context.Context, first, _ int) (video.Sink, error) {
			return &video.PNGSequence{Dir: cfg.Output, First: first}, nil
		}
	}

	var tracks []video.Track
	for _, a := range comp.Audio {
		if !store.Cached(a.URI) {
			log.Printf("[!] Аудио %s не в кэше, пропускаем: %s", a.Name, a.URI)
			continue
		}
		tracks = append(tracks, video.Track{Path: store.Path(a.URI), Volume: a.Volume})
	}

	enc := &video.FFmpegEncoder{Path: cfg.FFmpegPath}
	fps := float64(comp.FPS)
	return func(ctx context.Context, first, count int) (video.Sink, error) {
		return enc.Open(ctx, cfg.Output, video.Params{
			Width:    comp.Width,
			Height:   comp.Height,
			FPS:      comp.FPS,
			Offset:   float64(first) / fps,
			Duration: float64(count) / fps,
			Audio:    tracks,
			Encoder:  cfg.VideoEncoder,
			Quality:  cfg.Quality,
		})
	}
}
