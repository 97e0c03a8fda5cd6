package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ivlev/promoreel/internal/asset"
	"github.com/ivlev/promoreel/internal/promo"
	"github.com/ivlev/promoreel/internal/system"
)

var fetchFlags struct {
	assetDir string
	workers  int
}

func init() {
	f := fetchCmd.Flags()
	f.StringVar(&fetchFlags.assetDir, "assets", "assets", "Папка кэша ресурсов")
	f.IntVar(&fetchFlags.workers, "workers", 4, "Параллельные загрузки")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the composition's audio and stills into the asset cache.",
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if c.Flags().Changed("assets") {
			cfg.AssetDir = fetchFlags.assetDir
		}
		comp, err := promo.Composition()
		if err != nil {
			return err
		}

		store := asset.NewStore(cfg.AssetDir)
		uris := comp.Assets()
		fmt.Printf("[*] Загрузка %d ресурсов в %s\n", len(uris), cfg.AssetDir)
		if err := store.FetchAll(c.Context(), uris, fetchFlags.workers); err != nil {
			return err
		}

		for _, a := range comp.Audio {
			d, err := system.MediaDuration(c.Context(), "ffprobe", store.Path(a.URI))
			if err != nil {
				log.Printf("[!] Не удалось получить длительность аудио %s: %v", a.Name, err)
				continue
			}
			fmt.Printf("[*] %s: %.2fs\n", a.Name, d)
			if d > comp.Seconds() {
				log.Printf("[!] %s длиннее композиции (%.2fs > %.2fs), конец будет обрезан", a.Name, d, comp.Seconds())
			}
		}
		fmt.Printf("[+++] Успех! Ресурсы в %s\n", cfg.AssetDir)
		return nil
	},
}
