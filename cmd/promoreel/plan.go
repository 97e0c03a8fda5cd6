package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/promoreel/internal/director"
	"github.com/ivlev/promoreel/internal/promo"
)

var planFlags struct {
	out   string
	dir   string
	check string
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planFlags.out, "out", "o", "", "Путь к cue sheet (если пусто, генерируется в --dir)")
	f.StringVar(&planFlags.dir, "dir", "cues", "Папка cue sheet")
	f.StringVar(&planFlags.check, "check", "", `Сравнить с сохраненным cue sheet ("latest" - самый свежий в --dir)`)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Write the cue sheet of scene starts and transition windows, or check one.",
	RunE: func(c *cobra.Command, args []string) error {
		comp, err := promo.Composition()
		if err != nil {
			return err
		}
		sheet := director.Build(comp)

		if planFlags.check != "" {
			path := planFlags.check
			if path == "latest" {
				if path, err = director.FindLatestCueSheet(planFlags.dir); err != nil {
					return err
				}
			}
			stored, err := director.ReadCueSheet(path)
			if err != nil {
				return err
			}
			diffs := director.Diff(stored, sheet)
			for _, d := range diffs {
				fmt.Printf("[!] %s\n", d)
			}
			if len(diffs) > 0 {
				return fmt.Errorf("cue sheet %s устарел: %d расхождений", path, len(diffs))
			}
			fmt.Printf("[+++] Cue sheet %s совпадает\n", path)
			return nil
		}

		for _, s := range sheet.Scenes {
			fmt.Printf("[*] %-16s start %4d  frames %3d  t=%.2fs\n", s.Name, s.Start, s.Duration, s.Time)
		}
		for _, t := range sheet.Transitions {
			fmt.Printf("[*] %-16s [%d, %d) %s -> %s (%s)\n", t.Presentation, t.Start, t.Start+t.Duration, t.From, t.To, t.Timing)
		}

		out := planFlags.out
		if out == "" {
			out = director.CueSheetPath(planFlags.dir, time.Now())
		}
		if err := director.WriteCueSheet(sheet, out); err != nil {
			return err
		}
		fmt.Printf("[+++] Успех! Cue sheet сохранен: %s\n", out)
		return nil
	},
}
