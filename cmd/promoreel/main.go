package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ivlev/promoreel/internal/config"
)

// buildVersion is set with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

var configPath string

func init() {
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (PROMOREEL_* env vars override it)")
	root.AddCommand(renderCmd, planCmd, probeCmd, fetchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка: %s\n", err.Error())
		os.Exit(1)
	}
}

var root = &cobra.Command{
	Use:           "promoreel",
	Short:         "promoreel renders the Superlinks promo composition frame by frame.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.BuildVersion = buildVersion
	return cfg, nil
}
