package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivlev/promoreel/internal/promo"
)

var probeCmd = &cobra.Command{
	Use:   "probe FRAME...",
	Short: "Print what the given frames resolve to.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		comp, err := promo.Composition()
		if err != nil {
			return err
		}
		for _, arg := range args {
			frame, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("frame %q: %w", arg, err)
			}
			line, err := comp.Describe(frame)
			if err != nil {
				return err
			}
			fmt.Println(line)
		}
		return nil
	},
}
