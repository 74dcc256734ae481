package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlcd/hd44780/internal/config"
	appLog "github.com/charlcd/hd44780/internal/log"
	"github.com/charlcd/hd44780/internal/walker"
)

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Walk a custom glyph back and forth along a row",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, cfg, err := openDisplay()
		if err != nil {
			return err
		}
		defer closeDisplay(d)

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		w, err := newWalker(d, cfg)
		if err != nil {
			return err
		}
		appLog.Info("walking", "glyph", cfg.Walk.Glyph, "row", cfg.Walk.Row, "interval", cfg.Walk.Interval)
		return w.Run(ctx, cfg.Walk.Interval)
	},
}

func init() {
	rootCmd.AddCommand(walkCmd)
}

func newWalker(d walker.Display, cfg *config.Config) (*walker.Walker, error) {
	g, ok := cfg.Glyph(cfg.Walk.Glyph)
	if !ok {
		return nil, fmt.Errorf("walk glyph %q is not defined", cfg.Walk.Glyph)
	}
	b, err := g.Bitmap()
	if err != nil {
		return nil, err
	}
	return walker.New(d, byte(g.Slot), b, cfg.Walk.Row, cfg.Walk.FromCol, cfg.Walk.ToCol)
}
