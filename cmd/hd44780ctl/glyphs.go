package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charlcd/hd44780"
	"github.com/charlcd/hd44780/internal/config"
)

var glyphsList bool

var glyphsCmd = &cobra.Command{
	Use:   "glyphs",
	Short: "Show the configured custom glyphs",
	Long: `Print every configured glyph as dots and, unless --list is given, ` +
		`draw them side by side on the first row of the display.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if glyphsList {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return printGlyphs(cmd.OutOrStdout(), cfg.Glyphs)
		}

		d, cfg, err := openDisplay()
		if err != nil {
			return err
		}
		if err := showGlyphs(cmd.OutOrStdout(), d, cfg); err != nil {
			closeDisplay(d)
			return err
		}
		// Halting blanks the display, so the pins are left driven.
		return nil
	},
}

func init() {
	glyphsCmd.Flags().BoolVar(&glyphsList, "list", false, "only print the glyphs, do not touch the display")
	rootCmd.AddCommand(glyphsCmd)
}

// showGlyphs prints the glyphs and draws them side by side on row 0.
func showGlyphs(out io.Writer, d *hd44780.Dev, cfg *config.Config) error {
	if err := printGlyphs(out, cfg.Glyphs); err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	for i, g := range cfg.Glyphs {
		if i >= cfg.Display.Cols {
			break
		}
		if err := d.PutCustom(i, 0, byte(g.Slot)); err != nil {
			return err
		}
	}
	return nil
}

func printGlyphs(w io.Writer, glyphs []config.Glyph) error {
	for _, g := range glyphs {
		b, err := g.Bitmap()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s (slot %d)\n", g.Name, g.Slot)
		for _, row := range b {
			var sb strings.Builder
			for bit := 4; bit >= 0; bit-- {
				if row&(1<<bit) != 0 {
					sb.WriteByte('#')
				} else {
					sb.WriteByte('.')
				}
			}
			fmt.Fprintln(w, sb.String())
		}
	}
	return nil
}
