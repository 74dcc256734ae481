package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/charlcd/hd44780"
	appLog "github.com/charlcd/hd44780/internal/log"
)

type printOpts struct {
	col, row int
	keep     bool
	lines    bool
	cursor   bool
	blink    bool
}

var printFlags printOpts

var printCmd = &cobra.Command{
	Use:   "print text...",
	Short: "Write text to the display",
	Long: `Write the arguments, joined by spaces, starting at --col and --row. ` +
		`With --lines, \n moves to the start of the next row and \r to the start of the current one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := openDisplay()
		if err != nil {
			return err
		}
		// Halting blanks the display, so the text stays up only if the
		// pins are left driven.
		return printText(d, printFlags, strings.Join(args, " "))
	},
}

func init() {
	printCmd.Flags().IntVar(&printFlags.col, "col", 0, "starting column")
	printCmd.Flags().IntVarP(&printFlags.row, "row", "r", 0, "starting row")
	printCmd.Flags().BoolVar(&printFlags.keep, "keep", false, "do not clear the display first")
	printCmd.Flags().BoolVar(&printFlags.lines, "lines", false, `interpret \n and \r`)
	printCmd.Flags().BoolVar(&printFlags.cursor, "cursor", false, "show the underline cursor")
	printCmd.Flags().BoolVar(&printFlags.blink, "blink", false, "blink the cursor cell")
	rootCmd.AddCommand(printCmd)
}

func printText(d *hd44780.Dev, o printOpts, text string) error {
	if !o.keep {
		if err := d.Clear(); err != nil {
			return err
		}
	}
	if err := d.CursorSet(o.col, o.row); err != nil {
		return err
	}
	mode := hd44780.PutsRaw
	if o.lines {
		mode = hd44780.PutsLines
		text = strings.NewReplacer(`\n`, "\n", `\r`, "\r").Replace(text)
	}
	if err := d.Puts(mode, text); err != nil {
		return err
	}
	if o.cursor {
		if err := d.CursorOn(); err != nil {
			return err
		}
	}
	if o.blink {
		if err := d.BlinkOn(); err != nil {
			return err
		}
	}
	col, row, visible := d.Position()
	appLog.Debug("text written", "bytes", len(text), "col", col, "row", row, "visible", visible)
	if !visible {
		appLog.Warn("text ran past the visible cells; it is not wrapped")
	}
	return nil
}
