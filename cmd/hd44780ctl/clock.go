package main

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/charlcd/hd44780/internal/config"
	appLog "github.com/charlcd/hd44780/internal/log"
	"github.com/charlcd/hd44780/internal/walker"
)

var clockWalk bool

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Show the time, refreshed on the configured cron schedule",
	Long: `Show the current time at the configured cell, redrawn on clock.schedule ` +
		`(cron syntax with a leading seconds field). With --walk the walk animation ` +
		`runs alongside. Stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, cfg, err := openDisplay()
		if err != nil {
			return err
		}
		screen := &lockedDisplay{d: d}
		defer closeDisplay(screen)

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		clk := &clock{
			d:     screen,
			cfg:   cfg.Clock,
			width: cfg.Display.Cols - cfg.Clock.Col,
			now:   time.Now,
		}
		c := cron.New(cron.WithSeconds())
		if _, err := c.AddJob(cfg.Clock.Schedule, clk); err != nil {
			return fmt.Errorf("clock schedule %q: %w", cfg.Clock.Schedule, err)
		}
		clk.Run()
		c.Start()
		appLog.Info("clock started", "schedule", cfg.Clock.Schedule, "format", cfg.Clock.Format)

		var walk <-chan error
		if clockWalk {
			w, err := newWalker(screen, cfg)
			if err != nil {
				<-c.Stop().Done()
				return err
			}
			walk = startWalker(ctx, w, cfg.Walk.Interval)
		}

		err = waitDone(ctx, walk)
		<-c.Stop().Done()
		appLog.Info("clock stopped")
		return err
	},
}

func init() {
	clockCmd.Flags().BoolVar(&clockWalk, "walk", false, "run the walk animation as well")
	rootCmd.AddCommand(clockCmd)
}

// clock is the cron job that redraws the time.
type clock struct {
	d     walker.Display
	cfg   config.Clock
	width int
	now   func() time.Time
}

func (c *clock) Run() {
	if err := c.d.Putsxy(c.cfg.Col, c.cfg.Row, c.text()); err != nil {
		appLog.Error("draw clock", err)
	}
}

// text is the formatted time cut to the cells left on the row.
func (c *clock) text() string {
	s := c.now().Format(c.cfg.Format)
	if c.width >= 0 && len(s) > c.width {
		s = s[:c.width]
	}
	return s
}
