package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"periph.io/x/host/v3"

	"github.com/charlcd/hd44780"
	"github.com/charlcd/hd44780/internal/config"
	appLog "github.com/charlcd/hd44780/internal/log"
	"github.com/charlcd/hd44780/internal/walker"
)

// openDisplay loads the config, initializes the display it describes and
// loads every configured glyph into CG RAM.
func openDisplay() (*hd44780.Dev, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	appLog.Debug("config loaded", "path", configPath, "display", fmt.Sprintf("%dx%d", cfg.Display.Cols, cfg.Display.Rows))

	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("periph host init: %w", err)
	}
	pins, err := hd44780.OpenPins(cfg.Pins)
	if err != nil {
		return nil, nil, err
	}
	d, err := hd44780.Open(pins, cfg.Display.Cols, cfg.Display.Rows, &hd44780.Opts{
		LargeFont: cfg.Display.LargeFont,
	})
	if err != nil {
		if herr := pins.Halt(); herr != nil {
			appLog.Warn("release pins", "err", herr)
		}
		return nil, nil, err
	}
	if err := loadGlyphs(d, cfg.Glyphs); err != nil {
		closeDisplay(d)
		return nil, nil, err
	}
	appLog.Info("display ready", "dev", d, "rs", cfg.Pins.RS, "e", cfg.Pins.E)
	return d, cfg, nil
}

func loadGlyphs(d walker.Display, glyphs []config.Glyph) error {
	for _, g := range glyphs {
		b, err := g.Bitmap()
		if err != nil {
			return err
		}
		if err := d.CreateChar(byte(g.Slot), b); err != nil {
			return fmt.Errorf("glyph %q: %w", g.Name, err)
		}
		appLog.Debug("glyph loaded", "name", g.Name, "slot", g.Slot)
	}
	return nil
}

// halter is a display that can be released.
type halter interface {
	Halt() error
}

func closeDisplay(d halter) {
	if err := d.Halt(); err != nil {
		appLog.Error("halt display", err)
		return
	}
	appLog.Debug("display halted")
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// lockedDisplay serializes calls from the cron and walker goroutines, which
// would otherwise interleave nibbles on the bus.
type lockedDisplay struct {
	mu sync.Mutex
	d  interface {
		walker.Display
		halter
	}
}

func (l *lockedDisplay) Halt() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.Halt()
}

func (l *lockedDisplay) CreateChar(location byte, data [8]byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.CreateChar(location, data)
}

func (l *lockedDisplay) PutCustom(x, y int, location byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.PutCustom(x, y, location)
}

func (l *lockedDisplay) Putsxy(x, y int, s string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.Putsxy(x, y, s)
}

// startWalker runs w in its own goroutine. The channel receives Run's result
// once the goroutine has exited.
func startWalker(ctx context.Context, w *walker.Walker, interval time.Duration) <-chan error {
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, interval) }()
	return done
}

// waitDone blocks until ctx is done or the walker fails. A nil walk means no
// walker is running. When walk is not nil it returns only after the walker
// has stopped drawing.
func waitDone(ctx context.Context, walk <-chan error) error {
	if walk == nil {
		<-ctx.Done()
		return nil
	}
	select {
	case <-ctx.Done():
		return <-walk
	case err := <-walk:
		return err
	}
}
