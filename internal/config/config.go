// Package config holds the hd44780ctl configuration: which pins the display
// is wired to, its size, the custom glyphs to load and the settings of the
// clock and walk demos. It is stored as YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/charlcd/hd44780"
)

// Display is the module geometry passed to Init.
type Display struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
	// LargeFont selects 5x10 dots. Only one-line modules support it.
	LargeFont bool `yaml:"large_font"`
}

// Glyph is a custom character for one CG RAM slot. Rows are drawn top first,
// five cells each, with '1' or '#' for a lit dot and '0' or '.' for a dark one.
// Missing rows at the bottom are dark.
type Glyph struct {
	Name string   `yaml:"name"`
	Slot int      `yaml:"slot"`
	Rows []string `yaml:"rows"`
}

// Clock configures the clock subcommand.
type Clock struct {
	// Schedule is a cron spec with a leading seconds field.
	Schedule string `yaml:"schedule"`
	// Format is a time.Format layout.
	Format string `yaml:"format"`
	Row    int    `yaml:"row"`
	Col    int    `yaml:"col"`
}

// Walk configures the walk subcommand: Glyph paces back and forth along Row
// between FromCol and ToCol.
type Walk struct {
	Glyph    string        `yaml:"glyph"`
	Row      int           `yaml:"row"`
	FromCol  int           `yaml:"from_col"`
	ToCol    int           `yaml:"to_col"`
	Interval time.Duration `yaml:"interval"`
}

// Config is the top-level configuration.
type Config struct {
	Display Display        `yaml:"display"`
	Pins    hd44780.PinMap `yaml:"pins"`
	Glyphs  []Glyph        `yaml:"glyphs"`
	Clock   Clock          `yaml:"clock"`
	Walk    Walk           `yaml:"walk"`
}

const (
	defaultCols     = 16
	defaultRows     = 2
	defaultSchedule = "* * * * * *"
	defaultFormat   = "15:04:05"
	defaultInterval = 500 * time.Millisecond
	defaultGlyph    = "cthulhu"
)

func defaultGlyphs() []Glyph {
	return []Glyph{{
		Name: defaultGlyph,
		Slot: 0,
		Rows: []string{
			"01110",
			"11111",
			"10101",
			"11111",
			"01110",
			"11111",
			"10101",
			"10101",
		},
	}}
}

// DefaultConfig returns the configuration for a 16x2 module on DefaultPinMap.
func DefaultConfig() *Config {
	return &Config{
		Display: Display{Cols: defaultCols, Rows: defaultRows},
		Pins:    hd44780.DefaultPinMap,
		Glyphs:  defaultGlyphs(),
		Clock: Clock{
			Schedule: defaultSchedule,
			Format:   defaultFormat,
			Row:      0,
			Col:      4,
		},
		Walk: Walk{
			Glyph:    defaultGlyph,
			Row:      1,
			FromCol:  0,
			ToCol:    defaultCols - 1,
			Interval: defaultInterval,
		},
	}
}

// Normalize fills in zero values so partial files behave like the defaults.
func (c *Config) Normalize() {
	if c.Display.Cols <= 0 {
		c.Display.Cols = defaultCols
	}
	if c.Display.Rows <= 0 {
		c.Display.Rows = defaultRows
	}

	def := hd44780.DefaultPinMap
	for _, p := range []struct{ v, d *string }{
		{&c.Pins.RS, &def.RS},
		{&c.Pins.E, &def.E},
		{&c.Pins.D4, &def.D4},
		{&c.Pins.D5, &def.D5},
		{&c.Pins.D6, &def.D6},
		{&c.Pins.D7, &def.D7},
	} {
		if *p.v == "" {
			*p.v = *p.d
		}
	}

	if c.Glyphs == nil {
		c.Glyphs = defaultGlyphs()
	}
	if c.Clock.Schedule == "" {
		c.Clock.Schedule = defaultSchedule
	}
	if c.Clock.Format == "" {
		c.Clock.Format = defaultFormat
	}
	if c.Walk.Glyph == "" && len(c.Glyphs) > 0 {
		c.Walk.Glyph = c.Glyphs[0].Name
	}
	if c.Walk.ToCol <= 0 {
		c.Walk.ToCol = c.Display.Cols - 1
	}
	if c.Walk.Interval <= 0 {
		c.Walk.Interval = defaultInterval
	}
}

// Validate reports the first setting that cannot work on the configured
// display. Geometry limits themselves are checked by the driver.
func (c *Config) Validate() error {
	inside := func(what string, col, row int) error {
		if col < 0 || col >= c.Display.Cols || row < 0 || row >= c.Display.Rows {
			return fmt.Errorf("config: %s (%d, %d) is outside the %dx%d display",
				what, col, row, c.Display.Cols, c.Display.Rows)
		}
		return nil
	}

	slots := map[int]string{}
	for _, g := range c.Glyphs {
		if g.Slot < 0 || g.Slot > 7 {
			return fmt.Errorf("config: glyph %q: slot %d is not 0-7", g.Name, g.Slot)
		}
		if other, ok := slots[g.Slot]; ok {
			return fmt.Errorf("config: glyphs %q and %q share slot %d", other, g.Name, g.Slot)
		}
		slots[g.Slot] = g.Name
		if _, err := g.Bitmap(); err != nil {
			return err
		}
	}

	if err := inside("clock position", c.Clock.Col, c.Clock.Row); err != nil {
		return err
	}

	if _, ok := c.Glyph(c.Walk.Glyph); !ok {
		return fmt.Errorf("config: walk glyph %q is not defined", c.Walk.Glyph)
	}
	if err := inside("walk start", c.Walk.FromCol, c.Walk.Row); err != nil {
		return err
	}
	if err := inside("walk end", c.Walk.ToCol, c.Walk.Row); err != nil {
		return err
	}
	if c.Walk.FromCol >= c.Walk.ToCol {
		return fmt.Errorf("config: walk from_col %d must be left of to_col %d", c.Walk.FromCol, c.Walk.ToCol)
	}
	return nil
}

// Glyph looks up a glyph by name.
func (c *Config) Glyph(name string) (Glyph, bool) {
	for _, g := range c.Glyphs {
		if g.Name == name {
			return g, true
		}
	}
	return Glyph{}, false
}

// Bitmap returns the glyph as the eight pixel rows CreateChar takes.
func (g Glyph) Bitmap() ([8]byte, error) {
	var out [8]byte
	if len(g.Rows) > len(out) {
		return out, fmt.Errorf("config: glyph %q has %d rows, at most 8 allowed", g.Name, len(g.Rows))
	}
	for i, row := range g.Rows {
		if len(row) != 5 {
			return out, fmt.Errorf("config: glyph %q row %d: %q is not 5 dots wide", g.Name, i, row)
		}
		for _, c := range row {
			out[i] <<= 1
			switch c {
			case '1', '#':
				out[i] |= 1
			case '0', '.':
			default:
				return out, fmt.Errorf("config: glyph %q row %d: unexpected %q", g.Name, i, c)
			}
		}
	}
	return out, nil
}

var (
	errNoPath   = errors.New("config: path is empty")
	errNoConfig = errors.New("config: nil config")
)

// Load reads the configuration at path. If there is no file yet, the
// defaults are written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errNoPath
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg := DefaultConfig()
		return cfg, Save(path, cfg)
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path with 0600 permissions, creating the parent
// directory if needed. Readers never see a partial file.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errNoPath
	}
	if cfg == nil {
		return errNoConfig
	}
	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := replaceFile(path, data); err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	return nil
}

// replaceFile writes data to a temp file next to path and renames it over
// path.
func replaceFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".hd44780ctl-config-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
