// Package walker animates a custom glyph pacing back and forth along one row
// of a character display.
package walker

import (
	"context"
	"fmt"
	"time"
)

// Display is the part of *hd44780.Dev the walker draws with.
type Display interface {
	CreateChar(location byte, data [8]byte) error
	PutCustom(x, y int, location byte) error
	Putsxy(x, y int, s string) error
}

// Walker moves one glyph a cell per Step, turning around at either end of
// its path.
type Walker struct {
	d    Display
	slot byte
	row  int
	from int
	to   int

	col int
	dir int
}

// New loads glyph into CG RAM slot and draws it at (from, row). It walks
// right first, as far as to.
func New(d Display, slot byte, glyph [8]byte, row, from, to int) (*Walker, error) {
	if from >= to {
		return nil, fmt.Errorf("walker: path %d..%d is empty", from, to)
	}
	if err := d.CreateChar(slot, glyph); err != nil {
		return nil, err
	}
	if err := d.PutCustom(from, row, slot); err != nil {
		return nil, err
	}
	return &Walker{
		d:    d,
		slot: slot,
		row:  row,
		from: from,
		to:   to,
		col:  from,
		dir:  1,
	}, nil
}

// Col returns the column the glyph is drawn in.
func (w *Walker) Col() int {
	return w.col
}

// Step erases the glyph and redraws it one cell further on.
func (w *Walker) Step() error {
	switch {
	case w.dir > 0 && w.col >= w.to:
		w.dir = -1
	case w.dir < 0 && w.col <= w.from:
		w.dir = 1
	}
	if err := w.d.Putsxy(w.col, w.row, " "); err != nil {
		return err
	}
	w.col += w.dir
	return w.d.PutCustom(w.col, w.row, w.slot)
}

// Run steps every interval until ctx is done or a step fails.
func (w *Walker) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil
		}
		if err := w.Step(); err != nil {
			return err
		}
	}
}
