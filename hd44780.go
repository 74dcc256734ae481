// Package hd44780 drives character LCD modules built around the Hitachi
// HD44780 controller (or one of its many clones), wired in 4-bit mode to six
// GPIO pins (using periph.io).
//
// The controller's busy flag is never read, so RW must be tied low and every
// instruction is followed by a fixed wait long enough for the slowest
// controller at nominal clock.
//
// A Dev is not safe for concurrent use. Interleaving two operations corrupts
// the nibble stream, so callers sharing one must serialize access.
package hd44780 // import "github.com/charlcd/hd44780"

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a Dev.
type State int

const (
	Uninitialized State = iota
	Initializing
	Ready
	Halted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// PutsMode selects how Puts treats control characters.
type PutsMode bool

const (
	// PutsRaw sends every byte to the display unchanged.
	PutsRaw PutsMode = false
	// PutsLines moves the cursor to the start of the next row on '\n' and to
	// the start of the current row on '\r'. The last row is followed by
	// the first.
	PutsLines PutsMode = true
)

// DisplayState is the set of flags the driver keeps for the controller,
// since none of them can be read back.
type DisplayState struct {
	On, Cursor, Blink bool // display control
	Increment, Shift  bool // entry mode
}

// Opts is the configuration for a Dev.
type Opts struct {
	// Delayer performs every wait. The default is SleepDelayer.
	Delayer Delayer
	// LargeFont selects the 5x10 dot font. Controllers only support it on
	// one-line displays, so it is ignored for more rows.
	LargeFont bool
}

// Dev is a handle to one controller.
type Dev struct {
	bus   *Bus
	pins  *Pins
	opts  Opts
	state State
	geom  Geometry
	flags DisplayState

	addr  byte // DD RAM address counter
	row   int  // row of the last explicit cursor placement
	cgram bool // the address counter points into CG RAM
}

// New returns an uninitialized Dev on pins. opts can be nil to use defaults.
func New(pins *Pins, opts *Opts) *Dev {
	var o Opts
	if opts != nil {
		o = *opts
	}
	if o.Delayer == nil {
		o.Delayer = SleepDelayer{}
	}
	return &Dev{
		bus:  NewBus(pins, o.Delayer),
		pins: pins,
		opts: o,
	}
}

// Open returns a Dev on pins that is initialized for a cols x rows display.
func Open(pins *Pins, cols, rows int, opts *Opts) (*Dev, error) {
	d := New(pins, opts)
	if err := d.Init(cols, rows); err != nil {
		return nil, err
	}
	return d, nil
}

// Init runs the power-on initialization sequence for a cols x rows display
// and leaves it cleared, with the display on and the cursor hidden. It can be
// called again at any time, which resets all flags.
func (d *Dev) Init(cols, rows int) error {
	g := Geometry{Cols: cols, Rows: rows}
	if err := g.validate(); err != nil {
		return err
	}
	d.state = Initializing
	if err := d.reset(g); err != nil {
		d.state = Uninitialized
		return err
	}
	d.state = Ready
	return nil
}

// reset follows "Initializing by Instruction", figure 24 of the datasheet.
func (d *Dev) reset(g Geometry) error {
	d.geom = g
	d.flags = DisplayState{Increment: true}
	d.addr, d.row, d.cgram = 0, 0, false

	d.bus.Wait(PowerOnDelay)
	// The controller may be in 8-bit mode or half-way through a 4-bit
	// transfer. Three function sets for 8-bit mode get it into a known state
	// from either, after which the fourth switches it to 4 bits.
	steps := []struct {
		nibble byte
		wait   time.Duration
	}{
		{0x3, ResetDelayLong},
		{0x3, ResetDelayShort},
		{0x3, ExecDelay},
		{0x2, ExecDelay},
	}
	for _, s := range steps {
		if err := d.bus.SendNibble(s.nibble, false); err != nil {
			return err
		}
		d.bus.Wait(s.wait)
	}

	// Nibble pairs from here on.
	large := d.opts.LargeFont && g.Rows == 1
	if err := d.command(function(false, g.Rows > 1, large)); err != nil {
		return err
	}
	if err := d.command(displayMode(false, false, false)); err != nil {
		return err
	}
	if err := d.clear(); err != nil {
		return err
	}
	if err := d.command(entryMode(true, false)); err != nil {
		return err
	}
	d.flags.On = true
	return d.sendDisplayMode()
}

// State returns the lifecycle state.
func (d *Dev) State() State {
	return d.state
}

// Geometry returns the size given to Init.
func (d *Dev) Geometry() Geometry {
	return d.geom
}

// DisplayState returns the flags last sent to the controller.
func (d *Dev) DisplayState() DisplayState {
	return d.flags
}

// Position returns the cell the next character will be written to. ok is
// false when the address counter has run past the visible cells.
func (d *Dev) Position() (col, row int, ok bool) {
	return d.geom.position(d.addr)
}

func (d *Dev) String() string {
	return fmt.Sprintf("hd44780.Dev{%s, %s}", d.geom, d.state)
}

func (d *Dev) ready() error {
	switch d.state {
	case Ready:
		return nil
	case Halted:
		return ErrHalted
	}
	return ErrNotInitialized
}

// command writes an instruction and waits for it to execute.
func (d *Dev) command(c byte) error {
	if err := d.bus.WriteByte(c, false); err != nil {
		return err
	}
	if isSlow(c) {
		d.bus.Wait(ClearDelay)
	} else {
		d.bus.Wait(ExecDelay)
	}
	return nil
}

// data writes to whichever RAM the address counter points at.
func (d *Dev) data(b byte) error {
	if err := d.bus.WriteByte(b, true); err != nil {
		return err
	}
	d.bus.Wait(ExecDelay)
	if !d.cgram {
		d.addr = d.geom.next(d.addr, d.flags.Increment)
	}
	return nil
}

// RawCommand writes an arbitrary instruction. Instructions that move the
// address counter or change flags bypass the driver's bookkeeping, so the
// next Puts should be preceded by CursorSet.
func (d *Dev) RawCommand(c byte) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.command(c)
}

func (d *Dev) sendDisplayMode() error {
	return d.command(displayMode(d.flags.On, d.flags.Cursor, d.flags.Blink))
}

func (d *Dev) setDisplayFlag(flag *bool, on bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	*flag = on
	return d.sendDisplayMode()
}

// DisplayOn shows the contents of DD RAM.
func (d *Dev) DisplayOn() error {
	return d.setDisplayFlag(&d.flags.On, true)
}

// DisplayOff blanks the display. DD RAM is retained.
func (d *Dev) DisplayOff() error {
	return d.setDisplayFlag(&d.flags.On, false)
}

// CursorOn shows the underline cursor.
func (d *Dev) CursorOn() error {
	return d.setDisplayFlag(&d.flags.Cursor, true)
}

// CursorOff hides the underline cursor.
func (d *Dev) CursorOff() error {
	return d.setDisplayFlag(&d.flags.Cursor, false)
}

// BlinkOn blinks the cell at the cursor position.
func (d *Dev) BlinkOn() error {
	return d.setDisplayFlag(&d.flags.Blink, true)
}

// BlinkOff stops blinking.
func (d *Dev) BlinkOff() error {
	return d.setDisplayFlag(&d.flags.Blink, false)
}

// Clear blanks DD RAM and moves the cursor to (0, 0). The controller also
// switches back to incrementing the address counter.
func (d *Dev) Clear() error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.clear()
}

func (d *Dev) clear() error {
	if err := d.command(cmdClear); err != nil {
		return err
	}
	d.addr, d.row, d.cgram = 0, 0, false
	d.flags.Increment = true
	return nil
}

// Home moves the cursor to (0, 0) and undoes any display shift, leaving DD
// RAM alone.
func (d *Dev) Home() error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.command(cmdHome); err != nil {
		return err
	}
	d.addr, d.row, d.cgram = 0, 0, false
	return nil
}

// SetEntryMode sets whether the cursor moves right (increment) or left after
// each character, and whether the display shifts with it.
func (d *Dev) SetEntryMode(increment, shift bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.command(entryMode(increment, shift)); err != nil {
		return err
	}
	d.flags.Increment, d.flags.Shift = increment, shift
	return nil
}

// CursorSet moves the cursor to (col, row), both counted from 0.
func (d *Dev) CursorSet(col, row int) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.cursorSet(col, row)
}

func (d *Dev) cursorSet(col, row int) error {
	a, err := d.geom.address(col, row)
	if err != nil {
		return err
	}
	if err := d.command(ddAddress(a)); err != nil {
		return err
	}
	d.addr, d.row, d.cgram = a, row, false
	return nil
}

// toDDRAM points the address counter back at DD RAM after CreateChar.
func (d *Dev) toDDRAM() error {
	if !d.cgram {
		return nil
	}
	if err := d.command(ddAddress(d.addr)); err != nil {
		return err
	}
	d.cgram = false
	return nil
}

// Puts writes s at the cursor, one byte per cell. Text is not wrapped: after
// the last visible column the controller carries on through DD RAM, which on
// most modules is not the start of the next row.
func (d *Dev) Puts(mode PutsMode, s string) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.toDDRAM(); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if mode == PutsLines && (c == '\n' || c == '\r') {
			row := d.row
			if _, r, ok := d.Position(); ok {
				row = r
			}
			if c == '\n' {
				row = (row + 1) % d.geom.Rows
			}
			if err := d.cursorSet(0, row); err != nil {
				return err
			}
			continue
		}
		if err := d.data(c); err != nil {
			return err
		}
	}
	return nil
}

// Putsxy writes s starting at (x, y). It is CursorSet followed by Puts with
// PutsRaw.
func (d *Dev) Putsxy(x, y int, s string) error {
	if err := d.CursorSet(x, y); err != nil {
		return err
	}
	return d.Puts(PutsRaw, s)
}

// Write implements io.Writer, writing p at the cursor like Puts with
// PutsRaw.
func (d *Dev) Write(p []byte) (int, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	if err := d.toDDRAM(); err != nil {
		return 0, err
	}
	for i, b := range p {
		if err := d.data(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// ScrollLeft shifts the whole display one cell to the left. DD RAM and the
// cursor address are unchanged.
func (d *Dev) ScrollLeft() error {
	return d.scroll(false)
}

// ScrollRight shifts the whole display one cell to the right.
func (d *Dev) ScrollRight() error {
	return d.scroll(true)
}

func (d *Dev) scroll(right bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.command(shiftMode(true, right))
}

// CreateChar stores a 5x8 glyph in CG RAM slot location (0 - 7). Each byte
// of data is one pixel row, top first, using its low 5 bits. The glyph is
// shown by writing the byte location, e.g. with PutCustom.
func (d *Dev) CreateChar(location byte, data [8]byte) error {
	if err := d.ready(); err != nil {
		return err
	}
	if location > 7 {
		return fmt.Errorf("%w: %d", ErrInvalidGlyphSlot, location)
	}
	if err := d.command(cgAddress(location << 3)); err != nil {
		return err
	}
	// Writes now land in CG RAM until the next DD RAM address is set. The
	// DD RAM address is remembered so text can carry on where it stopped.
	d.cgram = true
	for _, row := range data {
		if err := d.data(row & 0b00011111); err != nil {
			return err
		}
	}
	return nil
}

// PutCustom shows the glyph in CG RAM slot location at (x, y).
func (d *Dev) PutCustom(x, y int, location byte) error {
	if err := d.ready(); err != nil {
		return err
	}
	if location > 7 {
		return fmt.Errorf("%w: %d", ErrInvalidGlyphSlot, location)
	}
	if err := d.cursorSet(x, y); err != nil {
		return err
	}
	return d.data(location)
}

// Halt turns the display off and releases the pins. Init brings the device
// back.
func (d *Dev) Halt() error {
	var err error
	if d.state == Ready {
		d.flags.On = false
		err = d.sendDisplayMode()
	}
	d.state = Halted
	if perr := d.pins.Halt(); err == nil {
		err = perr
	}
	return err
}
