package hd44780

import "errors"

var (
	// ErrNotInitialized is returned by every operation but Init until Init
	// has succeeded.
	ErrNotInitialized = errors.New("hd44780: not initialized")
	// ErrHalted is returned by every operation but Init after Halt.
	ErrHalted = errors.New("hd44780: halted")
	// ErrOutOfBounds is returned for a cursor position outside the display.
	ErrOutOfBounds = errors.New("hd44780: position out of bounds")
	// ErrInvalidGlyphSlot is returned for a CG RAM slot above 7.
	ErrInvalidGlyphSlot = errors.New("hd44780: glyph slot must be 0-7")
	// ErrInvalidGeometry is returned by Init for a size no HD44780 module has.
	ErrInvalidGeometry = errors.New("hd44780: unsupported display geometry")
)
