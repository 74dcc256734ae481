package hd44780

// Instruction codes. The low bits of each are flags, set by the builders
// below.
const (
	cmdClear       = 0b00000001
	cmdHome        = 0b00000010
	cmdEntryMode   = 0b00000100
	cmdDisplayMode = 0b00001000
	cmdShift       = 0b00010000
	cmdFunction    = 0b00100000
	cmdCGAddress   = 0b01000000
	cmdDDAddress   = 0b10000000
)

// entryMode sets the address counter direction and whether the display
// shifts along with each write.
func entryMode(increment, shift bool) byte {
	a := byte(cmdEntryMode)
	if increment {
		a |= 0b00000010
	}
	if shift {
		a |= 0b00000001
	}
	return a
}

// displayMode turns on/off the whole display, cursor, or cursor-blinking.
// The controller has one register for all three.
func displayMode(display, cursor, blink bool) byte {
	a := byte(cmdDisplayMode)
	if display {
		a |= 0b00000100
	}
	if cursor {
		a |= 0b00000010
	}
	if blink {
		a |= 0b00000001
	}
	return a
}

// shiftMode shifts the display window (or moves the cursor) one cell.
func shiftMode(display, right bool) byte {
	a := byte(cmdShift)
	if display {
		a |= 0b00001000
	}
	if right {
		a |= 0b00000100
	}
	return a
}

// function builds the function set instruction. This driver always clears
// eightbit; twolines selects the 2-line address layout and largefont the 5x10
// dot font, which only one-line modules have.
func function(eightbit, twolines, largefont bool) byte {
	a := byte(cmdFunction)
	if eightbit {
		a |= 0b00010000
	}
	if twolines {
		a |= 0b00001000
	}
	if largefont {
		a |= 0b00000100
	}
	return a
}

// cgAddress sets the CG RAM address (0 <= a < 64).
func cgAddress(a byte) byte {
	return cmdCGAddress | a&0b00111111
}

// ddAddress sets the DD RAM address (0 <= a < 128).
func ddAddress(a byte) byte {
	return cmdDDAddress | a&0b01111111
}

// isSlow reports whether c is clear display or return home, which need
// ClearDelay rather than ExecDelay.
func isSlow(c byte) bool {
	return c == cmdClear || c&^1 == cmdHome
}
