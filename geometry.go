package hd44780

import "fmt"

// Geometry is the size of the display in character cells. It is fixed by
// Init.
type Geometry struct {
	Cols, Rows int
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}

// validate accepts up to 80 cells, which is all the DD RAM a single
// controller has: 1 or 2 rows of up to 40, or 3 or 4 rows of up to 20.
func (g Geometry) validate() error {
	switch {
	case g.Rows < 1 || g.Rows > 4:
	case g.Cols < 1 || g.Cols > 40:
	case g.Rows > 2 && g.Cols > 20:
	default:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidGeometry, g)
}

// DD RAM address of the first cell of each row. Rows 2 and 3 continue rows 0
// and 1 right after the last visible column, so they move with the width.
var (
	rowOffsets16 = [4]byte{0x00, 0x40, 0x10, 0x50}
	rowOffsets20 = [4]byte{0x00, 0x40, 0x14, 0x54}
)

func (g Geometry) rowOffset(row int) byte {
	if g.Cols == 16 {
		return rowOffsets16[row]
	}
	return rowOffsets20[row]
}

// address returns the DD RAM address of the cell at (col, row).
func (g Geometry) address(col, row int) (byte, error) {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return 0, fmt.Errorf("%w: (%d, %d) on %s", ErrOutOfBounds, col, row, g)
	}
	return g.rowOffset(row) + byte(col), nil
}

// position is the inverse of address. ok is false for addresses that are not
// visible without shifting the display.
func (g Geometry) position(addr byte) (col, row int, ok bool) {
	for r := 0; r < g.Rows; r++ {
		off := g.rowOffset(r)
		if addr >= off && int(addr-off) < g.Cols {
			return int(addr - off), r, true
		}
	}
	return 0, 0, false
}

// next returns the address counter after one DD RAM write. In two-line mode
// the counter runs 0x00-0x27 then 0x40-0x67 and wraps between the two
// halves; in one-line mode it runs 0x00-0x4f.
func (g Geometry) next(addr byte, increment bool) byte {
	if g.Rows == 1 {
		if increment {
			if addr >= 0x4f {
				return 0x00
			}
			return addr + 1
		}
		if addr == 0x00 {
			return 0x4f
		}
		return addr - 1
	}
	if increment {
		switch addr {
		case 0x27:
			return 0x40
		case 0x67:
			return 0x00
		}
		return addr + 1
	}
	switch addr {
	case 0x00:
		return 0x67
	case 0x40:
		return 0x27
	}
	return addr - 1
}
