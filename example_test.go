package hd44780_test

import (
	"fmt"
	"log"
	"os"

	"periph.io/x/host/v3"

	"github.com/charlcd/hd44780"
)

func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	pins, err := hd44780.OpenPins(hd44780.DefaultPinMap)
	if err != nil {
		log.Fatal(err)
	}
	d, err := hd44780.Open(pins, 16, 2, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Halt()

	if len(os.Args) == 1 {
		d.Puts(hd44780.PutsLines, "github.com/\ncharlcd/hd44780")
		return
	}
	msg := os.Args[1]
	if len(msg) <= 16 {
		d.Puts(hd44780.PutsRaw, msg)
		return
	}
	// Text is not wrapped: past column 15 it would land in DD RAM that is
	// not shown, so the rest goes on the second row explicitly.
	d.Puts(hd44780.PutsRaw, msg[:16])
	d.Putsxy(0, 1, msg[16:])
}

func ExampleDev_CreateChar() {
	host.Init()
	pins, err := hd44780.OpenPins(hd44780.DefaultPinMap)
	if err != nil {
		log.Fatal(err)
	}
	d, err := hd44780.Open(pins, 20, 4, nil)
	if err != nil {
		log.Fatal(err)
	}

	heart := [8]byte{
		0b00000,
		0b01010,
		0b11111,
		0b11111,
		0b01110,
		0b00100,
		0b00000,
		0b00000,
	}
	d.CreateChar(1, heart)
	d.Putsxy(0, 0, "I ")
	d.PutCustom(2, 0, 1)
	// PutCustom leaves the cursor just after the glyph.
	d.Puts(hd44780.PutsRaw, " Go")
	fmt.Fprintf(d, " %d", 4)
}
