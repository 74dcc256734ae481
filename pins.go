package hd44780

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Line is one of the six logical lines between the host and the controller.
type Line int

const (
	LineRS Line = iota // register select
	LineE              // enable signal
	LineD4
	LineD5
	LineD6
	LineD7

	numLines
)

var lineNames = [numLines]string{"RS", "E", "D4", "D5", "D6", "D7"}

// dataLines are in bit order: D4 carries bit 0 of a nibble, D7 bit 3.
var dataLines = [4]Line{LineD4, LineD5, LineD6, LineD7}

func (l Line) String() string {
	if l < 0 || l >= numLines {
		return fmt.Sprintf("Line(%d)", int(l))
	}
	return lineNames[l]
}

// Pins binds the logical lines to GPIO outputs. RW is not part of the
// binding: it should be tied to ground, since nothing is ever read back.
// D0 - D3 are left unconnected in 4-bit mode.
type Pins struct {
	RS, E          gpio.PinOut // register select, enable signal
	D4, D5, D6, D7 gpio.PinOut // data bits 4 - 7
}

func (p *Pins) pin(l Line) gpio.PinOut {
	switch l {
	case LineRS:
		return p.RS
	case LineE:
		return p.E
	case LineD4:
		return p.D4
	case LineD5:
		return p.D5
	case LineD6:
		return p.D6
	case LineD7:
		return p.D7
	}
	return nil
}

// SetLine drives a single line to level.
func (p *Pins) SetLine(l Line, level gpio.Level) error {
	pin := p.pin(l)
	if pin == nil {
		return fmt.Errorf("hd44780: line %s is not bound", l)
	}
	if err := pin.Out(level); err != nil {
		return fmt.Errorf("hd44780: drive %s %s: %w", l, level, err)
	}
	return nil
}

// Halt drives every bound line low, then halts it.
func (p *Pins) Halt() error {
	var errs []error
	for l := LineRS; l < numLines; l++ {
		pin := p.pin(l)
		if pin == nil {
			continue
		}
		if err := pin.Out(gpio.Low); err != nil {
			errs = append(errs, fmt.Errorf("hd44780: drive %s low: %w", l, err))
		}
		if err := pin.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("hd44780: halt %s: %w", l, err))
		}
	}
	return errors.Join(errs...)
}

// PinMap assigns lines to GPIO pins by name, as understood by gpioreg.ByName.
type PinMap struct {
	RS string `yaml:"rs"`
	E  string `yaml:"e"`
	D4 string `yaml:"d4"`
	D5 string `yaml:"d5"`
	D6 string `yaml:"d6"`
	D7 string `yaml:"d7"`
}

// DefaultPinMap is a wiring that leaves the I²C, SPI and UART pins of a
// Raspberry Pi header free.
var DefaultPinMap = PinMap{
	RS: "GPIO17",
	E:  "GPIO18",
	D4: "GPIO27",
	D5: "GPIO22",
	D6: "GPIO23",
	D7: "GPIO24",
}

func (m PinMap) names() [numLines]string {
	return [numLines]string{m.RS, m.E, m.D4, m.D5, m.D6, m.D7}
}

// OpenPins looks up every pin named in m and drives it low. host.Init must
// have been called first. Every pin that is missing or fails is reported in
// the returned error, not just the first.
func OpenPins(m PinMap) (*Pins, error) {
	var (
		out  [numLines]gpio.PinOut
		errs []error
	)
	for l, name := range m.names() {
		p, err := openPin(Line(l), name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[l] = p
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Pins{
		RS: out[LineRS],
		E:  out[LineE],
		D4: out[LineD4],
		D5: out[LineD5],
		D6: out[LineD6],
		D7: out[LineD7],
	}, nil
}

func openPin(l Line, name string) (gpio.PinOut, error) {
	if name == "" {
		return nil, fmt.Errorf("hd44780: %s pin is not configured", l)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("hd44780: %s pin %q not found", l, name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("hd44780: %s pin %q: %w", l, name, err)
	}
	return p, nil
}
