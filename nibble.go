package hd44780

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Bus transfers nibbles to the controller over D4 - D7. It is the only code
// that touches the lines, and it never waits for the controller to finish:
// the settle time after a transfer is up to the caller.
type Bus struct {
	pins  *Pins
	delay Delayer
}

// NewBus returns a Bus on pins. A nil Delayer means SleepDelayer.
func NewBus(pins *Pins, d Delayer) *Bus {
	if d == nil {
		d = SleepDelayer{}
	}
	return &Bus{pins: pins, delay: d}
}

// SendNibble latches the low 4 bits of v into the data register (isData) or
// the instruction register.
func (b *Bus) SendNibble(v byte, isData bool) error {
	// RS must be stable tAS > 40ns before E rises, which the GPIO write
	// latency covers.
	if err := b.pins.SetLine(LineRS, gpio.Level(isData)); err != nil {
		return err
	}
	for i, l := range dataLines {
		if err := b.pins.SetLine(l, v&(1<<i) != 0); err != nil {
			return err
		}
	}
	if err := b.pins.SetLine(LineE, gpio.High); err != nil {
		return err
	}
	b.delay.Delay(EnablePulseWidth)
	// Data is latched on the falling edge.
	return b.pins.SetLine(LineE, gpio.Low)
}

// WriteByte sends v as two nibbles, high nibble first.
func (b *Bus) WriteByte(v byte, isData bool) error {
	if err := b.SendNibble(v>>4, isData); err != nil {
		return err
	}
	return b.SendNibble(v&0x0f, isData)
}

// Wait blocks for d.
func (b *Bus) Wait(d time.Duration) {
	b.delay.Delay(d)
}
