package hd44780

import "time"

// Minimum waits from the HD44780U datasheet (fosc = 270kHz), rounded up.
// The busy flag is never read, so these are the only thing keeping the host
// from outrunning the controller.
const (
	PowerOnDelay     = 45 * time.Millisecond   // > 40ms after Vcc reaches 2.7V
	ResetDelayLong   = 4500 * time.Microsecond // > 4.1ms after the first reset nibble
	ResetDelayShort  = 150 * time.Microsecond  // > 100µs after the second
	EnablePulseWidth = time.Microsecond        // PWEH > 450ns
	ExecDelay        = 50 * time.Microsecond   // most instructions take 37µs
	ClearDelay       = 2 * time.Millisecond    // clear display and return home take 1.52ms
)

// Delayer blocks the caller for at least d.
type Delayer interface {
	Delay(d time.Duration)
}

// SleepDelayer implements Delayer with time.Sleep. The scheduler may
// oversleep, which is always safe here.
type SleepDelayer struct{}

// Delay implements Delayer.
func (SleepDelayer) Delay(d time.Duration) {
	time.Sleep(d)
}
