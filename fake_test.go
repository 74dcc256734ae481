package hd44780

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// edge is one level change on one line, stamped with virtual time.
type edge struct {
	at    time.Duration
	line  Line
	level gpio.Level
}

// recorder is a virtual clock and a log of every line change. Delay advances
// the clock without sleeping.
type recorder struct {
	now    time.Duration
	edges  []edge
	delays []time.Duration
	fail   map[Line]error
}

func (r *recorder) Delay(d time.Duration) {
	r.delays = append(r.delays, d)
	r.now += d
}

func (r *recorder) reset() {
	r.edges = nil
	r.delays = nil
}

// recPin records Out calls before passing them to the test pin.
type recPin struct {
	*gpiotest.Pin
	line Line
	rec  *recorder
}

func (p *recPin) Out(l gpio.Level) error {
	if err := p.rec.fail[p.line]; err != nil {
		return err
	}
	p.rec.edges = append(p.rec.edges, edge{at: p.rec.now, line: p.line, level: l})
	return p.Pin.Out(l)
}

func newRecorder() (*recorder, *Pins) {
	rec := &recorder{fail: map[Line]error{}}
	pin := func(l Line) gpio.PinOut {
		return &recPin{Pin: &gpiotest.Pin{N: "LCD_" + l.String(), Num: -1}, line: l, rec: rec}
	}
	return rec, &Pins{
		RS: pin(LineRS),
		E:  pin(LineE),
		D4: pin(LineD4),
		D5: pin(LineD5),
		D6: pin(LineD6),
		D7: pin(LineD7),
	}
}

// transfer is one nibble as latched by the controller on the falling edge of
// E.
type transfer struct {
	rs       bool
	value    byte
	rise     time.Duration
	fall     time.Duration
	dataSets int // changes to RS and D4 - D7 while E was high
}

// transfers replays the edge log the way the controller sees it.
func (r *recorder) transfers() []transfer {
	var (
		level [numLines]bool
		out   []transfer
		cur   transfer
	)
	for _, e := range r.edges {
		switch {
		case e.line == LineE && e.level == gpio.High && !level[LineE]:
			cur.rise = e.at
		case e.line == LineE && e.level == gpio.Low && level[LineE]:
			cur.fall = e.at
			cur.rs = level[LineRS]
			for i, l := range dataLines {
				if level[l] {
					cur.value |= 1 << i
				}
			}
			out = append(out, cur)
			cur = transfer{}
		case e.line != LineE && level[LineE]:
			cur.dataSets++
		}
		level[e.line] = bool(e.level)
	}
	return out
}

// write is one byte assembled from a pair of transfers.
type write struct {
	rs    bool
	value byte
	start time.Duration // rise of E for the high nibble
	end   time.Duration // fall of E for the low nibble
}

// writes pairs transfers into bytes, skipping the first skip lone nibbles.
func (r *recorder) writes(skip int) ([]write, error) {
	ts := r.transfers()
	if len(ts) < skip {
		return nil, errors.New("fewer transfers than skipped")
	}
	ts = ts[skip:]
	if len(ts)%2 != 0 {
		return nil, errors.New("odd number of nibbles")
	}
	out := make([]write, 0, len(ts)/2)
	for i := 0; i < len(ts); i += 2 {
		hi, lo := ts[i], ts[i+1]
		if hi.rs != lo.rs {
			return nil, errors.New("register select changed within a byte")
		}
		out = append(out, write{
			rs:    hi.rs,
			value: hi.value<<4 | lo.value,
			start: hi.rise,
			end:   lo.fall,
		})
	}
	return out, nil
}
