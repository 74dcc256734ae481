package hd44780

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
)

func TestSendNibble(t *testing.T) {
	tests := []struct {
		name   string
		value  byte
		isData bool
	}{
		{"command 0x3", 0x3, false},
		{"command 0x2", 0x2, false},
		{"data 0xA", 0xA, true},
		{"data 0xF", 0xF, true},
		{"upper bits ignored", 0xF5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, pins := newRecorder()
			b := NewBus(pins, rec)

			require.NoError(t, b.SendNibble(tt.value, tt.isData))

			ts := rec.transfers()
			require.Len(t, ts, 1)
			assert.Equal(t, tt.isData, ts[0].rs)
			assert.Equal(t, tt.value&0x0f, ts[0].value)
			assert.Zero(t, ts[0].dataSets, "RS and data must be stable while E is high")
			assert.GreaterOrEqual(t, ts[0].fall-ts[0].rise, EnablePulseWidth)
		})
	}
}

func TestSendNibbleLineOrder(t *testing.T) {
	rec, pins := newRecorder()
	b := NewBus(pins, rec)

	require.NoError(t, b.SendNibble(0b1000, true))

	var lines []Line
	for _, e := range rec.edges {
		lines = append(lines, e.line)
	}
	assert.Equal(t, []Line{LineRS, LineD4, LineD5, LineD6, LineD7, LineE, LineE}, lines)
	assert.Equal(t, gpio.High, rec.edges[4].level, "bit 3 goes to D7")
	assert.Equal(t, []time.Duration{EnablePulseWidth}, rec.delays, "no settle delay inside a transfer")
}

func TestWriteByteHighNibbleFirst(t *testing.T) {
	rec, pins := newRecorder()
	b := NewBus(pins, rec)

	require.NoError(t, b.WriteByte(0xC5, false))

	ts := rec.transfers()
	require.Len(t, ts, 2)
	assert.Equal(t, byte(0xC), ts[0].value)
	assert.Equal(t, byte(0x5), ts[1].value)

	var pulses int
	for _, e := range rec.edges {
		if e.line == LineE && e.level == gpio.High {
			pulses++
		}
	}
	assert.Equal(t, 2, pulses, "one enable pulse per nibble")
}

func TestSendNibblePinError(t *testing.T) {
	rec, pins := newRecorder()
	rec.fail[LineD6] = errors.New("line busy")
	b := NewBus(pins, rec)

	err := b.SendNibble(0x1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "D6")
	for _, e := range rec.edges {
		assert.NotEqual(t, LineE, e.line, "E must not pulse after a failed data line")
	}
}
