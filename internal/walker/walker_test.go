package walker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// screen records draw calls as "glyph slot@col,row" and "text@col,row".
type screen struct {
	mu     sync.Mutex
	calls  []string
	glyphs map[byte][8]byte
	err    error
}

func (s *screen) CreateChar(location byte, data [8]byte) error {
	if s.glyphs == nil {
		s.glyphs = map[byte][8]byte{}
	}
	s.glyphs[location] = data
	return nil
}

func (s *screen) PutCustom(x, y int, location byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, fmt.Sprintf("glyph %d@%d,%d", location, x, y))
	return nil
}

func (s *screen) Putsxy(x, y int, str string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, fmt.Sprintf("%q@%d,%d", str, x, y))
	return nil
}

func (s *screen) drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

var dot = [8]byte{0, 0, 0, 0x04, 0, 0, 0, 0}

func TestNewDrawsAtStart(t *testing.T) {
	s := &screen{}

	w, err := New(s, 2, dot, 1, 3, 6)
	require.NoError(t, err)

	assert.Equal(t, dot, s.glyphs[2])
	assert.Equal(t, []string{"glyph 2@3,1"}, s.calls)
	assert.Equal(t, 3, w.Col())
}

func TestNewEmptyPath(t *testing.T) {
	_, err := New(&screen{}, 0, dot, 0, 5, 5)
	assert.Error(t, err)
}

func TestStepTurnsAround(t *testing.T) {
	s := &screen{}
	w, err := New(s, 0, dot, 0, 0, 2)
	require.NoError(t, err)

	var cols []int
	for i := 0; i < 6; i++ {
		require.NoError(t, w.Step())
		cols = append(cols, w.Col())
	}

	assert.Equal(t, []int{1, 2, 1, 0, 1, 2}, cols)
	assert.Equal(t, []string{
		"glyph 0@0,0",
		`" "@0,0`, "glyph 0@1,0",
		`" "@1,0`, "glyph 0@2,0",
	}, s.calls[:5])
}

func TestStepError(t *testing.T) {
	s := &screen{}
	w, err := New(s, 0, dot, 0, 0, 2)
	require.NoError(t, err)
	s.err = errors.New("halted")

	assert.EqualError(t, w.Step(), "halted")
}

func TestRunStopsOnCancel(t *testing.T) {
	s := &screen{}
	w, err := New(s, 0, dot, 0, 0, 15)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, time.Millisecond) }()

	require.Eventually(t, func() bool { return s.drawn() > 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReturnsStepError(t *testing.T) {
	s := &screen{}
	w, err := New(s, 0, dot, 0, 0, 15)
	require.NoError(t, err)
	s.err = errors.New("pin gone")

	err = w.Run(context.Background(), time.Millisecond)
	assert.EqualError(t, err, "pin gone")
}
