package input

import (
	"bufio"
	"time"

	"github.com/tomz197/handninja/internal/clock"
	"github.com/tomz197/handninja/internal/draw"
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/gesture"
	"github.com/tomz197/handninja/internal/physics"
	"github.com/tomz197/handninja/internal/sensor"
)

// GestureLatch is how long a gesture key keeps its finger vector raised.
// It must exceed the gesture hold time for a single press to register.
const GestureLatch = 500 * time.Millisecond

// Terminal turns a raw terminal byte stream into player commands and a
// pointer-driven hand sensor: the mouse is the fingertip, gesture keys
// stand in for finger vectors.
type Terminal struct {
	stream *Stream
	size   draw.TermSizeFunc
	aspect float64 // Field width / height, shared with the renderer's layout
	clk    clock.Source

	tip        *physics.Point // Pointer in layout cells, nil when outside
	layout     draw.Layout
	latch      gesture.Fingers
	latchUntil time.Time
	cmds       []game.Command
	closed     bool
}

// NewTerminal starts reading r. size reports the terminal size and aspect is
// the field's width/height ratio.
func NewTerminal(r *bufio.Reader, size draw.TermSizeFunc, aspect float64, clk clock.Source) *Terminal {
	return newTerminal(StartStream(r), size, aspect, clk)
}

func newTerminal(s *Stream, size draw.TermSizeFunc, aspect float64, clk clock.Source) *Terminal {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Terminal{stream: s, size: size, aspect: aspect, clk: clk}
}

func (t *Terminal) poll() {
	if t.closed {
		return
	}
	in := ReadInput(t.stream)
	now := t.clk.Now()

	if w, h, err := t.size(); err == nil {
		t.layout = draw.Fit(w, h, t.aspect)
	}

	for _, b := range in.Pressed {
		if f, ok := GestureForKey(b); ok {
			t.latch = f
			t.latchUntil = now.Add(GestureLatch)
			continue
		}
		if cmd := CommandForKey(b); cmd != game.CmdNone {
			t.cmds = append(t.cmds, cmd)
		}
	}

	if m := in.Mouse; m != nil {
		if x, y, ok := t.layout.ToCell(m.Col, m.Row); ok {
			t.tip = &physics.Point{X: x, Y: y}
		} else {
			t.tip = nil
		}
	}

	if in.Closed {
		t.closed = true
	}
}

// Commands returns the commands typed since the last call.
func (t *Terminal) Commands() []game.Command {
	t.poll()
	out := t.cmds
	t.cmds = nil
	return out
}

// Read returns the pointer position in layout cells and any latched
// gesture. Once the stream ends it returns sensor.ErrClosed.
func (t *Terminal) Read() (sensor.Sample, error) {
	t.poll()
	if t.closed && len(t.cmds) == 0 {
		return sensor.Sample{}, sensor.ErrClosed
	}

	s := sensor.Sample{
		Width:  float64(t.layout.Width),
		Height: float64(t.layout.Height),
	}
	if t.tip != nil {
		p := *t.tip
		s.Tip = &p
	}
	if t.clk.Now().Before(t.latchUntil) {
		f := t.latch
		s.Fingers = &f
	}
	return s, nil
}

// Close stops using the stream. The reader goroutine exits when its source
// is closed by the owner.
func (t *Terminal) Close() error {
	t.closed = true
	return nil
}
