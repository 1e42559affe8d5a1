// Package tui is a tcell frontend: it renders snapshots and turns mouse
// motion and keys into a hand sensor and player commands.
package tui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/handninja/internal/clock"
	"github.com/tomz197/handninja/internal/draw"
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/gesture"
	"github.com/tomz197/handninja/internal/input"
	"github.com/tomz197/handninja/internal/physics"
	"github.com/tomz197/handninja/internal/screen"
	"github.com/tomz197/handninja/internal/sensor"
)

// Screen owns a tcell screen for the lifetime of the game.
type Screen struct {
	screen tcell.Screen
	clk    clock.Source
	aspect float64
	canvas *draw.Canvas
	layout draw.Layout

	events chan tcell.Event

	tip        *physics.Point
	latch      gesture.Fingers
	latchUntil time.Time
	cmds       []game.Command
	closed     bool
	finiOnce   sync.Once
}

// New initializes s for a fieldW x fieldH field and starts polling its events.
func New(s tcell.Screen, fieldW, fieldH float64, clk clock.Source) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.EnableMouse(tcell.MouseMotionEvents)
	s.HideCursor()
	s.Clear()

	t := newScreen(s, fieldW, fieldH, clk)
	t.events = make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			t.events <- ev
		}
	}()
	return t, nil
}

func newScreen(s tcell.Screen, fieldW, fieldH float64, clk clock.Source) *Screen {
	if clk == nil {
		clk = clock.System{}
	}
	return &Screen{
		screen: s,
		clk:    clk,
		aspect: fieldW / fieldH,
		canvas: draw.NewScaledCanvas(0, 0, fieldW, fieldH),
	}
}

func (t *Screen) poll() {
	for !t.closed {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.closed = true
				return
			}
			t.handle(ev)
		default:
			return
		}
	}
}

func (t *Screen) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.key(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		t.pointer(x, y)
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func (t *Screen) key(k tcell.Key, r rune) {
	var cmd game.Command
	switch k {
	case tcell.KeyEnter:
		cmd = game.CmdStart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		cmd = game.CmdQuit
	case tcell.KeyRune:
		if r > 0x7f {
			return
		}
		if f, ok := input.GestureForKey(byte(r)); ok {
			t.latch = f
			t.latchUntil = t.clk.Now().Add(input.GestureLatch)
			return
		}
		cmd = input.CommandForKey(byte(r))
	}
	if cmd != game.CmdNone {
		t.cmds = append(t.cmds, cmd)
	}
}

// pointer records the mouse at 0-based cell (x, y).
func (t *Screen) pointer(x, y int) {
	if cx, cy, ok := t.layout.ToCell(x+1, y+1); ok {
		t.tip = &physics.Point{X: cx, Y: cy}
	} else {
		t.tip = nil
	}
}

func (t *Screen) fit() {
	w, h := t.screen.Size()
	t.layout = draw.Fit(w, h, t.aspect)
}

// Commands returns the commands typed since the last call.
func (t *Screen) Commands() []game.Command {
	t.fit()
	t.poll()
	out := t.cmds
	t.cmds = nil
	return out
}

// Read returns the mouse position in layout cells and any latched gesture.
func (t *Screen) Read() (sensor.Sample, error) {
	t.poll()
	if t.closed {
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

// Render draws one frame.
func (t *Screen) Render(s game.Snapshot) error {
	t.fit()
	l := t.layout
	t.canvas.Resize(l.Width, l.Height)
	screen.Paint(t.canvas, s)

	t.screen.Clear()
	for row := 0; row < l.Height; row++ {
		for col := 0; col < l.Width; col++ {
			ch, fg, bg := t.canvas.Cell(col, row)
			t.screen.SetContent(l.OffsetCol+col, l.OffsetRow+row, ch, nil, styleFor(fg, bg))
		}
	}

	text := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if s.State == game.GameStatePlaying || s.State == game.GameStatePaused {
		t.puts(l.OffsetCol+1, l.OffsetRow, screen.HUDText(s.HUD), text)
	}
	lines := screen.Overlay(s, screen.BlinkOn(t.clk.Now()))
	top := l.OffsetRow + (l.Height-len(lines))/2
	for i, line := range lines {
		t.puts(l.OffsetCol+(l.Width-len([]rune(line)))/2, top+i, line, text.Bold(true))
	}

	t.screen.Show()
	return nil
}

func (t *Screen) puts(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func styleFor(fg, bg draw.Color) tcell.Style {
	style := tcell.StyleDefault
	if i := fg.Palette(); i >= 0 {
		style = style.Foreground(tcell.PaletteColor(i))
	}
	if i := bg.Palette(); i >= 0 {
		style = style.Background(tcell.PaletteColor(i))
	}
	return style
}

// Close restores the terminal.
func (t *Screen) Close() error {
	t.finiOnce.Do(t.screen.Fini)
	return nil
}
