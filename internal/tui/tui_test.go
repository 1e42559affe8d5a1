package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/handninja/internal/clock"
	"github.com/tomz197/handninja/internal/draw"
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/gesture"
	"github.com/tomz197/handninja/internal/object"
	"github.com/tomz197/handninja/internal/sensor"
)

func newTestScreen(t *testing.T) (*Screen, *clock.Mock) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(64, 18)

	clk := clock.NewMock(time.Unix(0, 0))
	return newScreen(sim, 960, 540, clk), clk
}

func TestKeysBecomeCommands(t *testing.T) {
	s, _ := newTestScreen(t)

	s.key(tcell.KeyRune, '3')
	s.key(tcell.KeyRune, 't')
	s.key(tcell.KeyEnter, 0)
	s.key(tcell.KeyRune, 'x')
	s.key(tcell.KeyEscape, 0)

	got := s.Commands()
	want := []game.Command{game.CmdHard, game.CmdTime, game.CmdStart, game.CmdQuit}
	if len(got) != len(want) {
		t.Fatalf("Commands() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Commands()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if again := s.Commands(); len(again) != 0 {
		t.Errorf("second Commands() = %v, want none", again)
	}
}

func TestMouseIsFingertip(t *testing.T) {
	s, _ := newTestScreen(t)
	s.fit()

	s.pointer(32, 9)
	sample, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if sample.Tip == nil || sample.Tip.X != 32.5 || sample.Tip.Y != 9.5 {
		t.Fatalf("Tip = %v, want (32.5, 9.5)", sample.Tip)
	}
	if sample.Width != 64 || sample.Height != 18 {
		t.Errorf("sample size = %vx%v, want 64x18", sample.Width, sample.Height)
	}

	s.pointer(100, 9)
	if sample, _ = s.Read(); sample.Tip != nil {
		t.Errorf("Tip outside the field = %v, want nil", sample.Tip)
	}
}

func TestGestureKeyLatches(t *testing.T) {
	s, clk := newTestScreen(t)

	s.key(tcell.KeyRune, 'v')
	sample, _ := s.Read()
	if sample.Fingers == nil || *sample.Fingers != gesture.PatternTwo {
		t.Fatalf("Fingers = %v, want two fingers", sample.Fingers)
	}
	clk.Advance(600 * time.Millisecond)
	if sample, _ = s.Read(); sample.Fingers != nil {
		t.Errorf("Fingers after latch = %v, want nil", sample.Fingers)
	}
}

func TestClosedEventsEndSensor(t *testing.T) {
	s, _ := newTestScreen(t)
	s.events = make(chan tcell.Event)
	close(s.events)

	if _, err := s.Read(); !errors.Is(err, sensor.ErrClosed) {
		t.Errorf("Read() error = %v, want ErrClosed", err)
	}
}

func TestRenderDrawsField(t *testing.T) {
	s, _ := newTestScreen(t)

	snap := game.Snapshot{
		State:    game.GameStatePlaying,
		Entities: []game.EntityView{{X: 480, Y: 270, Radius: 40, Kind: object.KindFruit, Variant: object.VariantApple}},
		HUD:      game.HUD{Score: 3, Lives: 3, MaxLives: 3, Multiplier: 1},
	}
	if err := s.Render(snap); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if ch, _, _, _ := s.screen.GetContent(32, 9); ch != draw.BlockFull {
		t.Errorf("center cell = %q, want %q", ch, draw.BlockFull)
	}
	if ch, _, _, _ := s.screen.GetContent(1, 0); ch != 'S' {
		t.Errorf("HUD cell = %q, want 'S'", ch)
	}
}

func TestStyleFor(t *testing.T) {
	fg, bg, _ := styleFor(draw.ColorRed, draw.ColorNone).Decompose()
	if fg != tcell.PaletteColor(196) {
		t.Errorf("fg = %v, want palette 196", fg)
	}
	if bg != tcell.ColorDefault {
		t.Errorf("bg = %v, want default", bg)
	}
}
