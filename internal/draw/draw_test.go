package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/handninja/internal/physics"
)

func TestFitKeepsAspect(t *testing.T) {
	tests := []struct {
		name  string
		termW int
		termH int
		want  Layout
	}{
		// 16:9 field: 64 columns need 18 rows (36 pixels).
		{"wide terminal", 200, 18, Layout{Width: 64, Height: 18, OffsetCol: 68, OffsetRow: 0}},
		{"tall terminal", 64, 50, Layout{Width: 64, Height: 18, OffsetCol: 0, OffsetRow: 16}},
		{"zero", 0, 0, Layout{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(tt.termW, tt.termH, 16.0/9.0); got != tt.want {
				t.Errorf("Fit(%d, %d) = %+v, want %+v", tt.termW, tt.termH, got, tt.want)
			}
		})
	}
}

func TestLayoutToCell(t *testing.T) {
	l := Layout{Width: 10, Height: 5, OffsetCol: 2, OffsetRow: 1}
	x, y, ok := l.ToCell(3, 2)
	if !ok || x != 0.5 || y != 0.5 {
		t.Fatalf("ToCell(3,2) = %v, %v, %v", x, y, ok)
	}
	if _, _, ok := l.ToCell(1, 1); ok {
		t.Error("cell in the margin reported inside")
	}
	if _, _, ok := l.ToCell(13, 2); ok {
		t.Error("cell past the right edge reported inside")
	}
}

func TestCanvasScalesAndFills(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100) // 10x10 pixels, 0.1 px per unit
	c.Set(physics.Point{X: 50, Y: 50}, ColorRed)
	if got := c.Pixel(5, 5); got != ColorRed {
		t.Fatalf("Pixel(5,5) = %v, want red", got)
	}

	c.Clear()
	c.FillCircle(physics.Point{X: 50, Y: 50}, 20, ColorGreen)
	if c.Pixel(5, 5) != ColorGreen {
		t.Error("circle center not filled")
	}
	if c.Pixel(0, 0) != ColorNone || c.Pixel(9, 9) != ColorNone {
		t.Error("circle spilled into the corners")
	}

	c.Clear()
	c.FillCircle(physics.Point{X: 10, Y: 10}, 1, ColorBlue)
	if c.Pixel(1, 1) != ColorBlue {
		t.Error("tiny circle not drawn as a pixel")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawLine(physics.Point{X: 0, Y: 0}, physics.Point{X: 9, Y: 0}, ColorWhite)
	for x := 0; x < 10; x++ {
		if c.Pixel(x, 0) != ColorWhite {
			t.Fatalf("pixel %d not set", x)
		}
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.Set(physics.Point{X: 0, Y: 0}, ColorRed) // top only
	c.Set(physics.Point{X: 1, Y: 1}, ColorRed) // bottom only
	c.Set(physics.Point{X: 2, Y: 0}, ColorRed) // both
	c.Set(physics.Point{X: 2, Y: 1}, ColorRed)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	for _, r := range []rune{BlockUpperHalf, BlockLowerHalf, BlockFull} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("render missing %q: %q", r, out)
		}
	}
	if !strings.HasPrefix(out, "\033[1;1H") {
		t.Errorf("render does not start at the canvas origin: %q", out)
	}
}

func TestCellForTwoColors(t *testing.T) {
	ch, style := cellFor(ColorRed, ColorBlue)
	if ch != BlockUpperHalf || style.fg != ColorRed || style.bg != ColorBlue {
		t.Fatalf("cellFor(red, blue) = %q %+v", ch, style)
	}
	ch, _ = cellFor(ColorNone, ColorNone)
	if ch != ' ' {
		t.Fatalf("empty cell = %q", ch)
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 4, 2)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[3;5Hhi" {
		t.Fatalf("output = %q", got)
	}
	if cw.Pending() != 0 {
		t.Error("buffer not reset after flush")
	}
}
