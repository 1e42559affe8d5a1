// Package screen draws game snapshots to an ANSI terminal.
package screen

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tomz197/handninja/internal/clock"
	"github.com/tomz197/handninja/internal/draw"
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/object"
	"github.com/tomz197/handninja/internal/physics"
)

// Renderer draws snapshots using a half-block canvas sized to the terminal.
type Renderer struct {
	writer io.Writer
	size   draw.TermSizeFunc
	clk    clock.Source
	aspect float64

	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter
	layout      draw.Layout

	prevState game.GameState
	started   bool
}

// New creates a renderer for a fieldW x fieldH field.
func New(w io.Writer, size draw.TermSizeFunc, fieldW, fieldH float64, clk clock.Source) *Renderer {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Renderer{
		writer:      w,
		size:        size,
		clk:         clk,
		aspect:      fieldW / fieldH,
		canvas:      draw.NewScaledCanvas(0, 0, fieldW, fieldH),
		chunkWriter: draw.NewChunkWriter(w, 0, 0),
	}
}

// Aspect returns the field's width/height ratio.
func (r *Renderer) Aspect() float64 {
	return r.aspect
}

// Open prepares the terminal: alternate screen, hidden cursor, mouse reporting.
func (r *Renderer) Open() {
	draw.EnterAltScreen(r.writer)
	draw.HideCursor(r.writer)
	draw.EnableMouse(r.writer)
	draw.ClearScreen(r.writer)
}

// Close restores the terminal.
func (r *Renderer) Close() {
	draw.DisableMouse(r.writer)
	draw.ClearScreen(r.writer)
	draw.ShowCursor(r.writer)
	draw.ExitAltScreen(r.writer)
}

// Render draws one frame.
func (r *Renderer) Render(s game.Snapshot) error {
	r.updateScreen(s.State)

	Paint(r.canvas, s)
	r.canvas.Render(r.chunkWriter)
	r.canvas.RenderBorder(r.chunkWriter)
	r.drawUI(s)

	return r.chunkWriter.Flush()
}

// updateScreen handles terminal resize and state changes. Both clear the
// terminal so no residue from the previous layout or overlay remains.
func (r *Renderer) updateScreen(state game.GameState) {
	w, h, err := r.size()
	if err != nil {
		return
	}
	layout := draw.Fit(w, h, r.aspect)

	if !r.started || layout != r.layout || state != r.prevState {
		r.chunkWriter.SetOffset(0, 0)
		draw.ClearScreen(r.chunkWriter)
		r.started = true
		r.prevState = state
	}
	r.layout = layout
	r.canvas.Resize(layout.Width, layout.Height)
	r.canvas.SetOffset(layout.OffsetCol, layout.OffsetRow)
	r.chunkWriter.SetOffset(layout.OffsetCol, layout.OffsetRow)
}

// Paint clears c and draws the field contents of s: trail, entities, fingertip.
func Paint(c *draw.Canvas, s game.Snapshot) {
	c.Clear()
	drawTrail(c, s.Trail)
	for _, e := range s.Entities {
		drawEntity(c, e)
	}
	if s.Tip != nil {
		c.FillCircle(*s.Tip, 6, draw.ColorYellow)
	}
}

func drawTrail(c *draw.Canvas, trail []physics.Point) {
	for i := 1; i < len(trail); i++ {
		c.DrawLine(trail[i-1], trail[i], draw.ColorWhite)
	}
}

func drawEntity(c *draw.Canvas, e game.EntityView) {
	center := physics.Point{X: e.X, Y: e.Y}
	c.FillCircle(center, float64(e.Radius), entityColor(e))
	if e.Kind == object.KindBomb {
		// Fuse
		c.Set(physics.Point{X: e.X, Y: e.Y - float64(e.Radius)}, draw.ColorOrange)
	}
}

func entityColor(e game.EntityView) draw.Color {
	switch e.Kind {
	case object.KindBomb:
		return draw.ColorGray
	case object.KindFreeze:
		return draw.ColorCyan
	case object.KindDouble:
		return draw.ColorMagenta
	case object.KindHeart:
		return draw.ColorPink
	}
	switch e.Variant {
	case object.VariantBanana:
		return draw.ColorYellow
	case object.VariantWatermelon:
		return draw.ColorGreen
	default:
		return draw.ColorRed
	}
}

// drawUI draws the HUD and the overlay for the current state.
func (r *Renderer) drawUI(s game.Snapshot) {
	width := r.canvas.TerminalWidth()
	height := r.canvas.TerminalHeight()
	if width == 0 || height == 0 {
		return
	}

	if s.State == game.GameStatePlaying || s.State == game.GameStatePaused {
		r.chunkWriter.WriteAt(2, 1, HUDText(s.HUD))
		if s.HUD.Multiplier > 1 {
			r.chunkWriter.WriteColored(width-len(doubleLabel), 1, doubleLabel, draw.ColorMagenta)
		}
	}

	lines := Overlay(s, r.blinkOn())
	top := (height-len(lines))/2 + 1
	for i, line := range lines {
		r.chunkWriter.WriteAt(width/2-len([]rune(line))/2+1, top+i, line)
	}
}

func (r *Renderer) blinkOn() bool {
	return BlinkOn(r.clk.Now())
}

// BlinkOn reports the phase of blinking prompts at t.
func BlinkOn(t time.Time) bool {
	return t.UnixMilli()/600%2 == 0
}

const doubleLabel = "DOUBLE"

// HUDText formats the HUD line. Fixed-width fields keep shrinking values
// from leaving stale characters.
func HUDText(h game.HUD) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %-5d ", h.Score)
	if h.Mode == game.ModeTime {
		fmt.Fprintf(&b, "Time: %-3ds ", h.SecondsLeft)
	} else {
		fmt.Fprintf(&b, "Lives: %-*s ", h.MaxLives, strings.Repeat("♥", h.Lives))
	}
	fmt.Fprintf(&b, "High: %-5d x%d", h.HighScore, h.Multiplier)
	if h.Frozen {
		b.WriteString(" FROZEN")
	} else {
		b.WriteString("       ")
	}
	return b.String()
}

var titleArt = []string{
	` _  _   _   _  _ ___    _  _ ___ _  _    _  _   `,
	`| || | /_\ | \| |   \  | \| |_ _| \| |_ | |/_\  `,
	`| __ |/ _ \| .' | |) | | .' || || .' | || / _ \ `,
	`|_||_/_/ \_\_|\_|___/  |_|\_|___|_|\_|\__/_/ \_\`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

var menuControls = []string{
	"1 / 2 / 3  . . .  Difficulty",
	"C / T  . . Classic / Time   ",
	"Mouse  . . . . . . .  Slice ",
	"F / V / O  Fist / Two / OK  ",
	"R  . . . . . . . . . .  Menu",
	"Q  . . . . . . . . . .  Quit",
}

var endReasonText = map[game.EndReason]string{
	game.EndLives: "Out of lives",
	game.EndTime:  "Time's up",
	game.EndBomb:  "You sliced a bomb",
}

func blinking(s string, on bool) string {
	if on {
		return s
	}
	return ""
}

// Overlay returns the centered text block shown over the field in s.State.
// Blinking prompts are present only when blink is set.
func Overlay(s game.Snapshot, blink bool) []string {
	var lines []string
	switch s.State {
	case game.GameStateMenu:
		lines = append(lines, titleArt...)
		lines = append(lines, "",
			fmt.Sprintf("Difficulty: %-6s  Mode: %-7s", strings.ToUpper(s.HUD.Difficulty.String()), strings.ToUpper(s.HUD.Mode.String())),
			fmt.Sprintf("High score: %d", s.HUD.HighScore),
			"")
		lines = append(lines, menuControls...)
		lines = append(lines, "")
		lines = append(lines, blinking(">>  Press ENTER to Start  <<", blink))
	case game.GameStatePaused:
		lines = append(lines, "PAUSED", "", "Two fingers (V) to resume, OK sign (O) for menu")
	case game.GameStateOver:
		lines = append(lines, gameOverArt...)
		lines = append(lines, "", endReasonText[s.End], "",
			fmt.Sprintf("Score: %d   High: %d", s.HUD.Score, s.HUD.HighScore),
			"")
		lines = append(lines, blinking(">>  Press R or show OK sign for menu  <<", blink))
	}
	return lines
}
