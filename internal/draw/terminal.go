package draw

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). Use WriteAt and WriteColored to accumulate,
// then Flush to write to the underlying writer. Implements io.Writer for Canvas.Render.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all MoveCursor coordinates (for canvas centering).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based
// canvas coordinates; offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer for use with Canvas.Render and other writers.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteAt writes a string at a specific position. col and row are 1-based canvas coordinates; offset is applied automatically.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteColored writes s at a position in color c, then resets attributes.
func (cw *ChunkWriter) WriteColored(col, row int, s string, c Color) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(c.Foreground())
	cw.buf.WriteString(s)
	cw.buf.WriteString(ColorReset)
}

// Pending returns the number of buffered bytes not yet flushed.
func (cw *ChunkWriter) Pending() int {
	return cw.buf.Len()
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer. Uses the same chunk size as Canvas.Render.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Terminal control sequences.
const (
	clearScreen = "\033[H\033[2J"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	enterAltScr = "\033[?1049h"
	exitAltScr  = "\033[?1049l"
	mouseOn     = "\033[?1003h\033[?1006h" // Any-motion tracking, SGR encoding
	mouseOff    = "\033[?1006l\033[?1003l"
	ColorReset  = "\033[0m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearScreen)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, hideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, showCursor)
}

// EnterAltScreen switches to the alternate screen buffer.
func EnterAltScreen(w io.Writer) {
	io.WriteString(w, enterAltScr)
}

// ExitAltScreen restores the main screen buffer.
func ExitAltScreen(w io.Writer) {
	io.WriteString(w, exitAltScr)
}

// EnableMouse turns on any-motion mouse reporting in SGR format, so the
// pointer can stand in for a tracked fingertip.
func EnableMouse(w io.Writer) {
	io.WriteString(w, mouseOn)
}

// DisableMouse turns mouse reporting off.
func DisableMouse(w io.Writer) {
	io.WriteString(w, mouseOff)
}

func cursor(col, row int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// Color is a palette index. ColorNone is transparent.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorOrange
	ColorPink
)

// 256-color palette codes.
var paletteCodes = [...]int{
	ColorRed:     196,
	ColorGreen:   46,
	ColorYellow:  226,
	ColorBlue:    33,
	ColorMagenta: 201,
	ColorCyan:    51,
	ColorWhite:   231,
	ColorGray:    244,
	ColorOrange:  208,
	ColorPink:    213,
}

// Palette returns the 256-color index of c, or -1 for ColorNone.
func (c Color) Palette() int {
	if c == ColorNone || int(c) >= len(paletteCodes) {
		return -1
	}
	return paletteCodes[c]
}

// Foreground returns the SGR sequence selecting c as the text color.
func (c Color) Foreground() string {
	if c.Palette() < 0 {
		return ""
	}
	return "\033[38;5;" + strconv.Itoa(c.Palette()) + "m"
}

// Background returns the SGR sequence selecting c as the cell background.
func (c Color) Background() string {
	if c.Palette() < 0 {
		return ""
	}
	return "\033[48;5;" + strconv.Itoa(c.Palette()) + "m"
}

// Layout is the terminal area a field is drawn into.
type Layout struct {
	Width     int // Columns
	Height    int // Rows
	OffsetCol int // 0-based columns skipped on the left
	OffsetRow int // 0-based rows skipped on top
}

// Fit returns the largest centered area of a termWidth x termHeight terminal
// that shows a field with the given width/height aspect ratio undistorted.
// Rows count as two pixels because of half-block rendering.
func Fit(termWidth, termHeight int, aspect float64) Layout {
	if termWidth <= 0 || termHeight <= 0 || aspect <= 0 {
		return Layout{}
	}
	width := termWidth
	height := int(math.Round(float64(width) / aspect / 2))
	if height > termHeight {
		height = termHeight
		width = int(math.Round(float64(height) * 2 * aspect))
		if width > termWidth {
			width = termWidth
		}
	}
	return Layout{
		Width:     width,
		Height:    height,
		OffsetCol: (termWidth - width) / 2,
		OffsetRow: (termHeight - height) / 2,
	}
}

// ToCell maps a 1-based terminal cell to the center of that cell in the
// layout's own coordinates (columns, rows), and reports whether the cell is
// inside the layout.
func (l Layout) ToCell(col, row int) (x, y float64, ok bool) {
	x = float64(col-l.OffsetCol) - 0.5
	y = float64(row-l.OffsetRow) - 0.5
	ok = x >= 0 && y >= 0 && x < float64(l.Width) && y < float64(l.Height)
	return x, y, ok
}
