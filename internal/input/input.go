// Package input reads raw terminal bytes into key presses and SGR mouse
// reports, and turns them into game commands and a pointer-driven sensor.
package input

import (
	"bufio"
	"strconv"
)

// Mouse is one SGR mouse report. Col and Row are 1-based terminal cells.
type Mouse struct {
	Col, Row int
	Button   int
	Release  bool
}

// Input represents the current frame's input state.
type Input struct {
	Pressed []byte // Key bytes in arrival order (escape sequences removed)
	Mouse   *Mouse // Last mouse report this frame, nil if none
	Closed  bool   // The underlying reader is gone
}

// Stream delivers input bytes via a channel so reads never block the loop.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence carried to the next read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 1024)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	carried := len(s.pending)
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > 0 {
		switch {
		case len(buf) > carried && !s.closed:
			s.pending = append([]byte(nil), rest...)
		case len(rest) == 1:
			// Nothing followed a carried ESC: it was the Escape key.
			in.Pressed = append(in.Pressed, rest[0])
		}
	}
	in.Closed = s.closed
	return in
}

// Parse splits raw terminal bytes into key presses and mouse reports.
// A trailing incomplete escape sequence (or lone ESC) is returned as rest.
func Parse(buf []byte) (in Input, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			in.Pressed = append(in.Pressed, b)
			continue
		}

		// ESC at the end may start a sequence split across reads.
		if i+1 >= len(buf) {
			return in, buf[i:]
		}
		if buf[i+1] != '[' {
			in.Pressed = append(in.Pressed, b)
			continue
		}
		if i+2 >= len(buf) {
			return in, buf[i:]
		}

		switch buf[i+2] {
		case 'A', 'B', 'C', 'D': // Arrow keys, unused
			i += 2
		case '<':
			m, n, ok := parseSGRMouse(buf[i+3:])
			if n < 0 {
				return in, buf[i:]
			}
			if ok {
				in.Mouse = &m
			}
			i += 2 + n
		default:
			// Unknown CSI: skip to its final byte.
			j := i + 2
			for j < len(buf) && (buf[j] < 0x40 || buf[j] > 0x7e) {
				j++
			}
			if j >= len(buf) {
				return in, buf[i:]
			}
			i = j
		}
	}
	return in, nil
}

// parseSGRMouse parses "b;x;yM" or "b;x;ym" (after ESC[<). It returns the
// bytes consumed, or n < 0 if the sequence is incomplete.
func parseSGRMouse(buf []byte) (m Mouse, n int, ok bool) {
	var fields [3]int
	field, start := 0, 0
	for j, b := range buf {
		switch {
		case b >= '0' && b <= '9':
			continue
		case b == ';' && field < 2:
			v, err := strconv.Atoi(string(buf[start:j]))
			if err != nil {
				return Mouse{}, j + 1, false
			}
			fields[field] = v
			field++
			start = j + 1
		case (b == 'M' || b == 'm') && field == 2:
			v, err := strconv.Atoi(string(buf[start:j]))
			if err != nil {
				return Mouse{}, j + 1, false
			}
			fields[2] = v
			return Mouse{Button: fields[0], Col: fields[1], Row: fields[2], Release: b == 'm'}, j + 1, true
		default:
			return Mouse{}, j + 1, false
		}
	}
	return Mouse{}, -1, false
}
