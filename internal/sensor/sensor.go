// Package sensor defines the hand-tracking input boundary: a source of
// per-frame fingertip positions and finger-extension vectors.
package sensor

import (
	"errors"
	"math"

	"github.com/tomz197/handninja/internal/gesture"
	"github.com/tomz197/handninja/internal/physics"
)

var (
	// ErrNoFrame means no new frame was available this tick. Callers treat it
	// as "no hand" rather than a failure.
	ErrNoFrame = errors.New("sensor: no frame")
	// ErrClosed is returned once the sensor has been shut down.
	ErrClosed = errors.New("sensor: closed")
	// ErrUnavailable means the capture device could not be opened.
	ErrUnavailable = errors.New("sensor: unavailable")
)

// Sample is one frame of hand tracking in the sensor's native resolution.
type Sample struct {
	Tip     *physics.Point   // Index fingertip; nil when no hand
	Fingers *gesture.Fingers // Extension vector; nil when no hand
	Width   float64          // Native frame width (0 = tracking default)
	Height  float64          // Native frame height (0 = tracking default)
}

// HasHand reports whether the sample carries any hand data.
func (s Sample) HasHand() bool {
	return s.Tip != nil || s.Fingers != nil
}

// Sensor is polled once per tick.
type Sensor interface {
	Read() (Sample, error)
	Close() error
}

// Scaler maps native sensor coordinates into field coordinates.
type Scaler struct {
	FieldW, FieldH float64
	TrackW, TrackH float64 // Used when a sample does not report its size
}

// Scale converts a sample's fingertip to field coordinates.
// It returns nil when the sample has no fingertip or a non-finite one.
func (s Scaler) Scale(sample Sample) *physics.Point {
	if sample.Tip == nil || !finite(sample.Tip.X) || !finite(sample.Tip.Y) {
		return nil
	}
	w, h := sample.Width, sample.Height
	if w <= 0 || h <= 0 || !finite(w) || !finite(h) {
		w, h = s.TrackW, s.TrackH
	}
	if w <= 0 || h <= 0 {
		p := *sample.Tip
		return &p
	}
	return &physics.Point{
		X: sample.Tip.X * s.FieldW / w,
		Y: sample.Tip.Y * s.FieldH / h,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Static is a Sensor that always reports the same sample. It stands in for a
// camera when none is configured.
type Static struct {
	Sample Sample
	closed bool
}

func (s *Static) Read() (Sample, error) {
	if s.closed {
		return Sample{}, ErrClosed
	}
	return s.Sample, nil
}

func (s *Static) Close() error {
	s.closed = true
	return nil
}
