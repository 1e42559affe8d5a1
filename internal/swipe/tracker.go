// Package swipe turns raw fingertip samples into a smoothed position,
// an instantaneous speed and a short display trail.
package swipe

import (
	"time"

	"github.com/tomz197/handninja/internal/physics"
)

// minElapsed floors the speed divisor so back-to-back samples don't divide by zero.
const minElapsed = time.Microsecond

// Sample is the tracker output for one fingertip reading.
type Sample struct {
	Pos    physics.Point // Smoothed position
	Speed  float64       // Field units per second since the previous sample
	Active bool          // Fast enough to slice
}

// Tracker smooths fingertip positions and measures swipe speed.
type Tracker struct {
	alpha    float64
	minSpeed float64
	trailLen int

	last     physics.Point
	lastTime time.Time
	hasLast  bool
	trail    []physics.Point // Oldest first, at most trailLen points
}

// NewTracker creates a tracker with smoothing factor alpha, the minimum speed
// a swipe needs to slice, and the number of trail points kept for display.
func NewTracker(alpha, minSpeed float64, trailLen int) *Tracker {
	if trailLen < 0 {
		trailLen = 0
	}
	return &Tracker{
		alpha:    alpha,
		minSpeed: minSpeed,
		trailLen: trailLen,
		trail:    make([]physics.Point, 0, trailLen),
	}
}

// Update feeds a raw fingertip position observed at now.
func (t *Tracker) Update(now time.Time, raw physics.Point) Sample {
	pos := raw
	speed := 0.0
	if t.hasLast {
		pos = t.last.Lerp(raw, t.alpha)
		elapsed := now.Sub(t.lastTime)
		if elapsed < minElapsed {
			elapsed = minElapsed
		}
		speed = pos.Dist(t.last) / elapsed.Seconds()
	}

	t.last = pos
	t.lastTime = now
	t.hasLast = true
	t.push(pos)

	return Sample{
		Pos:    pos,
		Speed:  speed,
		Active: speed > 0 && speed >= t.minSpeed,
	}
}

func (t *Tracker) push(p physics.Point) {
	if t.trailLen == 0 {
		return
	}
	if len(t.trail) == t.trailLen {
		copy(t.trail, t.trail[1:])
		t.trail = t.trail[:len(t.trail)-1]
	}
	t.trail = append(t.trail, p)
}

// Trail returns a copy of the recent smoothed points, oldest first.
func (t *Tracker) Trail() []physics.Point {
	out := make([]physics.Point, len(t.trail))
	copy(out, t.trail)
	return out
}

// Last returns the last smoothed position, if any sample was seen.
func (t *Tracker) Last() (physics.Point, bool) {
	return t.last, t.hasLast
}

// Reset forgets the previous sample and clears the trail.
func (t *Tracker) Reset() {
	t.hasLast = false
	t.last = physics.Point{}
	t.lastTime = time.Time{}
	t.trail = t.trail[:0]
}
