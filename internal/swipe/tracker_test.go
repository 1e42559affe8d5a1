package swipe

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/handninja/internal/physics"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFirstSampleIsIdentity(t *testing.T) {
	tr := NewTracker(0.5, 70, 3)
	s := tr.Update(t0, physics.Point{X: 10, Y: 20})
	if s.Pos != (physics.Point{X: 10, Y: 20}) {
		t.Fatalf("first sample pos = %+v, want raw", s.Pos)
	}
	if s.Speed != 0 || s.Active {
		t.Fatalf("first sample should have no speed, got %+v", s)
	}
}

func TestSmoothingAndSpeed(t *testing.T) {
	tr := NewTracker(0.5, 70, 3)
	tr.Update(t0, physics.Point{X: 0, Y: 0})
	s := tr.Update(t0.Add(100*time.Millisecond), physics.Point{X: 40, Y: 0})

	if s.Pos != (physics.Point{X: 20, Y: 0}) {
		t.Fatalf("smoothed pos = %+v, want {20 0}", s.Pos)
	}
	if math.Abs(s.Speed-200) > 1e-9 {
		t.Fatalf("speed = %f, want 200", s.Speed)
	}
	if !s.Active {
		t.Fatalf("200 u/s should be an active swipe")
	}
}

func TestSlowHoverIsInactive(t *testing.T) {
	tr := NewTracker(1, 70, 3)
	tr.Update(t0, physics.Point{X: 100, Y: 100})
	s := tr.Update(t0.Add(time.Second), physics.Point{X: 110, Y: 100})
	if s.Active {
		t.Fatalf("10 u/s hover should not slice, speed=%f", s.Speed)
	}
}

func TestZeroElapsedDoesNotDivideByZero(t *testing.T) {
	tr := NewTracker(1, 70, 3)
	tr.Update(t0, physics.Point{X: 0, Y: 0})
	s := tr.Update(t0, physics.Point{X: 1, Y: 0})
	if math.IsInf(s.Speed, 0) || math.IsNaN(s.Speed) {
		t.Fatalf("speed not finite: %f", s.Speed)
	}
}

func TestTrailKeepsLastN(t *testing.T) {
	tr := NewTracker(1, 70, 3)
	for i := 0; i < 5; i++ {
		tr.Update(t0.Add(time.Duration(i)*time.Millisecond), physics.Point{X: float64(i)})
	}
	trail := tr.Trail()
	if len(trail) != 3 {
		t.Fatalf("trail length = %d, want 3", len(trail))
	}
	for i, p := range trail {
		if p.X != float64(i+2) {
			t.Errorf("trail[%d].X = %f, want %d", i, p.X, i+2)
		}
	}

	tr.Reset()
	if len(tr.Trail()) != 0 {
		t.Fatalf("trail not cleared by Reset")
	}
	if _, ok := tr.Last(); ok {
		t.Fatalf("Last should be empty after Reset")
	}
}
