package gesture

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		bits [5]int
		want Action
	}{
		{"fist", [5]int{0, 0, 0, 0, 0}, ActionPause},
		{"two", [5]int{0, 1, 1, 0, 0}, ActionResume},
		{"ok", [5]int{1, 1, 0, 0, 1}, ActionMenu},
		{"open hand", [5]int{1, 1, 1, 1, 1}, ActionNone},
		{"index only", [5]int{0, 1, 0, 0, 0}, ActionNone},
		{"three", [5]int{0, 1, 1, 1, 0}, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FromBits(tt.bits)
			if got := Classify(&f); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.bits, got, tt.want)
			}
		})
	}
	if got := Classify(nil); got != ActionNone {
		t.Errorf("Classify(nil) = %v, want none", got)
	}
}

var timing = Timing{Hold: 350 * time.Millisecond, Cooldown: 700 * time.Millisecond}

func TestDebouncerHoldThenCooldown(t *testing.T) {
	d := NewDebouncer(timing)
	base := time.Unix(1000, 0)
	fist := PatternFist

	if got := d.Update(base, &fist); got != ActionNone {
		t.Fatalf("first frame emitted %v", got)
	}
	if got := d.Update(base.Add(200*time.Millisecond), &fist); got != ActionNone {
		t.Fatalf("emitted before hold: %v", got)
	}
	if got := d.Update(base.Add(350*time.Millisecond), &fist); got != ActionPause {
		t.Fatalf("expected pause at hold, got %v", got)
	}
	if d.State().Phase != PhaseCooling {
		t.Fatalf("expected cooling, got %v", d.State().Phase)
	}

	// Suppressed through the whole cooldown, even for a different action.
	two := PatternTwo
	for _, ms := range []int{400, 700, 1049} {
		if got := d.Update(base.Add(time.Duration(ms)*time.Millisecond), &two); got != ActionNone {
			t.Fatalf("emitted %v during cooldown at %dms", got, ms)
		}
	}

	// Cooldown over: a new candidate starts and needs its own hold.
	if got := d.Update(base.Add(1050*time.Millisecond), &two); got != ActionNone {
		t.Fatalf("emitted %v on first frame after cooldown", got)
	}
	if got := d.Update(base.Add(1400*time.Millisecond), &two); got != ActionResume {
		t.Fatalf("expected resume, got %v", got)
	}
}

func TestDebouncerCandidateResets(t *testing.T) {
	d := NewDebouncer(timing)
	base := time.Unix(0, 0)
	fist, two := PatternFist, PatternTwo

	d.Update(base, &fist)
	d.Update(base.Add(300*time.Millisecond), &two)
	if got := d.Update(base.Add(400*time.Millisecond), &two); got != ActionNone {
		t.Fatalf("switching candidate should restart hold, got %v", got)
	}
	if got := d.Update(base.Add(650*time.Millisecond), &two); got != ActionResume {
		t.Fatalf("expected resume after 350ms of two, got %v", got)
	}
}

func TestDebouncerNoHandResets(t *testing.T) {
	d := NewDebouncer(timing)
	base := time.Unix(0, 0)
	fist := PatternFist

	d.Update(base, &fist)
	d.Update(base.Add(200*time.Millisecond), nil)
	if d.State().Phase != PhaseIdle {
		t.Fatalf("expected idle after hand lost, got %v", d.State().Phase)
	}
	d.Update(base.Add(300*time.Millisecond), &fist)
	if got := d.Update(base.Add(400*time.Millisecond), &fist); got != ActionNone {
		t.Fatalf("hold should restart after hand lost, got %v", got)
	}
}

func TestDebouncerUnknownShapeNeverFires(t *testing.T) {
	d := NewDebouncer(timing)
	base := time.Unix(0, 0)
	open := FromBits([5]int{1, 1, 1, 1, 1})
	for i := 0; i < 600; i++ {
		now := base.Add(time.Duration(i) * 16 * time.Millisecond)
		if got := d.Update(now, &open); got != ActionNone {
			t.Fatalf("unrecognized shape emitted %v at frame %d", got, i)
		}
	}
}

func TestNextIsPure(t *testing.T) {
	now := time.Unix(5, 0)
	s := State{Phase: PhaseCandidate, Candidate: ActionMenu, Since: now}
	s2, out := Next(s, ActionMenu, now.Add(timing.Hold), timing)
	if out != ActionMenu {
		t.Fatalf("expected menu, got %v", out)
	}
	if s.Phase != PhaseCandidate {
		t.Fatal("input state mutated")
	}
	if !s2.Until.Equal(now.Add(timing.Hold + timing.Cooldown)) {
		t.Errorf("cooldown until = %v", s2.Until)
	}
}

func TestDebouncerReset(t *testing.T) {
	d := NewDebouncer(timing)
	base := time.Unix(0, 0)
	fist := PatternFist
	d.Update(base, &fist)
	d.Update(base.Add(timing.Hold), &fist)
	d.Reset()
	if d.State() != (State{}) {
		t.Fatalf("reset left %+v", d.State())
	}
}
