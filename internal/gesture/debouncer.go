package gesture

import "time"

// Phase is the debouncer's state.
type Phase int

const (
	PhaseIdle      Phase = iota // No candidate
	PhaseCandidate              // Action seen, waiting for the hold time
	PhaseCooling                // Action applied, input suppressed until Until
)

// State is the full debouncer state.
type State struct {
	Phase     Phase
	Candidate Action    // Valid in PhaseCandidate
	Since     time.Time // When the candidate was first seen
	Until     time.Time // End of the cooldown in PhaseCooling
}

// Timing configures the hold and cooldown durations.
type Timing struct {
	Hold     time.Duration
	Cooldown time.Duration
}

// Next advances the debouncer by one frame. It returns the new state and the
// action to apply this frame (ActionNone most of the time). An action is
// emitted once it has been held for t.Hold; afterwards everything is
// suppressed for t.Cooldown.
func Next(s State, a Action, now time.Time, t Timing) (State, Action) {
	if s.Phase == PhaseCooling {
		if now.Before(s.Until) {
			return State{Phase: PhaseCooling, Until: s.Until}, ActionNone
		}
		s = State{}
	}

	if a == ActionNone {
		return State{}, ActionNone
	}

	if s.Phase != PhaseCandidate || s.Candidate != a {
		return State{Phase: PhaseCandidate, Candidate: a, Since: now}, ActionNone
	}

	if now.Sub(s.Since) >= t.Hold {
		return State{Phase: PhaseCooling, Until: now.Add(t.Cooldown)}, a
	}
	return s, ActionNone
}

// Debouncer holds a State between frames.
type Debouncer struct {
	state  State
	timing Timing
}

// NewDebouncer creates an idle debouncer.
func NewDebouncer(t Timing) *Debouncer {
	return &Debouncer{timing: t}
}

// Update classifies the frame's finger vector (nil when no hand is visible)
// and returns the debounced action.
func (d *Debouncer) Update(now time.Time, f *Fingers) Action {
	var out Action
	d.state, out = Next(d.state, Classify(f), now, d.timing)
	return out
}

// State returns the current debouncer state.
func (d *Debouncer) State() State {
	return d.state
}

// Reset returns the debouncer to idle, dropping any cooldown.
func (d *Debouncer) Reset() {
	d.state = State{}
}
