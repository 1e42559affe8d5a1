// Package gesture classifies finger-extension vectors and debounces them
// into discrete pause / resume / menu commands.
package gesture

// Finger indexes a Fingers vector.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
)

// Fingers is the per-frame finger-extension vector (true = extended).
type Fingers [5]bool

// Recognized hand shapes.
var (
	PatternFist = Fingers{}                                      // all curled
	PatternTwo  = Fingers{Index: true, Middle: true}             // index + middle
	PatternOK   = Fingers{Thumb: true, Index: true, Pinky: true} // thumb + index + pinky
)

// Action is the coarse intent read from one frame.
type Action int

const (
	ActionNone Action = iota
	ActionPause
	ActionResume
	ActionMenu
)

func (a Action) String() string {
	switch a {
	case ActionPause:
		return "pause"
	case ActionResume:
		return "resume"
	case ActionMenu:
		return "menu"
	default:
		return "none"
	}
}

// Classify maps a finger vector to an action by exact pattern match.
// A nil vector (no hand) or any other shape is ActionNone.
func Classify(f *Fingers) Action {
	if f == nil {
		return ActionNone
	}
	switch *f {
	case PatternFist:
		return ActionPause
	case PatternTwo:
		return ActionResume
	case PatternOK:
		return ActionMenu
	default:
		return ActionNone
	}
}

// FromBits builds a vector from five 0/1 values, thumb first.
// Values other than 0 count as extended.
func FromBits(bits [5]int) Fingers {
	var f Fingers
	for i, b := range bits {
		f[i] = b != 0
	}
	return f
}
