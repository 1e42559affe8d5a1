package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/handninja/internal/game"
)

// Cue is a sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueStart
	CueSlice
	CuePowerUp
	CueBomb
	CueMiss
	CueGameOver
	CueHighScore
)

var eventCues = map[game.EventKind]Cue{
	game.EventStart:     CueStart,
	game.EventSlice:     CueSlice,
	game.EventPowerUp:   CuePowerUp,
	game.EventBomb:      CueBomb,
	game.EventMiss:      CueMiss,
	game.EventGameOver:  CueGameOver,
	game.EventHighScore: CueHighScore,
}

// CueFor returns the cue played for an event kind, or CueNone.
func CueFor(k game.EventKind) Cue {
	return eventCues[k]
}

// Cues maps a tick's events to cues. Repeats within one tick collapse into
// a single cue, and a game over silences the miss that caused it.
func Cues(events []game.Event) []Cue {
	var out []Cue
	seen := make(map[Cue]bool)
	over := false
	for _, e := range events {
		if e.Kind == game.EventGameOver {
			over = true
		}
	}
	for _, e := range events {
		c := CueFor(e.Kind)
		if c == CueNone || seen[c] {
			continue
		}
		if over && c == CueMiss {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// build synthesizes the streamer for c.
func build(c Cue, rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch c {
	case CueStart:
		return beep.Seq(
			NewEnvelope(NewTone(523.25, 90*ms, WaveSquare, rate), 90*ms, 5*ms, 30*ms, rate),
			NewEnvelope(NewTone(659.25, 90*ms, WaveSquare, rate), 90*ms, 5*ms, 30*ms, rate),
			NewEnvelope(NewTone(783.99, 160*ms, WaveSquare, rate), 160*ms, 5*ms, 80*ms, rate),
		)
	case CueSlice:
		return beep.Mix(
			withVolume(NewEnvelope(NewTone(0, 120*ms, WaveNoise, rate), 120*ms, 2*ms, 100*ms, rate), 0.6),
			withVolume(NewEnvelope(NewSweep(1800, 600, 120*ms, WaveSine, rate), 120*ms, 2*ms, 90*ms, rate), 0.4),
		)
	case CuePowerUp:
		return NewEnvelope(NewSweep(440, 1320, 250*ms, WaveSine, rate), 250*ms, 10*ms, 80*ms, rate)
	case CueBomb:
		return beep.Mix(
			NewEnvelope(NewTone(0, 600*ms, WaveNoise, rate), 600*ms, 5*ms, 550*ms, rate),
			withVolume(NewEnvelope(NewSweep(90, 40, 600*ms, WaveSine, rate), 600*ms, 5*ms, 500*ms, rate), 0.8),
		)
	case CueMiss:
		return NewEnvelope(NewSweep(300, 150, 200*ms, WaveSaw, rate), 200*ms, 5*ms, 120*ms, rate)
	case CueGameOver:
		return beep.Seq(
			NewEnvelope(NewTone(392, 180*ms, WaveSquare, rate), 180*ms, 5*ms, 60*ms, rate),
			NewEnvelope(NewTone(311.13, 180*ms, WaveSquare, rate), 180*ms, 5*ms, 60*ms, rate),
			NewEnvelope(NewTone(261.63, 400*ms, WaveSquare, rate), 400*ms, 5*ms, 300*ms, rate),
		)
	case CueHighScore:
		return beep.Seq(
			NewEnvelope(NewTone(987.77, 80*ms, WaveSquare, rate), 80*ms, 3*ms, 40*ms, rate),
			NewEnvelope(NewTone(1318.51, 300*ms, WaveSquare, rate), 300*ms, 3*ms, 250*ms, rate),
		)
	}
	return nil
}
