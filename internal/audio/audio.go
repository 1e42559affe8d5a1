// Package audio plays synthesized sound cues for game events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/handninja/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Sink turns game events into sounds. The zero value is silent.
type Sink struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	play   func(beep.Streamer)
	closer func()
	played int
}

// Open initializes the speaker and returns a sink feeding it through a mixer.
func Open(volume float64) (*Sink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	return newSink(sampleRate, volume, func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}, func() {
		speaker.Lock()
		mixer.Clear()
		speaker.Unlock()
		speaker.Close()
	}), nil
}

func newSink(rate beep.SampleRate, volume float64, play func(beep.Streamer), closer func()) *Sink {
	return &Sink{rate: rate, volume: volume, play: play, closer: closer}
}

// Handle plays the cues for one tick of events.
func (s *Sink) Handle(events []game.Event) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.play == nil || s.volume <= 0 {
		return
	}
	for _, c := range Cues(events) {
		st := build(c, s.rate)
		if st == nil {
			continue
		}
		s.play(withVolume(st, s.volume))
		s.played++
	}
}

// Played returns the number of cues started.
func (s *Sink) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// Close stops playback and releases the speaker.
func (s *Sink) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return
	}
	s.closer()
	s.closer = nil
	s.play = nil
}
