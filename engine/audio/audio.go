// Package audio plays short synthesized cues for UI feedback.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/hubastard/skirmish/engine/logger"
)

const sampleRate = beep.SampleRate(44100)

type Cue uint8

const (
	CueMove Cue = iota
	CueConfirm
	CueBack
	CueTurn
)

func (c Cue) String() string {
	switch c {
	case CueMove:
		return "move"
	case CueConfirm:
		return "confirm"
	case CueBack:
		return "back"
	case CueTurn:
		return "turn"
	}
	return fmt.Sprintf("Cue(%d)", c)
}

// Player plays cues. Implementations must not block the caller.
type Player interface {
	Play(Cue)
	Close()
}

// NopPlayer discards every cue.
type NopPlayer struct{}

func (NopPlayer) Play(Cue) {}
func (NopPlayer) Close()   {}

type tone struct {
	freq     float64
	duration time.Duration
}

var cues = map[Cue][]tone{
	CueMove:    {{660, 40 * time.Millisecond}},
	CueConfirm: {{660, 50 * time.Millisecond}, {990, 80 * time.Millisecond}},
	CueBack:    {{440, 50 * time.Millisecond}, {330, 80 * time.Millisecond}},
	CueTurn:    {{523.25, 120 * time.Millisecond}},
}

// Speaker plays cues through the system audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewSpeaker opens the audio device. volume is linear, 0 silences.
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(s.mixer)
	logger.Log.WithField("rate", int(sampleRate)).Debug("audio ready")
	return s, nil
}

func (s *Speaker) Play(c Cue) {
	st := Streamer(c, s.volume)
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}

// Streamer builds the finite stream for a cue, or nil for an unknown cue.
func Streamer(c Cue, volume float64) beep.Streamer {
	tones, ok := cues[c]
	if !ok {
		return nil
	}
	seq := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		seq = append(seq, beep.Take(sampleRate.N(t.duration), newSquare(t.freq)))
	}
	if volume <= 0 {
		return &effects.Volume{Streamer: beep.Seq(seq...), Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: beep.Seq(seq...), Base: 2, Volume: math.Log2(volume)}
}

// square is an endless soft square wave.
type square struct {
	step  float64
	phase float64
}

const squareAmp = 0.2

func newSquare(freq float64) *square {
	return &square{step: freq / float64(sampleRate)}
}

func (g *square) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := squareAmp
		if g.phase >= 0.5 {
			v = -squareAmp
		}
		samples[i][0], samples[i][1] = v, v
		g.phase += g.step
		g.phase -= math.Floor(g.phase)
	}
	return len(samples), true
}

func (g *square) Err() error { return nil }
