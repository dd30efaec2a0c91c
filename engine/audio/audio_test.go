package audio

import "testing"

func drain(t *testing.T, c Cue, volume float64) (n int, peak float64) {
	t.Helper()
	st := Streamer(c, volume)
	if st == nil {
		t.Fatalf("Streamer(%v) = nil", c)
	}
	buf := make([][2]float64, 512)
	for {
		k, ok := st.Stream(buf)
		for _, s := range buf[:k] {
			peak = max(peak, s[0], -s[0])
		}
		n += k
		if !ok {
			return n, peak
		}
	}
}

func TestCueLength(t *testing.T) {
	for c, tones := range cues {
		var want int
		for _, tn := range tones {
			want += sampleRate.N(tn.duration)
		}
		n, _ := drain(t, c, 1)
		if n != want {
			t.Errorf("%v: streamed %d samples, want %d", c, n, want)
		}
	}
}

func TestCueVolume(t *testing.T) {
	_, full := drain(t, CueMove, 1)
	if full < squareAmp*0.99 || full > squareAmp*1.01 {
		t.Errorf("full volume peak = %f, want %f", full, squareAmp)
	}
	_, half := drain(t, CueMove, 0.5)
	if half > full*0.51 {
		t.Errorf("half volume peak = %f, full = %f", half, full)
	}
	if _, silent := drain(t, CueMove, 0); silent != 0 {
		t.Errorf("silent peak = %f, want 0", silent)
	}
}

func TestUnknownCue(t *testing.T) {
	if Streamer(Cue(99), 1) != nil {
		t.Error("unknown cue should have no streamer")
	}
	if got := Cue(99).String(); got != "Cue(99)" {
		t.Errorf("String() = %q", got)
	}
}
