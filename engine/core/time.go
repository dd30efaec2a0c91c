package core

import "time"

// Time holds frame timing. Delta is the time since the previous frame.
type Time struct {
	Delta   time.Duration
	Elapsed time.Duration
	Frame   uint64

	last time.Time
}

func (t *Time) tick(now time.Time) {
	if !t.last.IsZero() {
		t.Delta = now.Sub(t.last)
		t.Elapsed += t.Delta
	}
	t.last = now
	t.Frame++
}

// DeltaSeconds returns Delta as float32 seconds.
func (t *Time) DeltaSeconds() float32 { return float32(t.Delta.Seconds()) }
