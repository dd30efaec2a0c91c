package battle

import (
	"math/rand/v2"
	"testing"

	"github.com/yohamta/donburi"
)

// scriptedRand replays rolls and records every bound it was asked for.
type scriptedRand struct {
	rolls  []int
	bounds []int
}

func (r *scriptedRand) IntN(n int) int {
	r.bounds = append(r.bounds, n)
	if len(r.rolls) == 0 {
		return 0
	}
	v := r.rolls[0]
	r.rolls = r.rolls[1:]
	return v
}

func candidates(weights ...uint32) []Candidate {
	out := make([]Candidate, len(weights))
	for i, w := range weights {
		out[i] = Candidate{Entity: donburi.Entity(i + 1), Weight: w}
	}
	return out
}

func TestTurnOrderIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	cands := candidates(3, 1, 4, 1, 5)
	for trial := 0; trial < 50; trial++ {
		order := BuildTurnOrder(cands, rng)
		if len(order) != len(cands) {
			t.Fatalf("len = %d, want %d", len(order), len(cands))
		}
		seen := map[donburi.Entity]bool{}
		for _, e := range order {
			if seen[e] {
				t.Fatalf("entity %v appears twice in %v", e, order)
			}
			seen[e] = true
		}
	}
}

func TestTurnOrderRollMapping(t *testing.T) {
	cands := candidates(1, 2, 3)
	tests := []struct {
		roll int
		want donburi.Entity
	}{
		{0, 1},
		{1, 2},
		{2, 2},
		{3, 3},
		{5, 3},
	}
	for _, tt := range tests {
		rng := &scriptedRand{rolls: []int{tt.roll}}
		order := BuildTurnOrder(cands, rng)
		if order[0] != tt.want {
			t.Errorf("roll %d: first = %v, want %v", tt.roll, order[0], tt.want)
		}
		if rng.bounds[0] != 6 {
			t.Errorf("roll %d: first bound = %d, want 6", tt.roll, rng.bounds[0])
		}
	}
}

func TestTurnOrderRemovesPickedWeight(t *testing.T) {
	rng := &scriptedRand{rolls: []int{3, 0}}
	order := BuildTurnOrder(candidates(1, 2, 3), rng)
	want := []donburi.Entity{3, 1, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	// the last candidate is appended without a draw
	if len(rng.bounds) != 2 || rng.bounds[0] != 6 || rng.bounds[1] != 3 {
		t.Errorf("bounds = %v, want [6 3]", rng.bounds)
	}
}

func TestTurnOrderZeroWeight(t *testing.T) {
	rng := &scriptedRand{rolls: []int{9}}
	order := BuildTurnOrder(candidates(10, 0), rng)
	if order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
	if len(rng.bounds) != 1 {
		t.Errorf("draws = %d, want 1", len(rng.bounds))
	}

	rng = &scriptedRand{}
	order = BuildTurnOrder(candidates(0, 0, 0), rng)
	if len(order) != 3 || order[0] != 1 || order[2] != 3 {
		t.Errorf("all-zero order = %v, want input order", order)
	}
	if len(rng.bounds) != 0 {
		t.Errorf("all-zero weights drew %d times", len(rng.bounds))
	}
}

func TestTurnOrderSingleCandidate(t *testing.T) {
	rng := &scriptedRand{}
	order := BuildTurnOrder(candidates(7), rng)
	if len(order) != 1 || order[0] != 1 {
		t.Errorf("order = %v, want [1]", order)
	}
	if len(rng.bounds) != 0 {
		t.Errorf("single candidate drew %d times", len(rng.bounds))
	}
	if got := BuildTurnOrder(nil, rng); len(got) != 0 {
		t.Errorf("empty roster order = %v", got)
	}
}

func TestTurnOrderFavoursSpeed(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	cands := candidates(9, 1)
	first := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		if BuildTurnOrder(cands, rng)[0] == 1 {
			first++
		}
	}
	if first < 800 || first == trials {
		t.Errorf("fast candidate went first %d/%d times, want about 900", first, trials)
	}
}

func TestTurnOrderKeepsInput(t *testing.T) {
	cands := candidates(1, 2, 3)
	BuildTurnOrder(cands, &scriptedRand{rolls: []int{5, 0}})
	for i, c := range cands {
		if c.Entity != donburi.Entity(i+1) {
			t.Fatalf("input mutated: %v", cands)
		}
	}
}
