package battle

import "github.com/yohamta/donburi"

// RandSource draws a uniform integer in [0, n). *math/rand/v2.Rand
// satisfies it.
type RandSource interface {
	IntN(n int) int
}

type Candidate struct {
	Entity donburi.Entity
	Weight uint32
}

// BuildTurnOrder samples candidates without replacement, each draw picking a
// candidate with probability proportional to its weight. The last remaining
// candidate is appended without a draw. Once the remaining weight is zero the
// rest follow in their given order.
func BuildTurnOrder(cands []Candidate, rng RandSource) []donburi.Entity {
	remaining := make([]Candidate, len(cands))
	copy(remaining, cands)

	var total int
	for _, c := range remaining {
		total += int(c.Weight)
	}

	order := make([]donburi.Entity, 0, len(cands))
	for len(remaining) > 0 {
		if len(remaining) == 1 || total <= 0 {
			for _, c := range remaining {
				order = append(order, c.Entity)
			}
			break
		}
		roll := rng.IntN(total)
		pick, acc := len(remaining)-1, 0
		for i, c := range remaining {
			acc += int(c.Weight)
			if acc > roll {
				pick = i
				break
			}
		}
		order = append(order, remaining[pick].Entity)
		total -= int(remaining[pick].Weight)
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return order
}
