package battle

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/game/characters"
)

var (
	ErrNoTargets     = errors.New("battle: no eligible targets")
	ErrRosterOverlap = errors.New("battle: entity listed more than once in the roster")
)

// Roster splits the participants into the two sides. Order is spawn order
// and drives placement on the field.
type Roster struct {
	Friendly []donburi.Entity
	Enemy    []donburi.Entity
}

func (r *Roster) IsFriendly(e donburi.Entity) bool { return slices.Contains(r.Friendly, e) }

func (r *Roster) All() []donburi.Entity {
	return append(slices.Clone(r.Friendly), r.Enemy...)
}

func (r *Roster) Len() int { return len(r.Friendly) + len(r.Enemy) }

// Validate checks that every participant appears exactly once across both
// sides.
func (r *Roster) Validate() error {
	seen := make(map[donburi.Entity]string, r.Len())
	check := func(side string, list []donburi.Entity) error {
		for _, e := range list {
			if prev, ok := seen[e]; ok {
				return fmt.Errorf("entity %v on %s and %s: %w", e, prev, side, ErrRosterOverlap)
			}
			seen[e] = side
		}
		return nil
	}
	if err := check("friendly", r.Friendly); err != nil {
		return err
	}
	return check("enemy", r.Enemy)
}

// EligibleTargets lists who caster may aim an action with policy p at.
// Friendly and Enemy are relative to the caster's side.
func EligibleTargets(r *Roster, caster donburi.Entity, p characters.TargetPolicy) ([]donburi.Entity, error) {
	own, other := r.Enemy, r.Friendly
	if r.IsFriendly(caster) {
		own, other = r.Friendly, r.Enemy
	}

	var out []donburi.Entity
	switch p.Kind {
	case characters.TargetNone:
		return nil, nil
	case characters.TargetCaster:
		return []donburi.Entity{caster}, nil
	case characters.TargetAny:
		out = without(r.All(), caster, p.CanTargetCaster)
	case characters.TargetFriendly:
		out = without(slices.Clone(own), caster, p.CanTargetCaster)
	case characters.TargetEnemy:
		out = slices.Clone(other)
	}
	if len(out) == 0 {
		return nil, ErrNoTargets
	}
	return out, nil
}

func without(list []donburi.Entity, e donburi.Entity, keep bool) []donburi.Entity {
	if keep {
		return list
	}
	return slices.DeleteFunc(list, func(x donburi.Entity) bool { return x == e })
}
