package characters

import "fmt"

type ActionID uint32

// TargetKind is who an action may be aimed at.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetAny
	TargetCaster
	TargetFriendly
	TargetEnemy
)

func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "None"
	case TargetAny:
		return "Any"
	case TargetCaster:
		return "Caster"
	case TargetFriendly:
		return "Friendly"
	case TargetEnemy:
		return "Enemy"
	}
	return fmt.Sprintf("TargetKind(%d)", k)
}

// TargetPolicy describes who an action may target. CanTargetCaster only
// matters for TargetAny and TargetFriendly.
type TargetPolicy struct {
	Kind            TargetKind
	CanTargetCaster bool
}

// NeedsTarget reports whether choosing the action opens a target menu.
func (p TargetPolicy) NeedsTarget() bool {
	return p.Kind != TargetNone && p.Kind != TargetCaster
}

type ResolutionKind uint8

const (
	ResolveNone ResolutionKind = iota
	ResolveDamage
	ResolveHeal
)

// Resolution is what an action does once it lands. Effects are not applied
// yet; the battle flow only records the choice.
type Resolution struct {
	Kind   ResolutionKind
	Amount int
}

type Action struct {
	Name       string
	Target     TargetPolicy
	Resolution Resolution
}

// ActionRepo maps action ids to their definitions. Ids are handed out in
// insertion order and never reused.
type ActionRepo struct {
	actions []Action
	byName  map[string]ActionID
}

func NewActionRepo() *ActionRepo {
	r := &ActionRepo{byName: map[string]ActionID{}}
	r.Add(Action{Name: "Idle", Target: TargetPolicy{Kind: TargetNone}})
	r.Add(Action{Name: "Defend", Target: TargetPolicy{Kind: TargetCaster}})
	r.Add(Action{
		Name:       "Attack",
		Target:     TargetPolicy{Kind: TargetEnemy},
		Resolution: Resolution{Kind: ResolveDamage, Amount: 10},
	})
	r.Add(Action{
		Name:       "Heal",
		Target:     TargetPolicy{Kind: TargetFriendly, CanTargetCaster: true},
		Resolution: Resolution{Kind: ResolveHeal, Amount: 8},
	})
	r.Add(Action{Name: "Inspect", Target: TargetPolicy{Kind: TargetAny}})
	return r
}

// Add registers an action. A later action with the same name shadows the
// earlier one for FindByName but both ids stay valid.
func (r *ActionRepo) Add(a Action) ActionID {
	id := ActionID(len(r.actions))
	r.actions = append(r.actions, a)
	r.byName[a.Name] = id
	return id
}

func (r *ActionRepo) Get(id ActionID) (Action, bool) {
	if int(id) >= len(r.actions) {
		return Action{}, false
	}
	return r.actions[id], true
}

// MustGet is Get for ids that were validated at spawn time.
func (r *ActionRepo) MustGet(id ActionID) Action {
	a, ok := r.Get(id)
	if !ok {
		panic(fmt.Sprintf("characters: action %d not in repository", id))
	}
	return a
}

func (r *ActionRepo) FindByName(name string) (ActionID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

func (r *ActionRepo) Len() int { return len(r.actions) }
