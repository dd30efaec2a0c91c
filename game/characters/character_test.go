package characters

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/gfx/sprite"
	"github.com/hubastard/skirmish/engine/logger"
	"github.com/hubastard/skirmish/engine/transform"
)

func init() { logger.Discard() }

func TestActionRepoDefaults(t *testing.T) {
	r := NewActionRepo()
	tests := []struct {
		name   string
		kind   TargetKind
		caster bool
		needs  bool
	}{
		{"Idle", TargetNone, false, false},
		{"Defend", TargetCaster, false, false},
		{"Attack", TargetEnemy, false, true},
		{"Heal", TargetFriendly, true, true},
		{"Inspect", TargetAny, false, true},
	}
	for _, tt := range tests {
		id, ok := r.FindByName(tt.name)
		if !ok {
			t.Fatalf("FindByName(%q) missing", tt.name)
		}
		a := r.MustGet(id)
		if a.Name != tt.name || a.Target.Kind != tt.kind || a.Target.CanTargetCaster != tt.caster {
			t.Errorf("%s: got %+v", tt.name, a)
		}
		if got := a.Target.NeedsTarget(); got != tt.needs {
			t.Errorf("%s: NeedsTarget() = %v, want %v", tt.name, got, tt.needs)
		}
	}
	if _, ok := r.Get(ActionID(r.Len())); ok {
		t.Error("Get past the end should fail")
	}
}

func TestSpawnValidatesActions(t *testing.T) {
	w := donburi.NewWorld()
	s := NewSpawner(NewActionRepo(), nil)

	if _, err := s.Spawn(w, Desc{Name: "Nobody"}); !errors.Is(err, ErrNoActions) {
		t.Errorf("no actions: err = %v, want ErrNoActions", err)
	}
	if _, err := s.Spawn(w, Desc{Name: "Wizard", Actions: []string{"Idle", "Fireball"}}); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action: err = %v, want ErrUnknownAction", err)
	}
	if w.Len() != 0 {
		t.Errorf("failed spawns left %d entities", w.Len())
	}

	e, err := s.Spawn(w, Desc{Name: "Knight", PlayerControlled: true, Speed: 7, Actions: []string{"Attack", "Idle"}})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	entry := w.Entry(e)
	ch := Component.Get(entry)
	if ch.Name != "Knight" || ch.Stats.Speed != 7 || !ch.PlayerControlled || len(ch.Actions) != 2 {
		t.Errorf("character = %+v", ch)
	}
	if got := s.Actions.MustGet(ch.Actions[0]).Name; got != "Attack" {
		t.Errorf("first action = %q, want Attack", got)
	}
	if sp := sprite.Component.Get(entry); sp.Color != colors.White {
		t.Errorf("default colour = %v, want white", sp.Color)
	}
}

func TestUpdateFacing(t *testing.T) {
	w := donburi.NewWorld()
	s := NewSpawner(NewActionRepo(), nil)
	red := colors.Color{1, 0, 0, 1}
	e, err := s.Spawn(w, Desc{Name: "Archer", Actions: []string{"Idle"}, Color: red})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	entry := w.Entry(e)

	// identity rotation faces +Z
	Update(w, mgl32.Vec3{0, 0, 100})
	if !Component.Get(entry).FrontFacing {
		t.Error("camera in front: FrontFacing = false")
	}
	if got := sprite.Component.Get(entry).Color; got != red {
		t.Errorf("front colour = %v, want %v", got, red)
	}

	Update(w, mgl32.Vec3{0, 0, -100})
	if Component.Get(entry).FrontFacing {
		t.Error("camera behind: FrontFacing = true")
	}
	want := colors.Color{0.5, 0, 0, 1}
	if got := sprite.Component.Get(entry).Color; got != want {
		t.Errorf("back colour = %v, want %v", got, want)
	}

	tr := transform.Component.Get(entry)
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(180), mgl32.Vec3{0, 1, 0})
	Update(w, mgl32.Vec3{0, 0, -100})
	if !Component.Get(entry).FrontFacing {
		t.Error("turned around: FrontFacing = false")
	}
}
