package scenery

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/gfx/sprite"
	"github.com/hubastard/skirmish/engine/transform"
)

func TestSpawnFloor(t *testing.T) {
	w := donburi.NewWorld()
	s := Spawn(w, nil)
	entry := w.Entry(s.Floor)

	sp := sprite.Component.Get(entry)
	if sp.Size != (mgl32.Vec2{500, 500}) || sp.Color != colors.Floor {
		t.Errorf("sprite = %+v", sp)
	}
	tr := transform.Component.Get(entry)
	if tr.Translation != (mgl32.Vec3{0, -20, 0}) {
		t.Errorf("translation = %v", tr.Translation)
	}
	// the quad's normal points straight down once laid flat
	if n := tr.Forward(); n.Sub(mgl32.Vec3{0, -1, 0}).Len() > 1e-4 {
		t.Errorf("floor normal = %v, want -Y", n)
	}

	s.Despawn(w)
	if w.Valid(s.Floor) {
		t.Error("floor still alive after Despawn")
	}
	s.Despawn(w)
}
