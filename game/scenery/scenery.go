// Package scenery spawns the static backdrop of the battlefield.
package scenery

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/gfx/sprite"
	"github.com/hubastard/skirmish/engine/transform"
)

const (
	FloorSize   = 500
	FloorHeight = -20
)

type Scenery struct {
	Floor donburi.Entity
}

// Spawn lays a grey floor quad flat under the battlefield. A nil texture
// draws with the default white texture.
func Spawn(w donburi.World, tex *sprite.LoadedTexture) Scenery {
	floor := w.Create(transform.Component, sprite.Component)
	entry := w.Entry(floor)
	tr := transform.FromTranslation(mgl32.Vec3{0, FloorHeight, 0}).
		WithRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0}))
	transform.Component.SetValue(entry, tr)
	sprite.Component.SetValue(entry, sprite.New(tex, FloorSize, FloorSize, colors.Floor))
	return Scenery{Floor: floor}
}

func (s Scenery) Despawn(w donburi.World) {
	if w.Valid(s.Floor) {
		w.Remove(s.Floor)
	}
}
