// Package characters holds the battle participants: their stats, the
// actions they may take and the entities that draw them.
package characters

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/gfx/sprite"
	"github.com/hubastard/skirmish/engine/logger"
	"github.com/hubastard/skirmish/engine/transform"
)

var (
	ErrNoActions     = errors.New("characters: character has no actions")
	ErrUnknownAction = errors.New("characters: unknown action")
)

type Stats struct {
	Speed uint32
}

type Character struct {
	Name             string
	PlayerControlled bool
	Stats            Stats
	Actions          []ActionID
	Color            colors.Color
	// FrontFacing is true while the camera sits in front of the character.
	FrontFacing bool
}

var Component = donburi.NewComponentType[Character]()

// Desc is everything needed to spawn a character.
type Desc struct {
	Name             string
	PlayerControlled bool
	Speed            uint32
	Actions          []string
	Color            colors.Color
}

const spriteSize = 50

// Spawner creates character entities, resolving action names against a
// repository.
type Spawner struct {
	Actions *ActionRepo
	Texture *sprite.LoadedTexture
}

func NewSpawner(actions *ActionRepo, tex *sprite.LoadedTexture) *Spawner {
	return &Spawner{Actions: actions, Texture: tex}
}

func (s *Spawner) Spawn(w donburi.World, d Desc) (donburi.Entity, error) {
	if len(d.Actions) == 0 {
		return donburi.Null, fmt.Errorf("spawn %q: %w", d.Name, ErrNoActions)
	}
	ids := make([]ActionID, 0, len(d.Actions))
	for _, name := range d.Actions {
		id, ok := s.Actions.FindByName(name)
		if !ok {
			return donburi.Null, fmt.Errorf("spawn %q: %w %q", d.Name, ErrUnknownAction, name)
		}
		ids = append(ids, id)
	}
	c := d.Color
	if c == (colors.Color{}) {
		c = colors.White
	}

	e := w.Create(Component, transform.Component, sprite.Component)
	entry := w.Entry(e)
	Component.SetValue(entry, Character{
		Name:             d.Name,
		PlayerControlled: d.PlayerControlled,
		Stats:            Stats{Speed: d.Speed},
		Actions:          ids,
		Color:            c,
		FrontFacing:      true,
	})
	transform.Component.SetValue(entry, transform.Identity())
	sprite.Component.SetValue(entry, sprite.New(s.Texture, spriteSize, spriteSize, c))

	logger.Log.WithField("name", d.Name).WithField("speed", d.Speed).Debug("character spawned")
	return e, nil
}

// backShade darkens a character seen from behind.
const backShade = 0.5

var facingQuery = donburi.NewQuery(filter.Contains(Component, transform.Component, sprite.Component))

// Update refreshes FrontFacing from the camera position and tints the sprite
// so the back of a character reads darker than its front.
func Update(w donburi.World, camPos mgl32.Vec3) {
	facingQuery.Each(w, func(entry *donburi.Entry) {
		ch := Component.Get(entry)
		tr := transform.Component.Get(entry)
		ch.FrontFacing = tr.Forward().Dot(camPos.Sub(tr.Translation)) >= 0

		sp := sprite.Component.Get(entry)
		if ch.FrontFacing {
			sp.Color = ch.Color
		} else {
			sp.Color = ch.Color.Scale(backShade)
		}
	})
}
