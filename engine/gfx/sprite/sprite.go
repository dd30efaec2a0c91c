package sprite

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/colors"
)

// Sprite is a textured quad centred on its transform, in the transform's
// local XY plane.
type Sprite struct {
	Texture *LoadedTexture // nil draws with the default white texture
	Region  Region
	Size    mgl32.Vec2
	Color   colors.Color
}

var Component = donburi.NewComponentType[Sprite]()

func New(tex *LoadedTexture, w, h float32, c colors.Color) Sprite {
	return Sprite{Texture: tex, Region: Full, Size: mgl32.Vec2{w, h}, Color: c}
}
