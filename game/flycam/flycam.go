// Package flycam moves the perspective camera from the keyboard.
package flycam

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/skirmish/engine/camera"
	"github.com/hubastard/skirmish/engine/core"
)

// Controller: WASD move on the ground plane, Space/LeftShift rise and sink,
// J/L yaw, I/K pitch.
type Controller struct {
	MoveSpeed float32
	LookSpeed float32
	Camera    *camera.Perspective
}

func New(cam *camera.Perspective) *Controller {
	return &Controller{
		MoveSpeed: 100,
		LookSpeed: 1,
		Camera:    cam,
	}
}

func axis(in *core.Input, pos, neg core.Key) float32 {
	var v float32
	if in.IsKeyDown(pos) {
		v++
	}
	if in.IsKeyDown(neg) {
		v--
	}
	return v
}

func (c *Controller) Update(in *core.Input, dt float32) {
	x := axis(in, core.KeyD, core.KeyA)
	y := axis(in, core.KeySpace, core.KeyLeftShift)
	z := axis(in, core.KeyW, core.KeyS)
	if x != 0 || y != 0 || z != 0 {
		dir := c.Camera.Forward().Mul(z).
			Add(c.Camera.Right().Mul(x)).
			Add(mgl32.Vec3{0, y, 0})
		c.Camera.Move(dir.Mul(c.MoveSpeed * dt))
	}

	yaw := axis(in, core.KeyL, core.KeyJ)
	pitch := axis(in, core.KeyK, core.KeyI)
	if yaw != 0 || pitch != 0 {
		c.Camera.Rotate(yaw*c.LookSpeed*dt, pitch*c.LookSpeed*dt)
	}
}
