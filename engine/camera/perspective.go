package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/skirmish/engine/transform"
)

// Perspective is a left-handed perspective camera looking along its
// transform's +Z axis.
type Perspective struct {
	Transform transform.Transform
	Up        mgl32.Vec3
	FovY      float32 // radians
	Near, Far float32

	aspect float32
	proj   mgl32.Mat4
	dirty  bool
}

func NewPerspective(width, height float32) *Perspective {
	c := &Perspective{
		Transform: transform.Identity(),
		Up:        mgl32.Vec3{0, 1, 0},
		FovY:      mgl32.DegToRad(45),
		Near:      0.1,
		Far:       100000,
	}
	c.SetViewport(width, height)
	return c
}

func (c *Perspective) SetViewport(width, height float32) {
	if width < 1 || height < 1 {
		return
	}
	c.aspect = width / height
	c.dirty = true
}

func (c *Perspective) Aspect() float32 { return c.aspect }

func (c *Perspective) Position() mgl32.Vec3 { return c.Transform.Translation }

// Forward is the view direction flattened onto the ground plane.
func (c *Perspective) Forward() mgl32.Vec3 { return flatten(c.Transform.Forward()) }

// Right is the right axis flattened onto the ground plane.
func (c *Perspective) Right() mgl32.Vec3 { return flatten(c.Transform.Right()) }

// Rotate applies yaw about world Y and pitch about the local X axis.
func (c *Perspective) Rotate(yaw, pitch float32) {
	y := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0})
	p := mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0})
	c.Transform.Rotation = y.Mul(c.Transform.Rotation).Mul(p).Normalize()
}

func (c *Perspective) Move(delta mgl32.Vec3) {
	c.Transform.Translation = c.Transform.Translation.Add(delta)
}

// VP returns projection * view.
func (c *Perspective) VP() mgl32.Mat4 {
	if c.dirty {
		c.Recalculate()
	}
	eye := c.Transform.Translation
	dir := c.Transform.Forward().Normalize()
	view := mgl32.LookAtV(eye, eye.Add(dir), c.Up)
	// left-handed world through a right-handed GL projection: mirror X
	return c.proj.Mul4(mgl32.Scale3D(-1, 1, 1)).Mul4(view)
}

func (c *Perspective) Recalculate() {
	c.proj = mgl32.Perspective(c.FovY, c.aspect, c.Near, c.Far)
	c.dirty = false
}

func flatten(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	if l := v.Len(); l > 1e-6 && !math.IsNaN(float64(l)) {
		return v.Mul(1 / l)
	}
	return mgl32.Vec3{}
}
