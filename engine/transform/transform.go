// Package transform holds the world-space placement shared by every entity
// the renderer draws. The world is left-handed: +X right, +Y up, +Z forward.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

var Component = donburi.NewComponentType[Transform](Identity())

func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func FromTranslation(v mgl32.Vec3) Transform {
	t := Identity()
	t.Translation = v
	return t
}

func (t Transform) WithScale(s float32) Transform {
	t.Scale = mgl32.Vec3{s, s, s}
	return t
}

func (t Transform) WithRotation(q mgl32.Quat) Transform {
	t.Rotation = q
	return t
}

func (t Transform) Forward() mgl32.Vec3 { return t.Rotation.Rotate(mgl32.Vec3{0, 0, 1}) }
func (t Transform) Right() mgl32.Vec3   { return t.Rotation.Rotate(mgl32.Vec3{1, 0, 0}) }
func (t Transform) Up() mgl32.Vec3      { return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0}) }

// Matrix returns translation * rotation * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	m = m.Mul4(t.Rotation.Normalize().Mat4())
	return m.Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// LookAt rotates the transform so that its local -Z points at target.
func (t *Transform) LookAt(target, up mgl32.Vec3) {
	t.LookTo(target.Sub(t.Translation), up)
}

// LookTo rotates the transform so that its local -Z points along dir.
// A zero direction leaves the rotation untouched.
func (t *Transform) LookTo(dir, up mgl32.Vec3) {
	if dir.Len() < 1e-6 {
		return
	}
	back := dir.Normalize().Mul(-1)
	right := up.Cross(back)
	if right.Len() < 1e-6 {
		right = anyOrthogonal(up)
	}
	right = right.Normalize()
	newUp := back.Cross(right)
	rot := mgl32.Mat3FromCols(right, newUp, back)
	t.Rotation = mgl32.Mat4ToQuat(rot.Mat4()).Normalize()
}

func anyOrthogonal(v mgl32.Vec3) mgl32.Vec3 {
	if abs(v[0]) > abs(v[1]) {
		return mgl32.Vec3{-v[2], 0, v[0]}
	}
	return mgl32.Vec3{0, v[2], -v[1]}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
