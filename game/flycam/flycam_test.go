package flycam

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/skirmish/engine/camera"
	"github.com/hubastard/skirmish/engine/core"
)

func hold(keys ...core.Key) *core.Input {
	in := core.NewInput()
	for _, k := range keys {
		in.Handle(core.EventKey{Key: k, Down: true})
	}
	return in
}

func near(a, b mgl32.Vec3) bool { return a.Sub(b).Len() < 1e-3 }

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		keys []core.Key
		want mgl32.Vec3
	}{
		{"forward", []core.Key{core.KeyW}, mgl32.Vec3{0, 0, 50}},
		{"back", []core.Key{core.KeyS}, mgl32.Vec3{0, 0, -50}},
		{"strafe", []core.Key{core.KeyD}, mgl32.Vec3{50, 0, 0}},
		{"rise", []core.Key{core.KeySpace}, mgl32.Vec3{0, 50, 0}},
		{"sink", []core.Key{core.KeyLeftShift}, mgl32.Vec3{0, -50, 0}},
		{"cancel", []core.Key{core.KeyA, core.KeyD}, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := camera.NewPerspective(800, 600)
			New(cam).Update(hold(tt.keys...), 0.5)
			if got := cam.Position(); !near(got, tt.want) {
				t.Errorf("position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoveStaysLevelWhenPitched(t *testing.T) {
	cam := camera.NewPerspective(800, 600)
	cam.Rotate(0, mgl32.DegToRad(30))
	New(cam).Update(hold(core.KeyW), 1)
	if got := cam.Position(); got[1] != 0 || got[2] < 99 {
		t.Errorf("position = %v, want level move of 100 along +Z", got)
	}
}

func TestLook(t *testing.T) {
	cam := camera.NewPerspective(800, 600)
	c := New(cam)
	c.Update(hold(core.KeyL), mgl32.DegToRad(90))
	if got := cam.Transform.Forward(); !near(got, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("forward after yaw = %v, want +X", got)
	}
	if got := cam.Position(); got != (mgl32.Vec3{}) {
		t.Errorf("looking moved the camera to %v", got)
	}
}
