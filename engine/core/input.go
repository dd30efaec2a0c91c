package core

// Input tracks keyboard state for the current frame. Pressed keys stay set
// until released; JustPressed and Released hold only for the frame in which
// the transition happened and are cleared by EndFrame.
type Input struct {
	pressed        map[Key]struct{}
	justPressed    map[Key]struct{}
	released       map[Key]struct{}
	mouseX, mouseY float64
}

func NewInput() *Input {
	return &Input{
		pressed:     map[Key]struct{}{},
		justPressed: map[Key]struct{}{},
		released:    map[Key]struct{}{},
	}
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		if e.Down {
			// key repeat must not re-trigger
			if _, held := in.pressed[e.Key]; !held {
				in.justPressed[e.Key] = struct{}{}
			}
			in.pressed[e.Key] = struct{}{}
			return
		}
		if _, held := in.pressed[e.Key]; held {
			delete(in.pressed, e.Key)
			in.released[e.Key] = struct{}{}
		}
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

func (in *Input) IsKeyDown(k Key) bool {
	_, ok := in.pressed[k]
	return ok
}

func (in *Input) JustPressed(k Key) bool {
	_, ok := in.justPressed[k]
	return ok
}

func (in *Input) Released(k Key) bool {
	_, ok := in.released[k]
	return ok
}

func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

// EndFrame drops the per-frame edge sets.
func (in *Input) EndFrame() {
	clear(in.justPressed)
	clear(in.released)
}
