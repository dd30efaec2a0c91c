package core

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/camera"
)

// App defines the game/application hooks.
type App interface {
	OnStart(e *Engine) error     // called once after window/renderer init
	OnUpdate(e *Engine)          // called once per frame, before rendering
	OnRender(e *Engine)          // called only when the frame surface is usable
	OnEvent(e *Engine, ev Event) // input/window events
	OnShutdown(e *Engine)        // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	World    donburi.World
	Camera   *camera.Perspective
	Time     Time
	Config   Config
	Layers   LayerStack

	start time.Time
	quit  bool
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Quit asks the run loop to exit after the current frame.
func (e *Engine) Quit() { e.quit = true }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	Destroy()
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyLeftShift
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyF3
)

var keyNames = map[Key]string{
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyLeftShift: "LeftShift",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyW:         "W",
	KeyA:         "A",
	KeyS:         "S",
	KeyD:         "D",
	KeyI:         "I",
	KeyJ:         "J",
	KeyK:         "K",
	KeyL:         "L",
	KeyF3:        "F3",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "Unknown"
}

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)
