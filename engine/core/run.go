package core

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/camera"
	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/logger"
	"github.com/hubastard/skirmish/engine/profiler"
)

// Run wires the platform window + renderer and executes the main loop.
// One update and at most one render happen per displayed frame.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{
		Window:   win,
		Renderer: rend,
		Input:    NewInput(),
		World:    donburi.NewWorld(),
		Camera:   camera.NewPerspective(float32(w), float32(h)),
		Config:   cfg,
		start:    time.Now(),
	}
	win.SetEventCallback(func(ev Event) { eng.dispatch(app, ev) })

	if err := app.OnStart(eng); err != nil {
		return fmt.Errorf("start app: %w", err)
	}

	clear := cfg.Clear()
	for !win.ShouldClose() && !eng.quit {
		eng.Time.tick(time.Now())
		win.PollEvents()

		end := profiler.Start("update")
		app.OnUpdate(eng)
		end()

		if err := eng.frame(app, clear); err != nil {
			app.OnShutdown(eng)
			return err
		}
		eng.Input.EndFrame()
		profiler.EndFrame()
	}

	app.OnShutdown(eng)
	logger.Log.Info("engine exit")
	return nil
}

func (e *Engine) frame(app App, clear colors.Color) error {
	err := e.Renderer.BeginFrame(clear)
	if errors.Is(err, ErrSurfaceLost) {
		logger.Log.WithField("frame", e.Time.Frame).Debug("surface lost, skipping frame")
		return nil
	}
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	end := profiler.Start("render")
	app.OnRender(e)
	e.Renderer.EndFrame()
	end()
	e.Window.SwapBuffers()
	return nil
}

func (e *Engine) dispatch(app App, ev Event) {
	e.Input.Handle(ev)
	switch ev.(type) {
	case EventResize:
		fw, fh := e.Window.FramebufferSize()
		if fw < 1 || fh < 1 {
			break
		}
		e.Renderer.Resize(fw, fh)
		e.Camera.SetViewport(float32(fw), float32(fh))
	case EventCloseRequested:
		e.quit = true
	}
	app.OnEvent(e, ev)
}
