package main

import (
	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/profiler"
)

// App forwards the engine hooks to its layer stack.
type App struct {
	battle *LayerBattle
	debug  *LayerDebug
}

func (a *App) OnStart(e *core.Engine) error {
	profiler.Init(600)

	a.battle = &LayerBattle{}
	if err := a.battle.OnAttach(e); err != nil {
		return err
	}
	e.Layers.Push(a.battle)

	a.debug = &LayerDebug{battle: a.battle}
	if err := a.debug.OnAttach(e); err != nil {
		return err
	}
	e.Layers.Push(a.debug)
	return nil
}

func (a *App) OnUpdate(e *core.Engine) {
	e.Layers.ForEach(func(l core.Layer) { l.OnUpdate(e) })
}

func (a *App) OnRender(e *core.Engine) {
	e.Layers.ForEach(func(l core.Layer) { l.OnRender(e) })
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	e.Layers.ForEachReverse(func(l core.Layer) bool { return l.OnEvent(e, ev) })
}

func (a *App) OnShutdown(e *core.Engine) {
	for {
		l, ok := e.Layers.Pop()
		if !ok {
			return
		}
		l.OnDetach(e)
	}
}
