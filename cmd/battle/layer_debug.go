package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/logger"
	"github.com/hubastard/skirmish/engine/profiler"
)

const titleEvery = time.Second

// LayerDebug shows frame stats in the window title and dumps renderer
// stats on F3. Escape quits.
type LayerDebug struct {
	battle *LayerBattle

	frames    int
	sinceShow time.Duration
}

func (l *LayerDebug) OnAttach(e *core.Engine) error { return nil }
func (l *LayerDebug) OnDetach(e *core.Engine)       {}
func (l *LayerDebug) OnRender(e *core.Engine)       {}

func (l *LayerDebug) OnUpdate(e *core.Engine) {
	l.frames++
	l.sinceShow += e.Time.Delta
	if l.sinceShow < titleEvery {
		return
	}
	fps := float64(l.frames) / l.sinceShow.Seconds()
	e.Window.SetTitle(fmt.Sprintf("%s | %.0f fps | round %d | %s",
		e.Config.Title, fps, l.battle.scene.Round(), l.battle.scene.Phase()))
	l.frames, l.sinceShow = 0, 0
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch k.Key {
	case core.KeyEscape:
		e.Quit()
		return true
	case core.KeyF3:
		l.dump(e)
		return true
	}
	return false
}

func (l *LayerDebug) dump(e *core.Engine) {
	st := l.battle.sprites.Stats()
	logger.Log.WithFields(logrus.Fields{
		"frame":        e.Time.Frame,
		"uptime":       e.Uptime().Round(time.Millisecond),
		"draw_calls":   st.DrawCalls,
		"sprites":      st.InstanceCount,
		"textures":     st.TextureCount,
		"menus":        l.battle.menus.Len(),
		"glyphs":       l.battle.text.Atlas.Len(),
		"camera":       e.Camera.Position(),
		"entities":     e.World.Len(),
		"battle_phase": l.battle.scene.Phase().String(),
	}).Info("debug stats")
	for name, d := range profiler.Summary() {
		logger.Log.WithField("scope", name).WithField("avg", d).Info("profile")
	}
}
