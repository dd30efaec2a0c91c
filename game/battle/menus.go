package battle

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/audio"
	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/logger"
	"github.com/hubastard/skirmish/engine/transform"
	"github.com/hubastard/skirmish/engine/ui"
	"github.com/hubastard/skirmish/game/characters"
)

const (
	actionMenuOffset = 50
	actionMenuScale  = 0.8
	targetMenuScale  = 0.3
	// target menu sits this far right of its parent per unit of parent scale
	targetMenuSpacing = 100
	targetMenuLift    = 2
)

type menuInput uint8

const (
	inputNone menuInput = iota
	inputBack
	inputForward
	inputSelect
)

// Decision is the outcome of one player turn.
type Decision struct {
	Caster    donburi.Entity
	Action    characters.ActionID
	Target    donburi.Entity
	HasTarget bool
}

// UiMenus is the action menu for the acting character plus, once an action
// that needs one is chosen, a target menu anchored to it.
type UiMenus struct {
	caster     donburi.Entity
	actionMenu donburi.Entity
	targetMenu donburi.Entity
	hasTarget  bool
	action     characters.ActionID
	targets    []donburi.Entity
}

// NewUiMenus spawns the action menu beside caster.
func NewUiMenus(w donburi.World, repo *characters.ActionRepo, caster donburi.Entity) (*UiMenus, error) {
	entry := w.Entry(caster)
	ch := characters.Component.Get(entry)
	if len(ch.Actions) == 0 {
		return nil, fmt.Errorf("menus for %q: %w", ch.Name, characters.ErrNoActions)
	}
	names := make([]string, len(ch.Actions))
	for i, id := range ch.Actions {
		names[i] = repo.MustGet(id).Name
	}

	tr := transform.Component.Get(entry)
	pos := tr.Translation.Add(tr.Right().Mul(actionMenuOffset))
	menu := spawnMenu(w, names, transform.FromTranslation(pos).WithScale(actionMenuScale))
	return &UiMenus{caster: caster, actionMenu: menu}, nil
}

func (m *UiMenus) ActionMenu() donburi.Entity { return m.actionMenu }

func (m *UiMenus) TargetMenu() (donburi.Entity, bool) { return m.targetMenu, m.hasTarget }

// Tick runs one frame of menu input. It returns true with the decision once
// the turn is resolved.
func (m *UiMenus) Tick(w donburi.World, in *core.Input, repo *characters.ActionRepo, r *Roster, sfx audio.Player) (Decision, bool) {
	m.positionChildren(w)

	if m.hasTarget {
		switch processInput(w, in, m.targetMenu, sfx) {
		case inputForward, inputSelect:
			sfx.Play(audio.CueConfirm)
			sel := ui.Component.Get(w.Entry(m.targetMenu)).Selected
			return Decision{Caster: m.caster, Action: m.action, Target: m.targets[sel], HasTarget: true}, true
		case inputBack:
			sfx.Play(audio.CueBack)
			w.Remove(m.targetMenu)
			m.hasTarget = false
			m.targets = nil
		}
		return Decision{}, false
	}

	switch processInput(w, in, m.actionMenu, sfx) {
	case inputForward, inputSelect:
		sel := ui.Component.Get(w.Entry(m.actionMenu)).Selected
		id := characters.Component.Get(w.Entry(m.caster)).Actions[sel]
		action := repo.MustGet(id)
		if !action.Target.NeedsTarget() {
			sfx.Play(audio.CueConfirm)
			d := Decision{Caster: m.caster, Action: id}
			if action.Target.Kind == characters.TargetCaster {
				d.Target, d.HasTarget = m.caster, true
			}
			return d, true
		}
		if err := m.spawnTargetMenu(w, r, id, action); err != nil {
			logger.Log.WithError(err).WithField("action", action.Name).Debug("target menu not opened")
			return Decision{}, false
		}
		sfx.Play(audio.CueConfirm)
		m.positionChildren(w)
	}
	return Decision{}, false
}

func (m *UiMenus) spawnTargetMenu(w donburi.World, r *Roster, id characters.ActionID, a characters.Action) error {
	targets, err := EligibleTargets(r, m.caster, a.Target)
	if err != nil {
		return err
	}
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = characters.Component.Get(w.Entry(t)).Name
	}
	m.targetMenu = spawnMenu(w, names, transform.Identity().WithScale(targetMenuScale))
	m.hasTarget = true
	m.action = id
	m.targets = targets
	return nil
}

// positionChildren keeps the target menu anchored to the action menu.
func (m *UiMenus) positionChildren(w donburi.World) {
	if !m.hasTarget {
		return
	}
	parent := transform.Component.Get(w.Entry(m.actionMenu))
	pos := parent.Translation.
		Add(parent.Right().Mul(parent.Scale[0] * targetMenuSpacing)).
		Add(parent.Forward().Mul(targetMenuLift))
	transform.Component.Get(w.Entry(m.targetMenu)).Translation = pos
}

// Drop despawns every menu entity still alive.
func (m *UiMenus) Drop(w donburi.World) {
	if w.Valid(m.actionMenu) {
		w.Remove(m.actionMenu)
	}
	if m.hasTarget && w.Valid(m.targetMenu) {
		w.Remove(m.targetMenu)
	}
	m.hasTarget = false
}

func processInput(w donburi.World, in *core.Input, target donburi.Entity, sfx audio.Player) menuInput {
	dir := 0
	if in.JustPressed(core.KeyDown) {
		dir++
	}
	if in.JustPressed(core.KeyUp) {
		dir--
	}

	var action menuInput
	switch {
	case in.JustPressed(core.KeyEnter):
		action = inputSelect
	case in.JustPressed(core.KeyRight):
		action = inputForward
	case in.JustPressed(core.KeyLeft):
		action = inputBack
	}

	menu := ui.Component.Get(w.Entry(target))
	before := menu.Selected
	menu.MoveSelection(dir)
	if menu.Selected != before {
		sfx.Play(audio.CueMove)
	}
	return action
}

func spawnMenu(w donburi.World, options []string, tr transform.Transform) donburi.Entity {
	e := w.Create(ui.Component, transform.Component)
	entry := w.Entry(e)
	ui.Component.SetValue(entry, ui.NewMenu(options))
	transform.Component.SetValue(entry, tr)
	return e
}
