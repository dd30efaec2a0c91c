// Package battle runs the turn-based fight: round setup, weighted turn order
// and the per-turn action and target menus.
package battle

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/audio"
	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/logger"
	"github.com/hubastard/skirmish/engine/transform"
	"github.com/hubastard/skirmish/game/characters"
)

type Phase uint8

const (
	PhaseInitializing Phase = iota
	PhaseStartingRound
	PhaseStartingTurn
	PhaseWaitingForInput
	// PhaseProcessingCPU is reserved for computer-controlled turns.
	PhaseProcessingCPU
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseStartingRound:
		return "StartingRound"
	case PhaseStartingTurn:
		return "StartingTurn"
	case PhaseWaitingForInput:
		return "WaitingForInput"
	case PhaseProcessingCPU:
		return "ProcessingCPU"
	}
	return fmt.Sprintf("Phase(%d)", p)
}

const (
	rowSpacing = 100
	rowDepth   = 100
)

type Scene struct {
	Actions *characters.ActionRepo
	Roster  Roster

	rng     RandSource
	sfx     audio.Player
	phase   Phase
	round   int
	current donburi.Entity
	queue   []donburi.Entity
	menus   *UiMenus
	decided []Decision
}

// NewScene rejects a roster that lists a participant twice.
func NewScene(actions *characters.ActionRepo, roster Roster, rng RandSource, sfx audio.Player) (*Scene, error) {
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	if sfx == nil {
		sfx = audio.NopPlayer{}
	}
	return &Scene{Actions: actions, Roster: roster, rng: rng, sfx: sfx}, nil
}

func (s *Scene) Phase() Phase            { return s.phase }
func (s *Scene) Round() int              { return s.round }
func (s *Scene) Current() donburi.Entity { return s.current }
func (s *Scene) Queue() []donburi.Entity { return s.queue }
func (s *Scene) Menus() *UiMenus         { return s.menus }
func (s *Scene) Decisions() []Decision   { return s.decided }

// Tick advances the battle by one frame.
func (s *Scene) Tick(w donburi.World, in *core.Input) {
	switch s.phase {
	case PhaseInitializing:
		s.placeCharacters(w)
		s.phase = PhaseStartingRound
	case PhaseStartingRound:
		s.startRound(w)
		s.phase = PhaseStartingTurn
	case PhaseStartingTurn:
		s.startTurn(w)
	case PhaseWaitingForInput:
		d, done := s.menus.Tick(w, in, s.Actions, &s.Roster, s.sfx)
		if !done {
			return
		}
		s.record(w, d)
		s.menus.Drop(w)
		s.menus = nil
		s.startTurn(w)
	case PhaseProcessingCPU:
	}
}

// placeCharacters lines the two sides up facing each other across the
// origin.
func (s *Scene) placeCharacters(w donburi.World) {
	facingBack := mgl32.QuatRotate(mgl32.DegToRad(180), mgl32.Vec3{0, 1, 0})
	for i, e := range s.Roster.Friendly {
		tr := transform.Component.Get(w.Entry(e))
		tr.Translation = mgl32.Vec3{float32(i) * rowSpacing, 0, -rowDepth}
		tr.Rotation = mgl32.QuatIdent()
	}
	for i, e := range s.Roster.Enemy {
		tr := transform.Component.Get(w.Entry(e))
		tr.Translation = mgl32.Vec3{float32(i) * rowSpacing, 0, rowDepth}
		tr.Rotation = facingBack
	}
}

func (s *Scene) startRound(w donburi.World) {
	s.round++
	logger.Log.WithField("round", s.round).Info("starting new round")

	all := s.Roster.All()
	cands := make([]Candidate, len(all))
	var total uint32
	for i, e := range all {
		speed := characters.Component.Get(w.Entry(e)).Stats.Speed
		cands[i] = Candidate{Entity: e, Weight: speed}
		total += speed
	}
	s.queue = BuildTurnOrder(cands, s.rng)

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		names := make([]string, len(s.queue))
		for i, e := range s.queue {
			names[i] = characters.Component.Get(w.Entry(e)).Name
		}
		logger.Log.WithFields(logrus.Fields{
			"total_weight": total,
			"order":        strings.Join(names, ", "),
		}).Debug("turn order")
	}
}

func (s *Scene) startTurn(w donburi.World) {
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]

		menus, err := NewUiMenus(w, s.Actions, next)
		if err != nil {
			logger.Log.WithError(err).Error("skipping turn")
			continue
		}
		s.current = next
		s.menus = menus
		s.phase = PhaseWaitingForInput
		s.sfx.Play(audio.CueTurn)
		logger.Log.WithField("character", characters.Component.Get(w.Entry(next)).Name).Debug("turn started")
		return
	}
	s.phase = PhaseStartingRound
}

func (s *Scene) record(w donburi.World, d Decision) {
	s.decided = append(s.decided, d)
	f := logrus.Fields{
		"caster": characters.Component.Get(w.Entry(d.Caster)).Name,
		"action": s.Actions.MustGet(d.Action).Name,
	}
	if d.HasTarget && w.Valid(d.Target) {
		f["target"] = characters.Component.Get(w.Entry(d.Target)).Name
	}
	logger.Log.WithFields(f).Info("turn resolved")
}

// Shutdown removes any menus still on screen.
func (s *Scene) Shutdown(w donburi.World) {
	if s.menus != nil {
		s.menus.Drop(w)
		s.menus = nil
	}
}
