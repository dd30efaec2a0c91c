package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/audio"
	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/gfx/sprite"
	"github.com/hubastard/skirmish/engine/logger"
	"github.com/hubastard/skirmish/engine/profiler"
	"github.com/hubastard/skirmish/engine/text"
	"github.com/hubastard/skirmish/engine/ui"
	"github.com/hubastard/skirmish/game/battle"
	"github.com/hubastard/skirmish/game/characters"
	"github.com/hubastard/skirmish/game/flycam"
	"github.com/hubastard/skirmish/game/scenery"
)

const cueVolume = 0.5

var (
	cameraStart  = mgl32.Vec3{50, 120, -380}
	cameraTarget = mgl32.Vec3{50, 0, 0}
)

var friendlies = []characters.Desc{
	{Name: "Knight", PlayerControlled: true, Speed: 6, Actions: []string{"Attack", "Defend", "Idle"}, Color: colors.Color{0.55, 0.7, 1, 1}},
	{Name: "Cleric", PlayerControlled: true, Speed: 4, Actions: []string{"Heal", "Inspect", "Idle"}, Color: colors.Color{1, 0.95, 0.6, 1}},
}

var enemies = []characters.Desc{
	{Name: "Goblin", Speed: 7, Actions: []string{"Attack", "Idle"}, Color: colors.Color{0.5, 0.9, 0.4, 1}},
	{Name: "Orc", Speed: 3, Actions: []string{"Attack", "Defend", "Idle"}, Color: colors.Color{0.9, 0.4, 0.35, 1}},
}

// LayerBattle owns the battle scene and the world-space pipelines that draw it.
type LayerBattle struct {
	text     *text.System
	textures *sprite.TextureStorage
	sprites  *sprite.Pipeline
	menus    *ui.Pipeline
	camera   *flycam.Controller
	sfx      audio.Player
	scenery  scenery.Scenery
	scene    *battle.Scene
}

func (l *LayerBattle) OnAttach(e *core.Engine) error {
	var err error
	if l.text, err = text.NewSystem(e.Renderer, e.Config.AtlasSize); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	if l.textures, err = sprite.NewTextureStorage(e.Renderer); err != nil {
		return fmt.Errorf("textures: %w", err)
	}
	if l.sprites, err = sprite.NewPipeline(e.Renderer, l.textures); err != nil {
		return fmt.Errorf("sprite pipeline: %w", err)
	}
	if l.menus, err = ui.NewPipeline(e.Renderer, l.text); err != nil {
		return fmt.Errorf("ui pipeline: %w", err)
	}

	charTex := l.textures.Default()
	if path := e.Config.CharacterTexture; path != "" {
		if tex, err := l.textures.LoadFile(path); err != nil {
			logger.Log.WithError(err).WithField("path", path).Warn("character texture not loaded, using white")
		} else {
			charTex = tex
		}
	}

	l.scenery = scenery.Spawn(e.World, l.textures.Default())

	repo := characters.NewActionRepo()
	spawner := characters.NewSpawner(repo, charTex)
	var roster battle.Roster
	if roster.Friendly, err = spawnAll(e.World, spawner, friendlies); err != nil {
		return err
	}
	if roster.Enemy, err = spawnAll(e.World, spawner, enemies); err != nil {
		return err
	}

	l.sfx = audio.NopPlayer{}
	if e.Config.AudioEnabled {
		if sp, err := audio.NewSpeaker(cueVolume); err != nil {
			logger.Log.WithError(err).Warn("audio disabled")
		} else {
			l.sfx = sp
		}
	}

	seed := e.Config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Log.WithField("seed", seed).Info("battle seeded")
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	if l.scene, err = battle.NewScene(repo, roster, rng, l.sfx); err != nil {
		return fmt.Errorf("battle: %w", err)
	}

	e.Camera.Transform.Translation = cameraStart
	// the camera looks down +Z; LookTo aims -Z
	e.Camera.Transform.LookTo(cameraStart.Sub(cameraTarget), e.Camera.Up)
	l.camera = flycam.New(e.Camera)
	return nil
}

func spawnAll(w donburi.World, s *characters.Spawner, descs []characters.Desc) ([]donburi.Entity, error) {
	out := make([]donburi.Entity, 0, len(descs))
	for _, d := range descs {
		ent, err := s.Spawn(w, d)
		if err != nil {
			return nil, err
		}
		out = append(out, ent)
	}
	return out, nil
}

func (l *LayerBattle) OnDetach(e *core.Engine) {
	l.scene.Shutdown(e.World)
	l.scenery.Despawn(e.World)
	l.menus.Release()
	l.sprites.Release()
	l.textures.Release()
	l.sfx.Close()
}

func (l *LayerBattle) OnUpdate(e *core.Engine) {
	l.camera.Update(e.Input, e.Time.DeltaSeconds())

	end := profiler.Start("battle.tick")
	l.scene.Tick(e.World, e.Input)
	end()

	characters.Update(e.World, e.Camera.Position())
}

func (l *LayerBattle) OnRender(e *core.Engine) {
	end := profiler.Start("render.prepare")
	if err := l.sprites.Prepare(e.World); err != nil {
		logger.Log.WithError(err).Warn("sprite prepare")
	}
	if err := l.menus.Prepare(e.World, e.Camera); err != nil {
		logger.Log.WithError(err).Warn("menu prepare")
	}
	end()

	l.sprites.Render(e.Camera.VP())
	l.menus.Render(e.Camera)
	l.text.Atlas.PostRenderTrim()
}

func (l *LayerBattle) OnEvent(e *core.Engine, ev core.Event) bool { return false }
