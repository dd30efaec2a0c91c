package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/hubastard/skirmish/engine/assets"
	"github.com/hubastard/skirmish/engine/camera"
	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/gfx/pool"
	"github.com/hubastard/skirmish/engine/logger"
	"github.com/hubastard/skirmish/engine/text"
	"github.com/hubastard/skirmish/engine/transform"
)

// std140 layout, mirrored by the Panel block in ui_panel.*.glsl
type panelUniform struct {
	Size            [2]float32
	_               [2]float32
	MenuColor       [4]float32
	SelectionColor  [4]float32
	SelectionRangeY [2]float32
	_               [2]float32
}

type placementUniform struct {
	Model mgl32.Mat4
}

type panelFrame struct {
	panel     panelUniform
	placement placementUniform
	text      string
	fontSize  float32
	color     colors.Color
}

var textLayout = core.VertexLayout{
	Stride:      int32(pool.SizeOf[text.TextVertex]()),
	PerInstance: true,
	Attribs: []core.VertexAttrib{
		{Location: 0, Type: core.AttribFloat32, Components: 2, Offset: 0},
		{Location: 1, Type: core.AttribFloat32, Components: 2, Offset: 8},
		{Location: 2, Type: core.AttribFloat32, Components: 2, Offset: 16},
		{Location: 3, Type: core.AttribFloat32, Components: 2, Offset: 24},
		{Location: 4, Type: core.AttribUint32, Components: 1, Offset: 32},
	},
}

// Pipeline draws every entity carrying a Menu and a Transform. Menus are
// turned to face the camera, their panel and text buffers are kept in a
// pool keyed by entity, and panels that were not seen this frame are freed.
type Pipeline struct {
	r         core.Renderer
	text      *text.System
	panelPipe core.Pipeline
	textPipe  core.Pipeline
	pool      *pool.Pool[donburi.Entity, panelFrame, *panel]
	query     *donburi.Query
	order     []donburi.Entity
}

func NewPipeline(r core.Renderer, txt *text.System) (*Pipeline, error) {
	p := &Pipeline{
		r:     r,
		text:  txt,
		query: donburi.NewQuery(filter.Contains(Component, transform.Component)),
	}
	var err error
	if p.panelPipe, err = createPipeline(r, "ui_panel"); err != nil {
		return nil, err
	}
	if p.textPipe, err = createPipeline(r, "ui_text"); err != nil {
		return nil, err
	}
	p.pool = pool.New(p.newPanel)
	return p, nil
}

func createPipeline(r core.Renderer, name string) (core.Pipeline, error) {
	vs, fs, err := assets.LoadProgram(name)
	if err != nil {
		return 0, err
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vs,
		FragmentSource: fs,
		Blend:          true,
		DepthTest:      false,
		Label:          name,
	})
	if err != nil {
		return 0, fmt.Errorf("create %s pipeline: %w", name, err)
	}
	return pipe, nil
}

// Prepare billboards the menus towards the camera and syncs GPU state with
// the menus present in world. A panel whose text does not fit the atlas
// this frame logs a warning and keeps its previous glyphs; every other
// error is returned.
func (p *Pipeline) Prepare(world donburi.World, cam *camera.Perspective) error {
	requested := map[donburi.Entity][]panelFrame{}
	p.query.Each(world, func(entry *donburi.Entry) {
		m := Component.Get(entry)
		tr := transform.Component.Get(entry)
		tr.LookAt(cam.Position(), cam.Up)
		if len(m.Options) == 0 {
			return
		}
		requested[entry.Entity()] = []panelFrame{frameFor(m, tr)}
	})

	err := p.pool.Reconcile(requested)

	p.order = p.order[:0]
	p.pool.Each(func(e donburi.Entity, _ *panel) { p.order = append(p.order, e) })
	sort.Slice(p.order, func(i, j int) bool { return p.order[i] < p.order[j] })

	if s := p.pool.Stats(); s.Created > 0 || s.Evicted > 0 {
		logger.Log.WithFields(logrus.Fields{
			"created": s.Created,
			"evicted": s.Evicted,
			"live":    p.pool.Len(),
		}).Debug("ui panels changed")
	}
	return err
}

func frameFor(m *Menu, tr *transform.Transform) panelFrame {
	w, h := m.Size()
	return panelFrame{
		panel: panelUniform{
			Size:            [2]float32{w, h},
			MenuColor:       m.MenuColor,
			SelectionColor:  m.SelectionColor,
			SelectionRangeY: m.SelectionRange(),
		},
		placement: placementUniform{Model: tr.Matrix()},
		text:      strings.Join(m.Options, "\n"),
		fontSize:  m.FontSize,
		color:     m.TextColor,
	}
}

// Render draws all panels, then all text on top.
func (p *Pipeline) Render(cam *camera.Perspective) {
	vp := cam.VP()
	uniforms := map[string]any{"uViewProj": [16]float32(vp)}

	for _, e := range p.order {
		pn, _ := p.pool.Get(e)
		p.r.Draw(core.DrawCmd{
			Pipeline:      p.panelPipe,
			Topology:      core.TriangleStrip,
			VertexCount:   4,
			InstanceCount: 1,
			Uniforms:      uniforms,
			UniformBlocks: map[string]core.Buffer{
				"Panel":     pn.panel.Buffer(),
				"Placement": pn.placement.Buffer(),
			},
		})
	}
	for _, e := range p.order {
		pn, _ := p.pool.Get(e)
		if pn.glyphs.Count() == 0 {
			continue
		}
		p.r.Draw(core.DrawCmd{
			Pipeline:      p.textPipe,
			Topology:      core.TriangleStrip,
			VertexCount:   4,
			InstanceCount: int32(pn.glyphs.Count()),
			Bindings:      []core.VertexBinding{{Buffer: pn.glyphs.Buffer(), Layout: textLayout}},
			Uniforms:      uniforms,
			UniformBlocks: map[string]core.Buffer{"Placement": pn.placement.Buffer()},
			Textures:      map[string]core.Texture{"uAtlas": p.text.Atlas.Texture()},
		})
	}
}

// Len returns the number of live panels.
func (p *Pipeline) Len() int { return p.pool.Len() }

func (p *Pipeline) Release() { p.pool.Clear() }

// panel is the GPU state of one menu.
type panel struct {
	entity    donburi.Entity
	text      *text.System
	panel     *pool.InstanceBuffer[panelUniform]
	placement *pool.InstanceBuffer[placementUniform]
	glyphs    *pool.InstanceBuffer[text.TextVertex]
	buffer    *text.Buffer
}

func (p *Pipeline) newPanel(e donburi.Entity, frames []panelFrame) (*panel, error) {
	pn := &panel{entity: e, text: p.text}
	var err error
	if pn.panel, err = pool.NewInstanceBuffer[panelUniform](p.r, core.BufferUniform, "ui panel", nil); err != nil {
		return nil, err
	}
	if pn.placement, err = pool.NewInstanceBuffer[placementUniform](p.r, core.BufferUniform, "ui placement", nil); err != nil {
		pn.Release()
		return nil, err
	}
	if pn.glyphs, err = pool.NewInstanceBuffer[text.TextVertex](p.r, core.BufferVertex, "ui text", nil); err != nil {
		pn.Release()
		return nil, err
	}
	f := frames[0]
	pn.buffer = text.NewBuffer(p.text.Fonts.Default(), text.Metrics{FontSize: f.fontSize, LineHeight: f.fontSize}, colorOf(f))
	if err := pn.Update(frames); err != nil {
		pn.Release()
		return nil, err
	}
	return pn, nil
}

func (pn *panel) Update(frames []panelFrame) error {
	if len(frames) == 0 {
		return nil
	}
	f := frames[0]
	if err := pn.panel.Update([]panelUniform{f.panel}); err != nil {
		return err
	}
	if err := pn.placement.Update([]placementUniform{f.placement}); err != nil {
		return err
	}

	pn.buffer.SetText(f.text)
	pn.buffer.SetMetrics(text.Metrics{FontSize: f.fontSize, LineHeight: f.fontSize})
	pn.buffer.SetColor(colorOf(f))
	verts, rebuilt, err := pn.text.Prepare(pn.buffer)
	if errors.Is(err, text.ErrOutOfSpace) {
		logger.Log.WithError(err).WithField("entity", pn.entity).Warn("menu text skipped this frame")
		return nil
	}
	if err != nil {
		return err
	}
	if rebuilt {
		return pn.glyphs.Update(verts)
	}
	return nil
}

func (pn *panel) Release() {
	if pn.panel != nil {
		pn.panel.Release()
	}
	if pn.placement != nil {
		pn.placement.Release()
	}
	if pn.glyphs != nil {
		pn.glyphs.Release()
	}
}

func colorOf(f panelFrame) colors.Packed { return f.color.Pack() }
