package sprite

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/hubastard/skirmish/engine/assets"
	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/gfx/pool"
	"github.com/hubastard/skirmish/engine/transform"
)

type instance struct {
	Model mgl32.Mat4
	Color [4]float32
	Size  [2]float32
	UVMin [2]float32
	UVMax [2]float32
	_     [2]float32
}

type quadVertex struct {
	Pos [2]float32
	UV  [2]float32
}

// unit quad as a triangle strip, UVs with a top-left origin
var quadVertices = []quadVertex{
	{Pos: [2]float32{-0.5, -0.5}, UV: [2]float32{0, 1}},
	{Pos: [2]float32{0.5, -0.5}, UV: [2]float32{1, 1}},
	{Pos: [2]float32{-0.5, 0.5}, UV: [2]float32{0, 0}},
	{Pos: [2]float32{0.5, 0.5}, UV: [2]float32{1, 0}},
}

var quadLayout = core.VertexLayout{
	Stride: int32(pool.SizeOf[quadVertex]()),
	Attribs: []core.VertexAttrib{
		{Location: 0, Type: core.AttribFloat32, Components: 2, Offset: 0}, // pos
		{Location: 1, Type: core.AttribFloat32, Components: 2, Offset: 8}, // uv
	},
}

var instanceLayout = core.VertexLayout{
	Stride:      int32(pool.SizeOf[instance]()),
	PerInstance: true,
	Attribs: []core.VertexAttrib{
		{Location: 2, Type: core.AttribFloat32, Components: 4, Offset: 0}, // model columns
		{Location: 3, Type: core.AttribFloat32, Components: 4, Offset: 16},
		{Location: 4, Type: core.AttribFloat32, Components: 4, Offset: 32},
		{Location: 5, Type: core.AttribFloat32, Components: 4, Offset: 48},
		{Location: 6, Type: core.AttribFloat32, Components: 4, Offset: 64}, // color
		{Location: 7, Type: core.AttribFloat32, Components: 2, Offset: 80}, // size
		{Location: 8, Type: core.AttribFloat32, Components: 2, Offset: 88}, // uv min
		{Location: 9, Type: core.AttribFloat32, Components: 2, Offset: 96}, // uv max
	},
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls     int
	InstanceCount int
	TextureCount  int
}

// Pipeline draws every entity carrying a Sprite and a Transform, one
// instanced draw per texture.
type Pipeline struct {
	r        core.Renderer
	textures *TextureStorage
	pipe     core.Pipeline
	quad     core.Buffer
	pool     *pool.Pool[TextureID, instance, *batch]
	query    *donburi.Query
	order    []TextureID
	stats    Statistics
}

func NewPipeline(r core.Renderer, textures *TextureStorage) (*Pipeline, error) {
	vs, fs, err := assets.LoadProgram("sprite")
	if err != nil {
		return nil, err
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vs,
		FragmentSource: fs,
		Blend:          true,
		DepthTest:      true,
		Label:          "sprite",
	})
	if err != nil {
		return nil, fmt.Errorf("create sprite pipeline: %w", err)
	}
	quad, err := r.CreateBuffer(core.BufferDesc{
		Usage: core.BufferVertex,
		Data:  pool.Bytes(quadVertices),
		Label: "sprite quad",
	})
	if err != nil {
		return nil, fmt.Errorf("create sprite quad: %w", err)
	}
	p := &Pipeline{
		r:        r,
		textures: textures,
		pipe:     pipe,
		quad:     quad,
		query:    donburi.NewQuery(filter.Contains(Component, transform.Component)),
	}
	p.pool = pool.New(func(id TextureID, data []instance) (*batch, error) {
		buf, err := pool.NewInstanceBuffer(r, core.BufferVertex, "sprite instances", data)
		if err != nil {
			return nil, err
		}
		return &batch{buf: buf}, nil
	})
	return p, nil
}

// Prepare groups the sprites in world by texture and syncs the instance
// buffers. Textures no longer used by any sprite lose their buffer.
func (p *Pipeline) Prepare(world donburi.World) error {
	requested := map[TextureID][]instance{}
	def := p.textures.Default()
	p.query.Each(world, func(entry *donburi.Entry) {
		s := Component.Get(entry)
		tr := transform.Component.Get(entry)
		tex := s.Texture
		if tex == nil {
			tex = def
		}
		requested[tex.ID()] = append(requested[tex.ID()], instance{
			Model: tr.Matrix(),
			Color: s.Color,
			Size:  s.Size,
			UVMin: [2]float32{s.Region.U0, s.Region.V0},
			UVMax: [2]float32{s.Region.U1, s.Region.V1},
		})
	})
	err := p.pool.Reconcile(requested)

	p.order = p.order[:0]
	p.pool.Each(func(id TextureID, _ *batch) { p.order = append(p.order, id) })
	sort.Slice(p.order, func(i, j int) bool { return p.order[i] < p.order[j] })
	return err
}

func (p *Pipeline) Render(vp mgl32.Mat4) {
	p.stats = Statistics{}
	uniforms := map[string]any{"uViewProj": [16]float32(vp)}
	for _, id := range p.order {
		b, _ := p.pool.Get(id)
		tex, ok := p.textures.Get(id)
		if !ok || b.buf.Count() == 0 {
			continue
		}
		p.r.Draw(core.DrawCmd{
			Pipeline:      p.pipe,
			Topology:      core.TriangleStrip,
			VertexCount:   int32(len(quadVertices)),
			InstanceCount: int32(b.buf.Count()),
			Bindings: []core.VertexBinding{
				{Buffer: p.quad, Layout: quadLayout},
				{Buffer: b.buf.Buffer(), Layout: instanceLayout},
			},
			Uniforms: uniforms,
			Textures: map[string]core.Texture{"uTexture": tex.Handle()},
		})
		p.stats.DrawCalls++
		p.stats.InstanceCount += b.buf.Count()
		p.stats.TextureCount++
	}
}

// Stats returns the current frame statistics snapshot.
func (p *Pipeline) Stats() Statistics { return p.stats }

func (p *Pipeline) Release() {
	p.pool.Clear()
	p.r.DeleteBuffer(p.quad)
}

type batch struct {
	buf *pool.InstanceBuffer[instance]
}

func (b *batch) Update(data []instance) error { return b.buf.Update(data) }
func (b *batch) Release()                     { b.buf.Release() }
