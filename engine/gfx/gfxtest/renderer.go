// Package gfxtest provides an in-memory core.Renderer for tests.
package gfxtest

import (
	"fmt"

	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/core"
)

type Texture struct {
	Desc   core.TextureDesc
	Pixels []byte
	Writes int
}

type Buffer struct {
	Desc   core.BufferDesc
	Data   []byte
	Writes int
}

// Renderer records every call. Handles are issued sequentially from 1.
type Renderer struct {
	Textures  map[core.Texture]*Texture
	Buffers   map[core.Buffer]*Buffer
	Pipelines map[core.Pipeline]core.PipelineDesc
	Draws     []core.DrawCmd

	BuffersCreated int
	BuffersDeleted int
	Frames         int

	// SurfaceLost makes BeginFrame fail with core.ErrSurfaceLost.
	SurfaceLost bool
	// UpdateErr, when set, is returned by every UpdateBuffer call.
	UpdateErr error

	next uint32
}

var _ core.Renderer = (*Renderer)(nil)

func New() *Renderer {
	return &Renderer{
		Textures:  map[core.Texture]*Texture{},
		Buffers:   map[core.Buffer]*Buffer{},
		Pipelines: map[core.Pipeline]core.PipelineDesc{},
	}
}

func (r *Renderer) handle() uint32 {
	r.next++
	return r.next
}

func (r *Renderer) Resize(w, h int) {}

func (r *Renderer) BeginFrame(clear colors.Color) error {
	if r.SurfaceLost {
		return core.ErrSurfaceLost
	}
	r.Draws = r.Draws[:0]
	return nil
}

func (r *Renderer) EndFrame() { r.Frames++ }

func (r *Renderer) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width < 1 || desc.Height < 1 {
		return 0, fmt.Errorf("texture %q: invalid size %dx%d", desc.Label, desc.Width, desc.Height)
	}
	px := make([]byte, desc.Width*desc.Height*4)
	copy(px, desc.Pixels)
	h := core.Texture(r.handle())
	r.Textures[h] = &Texture{Desc: desc, Pixels: px}
	return h, nil
}

func (r *Renderer) UpdateTexture(tex core.Texture, x, y, w, h int, pixels []byte) error {
	t, ok := r.Textures[tex]
	if !ok {
		return fmt.Errorf("texture %d: unknown", tex)
	}
	if x < 0 || y < 0 || x+w > t.Desc.Width || y+h > t.Desc.Height {
		return fmt.Errorf("texture %d: region %d,%d %dx%d out of bounds", tex, x, y, w, h)
	}
	if len(pixels) < w*h*4 {
		return fmt.Errorf("texture %d: short pixel data", tex)
	}
	for row := 0; row < h; row++ {
		dst := ((y+row)*t.Desc.Width + x) * 4
		copy(t.Pixels[dst:dst+w*4], pixels[row*w*4:(row+1)*w*4])
	}
	t.Writes++
	return nil
}

func (r *Renderer) DeleteTexture(tex core.Texture) { delete(r.Textures, tex) }

func (r *Renderer) CreateBuffer(desc core.BufferDesc) (core.Buffer, error) {
	h := core.Buffer(r.handle())
	r.Buffers[h] = &Buffer{Desc: desc, Data: append([]byte(nil), desc.Data...)}
	r.BuffersCreated++
	return h, nil
}

func (r *Renderer) UpdateBuffer(buf core.Buffer, offset int, data []byte) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	b, ok := r.Buffers[buf]
	if !ok {
		return fmt.Errorf("buffer %d: unknown", buf)
	}
	if offset+len(data) > len(b.Data) {
		return fmt.Errorf("buffer %d: write of %d bytes at %d overflows %d", buf, len(data), offset, len(b.Data))
	}
	copy(b.Data[offset:], data)
	b.Writes++
	return nil
}

func (r *Renderer) DeleteBuffer(buf core.Buffer) {
	if _, ok := r.Buffers[buf]; ok {
		r.BuffersDeleted++
	}
	delete(r.Buffers, buf)
}

func (r *Renderer) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	h := core.Pipeline(r.handle())
	r.Pipelines[h] = desc
	return h, nil
}

func (r *Renderer) Draw(cmd core.DrawCmd) { r.Draws = append(r.Draws, cmd) }

func (r *Renderer) Shutdown() {}
