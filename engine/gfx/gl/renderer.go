package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/logger"
)

type texture struct {
	id   uint32
	w, h int
}

type buffer struct {
	id     uint32
	target uint32
	size   int
}

// RendererGL implements core.Renderer on an OpenGL 3.3 core context. Handles
// are the GL object names.
type RendererGL struct {
	win core.Window
	vao uint32

	textures  map[core.Texture]*texture
	buffers   map[core.Buffer]*buffer
	pipelines map[core.Pipeline]*pipeline
}

func NewRendererGL(win core.Window, _ core.Config) (core.Renderer, error) {
	r := &RendererGL{
		win:       win,
		textures:  map[core.Texture]*texture{},
		buffers:   map[core.Buffer]*buffer{},
		pipelines: map[core.Pipeline]*pipeline{},
	}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	gl.GenVertexArrays(1, &r.vao)
	if r.vao == 0 {
		return fmt.Errorf("gl: create vertex array")
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.DepthFunc(gl.LEQUAL)
	logger.Log.WithField("version", gl.GoStr(gl.GetString(gl.VERSION))).Info("GL renderer ready")
	return nil
}

func (r *RendererGL) Shutdown() {
	for _, p := range r.pipelines {
		gl.DeleteProgram(p.program)
	}
	for h := range r.buffers {
		r.DeleteBuffer(h)
	}
	for h := range r.textures {
		r.DeleteTexture(h)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	clear(r.pipelines)
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) BeginFrame(c colors.Color) error {
	if w, h := r.win.FramebufferSize(); w == 0 || h == 0 {
		return core.ErrSurfaceLost
	}
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (r *RendererGL) EndFrame() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		logger.Log.WithField("code", fmt.Sprintf("0x%x", code)).Warn("gl error")
	}
}

// --- textures ---

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return 0, fmt.Errorf("gl: texture %q: invalid size %dx%d", desc.Label, desc.Width, desc.Height)
	}
	if desc.Pixels != nil && len(desc.Pixels) != desc.Width*desc.Height*4 {
		return 0, fmt.Errorf("gl: texture %q: %d bytes for %dx%d", desc.Label, len(desc.Pixels), desc.Width, desc.Height)
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	filter := int32(gl.LINEAR)
	if desc.Filter == core.FilterNearest {
		filter = gl.NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	px := gl.Ptr(nil)
	if len(desc.Pixels) > 0 {
		px = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, px)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	h := core.Texture(id)
	r.textures[h] = &texture{id: id, w: desc.Width, h: desc.Height}
	return h, nil
}

func (r *RendererGL) UpdateTexture(tex core.Texture, x, y, w, h int, pixels []byte) error {
	t, ok := r.textures[tex]
	if !ok {
		return fmt.Errorf("gl: update unknown texture %d", tex)
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > t.w || y+h > t.h {
		return fmt.Errorf("gl: texture %d: region %d,%d %dx%d outside %dx%d", tex, x, y, w, h, t.w, t.h)
	}
	if len(pixels) != w*h*4 {
		return fmt.Errorf("gl: texture %d: %d bytes for %dx%d", tex, len(pixels), w, h)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (r *RendererGL) DeleteTexture(tex core.Texture) {
	t, ok := r.textures[tex]
	if !ok {
		return
	}
	gl.DeleteTextures(1, &t.id)
	delete(r.textures, tex)
}

// --- buffers ---

func bufferTarget(u core.BufferUsage) uint32 {
	if u == core.BufferUniform {
		return gl.UNIFORM_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (r *RendererGL) CreateBuffer(desc core.BufferDesc) (core.Buffer, error) {
	b := &buffer{target: bufferTarget(desc.Usage), size: len(desc.Data)}
	gl.GenBuffers(1, &b.id)
	if b.id == 0 {
		return 0, fmt.Errorf("gl: create buffer %q", desc.Label)
	}
	gl.BindBuffer(b.target, b.id)
	if len(desc.Data) > 0 {
		gl.BufferData(b.target, len(desc.Data), gl.Ptr(desc.Data), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(b.target, 0, nil, gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(b.target, 0)

	h := core.Buffer(b.id)
	r.buffers[h] = b
	return h, nil
}

func (r *RendererGL) UpdateBuffer(buf core.Buffer, offset int, data []byte) error {
	b, ok := r.buffers[buf]
	if !ok {
		return fmt.Errorf("gl: update unknown buffer %d", buf)
	}
	if offset < 0 || offset+len(data) > b.size {
		return fmt.Errorf("gl: buffer %d: write of %d at %d exceeds %d bytes", buf, len(data), offset, b.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(b.target, b.id)
	gl.BufferSubData(b.target, offset, len(data), gl.Ptr(data))
	gl.BindBuffer(b.target, 0)
	return nil
}

func (r *RendererGL) DeleteBuffer(buf core.Buffer) {
	b, ok := r.buffers[buf]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	delete(r.buffers, buf)
}
