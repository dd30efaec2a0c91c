package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/skirmish/engine/core"
	"github.com/hubastard/skirmish/engine/logger"
)

type pipeline struct {
	label   string
	program uint32
	blend   bool
	depth   bool

	uniforms map[string]int32
	// uniform block name -> binding point, or -1 when the program has no such block
	blocks   map[string]int32
	samplers map[string]int32
}

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(cstr(desc.VertexSource), cstr(desc.FragmentSource))
	if err != nil {
		return 0, fmt.Errorf("gl: pipeline %q: %w", desc.Label, err)
	}
	h := core.Pipeline(prog)
	r.pipelines[h] = &pipeline{
		label:    desc.Label,
		program:  prog,
		blend:    desc.Blend,
		depth:    desc.DepthTest,
		uniforms: map[string]int32{},
		blocks:   map[string]int32{},
		samplers: map[string]int32{},
	}
	logger.Log.WithField("pipeline", desc.Label).Debug("pipeline created")
	return h, nil
}

func (p *pipeline) uniform(name string) int32 {
	loc, ok := p.uniforms[name]
	if !ok {
		loc = gl.GetUniformLocation(p.program, gl.Str(cstr(name)))
		p.uniforms[name] = loc
	}
	return loc
}

func (p *pipeline) block(name string) int32 {
	binding, ok := p.blocks[name]
	if ok {
		return binding
	}
	idx := gl.GetUniformBlockIndex(p.program, gl.Str(cstr(name)))
	binding = -1
	if idx != gl.INVALID_INDEX {
		binding = int32(len(p.blocks))
		gl.UniformBlockBinding(p.program, idx, uint32(binding))
	}
	p.blocks[name] = binding
	return binding
}

func (p *pipeline) sampler(name string) int32 {
	unit, ok := p.samplers[name]
	if !ok {
		unit = int32(len(p.samplers))
		p.samplers[name] = unit
	}
	return unit
}

func setUniform(loc int32, v any) error {
	switch v := v.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case int32:
		gl.Uniform1i(loc, v)
	case [2]float32:
		gl.Uniform2f(loc, v[0], v[1])
	case [4]float32:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	default:
		return fmt.Errorf("unsupported uniform type %T", v)
	}
	return nil
}

func primitive(t core.Topology) uint32 {
	if t == core.Triangles {
		return gl.TRIANGLES
	}
	return gl.TRIANGLE_STRIP
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := r.pipelines[cmd.Pipeline]
	if !ok {
		logger.Log.WithField("pipeline", cmd.Pipeline).Warn("draw with unknown pipeline")
		return
	}
	if cmd.InstanceCount <= 0 || cmd.VertexCount <= 0 {
		return
	}

	gl.UseProgram(p.program)
	if p.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	if p.depth {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	gl.BindVertexArray(r.vao)
	var enabled []uint32
	for _, b := range cmd.Bindings {
		buf, ok := r.buffers[b.Buffer]
		if !ok {
			logger.Log.WithField("pipeline", p.label).Warn("draw with unknown vertex buffer")
			return
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, buf.id)
		divisor := uint32(0)
		if b.Layout.PerInstance {
			divisor = 1
		}
		for _, a := range b.Layout.Attribs {
			gl.EnableVertexAttribArray(a.Location)
			if a.Type == core.AttribUint32 {
				gl.VertexAttribIPointer(a.Location, a.Components, gl.UNSIGNED_INT, b.Layout.Stride, gl.PtrOffset(a.Offset))
			} else {
				gl.VertexAttribPointer(a.Location, a.Components, gl.FLOAT, false, b.Layout.Stride, gl.PtrOffset(a.Offset))
			}
			gl.VertexAttribDivisor(a.Location, divisor)
			enabled = append(enabled, a.Location)
		}
	}

	for name, v := range cmd.Uniforms {
		loc := p.uniform(name)
		if loc < 0 {
			continue
		}
		if err := setUniform(loc, v); err != nil {
			logger.Log.WithError(err).WithField("uniform", name).Warn("uniform skipped")
		}
	}
	for name, h := range cmd.UniformBlocks {
		binding := p.block(name)
		buf, ok := r.buffers[h]
		if binding < 0 || !ok {
			continue
		}
		gl.BindBufferBase(gl.UNIFORM_BUFFER, uint32(binding), buf.id)
	}
	for name, h := range cmd.Textures {
		t, ok := r.textures[h]
		if !ok {
			continue
		}
		unit := p.sampler(name)
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		if loc := p.uniform(name); loc >= 0 {
			gl.Uniform1i(loc, unit)
		}
	}

	gl.DrawArraysInstanced(primitive(cmd.Topology), 0, cmd.VertexCount, cmd.InstanceCount)

	for _, loc := range enabled {
		gl.VertexAttribDivisor(loc, 0)
		gl.DisableVertexAttribArray(loc)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}
