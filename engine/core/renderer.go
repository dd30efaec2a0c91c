package core

import (
	"errors"

	"github.com/hubastard/skirmish/engine/colors"
)

// ErrSurfaceLost is returned by BeginFrame when the frame surface cannot be
// drawn to (minimised window, lost context). The frame should be skipped.
var ErrSurfaceLost = errors.New("render surface lost")

// GPU object handles. Zero is never a valid handle.
type (
	Texture  uint32
	Buffer   uint32
	Pipeline uint32
)

type TextureFormat int

const (
	FormatRGBA8 TextureFormat = iota
)

type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Filter        TextureFilter
	Pixels        []byte // optional initial contents, tightly packed
	Label         string
}

type BufferUsage int

const (
	BufferVertex BufferUsage = iota
	BufferUniform
)

type BufferDesc struct {
	Usage BufferUsage
	Data  []byte
	Label string
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
	AttribUint32
)

type VertexAttrib struct {
	Location   uint32
	Type       AttribType
	Components int32
	Offset     int
}

// VertexLayout describes one buffer binding. PerInstance advances the
// attributes once per instance rather than once per vertex.
type VertexLayout struct {
	Stride      int32
	PerInstance bool
	Attribs     []VertexAttrib
}

type Topology int

const (
	TriangleStrip Topology = iota
	Triangles
)

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	Blend          bool
	DepthTest      bool
	Label          string
}

type VertexBinding struct {
	Buffer Buffer
	Layout VertexLayout
}

// DrawCmd is one instanced draw. Uniform values may be float32, int32,
// [2]float32, [4]float32 or [16]float32.
type DrawCmd struct {
	Pipeline      Pipeline
	Topology      Topology
	VertexCount   int32
	InstanceCount int32
	Bindings      []VertexBinding
	Uniforms      map[string]any
	UniformBlocks map[string]Buffer
	Textures      map[string]Texture
}

// Renderer is the GPU backend contract used by the render pipelines.
type Renderer interface {
	Resize(w, h int)
	BeginFrame(clear colors.Color) error
	EndFrame()

	CreateTexture(desc TextureDesc) (Texture, error)
	UpdateTexture(tex Texture, x, y, w, h int, pixels []byte) error
	DeleteTexture(tex Texture)

	CreateBuffer(desc BufferDesc) (Buffer, error)
	UpdateBuffer(buf Buffer, offset int, data []byte) error
	DeleteBuffer(buf Buffer)

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	Draw(cmd DrawCmd)

	Shutdown()
}
