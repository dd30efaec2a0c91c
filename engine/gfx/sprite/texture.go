package sprite

import (
	"fmt"

	"github.com/hubastard/skirmish/engine/assets"
	"github.com/hubastard/skirmish/engine/colors"
	"github.com/hubastard/skirmish/engine/core"
)

// TextureID is a stable identifier for a loaded texture. IDs are issued by a
// TextureStorage and never reused by it.
type TextureID uint32

type LoadedTexture struct {
	id            TextureID
	tex           core.Texture
	Width, Height int
	Label         string
}

func (t *LoadedTexture) ID() TextureID        { return t.id }
func (t *LoadedTexture) Handle() core.Texture { return t.tex }

// TextureStorage owns every sprite texture and hands out their ids.
type TextureStorage struct {
	r        core.Renderer
	next     TextureID
	textures map[TextureID]*LoadedTexture
	white    *LoadedTexture
}

func NewTextureStorage(r core.Renderer) (*TextureStorage, error) {
	s := &TextureStorage{r: r, textures: map[TextureID]*LoadedTexture{}}
	white, err := s.Solid("white", colors.White)
	if err != nil {
		return nil, err
	}
	s.white = white
	return s, nil
}

// Load uploads tightly packed RGBA8 pixels.
func (s *TextureStorage) Load(label string, w, h int, rgba []byte) (*LoadedTexture, error) {
	if len(rgba) != w*h*4 {
		return nil, fmt.Errorf("texture %q: got %d bytes for %dx%d", label, len(rgba), w, h)
	}
	tex, err := s.r.CreateTexture(core.TextureDesc{
		Width:  w,
		Height: h,
		Format: core.FormatRGBA8,
		Filter: core.FilterNearest,
		Pixels: rgba,
		Label:  label,
	})
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", label, err)
	}
	s.next++
	t := &LoadedTexture{id: s.next, tex: tex, Width: w, Height: h, Label: label}
	s.textures[t.id] = t
	return t, nil
}

// LoadFile loads a PNG from disk.
func (s *TextureStorage) LoadFile(path string) (*LoadedTexture, error) {
	w, h, px, err := assets.LoadPNG(path)
	if err != nil {
		return nil, err
	}
	return s.Load(path, w, h, px)
}

// Solid makes a 1x1 texture of a single colour.
func (s *TextureStorage) Solid(label string, c colors.Color) (*LoadedTexture, error) {
	p := c.Pack()
	return s.Load(label, 1, 1, []byte{byte(p >> 16), byte(p >> 8), byte(p), byte(p >> 24)})
}

// Default is the 1x1 white texture used by untextured sprites.
func (s *TextureStorage) Default() *LoadedTexture { return s.white }

func (s *TextureStorage) Get(id TextureID) (*LoadedTexture, bool) {
	t, ok := s.textures[id]
	return t, ok
}

func (s *TextureStorage) Len() int { return len(s.textures) }

// Release frees every texture.
func (s *TextureStorage) Release() {
	for id, t := range s.textures {
		s.r.DeleteTexture(t.tex)
		delete(s.textures, id)
	}
}
