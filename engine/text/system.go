package text

import (
	"fmt"

	"github.com/hubastard/skirmish/engine/core"
)

// System bundles the fonts, shaper and glyph atlas shared by every text
// buffer drawn with one renderer.
type System struct {
	Fonts  *FontSystem
	Shaper Shaper
	Atlas  *Atlas
}

func NewSystem(r core.Renderer, atlasSize int) (*System, error) {
	fonts, err := NewFontSystem()
	if err != nil {
		return nil, err
	}
	atlas, err := NewAtlas(r, NewOutlineRasterizer(fonts), atlasSize)
	if err != nil {
		return nil, fmt.Errorf("text atlas: %w", err)
	}
	return &System{
		Fonts:  fonts,
		Shaper: NewHarfbuzzShaper(fonts),
		Atlas:  atlas,
	}, nil
}

// Prepare runs b against the shared atlas and shaper.
func (s *System) Prepare(b *Buffer) ([]TextVertex, bool, error) {
	return b.Prepare(s.Atlas, s.Shaper)
}
