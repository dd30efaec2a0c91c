package text

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/hubastard/skirmish/engine/colors"
)

// TextVertex is one glyph instance. GlyphPos is the glyph's horizontal
// centre and top edge in block space, Y up.
type TextVertex struct {
	GlyphPos  [2]float32
	GlyphSize [2]float32
	UVStart   [2]float32
	UVEnd     [2]float32
	Color     colors.Packed
}

type lineEntry struct {
	hash   uint64
	length int
}

// Buffer is a block of text that remembers a hash per laid-out line so it
// only rebuilds its vertices when something visible changed.
type Buffer struct {
	font    FontID
	text    string
	metrics Metrics
	color   colors.Packed
	lines   []lineEntry
}

func NewBuffer(font FontID, m Metrics, color colors.Packed) *Buffer {
	return &Buffer{font: font, metrics: m, color: color}
}

func (b *Buffer) Text() string             { return b.text }
func (b *Buffer) SetText(s string)         { b.text = s }
func (b *Buffer) Metrics() Metrics         { return b.metrics }
func (b *Buffer) SetMetrics(m Metrics)     { b.metrics = m }
func (b *Buffer) SetColor(c colors.Packed) { b.color = c }

// Prepare lays the text out, makes sure every glyph is in the atlas and
// returns the full vertex list when any line changed since the last call,
// including a glyph that now sits in a different atlas slot.
// When nothing changed it returns (nil, false, nil) and the caller keeps its
// previous vertices. Glyphs with no image are skipped.
func (b *Buffer) Prepare(atlas *Atlas, shaper Shaper) ([]TextVertex, bool, error) {
	type local struct {
		x, y  float32
		key   CacheKey
		color colors.Packed
	}

	layout := shaper.Layout(b.font, b.text, b.metrics)
	hashes := make([]lineEntry, len(layout))
	glyphs := make([]local, 0, 64)
	var scratch [24]byte

	for i, line := range layout {
		h := xxhash.New()
		n := 0
		for _, g := range line.Glyphs {
			if err := atlas.UseGlyph(g.Key); err != nil {
				if errors.Is(err, ErrNoGlyphImage) {
					continue
				}
				return nil, false, fmt.Errorf("line %d glyph %d: %w", i, g.Key.Glyph, err)
			}
			color := b.color
			if g.HasColor {
				color = g.Color
			}
			// the atlas slot is part of the hash: a glyph evicted and
			// re-cached elsewhere must invalidate the vertices
			data, _ := atlas.Glyph(g.Key)
			hashKey(&scratch, g.Key, color, data.UVStart)
			_, _ = h.Write(scratch[:])
			n++
			glyphs = append(glyphs, local{x: g.X, y: -(line.LineY + g.Y), key: g.Key, color: color})
		}
		hashes[i] = lineEntry{hash: h.Sum64(), length: n}
	}

	rebuild := len(layout) < len(b.lines)
	for i, e := range hashes {
		if i >= len(b.lines) {
			b.lines = append(b.lines, lineEntry{})
		}
		if b.lines[i] != e {
			b.lines[i] = e
			rebuild = true
		}
	}
	b.lines = b.lines[:len(hashes)]
	if !rebuild {
		return nil, false, nil
	}

	out := make([]TextVertex, 0, len(glyphs))
	for _, g := range glyphs {
		data, ok := atlas.Glyph(g.key)
		if !ok {
			continue
		}
		out = append(out, TextVertex{
			GlyphPos:  [2]float32{g.x + data.Left + data.Width/2, g.y + data.Top},
			GlyphSize: [2]float32{data.Width, data.Height},
			UVStart:   data.UVStart,
			UVEnd:     data.UVEnd,
			Color:     g.color,
		})
	}
	return out, true, nil
}

func hashKey(buf *[24]byte, k CacheKey, c colors.Packed, uv [2]float32) {
	binary.LittleEndian.PutUint16(buf[0:], uint16(k.Font))
	binary.LittleEndian.PutUint16(buf[2:], k.Glyph)
	binary.LittleEndian.PutUint32(buf[4:], k.SizeBits)
	buf[8] = byte(k.XBin)
	buf[9] = byte(k.YBin)
	buf[10], buf[11] = 0, 0
	binary.LittleEndian.PutUint32(buf[12:], uint32(c))
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(uv[0]))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(uv[1]))
}
