package text

import (
	"math"
	"strings"
	"unicode"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/hubastard/skirmish/engine/colors"
)

// SubpixelBin quantises the fractional pen position into quarters.
type SubpixelBin uint8

const (
	BinZero SubpixelBin = iota
	BinOne
	BinTwo
	BinThree
)

// Offset returns the bin's fractional offset in pixels.
func (b SubpixelBin) Offset() float32 { return float32(b) * 0.25 }

// binPosition splits pos into an integer pixel and a subpixel bin.
func binPosition(pos float32) (int, SubpixelBin) {
	whole := float32(math.Floor(float64(pos)))
	frac := pos - whole
	switch {
	case frac < 0.125:
		return int(whole), BinZero
	case frac < 0.375:
		return int(whole), BinOne
	case frac < 0.625:
		return int(whole), BinTwo
	case frac < 0.875:
		return int(whole), BinThree
	}
	return int(whole) + 1, BinZero
}

// CacheKey identifies one rasterised glyph image.
type CacheKey struct {
	Font     FontID
	Glyph    uint16
	SizeBits uint32 // math.Float32bits of the pixel size
	XBin     SubpixelBin
	YBin     SubpixelBin
}

// NewCacheKey builds the key for a glyph drawn at (x, y) and returns the
// whole-pixel position to draw its image at.
func NewCacheKey(font FontID, glyph uint16, size, x, y float32) (CacheKey, int, int) {
	px, xb := binPosition(x)
	py, yb := binPosition(y)
	return CacheKey{
		Font:     font,
		Glyph:    glyph,
		SizeBits: math.Float32bits(size),
		XBin:     xb,
		YBin:     yb,
	}, px, py
}

func (k CacheKey) Size() float32 { return math.Float32frombits(k.SizeBits) }

type Metrics struct {
	FontSize   float32
	LineHeight float32
	// WrapWidth breaks lines wider than this many pixels, at a space when
	// the line has one and between glyphs otherwise. Zero never wraps.
	WrapWidth  float32
}

// LayoutGlyph is a positioned glyph. X and Y are whole pixels relative to
// the line's baseline origin, Y growing downward.
type LayoutGlyph struct {
	Key      CacheKey
	X, Y     float32
	Color    colors.Packed
	HasColor bool // Color overrides the buffer colour
}

type LayoutLine struct {
	Glyphs []LayoutGlyph
	LineY  float32 // baseline, measured down from the top of the block
	Width  float32
}

// Shaper turns text into positioned glyphs. Every '\n' starts a new line,
// and lines wider than Metrics.WrapWidth are broken further.
type Shaper interface {
	Layout(font FontID, s string, m Metrics) []LayoutLine
}

// HarfbuzzShaper shapes text with go-text/typesetting.
type HarfbuzzShaper struct {
	fonts  *FontSystem
	shaper shaping.HarfbuzzShaper
	faces  map[FontID]*gtfont.Face
}

func NewHarfbuzzShaper(fonts *FontSystem) *HarfbuzzShaper {
	return &HarfbuzzShaper{fonts: fonts, faces: map[FontID]*gtfont.Face{}}
}

func (s *HarfbuzzShaper) face(id FontID) *gtfont.Face {
	if f, ok := s.faces[id]; ok {
		return f
	}
	fnt, ok := s.fonts.Font(id)
	if !ok {
		return nil
	}
	f := gtfont.NewFace(fnt.shape)
	s.faces[id] = f
	return f
}

func (s *HarfbuzzShaper) Layout(fontID FontID, str string, m Metrics) []LayoutLine {
	face := s.face(fontID)
	fnt, ok := s.fonts.Font(fontID)
	if face == nil || !ok {
		return nil
	}
	ascent, descent := fnt.VMetrics(m.FontSize)
	// centre the glyph box in the line box
	baseline := (m.LineHeight + ascent - descent) / 2

	var lines []LayoutLine
	newLine := func() *LayoutLine {
		lines = append(lines, LayoutLine{LineY: float32(len(lines))*m.LineHeight + baseline})
		return &lines[len(lines)-1]
	}
	for _, text := range strings.Split(str, "\n") {
		runes := []rune(text)
		if len(runes) == 0 {
			newLine()
			continue
		}
		out := s.shaper.Shape(shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: di.DirectionLTR,
			Face:      face,
			Size:      floatToFixed(m.FontSize),
			Script:    detectScript(runes),
			Language:  language.NewLanguage("en"),
		})

		pens := make([]float32, len(out.Glyphs)+1)
		spaces := make([]bool, len(out.Glyphs))
		for i, g := range out.Glyphs {
			pens[i+1] = pens[i] + fixedToFloat(g.Advance)
			if c := g.ClusterIndex; c >= 0 && c < len(runes) {
				spaces[i] = unicode.IsSpace(runes[c])
			}
		}

		for _, span := range wrapSpans(pens, spaces, m.WrapWidth) {
			line := newLine()
			start := pens[span[0]]
			line.Glyphs = make([]LayoutGlyph, 0, span[1]-span[0])
			for i := span[0]; i < span[1]; i++ {
				g := out.Glyphs[i]
				x := pens[i] - start + fixedToFloat(g.XOffset)
				y := -fixedToFloat(g.YOffset)
				key, px, py := NewCacheKey(fontID, uint16(g.GlyphID), m.FontSize, x, y)
				line.Glyphs = append(line.Glyphs, LayoutGlyph{Key: key, X: float32(px), Y: float32(py)})
			}
			line.Width = pens[span[1]] - start
		}
	}
	return lines
}

// wrapSpans splits glyphs [0, n) into [start, end) runs no wider than width.
// pens[i] is the pen position before glyph i. Spaces may hang past the edge;
// a run with no space to break at is cut before the glyph that overflows.
func wrapSpans(pens []float32, spaces []bool, width float32) [][2]int {
	n := len(spaces)
	if width <= 0 || n == 0 {
		return [][2]int{{0, n}}
	}
	var spans [][2]int
	start, brk := 0, 0
	for i := 0; i < n; i++ {
		if spaces[i] {
			brk = i + 1
			continue
		}
		if i == start || pens[i+1]-pens[start] <= width {
			continue
		}
		cut := i
		if brk > start {
			cut = brk
		}
		spans = append(spans, [2]int{start, cut})
		start, brk = cut, cut
		i = cut - 1
	}
	return append(spans, [2]int{start, n})
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
