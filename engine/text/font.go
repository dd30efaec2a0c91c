package text

import (
	"bytes"
	"fmt"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

type FontID uint16

// Font is one loaded face, parsed once for shaping and once for outlines.
type Font struct {
	ID     FontID
	Name   string
	shape  *gtfont.Font
	sfnt   *sfnt.Font
	buffer sfnt.Buffer
}

// FontSystem owns the loaded fonts. It is not safe for concurrent use.
type FontSystem struct {
	fonts  []*Font
	byName map[string]FontID
}

// NewFontSystem creates a font system with Go Regular loaded as the default
// font.
func NewFontSystem() (*FontSystem, error) {
	fs := &FontSystem{byName: map[string]FontID{}}
	if _, err := fs.Load("Go Regular", goregular.TTF); err != nil {
		return nil, err
	}
	return fs, nil
}

// Load parses a TTF/OTF font and registers it under name.
func (fs *FontSystem) Load(name string, data []byte) (FontID, error) {
	if id, ok := fs.byName[name]; ok {
		return id, nil
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("parse font %q: %w", name, err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("parse font %q outlines: %w", name, err)
	}
	id := FontID(len(fs.fonts))
	fs.fonts = append(fs.fonts, &Font{ID: id, Name: name, shape: face.Font, sfnt: sf})
	fs.byName[name] = id
	return id, nil
}

func (fs *FontSystem) Font(id FontID) (*Font, bool) {
	if int(id) >= len(fs.fonts) {
		return nil, false
	}
	return fs.fonts[id], true
}

// Default returns the first loaded font.
func (fs *FontSystem) Default() FontID { return 0 }

// VMetrics returns ascent and descent in pixels at size, both positive.
func (f *Font) VMetrics(size float32) (ascent, descent float32) {
	m, err := f.sfnt.Metrics(&f.buffer, fixed.Int26_6(size*64), font.HintingNone)
	if err != nil {
		return size * 0.8, size * 0.2
	}
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

func fixedToFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }

func floatToFixed(v float32) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
