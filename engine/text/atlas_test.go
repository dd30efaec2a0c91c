package text

import (
	"errors"
	"testing"

	"github.com/hubastard/skirmish/engine/gfx/gfxtest"
)

// fakeRaster returns a w x h image for every glyph except those listed in
// missing. Mask bytes are the glyph id.
type fakeRaster struct {
	w, h    int
	sizes   map[uint16][2]int
	missing map[uint16]bool
	calls   int
}

func (f *fakeRaster) Rasterize(key CacheKey) (*GlyphImage, bool) {
	f.calls++
	if f.missing[key.Glyph] {
		return nil, false
	}
	w, h := f.w, f.h
	if s, ok := f.sizes[key.Glyph]; ok {
		w, h = s[0], s[1]
	}
	mask := make([]byte, w*h)
	for i := range mask {
		mask[i] = byte(key.Glyph)
	}
	return &GlyphImage{Left: 1, Top: h, Width: w, Height: h, Mask: mask}, true
}

func key(g uint16) CacheKey {
	k, _, _ := NewCacheKey(0, g, 30, 0, 0)
	return k
}

func newTestAtlas(t *testing.T, size int, raster Rasterizer) (*Atlas, *gfxtest.Renderer) {
	t.Helper()
	r := gfxtest.New()
	a, err := NewAtlas(r, raster, size)
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	return a, r
}

func TestUseGlyphRoundTrip(t *testing.T) {
	raster := &fakeRaster{w: 8, h: 10}
	a, r := newTestAtlas(t, 64, raster)

	if err := a.UseGlyph(key(7)); err != nil {
		t.Fatalf("UseGlyph: %v", err)
	}
	d, ok := a.Glyph(key(7))
	if !ok {
		t.Fatal("glyph not cached")
	}
	if d.Width != 8 || d.Height != 10 || d.Left != 1 || d.Top != 10 {
		t.Fatalf("metrics = %+v", d)
	}
	du := d.UVEnd[0] - d.UVStart[0]
	dv := d.UVEnd[1] - d.UVStart[1]
	if du != 8.0/64 || dv != 10.0/64 {
		t.Fatalf("uv extent = %v x %v", du, dv)
	}
	if !a.InUse(key(7)) {
		t.Fatal("glyph not pinned after use")
	}

	// texels carry the mask as alpha over white
	tex := r.Textures[a.Texture()]
	x, y := int(d.UVStart[0]*64), int(d.UVStart[1]*64)
	px := tex.Pixels[(y*64+x)*4:]
	if px[0] != 0xff || px[3] != 7 {
		t.Fatalf("texel = %v", px[:4])
	}

	// second use is a cache hit
	if err := a.UseGlyph(key(7)); err != nil {
		t.Fatal(err)
	}
	if raster.calls != 1 {
		t.Fatalf("rasterized %d times, want 1", raster.calls)
	}
}

func TestUseGlyphEvictsLeastRecentlyUsed(t *testing.T) {
	// 32x32 glyphs: four fit in a 64x64 atlas
	a, _ := newTestAtlas(t, 64, &fakeRaster{w: 32, h: 32})
	for g := uint16(1); g <= 4; g++ {
		if err := a.UseGlyph(key(g)); err != nil {
			t.Fatalf("UseGlyph(%d): %v", g, err)
		}
	}
	a.PostRenderTrim()

	if err := a.UseGlyph(key(1)); err != nil {
		t.Fatal(err)
	}
	if err := a.UseGlyph(key(5)); err != nil {
		t.Fatalf("UseGlyph(5): %v", err)
	}

	if _, ok := a.Glyph(key(2)); ok {
		t.Fatal("glyph 2 should have been evicted")
	}
	for _, g := range []uint16{1, 3, 4, 5} {
		if _, ok := a.Glyph(key(g)); !ok {
			t.Fatalf("glyph %d missing", g)
		}
	}
	if a.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", a.Len())
	}
}

func TestUseGlyphOutOfSpace(t *testing.T) {
	a, _ := newTestAtlas(t, 64, &fakeRaster{w: 32, h: 32})
	for g := uint16(1); g <= 4; g++ {
		if err := a.UseGlyph(key(g)); err != nil {
			t.Fatalf("UseGlyph(%d): %v", g, err)
		}
	}
	err := a.UseGlyph(key(5))
	if !errors.Is(err, ErrOutOfSpace) {
		t.Fatalf("UseGlyph(5) = %v, want ErrOutOfSpace", err)
	}
	// pinned glyphs survive
	for g := uint16(1); g <= 4; g++ {
		if _, ok := a.Glyph(key(g)); !ok {
			t.Fatalf("glyph %d evicted while in use", g)
		}
	}
	if _, ok := a.Glyph(key(5)); ok {
		t.Fatal("glyph 5 cached despite the error")
	}
}

func TestUseGlyphNoImage(t *testing.T) {
	a, _ := newTestAtlas(t, 64, &fakeRaster{w: 4, h: 4, missing: map[uint16]bool{9: true}})
	if err := a.UseGlyph(key(9)); !errors.Is(err, ErrNoGlyphImage) {
		t.Fatalf("UseGlyph = %v, want ErrNoGlyphImage", err)
	}
	if a.Len() != 0 || a.InUse(key(9)) {
		t.Fatal("missing glyph was cached")
	}
}

func TestUseGlyphEmptyImage(t *testing.T) {
	raster := &fakeRaster{w: 4, h: 4, sizes: map[uint16][2]int{3: {0, 0}}}
	a, r := newTestAtlas(t, 64, raster)
	if err := a.UseGlyph(key(3)); err != nil {
		t.Fatalf("UseGlyph: %v", err)
	}
	d, ok := a.Glyph(key(3))
	if !ok || d.Width != 0 || d.Height != 0 {
		t.Fatalf("Glyph = %+v, %v", d, ok)
	}
	if w := r.Textures[a.Texture()].Writes; w != 0 {
		t.Fatalf("empty glyph uploaded %d times", w)
	}
}

func TestUseGlyphLargerThanAtlas(t *testing.T) {
	raster := &fakeRaster{w: 8, h: 8, sizes: map[uint16][2]int{9: {100, 100}}}
	a, _ := newTestAtlas(t, 64, raster)
	for g := uint16(1); g <= 3; g++ {
		if err := a.UseGlyph(key(g)); err != nil {
			t.Fatal(err)
		}
	}
	a.PostRenderTrim()

	if err := a.UseGlyph(key(9)); !errors.Is(err, ErrOutOfSpace) {
		t.Fatalf("UseGlyph = %v, want ErrOutOfSpace", err)
	}
	// nothing was evicted for a glyph that could never fit
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
}

func TestPostRenderTrimUnpins(t *testing.T) {
	a, _ := newTestAtlas(t, 64, &fakeRaster{w: 4, h: 4})
	_ = a.UseGlyph(key(1))
	a.PostRenderTrim()
	if a.InUse(key(1)) {
		t.Fatal("glyph still pinned after trim")
	}
	if _, ok := a.Glyph(key(1)); !ok {
		t.Fatal("trim dropped a cached glyph")
	}
}
