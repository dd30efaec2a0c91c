package text

import (
	"image"
	"image/draw"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"
)

// GlyphImage is an alpha coverage mask. Left and Top place the mask
// relative to the pen position: Left to the right, Top up from the baseline.
type GlyphImage struct {
	Left, Top     int
	Width, Height int
	Mask          []byte // Width*Height bytes, row-major
}

// Rasterizer produces glyph images. It returns false when the glyph has no
// image at all; a blank glyph such as a space returns an empty image.
type Rasterizer interface {
	Rasterize(key CacheKey) (*GlyphImage, bool)
}

// OutlineRasterizer renders glyph outlines from the font system with an
// anti-aliased scanline rasterizer.
type OutlineRasterizer struct {
	fonts *FontSystem
}

func NewOutlineRasterizer(fonts *FontSystem) *OutlineRasterizer {
	return &OutlineRasterizer{fonts: fonts}
}

func (r *OutlineRasterizer) Rasterize(key CacheKey) (*GlyphImage, bool) {
	f, ok := r.fonts.Font(key.Font)
	if !ok {
		return nil, false
	}
	segs, err := f.sfnt.LoadGlyph(&f.buffer, sfnt.GlyphIndex(key.Glyph), floatToFixed(key.Size()), nil)
	if err != nil {
		return nil, false
	}
	if len(segs) == 0 {
		return &GlyphImage{}, true
	}

	offX := floatToFixed(key.XBin.Offset())
	offY := floatToFixed(key.YBin.Offset())
	b := segs.Bounds()
	minX, minY := (b.Min.X + offX).Floor(), (b.Min.Y + offY).Floor()
	maxX, maxY := (b.Max.X + offX).Ceil(), (b.Max.Y + offY).Ceil()
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return &GlyphImage{}, true
	}

	// sfnt outlines are y-down, like the mask
	px := func(v sfnt.Segment, i int) (float32, float32) {
		p := v.Args[i]
		return fixedToFloat(p.X+offX) - float32(minX), fixedToFloat(p.Y+offY) - float32(minY)
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			z.ClosePath()
			z.MoveTo(px(seg, 0))
		case sfnt.SegmentOpLineTo:
			z.LineTo(px(seg, 0))
		case sfnt.SegmentOpQuadTo:
			bx, by := px(seg, 0)
			cx, cy := px(seg, 1)
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := px(seg, 0)
			cx, cy := px(seg, 1)
			dx, dy := px(seg, 2)
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	z.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return &GlyphImage{
		Left:   minX,
		Top:    -minY,
		Width:  w,
		Height: h,
		Mask:   dst.Pix,
	}, true
}
