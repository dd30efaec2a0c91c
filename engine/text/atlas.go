package text

import (
	"fmt"
	"math"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/hubastard/skirmish/engine/core"
)

// DefaultAtlasSize is the side length of the glyph atlas texture.
const DefaultAtlasSize = 256

// GlyphData locates a cached glyph in the atlas texture.
type GlyphData struct {
	alloc   AllocID
	UVStart [2]float32
	UVEnd   [2]float32
	Left    float32
	Top     float32
	Width   float32
	Height  float32
}

// Atlas caches rasterised glyphs in a single texture. Glyphs used during
// the current frame are pinned; when the texture is full the least recently
// used unpinned glyph is evicted. The atlas never grows.
type Atlas struct {
	r       core.Renderer
	raster  Rasterizer
	packer  *BucketedAllocator
	cache   *simplelru.LRU[CacheKey, GlyphData]
	inUse   map[CacheKey]struct{}
	texture core.Texture
	size    int
	scratch []byte
}

func NewAtlas(r core.Renderer, raster Rasterizer, size int) (*Atlas, error) {
	if size <= 0 {
		size = DefaultAtlasSize
	}
	cache, err := simplelru.NewLRU[CacheKey, GlyphData](math.MaxInt32, nil)
	if err != nil {
		return nil, fmt.Errorf("glyph cache: %w", err)
	}
	tex, err := r.CreateTexture(core.TextureDesc{
		Width:  size,
		Height: size,
		Format: core.FormatRGBA8,
		Filter: core.FilterLinear,
		Label:  "text atlas",
	})
	if err != nil {
		return nil, fmt.Errorf("create atlas texture: %w", err)
	}
	return &Atlas{
		r:       r,
		raster:  raster,
		packer:  NewBucketedAllocator(size, size),
		cache:   cache,
		inUse:   map[CacheKey]struct{}{},
		texture: tex,
		size:    size,
	}, nil
}

func (a *Atlas) Texture() core.Texture { return a.texture }
func (a *Atlas) Size() int             { return a.size }
func (a *Atlas) Len() int              { return a.cache.Len() }

// UseGlyph makes sure key is cached, marks it most recently used and pins
// it until PostRenderTrim.
func (a *Atlas) UseGlyph(key CacheKey) error {
	if _, ok := a.cache.Get(key); ok {
		a.inUse[key] = struct{}{}
		return nil
	}
	img, ok := a.raster.Rasterize(key)
	if !ok {
		return ErrNoGlyphImage
	}
	if err := a.cacheGlyph(key, img); err != nil {
		return err
	}
	a.inUse[key] = struct{}{}
	return nil
}

// Glyph returns the cached data for key without touching recency.
func (a *Atlas) Glyph(key CacheKey) (GlyphData, bool) {
	return a.cache.Peek(key)
}

// InUse reports whether key is pinned for this frame.
func (a *Atlas) InUse(key CacheKey) bool {
	_, ok := a.inUse[key]
	return ok
}

// PostRenderTrim unpins every glyph. Call once per frame after drawing.
func (a *Atlas) PostRenderTrim() {
	clear(a.inUse)
}

func (a *Atlas) cacheGlyph(key CacheKey, img *GlyphImage) error {
	if img.Width > a.size || img.Height > a.size {
		return fmt.Errorf("glyph %d is %dx%d, atlas is %d: %w", key.Glyph, img.Width, img.Height, a.size, ErrOutOfSpace)
	}
	var alloc Allocation
	for {
		var ok bool
		if alloc, ok = a.packer.Allocate(max(img.Width, 1), max(img.Height, 1)); ok {
			break
		}
		if err := a.freeSpace(); err != nil {
			return err
		}
	}

	if img.Width > 0 && img.Height > 0 {
		if err := a.r.UpdateTexture(a.texture, alloc.Rect.Min.X, alloc.Rect.Min.Y, img.Width, img.Height, a.expand(img)); err != nil {
			a.packer.Deallocate(alloc.ID)
			return fmt.Errorf("upload glyph %d: %w", key.Glyph, err)
		}
	}

	size := float32(a.size)
	a.cache.Add(key, GlyphData{
		alloc:   alloc.ID,
		UVStart: [2]float32{float32(alloc.Rect.Min.X) / size, float32(alloc.Rect.Min.Y) / size},
		UVEnd:   [2]float32{float32(alloc.Rect.Max.X) / size, float32(alloc.Rect.Max.Y) / size},
		Left:    float32(img.Left),
		Top:     float32(img.Top),
		Width:   float32(img.Width),
		Height:  float32(img.Height),
	})
	return nil
}

// freeSpace evicts the least recently used glyph unless it is pinned.
func (a *Atlas) freeSpace() error {
	key, _, ok := a.cache.GetOldest()
	if !ok {
		return ErrLRUStorage
	}
	if _, pinned := a.inUse[key]; pinned {
		return ErrOutOfSpace
	}
	_, data, _ := a.cache.RemoveOldest()
	a.packer.Deallocate(data.alloc)
	return nil
}

// expand turns an alpha mask into white RGBA texels.
func (a *Atlas) expand(img *GlyphImage) []byte {
	n := img.Width * img.Height
	if cap(a.scratch) < n*4 {
		a.scratch = make([]byte, n*4)
	}
	px := a.scratch[:n*4]
	for i := 0; i < n; i++ {
		px[i*4+0] = 0xff
		px[i*4+1] = 0xff
		px[i*4+2] = 0xff
		px[i*4+3] = img.Mask[i]
	}
	return px
}
