package sprite

// Region describes a UV sub-rect of a full texture, top-left origin.
type Region struct {
	U0, V0 float32 // top-left
	U1, V1 float32 // bottom-right
}

// Full covers the whole texture.
var Full = Region{0, 0, 1, 1}

// FromPixels builds a region from pixel coordinates within tex.
func FromPixels(tex *LoadedTexture, x, y, w, h int) Region {
	tw, th := float32(tex.Width), float32(tex.Height)
	return Region{
		U0: float32(x) / tw,
		V0: float32(y) / th,
		U1: float32(x+w) / tw,
		V1: float32(y+h) / th,
	}
}

// FromGrid builds a region from tile grid coordinates (cx,cy) of cell size (cw,ch).
func FromGrid(tex *LoadedTexture, cx, cy, cw, ch int) Region {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch)
}
