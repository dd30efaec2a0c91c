package colors

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
	Floor    = Color{0.3, 0.3, 0.3, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Scale multiplies the RGB channels, leaving alpha alone.
func (c Color) Scale(f float32) Color {
	for i := 0; i < 3; i++ {
		c[i] = clamp01(c[i] * f)
	}
	return c
}

// Packed is a colour as 0xAARRGGBB.
type Packed uint32

func (c Color) Pack() Packed {
	return Packed(to8(c[3])<<24 | to8(c[0])<<16 | to8(c[1])<<8 | to8(c[2]))
}

func RGBA(r, g, b, a uint8) Packed {
	return Packed(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (p Packed) Unpack() Color {
	return Color{
		float32(p>>16&0xff) / 255,
		float32(p>>8&0xff) / 255,
		float32(p&0xff) / 255,
		float32(p>>24&0xff) / 255,
	}
}

func to8(v float32) uint32 { return uint32(clamp01(v)*255 + 0.5) }

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
