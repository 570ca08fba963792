package pixl

// Pixel is a single color value with four unsigned 8 bit channels.
// It is a plain value type: copying it copies the color and equality
// is exact channel comparison.
type Pixel struct {
	R, G, B, A uint8
}

// Commonly used colors.
var (
	Transparent = Pixel{}
	Black       = Pixel{A: 0xff}
	White       = Pixel{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Packed returns the pixel as a single 32 bit integer in A:R:G:B order,
// most significant byte first. The packed view is what the integer blend
// arithmetic operates on.
func (p Pixel) Packed() uint32 {
	return uint32(p.A)<<24 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
}

// Unpack rebuilds a Pixel from its packed A:R:G:B representation.
func Unpack(v uint32) Pixel {
	return Pixel{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

// Gray returns an opaque gray pixel with all color channels set to v.
func Gray(v uint8) Pixel {
	return Pixel{R: v, G: v, B: v, A: 0xff}
}
