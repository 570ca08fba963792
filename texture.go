package pixl

import "math"

// The texture writers synthesize procedural images straight into a new
// buffer. They are deterministic functions of (x, y) through the noise
// generator, so the same generator always reproduces the same texture,
// and all of them land their pixels through the run length bulk path.

// Clouds maps plain turbulence to a blue tinted luminance ramp.
func Clouds(w, h int, n *Noise, turbSize float64) (*PixelBuffer, error) {
	return synthesize(w, h, func(x, y int) Pixel {
		l := 0.5 + n.Turbulence(float64(x), float64(y), turbSize)/2
		return hslPixel(225, 0.9, l*0.8+0.2)
	})
}

// Marble renders the vein look: a sine over a skewed coordinate, with
// turbulence feeding the phase so the veins wander.
func Marble(w, h int, n *Noise, xPeriod, yPeriod, turbPower, turbSize float64) (*PixelBuffer, error) {
	fw, fh := float64(w), float64(h)
	return synthesize(w, h, func(x, y int) Pixel {
		xy := float64(x)*xPeriod/fw + float64(y)*yPeriod/fh +
			turbPower*n.Turbulence(float64(x), float64(y), turbSize)
		sine := math.Abs(math.Sin(xy * math.Pi))
		v := clampChannel(256 * sine)
		return Pixel{R: v, G: v, B: v, A: 0xff}
	})
}

// Wood renders concentric growth rings around the image center, bent by
// turbulence.
func Wood(w, h int, n *Noise, ringPeriod, turbPower, turbSize float64) (*PixelBuffer, error) {
	fw, fh := float64(w), float64(h)
	return synthesize(w, h, func(x, y int) Pixel {
		dx := (float64(x) - fw/2) / fw
		dy := (float64(y) - fh/2) / fh
		dist := math.Sqrt(dx*dx+dy*dy) +
			turbPower*n.Turbulence(float64(x), float64(y), turbSize)
		sine := math.Abs(math.Sin(2 * ringPeriod * dist * math.Pi))
		return Pixel{
			R: clampChannel(80 + sine*175),
			G: clampChannel(30 + sine*108),
			B: 30,
			A: 0xff,
		}
	})
}

// Waves renders interfering sine fronts over both axes.
func Waves(w, h int, n *Noise, xPeriod, yPeriod, turbPower, turbSize float64) (*PixelBuffer, error) {
	fw, fh := float64(w), float64(h)
	return synthesize(w, h, func(x, y int) Pixel {
		xy := float64(x)*xPeriod/fw + float64(y)*yPeriod/fh +
			turbPower*n.Turbulence(float64(x), float64(y), turbSize)
		sine := math.Abs(math.Sin(xy * 3 * math.Pi))
		return hslPixel(196, 0.85, 0.25+sine*0.55)
	})
}

// NoiseImage writes the raw smoothed noise field as grayscale; mostly a
// debugging aid for tuning table sizes and seeds.
func NoiseImage(w, h int, n *Noise, turbSize float64) (*PixelBuffer, error) {
	return synthesize(w, h, func(x, y int) Pixel {
		return Gray(clampChannel(256 * n.Turbulence(float64(x), float64(y), turbSize)))
	})
}

// synthesize evaluates the pixel function over the full area and lands
// the result through the run length bulk path.
func synthesize(w, h int, at func(x, y int) Pixel) (*PixelBuffer, error) {
	dst, err := NewPixelBuffer(w, h, Transparent)
	if err != nil {
		return nil, err
	}

	updates := make([]PixelUpdate, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			updates = append(updates, PixelUpdate{X: x, Y: y, Color: at(x, y)})
		}
	}
	dst.SetManyRunLength(updates)
	return dst, nil
}

// hslPixel converts an HSL color to an opaque pixel. The hue is given in
// degrees, saturation and lightness in [0, 1].
func hslPixel(hue, sat, light float64) Pixel {
	if light < 0 {
		light = 0
	}
	if light > 1 {
		light = 1
	}

	c := (1 - math.Abs(2*light-1)) * sat
	hp := math.Mod(hue, 360) / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	m := light - c/2

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return Pixel{
		R: clampChannel((r + m) * 255),
		G: clampChannel((g + m) * 255),
		B: clampChannel((b + m) * 255),
		A: 0xff,
	}
}
