package pixl

// defaultPalette is the two level palette used when none is provided.
var defaultPalette = []uint8{0, 255}

// FloydSteinberg dithers the image down to a small set of gray levels
// with the classic error diffusion matrix
//
//	        .  *  7
//	        3  5  1   (out of 16)
//
// The image is converted to grayscale first; then every pixel, visited in
// raster order, snaps to the nearest palette level and pushes its
// quantization error onto the four forward neighbors. The raster order is
// load bearing: later pixels must observe the error already diffused into
// them, so this pass cannot be reordered or split across rows.
//
// A nil palette means pure black and white.
func FloydSteinberg(src *PixelBuffer, palette []uint8) (*PixelBuffer, error) {
	if len(palette) == 0 {
		palette = defaultPalette
	}

	gray, err := Grayscale(src)
	if err != nil {
		return nil, err
	}
	defer gray.Dispose()

	w, h := gray.Width(), gray.Height()
	dst, err := NewPixelBuffer(w, h, Transparent)
	if err != nil {
		return nil, err
	}

	gray.mu.Lock()
	defer gray.mu.Unlock()

	// Working luminance plane holding the diffused values.
	work := make([]float64, len(gray.store))
	for i, p := range gray.store {
		work[i] = float64(p.R)
	}

	diffuse := func(x, y int, weight, quantErr float64) {
		if x < 0 || x >= w || y >= h {
			return
		}
		work[x+y*w] += quantErr * weight / 16
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x + y*w
			old := work[i]
			v := nearestLevel(palette, old)
			quantErr := old - float64(v)

			dst.store[i] = Pixel{R: v, G: v, B: v, A: gray.store[i].A}

			diffuse(x+1, y, 7, quantErr)
			diffuse(x-1, y+1, 3, quantErr)
			diffuse(x, y+1, 5, quantErr)
			diffuse(x+1, y+1, 1, quantErr)
		}
	}
	return dst, nil
}

// nearestLevel returns the palette level closest to v.
func nearestLevel(palette []uint8, v float64) uint8 {
	best := palette[0]
	bestDist := dist(v, palette[0])
	for _, level := range palette[1:] {
		if d := dist(v, level); d < bestDist {
			best = level
			bestDist = d
		}
	}
	return best
}

func dist(v float64, level uint8) float64 {
	d := v - float64(level)
	if d < 0 {
		return -d
	}
	return d
}
