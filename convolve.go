package pixl

import "math"

// Convolve applies the kernel over src and returns the result in a new
// buffer of the same dimensions; src is never mutated.
//
// Border pixels of width kernel.Offset() are not computed at all: no edge
// clamping, no wraparound. They keep the new buffer's default transparent
// fill, which callers that care about borders handle themselves. The
// interior results are collected and landed in one bulk write instead of
// per pixel set calls.
//
// The alpha channel does not take part in the convolution; every computed
// pixel comes out opaque. Filters that need alpha aware smoothing blend
// the result back over the source instead.
func Convolve(src *PixelBuffer, k *Kernel) (*PixelBuffer, error) {
	if k == nil || len(k.Weights) == 0 {
		return nil, ErrInvalidKernel
	}
	if _, err := NewKernel(k.Weights, k.Factor, k.Bias); err != nil {
		return nil, err
	}

	w, h := src.Width(), src.Height()
	dst, err := NewPixelBuffer(w, h, Transparent)
	if err != nil {
		return nil, err
	}

	offset := k.Offset()
	if w <= 2*offset || h <= 2*offset {
		// The kernel window never fits; the whole image is border.
		return dst, nil
	}

	src.mu.Lock()
	defer src.mu.Unlock()
	if src.disposed {
		return nil, ErrDisposed
	}

	updates := make([]PixelUpdate, 0, (w-2*offset)*(h-2*offset))
	for y := offset; y < h-offset; y++ {
		for x := offset; x < w-offset; x++ {
			var sumR, sumG, sumB float64
			for ky, row := range k.Weights {
				base := (y + ky - offset) * w
				for kx, weight := range row {
					if weight == 0 {
						continue
					}
					p := src.store[base+x+kx-offset]
					sumR += weight * float64(p.R)
					sumG += weight * float64(p.G)
					sumB += weight * float64(p.B)
				}
			}
			updates = append(updates, PixelUpdate{
				X: x,
				Y: y,
				Color: Pixel{
					R: clampChannel(k.Factor*sumR + k.Bias),
					G: clampChannel(k.Factor*sumG + k.Bias),
					B: clampChannel(k.Factor*sumB + k.Bias),
					A: 0xff,
				},
			})
		}
	}

	dst.SetMany(updates)
	return dst, nil
}

// clampChannel rounds and clamps a channel sum into the [0, 255] range.
func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
