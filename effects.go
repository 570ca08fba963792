package pixl

import (
	"github.com/disintegration/imaging"
	"github.com/pixlkit/pixl/imop"
)

// UnsharpMask sharpens by subtracting a Gaussian blur from the source:
// out = src + amount*(src - blurred). The size selects the blur kernel
// and amount scales the correction; 0.5 to 1.5 covers the usual range.
// Pixels the blur did not compute (the kernel border) are copied from the
// source unchanged.
func UnsharpMask(src *PixelBuffer, size int, amount float64) (*PixelBuffer, error) {
	blurred, err := GaussianBlur(src, size)
	if err != nil {
		return nil, err
	}
	defer blurred.Dispose()

	dst, err := src.Clone()
	if err != nil {
		return nil, err
	}

	offset := 1
	if size > 3 {
		offset = 2
	}
	w, h := src.Width(), src.Height()
	if w <= 2*offset || h <= 2*offset {
		return dst, nil
	}

	src.mu.Lock()
	defer src.mu.Unlock()
	blurred.mu.Lock()
	defer blurred.mu.Unlock()

	for y := offset; y < h-offset; y++ {
		for x := offset; x < w-offset; x++ {
			i := x + y*w
			s, b := src.store[i], blurred.store[i]
			dst.store[i] = Pixel{
				R: clampChannel(float64(s.R) + amount*(float64(s.R)-float64(b.R))),
				G: clampChannel(float64(s.G) + amount*(float64(s.G)-float64(b.G))),
				B: clampChannel(float64(s.B) + amount*(float64(s.B)-float64(b.B))),
				A: s.A,
			}
		}
	}
	return dst, nil
}

// DifferenceOfGaussians subtracts a wide Gaussian blur from a narrow one,
// clamping each channel at zero instead of wrapping, which leaves the
// band of detail between the two blur scales.
func DifferenceOfGaussians(src *PixelBuffer) (*PixelBuffer, error) {
	narrow, err := Convolve(src, GaussianKernel3())
	if err != nil {
		return nil, err
	}
	defer narrow.Dispose()

	wide, err := Convolve(src, GaussianKernel5())
	if err != nil {
		return nil, err
	}
	defer wide.Dispose()

	dst, err := NewPixelBuffer(src.Width(), src.Height(), Transparent)
	if err != nil {
		return nil, err
	}

	narrow.mu.Lock()
	defer narrow.mu.Unlock()
	wide.mu.Lock()
	defer wide.mu.Unlock()

	for i, n := range narrow.store {
		wp := wide.store[i]
		dst.store[i] = Pixel{
			R: subClamped(n.R, wp.R),
			G: subClamped(n.G, wp.G),
			B: subClamped(n.B, wp.B),
			A: 0xff,
		}
	}
	return dst, nil
}

// subClamped subtracts b from a, clamping at zero.
func subClamped(a, b uint8) uint8 {
	if a <= b {
		return 0
	}
	return a - b
}

// Crosshatch runs two diagonal directional kernels over the grayscale
// image and merges the responses with a per pixel lighten, which keeps
// the stronger stroke of the two directions.
func Crosshatch(src *PixelBuffer) (*PixelBuffer, error) {
	gray, err := Grayscale(src)
	if err != nil {
		return nil, err
	}
	defer gray.Dispose()

	ne, err := Convolve(gray, diagonalKernelNE())
	if err != nil {
		return nil, err
	}
	defer ne.Dispose()

	nw, err := Convolve(gray, diagonalKernelNW())
	if err != nil {
		return nil, err
	}
	defer nw.Dispose()

	dst, err := NewPixelBuffer(src.Width(), src.Height(), Transparent)
	if err != nil {
		return nil, err
	}

	ne.mu.Lock()
	defer ne.mu.Unlock()
	nw.mu.Lock()
	defer nw.mu.Unlock()

	for i, a := range ne.store {
		b := nw.store[i]
		dst.store[i] = Pixel{
			R: imop.LightenOp(a.R, b.R),
			G: imop.LightenOp(a.G, b.G),
			B: imop.LightenOp(a.B, b.B),
			A: 0xff,
		}
	}
	return dst, nil
}

// PencilSketch renders the hand drawn look: grayscale, invert, Gaussian
// blur of the inverted image, then a color dodge of the grayscale over
// the blurred negative. Flat regions dodge to white while edges survive
// as strokes.
func PencilSketch(src *PixelBuffer) (*PixelBuffer, error) {
	gray, err := Grayscale(src)
	if err != nil {
		return nil, err
	}
	defer gray.Dispose()

	inverted, err := Invert(gray)
	if err != nil {
		return nil, err
	}
	blurred, err := GaussianBlur(inverted, 5)
	inverted.Dispose()
	if err != nil {
		return nil, err
	}
	defer blurred.Dispose()

	dst, err := NewPixelBuffer(src.Width(), src.Height(), Transparent)
	if err != nil {
		return nil, err
	}

	gray.mu.Lock()
	defer gray.mu.Unlock()
	blurred.mu.Lock()
	defer blurred.mu.Unlock()

	for i, g := range gray.store {
		b := blurred.store[i]
		dst.store[i] = Pixel{
			R: imop.ColorDodgeOp(g.R, b.R),
			G: imop.ColorDodgeOp(g.G, b.G),
			B: imop.ColorDodgeOp(g.B, b.B),
			A: 0xff,
		}
	}
	return dst, nil
}

// Kuwahara applies the edge preserving smoothing rule: around every
// pixel, the four overlapping (radius+1) sized quadrants are scored by
// their luminance variance and the pixel takes the mean color of the
// calmest one. The radius wide border keeps the source pixels.
func Kuwahara(src *PixelBuffer, radius int) (*PixelBuffer, error) {
	if radius < 1 {
		radius = 1
	}

	dst, err := src.Clone()
	if err != nil {
		return nil, err
	}

	w, h := src.Width(), src.Height()
	if w <= 2*radius || h <= 2*radius {
		return dst, nil
	}

	src.mu.Lock()
	defer src.mu.Unlock()

	// Quadrant origins relative to the center pixel.
	quads := [4][2]int{
		{-radius, -radius},
		{0, -radius},
		{-radius, 0},
		{0, 0},
	}

	updates := make([]PixelUpdate, 0, (w-2*radius)*(h-2*radius))
	for y := radius; y < h-radius; y++ {
		for x := radius; x < w-radius; x++ {
			best := Pixel{A: 0xff}
			bestVar := -1.0

			for _, q := range quads {
				var sumR, sumG, sumB, sumL, sumL2 float64
				for qy := 0; qy <= radius; qy++ {
					base := (y + q[1] + qy) * w
					for qx := 0; qx <= radius; qx++ {
						p := src.store[base+x+q[0]+qx]
						l := lumR*float64(p.R) + lumG*float64(p.G) + lumB*float64(p.B)
						sumR += float64(p.R)
						sumG += float64(p.G)
						sumB += float64(p.B)
						sumL += l
						sumL2 += l * l
					}
				}

				n := float64((radius + 1) * (radius + 1))
				mean := sumL / n
				variance := sumL2/n - mean*mean
				if bestVar < 0 || variance < bestVar {
					bestVar = variance
					best = Pixel{
						R: clampChannel(sumR / n),
						G: clampChannel(sumG / n),
						B: clampChannel(sumB / n),
						A: src.store[x+y*w].A,
					}
				}
			}
			updates = append(updates, PixelUpdate{X: x, Y: y, Color: best})
		}
	}

	dst.SetMany(updates)
	return dst, nil
}

// Antialias smooths jagged edges. With a scale of 2 or more it
// supersamples: the image is upscaled, then box averaged back down to the
// original size. A smaller scale falls back to a light Gaussian blur as
// the cheap approximation.
func Antialias(src *PixelBuffer, scale int) (*PixelBuffer, error) {
	if scale < 2 {
		return GaussianBlur(src, 3)
	}

	w, h := src.Width(), src.Height()
	img, err := src.ToNRGBA()
	if err != nil {
		return nil, err
	}

	up := imaging.Resize(img, w*scale, h*scale, imaging.Linear)
	down := imaging.Resize(up, w, h, imaging.Box)
	return FromImage(down)
}
