package pixl

import (
	"math"
)

// ColorMatrix is a 5x5 affine transform over the (R, G, B, A, 1) column
// vector, with all channels normalized to [0, 1]. The fifth row is kept
// so matrices compose by plain multiplication; it is (0, 0, 0, 0, 1) for
// every matrix built here.
type ColorMatrix [5][5]float64

// IdentityMatrix leaves every channel unchanged.
func IdentityMatrix() ColorMatrix {
	var m ColorMatrix
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// Mul returns m*n, i.e. the transform that applies n first and m second.
func (m ColorMatrix) Mul(n ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			var sum float64
			for k := 0; k < 5; k++ {
				sum += m[i][k] * n[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Apply runs the matrix over every pixel of src and returns the result in
// a new buffer; src is never mutated.
func (m ColorMatrix) Apply(src *PixelBuffer) (*PixelBuffer, error) {
	w, h := src.Width(), src.Height()
	dst, err := NewPixelBuffer(w, h, Transparent)
	if err != nil {
		return nil, err
	}

	src.mu.Lock()
	defer src.mu.Unlock()
	if src.disposed {
		return nil, ErrDisposed
	}

	for i, p := range src.store {
		r := float64(p.R) / 255
		g := float64(p.G) / 255
		b := float64(p.B) / 255
		a := float64(p.A) / 255

		dst.store[i] = Pixel{
			R: clampChannel((m[0][0]*r + m[0][1]*g + m[0][2]*b + m[0][3]*a + m[0][4]) * 255),
			G: clampChannel((m[1][0]*r + m[1][1]*g + m[1][2]*b + m[1][3]*a + m[1][4]) * 255),
			B: clampChannel((m[2][0]*r + m[2][1]*g + m[2][2]*b + m[2][3]*a + m[2][4]) * 255),
			A: clampChannel((m[3][0]*r + m[3][1]*g + m[3][2]*b + m[3][3]*a + m[3][4]) * 255),
		}
	}
	return dst, nil
}

// lumR, lumG, lumB are the BT.601 luma weights used for grayscale
// conversion throughout the package.
const (
	lumR = 0.299
	lumG = 0.587
	lumB = 0.114
)

// GrayscaleMatrix converts to luminance.
func GrayscaleMatrix() ColorMatrix {
	return ColorMatrix{
		{lumR, lumG, lumB, 0, 0},
		{lumR, lumG, lumB, 0, 0},
		{lumR, lumG, lumB, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
}

// InvertMatrix flips every color channel; alpha is preserved.
func InvertMatrix() ColorMatrix {
	return ColorMatrix{
		{-1, 0, 0, 0, 1},
		{0, -1, 0, 0, 1},
		{0, 0, -1, 0, 1},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
}

// SepiaMatrix applies the standard warm sepia tone.
func SepiaMatrix() ColorMatrix {
	return ColorMatrix{
		{0.393, 0.769, 0.189, 0, 0},
		{0.349, 0.686, 0.168, 0, 0},
		{0.272, 0.534, 0.131, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
}

// BrightnessMatrix scales the color channels; factor 1 is the identity.
func BrightnessMatrix(factor float64) ColorMatrix {
	return ColorMatrix{
		{factor, 0, 0, 0, 0},
		{0, factor, 0, 0, 0},
		{0, 0, factor, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
}

// ContrastMatrix stretches the color channels around mid gray;
// factor 1 is the identity.
func ContrastMatrix(factor float64) ColorMatrix {
	t := 0.5 * (1 - factor)
	return ColorMatrix{
		{factor, 0, 0, 0, t},
		{0, factor, 0, 0, t},
		{0, 0, factor, 0, t},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
}

// SaturationMatrix interpolates between grayscale (factor 0) and the
// identity (factor 1); larger factors oversaturate.
func SaturationMatrix(factor float64) ColorMatrix {
	inv := 1 - factor
	r, g, b := lumR*inv, lumG*inv, lumB*inv
	return ColorMatrix{
		{r + factor, g, b, 0, 0},
		{r, g + factor, b, 0, 0},
		{r, g, b + factor, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
}

// HueRotateMatrix rotates the hue by the given angle in degrees, using
// the SVG feColorMatrix hueRotate coefficients.
func HueRotateMatrix(degrees float64) ColorMatrix {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return ColorMatrix{
		{0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0, 0},
		{0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0, 0},
		{0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
}

// ColorBalanceMatrix shifts each color channel by the given offsets in
// the [-1, 1] range.
func ColorBalanceMatrix(dr, dg, db float64) ColorMatrix {
	return ColorMatrix{
		{1, 0, 0, 0, dr},
		{0, 1, 0, 0, dg},
		{0, 0, 1, 0, db},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
}

// VintageMatrix combines desaturation with a warm cast.
func VintageMatrix() ColorMatrix {
	return SaturationMatrix(0.6).Mul(ColorBalanceMatrix(0.08, 0.03, -0.06))
}

// PolaroidMatrix mimics the washed out instant film look.
func PolaroidMatrix() ColorMatrix {
	return ColorMatrix{
		{1.438, -0.062, -0.062, 0, 0},
		{-0.122, 1.378, -0.122, 0, 0},
		{-0.016, -0.016, 1.483, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
}

// Grayscale converts the image to grayscale.
func Grayscale(src *PixelBuffer) (*PixelBuffer, error) {
	return GrayscaleMatrix().Apply(src)
}

// Invert flips every color channel.
func Invert(src *PixelBuffer) (*PixelBuffer, error) {
	return InvertMatrix().Apply(src)
}

// Sepia applies a warm sepia tone.
func Sepia(src *PixelBuffer) (*PixelBuffer, error) {
	return SepiaMatrix().Apply(src)
}

// Brightness scales the color channels by factor.
func Brightness(src *PixelBuffer, factor float64) (*PixelBuffer, error) {
	return BrightnessMatrix(factor).Apply(src)
}

// Contrast stretches the color channels around mid gray by factor.
func Contrast(src *PixelBuffer, factor float64) (*PixelBuffer, error) {
	return ContrastMatrix(factor).Apply(src)
}

// Saturation adjusts the color saturation by factor.
func Saturation(src *PixelBuffer, factor float64) (*PixelBuffer, error) {
	return SaturationMatrix(factor).Apply(src)
}

// HueRotate rotates the hue of every pixel by the given angle in degrees.
func HueRotate(src *PixelBuffer, degrees float64) (*PixelBuffer, error) {
	return HueRotateMatrix(degrees).Apply(src)
}

// ColorBalance shifts the color channels by the given offsets.
func ColorBalance(src *PixelBuffer, dr, dg, db float64) (*PixelBuffer, error) {
	return ColorBalanceMatrix(dr, dg, db).Apply(src)
}

// Vintage applies the desaturated warm cast look.
func Vintage(src *PixelBuffer) (*PixelBuffer, error) {
	return VintageMatrix().Apply(src)
}

// Polaroid applies the instant film look.
func Polaroid(src *PixelBuffer) (*PixelBuffer, error) {
	return PolaroidMatrix().Apply(src)
}

// BlackWhite reduces the image to pure black and white by thresholding
// the luminance. The threshold is a channel value in [0, 255].
func BlackWhite(src *PixelBuffer, threshold uint8) (*PixelBuffer, error) {
	w, h := src.Width(), src.Height()
	dst, err := NewPixelBuffer(w, h, Transparent)
	if err != nil {
		return nil, err
	}

	src.mu.Lock()
	defer src.mu.Unlock()
	if src.disposed {
		return nil, ErrDisposed
	}

	for i, p := range src.store {
		lum := lumR*float64(p.R) + lumG*float64(p.G) + lumB*float64(p.B)
		if lum >= float64(threshold) {
			dst.store[i] = Pixel{R: 0xff, G: 0xff, B: 0xff, A: p.A}
		} else {
			dst.store[i] = Pixel{A: p.A}
		}
	}
	return dst, nil
}

// Sharpen amplifies the center pixel against its direct neighbors.
func Sharpen(src *PixelBuffer) (*PixelBuffer, error) {
	return Convolve(src, SharpenKernel())
}

// BoxBlur averages over a size x size window.
func BoxBlur(src *PixelBuffer, size int) (*PixelBuffer, error) {
	return Convolve(src, BoxBlurKernel(size))
}

// GaussianBlur applies a Gaussian blur; size selects the 3x3 or the 5x5
// kernel.
func GaussianBlur(src *PixelBuffer, size int) (*PixelBuffer, error) {
	if size > 3 {
		return Convolve(src, GaussianKernel5())
	}
	return Convolve(src, GaussianKernel3())
}

// Emboss produces the relief look.
func Emboss(src *PixelBuffer) (*PixelBuffer, error) {
	return Convolve(src, EmbossKernel())
}

// Laplacian runs the 8 connected Laplacian edge detector.
func Laplacian(src *PixelBuffer) (*PixelBuffer, error) {
	return Convolve(src, LaplacianKernel())
}

// EdgeEnhance strengthens edges along the horizontal axis.
func EdgeEnhance(src *PixelBuffer) (*PixelBuffer, error) {
	return Convolve(src, EdgeEnhanceKernel())
}

// MotionBlur smears the image along the main diagonal.
func MotionBlur(src *PixelBuffer, size int) (*PixelBuffer, error) {
	return Convolve(src, MotionBlurKernel(size))
}
