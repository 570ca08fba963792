package pixl

import "errors"

// ErrInvalidKernel is returned when a kernel matrix is not an odd sized
// square.
var ErrInvalidKernel = errors.New("pixl: the kernel must be an odd sized square matrix")

// Kernel is a convolution weight matrix together with a scalar factor and
// bias. The final channel value of a convolved pixel is
// clamp(round(factor*sum + bias), 0, 255).
type Kernel struct {
	Weights [][]float64
	Factor  float64
	Bias    float64
}

// NewKernel validates the weight matrix and builds a Kernel.
func NewKernel(weights [][]float64, factor, bias float64) (*Kernel, error) {
	size := len(weights)
	if size == 0 || size%2 == 0 {
		return nil, ErrInvalidKernel
	}
	for _, row := range weights {
		if len(row) != size {
			return nil, ErrInvalidKernel
		}
	}
	return &Kernel{Weights: weights, Factor: factor, Bias: bias}, nil
}

// Size returns the kernel side length.
func (k *Kernel) Size() int {
	return len(k.Weights)
}

// Offset returns the window half size, size/2 with integer division.
func (k *Kernel) Offset() int {
	return len(k.Weights) / 2
}

// IdentityKernel reproduces the source interior unchanged.
func IdentityKernel() *Kernel {
	return &Kernel{
		Weights: [][]float64{
			{0, 0, 0},
			{0, 1, 0},
			{0, 0, 0},
		},
		Factor: 1,
	}
}

// BoxBlurKernel averages the size x size window uniformly. The size is
// forced odd.
func BoxBlurKernel(size int) *Kernel {
	if size < 3 {
		size = 3
	}
	if size%2 == 0 {
		size++
	}
	weights := make([][]float64, size)
	for i := range weights {
		weights[i] = make([]float64, size)
		for j := range weights[i] {
			weights[i][j] = 1
		}
	}
	return &Kernel{Weights: weights, Factor: 1 / float64(size*size)}
}

// GaussianKernel3 is the classic 3x3 Gaussian blur approximation.
func GaussianKernel3() *Kernel {
	return &Kernel{
		Weights: [][]float64{
			{1, 2, 1},
			{2, 4, 2},
			{1, 2, 1},
		},
		Factor: 1.0 / 16,
	}
}

// GaussianKernel5 is a 5x5 Gaussian blur with sigma around 1.4.
func GaussianKernel5() *Kernel {
	return &Kernel{
		Weights: [][]float64{
			{2, 4, 5, 4, 2},
			{4, 9, 12, 9, 4},
			{5, 12, 15, 12, 5},
			{4, 9, 12, 9, 4},
			{2, 4, 5, 4, 2},
		},
		Factor: 1.0 / 159,
	}
}

// SharpenKernel amplifies the center pixel against its direct neighbors.
func SharpenKernel() *Kernel {
	return &Kernel{
		Weights: [][]float64{
			{0, -1, 0},
			{-1, 5, -1},
			{0, -1, 0},
		},
		Factor: 1,
	}
}

// EmbossKernel produces the diagonal relief look. Its weights sum to 1,
// so flat regions keep their own value and no bias shift is needed.
func EmbossKernel() *Kernel {
	return &Kernel{
		Weights: [][]float64{
			{-2, -1, 0},
			{-1, 1, 1},
			{0, 1, 2},
		},
		Factor: 1,
	}
}

// LaplacianKernel is the 8 connected Laplacian edge detector.
func LaplacianKernel() *Kernel {
	return &Kernel{
		Weights: [][]float64{
			{-1, -1, -1},
			{-1, 8, -1},
			{-1, -1, -1},
		},
		Factor: 1,
	}
}

// EdgeEnhanceKernel overlays the Laplacian response on the source pixel.
func EdgeEnhanceKernel() *Kernel {
	return &Kernel{
		Weights: [][]float64{
			{0, 0, 0},
			{-1, 1, 0},
			{0, 0, 0},
		},
		Factor: 1,
	}
}

// MotionBlurKernel smears along the main diagonal over a size x size
// window. The size is forced odd.
func MotionBlurKernel(size int) *Kernel {
	if size < 3 {
		size = 3
	}
	if size%2 == 0 {
		size++
	}
	weights := make([][]float64, size)
	for i := range weights {
		weights[i] = make([]float64, size)
		weights[i][i] = 1
	}
	return &Kernel{Weights: weights, Factor: 1 / float64(size)}
}

// crosshatch directional kernels, one per diagonal stroke direction.
func diagonalKernelNE() *Kernel {
	return &Kernel{
		Weights: [][]float64{
			{0, 0, 2},
			{0, 0, 0},
			{-2, 0, 0},
		},
		Factor: 1,
	}
}

func diagonalKernelNW() *Kernel {
	return &Kernel{
		Weights: [][]float64{
			{2, 0, 0},
			{0, 0, 0},
			{0, 0, -2},
		},
		Factor: 1,
	}
}
