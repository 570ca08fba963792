package pixl

import (
	"math"
	"math/rand"
)

// DefaultNoiseSize is the side length of the noise table when none is
// requested.
const DefaultNoiseSize = 128

// Noise is a seeded value noise generator: a square table of independent
// uniform samples in [0, 1) that gets interpolated and octave summed. The
// table is owned by the generator, so two generators with the same seed
// and size always synthesize identical textures.
type Noise struct {
	size  int
	table []float64
}

// NewNoise builds a size x size noise table from the given seed.
func NewNoise(size int, seed int64) *Noise {
	if size <= 0 {
		size = DefaultNoiseSize
	}

	rng := rand.New(rand.NewSource(seed))
	table := make([]float64, size*size)
	for i := range table {
		table[i] = rng.Float64()
	}
	return &Noise{size: size, table: table}
}

// Size returns the noise table side length.
func (n *Noise) Size() int {
	return n.size
}

// Smooth returns the bilinear interpolation of the four table cells
// around (x, y). Table indices wrap modulo the table size, so the noise
// field tiles seamlessly.
func (n *Noise) Smooth(x, y float64) float64 {
	fx := x - math.Floor(x)
	fy := y - math.Floor(y)

	x1 := (int(math.Floor(x))%n.size + n.size) % n.size
	y1 := (int(math.Floor(y))%n.size + n.size) % n.size
	x2 := (x1 + n.size - 1) % n.size
	y2 := (y1 + n.size - 1) % n.size

	var value float64
	value += fx * fy * n.table[x1+y1*n.size]
	value += (1 - fx) * fy * n.table[x2+y1*n.size]
	value += fx * (1 - fy) * n.table[x1+y2*n.size]
	value += (1 - fx) * (1 - fy) * n.table[x2+y2*n.size]
	return value
}

// Turbulence sums Smooth over halving octaves down to 1, each octave
// scaled by its size, and normalizes by the initial size:
//
//	Σ Smooth(x/s, y/s)*s  for s = size, size/2, … ≥ 1, divided by size.
//
// With size 1 this reduces to a single Smooth call.
func (n *Noise) Turbulence(x, y, size float64) float64 {
	if size < 1 {
		size = 1
	}

	var value float64
	initial := size
	for size >= 1 {
		value += n.Smooth(x/size, y/size) * size
		size /= 2
	}
	return value / initial
}
