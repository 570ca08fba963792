package pixl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoise_SmoothStaysInUnitRange(t *testing.T) {
	assert := assert.New(t)

	n := NewNoise(32, 1)
	for y := -10.0; y < 50; y += 1.3 {
		for x := -10.0; x < 50; x += 1.7 {
			v := n.Smooth(x, y)
			assert.GreaterOrEqual(v, 0.0)
			assert.Less(v, 1.0)
		}
	}
}

func TestNoise_SingleOctaveTurbulenceIsSmoothNoise(t *testing.T) {
	assert := assert.New(t)

	n := NewNoise(64, 5)
	coords := [][2]float64{{0, 0}, {1.5, 2.25}, {17.3, 42.9}, {-3.7, 8.1}, {100.01, 0.99}}
	for _, c := range coords {
		assert.Equal(n.Smooth(c[0], c[1]), n.Turbulence(c[0], c[1], 1), "at (%v,%v)", c[0], c[1])
	}
}

func TestNoise_SameSeedSynthesizesTheSameField(t *testing.T) {
	assert := assert.New(t)

	a := NewNoise(32, 99)
	b := NewNoise(32, 99)
	for y := 0.0; y < 16; y += 0.5 {
		for x := 0.0; x < 16; x += 0.5 {
			assert.Equal(a.Turbulence(x, y, 8), b.Turbulence(x, y, 8))
		}
	}
}

func TestNoise_NonPositiveSizeFallsBackToDefault(t *testing.T) {
	assert := assert.New(t)

	n := NewNoise(0, 1)
	assert.Equal(DefaultNoiseSize, n.Size())
}

func TestNoise_TurbulenceSizeBelowOneIsClamped(t *testing.T) {
	assert := assert.New(t)

	n := NewNoise(32, 7)
	assert.Equal(n.Turbulence(3.3, 4.4, 1), n.Turbulence(3.3, 4.4, 0.25))
}
