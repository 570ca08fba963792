package pixl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloydSteinberg_PaletteExtremesAreFixedPoints(t *testing.T) {
	assert := assert.New(t)

	black, _ := NewPixelBuffer(6, 6, Black)
	dst, err := FloydSteinberg(black, nil)
	assert.NoError(err)
	assert.True(dst.Equals(black))

	white, _ := NewPixelBuffer(6, 6, White)
	dst, err = FloydSteinberg(white, nil)
	assert.NoError(err)
	assert.True(dst.Equals(white))
}

func TestFloydSteinberg_OutputStaysOnThePalette(t *testing.T) {
	assert := assert.New(t)

	src := randomBuffer(t, 12, 12, 61)
	dst, err := FloydSteinberg(src, []uint8{0, 85, 170, 255})
	assert.NoError(err)

	levels := map[uint8]bool{0: true, 85: true, 170: true, 255: true}
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			p, _ := dst.Get(x, y)
			assert.True(levels[p.R], "off-palette value %d at (%d,%d)", p.R, x, y)
			assert.Equal(p.R, p.G)
			assert.Equal(p.G, p.B)
		}
	}
}

func TestFloydSteinberg_MidGrayGoldenPattern(t *testing.T) {
	assert := assert.New(t)

	src, _ := NewPixelBuffer(8, 8, Gray(128))
	dst, err := FloydSteinberg(src, nil)
	assert.NoError(err)

	// 128 sits one step closer to white, so the first pixel snaps up
	// and the diffused error settles into a perfect checkerboard.
	golden := []string{
		"X.X.X.X.",
		".X.X.X.X",
		"X.X.X.X.",
		".X.X.X.X",
		"X.X.X.X.",
		".X.X.X.X",
		"X.X.X.X.",
		".X.X.X.X",
	}
	for y, row := range golden {
		for x, mark := range row {
			want := Black
			if mark == 'X' {
				want = White
			}
			got, _ := dst.Get(x, y)
			assert.Equal(want, got, "pixel (%d,%d)", x, y)
		}
	}
}

func TestFloydSteinberg_IsDeterministic(t *testing.T) {
	assert := assert.New(t)

	src := randomBuffer(t, 10, 10, 62)

	a, err := FloydSteinberg(src, nil)
	assert.NoError(err)
	b, err := FloydSteinberg(src, nil)
	assert.NoError(err)
	assert.True(a.Equals(b))
}
