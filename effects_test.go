package pixl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsharpMask_ConstantFieldIsUnchanged(t *testing.T) {
	assert := assert.New(t)

	c := Pixel{R: 90, G: 130, B: 170, A: 0xff}
	src, _ := NewPixelBuffer(7, 7, c)

	dst, err := UnsharpMask(src, 3, 1.0)
	assert.NoError(err)
	assert.True(src.Equals(dst))
}

func TestUnsharpMask_ShouldNotMutateTheSource(t *testing.T) {
	assert := assert.New(t)

	src := randomBuffer(t, 9, 9, 31)
	snapshot, err := src.Clone()
	assert.NoError(err)

	_, err = UnsharpMask(src, 5, 1.5)
	assert.NoError(err)
	assert.True(src.Equals(snapshot))
}

func TestDifferenceOfGaussians_ConstantFieldHasNoDetailBand(t *testing.T) {
	assert := assert.New(t)

	src, _ := NewPixelBuffer(9, 9, Gray(200))
	dst, err := DifferenceOfGaussians(src)
	assert.NoError(err)

	// Both blurs agree deep inside the image, where the wide kernel
	// window also fits.
	for y := 2; y < 7; y++ {
		for x := 2; x < 7; x++ {
			p, _ := dst.Get(x, y)
			assert.Equal(Black, p, "pixel (%d,%d)", x, y)
		}
	}
}

func TestCrosshatch_ConstantFieldHasNoStrokes(t *testing.T) {
	assert := assert.New(t)

	src, _ := NewPixelBuffer(7, 7, Gray(99))
	dst, err := Crosshatch(src)
	assert.NoError(err)

	for y := 1; y < 6; y++ {
		for x := 1; x < 6; x++ {
			p, _ := dst.Get(x, y)
			assert.Equal(Black, p, "pixel (%d,%d)", x, y)
		}
	}
}

func TestPencilSketch_FlatRegionsDodgeToWhite(t *testing.T) {
	assert := assert.New(t)

	src, _ := NewPixelBuffer(9, 9, Gray(120))
	dst, err := PencilSketch(src)
	assert.NoError(err)

	// The blur of the inverted image is only valid past its own border,
	// so flat regions are checked deep inside.
	for y := 2; y < 7; y++ {
		for x := 2; x < 7; x++ {
			p, _ := dst.Get(x, y)
			assert.Equal(uint8(255), p.R, "pixel (%d,%d)", x, y)
			assert.Equal(uint8(255), p.G)
			assert.Equal(uint8(255), p.B)
		}
	}
}

func TestKuwahara_ConstantFieldIsUnchanged(t *testing.T) {
	assert := assert.New(t)

	c := Pixel{R: 10, G: 220, B: 60, A: 0xff}
	src, _ := NewPixelBuffer(8, 8, c)

	dst, err := Kuwahara(src, 2)
	assert.NoError(err)
	assert.True(src.Equals(dst))
}

func TestKuwahara_BorderKeepsTheSourcePixels(t *testing.T) {
	assert := assert.New(t)

	src := randomBuffer(t, 8, 8, 41)
	dst, err := Kuwahara(src, 2)
	assert.NoError(err)

	for x := 0; x < 8; x++ {
		want, _ := src.Get(x, 0)
		got, _ := dst.Get(x, 0)
		assert.Equal(want, got)
	}
}

func TestAntialias_SupersamplingKeepsTheDimensions(t *testing.T) {
	assert := assert.New(t)

	src := randomBuffer(t, 10, 6, 51)
	dst, err := Antialias(src, 2)
	assert.NoError(err)

	assert.Equal(10, dst.Width())
	assert.Equal(6, dst.Height())
}

func TestAntialias_SmallScaleFallsBackToBlur(t *testing.T) {
	assert := assert.New(t)

	c := Pixel{R: 77, G: 77, B: 77, A: 0xff}
	src, _ := NewPixelBuffer(5, 5, c)

	dst, err := Antialias(src, 1)
	assert.NoError(err)

	// The Gaussian fallback of a constant field keeps the interior.
	p, _ := dst.Get(2, 2)
	assert.Equal(c, p)
}
