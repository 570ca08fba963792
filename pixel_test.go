package pixl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixel_ShouldRoundTripPackedView(t *testing.T) {
	assert := assert.New(t)

	colors := []Pixel{
		Transparent,
		Black,
		White,
		{R: 0x12, G: 0x34, B: 0x56, A: 0x78},
		{R: 0xff, A: 0x01},
	}
	for _, c := range colors {
		assert.Equal(c, Unpack(c.Packed()))
	}
}

func TestPixel_PackedShouldUseArgbByteOrder(t *testing.T) {
	p := Pixel{R: 0x11, G: 0x22, B: 0x33, A: 0x44}
	if p.Packed() != 0x44112233 {
		t.Errorf("expected packed value 0x44112233, got 0x%08x", p.Packed())
	}
}

func TestPixel_GrayShouldBeOpaque(t *testing.T) {
	assert := assert.New(t)

	g := Gray(0x7f)
	assert.Equal(uint8(0x7f), g.R)
	assert.Equal(g.R, g.G)
	assert.Equal(g.G, g.B)
	assert.Equal(uint8(0xff), g.A)
}
