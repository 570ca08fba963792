package imop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_SetShouldRejectUnknownModes(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.ErrorIs(op.Set("dissolve"), ErrUnsupportedMode)
	assert.Empty(op.Get())

	assert.NoError(op.Set(Multiply))
	assert.Equal(Multiply, op.Get())
}

func TestBlend_ApplyWithoutModeCopiesTheBlendValue(t *testing.T) {
	op := NewBlend()
	if got := op.Apply(10, 200); got != 200 {
		t.Errorf("expected the blend value, got %d", got)
	}
}

func TestBlend_DarkenAndLightenPickTheExtremes(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint8(10), DarkenOp(10, 200))
	assert.Equal(uint8(10), DarkenOp(200, 10))
	assert.Equal(uint8(200), LightenOp(10, 200))
	assert.Equal(uint8(200), LightenOp(200, 10))
}

func TestBlend_MultiplyAndScreenAnchors(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint8(0), MultiplyOp(0, 123))
	assert.Equal(uint8(123), MultiplyOp(255, 123))
	assert.Equal(uint8(255), ScreenOp(255, 123))
	assert.Equal(uint8(123), ScreenOp(0, 123))
}

func TestBlend_OverlaySplitsAtMidGray(t *testing.T) {
	assert := assert.New(t)

	// Shadows multiply, highlights screen.
	assert.Equal(uint8(0), OverlayOp(0, 200))
	assert.Equal(uint8(255), OverlayOp(255, 200))
	assert.Equal(uint8(2*100*128/255), OverlayOp(100, 128))
}

func TestBlend_ColorDodgeMatchesTheShiftFormula(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint8(255), ColorDodgeOp(12, 255))
	assert.Equal(uint8(0), ColorDodgeOp(0, 100))
	// (100 << 8) / (255 - 100) = 165
	assert.Equal(uint8(165), ColorDodgeOp(100, 100))
	// Saturates once the divisor is small enough.
	assert.Equal(uint8(255), ColorDodgeOp(200, 200))
}

func TestBlend_ColorBurnAnchors(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint8(0), ColorBurnOp(100, 0))
	assert.Equal(uint8(255), ColorBurnOp(255, 255))
	assert.Equal(uint8(0), ColorBurnOp(0, 128))
}

func TestBlend_DifferenceIsSymmetric(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint8(190), DifferenceOp(10, 200))
	assert.Equal(uint8(190), DifferenceOp(200, 10))
	assert.Equal(uint8(0), DifferenceOp(99, 99))
}

func TestBlend_EveryModeDispatchesThroughApply(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]uint8{
		Darken:     DarkenOp(80, 170),
		Lighten:    LightenOp(80, 170),
		Multiply:   MultiplyOp(80, 170),
		Screen:     ScreenOp(80, 170),
		Overlay:    OverlayOp(80, 170),
		ColorDodge: ColorDodgeOp(80, 170),
		ColorBurn:  ColorBurnOp(80, 170),
		Difference: DifferenceOp(80, 170),
	}

	op := NewBlend()
	for mode, want := range cases {
		assert.NoError(op.Set(mode))
		assert.Equal(want, op.Apply(80, 170), mode)
	}
}
