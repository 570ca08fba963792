// Package imop implements the separable blend modes used when two
// filter outputs are merged into one image. Every mode is a pure
// function over a pair of 8 bit channel values, base below and blend on
// top, so callers can fold a mode into their own pixel loops without
// converting to floating point colors first.
package imop

import "errors"

// The supported blend modes.
const (
	Darken     = "darken"
	Lighten    = "lighten"
	Multiply   = "multiply"
	Screen     = "screen"
	Overlay    = "overlay"
	ColorDodge = "color_dodge"
	ColorBurn  = "color_burn"
	Difference = "difference"
)

// ErrUnsupportedMode is returned when a blend mode name is unknown.
var ErrUnsupportedMode = errors.New("imop: unsupported blend mode")

// Blend holds the currently active blend mode.
type Blend struct {
	opType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	switch opType {
	case Darken, Lighten, Multiply, Screen, Overlay, ColorDodge, ColorBurn, Difference:
		o.opType = opType
		return nil
	}
	return ErrUnsupportedMode
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.opType
}

// Apply blends a single pair of channel values with the active mode.
// With no mode set the blend value wins, matching a plain copy.
func (o *Blend) Apply(base, blend uint8) uint8 {
	switch o.opType {
	case Darken:
		return DarkenOp(base, blend)
	case Lighten:
		return LightenOp(base, blend)
	case Multiply:
		return MultiplyOp(base, blend)
	case Screen:
		return ScreenOp(base, blend)
	case Overlay:
		return OverlayOp(base, blend)
	case ColorDodge:
		return ColorDodgeOp(base, blend)
	case ColorBurn:
		return ColorBurnOp(base, blend)
	case Difference:
		return DifferenceOp(base, blend)
	}
	return blend
}

// DarkenOp keeps the darker of the two channel values.
func DarkenOp(base, blend uint8) uint8 {
	if blend < base {
		return blend
	}
	return base
}

// LightenOp keeps the lighter of the two channel values.
func LightenOp(base, blend uint8) uint8 {
	if blend > base {
		return blend
	}
	return base
}

// MultiplyOp darkens by multiplying the normalized channels.
func MultiplyOp(base, blend uint8) uint8 {
	return uint8(uint16(base) * uint16(blend) / 255)
}

// ScreenOp lightens by multiplying the inverted channels.
func ScreenOp(base, blend uint8) uint8 {
	return uint8(255 - uint16(255-base)*uint16(255-blend)/255)
}

// OverlayOp multiplies in the shadows and screens in the highlights.
func OverlayOp(base, blend uint8) uint8 {
	if base < 128 {
		return uint8(2 * uint16(base) * uint16(blend) / 255)
	}
	v := 255 - 2*uint16(255-base)*uint16(255-blend)/255
	return uint8(v)
}

// ColorDodgeOp brightens the base channel by the blend channel:
// 255 when the blend is white, otherwise clamp(base<<8 / (255-blend)).
func ColorDodgeOp(base, blend uint8) uint8 {
	if blend == 255 {
		return 255
	}
	v := (uint32(base) << 8) / uint32(255-blend)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ColorBurnOp darkens the base channel by the inverted blend channel.
func ColorBurnOp(base, blend uint8) uint8 {
	if blend == 0 {
		return 0
	}
	v := int32(255) - (int32(255-base)<<8)/int32(blend)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// DifferenceOp keeps the absolute channel difference.
func DifferenceOp(base, blend uint8) uint8 {
	if base > blend {
		return base - blend
	}
	return blend - base
}
