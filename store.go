package pixl

import (
	"errors"
	"sort"
)

// Engine level errors reported to the caller.
var (
	// ErrOutOfBounds is returned when a pixel is read outside of the
	// buffer area. Writes outside of the buffer area are clipped silently.
	ErrOutOfBounds = errors.New("pixl: pixel coordinate is outside of the buffer")
	// ErrSizeMismatch is returned when two buffers of different sizes
	// are combined.
	ErrSizeMismatch = errors.New("pixl: the source and destination buffers differ in size")
	// ErrDisposed is returned when a buffer is used after Dispose.
	ErrDisposed = errors.New("pixl: the buffer has been disposed")
	// ErrInvalidSize is returned when a buffer is requested with
	// non positive dimensions.
	ErrInvalidSize = errors.New("pixl: the buffer width and height must be positive")
)

// PixelStore is the raw backing array of a buffer: a contiguous mapping
// from the linear index x + y*width to a Pixel. Its length is always
// width*height.
type PixelStore []Pixel

// PixelUpdate is a single pending write used by the bulk set paths.
type PixelUpdate struct {
	X, Y  int
	Color Pixel
}

// adaptiveScratchSize is the capacity of the stack scratch buffer used by
// SetPixelsAdaptive for small batches.
const adaptiveScratchSize = 64

// SetPixel writes a single pixel into the store. Coordinates outside of
// [0,w)x[0,h) are ignored; drawing close to an edge must not fail.
func SetPixel(store PixelStore, w, h, x, y int, c Pixel) {
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	store[x+y*w] = c
}

// GetPixel reads a single pixel from the store. This is the hot path:
// the caller guarantees the coordinate is inside [0,w)x[0,h) and no
// bounds validation is performed here.
func GetPixel(store PixelStore, w, x, y int) Pixel {
	return store[x+y*w]
}

// SetPixelsAdaptive applies an unordered batch of pixel updates.
//
// Batches of at most threshold updates are first materialized into a fixed
// capacity scratch array, dropping the out of bounds ones, and then written
// back to back without further checks. Larger batches take the simple
// checked per update path; they deliberately skip the row grouping done by
// SetPixelsRunLength, favoring simplicity over cache locality at that scale.
func SetPixelsAdaptive(store PixelStore, w, h int, updates []PixelUpdate, threshold int) {
	if threshold > adaptiveScratchSize {
		threshold = adaptiveScratchSize
	}
	if len(updates) <= threshold {
		var scratch [adaptiveScratchSize]PixelUpdate
		n := 0
		for _, u := range updates {
			if u.X < 0 || u.X >= w || u.Y < 0 || u.Y >= h {
				continue
			}
			scratch[n] = u
			n++
		}
		for _, u := range scratch[:n] {
			store[u.X+u.Y*w] = u.Color
		}
		return
	}

	for _, u := range updates {
		if u.X < 0 || u.X >= w || u.Y < 0 || u.Y >= h {
			continue
		}
		store[u.X+u.Y*w] = u.Color
	}
}

// runKey identifies one group of updates sharing a row and a color.
type runKey struct {
	y     int
	color uint32
}

// SetPixelsRunLength applies a batch of pixel updates by grouping them per
// row and color, sorting each group's x coordinates and filling maximal
// contiguous spans in one go. This is the cache friendly path for large
// solid regions such as masks, fills and synthesized textures.
//
// The final buffer content is identical to applying every update through
// SetPixel in any order: duplicate coordinates can only meet inside one
// group, and the span fill overwrites them uniformly.
func SetPixelsRunLength(store PixelStore, w, h int, updates []PixelUpdate) {
	groups := make(map[runKey][]int)
	for _, u := range updates {
		if u.X < 0 || u.X >= w || u.Y < 0 || u.Y >= h {
			continue
		}
		k := runKey{y: u.Y, color: u.Color.Packed()}
		groups[k] = append(groups[k], u.X)
	}

	for k, xs := range groups {
		sort.Ints(xs)

		c := Unpack(k.color)
		row := k.y * w
		start, prev := xs[0], xs[0]
		for _, x := range xs[1:] {
			if x == prev || x == prev+1 {
				prev = x
				continue
			}
			fillSpan(store[row+start:row+prev+1], c)
			start, prev = x, x
		}
		fillSpan(store[row+start:row+prev+1], c)
	}
}

// fillSpan overwrites a contiguous span with a single color.
func fillSpan(span []Pixel, c Pixel) {
	for i := range span {
		span[i] = c
	}
}

// BlendInto composites src over dst in place using the standard "over"
// formula with integer arithmetic:
//
//	out = (src*srcA + dst*(255-srcA)) / 255
//
// per color channel, and srcA + dstA*(255-srcA)/255 for the output alpha.
// Fully transparent source pixels are skipped and fully opaque ones are
// copied verbatim, with no per channel math on either fast path.
func BlendInto(dst, src PixelStore) error {
	if len(dst) != len(src) {
		return ErrSizeMismatch
	}

	for i, s := range src {
		switch s.A {
		case 0:
			// dst is left untouched
		case 255:
			dst[i] = s
		default:
			d := dst[i]
			sa := uint32(s.A)
			inv := 255 - sa
			dst[i] = Pixel{
				R: uint8((uint32(s.R)*sa + uint32(d.R)*inv) / 255),
				G: uint8((uint32(s.G)*sa + uint32(d.G)*inv) / 255),
				B: uint8((uint32(s.B)*sa + uint32(d.B)*inv) / 255),
				A: uint8(sa + uint32(d.A)*inv/255),
			}
		}
	}
	return nil
}
