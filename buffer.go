package pixl

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"
)

// DefaultAdaptiveThreshold is the batch size below which SetMany goes
// through the scratch buffer fast path.
const DefaultAdaptiveThreshold = 64

// PixelBuffer is the owning facade over a PixelStore. All mutating
// operations run under the buffer's own lock; one writer at a time is the
// supported model. The width and height never change after construction,
// so they can be read without the lock.
//
// The backing store belongs exclusively to the buffer and stays stable for
// its whole lifetime. Dispose releases it exactly once; a finalizer acts as
// a safety net when Dispose was skipped.
type PixelBuffer struct {
	mu       sync.Mutex
	seq      uint64
	store    PixelStore
	width    int
	height   int
	disposed bool
}

// bufferSeq hands every buffer a creation-order number, the global lock
// order for operations that hold two buffer locks at once.
var bufferSeq atomic.Uint64

// NewPixelBuffer allocates a width x height buffer filled with the given
// color. Use Transparent for an empty buffer.
func NewPixelBuffer(width, height int, fill Pixel) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt32/height {
		return nil, ErrInvalidSize
	}

	b := &PixelBuffer{
		seq:    bufferSeq.Add(1),
		store:  make(PixelStore, width*height),
		width:  width,
		height: height,
	}
	if fill != (Pixel{}) {
		fillSpan(b.store, fill)
	}
	runtime.SetFinalizer(b, (*PixelBuffer).finalize)

	return b, nil
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Get reads the pixel at (x, y). Unlike Set, an out of bounds read is a
// contract violation and is reported as an error: reads must be validated
// upstream while writes near the edges are forgiving.
func (b *PixelBuffer) Get(x, y int) (Pixel, error) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Pixel{}, ErrOutOfBounds
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return Pixel{}, ErrDisposed
	}
	return GetPixel(b.store, b.width, x, y), nil
}

// Set writes the pixel at (x, y). Out of bounds writes are silently
// clipped.
func (b *PixelBuffer) Set(x, y int, c Pixel) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return
	}
	SetPixel(b.store, b.width, b.height, x, y, c)
}

// SetMany applies a batch of updates through the adaptive bulk path using
// DefaultAdaptiveThreshold.
func (b *PixelBuffer) SetMany(updates []PixelUpdate) {
	b.SetManyThreshold(updates, DefaultAdaptiveThreshold)
}

// SetManyThreshold applies a batch of updates through the adaptive bulk
// path with an explicit small batch threshold.
func (b *PixelBuffer) SetManyThreshold(updates []PixelUpdate, threshold int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return
	}
	SetPixelsAdaptive(b.store, b.width, b.height, updates, threshold)
}

// SetManyRunLength applies a batch of updates through the run length bulk
// path. Callers use it when they know they are writing coherent colored
// regions, such as masks and synthesized textures.
func (b *PixelBuffer) SetManyRunLength(updates []PixelUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return
	}
	SetPixelsRunLength(b.store, b.width, b.height, updates)
}

// lockPair acquires both buffer locks in creation order, so two
// goroutines combining the same pair from opposite ends cannot deadlock.
// A buffer paired with itself is locked once.
func (b *PixelBuffer) lockPair(other *PixelBuffer) {
	switch {
	case b == other:
		b.mu.Lock()
	case other.seq < b.seq:
		other.mu.Lock()
		b.mu.Lock()
	default:
		b.mu.Lock()
		other.mu.Lock()
	}
}

func (b *PixelBuffer) unlockPair(other *PixelBuffer) {
	b.mu.Unlock()
	if other != b {
		other.mu.Unlock()
	}
}

// Blend composites src over the buffer using the integer "over" formula.
// The two buffers must have the same dimensions.
func (b *PixelBuffer) Blend(src *PixelBuffer) error {
	if b.width != src.width || b.height != src.height {
		return ErrSizeMismatch
	}

	b.lockPair(src)
	defer b.unlockPair(src)

	if b.disposed || src.disposed {
		return ErrDisposed
	}
	return BlendInto(b.store, src.store)
}

// Bytes returns a point in time snapshot of the buffer packed as four
// bytes per pixel in R, G, B, A order. The copy is taken under the lock,
// so the caller never observes a partially written buffer. A disposed
// buffer yields nil.
func (b *PixelBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return nil
	}

	out := make([]byte, len(b.store)*4)
	for i, p := range b.store {
		out[i*4+0] = p.R
		out[i*4+1] = p.G
		out[i*4+2] = p.B
		out[i*4+3] = p.A
	}
	return out
}

// Clone returns a new buffer with an independent copy of the pixel data.
func (b *PixelBuffer) Clone() (*PixelBuffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return nil, ErrDisposed
	}

	dst, err := NewPixelBuffer(b.width, b.height, Transparent)
	if err != nil {
		return nil, err
	}
	copy(dst.store, b.store)
	return dst, nil
}

// Equals reports whether two buffers have the same dimensions and the
// same pixel values.
func (b *PixelBuffer) Equals(other *PixelBuffer) bool {
	if other == nil {
		return false
	}
	if b == other {
		return true
	}
	if b.width != other.width || b.height != other.height {
		return false
	}

	b.lockPair(other)
	defer b.unlockPair(other)

	if b.disposed || other.disposed {
		return false
	}
	for i, p := range b.store {
		if p != other.store[i] {
			return false
		}
	}
	return true
}

// Dispose releases the backing store. It is safe to call multiple times;
// every call after the first is a no-op. Consumers holding a Bytes
// snapshot are unaffected, but the buffer itself rejects further reads.
func (b *PixelBuffer) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return
	}
	b.disposed = true
	b.store = nil
	runtime.SetFinalizer(b, nil)
}

// finalize is the safety net for buffers that were never disposed.
// It only drops the raw store; it must not reach into any other owned
// object at this point.
func (b *PixelBuffer) finalize() {
	b.store = nil
	b.disposed = true
}
