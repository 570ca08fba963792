package pixl

import (
	"image"
	"testing"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/stretchr/testify/assert"
)

// countColor returns how many buffer pixels hold the given color.
func countColor(t *testing.T, b *PixelBuffer, c Pixel) int {
	t.Helper()

	var n int
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p, err := b.Get(x, y)
			if err != nil {
				t.Fatalf("unexpected read error: %v", err)
			}
			if p == c {
				n++
			}
		}
	}
	return n
}

func TestDraw_HorizontalLineShouldClipAgainstEdges(t *testing.T) {
	assert := assert.New(t)

	b, _ := NewPixelBuffer(8, 4, Black)
	b.DrawHorizontalLine(-3, 10, 1, White)

	for x := 0; x < 8; x++ {
		p, _ := b.Get(x, 1)
		assert.Equal(White, p)
	}
	assert.Equal(8, countColor(t, b, White))

	// A line fully outside the buffer changes nothing.
	b.DrawHorizontalLine(0, 7, -1, Gray(9))
	b.DrawHorizontalLine(0, 7, 4, Gray(9))
	assert.Equal(0, countColor(t, b, Gray(9)))
}

func TestDraw_VerticalLineShouldAcceptSwappedEndpoints(t *testing.T) {
	assert := assert.New(t)

	b, _ := NewPixelBuffer(4, 8, Black)
	b.DrawVerticalLine(2, 6, 1, White)

	for y := 1; y <= 6; y++ {
		p, _ := b.Get(2, y)
		assert.Equal(White, p)
	}
	assert.Equal(6, countColor(t, b, White))
}

func TestDraw_VerticalLinesShouldRunWithoutPool(t *testing.T) {
	assert := assert.New(t)

	b, _ := NewPixelBuffer(16, 8, Black)
	xs := []int{0, 2, 4, 6, 8, 10, 12, 14, -5, 99}
	b.DrawVerticalLines(nil, xs, 0, 7, White)

	for _, x := range xs {
		if x < 0 || x >= 16 {
			continue
		}
		for y := 0; y < 8; y++ {
			p, _ := b.Get(x, y)
			assert.Equal(White, p, "column %d row %d", x, y)
		}
	}
	assert.Equal(8*8, countColor(t, b, White))
}

func TestDraw_VerticalLinesShouldMatchSequentialWithPool(t *testing.T) {
	assert := assert.New(t)

	xs := make([]int, 0, 40)
	for x := -2; x < 38; x++ {
		xs = append(xs, x)
	}

	sequential, _ := NewPixelBuffer(32, 16, Black)
	sequential.DrawVerticalLines(nil, xs, 3, 12, White)

	pool := workerpool.New(4)
	defer pool.Close()

	parallel, _ := NewPixelBuffer(32, 16, Black)
	parallel.DrawVerticalLines(pool, xs, 3, 12, White)

	assert.True(sequential.Equals(parallel))
}

func TestDraw_VerticalLinesWithDuplicateColumns(t *testing.T) {
	assert := assert.New(t)

	// Repeated columns must not be handed to two workers at once.
	xs := make([]int, 0, 60)
	for x := 0; x < 20; x++ {
		xs = append(xs, x, x, 19-x)
	}

	sequential, _ := NewPixelBuffer(20, 10, Black)
	sequential.DrawVerticalLines(nil, xs, 0, 9, White)

	pool := workerpool.New(4)
	defer pool.Close()

	parallel, _ := NewPixelBuffer(20, 10, Black)
	parallel.DrawVerticalLines(pool, xs, 0, 9, White)

	assert.True(sequential.Equals(parallel))
	assert.Equal(20*10, countColor(t, parallel, White))
}

func TestDraw_RectangleShouldClipAgainstEdges(t *testing.T) {
	assert := assert.New(t)

	b, _ := NewPixelBuffer(6, 6, Black)
	b.DrawRectangle(-2, -2, 4, 4, White)

	assert.Equal(4, countColor(t, b, White))
	p, _ := b.Get(1, 1)
	assert.Equal(White, p)
	p, _ = b.Get(2, 2)
	assert.Equal(Black, p)
}

func TestDraw_SetAreaShouldSkipInvalidIndices(t *testing.T) {
	assert := assert.New(t)

	b, _ := NewPixelBuffer(4, 4, Black)
	b.SetArea([]int{0, 5, 15, -1, 16, 1000}, White)

	assert.Equal(3, countColor(t, b, White))
	p, _ := b.Get(1, 1)
	assert.Equal(White, p)
	p, _ = b.Get(3, 3)
	assert.Equal(White, p)
}

func TestDraw_FillShapeRect(t *testing.T) {
	assert := assert.New(t)

	b, _ := NewPixelBuffer(8, 8, Black)
	b.FillShape(Rect{X: 2, Y: 2, W: 3, H: 2}, White)

	assert.Equal(6, countColor(t, b, White))
	p, _ := b.Get(4, 3)
	assert.Equal(White, p)
	p, _ = b.Get(5, 3)
	assert.Equal(Black, p)
}

func TestDraw_FillShapeCircle(t *testing.T) {
	assert := assert.New(t)

	b, _ := NewPixelBuffer(9, 9, Black)
	b.FillShape(Circle{CX: 4, CY: 4, R: 2}, White)

	p, _ := b.Get(4, 4)
	assert.Equal(White, p)
	p, _ = b.Get(6, 4)
	assert.Equal(White, p)
	p, _ = b.Get(7, 4)
	assert.Equal(Black, p)
	// Corners of the bounding box stay outside of the disc.
	p, _ = b.Get(2, 2)
	assert.Equal(Black, p)
}

func TestDraw_FillShapePolygon(t *testing.T) {
	assert := assert.New(t)

	b, _ := NewPixelBuffer(10, 10, Black)
	// A triangle spanning the lower left half of a square.
	b.FillShape(Polygon{Points: []image.Point{
		{X: 1, Y: 1}, {X: 1, Y: 8}, {X: 8, Y: 8},
	}}, White)

	p, _ := b.Get(2, 6)
	assert.Equal(White, p)
	p, _ = b.Get(7, 3)
	assert.Equal(Black, p)
}

func TestDraw_FillShapeOutsideBufferIsNoOp(t *testing.T) {
	b, _ := NewPixelBuffer(4, 4, Black)
	b.FillShape(Rect{X: 10, Y: 10, W: 3, H: 3}, White)

	if n := countColor(t, b, White); n != 0 {
		t.Errorf("expected no pixels filled, got %d", n)
	}
}
