package pixl

import (
	"image"
	"sort"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// minParallelLines is the batch size below which DrawVerticalLines runs
// sequentially; the fan-out overhead dominates for a handful of lines.
const minParallelLines = 8

// Shape selects the region filled by FillShape. Exactly one concrete type
// stands behind it: Rect, Circle or Polygon.
type Shape interface {
	bounds() image.Rectangle
	contains(x, y int) bool
}

// Rect is an axis aligned rectangle shape.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Circle is a filled disc shape centered on (CX, CY).
type Circle struct {
	CX, CY, R int
}

func (c Circle) bounds() image.Rectangle {
	return image.Rect(c.CX-c.R, c.CY-c.R, c.CX+c.R+1, c.CY+c.R+1)
}

func (c Circle) contains(x, y int) bool {
	dx, dy := x-c.CX, y-c.CY
	return dx*dx+dy*dy <= c.R*c.R
}

// Polygon is a closed polygon shape defined by its vertices.
type Polygon struct {
	Points []image.Point
}

func (p Polygon) bounds() image.Rectangle {
	if len(p.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		if pt.X < r.Min.X {
			r.Min.X = pt.X
		}
		if pt.Y < r.Min.Y {
			r.Min.Y = pt.Y
		}
		if pt.X > r.Max.X {
			r.Max.X = pt.X
		}
		if pt.Y > r.Max.Y {
			r.Max.Y = pt.Y
		}
	}
	r.Max.X++
	r.Max.Y++
	return r
}

// contains runs an even-odd ray cast against the polygon edges.
func (p Polygon) contains(x, y int) bool {
	inside := false
	n := len(p.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := p.Points[i], p.Points[j]
		if (pi.Y > y) != (pj.Y > y) &&
			float64(x) < float64(pj.X-pi.X)*float64(y-pi.Y)/float64(pj.Y-pi.Y)+float64(pi.X) {
			inside = !inside
		}
	}
	return inside
}

// DrawHorizontalLine draws a horizontal run from (x0, y) to (x1, y)
// inclusive. The run is clipped against the buffer area.
func (b *PixelBuffer) DrawHorizontalLine(x0, x1, y int, c Pixel) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed || y < 0 || y >= b.height {
		return
	}

	if x0 < 0 {
		x0 = 0
	}
	if x1 >= b.width {
		x1 = b.width - 1
	}
	if x0 > x1 {
		return
	}
	row := y * b.width
	fillSpan(b.store[row+x0:row+x1+1], c)
}

// DrawVerticalLine draws a vertical run from (x, y0) to (x, y1) inclusive,
// clipped against the buffer area.
func (b *PixelBuffer) DrawVerticalLine(x, y0, y1 int, c Pixel) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed || x < 0 || x >= b.width {
		return
	}
	b.drawVerticalLocked(x, y0, y1, c)
}

// drawVerticalLocked writes a clipped vertical run. Caller holds the lock.
func (b *PixelBuffer) drawVerticalLocked(x, y0, y1 int, c Pixel) {
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= b.height {
		y1 = b.height - 1
	}
	for y := y0; y <= y1; y++ {
		b.store[x+y*b.width] = c
	}
}

// DrawVerticalLines draws one vertical run per column in xs, all spanning
// [y0, y1]. Columns are handed to the pool in contiguous ranges; every
// worker writes a disjoint set of columns, so the single outer lock covers
// the whole batch. A nil pool or a small batch takes the sequential path.
func (b *PixelBuffer) DrawVerticalLines(pool *workerpool.Pool, xs []int, y0, y1 int, c Pixel) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return
	}

	if pool == nil || len(xs) < minParallelLines {
		for _, x := range xs {
			if x < 0 || x >= b.width {
				continue
			}
			b.drawVerticalLocked(x, y0, y1, c)
		}
		return
	}

	// Workers must write disjoint columns, so duplicates are dropped
	// along with the out of range entries before the fan-out.
	cols := make([]int, 0, len(xs))
	for _, x := range xs {
		if x >= 0 && x < b.width {
			cols = append(cols, x)
		}
	}
	sort.Ints(cols)
	n := 0
	for i, x := range cols {
		if i == 0 || x != cols[i-1] {
			cols[n] = x
			n++
		}
	}
	cols = cols[:n]

	pool.ParallelFor(len(cols), func(start, end int) {
		for _, x := range cols[start:end] {
			b.drawVerticalLocked(x, y0, y1, c)
		}
	})
}

// DrawRectangle fills the axis aligned rectangle with origin (x, y) and
// the given width and height, clipped against the buffer area.
func (b *PixelBuffer) DrawRectangle(x, y, w, h int, c Pixel) {
	x1, y1 := x+w-1, y+h-1

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed || w <= 0 || h <= 0 {
		return
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x1 >= b.width {
		x1 = b.width - 1
	}
	if y1 >= b.height {
		y1 = b.height - 1
	}
	if x > x1 {
		return
	}
	for row := y; row <= y1; row++ {
		off := row * b.width
		fillSpan(b.store[off+x:off+x1+1], c)
	}
}

// SetArea writes a single color to a set of linear store indices.
// Indices outside of the store are skipped.
func (b *PixelBuffer) SetArea(indices []int, c Pixel) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return
	}

	for _, i := range indices {
		if i < 0 || i >= len(b.store) {
			continue
		}
		b.store[i] = c
	}
}

// FillShape fills every buffer pixel contained by the shape. Shape
// interiors are solid colored rows, so the writes go through the run
// length bulk path.
func (b *PixelBuffer) FillShape(s Shape, c Pixel) {
	area := s.bounds().Intersect(image.Rect(0, 0, b.width, b.height))
	if area.Empty() {
		return
	}

	updates := make([]PixelUpdate, 0, area.Dx()*area.Dy())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if s.contains(x, y) {
				updates = append(updates, PixelUpdate{X: x, Y: y, Color: c})
			}
		}
	}
	b.SetManyRunLength(updates)
}
