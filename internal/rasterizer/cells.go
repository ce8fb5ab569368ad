package rasterizer

import (
	"math"
	"sort"

	"github.com/agg-core/rastercore/internal/basics"
)

// rowRange records where one scanline's cells live in the sorted slice.
type rowRange struct {
	start, num int
}

// Cells is the append-only cell store (spec §4.2, component C2) plus the
// line sweeper (spec §4.3, component C3) that feeds it. A Cells value is
// the sink every clipped sub-segment is fed into; Line(x1,y1,x2,y2) is
// its sole write entry point.
//
// Simplification from the teacher: the original AGG (and the teacher's
// Go port) pool cells in fixed-size blocks and keep a []*Cell index so
// cell addresses never move, because the reference implementation must
// avoid reallocation-copy cost in a language without a moving GC. Go's
// slice growth already gives amortized O(1) append with safe copying,
// and nothing here takes a cell's address across an append, so a single
// growing []CellAA replaces the block pool; sort.SliceStable replaces
// the hand-rolled cache-aware quicksort, at the cost of an O(log n)
// instead of O(1) amortized sort — irrelevant at typical path sizes and
// not a documented invariant.
type Cells struct {
	cells []CellAA
	curr  CellAA

	sorted bool
	rows   []rowRange // index 0 == minY
	minX   int
	minY   int
	maxX   int
	maxY   int
}

// NewCells creates an empty cell store.
func NewCells() *Cells {
	c := &Cells{}
	c.reset()
	return c
}

// Reset empties the store and resets its extents to the "unset" sentinels.
func (c *Cells) Reset() { c.reset() }

func (c *Cells) reset() {
	c.cells = c.cells[:0]
	c.curr.initial()
	c.sorted = false
	c.rows = nil
	c.minX = math.MaxInt32
	c.minY = math.MaxInt32
	c.maxX = math.MinInt32
	c.maxY = math.MinInt32
}

// MinX, MinY, MaxX, MaxY return the bounding box of all appended cells.
func (c *Cells) MinX() int { return c.minX }
func (c *Cells) MinY() int { return c.minY }
func (c *Cells) MaxX() int { return c.maxX }
func (c *Cells) MaxY() int { return c.maxY }

// TotalCells returns the number of cells appended so far.
func (c *Cells) TotalCells() int { return len(c.cells) }

// Sorted reports whether SortCells has run since the last Reset.
func (c *Cells) Sorted() bool { return c.sorted }

// setCurrCell flushes the accumulator if (x,y) differs from its current
// position, then starts a fresh accumulator at (x,y). This is the
// signed-area trick that keeps the cell count O(path length) rather
// than O(filled area): a cell is only materialized when the sweep
// leaves it for good.
func (c *Cells) setCurrCell(x, y int) {
	if c.curr.notEqual(x, y) {
		c.addCurrCell()
		c.curr.X, c.curr.Y = x, y
		c.curr.Cover, c.curr.Area = 0, 0
	}
}

func (c *Cells) addCurrCell() {
	if c.curr.Area != 0 || c.curr.Cover != 0 {
		c.cells = append(c.cells, c.curr)
		if c.curr.X < c.minX {
			c.minX = c.curr.X
		}
		if c.curr.X > c.maxX {
			c.maxX = c.curr.X
		}
		if c.curr.Y < c.minY {
			c.minY = c.curr.Y
		}
		if c.curr.Y > c.maxY {
			c.maxY = c.curr.Y
		}
	}
}

// SortCells stably sorts all cells by (Y, X) — stable so that, within
// equal (Y, X), append order (and thus the running cover during sweep)
// is preserved — then builds the per-row index SweepScanline reads.
func (c *Cells) SortCells() {
	if c.sorted {
		return
	}
	c.addCurrCell()
	c.curr.initial()

	if len(c.cells) == 0 {
		c.sorted = true
		return
	}

	sort.SliceStable(c.cells, func(i, j int) bool {
		a, b := c.cells[i], c.cells[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	nrows := c.maxY - c.minY + 1
	c.rows = make([]rowRange, nrows)
	i := 0
	for i < len(c.cells) {
		y := c.cells[i].Y
		j := i
		for j < len(c.cells) && c.cells[j].Y == y {
			j++
		}
		c.rows[y-c.minY] = rowRange{start: i, num: j - i}
		i = j
	}
	c.sorted = true
}

// ScanlineNumCells returns the number of cells on row y (0 outside range).
func (c *Cells) ScanlineNumCells(y int) int {
	if !c.sorted || y < c.minY || y > c.maxY {
		return 0
	}
	return c.rows[y-c.minY].num
}

// ScanlineCells returns the sorted cells belonging to row y.
func (c *Cells) ScanlineCells(y int) []CellAA {
	if !c.sorted || y < c.minY || y > c.maxY {
		return nil
	}
	r := c.rows[y-c.minY]
	return c.cells[r.start : r.start+r.num]
}

// Line rasterizes one sub-pixel-coordinate segment into cells, walking
// rows in the segment's own direction (incr is -1 when dy < 0), so each
// cell's cover carries the sign of the segment's dy.
func (c *Cells) Line(x1, y1, x2, y2 int) {
	const dxLimit = 16384 << basics.PolySubpixelShift

	dx := x2 - x1
	if dx >= dxLimit || dx <= -dxLimit {
		cx := (x1 + x2) >> 1
		cy := (y1 + y2) >> 1
		c.Line(x1, y1, cx, cy)
		c.Line(cx, cy, x2, y2)
		return
	}

	dy := y2 - y1
	ey1 := y1 >> basics.PolySubpixelShift
	ey2 := y2 >> basics.PolySubpixelShift
	fy1 := y1 & basics.PolySubpixelMask
	fy2 := y2 & basics.PolySubpixelMask

	// Anchor the accumulator at the segment's start. For a segment that
	// continues from the previous segment's end this is a no-op (that
	// segment already left it there); for any other, including the very
	// first, it establishes position
	// before any cover/area is accumulated, so the bootstrap cell is
	// never misattributed to the initial() sentinel.
	c.setCurrCell(x1>>basics.PolySubpixelShift, ey1)

	if ey1 == ey2 {
		c.renderHLine(ey1, x1, fy1, x2, fy2)
		c.setCurrCell(x2>>basics.PolySubpixelShift, ey2)
		return
	}

	incr := 1
	if dx == 0 {
		ex := x1 >> basics.PolySubpixelShift
		twoFx := (x1 - (ex << basics.PolySubpixelShift)) << 1

		first := basics.PolySubpixelScale
		if dy < 0 {
			first = 0
			incr = -1
		}

		delta := first - fy1
		c.curr.Cover += delta
		c.curr.Area += twoFx * delta

		ey1 += incr
		c.setCurrCell(ex, ey1)

		delta = first + first - basics.PolySubpixelScale
		area := twoFx * delta
		for ey1 != ey2 {
			c.curr.Cover = delta
			c.curr.Area = area
			ey1 += incr
			c.setCurrCell(ex, ey1)
		}

		delta = fy2 - basics.PolySubpixelScale + first
		c.curr.Cover += delta
		c.curr.Area += twoFx * delta
		c.setCurrCell(ex, ey2)
		return
	}

	// General case: split the segment at each integer-y boundary it
	// crosses and feed one-row sub-segments to renderHLine.
	p := (basics.PolySubpixelScale - fy1) * dx
	first := basics.PolySubpixelScale
	if dy < 0 {
		p = fy1 * dx
		first = 0
		incr = -1
		dy = -dy
	}

	delta := p / dy
	mod := p % dy
	if mod < 0 {
		delta--
		mod += dy
	}

	xFrom := x1 + delta
	c.renderHLine(ey1, x1, fy1, xFrom, first)

	ey1 += incr
	c.setCurrCell(xFrom>>basics.PolySubpixelShift, ey1)

	if ey1 != ey2 {
		p = basics.PolySubpixelScale * dx
		lift := p / dy
		rem := p % dy
		if rem < 0 {
			lift--
			rem += dy
		}
		mod -= dy

		for ey1 != ey2 {
			delta = lift
			mod += rem
			if mod >= 0 {
				mod -= dy
				delta++
			}

			xTo := xFrom + delta
			c.renderHLine(ey1, xFrom, basics.PolySubpixelScale-first, xTo, first)
			xFrom = xTo

			ey1 += incr
			c.setCurrCell(xFrom>>basics.PolySubpixelShift, ey1)
		}
	}

	c.renderHLine(ey2, xFrom, basics.PolySubpixelScale-first, x2, fy2)
	c.setCurrCell(x2>>basics.PolySubpixelShift, ey2)
}

// renderHLine accumulates cover/area for one segment confined to a
// single pixel row ey, running from sub-pixel x1 (row-local y1) to x2
// (row-local y2). It may span many pixel columns.
func (c *Cells) renderHLine(ey, x1, y1, x2, y2 int) {
	ex1 := x1 >> basics.PolySubpixelShift
	ex2 := x2 >> basics.PolySubpixelShift
	fx1 := x1 & basics.PolySubpixelMask
	fx2 := x2 & basics.PolySubpixelMask

	if y1 == y2 {
		c.setCurrCell(ex2, ey)
		return
	}

	if ex1 == ex2 {
		delta := y2 - y1
		c.curr.Cover += delta
		c.curr.Area += (fx1 + fx2) * delta
		return
	}

	dx := x2 - x1
	incr := 1
	p := (basics.PolySubpixelScale - fx1) * (y2 - y1)
	first := basics.PolySubpixelScale
	if dx < 0 {
		p = fx1 * (y2 - y1)
		first = 0
		incr = -1
		dx = -dx
	}

	delta := p / dx
	mod := p % dx
	if mod < 0 {
		delta--
		mod += dx
	}

	c.curr.Cover += delta
	c.curr.Area += (fx1 + first) * delta

	ex1 += incr
	c.setCurrCell(ex1, ey)
	y1 += delta

	if ex1 != ex2 {
		p = basics.PolySubpixelScale * (y2 - y1 + delta)
		lift := p / dx
		rem := p % dx
		if rem < 0 {
			lift--
			rem += dx
		}
		mod -= dx

		for ex1 != ex2 {
			delta = lift
			mod += rem
			if mod >= 0 {
				mod -= dx
				delta++
			}

			c.curr.Cover += delta
			c.curr.Area += basics.PolySubpixelScale * delta
			y1 += delta
			ex1 += incr
			c.setCurrCell(ex1, ey)
		}
	}

	delta = y2 - y1
	c.curr.Cover += delta
	c.curr.Area += (fx2 + basics.PolySubpixelScale - first) * delta
}
