// Package rasterizer implements AGG-style scan conversion: it walks a
// polygonal path, accumulates signed area/cover contributions into a
// sparse grid of cells, and sweeps the sorted cells row by row into
// anti-aliased coverage spans.
package rasterizer

import "math"

// CellAA is a single cell's contribution at pixel (X, Y): Cover is the
// signed sub-pixel vertical delta a line crossed at or left of X within
// row Y; Area is twice the signed sub-pixel area the line leaves to the
// left of the cell's left edge. See spec invariants CI-1/CI-2.
type CellAA struct {
	X, Y  int
	Cover int
	Area  int
}

// initial resets a cell to the "no cell yet" sentinel used while
// accumulating (coordinates at the extreme so the first real coordinate
// always compares unequal).
func (c *CellAA) initial() {
	c.X = math.MaxInt32
	c.Y = math.MaxInt32
	c.Cover = 0
	c.Area = 0
}

// notEqual reports (via unsigned wraparound, matching the original's
// cheap comparison trick) whether (ex, ey) differs from this cell's position.
func (c *CellAA) notEqual(ex, ey int) bool {
	return uint32(ex) != uint32(c.X) || uint32(ey) != uint32(c.Y)
}
