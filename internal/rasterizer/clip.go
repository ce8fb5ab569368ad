package rasterizer

import "github.com/agg-core/rastercore/internal/basics"

// PolyMaxCoord bounds a single clipped coordinate so repeated MulDiv
// saturation can never overflow a 32-bit intermediate.
const PolyMaxCoord = (1 << 30) - 1

// clip flag bits, one per rectangle edge a point may lie beyond. The X
// bits (X2=1, X1=4) are spaced so that LineTo's ((f1&5)<<1)|(f2&5)
// switch gives every endpoint combination a distinct case value.
const (
	clpX2 = 1
	clpY2 = 2
	clpX1 = 4
	clpY1 = 8
)

// LineSink is whatever a clipped, one-row-or-less sub-segment is handed
// to; Cells satisfies it.
type LineSink interface {
	Line(x1, y1, x2, y2 int)
}

// rect is an axis-aligned clip rectangle in sub-pixel coordinates.
type rect struct {
	X1, Y1, X2, Y2 int
}

func (r *rect) normalize() {
	if r.X2 < r.X1 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y2 < r.Y1 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
}

func clippingFlags(x, y int, rc rect) uint {
	var f uint
	if x < rc.X1 {
		f |= clpX1
	} else if x > rc.X2 {
		f |= clpX2
	}
	if y < rc.Y1 {
		f |= clpY1
	} else if y > rc.Y2 {
		f |= clpY2
	}
	return f
}

func clippingFlagsY(y int, rc rect) uint {
	if y < rc.Y1 {
		return clpY1
	}
	if y > rc.Y2 {
		return clpY2
	}
	return 0
}

// mulDiv returns round(a*b/c), saturated to +/-PolyMaxCoord. This is the
// one arithmetic primitive the nine-way X/Y clip case split below needs:
// each clipped intersection point is an interpolated coordinate of this
// form.
func mulDiv(a, b, c float64) int {
	sat := basics.NewSaturation(PolyMaxCoord)
	return sat.IRound(a * b / c)
}

// Clip is the scanline clipping rasterizer (spec §4.4, component C4): it
// tracks the current point across MoveTo/LineTo calls and, when clipping
// is enabled, splits each segment against an axis-aligned rectangle
// before handing surviving (or boundary-synthesized) pieces to sink.Line.
//
// Simplification from the teacher: RasterizerSlClip[C, V] is generic over
// a coordinate type C and a Conv[C] policy (int / int-saturated / int-3x
// / double / double-3x) because the teacher's stroke/outline renderers
// feed it sub-pixel-scaled coordinates in several representations. This
// spec has exactly one rasterizer entry point accepting either integer
// device coordinates or float64 ones (§6), both of which the facade
// upscales to sub-pixel units before reaching the sweeper — so Clip only
// ever needs to work in already-upscaled int coordinates, and the
// Conv/Int3xConv/Dbl3xConv/DblConv policies (and their Xi/Yi 3x-scaling
// hooks, meaningful only to the teacher's outline-stroke rasterizer) have
// no caller here and are dropped rather than ported unused.
type Clip struct {
	clipBox  rect
	x1, y1   int
	f1       uint
	clipping bool
}

// NewClip creates a clipper with clipping disabled.
func NewClip() *Clip {
	return &Clip{}
}

// ResetClipping disables the clip rectangle; all lines pass through.
func (c *Clip) ResetClipping() {
	c.clipping = false
}

// ClipBox sets the clip rectangle (already in sub-pixel coordinates) and
// enables clipping.
func (c *Clip) ClipBox(x1, y1, x2, y2 int) {
	c.clipBox = rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
	c.clipBox.normalize()
	c.clipping = true
}

// Clipping reports whether a clip rectangle is active.
func (c *Clip) Clipping() bool { return c.clipping }

// ClipBoxRect returns the active clip rectangle as (x1,y1,x2,y2).
func (c *Clip) ClipBoxRect() (x1, y1, x2, y2 int) {
	return c.clipBox.X1, c.clipBox.Y1, c.clipBox.X2, c.clipBox.Y2
}

// MoveTo records the new current point and its clip-flag classification.
func (c *Clip) MoveTo(x1, y1 int) {
	c.x1, c.y1 = x1, y1
	if c.clipping {
		c.f1 = clippingFlags(x1, y1, c.clipBox)
	}
}

// lineClipY clips a segment already known to lie within [X1,X2] against
// the Y1/Y2 edges: an endpoint beyond Y1 or Y2 is moved to the segment's
// intersection with that edge, and a segment wholly beyond one Y edge is
// dropped. The part of the segment outside the box in Y is discarded.
func (c *Clip) lineClipY(sink LineSink, x1, y1, x2, y2 int, f1, f2 uint) {
	f1 &= clpY1 | clpY2
	f2 &= clpY1 | clpY2

	if (f1 | f2) == 0 {
		sink.Line(x1, y1, x2, y2)
		return
	}
	if f1 == f2 {
		// Both endpoints clipped to the same side: entirely invisible.
		return
	}

	tx1, ty1 := x1, y1
	tx2, ty2 := x2, y2

	if f1&clpY1 != 0 {
		tx1 = x1 + mulDiv(float64(c.clipBox.Y1-y1), float64(x2-x1), float64(y2-y1))
		ty1 = c.clipBox.Y1
	}
	if f1&clpY2 != 0 {
		tx1 = x1 + mulDiv(float64(c.clipBox.Y2-y1), float64(x2-x1), float64(y2-y1))
		ty1 = c.clipBox.Y2
	}
	if f2&clpY1 != 0 {
		tx2 = x1 + mulDiv(float64(c.clipBox.Y1-y1), float64(x2-x1), float64(y2-y1))
		ty2 = c.clipBox.Y1
	}
	if f2&clpY2 != 0 {
		tx2 = x1 + mulDiv(float64(c.clipBox.Y2-y1), float64(x2-x1), float64(y2-y1))
		ty2 = c.clipBox.Y2
	}
	sink.Line(tx1, ty1, tx2, ty2)
}

// LineTo clips and emits the segment from the current point to (x2,y2),
// then makes (x2,y2) the new current point. With clipping disabled this
// is a direct pass-through to sink.Line.
func (c *Clip) LineTo(sink LineSink, x2, y2 int) {
	if !c.clipping {
		sink.Line(c.x1, c.y1, x2, y2)
		c.x1, c.y1 = x2, y2
		return
	}

	f2 := clippingFlags(x2, y2, c.clipBox)

	if (c.f1&(clpY1|clpY2)) == (f2&(clpY1|clpY2)) && (c.f1&(clpY1|clpY2)) != 0 {
		// Both endpoints beyond the same Y edge: invisible regardless of X.
		c.x1, c.y1, c.f1 = x2, y2, f2
		return
	}

	x1, y1 := c.x1, c.y1
	f1 := c.f1

	switch ((f1 & (clpX1 | clpX2)) << 1) | (f2 & (clpX1 | clpX2)) {
	case 0:
		c.lineClipY(sink, x1, y1, x2, y2, f1, f2)

	case 1: // x2 beyond X2
		y3 := y1 + mulDiv(float64(c.clipBox.X2-x1), float64(y2-y1), float64(x2-x1))
		f3 := clippingFlagsY(y3, c.clipBox)
		c.lineClipY(sink, x1, y1, c.clipBox.X2, y3, f1, f3)
		c.lineClipY(sink, c.clipBox.X2, y3, c.clipBox.X2, y2, f3, f2)

	case 2: // x1 beyond X2
		y3 := y1 + mulDiv(float64(c.clipBox.X2-x1), float64(y2-y1), float64(x2-x1))
		f3 := clippingFlagsY(y3, c.clipBox)
		c.lineClipY(sink, c.clipBox.X2, y3, x2, y2, f3, f2)

	case 3: // both beyond X2
		c.lineClipY(sink, c.clipBox.X2, y1, c.clipBox.X2, y2, f1, f2)

	case 4: // x2 beyond X1
		y3 := y1 + mulDiv(float64(c.clipBox.X1-x1), float64(y2-y1), float64(x2-x1))
		f3 := clippingFlagsY(y3, c.clipBox)
		c.lineClipY(sink, x1, y1, c.clipBox.X1, y3, f1, f3)
		c.lineClipY(sink, c.clipBox.X1, y3, c.clipBox.X1, y2, f3, f2)

	case 6: // x1 beyond X2, x2 beyond X1 (crosses the whole box in X)
		y3 := y1 + mulDiv(float64(c.clipBox.X2-x1), float64(y2-y1), float64(x2-x1))
		y4 := y1 + mulDiv(float64(c.clipBox.X1-x1), float64(y2-y1), float64(x2-x1))
		f3 := clippingFlagsY(y3, c.clipBox)
		f4 := clippingFlagsY(y4, c.clipBox)
		c.lineClipY(sink, c.clipBox.X2, y1, c.clipBox.X2, y3, f1, f3)
		c.lineClipY(sink, c.clipBox.X2, y3, c.clipBox.X1, y4, f3, f4)
		c.lineClipY(sink, c.clipBox.X1, y4, c.clipBox.X1, y2, f4, f2)

	case 8: // x1 beyond X1
		y3 := y1 + mulDiv(float64(c.clipBox.X1-x1), float64(y2-y1), float64(x2-x1))
		f3 := clippingFlagsY(y3, c.clipBox)
		c.lineClipY(sink, c.clipBox.X1, y1, c.clipBox.X1, y3, f1, f3)
		c.lineClipY(sink, c.clipBox.X1, y3, x2, y2, f3, f2)

	case 9: // x1 beyond X1, x2 beyond X2 (crosses the whole box in X, reversed)
		y3 := y1 + mulDiv(float64(c.clipBox.X1-x1), float64(y2-y1), float64(x2-x1))
		y4 := y1 + mulDiv(float64(c.clipBox.X2-x1), float64(y2-y1), float64(x2-x1))
		f3 := clippingFlagsY(y3, c.clipBox)
		f4 := clippingFlagsY(y4, c.clipBox)
		c.lineClipY(sink, c.clipBox.X1, y1, c.clipBox.X1, y3, f1, f3)
		c.lineClipY(sink, c.clipBox.X1, y3, c.clipBox.X2, y4, f3, f4)
		c.lineClipY(sink, c.clipBox.X2, y4, c.clipBox.X2, y2, f4, f2)

	case 12: // both beyond X1
		c.lineClipY(sink, c.clipBox.X1, y1, c.clipBox.X1, y2, f1, f2)
	}

	c.f1 = f2
	c.x1, c.y1 = x2, y2
}
