package rasterizer

import (
	"fmt"

	"github.com/agg-core/rastercore/internal/basics"
)

// Status tracks where a contour sits in the MoveTo/LineTo/ClosePolygon
// state machine.
type Status int

const (
	StatusInitial Status = iota
	StatusMoveTo
	StatusLineTo
	StatusClosed
)

// Rasterizer is the public scan-conversion facade (spec component C5):
// it accepts a path one vertex at a time, clips and feeds it to the cell
// store, then sweeps the sorted cells into anti-aliased scanline spans.
//
// Simplification from the teacher: RasterizerScanlineAA[C, V, Clip] is
// generic over a coordinate type and conversion policy so the same
// facade serves both the stroke/outline pipeline's several coordinate
// representations and the filled-polygon pipeline. This spec has one
// rasterizer with two fixed entry points — integer device coordinates
// and float64 device coordinates — both upscaled to sub-pixel ints
// before reaching Clip/Cells, so the facade is concrete over *Clip
// rather than generic over a clipper interface and coordinate type.
type Rasterizer struct {
	cells *Cells
	clip  *Clip

	gamma       [basics.AAScale]basics.Int8u
	fillingRule basics.FillingRule
	autoClose   bool

	startX, startY int
	status         Status
	scanY          int
}

// NewRasterizer creates a rasterizer with an identity gamma table,
// non-zero fill rule, and auto-close enabled.
func NewRasterizer() *Rasterizer {
	r := &Rasterizer{
		cells:       NewCells(),
		clip:        NewClip(),
		fillingRule: basics.FillNonZero,
		autoClose:   true,
	}
	for i := range r.gamma {
		r.gamma[i] = basics.Int8u(i)
	}
	return r
}

// Reset discards all geometry added so far, without touching the clip
// box or gamma table.
func (r *Rasterizer) Reset() {
	r.cells.Reset()
	r.status = StatusInitial
}

// ResetClipping discards all geometry and disables the clip box.
func (r *Rasterizer) ResetClipping() {
	r.Reset()
	r.clip.ResetClipping()
}

// ClipBox sets the clip rectangle in device (float64) coordinates and
// discards any geometry added before the call.
func (r *Rasterizer) ClipBox(x1, y1, x2, y2 float64) {
	r.Reset()
	r.clip.ClipBox(upscale(x1), upscale(y1), upscale(x2), upscale(y2))
}

// FillingRule selects NonZero or EvenOdd polygon fill semantics.
func (r *Rasterizer) FillingRule(rule basics.FillingRule) {
	r.fillingRule = rule
}

// AutoClose sets whether a new MoveTo (or a sweep) implicitly closes the
// previous contour.
func (r *Rasterizer) AutoClose(flag bool) {
	r.autoClose = flag
}

// SetGamma recomputes the gamma lookup table from a continuous function
// over [0,1], sampled once here rather than evaluated per pixel.
func (r *Rasterizer) SetGamma(gammaFunc func(float64) float64) {
	for i := range r.gamma {
		v := gammaFunc(float64(i)/basics.AAMask) * basics.AAMask
		if v < 0 {
			v = 0
		}
		if v > basics.AAMask {
			v = basics.AAMask
		}
		r.gamma[i] = basics.Int8u(v)
	}
}

// ApplyGamma looks up the gamma-corrected coverage for cover, clamped to
// the table's domain.
func (r *Rasterizer) ApplyGamma(cover int) basics.Int8u {
	if cover > basics.AAMask {
		cover = basics.AAMask
	}
	if cover < 0 {
		cover = 0
	}
	return r.gamma[cover]
}

func upscale(v float64) int { return basics.IRound(v * basics.PolySubpixelScale) }

// MoveTo starts a new contour at integer device coordinates.
func (r *Rasterizer) MoveTo(x, y int) {
	r.beginContour()
	r.startX, r.startY = x*basics.PolySubpixelScale, y*basics.PolySubpixelScale
	r.clip.MoveTo(r.startX, r.startY)
	r.status = StatusMoveTo
}

// MoveToD starts a new contour at float64 device coordinates.
func (r *Rasterizer) MoveToD(x, y float64) {
	r.beginContour()
	r.startX, r.startY = upscale(x), upscale(y)
	r.clip.MoveTo(r.startX, r.startY)
	r.status = StatusMoveTo
}

func (r *Rasterizer) beginContour() {
	if r.cells.Sorted() {
		r.Reset()
	}
	if r.autoClose {
		r.ClosePolygon()
	}
}

// LineTo extends the current contour to integer device coordinates.
// Calling LineTo before any MoveTo is a caller error (invariant RI-1):
// there is no current point to extend from, so it panics rather than
// silently rasterizing from an undefined origin.
func (r *Rasterizer) LineTo(x, y int) {
	r.requireStarted("LineTo")
	r.clip.LineTo(r.cells, x*basics.PolySubpixelScale, y*basics.PolySubpixelScale)
	r.status = StatusLineTo
}

// LineToD extends the current contour to float64 device coordinates.
func (r *Rasterizer) LineToD(x, y float64) {
	r.requireStarted("LineToD")
	r.clip.LineTo(r.cells, upscale(x), upscale(y))
	r.status = StatusLineTo
}

func (r *Rasterizer) requireStarted(op string) {
	if r.status == StatusInitial {
		panic(fmt.Errorf("rastercore: %s called before MoveTo", op))
	}
}

// ClosePolygon closes the current contour back to its starting point, if
// one is open (invariant RI-2: a no-op when no MoveTo/LineTo is pending).
func (r *Rasterizer) ClosePolygon() {
	if r.status == StatusMoveTo || r.status == StatusLineTo {
		r.clip.LineTo(r.cells, r.startX, r.startY)
		r.status = StatusClosed
	}
}

// AddVertex feeds one vertex-source command into the rasterizer. A Stop
// command reaching AddVertex directly (rather than terminating AddPath's
// own loop) indicates a vertex source that fed end-of-path sentinel
// through the wrong entry point, so it panics rather than being
// silently absorbed.
func (r *Rasterizer) AddVertex(x, y float64, cmd uint32) {
	pathCmd := basics.PathCommand(cmd & uint32(basics.PathCmdMask))

	switch {
	case basics.IsMoveTo(pathCmd):
		r.MoveToD(x, y)
	case basics.IsVertex(pathCmd):
		r.LineToD(x, y)
	case basics.IsClose(cmd):
		r.ClosePolygon()
	case basics.IsStop(pathCmd):
		panic(fmt.Errorf("rastercore: AddVertex received a Stop command directly"))
	}
}

// AddPath consumes an entire path from vs, rewinding to pathID first and
// feeding vertices to AddVertex until the source reports Stop — the
// ordinary, expected way a path ends.
func (r *Rasterizer) AddPath(vs VertexSource, pathID uint32) {
	var x, y float64
	vs.Rewind(pathID)
	if r.cells.Sorted() {
		r.Reset()
	}
	for {
		cmd := vs.Vertex(&x, &y)
		if basics.IsStop(basics.PathCommand(cmd & uint32(basics.PathCmdMask))) {
			break
		}
		r.AddVertex(x, y, cmd)
	}
}

// MinX, MinY, MaxX, MaxY return the bounding box of the rasterized
// geometry's cells, in integer pixel coordinates.
func (r *Rasterizer) MinX() int { return r.cells.MinX() }
func (r *Rasterizer) MinY() int { return r.cells.MinY() }
func (r *Rasterizer) MaxX() int { return r.cells.MaxX() }
func (r *Rasterizer) MaxY() int { return r.cells.MaxY() }

// Sort closes any pending contour (if auto-closing) and sorts the cell
// store in preparation for sweeping.
func (r *Rasterizer) Sort() {
	if r.autoClose {
		r.ClosePolygon()
	}
	r.cells.SortCells()
}

// RewindScanlines sorts the geometry and positions the sweep at its
// first non-empty row, reporting false if there is nothing to render.
func (r *Rasterizer) RewindScanlines() bool {
	r.Sort()
	if r.cells.TotalCells() == 0 {
		return false
	}
	r.scanY = r.cells.MinY()
	return true
}

// NavigateScanline positions the sweep at row y without walking through
// intervening rows, reporting false if y is outside the rasterized
// geometry's range.
func (r *Rasterizer) NavigateScanline(y int) bool {
	r.Sort()
	if r.cells.TotalCells() == 0 || y < r.cells.MinY() || y > r.cells.MaxY() {
		return false
	}
	r.scanY = y
	return true
}

// CalculateAlpha converts a cell's running (cover<<(shift+1))-area value
// into a gamma-corrected coverage byte, folding it under the even-odd
// rule first when that fill rule is selected.
func (r *Rasterizer) CalculateAlpha(area int) basics.Int8u {
	cover := area >> (basics.PolySubpixelShift*2 + 1 - basics.AAShift)
	if cover < 0 {
		cover = -cover
	}
	if r.fillingRule == basics.FillEvenOdd {
		cover &= basics.AAMask2
		if cover > basics.AAScale {
			cover = basics.AAScale2 - cover
		}
	}
	if cover > basics.AAMask {
		cover = basics.AAMask
	}
	return r.gamma[cover]
}

// SweepScanline advances to the next non-empty row and writes its spans
// into sl, returning false once every row has been swept.
func (r *Rasterizer) SweepScanline(sl ScanlineInterface) bool {
	for {
		if r.scanY > r.cells.MaxY() {
			return false
		}
		if r.scanY < 0 {
			r.scanY++
			continue
		}

		sl.ResetSpans()
		cells := r.cells.ScanlineCells(r.scanY)
		cover := 0

		i := 0
		for i < len(cells) {
			cell := cells[i]
			x := cell.X
			area := cell.Area
			cover += cell.Cover

			i++
			for i < len(cells) && cells[i].X == x {
				area += cells[i].Area
				cover += cells[i].Cover
				i++
			}

			if area != 0 {
				alpha := r.CalculateAlpha((cover << (basics.PolySubpixelShift + 1)) - area)
				if alpha != 0 {
					sl.AddCell(x, alpha)
				}
				x++
			}

			if i < len(cells) && cells[i].X > x {
				alpha := r.CalculateAlpha(cover << (basics.PolySubpixelShift + 1))
				if alpha != 0 {
					sl.AddSpan(x, cells[i].X-x, alpha)
				}
			}
		}

		if sl.NumSpans() > 0 {
			break
		}
		r.scanY++
	}

	sl.Finalize(r.scanY)
	r.scanY++
	return true
}

// HitTest reports whether the rasterized geometry covers device pixel
// (tx, ty), without needing a full sweep.
func (r *Rasterizer) HitTest(tx, ty int) bool {
	if !r.NavigateScanline(ty) {
		return false
	}

	cells := r.cells.ScanlineCells(ty)
	cover := 0

	for i := 0; i < len(cells); i++ {
		cell := cells[i]
		x := cell.X
		if x > tx {
			break
		}
		cover += cell.Cover

		if x == tx {
			area := cell.Area
			for i++; i < len(cells) && cells[i].X == x; i++ {
				area += cells[i].Area
				cover += cells[i].Cover
			}
			alpha := r.CalculateAlpha((cover << (basics.PolySubpixelShift + 1)) - area)
			return alpha != 0
		}
	}

	alpha := r.CalculateAlpha(cover << (basics.PolySubpixelShift + 1))
	return alpha != 0
}
