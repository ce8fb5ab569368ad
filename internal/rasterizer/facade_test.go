package rasterizer

import (
	"testing"

	"github.com/agg-core/rastercore/internal/basics"
	"github.com/agg-core/rastercore/internal/scanline"
)

// sweepAll drains every row from r into a fresh scanline, returning the
// total pixel count covered by at least one non-zero-alpha span.
func sweepAll(t *testing.T, r *Rasterizer) (rows, pixels int) {
	t.Helper()
	sl := scanline.NewScanlineU8()
	sl.Reset(r.MinX()-1, r.MaxX()+1)
	for r.SweepScanline(sl) {
		rows++
		for _, span := range sl.Spans() {
			pixels += span.Len
		}
	}
	return rows, pixels
}

// square draws a unit-scale axis-aligned square contour via integer
// device coordinates and closes it.
func square(r *Rasterizer, x0, y0, x1, y1 int) {
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.ClosePolygon()
}

func TestOpaqueFillCoversWholeInterior(t *testing.T) {
	r := NewRasterizer()
	square(r, 0, 0, 10, 10)
	if !r.RewindScanlines() {
		t.Fatal("RewindScanlines() = false, want geometry present")
	}
	_, pixels := sweepAll(t, r)
	// A 10x10 axis-aligned square rasterizes to 100 fully-covered pixels
	// (edges land exactly on the sub-pixel grid, so there's no partial
	// AA fringe to inflate or shrink the count).
	if pixels != 100 {
		t.Errorf("covered pixels = %d, want 100", pixels)
	}
}

func TestDegenerateMoveToLineToSameSpotProducesNothing(t *testing.T) {
	r := NewRasterizer()
	r.MoveTo(5, 5)
	r.LineTo(5, 5)
	r.ClosePolygon()
	if r.RewindScanlines() {
		t.Errorf("RewindScanlines() = true for a degenerate path, want false")
	}
}

func TestEvenOddNestedSquaresPunchesHole(t *testing.T) {
	r := NewRasterizer()
	r.FillingRule(basics.FillEvenOdd)
	square(r, 0, 0, 20, 20)
	square(r, 5, 5, 15, 15)
	if !r.RewindScanlines() {
		t.Fatal("expected geometry")
	}
	sl := scanline.NewScanlineU8()
	sl.Reset(-1, 21)

	sawCenterGap := false
	for r.SweepScanline(sl) {
		if sl.Y() == 10 {
			covered := make(map[int]bool)
			for _, span := range sl.Spans() {
				for i := 0; i < span.Len; i++ {
					covered[span.X+i] = true
				}
			}
			if !covered[3] {
				t.Errorf("row 10: expected outer ring covered at x=3")
			}
			if covered[10] {
				t.Errorf("row 10: expected hole (uncovered) at x=10")
			} else {
				sawCenterGap = true
			}
		}
	}
	if !sawCenterGap {
		t.Errorf("never swept row 10")
	}
}

func TestNonZeroNestedSameWindingSquaresStaysFilled(t *testing.T) {
	// Two same-winding nested squares under NonZero should have NO hole,
	// unlike the EvenOdd case above: winding number is 2 in the overlap,
	// still non-zero.
	r := NewRasterizer()
	square(r, 0, 0, 20, 20)
	square(r, 5, 5, 15, 15)
	if !r.RewindScanlines() {
		t.Fatal("expected geometry")
	}
	sl := scanline.NewScanlineU8()
	sl.Reset(-1, 21)
	for r.SweepScanline(sl) {
		if sl.Y() == 10 {
			covered := make(map[int]bool)
			for _, span := range sl.Spans() {
				for i := 0; i < span.Len; i++ {
					covered[span.X+i] = true
				}
			}
			if !covered[10] {
				t.Errorf("row 10: NonZero fill should cover x=10 even under the inner square")
			}
		}
	}
}

func TestLineToBeforeMoveToPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected LineTo before MoveTo to panic")
		}
	}()
	r := NewRasterizer()
	r.LineTo(10, 10)
}

func TestAddVertexStopPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a direct Stop vertex to panic")
		}
	}()
	r := NewRasterizer()
	r.AddVertex(0, 0, uint32(basics.PathCmdStop))
}

func TestClosePolygonNoOpWhenNotStarted(t *testing.T) {
	r := NewRasterizer()
	r.ClosePolygon() // must not panic
	if r.RewindScanlines() {
		t.Errorf("RewindScanlines() = true with no geometry at all")
	}
}

func TestClipBoxTrimsOutOfRangeGeometry(t *testing.T) {
	r := NewRasterizer()
	r.ClipBox(0, 0, 10, 10)
	square(r, -5, -5, 20, 20)
	if !r.RewindScanlines() {
		t.Fatal("expected clipped geometry to still produce a rectangle")
	}
	if r.MaxX() > 10 {
		t.Errorf("MaxX (pixels) = %d, want <= 10 after ClipBox", r.MaxX())
	}
}

func TestHitTestInsideAndOutside(t *testing.T) {
	r := NewRasterizer()
	square(r, 0, 0, 10, 10)
	if !r.HitTest(5, 5) {
		t.Errorf("HitTest(5,5) = false, want true (inside the square)")
	}
	if r.HitTest(50, 50) {
		t.Errorf("HitTest(50,50) = true, want false (outside the square)")
	}
}

func TestGammaIdentityPreservesFullCoverage(t *testing.T) {
	r := NewRasterizer()
	square(r, 0, 0, 4, 4)
	if !r.RewindScanlines() {
		t.Fatal("expected geometry")
	}
	sl := scanline.NewScanlineU8()
	sl.Reset(-1, 5)
	found := false
	for r.SweepScanline(sl) {
		for _, span := range sl.Spans() {
			found = true
			for _, c := range span.Covers[:span.Len] {
				if c != 255 {
					t.Errorf("identity-gamma full-coverage pixel = %d, want 255", c)
				}
			}
		}
	}
	if !found {
		t.Fatal("swept no spans at all")
	}
}

func TestSweepScanlineSkipsNegativeRows(t *testing.T) {
	r := NewRasterizer()
	// This square's geometry extends above y=0, so MinY() is negative;
	// SweepScanline must skip those rows rather than hand them to the
	// caller, matching the canvas's own row range.
	square(r, 0, -5, 10, 10)
	if !r.RewindScanlines() {
		t.Fatal("expected geometry")
	}
	if r.MinY() >= 0 {
		t.Fatalf("test setup invalid: MinY() = %d, want negative", r.MinY())
	}
	sl := scanline.NewScanlineU8()
	sl.Reset(-1, 11)
	for r.SweepScanline(sl) {
		if sl.Y() < 0 {
			t.Errorf("SweepScanline returned negative row y=%d, want rows skipped", sl.Y())
		}
	}
}

func TestAutoCloseImplicitlyClosesOnNextMoveTo(t *testing.T) {
	r := NewRasterizer()
	r.MoveTo(0, 0)
	r.LineTo(10, 0)
	r.LineTo(10, 10)
	r.LineTo(0, 10)
	// No explicit ClosePolygon: the next MoveTo should auto-close this
	// contour into a full square rather than leaving an open triangle.
	r.MoveTo(100, 100)
	r.LineTo(110, 100)
	r.ClosePolygon()

	if !r.RewindScanlines() {
		t.Fatal("expected geometry")
	}
	_, pixels := sweepAll(t, r)
	if pixels < 100 {
		t.Errorf("covered pixels = %d, want >= 100 (first contour auto-closed into a full square)", pixels)
	}
}
