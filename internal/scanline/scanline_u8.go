// Package scanline holds one rasterized row's output: an X-ordered run of
// spans, each carrying a per-pixel coverage byte, ready for a pixel format
// to blend into a rendering buffer (spec component C6).
package scanline

import "github.com/agg-core/rastercore/internal/basics"

// CoverType is a single pixel's anti-aliasing coverage, 0 (empty) to 255
// (full).
type CoverType = basics.Int8u

// Span is a horizontal run of Len pixels starting at X, each covered by
// the corresponding byte in Covers (Covers[i] is the coverage of pixel
// X+i). Covers aliases ScanlineU8's internal buffer and is only valid
// until the scanline is reused via Reset.
type Span struct {
	X      int
	Len    int
	Covers []CoverType
}

const lastXSentinel = 0x7FFFFFF0

// ScanlineU8 is the unpacked, per-pixel-coverage scanline container: the
// sink a sweep hands (x, cover) pairs and (x, len, cover) spans to, one
// row at a time. Reset begins a row, AddCell/AddSpan append to it in
// increasing X order, Finalize records its Y and closes it for reading.
//
// Simplification from the teacher: the teacher backs this with
// array.PodArray[T], a generic reserve/resize vector modeled on C++'s
// pod_vector so it can avoid any allocation once warmed up across calls.
// A plain Go slice already gives amortized O(1) append and the same
// warm-buffer reuse via Reset's capacity check, so PodArray — a
// memory-layout compatibility shim with no C++ ABI to match here — is
// dropped in favor of builtin slices.
type ScanlineU8 struct {
	minX    int
	lastX   int
	y       int
	covers  []CoverType
	spans   []Span
	curSpan int
}

// NewScanlineU8 creates an empty scanline container.
func NewScanlineU8() *ScanlineU8 {
	return &ScanlineU8{lastX: lastXSentinel}
}

// Reset prepares the container for a new row spanning [minX, maxX],
// growing the backing buffers if this row is wider than any seen so far.
func (sl *ScanlineU8) Reset(minX, maxX int) {
	maxLen := maxX - minX + 2
	if maxLen > cap(sl.covers) {
		sl.covers = make([]CoverType, maxLen)
		sl.spans = make([]Span, 1, maxLen)
	} else {
		sl.covers = sl.covers[:maxLen]
		sl.spans = sl.spans[:1]
	}
	sl.lastX = lastXSentinel
	sl.minX = minX
	sl.curSpan = 0
}

// AddCell records one pixel's coverage at absolute x, extending the
// current span if x is contiguous with the last cell added, starting a
// new span otherwise. x must be non-decreasing across calls within a row.
func (sl *ScanlineU8) AddCell(x int, cover basics.Int8u) {
	x -= sl.minX
	if x < 0 || x >= len(sl.covers) {
		return
	}
	sl.covers[x] = cover

	if x == sl.lastX+1 {
		sl.spans[sl.curSpan].Len++
	} else {
		sl.curSpan++
		sl.appendSpan(Span{X: x + sl.minX, Len: 1, Covers: sl.covers[x:]})
	}
	sl.lastX = x
}

// AddCells records length pixels of individually-varying coverage
// starting at absolute x.
func (sl *ScanlineU8) AddCells(x, length int, covers []basics.Int8u) {
	x -= sl.minX
	if x < 0 {
		diff := -x
		if diff >= length {
			return
		}
		x = 0
		length -= diff
		covers = covers[diff:]
	}
	if x+length > len(sl.covers) {
		length = len(sl.covers) - x
	}
	if length <= 0 {
		return
	}
	copy(sl.covers[x:x+length], covers[:length])

	if x == sl.lastX+1 {
		sl.spans[sl.curSpan].Len += length
	} else {
		sl.curSpan++
		sl.appendSpan(Span{X: x + sl.minX, Len: length, Covers: sl.covers[x:]})
	}
	sl.lastX = x + length - 1
}

// AddSpan records length pixels all sharing one coverage value starting
// at absolute x.
func (sl *ScanlineU8) AddSpan(x, length int, cover basics.Int8u) {
	x -= sl.minX
	if x < 0 {
		diff := -x
		if diff >= length {
			return
		}
		x = 0
		length -= diff
	}
	if x+length > len(sl.covers) {
		length = len(sl.covers) - x
	}
	if length <= 0 {
		return
	}
	for i := 0; i < length; i++ {
		sl.covers[x+i] = cover
	}

	if x == sl.lastX+1 {
		sl.spans[sl.curSpan].Len += length
	} else {
		sl.curSpan++
		sl.appendSpan(Span{X: x + sl.minX, Len: length, Covers: sl.covers[x:]})
	}
	sl.lastX = x + length - 1
}

func (sl *ScanlineU8) appendSpan(s Span) {
	if sl.curSpan >= len(sl.spans) {
		sl.spans = append(sl.spans, s)
	} else {
		sl.spans[sl.curSpan] = s
	}
}

// Finalize records the row's Y coordinate; call once all cells/spans for
// the row have been added.
func (sl *ScanlineU8) Finalize(y int) { sl.y = y }

// ResetSpans discards accumulated spans while keeping the row's buffers,
// for reuse within the same Y (used by NavigateScanline-style re-sweeps).
func (sl *ScanlineU8) ResetSpans() {
	sl.lastX = lastXSentinel
	sl.curSpan = 0
}

// Y returns the row's Y coordinate, as set by the last Finalize call.
func (sl *ScanlineU8) Y() int { return sl.y }

// NumSpans returns how many spans the row holds.
func (sl *ScanlineU8) NumSpans() int { return sl.curSpan }

// Spans returns the row's spans in X order.
func (sl *ScanlineU8) Spans() []Span {
	if sl.curSpan == 0 {
		return nil
	}
	return sl.spans[1 : sl.curSpan+1]
}
