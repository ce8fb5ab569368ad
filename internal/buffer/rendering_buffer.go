// Package buffer provides the flat pixel-byte store a pixel format reads
// and writes through (spec component C7's rendering buffer).
package buffer

// RenderingBuffer is a row-accessor over a flat byte buffer: Width x
// Height pixels, Stride bytes per row. A negative Stride addresses the
// same bytes bottom-up (row 0 is the last physical row), matching the
// row order some image codecs and window systems expect.
//
// Simplification from the teacher: RenderingBuffer[T any] is generic so
// the same row-accessor logic serves byte, uint16, and float32 backing
// buffers across the teacher's full set of pixel depths. This spec's
// pixel formats (Rgb8, Rgba8, Rgb8Pre) are all byte-per-channel, so the
// type parameter — and the unsafe.Sizeof bookkeeping it required to
// convert a byte stride into an element stride — has no second
// instantiation here and is dropped in favor of a concrete []byte buffer.
type RenderingBuffer struct {
	buf    []byte
	start  []byte
	width  int
	height int
	stride int
}

// NewRenderingBuffer creates a rendering buffer attached to buf.
func NewRenderingBuffer(buf []byte, width, height, stride int) *RenderingBuffer {
	rb := &RenderingBuffer{}
	rb.Attach(buf, width, height, stride)
	return rb
}

// Attach points the buffer at buf with the given geometry. stride may be
// negative for a bottom-up layout.
func (rb *RenderingBuffer) Attach(buf []byte, width, height, stride int) {
	rb.buf = buf
	rb.width = width
	rb.height = height
	rb.stride = stride

	if stride < 0 {
		offset := (-stride) * (height - 1)
		if len(buf) > offset {
			rb.start = buf[offset:]
		} else {
			rb.start = buf
		}
	} else {
		rb.start = buf
	}
}

// Buf returns the raw backing buffer.
func (rb *RenderingBuffer) Buf() []byte { return rb.buf }

// Width returns the buffer's pixel width.
func (rb *RenderingBuffer) Width() int { return rb.width }

// Height returns the buffer's pixel height.
func (rb *RenderingBuffer) Height() int { return rb.height }

// Stride returns the signed byte stride per row.
func (rb *RenderingBuffer) Stride() int { return rb.stride }

// StrideAbs returns the unsigned byte stride per row.
func (rb *RenderingBuffer) StrideAbs() int {
	if rb.stride < 0 {
		return -rb.stride
	}
	return rb.stride
}

// Row returns the byte slice for row y's full stride width, or nil if y
// is out of range.
func (rb *RenderingBuffer) Row(y int) []byte {
	if y < 0 || y >= rb.height {
		return nil
	}
	s := rb.StrideAbs()
	base := rb.start
	start := y * s
	if rb.stride < 0 {
		base = rb.buf
		start = (rb.height - 1 - y) * s
	}
	if start < 0 || start >= len(base) {
		return nil
	}
	end := start + s
	if end > len(base) {
		end = len(base)
	}
	return base[start:end]
}

// RowPtr returns length bytes of row y starting at byte offset
// byteOffset, clamped to the buffer's extent.
func (rb *RenderingBuffer) RowPtr(byteOffset, y, length int) []byte {
	row := rb.Row(y)
	if row == nil || byteOffset < 0 || byteOffset >= len(row) {
		return nil
	}
	end := byteOffset + length
	if end > len(row) {
		end = len(row)
	}
	return row[byteOffset:end]
}
