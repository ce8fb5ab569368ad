package rasterizer

import "github.com/agg-core/rastercore/internal/basics"

// VertexSource is anything that can feed a path's vertices to the
// rasterizer one command at a time: Rewind selects (or restarts) a path
// by ID, Vertex yields the next command and, for vertex-carrying
// commands, fills in its coordinates. Path storage and curve
// subdivision are external collaborators — this core only consumes
// whatever a conforming source already yields as straight-line
// vertices.
type VertexSource interface {
	Rewind(pathID uint32)
	Vertex(x, y *float64) uint32
}

// ScanlineInterface is whatever SweepScanline writes one row's spans
// into; scanline.ScanlineU8 satisfies it.
type ScanlineInterface interface {
	ResetSpans()
	AddCell(x int, cover basics.Int8u)
	AddSpan(x, length int, cover basics.Int8u)
	Finalize(y int)
	NumSpans() int
}
