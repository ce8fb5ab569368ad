// Package pixfmt implements the pixel-format compositors that turn a
// scanline's (x, len, cover) spans into blended bytes in a rendering
// buffer (spec component C7's compositing half).
//
// Simplification from the teacher: the teacher's pixel formats are
// parameterized over a ColorSpace and a channel Order (RGB vs BGR vs
// ARGB...) via two-level generics (BlenderRGBA[CS, O], getColorOrder[O])
// so one blender body serves every byte layout AGG supports. This spec
// names exactly three concrete layouts — Rgb8, Rgba8, Rgb8Pre — so that
// is collapsed to three concrete types, each with R,G,B,(A) in that
// fixed order; the order/colorspace type parameters have no second
// instantiation here and are dropped.
package pixfmt

import (
	"github.com/agg-core/rastercore/internal/basics"
	"github.com/agg-core/rastercore/internal/buffer"
	"github.com/agg-core/rastercore/internal/color"
)

// PixFmt is the capability set the rasterizer's scanline renderer drives:
// set a solid pixel, and blend a run of pixels under uniform or
// per-pixel coverage. Concrete formats (Rgb8, Rgba8, Rgb8Pre) implement
// this directly rather than through a shared generic blender, since
// there are only three of them and each has a materially different
// channel layout and blend rule.
type PixFmt interface {
	Width() int
	Height() int
	PixWidth() int
	CopyPixel(x, y int, c color.RGBA8)
	BlendPixel(x, y int, c color.RGBA8, cover basics.Int8u)
	BlendHline(x, y, length int, c color.RGBA8, cover basics.Int8u)
	BlendSolidHspan(x, y, length int, c color.RGBA8, covers []basics.Int8u)
	BlendColorHspan(x, y, length int, colors []color.RGBA8, cover basics.Int8u)
}

// Rgb8 is the opaque 24-bit RGB pixel format: three bytes per pixel, no
// alpha channel, so every blend reduces to a lerp toward the source's RGB
// weighted by the source's alpha times the cover (an Rgb8 buffer stores
// no alpha of its own, so the result is always treated as opaque).
type Rgb8 struct {
	rb *buffer.RenderingBuffer
}

// NewRgb8 wraps rb as a 24-bit RGB pixel format.
func NewRgb8(rb *buffer.RenderingBuffer) *Rgb8 { return &Rgb8{rb: rb} }

func (p *Rgb8) Width() int    { return p.rb.Width() }
func (p *Rgb8) Height() int   { return p.rb.Height() }
func (p *Rgb8) PixWidth() int { return 3 }

func (p *Rgb8) pixAt(x, y int) []basics.Int8u {
	row := p.rb.Row(y)
	if row == nil {
		return nil
	}
	off := x * 3
	if off < 0 || off+3 > len(row) {
		return nil
	}
	return row[off : off+3]
}

func (p *Rgb8) CopyPixel(x, y int, c color.RGBA8) {
	px := p.pixAt(x, y)
	if px == nil {
		return
	}
	px[0], px[1], px[2] = c.R, c.G, c.B
}

func (p *Rgb8) BlendPixel(x, y int, c color.RGBA8, cover basics.Int8u) {
	px := p.pixAt(x, y)
	if px == nil {
		return
	}
	alpha := basics.MultiplyU8(c.A, cover)
	if alpha == 0 {
		return
	}
	px[0] = basics.LerpU8(px[0], c.R, alpha)
	px[1] = basics.LerpU8(px[1], c.G, alpha)
	px[2] = basics.LerpU8(px[2], c.B, alpha)
}

func (p *Rgb8) BlendHline(x, y, length int, c color.RGBA8, cover basics.Int8u) {
	alpha := basics.MultiplyU8(c.A, cover)
	if alpha == 0 {
		return
	}
	for i := 0; i < length; i++ {
		px := p.pixAt(x+i, y)
		if px == nil {
			continue
		}
		px[0] = basics.LerpU8(px[0], c.R, alpha)
		px[1] = basics.LerpU8(px[1], c.G, alpha)
		px[2] = basics.LerpU8(px[2], c.B, alpha)
	}
}

func (p *Rgb8) BlendSolidHspan(x, y, length int, c color.RGBA8, covers []basics.Int8u) {
	for i := 0; i < length; i++ {
		p.BlendPixel(x+i, y, c, covers[i])
	}
}

// BlendColorHspan sets each pixel in the span directly from colors,
// one already-blended color per pixel: per spec this is a plain `set`
// loop, not a further blend, so cover is accepted but unused.
func (p *Rgb8) BlendColorHspan(x, y, length int, colors []color.RGBA8, cover basics.Int8u) {
	for i := 0; i < length; i++ {
		p.CopyPixel(x+i, y, colors[i])
	}
}
