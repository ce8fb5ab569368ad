package pixfmt

import (
	"github.com/agg-core/rastercore/internal/basics"
	"github.com/agg-core/rastercore/internal/buffer"
	"github.com/agg-core/rastercore/internal/color"
)

// Rgba8 is the straight (non-premultiplied) 32-bit RGBA pixel format.
// Each stored pixel's RGB is compositing history, not the last source
// color's raw channels: blending lerps RGB toward the incoming color and
// prelerps alpha, the combination that keeps compositing order-correct
// without ever premultiplying the buffer itself.
//
// Resolved open question: the destination alpha update uses
// PrelerpU8(dst.A, alpha, alpha), not LerpU8 — compositing alpha is
// itself a premultiplied quantity (it's the coverage-weighted union of
// opacities seen so far) even though RGB here is not, so it must prelerp
// like BlenderRGBAPre's alpha channel does, never straight-lerp.
type Rgba8 struct {
	rb *buffer.RenderingBuffer
}

// NewRgba8 wraps rb as a straight 32-bit RGBA pixel format.
func NewRgba8(rb *buffer.RenderingBuffer) *Rgba8 { return &Rgba8{rb: rb} }

func (p *Rgba8) Width() int    { return p.rb.Width() }
func (p *Rgba8) Height() int   { return p.rb.Height() }
func (p *Rgba8) PixWidth() int { return 4 }

func (p *Rgba8) pixAt(x, y int) []basics.Int8u {
	row := p.rb.Row(y)
	if row == nil {
		return nil
	}
	off := x * 4
	if off < 0 || off+4 > len(row) {
		return nil
	}
	return row[off : off+4]
}

func (p *Rgba8) CopyPixel(x, y int, c color.RGBA8) {
	px := p.pixAt(x, y)
	if px == nil {
		return
	}
	px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
}

func (p *Rgba8) BlendPixel(x, y int, c color.RGBA8, cover basics.Int8u) {
	px := p.pixAt(x, y)
	if px == nil {
		return
	}
	blendStraight(px, c.R, c.G, c.B, basics.MultiplyU8(c.A, cover))
}

func (p *Rgba8) BlendHline(x, y, length int, c color.RGBA8, cover basics.Int8u) {
	alpha := basics.MultiplyU8(c.A, cover)
	if alpha == 0 {
		return
	}
	for i := 0; i < length; i++ {
		px := p.pixAt(x+i, y)
		if px == nil {
			continue
		}
		blendStraight(px, c.R, c.G, c.B, alpha)
	}
}

func (p *Rgba8) BlendSolidHspan(x, y, length int, c color.RGBA8, covers []basics.Int8u) {
	for i := 0; i < length; i++ {
		p.BlendPixel(x+i, y, c, covers[i])
	}
}

// BlendColorHspan sets each pixel in the span directly from colors, per
// spec a plain `set` loop rather than a further blend; cover is accepted
// but unused.
func (p *Rgba8) BlendColorHspan(x, y, length int, colors []color.RGBA8, cover basics.Int8u) {
	for i := 0; i < length; i++ {
		p.CopyPixel(x+i, y, colors[i])
	}
}

// blendStraight implements BlenderRGBA.BlendPix: RGB lerps toward the
// source, alpha prelerps, so a fully-opaque source (alpha==255) replaces
// the pixel outright and a transparent one leaves it untouched.
func blendStraight(px []basics.Int8u, r, g, b, alpha basics.Int8u) {
	if alpha == 0 {
		return
	}
	px[0] = basics.LerpU8(px[0], r, alpha)
	px[1] = basics.LerpU8(px[1], g, alpha)
	px[2] = basics.LerpU8(px[2], b, alpha)
	px[3] = basics.PrelerpU8(px[3], alpha, alpha)
}

// Rgb8Pre is the premultiplied-alpha 24-bit RGB pixel format: there is
// no stored alpha byte, so every stored R/G/B channel already carries
// its own implicit alpha scale and blending prelerps those three
// channels directly against an incoming premultiplied alpha.
type Rgb8Pre struct {
	rb *buffer.RenderingBuffer
}

// NewRgb8Pre wraps rb as a premultiplied 24-bit RGB pixel format.
func NewRgb8Pre(rb *buffer.RenderingBuffer) *Rgb8Pre { return &Rgb8Pre{rb: rb} }

func (p *Rgb8Pre) Width() int    { return p.rb.Width() }
func (p *Rgb8Pre) Height() int   { return p.rb.Height() }
func (p *Rgb8Pre) PixWidth() int { return 3 }

func (p *Rgb8Pre) pixAt(x, y int) []basics.Int8u {
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

// CopyPixel stores c premultiplied, regardless of whether the caller
// already premultiplied it, since a bare copy (full coverage, no
// existing content to blend against) must still respect the format's
// invariant that each channel is already scaled by its source alpha.
func (p *Rgb8Pre) CopyPixel(x, y int, c color.RGBA8) {
	px := p.pixAt(x, y)
	if px == nil {
		return
	}
	pre := color.FromStraight(c)
	px[0], px[1], px[2] = pre.R, pre.G, pre.B
}

func (p *Rgb8Pre) BlendPixel(x, y int, c color.RGBA8, cover basics.Int8u) {
	px := p.pixAt(x, y)
	if px == nil {
		return
	}
	pre := color.FromStraight(c)
	blendPre(px, pre.R, pre.G, pre.B, pre.A, cover)
}

func (p *Rgb8Pre) BlendHline(x, y, length int, c color.RGBA8, cover basics.Int8u) {
	pre := color.FromStraight(c)
	for i := 0; i < length; i++ {
		px := p.pixAt(x+i, y)
		if px == nil {
			continue
		}
		blendPre(px, pre.R, pre.G, pre.B, pre.A, cover)
	}
}

func (p *Rgb8Pre) BlendSolidHspan(x, y, length int, c color.RGBA8, covers []basics.Int8u) {
	pre := color.FromStraight(c)
	for i := 0; i < length; i++ {
		px := p.pixAt(x+i, y)
		if px == nil {
			continue
		}
		blendPre(px, pre.R, pre.G, pre.B, pre.A, covers[i])
	}
}

// BlendColorHspan sets each pixel in the span directly from colors
// (premultiplied on the way in), per spec a plain `set` loop rather than
// a further blend; cover is accepted but unused.
func (p *Rgb8Pre) BlendColorHspan(x, y, length int, colors []color.RGBA8, cover basics.Int8u) {
	for i := 0; i < length; i++ {
		p.CopyPixel(x+i, y, colors[i])
	}
}

// blendPre implements BlenderRGBPre.BlendPix: r, g, b, and a — already
// premultiplied by the source's own alpha — are scaled by cover, then
// prelerped into the destination's three stored channels. There is no
// stored alpha byte to update.
func blendPre(px []basics.Int8u, r, g, b, a, cover basics.Int8u) {
	if cover != 255 {
		r = basics.MultiplyU8(r, cover)
		g = basics.MultiplyU8(g, cover)
		b = basics.MultiplyU8(b, cover)
		a = basics.MultiplyU8(a, cover)
	}
	if a == 0 && r == 0 && g == 0 && b == 0 {
		return
	}
	px[0] = basics.PrelerpU8(px[0], r, a)
	px[1] = basics.PrelerpU8(px[1], g, a)
	px[2] = basics.PrelerpU8(px[2], b, a)
}
