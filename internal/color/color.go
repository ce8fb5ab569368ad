// Package color provides the plain-channel color representations the
// rasterizer's pixel formats read and write: straight and premultiplied
// 8-bit RGB(A) (spec component C1 color model, consumed by C7).
//
// Simplification from the teacher: the teacher's color package is
// generic over a ColorSpace type parameter (SRGB/Linear) with gamma
// conversion tables between them, because the full AGG port targets
// color-managed rendering pipelines. This spec's Non-goals explicitly
// exclude "color management beyond basic blending", so the colorspace
// type parameter and its conversion tables have no caller here and are
// dropped; these types carry raw 8-bit channels with no colorspace tag.
package color

import "github.com/agg-core/rastercore/internal/basics"

// RGBA8 is a straight (non-premultiplied) 8-bit RGBA color.
type RGBA8 struct {
	R, G, B, A basics.Int8u
}

// NewRGBA8 constructs a straight RGBA8 color.
func NewRGBA8(r, g, b, a basics.Int8u) RGBA8 {
	return RGBA8{R: r, G: g, B: b, A: a}
}

// IsTransparent reports whether the color contributes nothing when blended.
func (c RGBA8) IsTransparent() bool { return c.A == 0 }

// IsOpaque reports whether the color fully replaces the destination when blended.
func (c RGBA8) IsOpaque() bool { return c.A == 255 }

// Premultiply returns c with R, G, B scaled by A/255, as required before
// storing into a premultiplied-alpha pixel format.
func (c RGBA8) Premultiply() RGBA8 {
	if c.A == 255 {
		return c
	}
	if c.A == 0 {
		return RGBA8{A: 0}
	}
	return RGBA8{
		R: basics.MultiplyU8(c.R, c.A),
		G: basics.MultiplyU8(c.G, c.A),
		B: basics.MultiplyU8(c.B, c.A),
		A: c.A,
	}
}

// RGBA8Pre is a premultiplied-alpha 8-bit RGBA color: R, G, B are already
// scaled by A/255, matching the representation the "Rgb8Pre" pixel
// format stores in its backing buffer.
type RGBA8Pre struct {
	R, G, B, A basics.Int8u
}

// FromStraight premultiplies a straight color into RGBA8Pre form.
func FromStraight(c RGBA8) RGBA8Pre {
	p := c.Premultiply()
	return RGBA8Pre{R: p.R, G: p.G, B: p.B, A: p.A}
}

func (c RGBA8Pre) IsTransparent() bool { return c.A == 0 }
func (c RGBA8Pre) IsOpaque() bool      { return c.A == 255 }
