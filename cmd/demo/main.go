// Command demo drives the rastercore facade end to end: it rasterizes
// a red triangle clipped to a vertical strip, and on request shows it in
// an SDL2 window and/or writes it out as a WebP image. Neither
// windowing nor image codecs are part of the core rasterizer — they
// live here, in the one place third-party display/codec dependencies
// are allowed to appear.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	webp "github.com/deepteams/webp"

	"github.com/agg-core/rastercore/internal/buffer"
	"github.com/agg-core/rastercore/internal/pixfmt"
	rcolor "github.com/agg-core/rastercore/internal/color"
	"github.com/agg-core/rastercore/internal/rasterizer"
	"github.com/agg-core/rastercore/internal/scanline"
)

const (
	width  = 100
	height = 100
)

// renderScene reproduces the core's own E1 scenario: a 100x100 RGB8
// canvas cleared to white, clipped to the vertical strip x in [40,60),
// with a red triangle painted across the whole canvas — only the strip
// should end up showing red.
func renderScene() *buffer.RenderingBuffer {
	buf := make([]byte, width*height*3)
	for i := range buf {
		buf[i] = 255
	}
	rb := buffer.NewRenderingBuffer(buf, width, height, width*3)
	pf := pixfmt.NewRgb8(rb)

	ras := rasterizer.NewRasterizer()
	ras.ClipBox(40, 0, 60, 100)
	ras.MoveToD(10, 10)
	ras.LineToD(50, 90)
	ras.LineToD(90, 10)
	ras.ClosePolygon()

	red := rcolor.NewRGBA8(255, 0, 0, 255)
	sl := scanline.NewScanlineU8()
	sl.Reset(0, width)
	for ras.SweepScanline(sl) {
		y := sl.Y()
		for _, span := range sl.Spans() {
			pf.BlendSolidHspan(span.X, y, span.Len, red, span.Covers[:span.Len])
		}
	}
	return rb
}

func toImage(rb *buffer.RenderingBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, rb.Width(), rb.Height()))
	for y := 0; y < rb.Height(); y++ {
		row := rb.Row(y)
		for x := 0; x < rb.Width(); x++ {
			off := x * 3
			img.SetNRGBA(x, y, color.NRGBA{R: row[off], G: row[off+1], B: row[off+2], A: 255})
		}
	}
	return img
}

func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return webp.Encode(f, img, &webp.EncoderOptions{Quality: 90})
}

func showWindow(rb *buffer.RenderingBuffer) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("rastercore demo",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(rb.Width()), int32(rb.Height()), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		int32(rb.Width()), int32(rb.Height()))
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	defer texture.Destroy()

	if err := texture.Update(nil, rb.Buf(), rb.StrideAbs()); err != nil {
		return fmt.Errorf("update texture: %w", err)
	}

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.(type) {
			case *sdl.QuitEvent:
				running = false
			}
		}
		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
		sdl.Delay(16)
	}
	return nil
}

func main() {
	out := flag.String("out", "", "path to write the rendered scene as WebP (skipped if empty)")
	window := flag.Bool("window", false, "open an SDL2 window showing the rendered scene")
	flag.Parse()

	rb := renderScene()

	if *out != "" {
		if err := writeWebP(*out, toImage(rb)); err != nil {
			log.Fatalf("writing webp: %v", err)
		}
	}
	if *window {
		if err := showWindow(rb); err != nil {
			log.Fatalf("showing window: %v", err)
		}
	}
	if *out == "" && !*window {
		log.Printf("rendered %dx%d scene; pass -out or -window to see it", rb.Width(), rb.Height())
	}
}
