// Package raster converts rendered SVG documents to PNG.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// Options control PNG output.
type Options struct {
	// Scale multiplies the SVG's intrinsic size. Zero means 1.
	Scale float64
	// Width and Height, when positive, force the output size; the image
	// is resampled to fit. They override Scale.
	Width  int
	Height int
}

// Encode rasterizes an SVG document and writes it as PNG.
func Encode(svg string, w io.Writer, opts Options) error {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg), oksvg.WarnErrorMode)
	if err != nil {
		return fmt.Errorf("parsing svg: %w", err)
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	width := int(icon.ViewBox.W * scale)
	height := int(icon.ViewBox.H * scale)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("svg has no drawable area")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	dasher := rasterx.NewDasher(width, height, scanner)
	icon.SetTarget(0, 0, float64(width), float64(height))
	icon.Draw(dasher, 1.0)

	out := image.Image(img)
	if opts.Width > 0 && opts.Height > 0 {
		resized := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		xdraw.CatmullRom.Scale(resized, resized.Bounds(), img, img.Bounds(), xdraw.Over, nil)
		out = resized
	}

	return png.Encode(w, out)
}

// EncodeFile rasterizes an SVG document into a PNG file.
func EncodeFile(svg, path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(svg, f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
