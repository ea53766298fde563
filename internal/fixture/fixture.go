// Package fixture generates the reference DDS test textures: one small image
// written in every registry format, with file names loaders can rely on.
package fixture

import (
	"image"
	"image/color"
	"strings"

	"github.com/woozymasta/dds"
)

// Size of the reference image.
const (
	Width  = 4
	Height = 4
)

// Pixels is the reference pattern, row-major.
var Pixels = [Width * Height]color.NRGBA{
	rgba(255, 0, 0, 255), rgba(0, 255, 0, 255), rgba(0, 0, 255, 255), rgba(255, 255, 0, 255),
	rgba(255, 0, 255, 255), rgba(0, 255, 255, 255), rgba(128, 128, 128, 255), rgba(255, 255, 255, 255),
	rgba(64, 0, 0, 255), rgba(0, 64, 0, 255), rgba(0, 0, 64, 255), rgba(64, 64, 0, 255),
	rgba(0, 0, 0, 255), rgba(32, 32, 32, 255), rgba(192, 192, 192, 255), rgba(128, 0, 128, 255),
}

func rgba(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// ReferenceImage returns Pixels as a 4x4 image.
func ReferenceImage() *image.NRGBA {
	return imageFromPixels(Pixels[:], Width, Height)
}

func imageFromPixels(px []color.NRGBA, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, c := range px {
		img.SetNRGBA(i%width, i/width, c)
	}
	return img
}

// FileName returns the fixture file name for a format, e.g. "dxt1.dds" or
// "kopernicus_palette4.dds".
func FileName(format dds.Format, edds bool) string {
	name := format.String()
	if format.IsIndexed() {
		name = "kopernicus_" + name
	}
	if edds {
		return name + ".edds"
	}
	return name + ".dds"
}

// Palette returns the palette written for an indexed format: the pixel
// colors in order, padded with opaque black to the table size.
func Palette(format dds.Format, px []color.NRGBA) color.Palette {
	n := 1 << format.IndexBits()
	pal := make(color.Palette, 0, n)
	for i := 0; i < n; i++ {
		if i < len(px) {
			pal = append(pal, px[i])
			continue
		}
		pal = append(pal, color.NRGBA{A: 255})
	}
	return pal
}

// uniqueColors returns the distinct colors of img in first-seen order.
func uniqueColors(img *image.NRGBA) []color.NRGBA {
	seen := make(map[color.NRGBA]struct{})
	var out []color.NRGBA
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// encodeOptions picks the palette for indexed formats: the image's own
// colors when they fit, otherwise a quantized palette.
func encodeOptions(format dds.Format, img *image.NRGBA) *dds.EncodeOptions {
	if !format.IsIndexed() {
		return nil
	}
	colors := uniqueColors(img)
	if len(colors) > 1<<format.IndexBits() {
		return nil
	}
	return &dds.EncodeOptions{Palette: Palette(format, colors)}
}

// ParseFormats resolves format names; an empty list selects every format.
func ParseFormats(names []string) ([]dds.Format, error) {
	if len(names) == 0 {
		return dds.Formats(), nil
	}

	out := make([]dds.Format, 0, len(names))
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := dds.ParseFormat(part)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
	}
	return out, nil
}
