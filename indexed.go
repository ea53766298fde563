package dds

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// paletteFill pads short palettes.
var paletteFill = color.NRGBA{A: 255}

// paletteEntries returns the table size for an index width.
func paletteEntries(bits int) int {
	return 1 << bits
}

// indexedPayloadSize returns the palette table plus the packed index stream
// size for count pixels.
func indexedPayloadSize(bits, count int) int {
	switch bits {
	case 4:
		return paletteEntries(bits)*4 + (count+1)/2
	case 8:
		return paletteEntries(bits)*4 + count
	default:
		return -1
	}
}

// WriteIndexed writes a palette table followed by the index stream.
//
// bits is 4 or 8. The palette is written as 2^bits RGBA8 entries; shorter
// palettes are padded with opaque black. With 4-bit indices two pixels share
// a byte, the first one in the low nibble.
func WriteIndexed(w io.Writer, pal color.Palette, indices []uint8, bits int) error {
	payload, err := appendIndexed(nil, pal, indices, bits)
	if err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePayload, err)
	}
	return nil
}

func appendIndexed(out []byte, pal color.Palette, indices []uint8, bits int) ([]byte, error) {
	if bits != 4 && bits != 8 {
		return nil, fmt.Errorf("%w: %d-bit indices", ErrInvalidFormat, bits)
	}
	entries := paletteEntries(bits)
	if len(pal) > entries {
		return nil, fmt.Errorf("%w: %d entries for %d-bit indices", ErrPaletteTooLarge, len(pal), bits)
	}

	for i := 0; i < entries; i++ {
		c := paletteFill
		if i < len(pal) {
			c = color.NRGBAModel.Convert(pal[i]).(color.NRGBA)
		}
		out = append(out, c.R, c.G, c.B, c.A)
	}

	for i, v := range indices {
		if int(v) >= entries {
			return nil, fmt.Errorf("%w: pixel %d index %d", ErrIndexOutOfRange, i, v)
		}
	}

	if bits == 8 {
		return append(out, indices...), nil
	}

	for i := 0; i < len(indices); i += 2 {
		lo := indices[i]
		var hi uint8
		if i+1 < len(indices) {
			hi = indices[i+1]
		}
		out = append(out, hi<<4|lo)
	}
	return out, nil
}

// MapIndexed returns, for each pixel of img in row-major order, the index
// of the closest palette entry. Exact matches take the first such entry.
func MapIndexed(img image.Image, pal color.Palette) []uint8 {
	b := img.Bounds()
	out := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, uint8(pal.Index(img.At(x, y))))
		}
	}
	return out
}

// QuantizeIndexed reduces img to at most 2^bits colors with a median cut
// quantizer and returns the palette and the per-pixel indices.
func QuantizeIndexed(img image.Image, bits int) (color.Palette, []uint8, error) {
	if bits != 4 && bits != 8 {
		return nil, nil, fmt.Errorf("%w: %d-bit indices", ErrInvalidFormat, bits)
	}

	b := img.Bounds()
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, paletteEntries(bits)), img)

	pm := image.NewPaletted(b, pal)
	draw.Draw(pm, b, img, b.Min, draw.Src)

	indices := make([]uint8, 0, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := pm.Pix[y*pm.Stride : y*pm.Stride+b.Dx()]
		indices = append(indices, row...)
	}

	return pal, indices, nil
}
